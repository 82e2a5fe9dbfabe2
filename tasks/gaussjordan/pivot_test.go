package gaussjordan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ppc/task"
)

func TestBetter_NaNNeverWins(t *testing.T) {
	p := better(pivot{abs: -1, row: 2}, pivot{abs: math.NaN(), row: 0})
	require.Equal(t, pivot{abs: -1, row: 2}, p)
}

// TestSolve_NaNColumn reaches a column whose candidates are all NaN, as an
// intermediate Inf-Inf would leave it.
func TestSolve_NaNColumn(t *testing.T) {
	err := solve([]float64{math.NaN(), 1}, 1, make([]float64, 1))
	require.ErrorIs(t, err, ErrSingular)
	require.ErrorIs(t, err, task.ErrNumericDivergence)
	require.Contains(t, err.Error(), "column 0 has no comparable pivot")
	require.NotContains(t, err.Error(), "pivot -1")
}
