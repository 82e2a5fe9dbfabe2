package gaussjordan_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
	"github.com/katalvlaran/ppc/tasks/gaussjordan"
)

func newData(aug []float64, n int) *task.Data {
	return task.NewData().
		AddInput(task.NewBuffer(aug)).
		AddInput(task.NewBuffer([]int32{int32(n)})).
		AddOutput(task.NewBuffer(make([]float64, n)))
}

// system builds a diagonally dominant A and b = A·x for a known x.
func system(seed int64, n int) (aug, x []float64) {
	rng := rand.New(rand.NewSource(seed))
	cols := n + 1
	aug = make([]float64, n*cols)
	x = make([]float64, n)
	for i := range x {
		x[i] = float64(rng.Intn(21) - 10)
	}
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			v := rng.Float64()*2 - 1
			if i == j {
				v += float64(n)
			}
			aug[i*cols+j] = v
			sum += v * x[j]
		}
		aug[i*cols+n] = sum
	}
	return aug, x
}

func solve(t *testing.T, tk task.Task, d *task.Data) []float64 {
	t.Helper()
	lc, err := task.NewLifecycle(tk)
	require.NoError(t, err)
	require.NoError(t, lc.Execute(context.Background()))
	out, err := task.Output[float64](d, 0)
	require.NoError(t, err)
	return out
}

func TestSequential_NeedsPivoting(t *testing.T) {
	// a_00 = 0 forces a pivot from row 1.
	//   0x + 2y = 4
	//   3x + 1y = 5
	aug := []float64{
		0, 2, 4,
		3, 1, 5,
	}
	d := newData(aug, 2)
	x := solve(t, gaussjordan.NewSequential(d), d)
	require.InDeltaSlice(t, []float64{1, 2}, x, 1e-12)
	require.Equal(t, []float64{0, 2, 4, 3, 1, 5}, aug, "input must not be modified")
}

func TestVariants_BitIdentical(t *testing.T) {
	for _, n := range []int{1, 2, 5, 16} {
		aug, want := system(int64(n), n)
		for _, size := range []int{1, 2, 3, 6} {
			t.Run(fmt.Sprintf("n=%d/P%d", n, size), func(t *testing.T) {
				w, err := comm.NewWorld(size)
				require.NoError(t, err)
				seq, par := newData(aug, n), newData(aug, n)
				xs := solve(t, gaussjordan.NewSequential(seq), seq)
				xp := solve(t, gaussjordan.NewParallel(par, w), par)

				require.InDeltaSlice(t, want, xs, 1e-9)
				require.Equal(t, xs, xp)
			})
		}
	}
}

func TestSingular(t *testing.T) {
	aug := []float64{
		1, 2, 3,
		2, 4, 6,
	}
	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	for _, tk := range []task.Task{
		gaussjordan.NewSequential(newData(aug, 2)),
		gaussjordan.NewParallel(newData(aug, 2), w),
	} {
		lc, err := task.NewLifecycle(tk)
		require.NoError(t, err)
		err = lc.Execute(context.Background())
		require.ErrorIs(t, err, gaussjordan.ErrSingular)
		require.ErrorIs(t, err, task.ErrNumericDivergence)
		require.Equal(t, task.Failed, lc.State())
	}
}

func TestValidation(t *testing.T) {
	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	for _, tc := range []struct {
		name  string
		data  *task.Data
		cause error
	}{
		{"zero order", newData(nil, 0), gaussjordan.ErrBadOrder},
		{"short matrix", newData(make([]float64, 5), 2), task.ErrShortBuffer},
		{"no output", task.NewData().
			AddInput(task.NewBuffer(make([]float64, 2))).
			AddInput(task.NewBuffer([]int32{1})), task.ErrSlotCount},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, tk := range []task.Task{gaussjordan.NewSequential(tc.data), gaussjordan.NewParallel(tc.data, w)} {
				lc, err := task.NewLifecycle(tk)
				require.NoError(t, err)
				err = lc.Validation()
				require.ErrorIs(t, err, task.ErrValidationFailed)
				require.ErrorIs(t, err, tc.cause)
			}
		})
	}
}

func TestNonFiniteCoefficients(t *testing.T) {
	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	for _, aug := range [][]float64{
		{math.Inf(1), 1, 3, 1, 1, 2},
		{1, math.NaN(), 3, 1, 1, 2},
		{1, 0, 3, 0, 1, math.Inf(-1)},
	} {
		for _, tk := range []task.Task{
			gaussjordan.NewSequential(newData(aug, 2)),
			gaussjordan.NewParallel(newData(aug, 2), w),
		} {
			lc, err := task.NewLifecycle(tk)
			require.NoError(t, err)
			err = lc.Execute(context.Background())
			require.ErrorIs(t, err, gaussjordan.ErrNonFinite)
			require.ErrorIs(t, err, task.ErrValidationFailed)
		}
	}

	x := make([]float64, 2)
	err = gaussjordan.Solve([]float64{math.Inf(1), 1, 3, 1, 1, 2}, 2, x)
	require.ErrorIs(t, err, gaussjordan.ErrNonFinite)
}

// TestOverflow divides a huge right-hand side by a tiny pivot.
func TestOverflow(t *testing.T) {
	aug := []float64{1e-11, 1e300}
	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	for _, tk := range []task.Task{
		gaussjordan.NewSequential(newData(aug, 1)),
		gaussjordan.NewParallel(newData(aug, 1), w),
	} {
		lc, err := task.NewLifecycle(tk)
		require.NoError(t, err)
		err = lc.Execute(context.Background())
		require.ErrorIs(t, err, gaussjordan.ErrDiverged)
		require.Equal(t, task.NumericDivergence, task.KindOf(err))
	}
}
