// Package matmul_test covers both variants of the matrix product task.
package matmul_test

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
	"github.com/katalvlaran/ppc/tasks/matmul"
)

// newData builds the slot layout for an m×k by k×n product.
func newData(a, b []float64, m, k, n int) *task.Data {
	return task.NewData().
		AddInput(task.NewBuffer(a)).
		AddInput(task.NewBuffer(b)).
		AddInput(task.NewBuffer([]int32{int32(m), int32(k), int32(n)})).
		AddOutput(task.NewBuffer(make([]float64, m*n)))
}

// randMatrix fills rows×cols with small integers so products are exact.
func randMatrix(seed int64, rows, cols int) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, rows*cols)
	for i := range out {
		out[i] = float64(rng.Intn(11) - 5)
	}
	return out
}

// naive is the textbook triple loop.
func naive(a, b []float64, m, k, n int) []float64 {
	c := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			for p := 0; p < k; p++ {
				c[i*n+j] += a[i*k+p] * b[p*n+j]
			}
		}
	}
	return c
}

func execute(t *testing.T, tk task.Task) {
	t.Helper()
	lc, err := task.NewLifecycle(tk)
	require.NoError(t, err)
	require.NoError(t, lc.Execute(context.Background()))
}

func output(t *testing.T, d *task.Data) []float64 {
	t.Helper()
	out, err := task.Output[float64](d, 0)
	require.NoError(t, err)
	return out
}

func TestSequential_2x3by3x2(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5, 6}
	b := []float64{7, 8, 9, 10, 11, 12}
	d := newData(a, b, 2, 3, 2)

	execute(t, matmul.NewSequential(d))
	require.Equal(t, []float64{58, 64, 139, 154}, output(t, d))
}

func TestSequential_Identity(t *testing.T) {
	const n = 5
	a := randMatrix(1, n, n)
	id := make([]float64, n*n)
	for i := 0; i < n; i++ {
		id[i*n+i] = 1
	}
	d := newData(a, id, n, n, n)

	execute(t, matmul.NewSequential(d))
	require.Equal(t, a, output(t, d))
}

// TestNonFinitePropagates checks a zero in A still multiplies an Inf or NaN
// in B, so C carries NaN as IEEE arithmetic requires.
func TestNonFinitePropagates(t *testing.T) {
	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	for _, bad := range []float64{math.Inf(1), math.NaN()} {
		a := []float64{0, 1}
		b := []float64{bad, 2}
		seq, par := newData(a, b, 1, 2, 1), newData(a, b, 1, 2, 1)

		execute(t, matmul.NewSequential(seq))
		execute(t, matmul.NewParallel(par, w))
		require.True(t, math.IsNaN(output(t, seq)[0]), "0·%v must not vanish", bad)
		require.True(t, math.IsNaN(output(t, par)[0]), "0·%v must not vanish", bad)
	}
}

// TestParallel_MatchesSequential compares both variants on shapes whose row
// count does not divide the world size.
func TestParallel_MatchesSequential(t *testing.T) {
	for _, tc := range []struct{ m, k, n int }{
		{1, 1, 1},
		{7, 3, 5},
		{10, 10, 10},
		{3, 8, 2},
	} {
		for _, size := range []int{1, 2, 3, 4} {
			t.Run(fmt.Sprintf("%dx%dx%d/P%d", tc.m, tc.k, tc.n, size), func(t *testing.T) {
				a := randMatrix(int64(tc.m), tc.m, tc.k)
				b := randMatrix(int64(tc.n), tc.k, tc.n)
				w, err := comm.NewWorld(size)
				require.NoError(t, err)

				seq := newData(a, b, tc.m, tc.k, tc.n)
				par := newData(a, b, tc.m, tc.k, tc.n)
				execute(t, matmul.NewSequential(seq))
				execute(t, matmul.NewParallel(par, w))

				want := naive(a, b, tc.m, tc.k, tc.n)
				require.Equal(t, want, output(t, seq))
				require.Equal(t, want, output(t, par))
			})
		}
	}
}

func TestValidation(t *testing.T) {
	good := func() *task.Data { return newData(make([]float64, 6), make([]float64, 6), 2, 3, 2) }

	cases := []struct {
		name  string
		data  func() *task.Data
		cause error
	}{
		{"nil data", func() *task.Data { return nil }, task.ErrNilData},
		{"missing output", func() *task.Data {
			d := good()
			d.Outputs = nil
			return d
		}, task.ErrSlotCount},
		{"zero dim", func() *task.Data {
			d := good()
			d.Inputs[2] = task.NewBuffer([]int32{2, 0, 2})
			return d
		}, matmul.ErrBadDims},
		{"short A", func() *task.Data {
			d := good()
			d.Inputs[0] = task.NewBuffer(make([]float64, 5))
			return d
		}, task.ErrShortBuffer},
		{"wrong C type", func() *task.Data {
			d := good()
			d.Outputs[0] = task.NewBuffer(make([]float32, 4))
			return d
		}, task.ErrTypeMismatch},
	}

	w, err := comm.NewWorld(2)
	require.NoError(t, err)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, tk := range []task.Task{matmul.NewSequential(tc.data()), matmul.NewParallel(tc.data(), w)} {
				lc, err := task.NewLifecycle(tk)
				require.NoError(t, err)
				err = lc.Validation()
				require.ErrorIs(t, err, task.ErrValidationFailed)
				require.ErrorIs(t, err, tc.cause)
				require.Equal(t, task.Failed, lc.State())
			}
		})
	}
}

func TestParallel_NilWorld(t *testing.T) {
	lc, err := task.NewLifecycle(matmul.NewParallel(newData(make([]float64, 1), make([]float64, 1), 1, 1, 1), nil))
	require.NoError(t, err)
	require.ErrorIs(t, lc.Validation(), task.ErrPreconditionViolated)
}

func TestParallel_Canceled(t *testing.T) {
	w, err := comm.NewWorld(3)
	require.NoError(t, err)
	lc, err := task.NewLifecycle(matmul.NewParallel(newData(randMatrix(1, 4, 4), randMatrix(2, 4, 4), 4, 4, 4), w))
	require.NoError(t, err)
	require.NoError(t, lc.Validation())
	require.NoError(t, lc.PreProcessing())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, lc.Run(ctx), task.ErrCanceled)
}
