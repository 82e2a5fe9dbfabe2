// SPDX-License-Identifier: MIT

package gaussjordan

import (
	"errors"
	"math"

	"github.com/katalvlaran/ppc/task"
)

// Epsilon is the smallest pivot magnitude accepted.
const Epsilon = 1e-12

var (
	// ErrBadOrder indicates a non-positive system order.
	ErrBadOrder = errors.New("gaussjordan: n must be positive")

	// ErrSingular indicates no usable pivot was found for some column.
	ErrSingular = errors.New("gaussjordan: matrix is singular")

	// ErrNonFinite indicates a NaN or infinite coefficient in the input.
	ErrNonFinite = errors.New("gaussjordan: non-finite coefficient")

	// ErrDiverged indicates the elimination overflowed to a non-finite solution.
	ErrDiverged = errors.New("gaussjordan: solution is not finite")
)

// validate is shared by both variants and returns n.
func validate(d *task.Data) (int, error) {
	if err := d.ExpectSlots(2, 1); err != nil {
		return 0, err
	}
	if err := d.ExpectInput(1, task.Int32, 1); err != nil {
		return 0, err
	}
	nv, _ := task.Input[int32](d, 1)
	n := int(nv[0])
	if n <= 0 {
		return 0, task.Errorf(task.ValidationFailed, "%w: %d", ErrBadOrder, n)
	}
	if err := d.ExpectInput(0, task.Float64, n*(n+1)); err != nil {
		return 0, err
	}
	if err := d.ExpectOutput(0, task.Float64, n); err != nil {
		return 0, err
	}
	a, _ := task.Input[float64](d, 0)
	if err := checkCoefficients(a[:n*(n+1)]); err != nil {
		return 0, err
	}
	return n, nil
}

// checkCoefficients rejects NaN and ±Inf entries: an infinite pivot scales
// its row by zero and yields a finite but wrong solution.
func checkCoefficients(a []float64) error {
	for i, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return task.Errorf(task.ValidationFailed, "%w: a[%d] = %v", ErrNonFinite, i, v)
		}
	}
	return nil
}

// checkSolution reports overflow during elimination.
func checkSolution(x []float64) error {
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return task.Errorf(task.NumericDivergence, "%w: x[%d] = %v", ErrDiverged, i, v)
		}
	}
	return nil
}

func store(d *task.Data, x []float64) error {
	out, err := task.Output[float64](d, 0)
	if err != nil {
		return err
	}
	copy(out, x)
	return nil
}

// pivot is the max-loc operand: a candidate row for column k.
type pivot struct {
	abs float64
	row int
}

// better prefers the larger magnitude, then the lower row.
func better(a, b pivot) pivot {
	if b.abs > a.abs || (b.abs == a.abs && b.row < a.row) {
		return b
	}
	return a
}

func singular(k int, p pivot) error {
	if p.abs < 0 {
		// every candidate was NaN, nothing was selected
		return task.Errorf(task.NumericDivergence, "%w: column %d has no comparable pivot", ErrSingular, k)
	}
	return task.Errorf(task.NumericDivergence, "%w: column %d pivot %g", ErrSingular, k, p.abs)
}

// scaleRow divides row by its k-th entry.
func scaleRow(row []float64, k int) {
	inv := 1 / row[k]
	for j := range row {
		row[j] *= inv
	}
	row[k] = 1
}

// eliminate subtracts row[k]·pr from row, zeroing column k.
func eliminate(row, pr []float64, k int) {
	f := row[k]
	if f == 0 {
		return
	}
	for j := range row {
		row[j] -= f * pr[j]
	}
	row[k] = 0
}

// Solve reduces the n×(n+1) augmented matrix a in place and writes x.
// Non-finite coefficients are rejected before any elimination.
func Solve(a []float64, n int, x []float64) error {
	if err := checkCoefficients(a[:n*(n+1)]); err != nil {
		return err
	}
	return solve(a, n, x)
}

func solve(a []float64, n int, x []float64) error {
	var (
		cols = n + 1
		used = make([]bool, n)
		piv  = make([]int, n)
		best pivot
		i, k int
	)
	for k = 0; k < n; k++ {
		best = pivot{abs: -1, row: n}
		for i = 0; i < n; i++ {
			if !used[i] {
				best = better(best, pivot{abs: math.Abs(a[i*cols+k]), row: i})
			}
		}
		if best.abs < Epsilon {
			return singular(k, best)
		}
		used[best.row] = true
		piv[k] = best.row

		pr := a[best.row*cols : (best.row+1)*cols]
		scaleRow(pr, k)
		for i = 0; i < n; i++ {
			if i != best.row {
				eliminate(a[i*cols:(i+1)*cols], pr, k)
			}
		}
	}
	for k = 0; k < n; k++ {
		x[k] = a[piv[k]*cols+n]
	}
	return checkSolution(x)
}
