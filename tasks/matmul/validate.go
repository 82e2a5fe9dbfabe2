// SPDX-License-Identifier: MIT

package matmul

import (
	"errors"

	"github.com/katalvlaran/ppc/task"
)

// ErrBadDims indicates a non-positive dimension in the dims slot.
var ErrBadDims = errors.New("matmul: dimensions must be positive")

// shape holds the validated problem size.
type shape struct{ m, k, n int }

// validate is the single validation routine of both variants.
//
// Stage 1: slot counts and element types.
// Stage 2: positive dims.
// Stage 3: buffer lengths against dims.
func validate(d *task.Data) (shape, error) {
	// Stage 1: slots.
	if err := d.ExpectSlots(3, 1); err != nil {
		return shape{}, err
	}
	if err := d.ExpectInput(2, task.Int32, 3); err != nil {
		return shape{}, err
	}
	dims, err := task.Input[int32](d, 2)
	if err != nil {
		return shape{}, err
	}

	// Stage 2: dims.
	s := shape{m: int(dims[0]), k: int(dims[1]), n: int(dims[2])}
	if s.m <= 0 || s.k <= 0 || s.n <= 0 {
		return shape{}, task.Errorf(task.ValidationFailed, "%w: %v", ErrBadDims, dims[:3])
	}

	// Stage 3: buffer lengths.
	if err = d.ExpectInput(0, task.Float64, s.m*s.k); err != nil {
		return shape{}, err
	}
	if err = d.ExpectInput(1, task.Float64, s.k*s.n); err != nil {
		return shape{}, err
	}
	if err = d.ExpectOutput(0, task.Float64, s.m*s.n); err != nil {
		return shape{}, err
	}

	return s, nil
}

// load copies A and B out of the input slots.
func load(d *task.Data, s shape) (a, b []float64, err error) {
	var src []float64
	if src, err = task.Input[float64](d, 0); err != nil {
		return nil, nil, err
	}
	a = append([]float64(nil), src[:s.m*s.k]...)
	if src, err = task.Input[float64](d, 1); err != nil {
		return nil, nil, err
	}
	b = append([]float64(nil), src[:s.k*s.n]...)
	return a, b, nil
}

// store writes C into the output slot.
func store(d *task.Data, c []float64) error {
	out, err := task.Output[float64](d, 0)
	if err != nil {
		return err
	}
	copy(out, c)
	return nil
}

// multiplyRows computes rows×n of C from rows×k of A and k×n of B.
// Loop order i-p-j keeps the inner loop streaming over contiguous rows of B
// and C.
func multiplyRows(a, b, c []float64, rows, k, n int) {
	var (
		i, p, j int
		aip     float64
		ci, bp  []float64
	)
	for i = 0; i < rows; i++ {
		ci = c[i*n : (i+1)*n]
		for j = range ci {
			ci[j] = 0
		}
		for p = 0; p < k; p++ {
			aip = a[i*k+p]
			bp = b[p*n : (p+1)*n]
			for j = 0; j < n; j++ {
				ci[j] += aip * bp[j]
			}
		}
	}
}
