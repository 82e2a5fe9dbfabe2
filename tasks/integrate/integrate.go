// SPDX-License-Identifier: MIT

package integrate

import (
	"errors"
	"math"

	"github.com/katalvlaran/ppc/task"
)

var (
	// ErrBadBounds indicates a NaN or infinite integration bound.
	ErrBadBounds = errors.New("integrate: bounds must be finite")

	// ErrBadCount indicates a non-positive interval or sample count.
	ErrBadCount = errors.New("integrate: n must be positive")

	// ErrOddIntervals indicates Simpson's rule was given an odd interval count.
	ErrOddIntervals = errors.New("integrate: simpson needs an even n")

	// ErrDiverged indicates the integrand produced a non-finite result.
	ErrDiverged = errors.New("integrate: non-finite result")
)

// problem is the validated input.
type problem struct {
	a, b float64
	n    int64
}

// validate is shared by both variants.
func validate(d *task.Data) (problem, error) {
	if err := d.ExpectSlots(2, 1); err != nil {
		return problem{}, err
	}
	if err := d.ExpectInput(0, task.Float64, 2); err != nil {
		return problem{}, err
	}
	if err := d.ExpectInput(1, task.Int64, 1); err != nil {
		return problem{}, err
	}
	if err := d.ExpectOutput(0, task.Float64, 1); err != nil {
		return problem{}, err
	}

	bounds, _ := task.Input[float64](d, 0)
	n, _ := task.Input[int64](d, 1)
	p := problem{a: bounds[0], b: bounds[1], n: n[0]}
	if !finite(p.a) || !finite(p.b) {
		return problem{}, task.Errorf(task.ValidationFailed, "%w: [%v, %v]", ErrBadBounds, p.a, p.b)
	}
	return p, nil
}

// checkCount is the pre-processing precondition of both variants.
func checkCount(n int64) error {
	if n <= 0 {
		return task.Errorf(task.PreconditionViolated, "%w: %d", ErrBadCount, n)
	}
	return nil
}

func checkResult(v float64) error {
	if !finite(v) {
		return task.Errorf(task.NumericDivergence, "%w: %v", ErrDiverged, v)
	}
	return nil
}

func store(d *task.Data, v float64) error {
	out, err := task.Output[float64](d, 0)
	if err != nil {
		return err
	}
	out[0] = v
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Simpson applies composite Simpson's rule with n (even) intervals.
//
//	h/3 · [f(x0) + 4 Σ f(x_odd) + 2 Σ f(x_even) + f(xn)]
func Simpson(f Func, a, b float64, n int64) float64 {
	h := (b - a) / float64(n)
	var (
		sum = f(a) + f(b)
		i   int64
	)
	for i = 1; i < n; i++ {
		if i%2 == 1 {
			sum += 4 * f(a+float64(i)*h)
		} else {
			sum += 2 * f(a+float64(i)*h)
		}
	}
	return sum * h / 3
}
