// SPDX-License-Identifier: MIT

package gaussjordan

import (
	"context"

	"github.com/katalvlaran/ppc/task"
)

// Sequential solves the system on the calling goroutine.
type Sequential struct {
	d    *task.Data
	n    int
	a, x []float64
}

// NewSequential returns the task bound to d.
func NewSequential(d *task.Data) *Sequential { return &Sequential{d: d} }

// Name implements task.Named.
func (t *Sequential) Name() string { return "gaussjordan/seq" }

func (t *Sequential) Validation() (err error) {
	t.n, err = validate(t.d)
	return err
}

func (t *Sequential) PreProcessing() error {
	t.a = make([]float64, t.n*(t.n+1))
	t.x = make([]float64, t.n)
	return nil
}

// Run reduces a fresh copy of the input so it can be repeated.
func (t *Sequential) Run(context.Context) error {
	in, err := task.Input[float64](t.d, 0)
	if err != nil {
		return err
	}
	copy(t.a, in)
	return Solve(t.a, t.n, t.x)
}

func (t *Sequential) PostProcessing() error { return store(t.d, t.x) }
