// SPDX-License-Identifier: MIT

package matmul

import (
	"context"

	"github.com/katalvlaran/ppc/task"
)

// Sequential is the single-goroutine C = A·B task.
type Sequential struct {
	d    *task.Data
	s    shape
	a, b []float64
	c    []float64
}

// NewSequential returns the task bound to d.
func NewSequential(d *task.Data) *Sequential { return &Sequential{d: d} }

// Name implements task.Named.
func (t *Sequential) Name() string { return "matmul/seq" }

func (t *Sequential) Validation() error {
	s, err := validate(t.d)
	t.s = s
	return err
}

func (t *Sequential) PreProcessing() (err error) {
	t.a, t.b, err = load(t.d, t.s)
	t.c = make([]float64, t.s.m*t.s.n)
	return err
}

func (t *Sequential) Run(context.Context) error {
	multiplyRows(t.a, t.b, t.c, t.s.m, t.s.k, t.s.n)
	return nil
}

func (t *Sequential) PostProcessing() error { return store(t.d, t.c) }
