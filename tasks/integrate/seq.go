// SPDX-License-Identifier: MIT

package integrate

import (
	"context"

	"github.com/katalvlaran/ppc/task"
)

// Sequential integrates with composite Simpson's rule.
type Sequential struct {
	d   *task.Data
	o   options
	p   problem
	res float64
}

// NewSequential returns the task bound to d. WithSeed has no effect here.
func NewSequential(d *task.Data, opts ...Option) *Sequential {
	return &Sequential{d: d, o: buildOptions(opts)}
}

// Name implements task.Named.
func (t *Sequential) Name() string { return "integrate/seq" }

func (t *Sequential) Validation() (err error) {
	t.p, err = validate(t.d)
	return err
}

func (t *Sequential) PreProcessing() error {
	if err := checkCount(t.p.n); err != nil {
		return err
	}
	if t.p.n%2 != 0 {
		return task.Errorf(task.PreconditionViolated, "%w: %d", ErrOddIntervals, t.p.n)
	}
	return nil
}

func (t *Sequential) Run(context.Context) error {
	t.res = Simpson(t.o.f, t.p.a, t.p.b, t.p.n)
	return checkResult(t.res)
}

func (t *Sequential) PostProcessing() error { return store(t.d, t.res) }
