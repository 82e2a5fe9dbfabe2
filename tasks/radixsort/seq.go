// SPDX-License-Identifier: MIT

package radixsort

import (
	"context"

	"github.com/katalvlaran/ppc/task"
)

// Sequential sorts the input slot on the calling goroutine.
type Sequential struct {
	d    *task.Data
	vals []int32
}

// NewSequential returns the task bound to d.
func NewSequential(d *task.Data) *Sequential { return &Sequential{d: d} }

// Name implements task.Named.
func (t *Sequential) Name() string { return "radixsort/seq" }

func (t *Sequential) Validation() error {
	_, err := validate(t.d)
	return err
}

func (t *Sequential) PreProcessing() (err error) {
	t.vals, err = load(t.d)
	return err
}

// Run sorts a fresh copy each time, so repeated runs measure the same work.
func (t *Sequential) Run(context.Context) error {
	in, err := task.Input[int32](t.d, 0)
	if err != nil {
		return err
	}
	copy(t.vals, in)
	Sort(t.vals)
	return nil
}

func (t *Sequential) PostProcessing() error { return store(t.d, t.vals) }
