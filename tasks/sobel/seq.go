// SPDX-License-Identifier: MIT

package sobel

import (
	"context"

	"github.com/katalvlaran/ppc/task"
)

// Sequential filters the whole image on the calling goroutine.
type Sequential struct {
	d        *task.Data
	s        dims
	src, dst []uint8
}

// NewSequential returns the task bound to d.
func NewSequential(d *task.Data) *Sequential { return &Sequential{d: d} }

// Name implements task.Named.
func (t *Sequential) Name() string { return "sobel/seq" }

func (t *Sequential) Validation() (err error) {
	t.s, err = validate(t.d)
	return err
}

func (t *Sequential) PreProcessing() (err error) {
	t.src, err = load(t.d, t.s)
	t.dst = make([]uint8, t.s.w*t.s.h)
	return err
}

func (t *Sequential) Run(context.Context) error {
	Filter(t.src, 0, t.s.w, t.s.h, 0, t.s.h, t.dst)
	return nil
}

func (t *Sequential) PostProcessing() error { return store(t.d, t.dst) }
