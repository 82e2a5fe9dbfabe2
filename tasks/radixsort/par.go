// SPDX-License-Identifier: MIT

package radixsort

import (
	"context"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

// Parallel sorts blocks on every rank and merges them on the root.
type Parallel struct {
	d     *task.Data
	world *comm.World
	n     int
	vals  []int32
	out   []int32
}

// NewParallel returns the task bound to d, running on world.
func NewParallel(d *task.Data, world *comm.World) *Parallel {
	return &Parallel{d: d, world: world}
}

// Name implements task.Named.
func (t *Parallel) Name() string { return "radixsort/par" }

func (t *Parallel) Validation() error {
	if t.world == nil {
		return task.Errorf(task.PreconditionViolated, "radixsort: nil world")
	}
	n, err := validate(t.d)
	t.n = n
	return err
}

func (t *Parallel) PreProcessing() (err error) {
	t.vals, err = load(t.d)
	t.out = make([]int32, t.n)
	return err
}

func (t *Parallel) Run(ctx context.Context) error {
	err := t.world.Run(ctx, func(ctx context.Context, c *comm.Comm) error {
		n, err := comm.BcastValue(ctx, c, comm.RootRank, t.rootN(c))
		if err != nil {
			return err
		}
		counts := comm.Counts(n, c.Size())

		var send []int32
		if c.IsRoot() {
			send = t.vals
		}
		local, err := comm.Scatterv(ctx, c, comm.RootRank, send, counts)
		if err != nil {
			return err
		}
		Sort(local)

		runs, err := comm.Gatherv(ctx, c, comm.RootRank, local, counts)
		if err != nil {
			return err
		}
		if c.IsRoot() {
			Merge(runs, counts, t.out)
		}
		return nil
	})
	return comm.TaskError(err)
}

func (t *Parallel) rootN(c *comm.Comm) int {
	if c.IsRoot() {
		return t.n
	}
	return 0
}

func (t *Parallel) PostProcessing() error { return store(t.d, t.out) }
