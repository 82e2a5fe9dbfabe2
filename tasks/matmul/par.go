// SPDX-License-Identifier: MIT

package matmul

import (
	"context"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

// Parallel computes C = A·B over the ranks of a comm.World.
// Only the root reads the input slots and writes the output slot.
type Parallel struct {
	d     *task.Data
	world *comm.World
	s     shape
	a, b  []float64
	c     []float64
}

// NewParallel returns the task bound to d, running on world.
func NewParallel(d *task.Data, world *comm.World) *Parallel {
	return &Parallel{d: d, world: world}
}

// Name implements task.Named.
func (t *Parallel) Name() string { return "matmul/par" }

func (t *Parallel) Validation() error {
	if t.world == nil {
		return task.Errorf(task.PreconditionViolated, "matmul: nil world")
	}
	s, err := validate(t.d)
	t.s = s
	return err
}

func (t *Parallel) PreProcessing() (err error) {
	t.a, t.b, err = load(t.d, t.s)
	return err
}

func (t *Parallel) Run(ctx context.Context) error {
	err := t.world.Run(ctx, func(ctx context.Context, c *comm.Comm) error {
		// 1) Root announces the shape.
		var dims []int
		if c.IsRoot() {
			dims = []int{t.s.m, t.s.k, t.s.n}
		}
		dims, err := comm.Bcast(ctx, c, comm.RootRank, dims)
		if err != nil {
			return err
		}
		m, k, n := dims[0], dims[1], dims[2]

		// 2) Row blocks of A out, B everywhere.
		rows := comm.Counts(m, c.Size())
		aCounts := scale(rows, k)
		var aSend, bSend []float64
		if c.IsRoot() {
			aSend, bSend = t.a, t.b
		}
		aLocal, err := comm.Scatterv(ctx, c, comm.RootRank, aSend, aCounts)
		if err != nil {
			return err
		}
		b, err := comm.Bcast(ctx, c, comm.RootRank, bSend)
		if err != nil {
			return err
		}

		// 3) Local block product.
		cLocal := make([]float64, rows[c.Rank()]*n)
		multiplyRows(aLocal, b, cLocal, rows[c.Rank()], k, n)

		// 4) Gather C on the root.
		cAll, err := comm.Gatherv(ctx, c, comm.RootRank, cLocal, scale(rows, n))
		if err != nil {
			return err
		}
		if c.IsRoot() {
			t.c = cAll
		}
		return nil
	})
	return comm.TaskError(err)
}

func (t *Parallel) PostProcessing() error { return store(t.d, t.c) }

// scale multiplies every count by f.
func scale(counts []int, f int) []int {
	out := make([]int, len(counts))
	for i, c := range counts {
		out[i] = c * f
	}
	return out
}
