// SPDX-License-Identifier: MIT

package sobel

import (
	"context"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

// tagHalo carries the haloed row block from the root to one rank.
const tagHalo = 1

// Parallel filters row blocks on every rank of a comm.World.
type Parallel struct {
	d        *task.Data
	world    *comm.World
	s        dims
	src, dst []uint8
}

// NewParallel returns the task bound to d, running on world.
func NewParallel(d *task.Data, world *comm.World) *Parallel {
	return &Parallel{d: d, world: world}
}

// Name implements task.Named.
func (t *Parallel) Name() string { return "sobel/par" }

func (t *Parallel) Validation() (err error) {
	if t.world == nil {
		return task.Errorf(task.PreconditionViolated, "sobel: nil world")
	}
	t.s, err = validate(t.d)
	return err
}

func (t *Parallel) PreProcessing() (err error) {
	t.src, err = load(t.d, t.s)
	return err
}

// haloRange returns the first and end rows a rank needs to compute rows
// [from, to).
func haloRange(from, to, h int) (int, int) {
	if from > 0 {
		from--
	}
	if to < h {
		to++
	}
	return from, to
}

func (t *Parallel) Run(ctx context.Context) error {
	err := t.world.Run(ctx, func(ctx context.Context, c *comm.Comm) error {
		var s dims
		if c.IsRoot() {
			s = t.s
		}
		s, err := comm.BcastValue(ctx, c, comm.RootRank, s)
		if err != nil {
			return err
		}
		rows := comm.Counts(s.h, c.Size())
		starts := comm.Displs(rows)
		from, to := starts[c.Rank()], starts[c.Rank()]+rows[c.Rank()]

		// 1) Root ships every rank its block with halo rows.
		var block []uint8
		if c.IsRoot() {
			for r := 1; r < c.Size(); r++ {
				lo, hi := haloRange(starts[r], starts[r]+rows[r], s.h)
				if rows[r] == 0 {
					lo, hi = 0, 0
				}
				if err = comm.SendSlice(ctx, c, r, tagHalo, t.src[lo*s.w:hi*s.w]); err != nil {
					return err
				}
			}
			lo, hi := haloRange(from, to, s.h)
			block = t.src[lo*s.w : hi*s.w]
		} else if block, err = comm.RecvSlice[uint8](ctx, c, comm.RootRank, tagHalo); err != nil {
			return err
		}

		// 2) Local rows.
		first, _ := haloRange(from, to, s.h)
		local := make([]uint8, rows[c.Rank()]*s.w)
		if len(local) > 0 {
			Filter(block, first, s.w, s.h, from, to, local)
		}

		// 3) Gather.
		out, err := comm.Gatherv(ctx, c, comm.RootRank, local, scale(rows, s.w))
		if err != nil {
			return err
		}
		if c.IsRoot() {
			t.dst = out
		}
		return nil
	})
	return comm.TaskError(err)
}

func (t *Parallel) PostProcessing() error { return store(t.d, t.dst) }

func scale(counts []int, f int) []int {
	out := make([]int, len(counts))
	for i, c := range counts {
		out[i] = c * f
	}
	return out
}
