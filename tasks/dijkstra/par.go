// SPDX-License-Identifier: MIT

package dijkstra

import (
	"context"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

// tagColumns carries a rank's column block of the adjacency matrix.
const tagColumns = 1

// Parallel runs block-distributed Dijkstra over a comm.World.
type Parallel struct {
	d     *task.Data
	world *comm.World
	g     graph
	adj   []int64
	dist  []int64
}

// NewParallel returns the task bound to d, running on world.
func NewParallel(d *task.Data, world *comm.World) *Parallel {
	return &Parallel{d: d, world: world}
}

// Name implements task.Named.
func (t *Parallel) Name() string { return "dijkstra/par" }

func (t *Parallel) Validation() (err error) {
	if t.world == nil {
		return task.Errorf(task.PreconditionViolated, "dijkstra: nil world")
	}
	t.g, err = validate(t.d)
	return err
}

func (t *Parallel) PreProcessing() (err error) {
	t.adj, err = load(t.d)
	return err
}

// candidate is the min-loc operand: the closest unvisited vertex of a rank.
type candidate struct {
	dist int64
	v    int
}

func minLoc(a, b candidate) candidate {
	if b.dist < a.dist || (b.dist == a.dist && b.v < a.v) {
		return b
	}
	return a
}

// columns extracts the n×cnt column block starting at column lo, row-major.
func columns(adj []int64, n, lo, cnt int) []int64 {
	out := make([]int64, n*cnt)
	for u := 0; u < n; u++ {
		copy(out[u*cnt:(u+1)*cnt], adj[u*n+lo:u*n+lo+cnt])
	}
	return out
}

func (t *Parallel) Run(ctx context.Context) error {
	err := t.world.Run(ctx, func(ctx context.Context, c *comm.Comm) error {
		var g graph
		if c.IsRoot() {
			g = t.g
		}
		g, err := comm.BcastValue(ctx, c, comm.RootRank, g)
		if err != nil {
			return err
		}
		n := g.n
		counts := comm.Counts(n, c.Size())
		displs := comm.Displs(counts)
		lo, cnt := displs[c.Rank()], counts[c.Rank()]

		// 1) Column blocks: weights of every u→v for the owned v.
		var cols []int64
		if c.IsRoot() {
			for r := 1; r < c.Size(); r++ {
				if err = c.Send(ctx, r, tagColumns, columns(t.adj, n, displs[r], counts[r])); err != nil {
					return err
				}
			}
			cols = columns(t.adj, n, lo, cnt)
		} else if cols, err = comm.RecvSlice[int64](ctx, c, comm.RootRank, tagColumns); err != nil {
			return err
		}

		// 2) Owned distances.
		dist := make([]int64, cnt)
		visited := make([]bool, cnt)
		for i := range dist {
			dist[i] = Unreachable
		}
		if g.src >= lo && g.src < lo+cnt {
			dist[g.src-lo] = 0
		}

		// 3) n global steps: select, finalize, relax.
		for step := 0; step < n; step++ {
			best := candidate{dist: Unreachable, v: n}
			for i := range dist {
				if !visited[i] && dist[i] < best.dist {
					best = candidate{dist: dist[i], v: lo + i}
				}
			}
			if best, err = comm.AllReduceFunc(ctx, c, best, minLoc); err != nil {
				return err
			}
			if best.dist == Unreachable {
				break
			}
			u := best.v
			if u >= lo && u < lo+cnt {
				visited[u-lo] = true
			}
			for i := range dist {
				w := cols[u*cnt+i]
				if visited[i] || w < 0 || lo+i == u {
					continue
				}
				if nd := pathSum(best.dist, w); nd < dist[i] {
					dist[i] = nd
				}
			}
		}

		// 4) Gather.
		all, err := comm.Gatherv(ctx, c, comm.RootRank, dist, counts)
		if err != nil {
			return err
		}
		if c.IsRoot() {
			t.dist = all
		}
		return nil
	})
	return comm.TaskError(err)
}

func (t *Parallel) PostProcessing() error { return store(t.d, t.dist) }
