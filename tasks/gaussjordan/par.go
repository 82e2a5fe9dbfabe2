// SPDX-License-Identifier: MIT

package gaussjordan

import (
	"context"
	"math"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

// tagRows carries a rank's round-robin rows from the root.
const tagRows = 1

// Parallel solves the system over a comm.World with round-robin row ownership.
type Parallel struct {
	d     *task.Data
	world *comm.World
	n     int
	a, x  []float64
}

// NewParallel returns the task bound to d, running on world.
func NewParallel(d *task.Data, world *comm.World) *Parallel {
	return &Parallel{d: d, world: world}
}

// Name implements task.Named.
func (t *Parallel) Name() string { return "gaussjordan/par" }

func (t *Parallel) Validation() (err error) {
	if t.world == nil {
		return task.Errorf(task.PreconditionViolated, "gaussjordan: nil world")
	}
	t.n, err = validate(t.d)
	return err
}

func (t *Parallel) PreProcessing() error {
	in, err := task.Input[float64](t.d, 0)
	if err != nil {
		return err
	}
	t.a = append([]float64(nil), in[:t.n*(t.n+1)]...)
	return nil
}

// owned returns the rows of rank r, packed in increasing order.
func owned(a []float64, n, r, size int) []float64 {
	cols := n + 1
	var out []float64
	for i := r; i < n; i += size {
		out = append(out, a[i*cols:(i+1)*cols]...)
	}
	return out
}

func (t *Parallel) Run(ctx context.Context) error {
	err := t.world.Run(ctx, func(ctx context.Context, c *comm.Comm) error {
		n, err := comm.BcastValue(ctx, c, comm.RootRank, t.rootN(c))
		if err != nil {
			return err
		}
		cols, size, rank := n+1, c.Size(), c.Rank()

		// 1) Distribute rows i ≡ rank (mod size).
		var local []float64
		if c.IsRoot() {
			for r := 1; r < size; r++ {
				if err = c.Send(ctx, r, tagRows, owned(t.a, n, r, size)); err != nil {
					return err
				}
			}
			local = owned(t.a, n, rank, size)
		} else if local, err = comm.RecvSlice[float64](ctx, c, comm.RootRank, tagRows); err != nil {
			return err
		}
		row := func(i int) []float64 {
			li := i / size
			return local[li*cols : (li+1)*cols]
		}
		used := make([]bool, n)
		piv := make([]int, n)

		// 2) Eliminate column by column.
		for k := 0; k < n; k++ {
			best := pivot{abs: -1, row: n}
			for i := rank; i < n; i += size {
				if !used[i] {
					best = better(best, pivot{abs: math.Abs(row(i)[k]), row: i})
				}
			}
			if best, err = comm.AllReduceFunc(ctx, c, best, better); err != nil {
				return err
			}
			if best.abs < Epsilon {
				return singular(k, best)
			}
			used[best.row] = true
			piv[k] = best.row

			owner := best.row % size
			var pr []float64
			if rank == owner {
				pr = row(best.row)
				scaleRow(pr, k)
			}
			if pr, err = comm.Bcast(ctx, c, owner, pr); err != nil {
				return err
			}
			for i := rank; i < n; i += size {
				if i != best.row {
					eliminate(row(i), pr, k)
				}
			}
		}

		// 3) x[k] lives in the last column of pivot row piv[k].
		x := make([]float64, n)
		for k := 0; k < n; k++ {
			if piv[k]%size == rank {
				x[k] = row(piv[k])[n]
			}
		}
		if x, err = comm.Reduce(ctx, c, comm.RootRank, x, comm.OpSum); err != nil {
			return err
		}
		if !c.IsRoot() {
			return nil
		}
		t.x = x
		return checkSolution(x)
	})
	return comm.TaskError(err)
}

func (t *Parallel) rootN(c *comm.Comm) int {
	if c.IsRoot() {
		return t.n
	}
	return 0
}

func (t *Parallel) PostProcessing() error { return store(t.d, t.x) }
