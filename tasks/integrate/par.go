// SPDX-License-Identifier: MIT

package integrate

import (
	"context"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

// Parallel estimates the integral by Monte Carlo over a comm.World.
type Parallel struct {
	d     *task.Data
	world *comm.World
	o     options
	p     problem
	res   float64
}

// NewParallel returns the task bound to d, running on world.
func NewParallel(d *task.Data, world *comm.World, opts ...Option) *Parallel {
	return &Parallel{d: d, world: world, o: buildOptions(opts)}
}

// Name implements task.Named.
func (t *Parallel) Name() string { return "integrate/par" }

func (t *Parallel) Validation() (err error) {
	if t.world == nil {
		return task.Errorf(task.PreconditionViolated, "integrate: nil world")
	}
	t.p, err = validate(t.d)
	return err
}

func (t *Parallel) PreProcessing() error { return checkCount(t.p.n) }

func (t *Parallel) Run(ctx context.Context) error {
	var res float64
	err := t.world.Run(ctx, func(ctx context.Context, c *comm.Comm) error {
		var p problem
		if c.IsRoot() {
			p = t.p
		}
		p, err := comm.BcastValue(ctx, c, comm.RootRank, p)
		if err != nil {
			return err
		}

		// Local share of the samples, drawn from this rank's stream.
		local := int64(comm.Counts(int(p.n), c.Size())[c.Rank()])
		rng := rankRNG(t.o.seed, c.Rank())
		width := p.b - p.a
		var (
			sum float64
			i   int64
		)
		for i = 0; i < local; i++ {
			sum += t.o.f(p.a + rng.Float64()*width)
		}

		total, err := comm.Reduce(ctx, c, comm.RootRank, []float64{sum}, comm.OpSum)
		if err != nil {
			return err
		}
		if c.IsRoot() {
			res = width * total[0] / float64(p.n)
		}
		return nil
	})
	if err != nil {
		return comm.TaskError(err)
	}
	t.res = res
	return checkResult(res)
}

func (t *Parallel) PostProcessing() error { return store(t.d, t.res) }
