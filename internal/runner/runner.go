// SPDX-License-Identifier: MIT

// Package runner drives catalog entries and fixtures through the perf
// harness for the ppcperf command.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/internal/config"
	"github.com/katalvlaran/ppc/internal/fixture"
	"github.com/katalvlaran/ppc/perf"
	"github.com/katalvlaran/ppc/task"
	"github.com/katalvlaran/ppc/tasks/catalog"
)

// ErrNoEntries indicates the selection matched no catalog entry.
var ErrNoEntries = errors.New("runner: no task selected")

// Option configures a Runner.
type Option func(*Runner)

// WithLogger replaces the default zap.L() logger.
func WithLogger(l *zap.Logger) Option { return func(r *Runner) { r.log = l } }

// WithRegistry replaces catalog.Default().
func WithRegistry(reg *catalog.Registry) Option { return func(r *Runner) { r.reg = reg } }

// WithTimer replaces the wall-clock timer, for deterministic tests.
func WithTimer(timer func() float64) Option { return func(r *Runner) { r.timer = timer } }

// Runner measures and verifies tasks as configured.
type Runner struct {
	cfg   *config.Config
	reg   *catalog.Registry
	world *comm.World
	log   *zap.Logger
	timer func() float64
}

// New builds a Runner with a world of cfg.Comm.Size ranks.
func New(cfg *config.Config, opts ...Option) (*Runner, error) {
	r := &Runner{cfg: cfg, reg: catalog.Default(), log: zap.L(), timer: perf.WallTimer()}
	for _, opt := range opts {
		opt(r)
	}
	w, err := comm.NewWorld(cfg.Comm.Size, comm.WithLogger(r.log.Named("comm")))
	if err != nil {
		return nil, err
	}
	r.world = w
	return r, nil
}

// Registry returns the registry in use.
func (r *Runner) Registry() *catalog.Registry { return r.reg }

// newReport stamps the run parameters.
func (r *Runner) newReport() *Report {
	return &Report{
		Generated: time.Now().UTC(),
		WorldSize: r.world.Size(),
		Size:      r.cfg.Tasks.Size,
		Seed:      r.cfg.Tasks.Seed,
	}
}

func (r *Runner) attributes() perf.Attributes {
	return perf.Attributes{
		NumRunning:   r.cfg.Perf.NumRunning,
		CurrentTimer: r.timer,
		MaxTime:      r.cfg.Perf.MaxTime,
	}
}

// Measure runs every selected catalog entry in each enabled perf mode and
// verifies its outputs. Only ctx cancellation and an empty selection are
// returned as errors; task failures are recorded in the report.
func (r *Runner) Measure(ctx context.Context, only ...string) (*Report, error) {
	prefixes := r.cfg.Tasks.Include
	if len(only) > 0 {
		prefixes = only
	}
	entries := r.reg.Select(prefixes...)
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoEntries, prefixes)
	}

	rep := r.newReport()
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.add(r.measure(ctx, e.Name))
	}
	return rep, nil
}

type measureFunc func(*perf.Perf, context.Context, perf.Attributes) (*perf.Results, error)

func (r *Runner) modes() []measureFunc {
	var out []measureFunc
	if r.cfg.Perf.Pipeline() {
		out = append(out, (*perf.Perf).PipelineRun)
	}
	if r.cfg.Perf.TaskRun() {
		out = append(out, (*perf.Perf).TaskRun)
	}
	return out
}

func (r *Runner) measure(ctx context.Context, name string) Entry {
	log := r.log.With(zap.String("task", name))
	entry := Entry{Name: name, Verified: true}
	params := catalog.Params{Size: r.cfg.Tasks.Size, Seed: r.cfg.Tasks.Seed}

	for _, run := range r.modes() {
		// A fresh instance per mode, so every measurement starts from Created.
		inst, err := r.reg.Build(name, params, r.world)
		if err != nil {
			return failed(entry, err)
		}
		lc, err := task.NewLifecycle(inst.Task, task.WithLogger(log))
		if err != nil {
			return failed(entry, err)
		}
		p, err := perf.New(lc, perf.WithLogger(log))
		if err != nil {
			return failed(entry, err)
		}

		res, err := run(p, ctx, r.attributes())
		if err != nil {
			log.Error("measurement failed", zap.Error(err))
			return failed(entry, err)
		}
		entry.Results = append(entry.Results, res)
		_ = p.PrintStatistic(res) // a missed limit is recorded in res.Passed

		if err = inst.Check(); err != nil {
			log.Error("output check failed", zap.Error(err))
			entry.Verified = false
			entry.Error = err.Error()
		}
	}
	return entry
}

func failed(e Entry, err error) Entry {
	e.Verified = false
	e.Error = err.Error()
	if k := task.KindOf(err); k != task.KindNone {
		e.Kind = k.String()
	}
	return e
}

// Fixtures executes every variant of each fixture file once and checks the
// outputs against the expected values.
func (r *Runner) Fixtures(ctx context.Context, paths ...string) (*Report, error) {
	rep := r.newReport()
	for _, path := range paths {
		f, err := fixture.Load(path)
		if err != nil {
			rep.add(failed(Entry{Name: path}, err))
			continue
		}
		for _, name := range f.Names() {
			if err = ctx.Err(); err != nil {
				return rep, err
			}
			rep.add(r.fixture(ctx, path, name, f))
		}
	}
	return rep, nil
}

func (r *Runner) fixture(ctx context.Context, path, name string, f *fixture.Fixture) Entry {
	entry := Entry{Name: path + ":" + name}
	d, err := f.Data()
	if err != nil {
		return failed(entry, err)
	}
	t, err := r.reg.Bind(name, d, f.Seed, r.world)
	if err != nil {
		return failed(entry, err)
	}
	lc, err := task.NewLifecycle(t, task.WithLogger(r.log.With(zap.String("fixture", path))))
	if err != nil {
		return failed(entry, err)
	}
	if err = lc.Execute(ctx); err != nil {
		return failed(entry, err)
	}
	if err = f.Check(d); err != nil {
		return failed(entry, err)
	}
	entry.Verified = true
	r.log.Info("fixture passed", zap.String("fixture", path), zap.String("task", name))
	return entry
}
