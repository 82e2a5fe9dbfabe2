// SPDX-License-Identifier: MIT

// Package perf: measurement loops.
//
// Both modes time each repetition separately with two CurrentTimer calls and
// average the per-repetition samples:
//
//	PipelineRun:  repeat N × { t0; Validation; PreProcessing; Run; PostProcessing; t1 }
//	TaskRun:      Validation; PreProcessing; repeat N × { t0; Run; t1 }; PostProcessing
//
// A phase error aborts the measurement and is returned as is (already
// stamped with task name, phase and kind by the Lifecycle).

package perf

import (
	"context"

	"go.uber.org/zap"

	"github.com/katalvlaran/ppc/task"
)

// Option configures a Perf.
type Option func(*Perf)

// WithLogger sets the structured logger used by PrintStatistic and the
// measurement loops. Panics on nil (programmer error).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("perf: WithLogger(nil)")
	}
	return func(p *Perf) { p.log = l }
}

// Perf measures a task driven through its Lifecycle.
type Perf struct {
	lc  *task.Lifecycle
	log *zap.Logger
}

// New wraps lc. The lifecycle must be able to start a Validation phase
// (Created, PostProcessed or Failed) when a measurement begins.
func New(lc *task.Lifecycle, opts ...Option) (*Perf, error) {
	if lc == nil {
		return nil, ErrNilLifecycle
	}
	p := &Perf{lc: lc, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// PipelineRun times attr.NumRunning full four-phase pipelines.
func (p *Perf) PipelineRun(ctx context.Context, attr Attributes) (*Results, error) {
	if err := attr.Validate(); err != nil {
		return nil, err
	}
	p.log.Debug("pipeline run start", zap.String("task", p.lc.Name()), zap.Stringer("attr", attr))

	samples := make([]float64, 0, attr.NumRunning)
	for i := 0; i < attr.NumRunning; i++ {
		begin := attr.CurrentTimer()
		if err := p.lc.Execute(ctx); err != nil {
			return nil, err
		}
		samples = append(samples, attr.CurrentTimer()-begin)
	}

	return newResults(p.lc.Name(), Pipeline, samples, attr.MaxTime), nil
}

// TaskRun validates and pre-processes once, times attr.NumRunning Run
// phases, then post-processes once.
func (p *Perf) TaskRun(ctx context.Context, attr Attributes) (*Results, error) {
	if err := attr.Validate(); err != nil {
		return nil, err
	}
	p.log.Debug("task run start", zap.String("task", p.lc.Name()), zap.Stringer("attr", attr))

	if err := p.lc.Validation(); err != nil {
		return nil, err
	}
	if err := p.lc.PreProcessing(); err != nil {
		return nil, err
	}

	samples := make([]float64, 0, attr.NumRunning)
	for i := 0; i < attr.NumRunning; i++ {
		begin := attr.CurrentTimer()
		if err := p.lc.Run(ctx); err != nil {
			return nil, err
		}
		samples = append(samples, attr.CurrentTimer()-begin)
	}

	if err := p.lc.PostProcessing(); err != nil {
		return nil, err
	}

	return newResults(p.lc.Name(), TaskRun, samples, attr.MaxTime), nil
}

// PrintStatistic logs res and reports a TimeLimitExceeded error when the
// average latency exceeded the measurement's MaxTime.
func (p *Perf) PrintStatistic(res *Results) error {
	if res == nil {
		return ErrNilResults
	}

	fields := []zap.Field{
		zap.String("task", res.Task),
		zap.Stringer("type", res.Type),
		zap.Int("runs", len(res.Samples)),
		zap.Float64("avg_sec", res.Avg),
		zap.Float64("min_sec", res.Min),
		zap.Float64("max_sec", res.Max),
		zap.Bool("passed", res.Passed),
	}
	if !res.Passed {
		p.log.Warn(res.String(), fields...)
		return &task.Error{
			Kind: task.TimeLimitExceeded,
			Task: res.Task,
			Err:  errTimeLimit(res),
		}
	}
	p.log.Info(res.String(), fields...)

	return nil
}
