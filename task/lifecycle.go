// SPDX-License-Identifier: MIT

// Package task: Lifecycle, the enforcing driver of the four-phase contract.
//
// Lifecycle wraps a Task and owns its State. Each phase method:
//  1. rejects the call with an OrderViolation error when the current state
//     does not allow that phase (the Task is not invoked, state unchanged);
//  2. invokes the Task phase, converting a panic into a Panic error;
//  3. stamps the task name and phase onto a returned error and moves to
//     Failed, or moves to the phase's target state on success.
//
// Concurrency:
//   - State() is safe from any goroutine.
//   - Phase calls are serialized; a phase call that overlaps another one in
//     flight is rejected with OrderViolation.

package task

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Lifecycle drives one Task through its phases.
type Lifecycle struct {
	task Task
	opts lifecycleOptions

	mu    sync.Mutex
	state State
	busy  bool
}

// NewLifecycle wraps t. The name is taken from WithName, then from
// t.Name() when t implements Named, then from the dynamic type of t.
func NewLifecycle(t Task, opts ...Option) (*Lifecycle, error) {
	if t == nil {
		return nil, ErrNilTask
	}
	o := defaultLifecycleOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.name == "" {
		if n, ok := t.(Named); ok {
			o.name = n.Name()
		} else {
			o.name = fmt.Sprintf("%T", t)
		}
	}

	return &Lifecycle{task: t, opts: o, state: Created}, nil
}

// Name returns the task name used in logs and errors.
func (l *Lifecycle) Name() string { return l.opts.name }

// Task returns the wrapped task.
func (l *Lifecycle) Task() Task { return l.task }

// State returns the current lifecycle state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Validation runs the Validation phase.
func (l *Lifecycle) Validation() error {
	return l.step(PhaseValidation, func() error { return l.task.Validation() })
}

// PreProcessing runs the PreProcessing phase.
func (l *Lifecycle) PreProcessing() error {
	return l.step(PhasePreProcessing, func() error { return l.task.PreProcessing() })
}

// Run runs the Run phase. A canceled ctx fails fast with a Canceled error
// before the task is invoked.
func (l *Lifecycle) Run(ctx context.Context) error {
	return l.step(PhaseRun, func() error {
		if err := ctx.Err(); err != nil {
			return Wrap(Canceled, err)
		}
		return l.task.Run(ctx)
	})
}

// PostProcessing runs the PostProcessing phase.
func (l *Lifecycle) PostProcessing() error {
	return l.step(PhasePostProcessing, func() error { return l.task.PostProcessing() })
}

// Execute runs all four phases in order, stopping at the first error.
func (l *Lifecycle) Execute(ctx context.Context) error {
	if err := l.Validation(); err != nil {
		return err
	}
	if err := l.PreProcessing(); err != nil {
		return err
	}
	if err := l.Run(ctx); err != nil {
		return err
	}
	return l.PostProcessing()
}

// step implements the guard → invoke → transition sequence shared by all phases.
func (l *Lifecycle) step(p Phase, fn func() error) error {
	// 1) Guard: order and re-entrancy.
	l.mu.Lock()
	from := l.state
	if l.busy || !allowed(from, p) {
		busy := l.busy
		l.mu.Unlock()
		err := &Error{Kind: OrderViolation, Task: l.opts.name, Phase: p,
			Err: fmt.Errorf("cannot start %s from state %s (busy=%t)", p, from, busy)}
		l.opts.logger.Warn("phase rejected",
			zap.String("task", l.opts.name),
			zap.Stringer("phase", p),
			zap.Stringer("state", from),
			zap.Bool("busy", busy))
		return err
	}
	l.busy = true
	l.mu.Unlock()

	// 2) Invoke the task phase.
	err := invoke(fn)

	// 3) Transition.
	to := p.target()
	if err != nil {
		to = Failed
		err = l.stamp(p, err)
		l.opts.logger.Warn("phase failed",
			zap.String("task", l.opts.name),
			zap.Stringer("phase", p),
			zap.Stringer("kind", KindOf(err)),
			zap.Error(err))
	} else {
		l.opts.logger.Debug("phase done",
			zap.String("task", l.opts.name),
			zap.Stringer("phase", p))
	}

	l.mu.Lock()
	l.state = to
	l.busy = false
	l.mu.Unlock()

	if l.opts.onTransition != nil {
		l.opts.onTransition(from, to)
	}
	return err
}

// invoke calls fn and converts a panic into a Panic error.
func invoke(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Kind: Panic, Err: fmt.Errorf("recovered: %v", r)}
		}
	}()
	return fn()
}

// stamp returns a fresh *Error carrying the task name and phase and wrapping
// err, so errors.Is still finds the original value. Errors without a kind are
// classified by phase; context errors become Canceled.
func (l *Lifecycle) stamp(p Phase, err error) error {
	var te *Error
	if errors.As(err, &te) {
		return &Error{Kind: te.Kind, Task: l.opts.name, Phase: p, Err: err}
	}

	kind := PreconditionViolated
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		kind = Canceled
	case p == PhaseValidation:
		kind = ValidationFailed
	}
	return &Error{Kind: kind, Task: l.opts.name, Phase: p, Err: err}
}
