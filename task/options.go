// SPDX-License-Identifier: MIT

package task

import "go.uber.org/zap"

// Option configures a Lifecycle.
type Option func(*lifecycleOptions)

type lifecycleOptions struct {
	name         string
	logger       *zap.Logger
	onTransition func(from, to State)
}

func defaultLifecycleOptions() lifecycleOptions {
	return lifecycleOptions{logger: zap.NewNop()}
}

// WithName overrides the task name used in logs and errors.
func WithName(name string) Option {
	return func(o *lifecycleOptions) { o.name = name }
}

// WithLogger sets the structured logger. Panics on nil (programmer error).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("task: WithLogger(nil)")
	}
	return func(o *lifecycleOptions) { o.logger = l }
}

// WithOnTransition installs a hook invoked after every state change,
// including transitions into Failed. Rejected out-of-order calls do not
// change state and do not fire the hook.
func WithOnTransition(fn func(from, to State)) Option {
	return func(o *lifecycleOptions) { o.onTransition = fn }
}
