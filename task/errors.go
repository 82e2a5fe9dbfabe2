// SPDX-License-Identifier: MIT

// Package task: error kinds and sentinels.
//
// Every failure that crosses the harness boundary is an *Error carrying a
// Kind, the task name and the phase it happened in. Callers match on kind
// with errors.Is against the Err<Kind> sentinels below, or extract the kind
// with KindOf.
//
// Plain sentinels (ErrTypeMismatch, ErrSlotOutOfRange, ...) describe the
// concrete cause and are wrapped inside *Error; errors.Is sees both.

package task

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure classes a task phase can report.
type Kind int

const (
	// KindNone is the zero value; never attached to a returned error.
	KindNone Kind = iota

	// ValidationFailed: inputs/outputs do not match what the task expects.
	ValidationFailed

	// PreconditionViolated: inputs are well-formed but semantically unusable
	// (zero iteration count, odd Simpson interval count, ...).
	PreconditionViolated

	// NumericDivergence: the algorithm produced a non-finite value or hit a
	// singular pivot.
	NumericDivergence

	// OrderViolation: a phase was invoked out of lifecycle order.
	OrderViolation

	// Communication: message passing between ranks failed.
	Communication

	// Canceled: the context was canceled or its deadline passed.
	Canceled

	// Panic: a task phase panicked; the panic value is kept in the message.
	Panic

	// TimeLimitExceeded: a perf measurement average exceeded its limit.
	TimeLimitExceeded
)

var kindNames = [...]string{
	KindNone:             "none",
	ValidationFailed:     "validation_failed",
	PreconditionViolated: "precondition_violated",
	NumericDivergence:    "numeric_divergence",
	OrderViolation:       "order_violation",
	Communication:        "communication",
	Canceled:             "canceled",
	Panic:                "panic",
	TimeLimitExceeded:    "time_limit_exceeded",
}

// String returns the snake_case name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is the failure record of a task phase.
type Error struct {
	Kind  Kind   // failure class
	Task  string // task name, stamped by the lifecycle (may be empty)
	Phase Phase  // phase that failed, stamped by the lifecycle
	Err   error  // underlying cause (may be nil for kind sentinels)
}

// Error renders "task: <name> <phase>: <kind>: <cause>", omitting empty parts.
func (e *Error) Error() string {
	msg := "task:"
	if e.Task != "" {
		msg += " " + e.Task
	}
	if e.Phase != PhaseNone {
		msg += " " + e.Phase.String()
	}
	if e.Task != "" || e.Phase != PhaseNone {
		msg += ":"
	}
	msg += " " + e.Kind.String()
	return msg + causeText(e.Err)
}

// causeText renders the cause of an *Error. A direct *Error cause (a stamped
// task error) contributes only its own cause to avoid repeating the kind.
func causeText(err error) string {
	if err == nil {
		return ""
	}
	if inner, ok := err.(*Error); ok {
		return causeText(inner.Err)
	}
	return ": " + err.Error()
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. This makes the
// Err<Kind> sentinels match any error of that kind regardless of task/phase.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Task == "" && t.Phase == PhaseNone && t.Err == nil
}

// Kind sentinels. Match with errors.Is(err, task.ErrNumericDivergence).
var (
	ErrValidationFailed     = &Error{Kind: ValidationFailed}
	ErrPreconditionViolated = &Error{Kind: PreconditionViolated}
	ErrNumericDivergence    = &Error{Kind: NumericDivergence}
	ErrOrderViolation       = &Error{Kind: OrderViolation}
	ErrCommunication        = &Error{Kind: Communication}
	ErrCanceled             = &Error{Kind: Canceled}
	ErrPanic                = &Error{Kind: Panic}
	ErrTimeLimitExceeded    = &Error{Kind: TimeLimitExceeded}
)

// Cause sentinels used by Buffer / Data accessors.
var (
	// ErrNilData indicates a nil *Data was passed to an accessor or task.
	ErrNilData = errors.New("task: nil task data")

	// ErrSlotOutOfRange indicates an input/output slot index outside the slot list.
	ErrSlotOutOfRange = errors.New("task: slot index out of range")

	// ErrSlotCount indicates the number of input or output slots differs from
	// what the task expects.
	ErrSlotCount = errors.New("task: unexpected slot count")

	// ErrTypeMismatch indicates a buffer holds a different element type than requested.
	ErrTypeMismatch = errors.New("task: buffer element type mismatch")

	// ErrShortBuffer indicates a buffer is shorter than the task requires.
	ErrShortBuffer = errors.New("task: buffer too short")

	// ErrNilTask indicates a nil Task was handed to NewLifecycle.
	ErrNilTask = errors.New("task: nil task")
)

// Errorf builds an *Error of the given kind with a formatted cause.
// %w verbs in format are honored.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches kind to err. A nil err stays nil; an err that already carries
// a kind is returned as is.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return err
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the kind from err, or KindNone when err carries none.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return KindNone
}
