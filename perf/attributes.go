// SPDX-License-Identifier: MIT

package perf

import (
	"fmt"
	"time"

	"github.com/katalvlaran/ppc/task"
)

// Defaults (single source of truth for DefaultAttributes and config defaults).
const (
	// DefaultNumRunning is the repetition count of one measurement.
	DefaultNumRunning = 5

	// DefaultMaxTime is the average-latency limit in seconds; 0 disables it.
	DefaultMaxTime = 10.0
)

// Attributes configures one measurement.
//
//   - NumRunning:   repetition count (> 0).
//   - CurrentTimer: closure returning elapsed seconds from an arbitrary origin;
//     only differences between two calls are used.
//   - MaxTime:      average-latency limit in seconds (<= 0 disables the check).
type Attributes struct {
	NumRunning   int
	CurrentTimer func() float64
	MaxTime      float64
}

// DefaultAttributes returns DefaultNumRunning repetitions, a wall-clock timer
// and DefaultMaxTime.
func DefaultAttributes() Attributes {
	return Attributes{
		NumRunning:   DefaultNumRunning,
		CurrentTimer: WallTimer(),
		MaxTime:      DefaultMaxTime,
	}
}

// WallTimer returns a monotonic timer reporting seconds since the call.
func WallTimer() func() float64 {
	start := time.Now()
	return func() float64 { return time.Since(start).Seconds() }
}

// Validate rejects unusable attributes with a PreconditionViolated error.
func (a Attributes) Validate() error {
	if a.NumRunning <= 0 {
		return task.Errorf(task.PreconditionViolated, "%w: %d", ErrBadNumRunning, a.NumRunning)
	}
	if a.CurrentTimer == nil {
		return task.Wrap(task.PreconditionViolated, ErrNilTimer)
	}
	return nil
}

// String renders the attributes for logs.
func (a Attributes) String() string {
	return fmt.Sprintf("runs=%d max_time=%gs", a.NumRunning, a.MaxTime)
}
