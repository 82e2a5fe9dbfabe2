// SPDX-License-Identifier: MIT

package perf

import (
	"errors"
	"fmt"
)

var (
	// ErrNilLifecycle indicates New was given a nil *task.Lifecycle.
	ErrNilLifecycle = errors.New("perf: nil lifecycle")

	// ErrBadNumRunning indicates Attributes.NumRunning <= 0.
	ErrBadNumRunning = errors.New("perf: NumRunning must be positive")

	// ErrNilTimer indicates Attributes.CurrentTimer is nil.
	ErrNilTimer = errors.New("perf: CurrentTimer is nil")

	// ErrNilResults indicates PrintStatistic was given nil results.
	ErrNilResults = errors.New("perf: nil results")
)

// errTimeLimit describes a Results whose average exceeded its limit.
func errTimeLimit(r *Results) error {
	return fmt.Errorf("average %.6fs exceeds limit %.6fs", r.Avg, r.MaxTime)
}
