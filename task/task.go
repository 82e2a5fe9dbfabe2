// SPDX-License-Identifier: MIT

package task

import "context"

// Task is one four-phase algorithm unit.
//
// Implementations read their inputs from, and write their results to, the
// *Data they were constructed with. Phases are driven by a Lifecycle, which
// guarantees the order Validation → PreProcessing → Run (repeatable) →
// PostProcessing; implementations therefore never re-check ordering.
//
// Error contract:
//   - Return nil on success.
//   - Return an *Error (via Errorf / Wrap) to pick the failure kind; any other
//     error is classified by the Lifecycle.
type Task interface {
	// Validation checks slot counts, element types and buffer sizes.
	Validation() error

	// PreProcessing copies inputs into task-owned scratch state.
	PreProcessing() error

	// Run executes the algorithm. It may be called several times in a row on
	// the same pre-processed state and must produce the same result each time.
	Run(ctx context.Context) error

	// PostProcessing writes the result into the output slots.
	PostProcessing() error
}

// Named is implemented by tasks that report their own name; the Lifecycle
// uses it when no WithName option is given.
type Named interface {
	Name() string
}
