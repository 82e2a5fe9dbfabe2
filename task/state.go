// SPDX-License-Identifier: MIT

package task

import "fmt"

// Phase names one of the four lifecycle methods.
type Phase int

const (
	PhaseNone Phase = iota
	PhaseValidation
	PhasePreProcessing
	PhaseRun
	PhasePostProcessing
)

// String returns the snake_case phase name.
func (p Phase) String() string {
	switch p {
	case PhaseValidation:
		return "validation"
	case PhasePreProcessing:
		return "pre_processing"
	case PhaseRun:
		return "run"
	case PhasePostProcessing:
		return "post_processing"
	case PhaseNone:
		return "none"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// State is the lifecycle position of a task.
//
//	Created ─► Validated ─► PreProcessed ─► Ran ─► PostProcessed
//	   ▲                                     │▲          │
//	   │                                     └┘ (rerun)  │
//	   └──────────── Validation restarts ◄───────────────┘
//
// Any phase error moves to Failed; Validation restarts from Failed too.
type State int

const (
	Created State = iota
	Validated
	PreProcessed
	Ran
	PostProcessed
	Failed
)

var stateNames = [...]string{
	Created:       "created",
	Validated:     "validated",
	PreProcessed:  "pre_processed",
	Ran:           "ran",
	PostProcessed: "post_processed",
	Failed:        "failed",
}

// String returns the snake_case state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// target returns the state a successful phase p lands in.
func (p Phase) target() State {
	switch p {
	case PhaseValidation:
		return Validated
	case PhasePreProcessing:
		return PreProcessed
	case PhaseRun:
		return Ran
	case PhasePostProcessing:
		return PostProcessed
	default:
		return Failed
	}
}

// allowed reports whether phase p may start from state s.
func allowed(s State, p Phase) bool {
	switch p {
	case PhaseValidation:
		return s == Created || s == PostProcessed || s == Failed
	case PhasePreProcessing:
		return s == Validated
	case PhaseRun:
		return s == PreProcessed || s == Ran
	case PhasePostProcessing:
		return s == Ran
	default:
		return false
	}
}
