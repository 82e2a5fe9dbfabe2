// SPDX-License-Identifier: MIT

package perf

import (
	"fmt"
	"math"
)

// RunType names the measurement mode that produced a Results.
type RunType int

const (
	None RunType = iota
	Pipeline
	TaskRun
)

// String returns "none", "pipeline" or "task_run".
func (t RunType) String() string {
	switch t {
	case Pipeline:
		return "pipeline"
	case TaskRun:
		return "task_run"
	default:
		return "none"
	}
}

// MarshalText lets reports encode the run type by name.
func (t RunType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText parses a name produced by MarshalText.
func (t *RunType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none":
		*t = None
	case "pipeline":
		*t = Pipeline
	case "task_run":
		*t = TaskRun
	default:
		return fmt.Errorf("perf: unknown run type %q", b)
	}
	return nil
}

// Results is the timing record of one measurement. It is created fresh per
// measurement and not modified after the measurement returns.
//
// Invariant: for a non-empty Samples, Min <= Avg <= Max and
// Avg == Total / len(Samples).
type Results struct {
	Task    string    `yaml:"task"`
	Type    RunType   `yaml:"type"`
	Samples []float64 `yaml:"samples,flow"` // per-repetition seconds
	Min     float64   `yaml:"min"`
	Max     float64   `yaml:"max"`
	Avg     float64   `yaml:"avg"`
	Total   float64   `yaml:"total"`
	MaxTime float64   `yaml:"max_time"` // limit the measurement was held to
	Passed  bool      `yaml:"passed"`
}

// newResults computes the statistics over samples and the pass flag.
func newResults(name string, typ RunType, samples []float64, maxTime float64) *Results {
	r := &Results{Task: name, Type: typ, Samples: samples, MaxTime: maxTime}
	if len(samples) == 0 {
		return r
	}

	r.Min, r.Max = math.Inf(1), math.Inf(-1)
	for _, s := range samples {
		r.Total += s
		r.Min = math.Min(r.Min, s)
		r.Max = math.Max(r.Max, s)
	}
	r.Avg = r.Total / float64(len(samples))
	// Guard the invariant against rounding in Total/len.
	r.Avg = math.Max(r.Min, math.Min(r.Max, r.Avg))
	r.Passed = maxTime <= 0 || r.Avg <= maxTime

	return r
}

// String renders "<task>:<type>:<avg seconds>", the line format of the
// original perf output.
func (r *Results) String() string {
	return fmt.Sprintf("%s:%s:%.10f", r.Task, r.Type, r.Avg)
}
