// Package task_test contains shared fixtures for the task package tests.
//
// Purpose:
//   - Provide a scripted Task that counts phase calls and can fail or panic
//     on demand, so lifecycle behavior is observable without real algorithms.

package task_test

import (
	"context"

	"github.com/katalvlaran/ppc/task"
)

// Phase call counters indexed by task.Phase.
type calls [5]int

// scriptedTask records phase invocations and returns the configured outcome.
type scriptedTask struct {
	calls    calls
	fail     map[task.Phase]error // error to return per phase
	panicAt  task.Phase           // phase that panics (PhaseNone = never)
	blockRun bool                 // Run signals started, then waits for ctx.Done()
	started  chan struct{}
}

func newScriptedTask() *scriptedTask {
	return &scriptedTask{fail: map[task.Phase]error{}, started: make(chan struct{}, 1)}
}

func (s *scriptedTask) do(p task.Phase) error {
	s.calls[p]++
	if s.panicAt == p {
		panic("boom in " + p.String())
	}
	return s.fail[p]
}

func (s *scriptedTask) Validation() error    { return s.do(task.PhaseValidation) }
func (s *scriptedTask) PreProcessing() error { return s.do(task.PhasePreProcessing) }
func (s *scriptedTask) PostProcessing() error {
	return s.do(task.PhasePostProcessing)
}

func (s *scriptedTask) Run(ctx context.Context) error {
	if s.blockRun {
		s.started <- struct{}{}
		<-ctx.Done()
		return ctx.Err()
	}
	return s.do(task.PhaseRun)
}

func (s *scriptedTask) Name() string { return "scripted" }

// copyTask sums its float64 input into a single-element output; a minimal
// realistic task reading and writing through Data.
type copyTask struct {
	d   *task.Data
	in  []float64
	sum float64
}

func (c *copyTask) Validation() error {
	if err := c.d.ExpectSlots(1, 1); err != nil {
		return err
	}
	if err := c.d.ExpectInput(0, task.Float64, 1); err != nil {
		return err
	}
	return c.d.ExpectOutput(0, task.Float64, 1)
}

func (c *copyTask) PreProcessing() error {
	in, err := task.Input[float64](c.d, 0)
	if err != nil {
		return err
	}
	c.in = append(c.in[:0], in...)
	return nil
}

func (c *copyTask) Run(context.Context) error {
	c.sum = 0
	for _, v := range c.in {
		c.sum += v
	}
	return nil
}

func (c *copyTask) PostProcessing() error {
	out, err := task.Output[float64](c.d, 0)
	if err != nil {
		return err
	}
	out[0] = c.sum
	return nil
}
