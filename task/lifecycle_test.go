package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/katalvlaran/ppc/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// ------------------------------------------------------------------------
// 1. Construction
// ------------------------------------------------------------------------

func TestNewLifecycle_NilTask(t *testing.T) {
	_, err := task.NewLifecycle(nil)
	require.ErrorIs(t, err, task.ErrNilTask)
}

func TestNewLifecycle_Name(t *testing.T) {
	lc, err := task.NewLifecycle(newScriptedTask())
	require.NoError(t, err)
	require.Equal(t, "scripted", lc.Name()) // from Named

	lc, err = task.NewLifecycle(newScriptedTask(), task.WithName("custom"))
	require.NoError(t, err)
	require.Equal(t, "custom", lc.Name())

	lc, err = task.NewLifecycle(&copyTask{})
	require.NoError(t, err)
	require.Equal(t, "*task_test.copyTask", lc.Name()) // from dynamic type
}

// ------------------------------------------------------------------------
// 2. Happy path
// ------------------------------------------------------------------------

// TestExecute_Pipeline drives a real data-carrying task end to end.
func TestExecute_Pipeline(t *testing.T) {
	in := []float64{1.5, 2.5, 6}
	out := make([]float64, 1)
	d := task.NewData().AddInput(task.NewBuffer(in)).AddOutput(task.NewBuffer(out))

	var seen []task.State
	lc, err := task.NewLifecycle(&copyTask{d: d},
		task.WithLogger(zaptest.NewLogger(t)),
		task.WithOnTransition(func(_, to task.State) { seen = append(seen, to) }))
	require.NoError(t, err)
	require.Equal(t, task.Created, lc.State())

	require.NoError(t, lc.Execute(context.Background()))
	require.Equal(t, 10.0, out[0])
	require.Equal(t, task.PostProcessed, lc.State())
	require.Equal(t, []task.State{task.Validated, task.PreProcessed, task.Ran, task.PostProcessed}, seen)
}

// TestRun_Repeatable checks Run may repeat on the same pre-processed state,
// and a new cycle may start after PostProcessing.
func TestRun_Repeatable(t *testing.T) {
	s := newScriptedTask()
	lc, err := task.NewLifecycle(s)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, lc.Validation())
	require.NoError(t, lc.PreProcessing())
	for i := 0; i < 3; i++ {
		require.NoError(t, lc.Run(ctx))
	}
	require.NoError(t, lc.PostProcessing())
	require.NoError(t, lc.Execute(ctx))

	assert.Equal(t, 2, s.calls[task.PhaseValidation])
	assert.Equal(t, 2, s.calls[task.PhasePreProcessing])
	assert.Equal(t, 4, s.calls[task.PhaseRun])
	assert.Equal(t, 2, s.calls[task.PhasePostProcessing])
}

// ------------------------------------------------------------------------
// 3. Ordering: out-of-order calls never crash and never reach the task
// ------------------------------------------------------------------------

func TestLifecycle_OutOfOrder(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name  string
		setup func(lc *task.Lifecycle)
		call  func(lc *task.Lifecycle) error
		phase task.Phase
	}{
		{"run before validation", func(*task.Lifecycle) {}, func(lc *task.Lifecycle) error { return lc.Run(ctx) }, task.PhaseRun},
		{"pre before validation", func(*task.Lifecycle) {}, func(lc *task.Lifecycle) error { return lc.PreProcessing() }, task.PhasePreProcessing},
		{"post before run", func(lc *task.Lifecycle) { _ = lc.Validation(); _ = lc.PreProcessing() },
			func(lc *task.Lifecycle) error { return lc.PostProcessing() }, task.PhasePostProcessing},
		{"validation twice", func(lc *task.Lifecycle) { _ = lc.Validation() },
			func(lc *task.Lifecycle) error { return lc.Validation() }, task.PhaseValidation},
		{"pre after run", func(lc *task.Lifecycle) { _ = lc.Validation(); _ = lc.PreProcessing(); _ = lc.Run(ctx) },
			func(lc *task.Lifecycle) error { return lc.PreProcessing() }, task.PhasePreProcessing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newScriptedTask()
			lc, err := task.NewLifecycle(s)
			require.NoError(t, err)
			tc.setup(lc)
			before := s.calls
			stateBefore := lc.State()

			require.NotPanics(t, func() { err = tc.call(lc) })
			require.ErrorIs(t, err, task.ErrOrderViolation)

			var te *task.Error
			require.True(t, errors.As(err, &te))
			require.Equal(t, tc.phase, te.Phase)
			require.Equal(t, "scripted", te.Task)
			require.Equal(t, before, s.calls, "task must not be invoked")
			require.Equal(t, stateBefore, lc.State(), "state must not change")
		})
	}
}

// ------------------------------------------------------------------------
// 4. Failures
// ------------------------------------------------------------------------

func TestLifecycle_FailureKinds(t *testing.T) {
	plain := errors.New("plain")
	cases := []struct {
		name  string
		phase task.Phase
		err   error
		want  task.Kind
	}{
		{"plain in validation", task.PhaseValidation, plain, task.ValidationFailed},
		{"plain in pre", task.PhasePreProcessing, plain, task.PreconditionViolated},
		{"plain in run", task.PhaseRun, plain, task.PreconditionViolated},
		{"typed divergence", task.PhaseRun, task.Errorf(task.NumericDivergence, "nan"), task.NumericDivergence},
		{"sentinel", task.PhasePostProcessing, task.ErrCommunication, task.Communication},
		{"context", task.PhaseRun, context.DeadlineExceeded, task.Canceled},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newScriptedTask()
			s.fail[tc.phase] = tc.err
			lc, err := task.NewLifecycle(s)
			require.NoError(t, err)

			err = lc.Execute(context.Background())
			require.Error(t, err)
			require.Equal(t, tc.want, task.KindOf(err))
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, task.Failed, lc.State())

			var te *task.Error
			require.True(t, errors.As(err, &te))
			require.Equal(t, tc.phase, te.Phase)
		})
	}
	// Shared sentinels are never mutated by stamping.
	require.Empty(t, task.ErrCommunication.Task)
	require.Equal(t, task.PhaseNone, task.ErrCommunication.Phase)
}

// TestLifecycle_RestartAfterFailure ensures Failed allows a new Validation.
func TestLifecycle_RestartAfterFailure(t *testing.T) {
	s := newScriptedTask()
	s.fail[task.PhaseRun] = errors.New("flaky")
	lc, err := task.NewLifecycle(s)
	require.NoError(t, err)

	require.Error(t, lc.Execute(context.Background()))
	require.ErrorIs(t, lc.Run(context.Background()), task.ErrOrderViolation)

	delete(s.fail, task.PhaseRun)
	require.NoError(t, lc.Execute(context.Background()))
	require.Equal(t, task.PostProcessed, lc.State())
}

// TestLifecycle_PanicRecovered converts a task panic into a Panic error.
func TestLifecycle_PanicRecovered(t *testing.T) {
	s := newScriptedTask()
	s.panicAt = task.PhasePreProcessing
	lc, err := task.NewLifecycle(s)
	require.NoError(t, err)

	require.NotPanics(t, func() { err = lc.Execute(context.Background()) })
	require.ErrorIs(t, err, task.ErrPanic)
	require.Contains(t, err.Error(), "boom in pre_processing")
	require.Equal(t, task.Failed, lc.State())
}

// TestLifecycle_CanceledContext fails Run fast without invoking the task.
func TestLifecycle_CanceledContext(t *testing.T) {
	s := newScriptedTask()
	lc, err := task.NewLifecycle(s)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = lc.Execute(ctx)
	require.ErrorIs(t, err, task.ErrCanceled)
	require.ErrorIs(t, err, context.Canceled)
	require.Zero(t, s.calls[task.PhaseRun])
}

// TestLifecycle_BusyRejectsConcurrentPhase checks re-entrancy protection
// while a blocking Run is in flight.
func TestLifecycle_BusyRejectsConcurrentPhase(t *testing.T) {
	s := newScriptedTask()
	s.blockRun = true
	lc, err := task.NewLifecycle(s)
	require.NoError(t, err)
	require.NoError(t, lc.Validation())
	require.NoError(t, lc.PreProcessing())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- lc.Run(ctx) }()

	select {
	case <-s.started:
	case <-time.After(time.Second):
		t.Fatal("run did not start")
	}
	require.ErrorIs(t, lc.Run(context.Background()), task.ErrOrderViolation)
	require.ErrorIs(t, lc.PostProcessing(), task.ErrOrderViolation)
	require.Equal(t, task.PreProcessed, lc.State())

	cancel()
	require.ErrorIs(t, <-done, task.ErrCanceled)
}

func TestStateAndPhase_String(t *testing.T) {
	require.Equal(t, "pre_processed", task.PreProcessed.String())
	require.Equal(t, "post_processing", task.PhasePostProcessing.String())
	require.Equal(t, "state(42)", task.State(42).String())
	require.Equal(t, "numeric_divergence", task.NumericDivergence.String())
}
