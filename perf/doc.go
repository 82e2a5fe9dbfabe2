// SPDX-License-Identifier: MIT

// Package perf measures task performance through the task Lifecycle.
//
// Two modes are offered:
//
//   - PipelineRun: every repetition times the full pipeline
//     (Validation → PreProcessing → Run → PostProcessing).
//   - TaskRun: the task is validated and pre-processed once, only Run is
//     timed on each repetition, then it is post-processed once.
//
// Each repetition yields one sample (timer after − timer before) from the
// caller-supplied Attributes.CurrentTimer; Results reports min, max, total and
// the arithmetic mean of the samples. Results.Passed is false when the mean
// exceeds Attributes.MaxTime, and PrintStatistic turns that into a
// TimeLimitExceeded error.
//
// No warm-up discard, variance or outlier handling is applied.
//
// Example:
//
//	lc, _ := task.NewLifecycle(t)
//	p, _ := perf.New(lc, perf.WithLogger(logger))
//	attr := perf.DefaultAttributes()
//	attr.NumRunning = 10
//	res, err := p.TaskRun(ctx, attr)
//	if err == nil {
//		err = p.PrintStatistic(res)
//	}
package perf
