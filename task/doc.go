// SPDX-License-Identifier: MIT

// Package task defines the four-phase task contract shared by every
// algorithm in this module, the typed slot container that carries data in
// and out of a task, and the Lifecycle that enforces phase order.
//
// 🚀 Building blocks
//
//   - Buffer: a tagged, non-owning view over []float64, []float32, []int64,
//     []int32 or []uint8. The element type travels with the slice.
//   - Data: input and output Buffer slots. Counts are the buffer lengths.
//   - Task: Validation → PreProcessing → Run → PostProcessing.
//   - Lifecycle: drives a Task, rejects out-of-order calls with an
//     OrderViolation error, recovers panics, stamps task/phase on errors.
//   - Error / Kind: the failure enumeration (ValidationFailed,
//     PreconditionViolated, NumericDivergence, ...).
//
// Lifecycle:
//
//	Created ─► Validated ─► PreProcessed ─► Ran ─► PostProcessed
//	                                        ▲│
//	                                        └┘ Run may repeat
//
// Quick example:
//
//	in := []float64{3, 1, 2}
//	out := make([]float64, 3)
//	d := task.NewData().
//		AddInput(task.NewBuffer(in)).
//		AddOutput(task.NewBuffer(out))
//	lc, _ := task.NewLifecycle(mySortTask(d))
//	if err := lc.Execute(ctx); err != nil {
//		switch task.KindOf(err) {
//		case task.ValidationFailed:
//			// bad slots
//		}
//	}
//
// Data never owns memory: buffers alias the caller's slices, and the caller
// reads results straight from its own output slices after PostProcessing.
package task
