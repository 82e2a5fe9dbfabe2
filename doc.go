// SPDX-License-Identifier: MIT

// Package ppc is a harness for writing, validating and timing numeric and
// parallel algorithm tasks.
//
// 🚀 What is ppc?
//
//	A small framework that gives every task the same four-phase lifecycle
//	and the same measurement loops:
//		• task:  typed data slots, the Validation → PreProcessing → Run →
//		         PostProcessing state machine, error kinds
//		• perf:  PipelineRun / TaskRun measurements with min/avg/max and a
//		         time limit
//		• comm:  an in-process message-passing world (ranks as goroutines)
//		         with Bcast, Scatterv, Gatherv, Reduce, AllReduce, Barrier
//		• tasks: matmul, radixsort, integrate, sobel, dijkstra, gaussjordan,
//		         each as a sequential and a parallel variant
//
// ✨ Why ppc?
//
//   - One lifecycle – out-of-order calls are rejected, never crash
//   - Typed buffers – an int32 slot is never read as float64
//   - Reproducible – every random input derives from an explicit seed
//   - Comparable – seq and par variants share their validation and are
//     checked against the same reference
//
// Layout:
//
//	task/               Buffer, Data, Task, Lifecycle, error kinds
//	perf/               Attributes, Perf, Results
//	comm/               World, Comm, collectives
//	tasks/<name>/       task implementations; tasks/catalog is the registry
//	internal/config     viper configuration (YAML file + PPC_* env)
//	internal/logging    zap logger construction
//	internal/fixture    YAML task cases
//	internal/runner     measurement driver and YAML report
//	cmd/ppcperf         command-line entry point
//
// Quick start:
//
//	go run ./cmd/ppcperf -conf configs/ppcperf.yaml -only matmul/
package ppc
