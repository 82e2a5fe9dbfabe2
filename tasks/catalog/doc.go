// SPDX-License-Identifier: MIT

// Package catalog is the registry of runnable task instances.
//
// Every entry is named "<task>/<variant>" (for example "matmul/par") and
// builds a fresh task together with its Data from a problem size and a seed.
// The built Instance carries a Check that verifies the outputs against an
// independent reference once PostProcessing has run.
//
// Size is interpreted per task:
//
//	matmul       n×n by n×n, n = size
//	radixsort    size² values
//	integrate    ∫[0,1] x² dx with 2·size² intervals / samples
//	sobel        size×size image
//	dijkstra     size vertices
//	gaussjordan  size×size system
package catalog
