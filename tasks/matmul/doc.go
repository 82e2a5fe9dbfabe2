// SPDX-License-Identifier: MIT

// Package matmul multiplies two dense row-major matrices, C = A·B, as a
// sequential and a message-passing parallel task.
//
// Slots:
//
//	input  0: A    float64, m·k elements (row-major, offset i*k + j)
//	input  1: B    float64, k·n elements
//	input  2: dims int32,   [m, k, n]
//	output 0: C    float64, m·n elements
//
// Parallel decomposition: rows of A are scattered over the ranks with
// comm.Counts (no divisibility assumed), B is broadcast, each rank multiplies
// its row block, and the root gathers C.
//
// Complexity: O(m·k·n) time; the parallel variant moves O(m·k + P·k·n + m·n)
// elements.
package matmul
