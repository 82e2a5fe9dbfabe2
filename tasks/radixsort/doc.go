// SPDX-License-Identifier: MIT

// Package radixsort sorts int32 values with an LSD radix sort, sequentially
// and over a comm.World.
//
// Slots:
//
//	input  0: values int32, n elements
//	output 0: sorted int32, n elements
//
// Keys are flipped on the sign bit (x ^ 0x8000_0000 read as uint32) so the
// unsigned byte passes order negative values first. Four stable counting
// passes of 8 bits each give O(4·(n+256)) time and O(n) scratch.
//
// Parallel decomposition: the root scatters blocks sized by comm.Counts,
// every rank radix-sorts its block, the root gathers the sorted runs and
// merges them with a k-way heap merge in O(n log P).
package radixsort
