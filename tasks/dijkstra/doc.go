// SPDX-License-Identifier: MIT

// Package dijkstra solves single-source shortest paths on a dense weighted
// digraph given as an adjacency matrix.
//
// Slots:
//
//	input  0: adjacency int64, n·n, adj[u*n+v] is the weight of u→v
//	input  1: source    int32, [s]
//	output 0: distances int64, n elements
//
// A negative entry encodes "no edge", so negative weights cannot occur.
// Diagonal entries are ignored. Unreachable vertices get Unreachable
// (math.MaxInt64); path sums saturate instead of overflowing.
//
// The sequential task is the lazy-decrease-key heap variant,
// O((n + m) log n). The parallel task splits vertices into blocks with
// comm.Counts; each rank owns the distance column of its block, and every
// step picks the global closest unvisited vertex with an all-reduce
// (min-loc, ties to the lower index), giving O(n²/P + n·log P) work per rank.
package dijkstra
