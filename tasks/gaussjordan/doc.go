// SPDX-License-Identifier: MIT

// Package gaussjordan solves a dense linear system A·x = b by Gauss–Jordan
// elimination with partial pivoting.
//
// Slots:
//
//	input  0: augmented float64, n·(n+1), row i is [A_i | b_i]
//	input  1: n         int32,   [n]
//	output 0: x         float64, n elements
//
// Rows are never swapped. At step k the unused row with the largest |a_ik|
// (ties to the lower row index) becomes the pivot of column k, is scaled to
// a unit pivot, and eliminates column k from every other row. A pivot with
// |a_ik| < Epsilon reports NumericDivergence wrapping ErrSingular.
// NaN or infinite coefficients fail validation with ErrNonFinite; a
// solution that overflows reports NumericDivergence wrapping ErrDiverged.
//
// Parallel decomposition: row i is owned by rank i mod P. Each step selects
// the pivot with a max-loc all-reduce, the owner broadcasts the scaled pivot
// row, and all ranks eliminate their rows. Both variants perform the same
// floating-point operations in the same order, so their results are
// bit-identical.
//
// Complexity: O(n³) time; the parallel variant broadcasts n rows of n+1.
package gaussjordan
