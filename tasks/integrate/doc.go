// SPDX-License-Identifier: MIT

// Package integrate computes a definite integral ∫[a,b] f(x) dx.
//
// The sequential task uses composite Simpson's rule over n intervals (n must
// be even). The parallel task is a Monte Carlo estimator: every rank draws
// its share of n uniform samples from its own RNG stream, derived from the
// task seed and the rank with a SplitMix64 mix, and the partial sums are
// reduced on the root. For a fixed seed and world size the estimate is
// bit-for-bit reproducible.
//
// Slots:
//
//	input  0: bounds float64, [a, b]
//	input  1: n      int64,   [n]
//	output 0: result float64, [∫]
//
// Failure kinds:
//   - non-finite bounds: ValidationFailed;
//   - n <= 0, or odd n for Simpson: PreconditionViolated;
//   - non-finite result: NumericDivergence.
package integrate
