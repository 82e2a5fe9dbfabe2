// SPDX-License-Identifier: MIT

// Package sobel computes the Sobel gradient magnitude of an 8-bit grayscale
// image.
//
// Slots:
//
//	input  0: image uint8, w·h pixels, row-major
//	input  1: dims  int32, [w, h]
//	output 0: edges uint8, w·h pixels
//
// Border pixels are written as 0; interior magnitudes sqrt(gx²+gy²) are
// rounded and clamped to 255.
//
// Parallel decomposition: image rows are split into blocks with comm.Counts.
// Each rank receives its block plus one halo row above and below, computes
// the rows it owns, and the root gathers the result.
package sobel
