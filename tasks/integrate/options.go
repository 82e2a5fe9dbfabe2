// SPDX-License-Identifier: MIT

package integrate

import "math/rand"

// Func is a real integrand.
type Func func(x float64) float64

// defaultSeed replaces a zero seed so the default stream is stable.
const defaultSeed int64 = 1

// Square is the default integrand, f(x) = x².
func Square(x float64) float64 { return x * x }

// Option configures a task.
type Option func(*options)

type options struct {
	f    Func
	seed int64
}

func defaultOptions() options { return options{f: Square, seed: defaultSeed} }

// WithIntegrand sets f. A nil f keeps the default.
func WithIntegrand(f Func) Option {
	return func(o *options) {
		if f != nil {
			o.f = f
		}
	}
}

// WithSeed sets the Monte Carlo base seed; 0 selects the default seed.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed == 0 {
			seed = defaultSeed
		}
		o.seed = seed
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DeriveSeed mixes a base seed and a stream id (the rank) into an
// independent seed. The parent goes through the SplitMix64 finalizer before
// the stream is added, so distinct (parent, stream) pairs do not alias.
func DeriveSeed(parent int64, stream uint64) int64 {
	x := mix64(uint64(parent))
	x += (stream + 1) * 0x9e3779b97f4a7c15
	return int64(mix64(x))
}

// mix64 is the SplitMix64 finalizer.
func mix64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// rankRNG returns the private stream of one rank. A *rand.Rand is not safe
// for concurrent use, so every rank gets its own.
func rankRNG(seed int64, rank int) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(seed, uint64(rank))))
}
