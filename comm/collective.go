// SPDX-License-Identifier: MIT

// Package comm: collectives built on point-to-point messages.
//
// Every rank of the world must call the same collectives in the same order
// with the same root, as in MPI. Collectives use reserved negative tags, so
// they never mix with user point-to-point traffic.
//
// Algorithms:
//   - Bcast: binomial tree, ⌈log2 P⌉ rounds.
//   - Scatterv / Gatherv: linear from/to the root.
//   - Reduce: linear gather to the root, folded in rank order (deterministic
//     floating-point results for a fixed world size).
//   - AllReduce: Reduce followed by Bcast.
//   - Barrier: zero-length Gather then Bcast.

package comm

import (
	"context"
	"fmt"
)

// Reserved collective tags.
const (
	tagBcast = -(iota + 1)
	tagScatter
	tagGather
	tagReduce
	tagBarrier
)

// Counts splits n elements over size ranks as evenly as possible; the first
// n%size ranks get one extra element. No divisibility is assumed.
func Counts(n, size int) []int {
	counts := make([]int, size)
	if size <= 0 || n <= 0 {
		return counts
	}
	base, extra := n/size, n%size
	for i := range counts {
		counts[i] = base
		if i < extra {
			counts[i]++
		}
	}
	return counts
}

// Displs returns the prefix offsets of counts.
func Displs(counts []int) []int {
	displs := make([]int, len(counts))
	off := 0
	for i, c := range counts {
		displs[i] = off
		off += c
	}
	return displs
}

// Bcast distributes root's v to every rank and returns each rank's copy.
// Non-root ranks may pass nil.
func Bcast[T any](ctx context.Context, c *Comm, root int, v []T) ([]T, error) {
	if err := c.checkRank(root); err != nil {
		return nil, err
	}
	size := c.size
	rel := (c.rank - root + size) % size

	// Receive phase: find the parent in the binomial tree.
	mask := 1
	for mask < size {
		if rel&mask != 0 {
			parent := (c.rank - mask + size) % size
			p, err := c.recv(ctx, parent, tagBcast)
			if err != nil {
				return nil, err
			}
			if v, err = asSlice[T](p); err != nil {
				return nil, err
			}
			break
		}
		mask <<= 1
	}

	// Send phase: forward to children below the bit we received on.
	for mask >>= 1; mask > 0; mask >>= 1 {
		if rel+mask < size {
			child := (c.rank + mask) % size
			if err := c.send(ctx, child, tagBcast, append([]T(nil), v...)); err != nil {
				return nil, err
			}
		}
	}

	if rel == 0 {
		return append([]T(nil), v...), nil
	}
	return v, nil
}

// BcastValue broadcasts a single value from root.
func BcastValue[T any](ctx context.Context, c *Comm, root int, v T) (T, error) {
	out, err := Bcast(ctx, c, root, []T{v})
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// Scatterv sends counts[r] consecutive elements of root's send buffer to rank
// r and returns the local block. counts must be identical on every rank;
// send is only read on the root.
func Scatterv[T any](ctx context.Context, c *Comm, root int, send []T, counts []int) ([]T, error) {
	if err := c.checkRank(root); err != nil {
		return nil, err
	}
	if len(counts) != c.size {
		return nil, fmt.Errorf("%w: %d counts for %d ranks", ErrCountMismatch, len(counts), c.size)
	}

	if c.rank != root {
		p, err := c.recv(ctx, root, tagScatter)
		if err != nil {
			return nil, err
		}
		return asSlice[T](p)
	}

	displs := Displs(counts)
	total := displs[c.size-1] + counts[c.size-1]
	if total != len(send) {
		return nil, fmt.Errorf("%w: counts sum %d, buffer %d", ErrCountMismatch, total, len(send))
	}
	for r := 0; r < c.size; r++ {
		if r == root {
			continue
		}
		block := append([]T(nil), send[displs[r]:displs[r]+counts[r]]...)
		if err := c.send(ctx, r, tagScatter, block); err != nil {
			return nil, err
		}
	}
	return append([]T(nil), send[displs[root]:displs[root]+counts[root]]...), nil
}

// Gatherv concatenates every rank's local block, in rank order, on the root.
// len(local) must equal counts[rank]. Non-root ranks receive nil.
func Gatherv[T any](ctx context.Context, c *Comm, root int, local []T, counts []int) ([]T, error) {
	if err := c.checkRank(root); err != nil {
		return nil, err
	}
	if len(counts) != c.size || len(local) != counts[c.rank] {
		return nil, fmt.Errorf("%w: rank %d has %d elements", ErrCountMismatch, c.rank, len(local))
	}

	if c.rank != root {
		return nil, c.send(ctx, root, tagGather, append([]T(nil), local...))
	}

	displs := Displs(counts)
	out := make([]T, displs[c.size-1]+counts[c.size-1])
	copy(out[displs[root]:], local)
	for r := 0; r < c.size; r++ {
		if r == root {
			continue
		}
		p, err := c.recv(ctx, r, tagGather)
		if err != nil {
			return nil, err
		}
		block, err := asSlice[T](p)
		if err != nil {
			return nil, err
		}
		if len(block) != counts[r] {
			return nil, fmt.Errorf("%w: rank %d sent %d, want %d", ErrCountMismatch, r, len(block), counts[r])
		}
		copy(out[displs[r]:], block)
	}
	return out, nil
}

// ReduceFunc folds every rank's value with fn on the root, in rank order:
// fn(...fn(fn(v0, v1), v2)..., vP-1). Non-root ranks receive the zero value.
func ReduceFunc[T any](ctx context.Context, c *Comm, root int, v T, fn func(a, b T) T) (T, error) {
	var zero T
	if err := c.checkRank(root); err != nil {
		return zero, err
	}
	if c.rank != root {
		return zero, c.send(ctx, root, tagReduce, v)
	}

	var acc T
	for r := 0; r < c.size; r++ {
		var x T
		if r == root {
			x = v
		} else {
			p, err := c.recv(ctx, r, tagReduce)
			if err != nil {
				return zero, err
			}
			var ok bool
			if x, ok = p.(T); !ok {
				return zero, fmt.Errorf("%w: got %T", ErrPayloadType, p)
			}
		}
		if r == 0 {
			acc = x
		} else {
			acc = fn(acc, x)
		}
	}
	return acc, nil
}

// AllReduceFunc is ReduceFunc followed by a broadcast of the result.
func AllReduceFunc[T any](ctx context.Context, c *Comm, v T, fn func(a, b T) T) (T, error) {
	acc, err := ReduceFunc(ctx, c, RootRank, v, fn)
	if err != nil {
		return acc, err
	}
	return BcastValue(ctx, c, RootRank, acc)
}

// Reduce combines equal-length vectors element-wise with op on the root.
func Reduce[T Number](ctx context.Context, c *Comm, root int, v []T, op Op) ([]T, error) {
	local := append([]T(nil), v...)
	var mismatch bool
	out, err := ReduceFunc(ctx, c, root, local, func(a, b []T) []T {
		if len(a) != len(b) {
			mismatch = true
			return a
		}
		for i := range a {
			a[i] = apply(op, a[i], b[i])
		}
		return a
	})
	if err != nil {
		return nil, err
	}
	if mismatch {
		return nil, fmt.Errorf("%w: reduce operands differ in length", ErrCountMismatch)
	}
	return out, nil
}

// AllReduce is Reduce to RootRank followed by Bcast.
func AllReduce[T Number](ctx context.Context, c *Comm, v []T, op Op) ([]T, error) {
	out, err := Reduce(ctx, c, RootRank, v, op)
	if err != nil {
		return nil, err
	}
	return Bcast(ctx, c, RootRank, out)
}

// Barrier returns once every rank has entered it.
func Barrier(ctx context.Context, c *Comm) error {
	if !c.IsRoot() {
		if err := c.send(ctx, RootRank, tagBarrier, struct{}{}); err != nil {
			return err
		}
	} else {
		for r := 1; r < c.size; r++ {
			if _, err := c.recv(ctx, r, tagBarrier); err != nil {
				return err
			}
		}
	}
	_, err := Bcast[struct{}](ctx, c, RootRank, nil)
	return err
}
