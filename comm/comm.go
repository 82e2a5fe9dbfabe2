// SPDX-License-Identifier: MIT

package comm

import (
	"context"
	"fmt"
)

// RootRank is the conventional root of collectives.
const RootRank = 0

// Comm is the handle of one rank inside a World.Run. It must only be used
// by the goroutine it was handed to.
type Comm struct {
	rank  int
	size  int
	boxes []*mailbox
}

// Rank returns this rank, 0 <= Rank() < Size().
func (c *Comm) Rank() int { return c.rank }

// Size returns the number of ranks in the world.
func (c *Comm) Size() int { return c.size }

// IsRoot reports whether this rank is RootRank.
func (c *Comm) IsRoot() bool { return c.rank == RootRank }

// Send delivers payload to dst under tag. It never blocks. The payload is
// handed over as is: the sender must not mutate it afterwards (use SendSlice
// for a copying send). Sending to oneself is allowed.
func (c *Comm) Send(ctx context.Context, dst, tag int, payload any) error {
	if tag < 0 {
		return fmt.Errorf("%w: %d", ErrReservedTag, tag)
	}
	return c.send(ctx, dst, tag, payload)
}

// Recv blocks until a message from src with tag arrives or ctx is done.
// Messages with the same (src, tag) are received in send order; messages
// with other tags stay queued.
func (c *Comm) Recv(ctx context.Context, src, tag int) (any, error) {
	if tag < 0 {
		return nil, fmt.Errorf("%w: %d", ErrReservedTag, tag)
	}
	return c.recv(ctx, src, tag)
}

func (c *Comm) send(ctx context.Context, dst, tag int, payload any) error {
	if err := c.checkRank(dst); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	c.boxes[dst].push(message{src: c.rank, tag: tag, payload: payload})
	return nil
}

func (c *Comm) recv(ctx context.Context, src, tag int) (any, error) {
	if err := c.checkRank(src); err != nil {
		return nil, err
	}
	return c.boxes[c.rank].pop(ctx, src, tag)
}

func (c *Comm) checkRank(r int) error {
	if r < 0 || r >= c.size {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrRankOutOfRange, r, c.size)
	}
	return nil
}

// SendSlice sends a copy of v, so the caller may reuse v immediately.
func SendSlice[T any](ctx context.Context, c *Comm, dst, tag int, v []T) error {
	return c.Send(ctx, dst, tag, append([]T(nil), v...))
}

// RecvSlice receives a []T sent with SendSlice (or Send of a []T).
func RecvSlice[T any](ctx context.Context, c *Comm, src, tag int) ([]T, error) {
	p, err := c.Recv(ctx, src, tag)
	if err != nil {
		return nil, err
	}
	return asSlice[T](p)
}

func asSlice[T any](p any) ([]T, error) {
	v, ok := p.([]T)
	if !ok {
		return nil, fmt.Errorf("%w: got %T, want %T", ErrPayloadType, p, []T(nil))
	}
	return v, nil
}
