// SPDX-License-Identifier: MIT

package comm

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for rank start/finish/failure events.
// Panics on nil (programmer error).
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("comm: WithLogger(nil)")
	}
	return func(w *World) { w.log = l }
}

// World is a fixed-size group of ranks. It is immutable and may be reused
// for any number of Run calls; every Run gets fresh mailboxes.
type World struct {
	size int
	log  *zap.Logger
}

// NewWorld returns a World of size ranks.
func NewWorld(size int, opts ...Option) (*World, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	w := &World{size: size, log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Size returns the number of ranks.
func (w *World) Size() int { return w.size }

// Run executes fn once per rank, concurrently, and waits for all of them.
//
// The first rank error cancels the context seen by every other rank, which
// unblocks pending Recv calls; Run returns that first error prefixed with the
// failing rank. A panicking rank is reported as ErrRankPanic.
func (w *World) Run(ctx context.Context, fn func(ctx context.Context, c *Comm) error) error {
	boxes := make([]*mailbox, w.size)
	for i := range boxes {
		boxes[i] = newMailbox()
	}

	g, gctx := errgroup.WithContext(ctx)
	for rank := 0; rank < w.size; rank++ {
		c := &Comm{rank: rank, size: w.size, boxes: boxes}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("comm: rank %d: %w: %v", c.rank, ErrRankPanic, r)
				}
			}()
			if err := fn(gctx, c); err != nil {
				w.log.Debug("rank failed", zap.Int("rank", c.rank), zap.Error(err))
				return fmt.Errorf("comm: rank %d: %w", c.rank, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// message is one point-to-point payload in flight.
type message struct {
	src, tag int
	payload  any
}

// mailbox is the unbounded receive queue of one rank. Send never blocks;
// Recv scans for the first message matching (src, tag), preserving FIFO
// order per (src, tag) pair.
type mailbox struct {
	mu    sync.Mutex
	queue []message
	wake  chan struct{} // closed and replaced on every push
}

func newMailbox() *mailbox {
	return &mailbox{wake: make(chan struct{})}
}

func (m *mailbox) push(msg message) {
	m.mu.Lock()
	m.queue = append(m.queue, msg)
	close(m.wake)
	m.wake = make(chan struct{})
	m.mu.Unlock()
}

func (m *mailbox) pop(ctx context.Context, src, tag int) (any, error) {
	for {
		m.mu.Lock()
		for i, msg := range m.queue {
			if msg.src == src && msg.tag == tag {
				m.queue = append(m.queue[:i], m.queue[i+1:]...)
				m.mu.Unlock()
				return msg.payload, nil
			}
		}
		wake := m.wake
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-wake:
		}
	}
}
