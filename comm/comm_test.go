package comm_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

func newWorld(t *testing.T, size int) *comm.World {
	t.Helper()
	w, err := comm.NewWorld(size)
	require.NoError(t, err)
	return w
}

func TestNewWorld_BadSize(t *testing.T) {
	_, err := comm.NewWorld(0)
	require.ErrorIs(t, err, comm.ErrBadSize)
}

func TestCountsDispls(t *testing.T) {
	require.Equal(t, []int{3, 3, 2, 2}, comm.Counts(10, 4))
	require.Equal(t, []int{1, 1, 0, 0}, comm.Counts(2, 4))
	require.Equal(t, []int{0, 0}, comm.Counts(0, 2))
	require.Equal(t, []int{0, 3, 6, 8}, comm.Displs([]int{3, 3, 2, 2}))
}

// TestSendRecv_TagBuffering checks out-of-order tags stay queued and
// same-tag messages keep FIFO order.
func TestSendRecv_TagBuffering(t *testing.T) {
	w := newWorld(t, 2)
	var got []int
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		if c.Rank() == 0 {
			for _, m := range []struct{ tag, v int }{{1, 10}, {2, 20}, {1, 11}} {
				if err := c.Send(ctx, 1, m.tag, m.v); err != nil {
					return err
				}
			}
			return nil
		}
		for _, tag := range []int{2, 1, 1} {
			p, err := c.Recv(ctx, 0, tag)
			if err != nil {
				return err
			}
			got = append(got, p.(int))
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{20, 10, 11}, got)
}

func TestSendSlice_Copies(t *testing.T) {
	w := newWorld(t, 2)
	var got []float64
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		if c.Rank() == 0 {
			buf := []float64{1, 2}
			if err := comm.SendSlice(ctx, c, 1, 0, buf); err != nil {
				return err
			}
			buf[0] = 99
			return nil
		}
		v, err := comm.RecvSlice[float64](ctx, c, 0, 0)
		got = v
		return err
	})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, got)
}

func TestSendRecv_Errors(t *testing.T) {
	w := newWorld(t, 2)
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		if err := c.Send(ctx, 2, 0, 1); !errors.Is(err, comm.ErrRankOutOfRange) {
			return fmt.Errorf("want ErrRankOutOfRange, got %v", err)
		}
		if err := c.Send(ctx, 0, -1, 1); !errors.Is(err, comm.ErrReservedTag) {
			return fmt.Errorf("want ErrReservedTag, got %v", err)
		}
		if _, err := c.Recv(ctx, -1, 0); !errors.Is(err, comm.ErrRankOutOfRange) {
			return fmt.Errorf("want ErrRankOutOfRange, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)

	err = w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		if c.Rank() == 0 {
			return c.Send(ctx, 1, 0, "text")
		}
		_, err := comm.RecvSlice[int](ctx, c, 0, 0)
		return err
	})
	require.ErrorIs(t, err, comm.ErrPayloadType)
}

// TestBcast_AllRootsAllSizes covers the binomial tree for every root.
func TestBcast_AllRootsAllSizes(t *testing.T) {
	for size := 1; size <= 7; size++ {
		for root := 0; root < size; root++ {
			t.Run(fmt.Sprintf("P%d_root%d", size, root), func(t *testing.T) {
				w := newWorld(t, size)
				var mu sync.Mutex
				got := make([][]int, size)
				err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
					var v []int
					if c.Rank() == root {
						v = []int{root, 42}
					}
					out, err := comm.Bcast(ctx, c, root, v)
					mu.Lock()
					got[c.Rank()] = out
					mu.Unlock()
					return err
				})
				require.NoError(t, err)
				for r := range got {
					require.Equal(t, []int{root, 42}, got[r], "rank %d", r)
				}
			})
		}
	}
}

// TestScatterGather_Uneven round-trips a buffer that does not divide evenly.
func TestScatterGather_Uneven(t *testing.T) {
	const n = 11
	w := newWorld(t, 4)
	src := make([]int32, n)
	for i := range src {
		src[i] = int32(i * i)
	}
	var back []int32
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		counts := comm.Counts(n, c.Size())
		var send []int32
		if c.IsRoot() {
			send = src
		}
		local, err := comm.Scatterv(ctx, c, comm.RootRank, send, counts)
		if err != nil {
			return err
		}
		if len(local) != counts[c.Rank()] {
			return fmt.Errorf("rank %d got %d elements", c.Rank(), len(local))
		}
		for i := range local {
			local[i]++
		}
		out, err := comm.Gatherv(ctx, c, comm.RootRank, local, counts)
		if c.IsRoot() {
			back = out
		}
		return err
	})
	require.NoError(t, err)
	for i := range src {
		require.Equal(t, src[i]+1, back[i])
	}
}

func TestScatterv_CountMismatch(t *testing.T) {
	w := newWorld(t, 2)
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		_, err := comm.Scatterv(ctx, c, comm.RootRank, []int{1, 2, 3}, []int{1, 1})
		return err
	})
	require.ErrorIs(t, err, comm.ErrCountMismatch)
}

func TestReduceAllReduce(t *testing.T) {
	w := newWorld(t, 5)
	var mu sync.Mutex
	sums := map[int][]float64{}
	var maxAtRoot []int64
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		r := float64(c.Rank())
		s, err := comm.AllReduce(ctx, c, []float64{r, 2 * r}, comm.OpSum)
		if err != nil {
			return err
		}
		mu.Lock()
		sums[c.Rank()] = s
		mu.Unlock()

		m, err := comm.Reduce(ctx, c, 2, []int64{int64(c.Rank()), -int64(c.Rank())}, comm.OpMax)
		if c.Rank() == 2 {
			maxAtRoot = m
		} else if m != nil {
			return fmt.Errorf("non-root got %v", m)
		}
		return err
	})
	require.NoError(t, err)
	for r := 0; r < 5; r++ {
		require.Equal(t, []float64{10, 20}, sums[r])
	}
	require.Equal(t, []int64{4, 0}, maxAtRoot)
}

// TestAllReduceFunc_MinLoc exercises a custom lexicographic combiner.
func TestAllReduceFunc_MinLoc(t *testing.T) {
	type pair struct{ val, idx int }
	w := newWorld(t, 4)
	vals := []int{7, 3, 9, 3}
	res := make([]pair, 4)
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		p, err := comm.AllReduceFunc(ctx, c, pair{vals[c.Rank()], c.Rank()}, func(a, b pair) pair {
			if b.val < a.val || (b.val == a.val && b.idx < a.idx) {
				return b
			}
			return a
		})
		res[c.Rank()] = p
		return err
	})
	require.NoError(t, err)
	for _, p := range res {
		require.Equal(t, pair{3, 1}, p)
	}
}

func TestBarrier(t *testing.T) {
	w := newWorld(t, 6)
	var mu sync.Mutex
	arrived := 0
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		mu.Lock()
		arrived++
		mu.Unlock()
		if err := comm.Barrier(ctx, c); err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		if arrived != 6 {
			return fmt.Errorf("rank %d passed barrier with %d arrived", c.Rank(), arrived)
		}
		return nil
	})
	require.NoError(t, err)
}

// TestRun_FirstErrorCancelsOthers ensures a blocked Recv is released when
// another rank fails.
func TestRun_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	w := newWorld(t, 3)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
			if c.Rank() == 1 {
				return boom
			}
			_, err := c.Recv(ctx, 1, 0) // never sent
			return err
		})
	}()

	select {
	case err := <-done:
		require.ErrorIs(t, err, boom)
		require.Contains(t, err.Error(), "rank 1")
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after a rank failed")
	}
}

func TestRun_PanicIsReported(t *testing.T) {
	w := newWorld(t, 2)
	err := w.Run(context.Background(), func(ctx context.Context, c *comm.Comm) error {
		if c.Rank() == 1 {
			panic("kaboom")
		}
		return nil
	})
	require.ErrorIs(t, err, comm.ErrRankPanic)
}

func TestTaskError(t *testing.T) {
	require.NoError(t, comm.TaskError(nil))
	require.Equal(t, task.Communication, task.KindOf(comm.TaskError(comm.ErrPayloadType)))
	require.Equal(t, task.Canceled, task.KindOf(comm.TaskError(fmt.Errorf("x: %w", context.Canceled))))

	div := task.Errorf(task.NumericDivergence, "pivot")
	require.Equal(t, task.NumericDivergence, task.KindOf(comm.TaskError(fmt.Errorf("rank 0: %w", div))))
}
