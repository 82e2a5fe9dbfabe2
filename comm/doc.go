// SPDX-License-Identifier: MIT

// Package comm provides in-process message passing between ranks, the Go
// replacement for the MPI calls parallel tasks used to make.
//
// A World of P ranks runs one function per rank on its own goroutine:
//
//	w, _ := comm.NewWorld(4)
//	err := w.Run(ctx, func(ctx context.Context, c *comm.Comm) error {
//		n, err := comm.BcastValue(ctx, c, comm.RootRank, len(data))
//		if err != nil {
//			return err
//		}
//		counts := comm.Counts(n, c.Size())
//		local, err := comm.Scatterv(ctx, c, comm.RootRank, data, counts)
//		...
//		return nil
//	})
//
// Semantics:
//   - Send never blocks (unbounded mailboxes); Recv blocks until a matching
//     (source, tag) message arrives or the context is done.
//   - Messages between one (source, tag) pair arrive in send order.
//   - Collectives (Bcast, Scatterv, Gatherv, Reduce, AllReduce, Barrier and
//     the *Func variants) must be called by every rank in the same order.
//   - The first failing rank cancels the rest; Run returns its error.
//
// Rank 0 (RootRank) conventionally owns the task's input and output slots.
package comm
