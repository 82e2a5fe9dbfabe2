// SPDX-License-Identifier: MIT

package comm

import (
	"context"
	"errors"

	"github.com/katalvlaran/ppc/task"
)

var (
	// ErrBadSize indicates a World size <= 0.
	ErrBadSize = errors.New("comm: world size must be positive")

	// ErrRankOutOfRange indicates a source/destination/root outside [0, Size).
	ErrRankOutOfRange = errors.New("comm: rank out of range")

	// ErrReservedTag indicates a user tag < 0; negative tags belong to collectives.
	ErrReservedTag = errors.New("comm: negative tags are reserved")

	// ErrPayloadType indicates a received payload of an unexpected Go type.
	ErrPayloadType = errors.New("comm: unexpected payload type")

	// ErrCountMismatch indicates counts inconsistent with the buffer or world size.
	ErrCountMismatch = errors.New("comm: counts do not match buffer or world size")

	// ErrRankPanic indicates a rank function panicked.
	ErrRankPanic = errors.New("comm: rank panicked")
)

// TaskError maps an error returned by World.Run onto the task error kinds:
// errors already carrying a kind pass through, context errors become
// Canceled, everything else is Communication.
func TaskError(err error) error {
	if err == nil {
		return nil
	}
	if task.KindOf(err) != task.KindNone {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return task.Wrap(task.Canceled, err)
	}
	return task.Wrap(task.Communication, err)
}
