// SPDX-License-Identifier: MIT

package dijkstra

import (
	"errors"
	"math"

	"github.com/katalvlaran/ppc/task"
)

// Unreachable marks a vertex with no path from the source.
const Unreachable int64 = math.MaxInt64

var (
	// ErrEmptyGraph indicates a zero-vertex adjacency matrix.
	ErrEmptyGraph = errors.New("dijkstra: empty graph")

	// ErrNotSquare indicates the adjacency length is not a perfect square.
	ErrNotSquare = errors.New("dijkstra: adjacency matrix is not square")

	// ErrBadSource indicates a source vertex outside [0, n).
	ErrBadSource = errors.New("dijkstra: source vertex out of range")
)

type graph struct {
	n   int
	src int
}

// validate is shared by both variants.
func validate(d *task.Data) (graph, error) {
	if err := d.ExpectSlots(2, 1); err != nil {
		return graph{}, err
	}
	if err := d.ExpectInput(0, task.Int64, 0); err != nil {
		return graph{}, err
	}
	if err := d.ExpectInput(1, task.Int32, 1); err != nil {
		return graph{}, err
	}

	size := d.Inputs[0].Len()
	if size == 0 {
		return graph{}, task.Wrap(task.ValidationFailed, ErrEmptyGraph)
	}
	n := int(math.Sqrt(float64(size)))
	for n*n > size {
		n--
	}
	for (n+1)*(n+1) <= size {
		n++
	}
	if n*n != size {
		return graph{}, task.Errorf(task.ValidationFailed, "%w: %d entries", ErrNotSquare, size)
	}
	src, _ := task.Input[int32](d, 1)
	if src[0] < 0 || int(src[0]) >= n {
		return graph{}, task.Errorf(task.ValidationFailed, "%w: %d not in [0,%d)", ErrBadSource, src[0], n)
	}
	if err := d.ExpectOutput(0, task.Int64, n); err != nil {
		return graph{}, err
	}
	return graph{n: n, src: int(src[0])}, nil
}

func load(d *task.Data) ([]int64, error) {
	adj, err := task.Input[int64](d, 0)
	if err != nil {
		return nil, err
	}
	return append([]int64(nil), adj...), nil
}

func store(d *task.Data, dist []int64) error {
	out, err := task.Output[int64](d, 0)
	if err != nil {
		return err
	}
	copy(out, dist)
	return nil
}

// pathSum adds w to du, saturating at Unreachable.
func pathSum(du, w int64) int64 {
	if w > Unreachable-du {
		return Unreachable
	}
	return du + w
}
