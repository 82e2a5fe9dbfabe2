// SPDX-License-Identifier: MIT

package sobel

import (
	"errors"
	"math"

	"github.com/katalvlaran/ppc/task"
)

// ErrBadDims indicates a non-positive width or height.
var ErrBadDims = errors.New("sobel: width and height must be positive")

type dims struct{ w, h int }

// validate is shared by both variants.
func validate(d *task.Data) (dims, error) {
	if err := d.ExpectSlots(2, 1); err != nil {
		return dims{}, err
	}
	if err := d.ExpectInput(1, task.Int32, 2); err != nil {
		return dims{}, err
	}
	wh, _ := task.Input[int32](d, 1)
	s := dims{w: int(wh[0]), h: int(wh[1])}
	if s.w <= 0 || s.h <= 0 {
		return dims{}, task.Errorf(task.ValidationFailed, "%w: %dx%d", ErrBadDims, s.w, s.h)
	}
	if err := d.ExpectInput(0, task.Uint8, s.w*s.h); err != nil {
		return dims{}, err
	}
	if err := d.ExpectOutput(0, task.Uint8, s.w*s.h); err != nil {
		return dims{}, err
	}
	return s, nil
}

func load(d *task.Data, s dims) ([]uint8, error) {
	in, err := task.Input[uint8](d, 0)
	if err != nil {
		return nil, err
	}
	return append([]uint8(nil), in[:s.w*s.h]...), nil
}

func store(d *task.Data, v []uint8) error {
	out, err := task.Output[uint8](d, 0)
	if err != nil {
		return err
	}
	copy(out, v)
	return nil
}

// Filter writes the magnitude of rows [from, to) of a w-wide image into dst.
// src holds image rows [first, first+len(src)/w); dst row y-from maps to
// image row y. h is the full image height, used for the border test.
func Filter(src []uint8, first, w, h, from, to int, dst []uint8) {
	var (
		x, y, gx, gy int
		row          []uint8
		at           = func(x, y int) int { return int(src[(y-first)*w+x]) }
	)
	for y = from; y < to; y++ {
		row = dst[(y-from)*w : (y-from+1)*w]
		if y == 0 || y == h-1 {
			clear(row)
			continue
		}
		row[0], row[w-1] = 0, 0
		for x = 1; x < w-1; x++ {
			gx = at(x+1, y-1) + 2*at(x+1, y) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x-1, y) - at(x-1, y+1)
			gy = at(x-1, y+1) + 2*at(x, y+1) + at(x+1, y+1) -
				at(x-1, y-1) - 2*at(x, y-1) - at(x+1, y-1)
			row[x] = magnitude(gx, gy)
		}
	}
}

func magnitude(gx, gy int) uint8 {
	m := math.Round(math.Sqrt(float64(gx*gx + gy*gy)))
	if m > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(m)
}
