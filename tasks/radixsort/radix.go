// SPDX-License-Identifier: MIT

package radixsort

import (
	"container/heap"

	"github.com/katalvlaran/ppc/task"
)

const (
	radixBits = 8
	buckets   = 1 << radixBits
	passes    = 32 / radixBits
	signBit   = uint32(1) << 31
)

// validate is shared by both variants: one int32 input, one int32 output of
// at least the same length.
func validate(d *task.Data) (int, error) {
	if err := d.ExpectSlots(1, 1); err != nil {
		return 0, err
	}
	if err := d.ExpectInput(0, task.Int32, 0); err != nil {
		return 0, err
	}
	n := d.Inputs[0].Len()
	if err := d.ExpectOutput(0, task.Int32, n); err != nil {
		return 0, err
	}
	return n, nil
}

func load(d *task.Data) ([]int32, error) {
	in, err := task.Input[int32](d, 0)
	if err != nil {
		return nil, err
	}
	return append([]int32(nil), in...), nil
}

func store(d *task.Data, v []int32) error {
	out, err := task.Output[int32](d, 0)
	if err != nil {
		return err
	}
	copy(out, v)
	return nil
}

// Sort sorts v in place in ascending order. It is stable and allocates one
// scratch slice of len(v).
func Sort(v []int32) {
	if len(v) < 2 {
		return
	}
	var (
		src     = v
		dst     = make([]int32, len(v))
		count   [buckets]int
		shift   uint
		pass, i int
		key     uint32
	)
	for pass = 0; pass < passes; pass++ {
		shift = uint(pass * radixBits)
		count = [buckets]int{}
		for _, x := range src {
			key = (uint32(x) ^ signBit) >> shift & (buckets - 1)
			count[key]++
		}
		// Skip passes where every key lands in one bucket.
		if count[(uint32(src[0])^signBit)>>shift&(buckets-1)] == len(src) {
			continue
		}
		for i = 1; i < buckets; i++ {
			count[i] += count[i-1]
		}
		for i = len(src) - 1; i >= 0; i-- {
			key = (uint32(src[i]) ^ signBit) >> shift & (buckets - 1)
			count[key]--
			dst[count[key]] = src[i]
		}
		src, dst = dst, src
	}
	if &src[0] != &v[0] {
		copy(v, src)
	}
}

// run is one sorted segment in the k-way merge.
type run struct {
	vals []int32
	pos  int
	id   int
}

// runHeap orders runs by their head value, ties by run id so the merge is
// stable across ranks.
type runHeap []*run

func (h runHeap) Len() int { return len(h) }
func (h runHeap) Less(i, j int) bool {
	a, b := h[i].vals[h[i].pos], h[j].vals[h[j].pos]
	if a != b {
		return a < b
	}
	return h[i].id < h[j].id
}
func (h runHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *runHeap) Push(x any)   { *h = append(*h, x.(*run)) }
func (h *runHeap) Pop() any {
	old := *h
	n := len(old)
	r := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return r
}

// Merge merges consecutive sorted runs of v, with lengths counts, into out.
func Merge(v []int32, counts []int, out []int32) {
	h := make(runHeap, 0, len(counts))
	off := 0
	for id, c := range counts {
		if c > 0 {
			h = append(h, &run{vals: v[off : off+c], id: id})
		}
		off += c
	}
	heap.Init(&h)

	k := 0
	for h.Len() > 0 {
		r := h[0]
		out[k] = r.vals[r.pos]
		k++
		r.pos++
		if r.pos == len(r.vals) {
			heap.Pop(&h)
			continue
		}
		heap.Fix(&h, 0)
	}
}
