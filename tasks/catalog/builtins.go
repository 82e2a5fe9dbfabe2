// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
	"github.com/katalvlaran/ppc/tasks/dijkstra"
	"github.com/katalvlaran/ppc/tasks/gaussjordan"
	"github.com/katalvlaran/ppc/tasks/integrate"
	"github.com/katalvlaran/ppc/tasks/matmul"
	"github.com/katalvlaran/ppc/tasks/radixsort"
	"github.com/katalvlaran/ppc/tasks/sobel"
)

// family describes one task in both variants. gen builds the data and the
// reference check for a variant.
type family struct {
	name string
	gen  func(p Params, parallel bool) (*task.Data, func(*task.Data) error)
	seq  func(p Params, d *task.Data) task.Task
	par  func(p Params, d *task.Data, w *comm.World) task.Task
}

func (f family) entries() []Entry {
	return []Entry{
		{
			Name: f.name + "/" + Seq,
			Build: func(p Params, _ *comm.World) (*Instance, error) {
				d, check := f.gen(p, false)
				return instance(f.seq(p, d), d, check), nil
			},
			Bind: func(p Params, d *task.Data, _ *comm.World) task.Task { return f.seq(p, d) },
		},
		{
			Name: f.name + "/" + Par,
			Build: func(p Params, w *comm.World) (*Instance, error) {
				d, check := f.gen(p, true)
				return instance(f.par(p, d, w), d, check), nil
			},
			Bind: f.par,
		},
	}
}

func instance(t task.Task, d *task.Data, check func(*task.Data) error) *Instance {
	return &Instance{Task: t, Data: d, Check: func() error { return check(d) }}
}

func builtins() []Entry {
	var out []Entry
	for _, f := range []family{matmulFamily, radixFamily, integrateFamily, sobelFamily, dijkstraFamily, gaussFamily} {
		out = append(out, f.entries()...)
	}
	return out
}

func rng(p Params) *rand.Rand { return rand.New(rand.NewSource(p.Seed)) }

// within reports |got-want| <= tol; NaN is never within any tolerance.
func within(got, want, tol float64) bool { return math.Abs(got-want) <= tol }

var matmulFamily = family{
	name: "matmul",
	gen: func(p Params, _ bool) (*task.Data, func(*task.Data) error) {
		n := p.Size
		r := rng(p)
		a, b := make([]float64, n*n), make([]float64, n*n)
		for i := range a {
			a[i], b[i] = r.Float64()*2-1, r.Float64()*2-1
		}
		d := task.NewData().
			AddInput(task.NewBuffer(a)).
			AddInput(task.NewBuffer(b)).
			AddInput(task.NewBuffer([]int32{int32(n), int32(n), int32(n)})).
			AddOutput(task.NewBuffer(make([]float64, n*n)))
		return d, func(d *task.Data) error {
			got, err := task.Output[float64](d, 0)
			if err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					var want float64
					for k := 0; k < n; k++ {
						want += a[i*n+k] * b[k*n+j]
					}
					if !within(got[i*n+j], want, 1e-9*float64(n)) {
						return mismatch("C", i*n+j, got[i*n+j], want)
					}
				}
			}
			return nil
		}
	},
	seq: func(_ Params, d *task.Data) task.Task { return matmul.NewSequential(d) },
	par: func(_ Params, d *task.Data, w *comm.World) task.Task { return matmul.NewParallel(d, w) },
}

var radixFamily = family{
	name: "radixsort",
	gen: func(p Params, _ bool) (*task.Data, func(*task.Data) error) {
		r := rng(p)
		in := make([]int32, p.Size*p.Size)
		for i := range in {
			in[i] = int32(r.Uint32())
		}
		want := slices.Clone(in)
		slices.Sort(want)
		d := task.NewData().
			AddInput(task.NewBuffer(in)).
			AddOutput(task.NewBuffer(make([]int32, len(in))))
		return d, func(d *task.Data) error {
			got, err := task.Output[int32](d, 0)
			if err != nil {
				return err
			}
			for i := range want {
				if got[i] != want[i] {
					return mismatch("sorted", i, got[i], want[i])
				}
			}
			return nil
		}
	},
	seq: func(_ Params, d *task.Data) task.Task { return radixsort.NewSequential(d) },
	par: func(_ Params, d *task.Data, w *comm.World) task.Task { return radixsort.NewParallel(d, w) },
}

var integrateFamily = family{
	name: "integrate",
	gen: func(p Params, parallel bool) (*task.Data, func(*task.Data) error) {
		n := int64(2 * p.Size * p.Size)
		// Simpson is exact for x²; Monte Carlo gets a 6σ band,
		// σ = sqrt(Var[x²] / n) with Var[x²] = 4/45 on [0,1].
		tol := 1e-9
		if parallel {
			tol = 6 * math.Sqrt(4.0/45.0/float64(n))
		}
		d := task.NewData().
			AddInput(task.NewBuffer([]float64{0, 1})).
			AddInput(task.NewBuffer([]int64{n})).
			AddOutput(task.NewBuffer(make([]float64, 1)))
		return d, func(d *task.Data) error {
			got, err := task.Output[float64](d, 0)
			if err != nil {
				return err
			}
			if !within(got[0], 1.0/3.0, tol) {
				return fmt.Errorf("%w: integral %v, want 1/3 ± %.2g", ErrMismatch, got[0], tol)
			}
			return nil
		}
	},
	seq: func(_ Params, d *task.Data) task.Task { return integrate.NewSequential(d) },
	par: func(p Params, d *task.Data, w *comm.World) task.Task {
		return integrate.NewParallel(d, w, integrate.WithSeed(p.Seed))
	},
}

var sobelFamily = family{
	name: "sobel",
	gen: func(p Params, _ bool) (*task.Data, func(*task.Data) error) {
		n := p.Size
		r := rng(p)
		img := make([]uint8, n*n)
		for i := range img {
			img[i] = uint8(r.Intn(256))
		}
		want := make([]uint8, n*n)
		sobel.Filter(img, 0, n, n, 0, n, want)
		d := task.NewData().
			AddInput(task.NewBuffer(img)).
			AddInput(task.NewBuffer([]int32{int32(n), int32(n)})).
			AddOutput(task.NewBuffer(make([]uint8, n*n)))
		return d, func(d *task.Data) error {
			got, err := task.Output[uint8](d, 0)
			if err != nil {
				return err
			}
			for i := range want {
				if got[i] != want[i] {
					return mismatch("edges", i, got[i], want[i])
				}
			}
			return nil
		}
	},
	seq: func(_ Params, d *task.Data) task.Task { return sobel.NewSequential(d) },
	par: func(_ Params, d *task.Data, w *comm.World) task.Task { return sobel.NewParallel(d, w) },
}

var dijkstraFamily = family{
	name: "dijkstra",
	gen: func(p Params, _ bool) (*task.Data, func(*task.Data) error) {
		n := p.Size
		r := rng(p)
		adj := make([]int64, n*n)
		for i := range adj {
			adj[i] = -1
			if r.Intn(4) == 0 {
				adj[i] = r.Int63n(1000)
			}
		}
		want := make([]int64, n)
		dijkstra.ShortestPaths(adj, n, 0, want)
		d := task.NewData().
			AddInput(task.NewBuffer(adj)).
			AddInput(task.NewBuffer([]int32{0})).
			AddOutput(task.NewBuffer(make([]int64, n)))
		return d, func(d *task.Data) error {
			got, err := task.Output[int64](d, 0)
			if err != nil {
				return err
			}
			for i := range want {
				if got[i] != want[i] {
					return mismatch("dist", i, got[i], want[i])
				}
			}
			return nil
		}
	},
	seq: func(_ Params, d *task.Data) task.Task { return dijkstra.NewSequential(d) },
	par: func(_ Params, d *task.Data, w *comm.World) task.Task { return dijkstra.NewParallel(d, w) },
}

var gaussFamily = family{
	name: "gaussjordan",
	gen: func(p Params, _ bool) (*task.Data, func(*task.Data) error) {
		n := p.Size
		cols := n + 1
		r := rng(p)
		aug := make([]float64, n*cols)
		for i := 0; i < n; i++ {
			for j := 0; j < cols; j++ {
				aug[i*cols+j] = r.Float64()*2 - 1
			}
			aug[i*cols+i] += float64(n) // diagonally dominant, never singular
		}
		d := task.NewData().
			AddInput(task.NewBuffer(aug)).
			AddInput(task.NewBuffer([]int32{int32(n)})).
			AddOutput(task.NewBuffer(make([]float64, n)))
		return d, func(d *task.Data) error {
			x, err := task.Output[float64](d, 0)
			if err != nil {
				return err
			}
			// Residual check: |A·x - b|∞.
			for i := 0; i < n; i++ {
				res := -aug[i*cols+n]
				for j := 0; j < n; j++ {
					res += aug[i*cols+j] * x[j]
				}
				if !within(res, 0, 1e-8) {
					return fmt.Errorf("%w: residual %g in row %d", ErrMismatch, res, i)
				}
			}
			return nil
		}
	},
	seq: func(_ Params, d *task.Data) task.Task { return gaussjordan.NewSequential(d) },
	par: func(_ Params, d *task.Data, w *comm.World) task.Task { return gaussjordan.NewParallel(d, w) },
}
