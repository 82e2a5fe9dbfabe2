// SPDX-License-Identifier: MIT

package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/ppc/comm"
	"github.com/katalvlaran/ppc/task"
)

// Variants.
const (
	Seq = "seq"
	Par = "par"
)

var (
	// ErrUnknown indicates a name with no registered entry.
	ErrUnknown = errors.New("catalog: unknown task")

	// ErrDuplicate indicates a second registration under the same name.
	ErrDuplicate = errors.New("catalog: duplicate task")

	// ErrBadParams indicates a non-positive size.
	ErrBadParams = errors.New("catalog: size must be positive")

	// ErrMismatch indicates the outputs differ from the reference.
	ErrMismatch = errors.New("catalog: output mismatch")

	// ErrNoWorld indicates a parallel entry was built without a world.
	ErrNoWorld = errors.New("catalog: parallel task needs a world")
)

// Params selects the problem instance.
type Params struct {
	Size int
	Seed int64
}

// Instance is one built task with its data and reference check.
type Instance struct {
	Task  task.Task
	Data  *task.Data
	Check func() error
}

// BuildFunc builds an instance. world is nil for sequential entries.
type BuildFunc func(p Params, world *comm.World) (*Instance, error)

// BindFunc wraps caller-provided data in a new task. Only p.Seed is read.
type BindFunc func(p Params, d *task.Data, world *comm.World) task.Task

// Entry is a registered task variant.
type Entry struct {
	Name  string
	Build BuildFunc
	Bind  BindFunc
}

// Parallel reports whether the entry runs on a world.
func (e Entry) Parallel() bool { return strings.HasSuffix(e.Name, "/"+Par) }

// Registry maps names to entries.
type Registry struct {
	entries map[string]Entry
}

// New returns an empty registry.
func New() *Registry { return &Registry{entries: make(map[string]Entry)} }

// Default returns a registry holding every built-in task in both variants.
func Default() *Registry {
	r := New()
	for _, e := range builtins() {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds e. Names must be unique.
func (r *Registry) Register(e Entry) error {
	if _, ok := r.entries[e.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, e.Name)
	}
	r.entries[e.Name] = e
	return nil
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for n := range r.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return e, nil
}

// Select returns the entries whose name starts with one of the prefixes, in
// sorted order. No prefixes selects everything.
func (r *Registry) Select(prefixes ...string) []Entry {
	var out []Entry
	for _, n := range r.Names() {
		if matches(n, prefixes) {
			out = append(out, r.entries[n])
		}
	}
	return out
}

func matches(name string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, p := range prefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// Build validates p and builds the named entry.
func (r *Registry) Build(name string, p Params, world *comm.World) (*Instance, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if p.Size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadParams, p.Size)
	}
	if e.Parallel() && world == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoWorld, name)
	}
	return e.Build(p, world)
}

// Bind wraps d in a new task of the named entry, for data that does not
// come from Build (fixtures, for instance).
func (r *Registry) Bind(name string, d *task.Data, seed int64, world *comm.World) (task.Task, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if e.Parallel() && world == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoWorld, name)
	}
	if e.Bind == nil {
		return nil, fmt.Errorf("%w: %q cannot bind data", ErrUnknown, name)
	}
	return e.Bind(Params{Seed: seed}, d, world), nil
}

// mismatch builds an ErrMismatch for index i.
func mismatch(name string, i int, got, want any) error {
	return fmt.Errorf("%w: %s[%d] = %v, want %v", ErrMismatch, name, i, got, want)
}
