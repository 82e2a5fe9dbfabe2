// SPDX-License-Identifier: MIT

// Package fixture loads hand-written task cases from YAML.
//
// A fixture names a task family and the variants to run it on (both by
// default), lists its input slots with values and its output slots with the
// expected values:
//
//	task: matmul
//	variants: [seq, par]
//	inputs:
//	  - {type: float64, values: [1, 2, 3, 4]}
//	  - {type: float64, values: [1, 0, 0, 1]}
//	  - {type: int32,   values: [2, 2, 2]}
//	outputs:
//	  - {type: float64, values: [1, 2, 3, 4], tolerance: 1e-12}
//
// Values are kept as YAML scalars and parsed per element type, so int64
// values keep their full precision.
package fixture

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/katalvlaran/ppc/task"
)

var (
	// ErrNotFound indicates the fixture file does not exist.
	ErrNotFound = errors.New("fixture: file not found")

	// ErrInvalid indicates a malformed fixture.
	ErrInvalid = errors.New("fixture: invalid")

	// ErrMismatch indicates an output differs from the expected values.
	ErrMismatch = errors.New("fixture: output mismatch")
)

// Fixture is one task case.
type Fixture struct {
	// Task is the task family, for example "sobel".
	Task string `yaml:"task"`

	// Variants lists the variants to run; empty means seq and par.
	Variants []string `yaml:"variants,omitempty,flow"`

	// Seed is handed to seeded tasks; 0 selects their default.
	Seed int64 `yaml:"seed,omitempty"`

	Inputs  []Slot `yaml:"inputs"`
	Outputs []Slot `yaml:"outputs"`
}

// Slot is one buffer. For outputs, Values are the expected values and Len
// (default len(Values)) sizes the buffer.
type Slot struct {
	Type      string   `yaml:"type"`
	Values    []string `yaml:"values,flow"`
	Len       int      `yaml:"len,omitempty"`
	Tolerance float64  `yaml:"tolerance,omitempty"`
}

// Load reads and verifies the fixture at path.
func Load(path string) (*Fixture, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrNotFound, path)
		}
		return nil, err
	}
	f, err := Unmarshal(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Unmarshal decodes and verifies a fixture.
func Unmarshal(buf []byte) (*Fixture, error) {
	f := &Fixture{}
	if err := yaml.Unmarshal(buf, f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := f.Verify(); err != nil {
		return nil, err
	}
	return f, nil
}

// Verify checks the task name, element types and values.
func (f *Fixture) Verify() error {
	if f.Task == "" || strings.Contains(f.Task, "/") {
		return fmt.Errorf("%w: task %q must be a bare family name", ErrInvalid, f.Task)
	}
	for _, v := range f.Variants {
		if v != "seq" && v != "par" {
			return fmt.Errorf("%w: variant %q (seq/par)", ErrInvalid, v)
		}
	}
	for i, s := range f.Inputs {
		if _, err := s.buffer(false); err != nil {
			return fmt.Errorf("%w: inputs[%d]: %w", ErrInvalid, i, err)
		}
	}
	for i, s := range f.Outputs {
		if _, err := s.buffer(true); err != nil {
			return fmt.Errorf("%w: outputs[%d]: %w", ErrInvalid, i, err)
		}
		if s.Len != 0 && len(s.Values) > s.Len {
			return fmt.Errorf("%w: outputs[%d]: %d values for len %d", ErrInvalid, i, len(s.Values), s.Len)
		}
	}
	return nil
}

// Names returns the catalog entry names to run, "<task>/<variant>".
func (f *Fixture) Names() []string {
	variants := f.Variants
	if len(variants) == 0 {
		variants = []string{"seq", "par"}
	}
	names := make([]string, len(variants))
	for i, v := range variants {
		names[i] = f.Task + "/" + v
	}
	return names
}

// Data builds fresh buffers: inputs hold the values, outputs are zeroed.
func (f *Fixture) Data() (*task.Data, error) {
	d := task.NewData()
	for i, s := range f.Inputs {
		b, err := s.buffer(false)
		if err != nil {
			return nil, fmt.Errorf("%w: inputs[%d]: %w", ErrInvalid, i, err)
		}
		d.AddInput(b)
	}
	for i, s := range f.Outputs {
		b, err := s.buffer(true)
		if err != nil {
			return nil, fmt.Errorf("%w: outputs[%d]: %w", ErrInvalid, i, err)
		}
		d.AddOutput(b)
	}
	return d, nil
}

// Check compares the outputs of d with the expected values. Floating-point
// slots compare within Tolerance; integer slots compare exactly.
func (f *Fixture) Check(d *task.Data) error {
	if err := d.ExpectSlots(len(f.Inputs), len(f.Outputs)); err != nil {
		return err
	}
	for i, s := range f.Outputs {
		want, err := s.buffer(false)
		if err != nil {
			return err
		}
		if err = compare(d.Outputs[i], want, s.Tolerance); err != nil {
			return fmt.Errorf("outputs[%d]: %w", i, err)
		}
	}
	return nil
}

// buffer parses the slot. With sized set, an output buffer of Len zeroed
// elements is returned instead of the values.
func (s Slot) buffer(sized bool) (task.Buffer, error) {
	n := len(s.Values)
	if sized && s.Len > n {
		n = s.Len
	}
	switch s.Type {
	case "float64":
		return parse(s.Values, n, sized, func(v string) (float64, error) { return strconv.ParseFloat(v, 64) })
	case "float32":
		return parse(s.Values, n, sized, func(v string) (float32, error) {
			x, err := strconv.ParseFloat(v, 32)
			return float32(x), err
		})
	case "int64":
		return parse(s.Values, n, sized, func(v string) (int64, error) { return strconv.ParseInt(v, 0, 64) })
	case "int32":
		return parse(s.Values, n, sized, func(v string) (int32, error) {
			x, err := strconv.ParseInt(v, 0, 32)
			return int32(x), err
		})
	case "uint8":
		return parse(s.Values, n, sized, func(v string) (uint8, error) {
			x, err := strconv.ParseUint(v, 0, 8)
			return uint8(x), err
		})
	default:
		return task.Buffer{}, fmt.Errorf("unknown type %q", s.Type)
	}
}

func parse[T task.Elem](vals []string, n int, zeroed bool, conv func(string) (T, error)) (task.Buffer, error) {
	out := make([]T, n)
	for i, v := range vals {
		x, err := conv(v)
		if err != nil {
			return task.Buffer{}, fmt.Errorf("values[%d]: %w", i, err)
		}
		if !zeroed {
			out[i] = x
		}
	}
	return task.NewBuffer(out), nil
}

func compare(got, want task.Buffer, tol float64) error {
	if got.Type() != want.Type() || got.Len() < want.Len() {
		return fmt.Errorf("%w: got %s, want %s", ErrMismatch, got, want)
	}
	switch want.Type() {
	case task.Float64:
		return compareFloat[float64](got, want, tol)
	case task.Float32:
		return compareFloat[float32](got, want, tol)
	case task.Int64:
		return compareExact[int64](got, want)
	case task.Int32:
		return compareExact[int32](got, want)
	default:
		return compareExact[uint8](got, want)
	}
}

func compareFloat[T float32 | float64](got, want task.Buffer, tol float64) error {
	g, _ := task.View[T](got)
	w, _ := task.View[T](want)
	for i := range w {
		if g[i] == w[i] {
			continue
		}
		// NaN fails the comparison, so it never matches.
		if !(math.Abs(float64(g[i])-float64(w[i])) <= tol) {
			return fmt.Errorf("%w: [%d] = %v, want %v ± %g", ErrMismatch, i, g[i], w[i], tol)
		}
	}
	return nil
}

func compareExact[T task.Elem](got, want task.Buffer) error {
	g, _ := task.View[T](got)
	w, _ := task.View[T](want)
	for i := range w {
		if g[i] != w[i] {
			return fmt.Errorf("%w: [%d] = %v, want %v", ErrMismatch, i, g[i], w[i])
		}
	}
	return nil
}
