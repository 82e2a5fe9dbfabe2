// SPDX-License-Identifier: MIT

// Package task: Data, the slot container shared between caller and task.
//
// Data maps a slot index to a Buffer, separately for inputs and outputs.
// The element count of a slot is the buffer length, so the parallel
// "*_count" vectors of the old design are derived, never stored.
//
// Validation helpers (ExpectSlots, ExpectInput, ExpectOutput) centralize the
// slot checks every task used to repeat by hand.

package task

import "fmt"

// Data carries the input and output buffers of one task instance.
// It is owned by the caller and never frees or copies buffer memory.
type Data struct {
	Inputs  []Buffer
	Outputs []Buffer
}

// NewData returns an empty Data ready for AddInput / AddOutput chaining.
func NewData() *Data { return &Data{} }

// AddInput appends an input slot and returns d for chaining.
func (d *Data) AddInput(b Buffer) *Data {
	d.Inputs = append(d.Inputs, b)
	return d
}

// AddOutput appends an output slot and returns d for chaining.
func (d *Data) AddOutput(b Buffer) *Data {
	d.Outputs = append(d.Outputs, b)
	return d
}

// InputsCount returns the element count of every input slot, in slot order.
func (d *Data) InputsCount() []int { return counts(d.Inputs) }

// OutputsCount returns the element count of every output slot, in slot order.
func (d *Data) OutputsCount() []int { return counts(d.Outputs) }

func counts(bs []Buffer) []int {
	out := make([]int, len(bs))
	for i, b := range bs {
		out[i] = b.Len()
	}
	return out
}

// ExpectSlots checks that d has exactly nIn input and nOut output slots.
func (d *Data) ExpectSlots(nIn, nOut int) error {
	if d == nil {
		return Wrap(ValidationFailed, ErrNilData)
	}
	if len(d.Inputs) != nIn || len(d.Outputs) != nOut {
		return Errorf(ValidationFailed, "%w: have %d/%d (in/out), want %d/%d",
			ErrSlotCount, len(d.Inputs), len(d.Outputs), nIn, nOut)
	}
	return nil
}

// ExpectInput checks input slot i holds typ with at least minLen elements.
func (d *Data) ExpectInput(i int, typ ElemType, minLen int) error {
	if d == nil {
		return Wrap(ValidationFailed, ErrNilData)
	}
	return expectSlot("input", d.Inputs, i, typ, minLen)
}

// ExpectOutput checks output slot i holds typ with at least minLen elements.
func (d *Data) ExpectOutput(i int, typ ElemType, minLen int) error {
	if d == nil {
		return Wrap(ValidationFailed, ErrNilData)
	}
	return expectSlot("output", d.Outputs, i, typ, minLen)
}

func expectSlot(side string, bs []Buffer, i int, typ ElemType, minLen int) error {
	if i < 0 || i >= len(bs) {
		return Errorf(ValidationFailed, "%w: %s %d of %d", ErrSlotOutOfRange, side, i, len(bs))
	}
	b := bs[i]
	if b.Type() != typ {
		return Errorf(ValidationFailed, "%w: %s %d is %s, want %s", ErrTypeMismatch, side, i, b.Type(), typ)
	}
	if b.Len() < minLen {
		return Errorf(ValidationFailed, "%w: %s %d has %d elements, want >= %d", ErrShortBuffer, side, i, b.Len(), minLen)
	}
	return nil
}

// Input returns input slot i viewed as []T.
func Input[T Elem](d *Data, i int) ([]T, error) {
	if d == nil {
		return nil, Wrap(ValidationFailed, ErrNilData)
	}
	return slotView[T]("input", d.Inputs, i)
}

// Output returns output slot i viewed as []T.
func Output[T Elem](d *Data, i int) ([]T, error) {
	if d == nil {
		return nil, Wrap(ValidationFailed, ErrNilData)
	}
	return slotView[T]("output", d.Outputs, i)
}

func slotView[T Elem](side string, bs []Buffer, i int) ([]T, error) {
	if i < 0 || i >= len(bs) {
		return nil, Errorf(ValidationFailed, "%w: %s %d of %d", ErrSlotOutOfRange, side, i, len(bs))
	}
	v, err := View[T](bs[i])
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", side, i, err)
	}
	return v, nil
}
