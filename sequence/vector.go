// SPDX-License-Identifier: MIT

package sequence

import "fmt"

// Vector is a fixed-length, bounds-checked float64 container.
// It is the typed replacement for raw array handoff between a driver and
// the engine: At/Set return ErrOutOfRange instead of reading past the end.
type Vector struct {
	data []float64
}

// NewVector returns a zero-filled vector of length n (n ≥ 0).
func NewVector(n int) (*Vector, error) {
	if n < 0 {
		return nil, fmt.Errorf("NewVector(%d): %w", n, ErrOutOfRange)
	}

	return &Vector{data: make([]float64, n)}, nil
}

// VectorOf copies vals into a new vector.
func VectorOf(vals ...float64) *Vector {
	data := make([]float64, len(vals))
	copy(data, vals)

	return &Vector{data: data}
}

// VectorFromBytes converts byte-encoded quality values (e.g. Phred bytes
// from a SAM record) into a vector.
func VectorFromBytes(vals []byte) *Vector {
	data := make([]float64, len(vals))
	for i, b := range vals {
		data[i] = float64(b)
	}

	return &Vector{data: data}
}

// Len returns the number of elements. A nil vector has length 0.
func (v *Vector) Len() int {
	if v == nil {
		return 0
	}

	return len(v.data)
}

// At returns element i.
func (v *Vector) At(i int) (float64, error) {
	if i < 0 || i >= v.Len() {
		return 0, fmt.Errorf("Vector.At(%d): %w", i, ErrOutOfRange)
	}

	return v.data[i], nil
}

// Set assigns element i.
func (v *Vector) Set(i int, x float64) error {
	if i < 0 || i >= v.Len() {
		return fmt.Errorf("Vector.Set(%d): %w", i, ErrOutOfRange)
	}
	v.data[i] = x

	return nil
}

// Values returns a copy of the contents.
func (v *Vector) Values() []float64 {
	out := make([]float64, v.Len())
	if v != nil {
		copy(out, v.data)
	}

	return out
}
