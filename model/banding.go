// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"math"
)

// Banding restricts the DP to a diagonal strip of the alignment grid.
//
// Column j (template position) computes rows i (read position) with
//
//	|i − (j + DiagonalOffset)| ≤ HalfWidth
//
// The strip has constant width, so it connects (0,0) to (I,J) exactly when
// both corners lie inside it; Covers checks that.
type Banding struct {
	DiagonalOffset int
	HalfWidth      int
}

// Defaults for NewBanding callers that only care about width.
const (
	DefaultDiagonalOffset = 0
	DefaultHalfWidth      = 50
)

// Unbanded computes every cell. HalfWidth is large but far from overflow.
var Unbanded = Banding{DiagonalOffset: 0, HalfWidth: math.MaxInt32}

// NewBanding validates and returns a band.
func NewBanding(diagonalOffset, halfWidth int) (Banding, error) {
	b := Banding{DiagonalOffset: diagonalOffset, HalfWidth: halfWidth}
	if err := b.Validate(); err != nil {
		return Banding{}, err
	}

	return b, nil
}

// Validate checks HalfWidth ≥ 1.
func (b Banding) Validate() error {
	if b.HalfWidth < 1 {
		return fmt.Errorf("%w: band half-width %d < 1", ErrConfiguration, b.HalfWidth)
	}

	return nil
}

// Covers reports whether a read of length readLen can be aligned end to end
// against a template of length tplLen inside the band.
func (b Banding) Covers(readLen, tplLen int) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if abs(b.DiagonalOffset) > b.HalfWidth {
		return fmt.Errorf("%w: origin outside band (offset %d, half-width %d)",
			ErrBandCoverage, b.DiagonalOffset, b.HalfWidth)
	}
	if d := readLen - tplLen - b.DiagonalOffset; abs(d) > b.HalfWidth {
		return fmt.Errorf("%w: |len(read)-len(template)| = %d needs half-width ≥ %d, have %d",
			ErrBandCoverage, abs(readLen-tplLen), abs(d), b.HalfWidth)
	}

	return nil
}

// Rows returns the half-open row range [begin, end) computed for column j of
// a matrix with readLen+1 rows. An empty range has begin == end.
func (b Banding) Rows(j, readLen int) (begin, end int) {
	center := j + b.DiagonalOffset
	begin = center - b.HalfWidth
	if begin < 0 {
		begin = 0
	}
	end = center + b.HalfWidth + 1
	if end > readLen+1 {
		end = readLen + 1
	}
	if end < begin {
		end = begin
	}

	return begin, end
}

// Widen returns a band with HalfWidth grown by delta (saturating).
func (b Banding) Widen(delta int) Banding {
	w := b.HalfWidth + delta
	if w < b.HalfWidth && delta > 0 || w > math.MaxInt32 {
		w = math.MaxInt32
	}

	return Banding{DiagonalOffset: b.DiagonalOffset, HalfWidth: w}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}

	return x
}
