// SPDX-License-Identifier: MIT

package sequence

import "fmt"

// Features is the read-side view the recursors need: the called symbols.
type Features interface {
	// Len returns the read length.
	Len() int
	// Base returns the called symbol at read position i.
	Base(i int) Symbol
	// Symbols returns a copy of the called sequence.
	Symbols() Symbols
}

// QvChannels carries optional per-position quality channels for NewQvFeatures.
// Nil vectors (and an empty DelTag) mean "all zero" / "no tag".
type QvChannels struct {
	InsQv   *Vector
	SubsQv  *Vector
	DelQv   *Vector
	MergeQv *Vector
	DelTag  string // one letter per position; 'N' or '-' for no tag
}

// QvFeatures is a read annotated with per-move-type quality values.
// It is immutable after construction and safe for concurrent readers.
type QvFeatures struct {
	seq     Symbols
	insQv   []float64
	subsQv  []float64
	delQv   []float64
	mergeQv []float64
	delTag  Symbols
}

var _ Features = (*QvFeatures)(nil)

// NewQvFeatures validates seq and the supplied channels and builds QvFeatures.
//
// Errors:
//   - ErrEmptyInput: seq is empty.
//   - ErrInvalidSymbol: seq or DelTag holds a letter outside the alphabet.
//   - ErrLengthMismatch: a channel is present but not len(seq) long.
func NewQvFeatures(seq string, ch QvChannels) (*QvFeatures, error) {
	if len(seq) == 0 {
		return nil, ErrEmptyInput
	}
	syms, err := ParseSymbols(seq, true)
	if err != nil {
		return nil, err
	}
	n := len(syms)

	f := &QvFeatures{seq: syms}
	if f.insQv, err = channel("InsQv", ch.InsQv, n); err != nil {
		return nil, err
	}
	if f.subsQv, err = channel("SubsQv", ch.SubsQv, n); err != nil {
		return nil, err
	}
	if f.delQv, err = channel("DelQv", ch.DelQv, n); err != nil {
		return nil, err
	}
	if f.mergeQv, err = channel("MergeQv", ch.MergeQv, n); err != nil {
		return nil, err
	}

	switch {
	case ch.DelTag == "":
		f.delTag = make(Symbols, n)
		for i := range f.delTag {
			f.delTag[i] = Gap
		}
	case len(ch.DelTag) != n:
		return nil, fmt.Errorf("DelTag: %w: got %d, want %d", ErrLengthMismatch, len(ch.DelTag), n)
	default:
		if f.delTag, err = ParseSymbols(ch.DelTag, false); err != nil {
			return nil, fmt.Errorf("DelTag: %w", err)
		}
	}

	return f, nil
}

// channel copies an optional vector, defaulting to zeros.
func channel(name string, v *Vector, n int) ([]float64, error) {
	if v == nil {
		return make([]float64, n), nil
	}
	if v.Len() != n {
		return nil, fmt.Errorf("%s: %w: got %d, want %d", name, ErrLengthMismatch, v.Len(), n)
	}

	return v.Values(), nil
}

// Len returns the read length.
func (f *QvFeatures) Len() int { return len(f.seq) }

// Base returns the called symbol at i.
func (f *QvFeatures) Base(i int) Symbol { return f.seq[i] }

// Symbols returns a copy of the called sequence.
func (f *QvFeatures) Symbols() Symbols { return f.seq.Clone() }

// InsQv returns the insertion quality at i.
func (f *QvFeatures) InsQv(i int) float64 { return f.insQv[i] }

// SubsQv returns the substitution quality at i.
func (f *QvFeatures) SubsQv(i int) float64 { return f.subsQv[i] }

// DelQv returns the deletion quality at i.
func (f *QvFeatures) DelQv(i int) float64 { return f.delQv[i] }

// MergeQv returns the merge quality at i.
func (f *QvFeatures) MergeQv(i int) float64 { return f.mergeQv[i] }

// DelTag returns the deletion tag at i; Gap when the basecaller left none.
func (f *QvFeatures) DelTag(i int) Symbol { return f.delTag[i] }

// ChannelFeatures is a read whose positions carry an observed intensity
// channel (1..4) instead of quality values.
type ChannelFeatures struct {
	seq     Symbols
	channel []int
}

var _ Features = (*ChannelFeatures)(nil)

// NewChannelFeatures builds channel features. A nil channel slice derives
// the channel from each called base.
func NewChannelFeatures(seq string, channel []int) (*ChannelFeatures, error) {
	if len(seq) == 0 {
		return nil, ErrEmptyInput
	}
	syms, err := ParseSymbols(seq, true)
	if err != nil {
		return nil, err
	}
	ch := make([]int, len(syms))
	if channel == nil {
		for i, s := range syms {
			ch[i] = s.Channel()
		}
	} else {
		if len(channel) != len(syms) {
			return nil, fmt.Errorf("Channel: %w: got %d, want %d", ErrLengthMismatch, len(channel), len(syms))
		}
		for i, c := range channel {
			if c < 1 || c > NumBases {
				return nil, fmt.Errorf("position %d: %w: %d", i, ErrInvalidChannel, c)
			}
		}
		copy(ch, channel)
	}

	return &ChannelFeatures{seq: syms, channel: ch}, nil
}

// Len returns the read length.
func (f *ChannelFeatures) Len() int { return len(f.seq) }

// Base returns the called symbol at i.
func (f *ChannelFeatures) Base(i int) Symbol { return f.seq[i] }

// Symbols returns a copy of the called sequence.
func (f *ChannelFeatures) Symbols() Symbols { return f.seq.Clone() }

// Channel returns the observed channel at i (1..4).
func (f *ChannelFeatures) Channel(i int) int { return f.channel[i] }
