// SPDX-License-Identifier: MIT

package mutation

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/quiver/evaluator"
	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/sequence"
)

// Strand is the orientation of a read relative to the template.
type Strand uint8

// Orientations.
const (
	Forward Strand = iota
	Reverse
)

// String implements fmt.Stringer.
func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}

	return "+"
}

// MappedRead is a read aligned to template positions [TemplateStart,
// TemplateEnd) on one strand. Reverse reads are scored against the reverse
// complement of their span.
type MappedRead struct {
	Name          string
	Chemistry     string
	Features      *sequence.QvFeatures
	Strand        Strand
	TemplateStart int
	TemplateEnd   int
}

type readState struct {
	read   MappedRead
	scorer *Scorer
	active bool
}

// MultiReadScorer sums mutation deltas over many reads of one template.
// Scoring methods may run concurrently; AddRead and ApplyMutations are
// serialised against them.
type MultiReadScorer struct {
	mu        sync.RWMutex
	table     *model.ConfigTable
	arena     *sequence.Arena
	fastScore float64
	opts      Options
	reads     []*readState
}

// NewMultiReadScorer starts a scorer on tpl. The fast-score threshold is the
// most negative FastScoreThreshold in table (never above zero).
func NewMultiReadScorer(table *model.ConfigTable, tpl sequence.Symbols, opts ...Option) (*MultiReadScorer, error) {
	if table == nil {
		return nil, fmt.Errorf("mutation.NewMultiReadScorer: nil config table: %w", model.ErrConfiguration)
	}
	arena, err := sequence.NewArena(tpl)
	if err != nil {
		return nil, fmt.Errorf("mutation.NewMultiReadScorer: %w", err)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	fast := 0.0
	for _, k := range table.Keys() {
		if cfg, err := table.At(k); err == nil {
			fast = math.Min(fast, cfg.FastScoreThreshold)
		}
	}

	return &MultiReadScorer{table: table, arena: arena, fastScore: fast, opts: o}, nil
}

// Template returns the current template.
func (s *MultiReadScorer) Template() sequence.Symbols { return s.arena.Latest() }

// TemplateLength returns the current template length.
func (s *MultiReadScorer) TemplateLength() int { return len(s.arena.Latest()) }

// Arena exposes the template history.
func (s *MultiReadScorer) Arena() *sequence.Arena { return s.arena }

// FastScoreThreshold returns the early-exit threshold.
func (s *MultiReadScorer) FastScoreThreshold() float64 { return s.fastScore }

// NumReads counts every added read, active or not.
func (s *MultiReadScorer) NumReads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.reads)
}

// NumActiveReads counts the reads that take part in scoring.
func (s *MultiReadScorer) NumActiveReads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, rs := range s.reads {
		if rs.active {
			n++
		}
	}

	return n
}

// Read returns read i and whether it is active.
func (s *MultiReadScorer) Read(i int) (MappedRead, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.reads) {
		return MappedRead{}, false, fmt.Errorf("Read(%d): %w", i, ErrReadIndex)
	}

	return s.reads[i].read, s.reads[i].active, nil
}

// ReadScorer returns the single-read scorer of read i, nil when inactive.
func (s *MultiReadScorer) ReadScorer(i int) (*Scorer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.reads) {
		return nil, fmt.Errorf("ReadScorer(%d): %w", i, ErrReadIndex)
	}
	if !s.reads[i].active {
		return nil, nil
	}

	return s.reads[i].scorer, nil
}

// orientedTemplate cuts the span of a read out of tpl and orients it.
func orientedTemplate(tpl sequence.Symbols, strand Strand, start, end int) sequence.Symbols {
	span := tpl[start:end].Clone()
	if strand == Reverse {
		return span.ReverseComplement()
	}

	return span
}

// AddRead adds mr using its chemistry's AddThreshold. It reports whether
// the read became active: reads whose band cannot cover their span, or
// whose band occupies too much of the full matrix, are kept but inactive.
//
// Errors:
//   - model.ErrUnknownChemistry when the table has no entry or fallback.
//   - ErrIndexOutOfRange for a span outside the template.
func (s *MultiReadScorer) AddRead(mr MappedRead) (bool, error) {
	cfg, err := s.table.At(mr.Chemistry)
	if err != nil {
		return false, err
	}

	return s.AddReadWithThreshold(mr, cfg.AddThreshold)
}

// AddReadWithThreshold is AddRead with an explicit occupancy threshold.
func (s *MultiReadScorer) AddReadWithThreshold(mr MappedRead, threshold float64) (bool, error) {
	cfg, err := s.table.At(mr.Chemistry)
	if err != nil {
		return false, err
	}
	if mr.Features == nil {
		return false, fmt.Errorf("AddRead(%q): %w", mr.Name, sequence.ErrEmptyInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tpl := s.arena.Latest()
	if mr.TemplateStart < 0 || mr.TemplateEnd > len(tpl) || mr.TemplateStart >= mr.TemplateEnd {
		return false, fmt.Errorf("AddRead(%q): span [%d,%d) of %d: %w",
			mr.Name, mr.TemplateStart, mr.TemplateEnd, len(tpl), ErrIndexOutOfRange)
	}

	rs := &readState{read: mr}
	ev, err := evaluator.New(mr.Features, orientedTemplate(tpl, mr.Strand, mr.TemplateStart, mr.TemplateEnd),
		cfg.Params, evaluator.WithConfig(cfg), evaluator.WithRecursorOptions(s.opts.recursorOpts...))
	switch {
	case errors.Is(err, model.ErrBandCoverage):
	case err != nil:
		return false, fmt.Errorf("AddRead(%q): %w", mr.Name, err)
	default:
		rs.scorer, rs.active = NewScorer(ev), true
		if threshold < 1 {
			I, J := mr.Features.Len(), mr.TemplateEnd-mr.TemplateStart
			maxSize := int(0.5 + threshold*float64((I+1)*(J+1)))
			if ev.UsedEntries() >= maxSize {
				rs.scorer, rs.active = nil, false
			}
		}
	}
	s.reads = append(s.reads, rs)

	return rs.active, nil
}

// clip returns the edit m makes to the span of r, in template coordinates,
// and false when the span is untouched. A merge straddling a span boundary
// reaches the read as its inside half: the span loses its first base, or
// its last base becomes the merged symbol.
func clip(r MappedRead, m Mutation, tpl sequence.Symbols) (Mutation, bool) {
	ts, te, ms, me := r.TemplateStart, r.TemplateEnd, m.Start(), m.End()
	switch m.Kind {
	case Insertion:
		return m, ts < ms && me <= te
	case Merge:
		switch {
		case ts <= ms && me <= te:
			return m, true
		case ms+1 == ts:
			return Delete(ts), true
		case ms+1 == te && tpl[ms] != m.Symbol:
			return Substitute(ms, m.Symbol), true
		}

		return Mutation{}, false
	default:
		return m, ts < me && ms < te
	}
}

// oriented rewrites m in the coordinates of the read's oriented span.
func oriented(r MappedRead, m Mutation) Mutation {
	if r.Strand == Forward {
		return Mutation{Kind: m.Kind, Position: m.Start() - r.TemplateStart, Symbol: m.Symbol}
	}
	sym := m.Symbol
	if m.Kind != Deletion {
		sym = sym.Complement()
	}

	return Mutation{Kind: m.Kind, Position: r.TemplateEnd - m.End(), Symbol: sym}
}

// participants lists the active reads whose span m touches, with the edit
// each of them sees.
func (s *MultiReadScorer) participants(m Mutation) ([]int, []Mutation) {
	tpl := s.arena.Latest()
	var (
		idx  []int
		muts []Mutation
	)
	for i, rs := range s.reads {
		if !rs.active {
			continue
		}
		if c, ok := clip(rs.read, m, tpl); ok {
			idx = append(idx, i)
			muts = append(muts, c)
		}
	}

	return idx, muts
}

// deltas scores muts[k] against read idx[k] in parallel; out[k] belongs to
// idx[k].
func (s *MultiReadScorer) deltas(idx []int, muts []Mutation) ([]float64, error) {
	out := make([]float64, len(idx))
	workers := s.opts.workers
	if workers > len(idx) {
		workers = len(idx)
	}
	if workers <= 1 {
		for k, i := range idx {
			rs := s.reads[i]
			d, err := rs.scorer.Delta(oriented(rs.read, muts[k]))
			if err != nil {
				return nil, fmt.Errorf("read %q: %w", rs.read.Name, err)
			}
			out[k] = d
		}

		return out, nil
	}

	jobs := make(chan int, len(idx))
	errs := make([]error, len(idx))
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for k := range jobs {
				rs := s.reads[idx[k]]
				out[k], errs[k] = rs.scorer.Delta(oriented(rs.read, muts[k]))
			}
		}()
	}
	for k := range idx {
		jobs <- k
	}
	close(jobs)
	wg.Wait()

	for k, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", s.reads[idx[k]].read.Name, err)
		}
	}

	return out, nil
}

func (s *MultiReadScorer) check(m Mutation) error {
	return m.Check(len(s.arena.Latest()))
}

// Score sums new − old over every active read whose span m touches.
// Per-read deltas are computed concurrently and summed in read order.
func (s *MultiReadScorer) Score(m Mutation) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(m); err != nil {
		return 0, err
	}
	ds, err := s.deltas(s.participants(m))
	if err != nil {
		return 0, err
	}
	sum := 0.0
	for _, d := range ds {
		sum += d
	}

	return sum, nil
}

// ScoreMutation is Score for (kind, position, symbol).
func (s *MultiReadScorer) ScoreMutation(kind Kind, position int, symbol sequence.Symbol) (float64, error) {
	m, err := New(kind, position, symbol)
	if err != nil {
		return 0, err
	}

	return s.Score(m)
}

// Scores returns the delta per read, unscored for reads that are inactive
// or do not cover m.
func (s *MultiReadScorer) Scores(m Mutation, unscored float64) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(m); err != nil {
		return nil, err
	}
	idx, muts := s.participants(m)
	ds, err := s.deltas(idx, muts)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(s.reads))
	for i := range out {
		out[i] = unscored
	}
	for k, i := range idx {
		out[i] = ds[k]
	}

	return out, nil
}

// FastScore is Score with an early exit: reads are scored in batches of the
// worker count and the running sum, taken in read order, stops as soon as it
// drops below the fast-score threshold.
func (s *MultiReadScorer) FastScore(m Mutation) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(m); err != nil {
		return 0, err
	}
	idx, muts := s.participants(m)
	sum := 0.0
	for lo := 0; lo < len(idx); lo += s.opts.workers {
		hi := lo + s.opts.workers
		if hi > len(idx) {
			hi = len(idx)
		}
		ds, err := s.deltas(idx[lo:hi], muts[lo:hi])
		if err != nil {
			return 0, err
		}
		for _, d := range ds {
			sum += d
			if sum < s.fastScore {
				return sum, nil
			}
		}
	}

	return sum, nil
}

// IsFavorable reports Score(m) > MinFavorableScoreDiff.
func (s *MultiReadScorer) IsFavorable(m Mutation) (bool, error) {
	sum, err := s.Score(m)

	return err == nil && sum > MinFavorableScoreDiff, err
}

// FastIsFavorable is IsFavorable on FastScore.
func (s *MultiReadScorer) FastIsFavorable(m Mutation) (bool, error) {
	sum, err := s.FastScore(m)
	if err != nil {
		return false, err
	}
	if sum < s.fastScore {
		return false, nil
	}

	return sum > MinFavorableScoreDiff, nil
}

// BaselineScore sums the scores of the active reads.
func (s *MultiReadScorer) BaselineScore() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sum := 0.0
	for _, rs := range s.reads {
		if rs.active {
			sum += rs.scorer.Score()
		}
	}

	return sum
}

// ApplyMutations commits ms as one new template version, remaps every
// read's span and rebuilds the active evaluators. Reads that no longer fit
// their band, or whose span empties, become inactive. Evaluators are
// rebuilt before the commit; on any other error they are restored and
// neither the arena nor the reads change.
func (s *MultiReadScorer) ApplyMutations(ms []Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tpl := s.arena.Latest()
	next, err := ApplyAll(ms, tpl)
	if err != nil {
		return err
	}
	mtp := TargetToQueryPositions(Transcript(ms, len(tpl)))

	keep := make([]bool, len(s.reads))
	var rebuilt []int
	restore := func() {
		for _, i := range rebuilt {
			r := s.reads[i].read
			// tpl filled before, so this cannot fail.
			_ = s.reads[i].scorer.Evaluator().SetTemplate(
				orientedTemplate(tpl, r.Strand, r.TemplateStart, r.TemplateEnd))
		}
	}
	for i, rs := range s.reads {
		start, end := mtp[rs.read.TemplateStart], mtp[rs.read.TemplateEnd]
		if !rs.active || start >= end {
			continue
		}
		err := rs.scorer.Evaluator().SetTemplate(orientedTemplate(next, rs.read.Strand, start, end))
		switch {
		case errors.Is(err, model.ErrBandCoverage):
		case err != nil:
			restore()

			return fmt.Errorf("ApplyMutations: read %q: %w", rs.read.Name, err)
		default:
			keep[i] = true
			rebuilt = append(rebuilt, i)
		}
	}
	if _, err := s.arena.Commit(next); err != nil {
		restore()

		return err
	}

	for i, rs := range s.reads {
		rs.read.TemplateStart = mtp[rs.read.TemplateStart]
		rs.read.TemplateEnd = mtp[rs.read.TemplateEnd]
		if rs.active && !keep[i] {
			rs.scorer, rs.active = nil, false
		}
	}

	return nil
}
