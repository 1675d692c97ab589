// SPDX-License-Identifier: MIT

package ccs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/mutation"
	"github.com/katalvlaran/quiver/poa"
	"github.com/katalvlaran/quiver/refine"
	"github.com/katalvlaran/quiver/sequence"
)

// Result is the consensus of one group.
type Result struct {
	ID        string
	Sequence  string
	QVs       []int
	Draft     string
	NumReads  int
	NumActive int
	Refine    refine.Result
}

// Options configures a Caller.
type Options struct {
	log logrus.FieldLogger
}

// Option mutates Options.
type Option func(*Options)

// WithLogger routes per-group logging to l. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("ccs: WithLogger(nil)")
	}

	return func(o *Options) { o.log = l }
}

// Caller computes consensus reads under fixed Settings. It is safe for
// concurrent use.
type Caller struct {
	settings Settings
	table    *model.ConfigTable
	log      logrus.FieldLogger
}

// NewCaller validates s and builds its chemistry table.
func NewCaller(s Settings, opts ...Option) (*Caller, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	table, err := s.Table()
	if err != nil {
		return nil, err
	}
	o := Options{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Caller{settings: s, table: table, log: o.log}, nil
}

// Settings returns the settings c was built with.
func (c *Caller) Settings() Settings { return c.settings }

// Call computes the consensus of g. Groups with too few reads, before or
// after the band check, fail with ErrTooFewReads.
func (c *Caller) Call(ctx context.Context, g Group) (Result, error) {
	start := time.Now()
	res, err := c.call(ctx, g)
	groupSeconds.Observe(time.Since(start).Seconds())
	switch {
	case err == nil:
		groupsCalled.WithLabelValues("ok").Inc()
	case errors.Is(err, ErrTooFewReads):
		groupsCalled.WithLabelValues("skipped").Inc()
	default:
		groupsCalled.WithLabelValues("error").Inc()
	}

	return res, err
}

func (c *Caller) call(ctx context.Context, g Group) (Result, error) {
	log := c.log.WithField("group", g.ID)
	if len(g.Reads) < c.settings.MinReads {
		return Result{}, fmt.Errorf("%w: group %s has %d, need %d", ErrTooFewReads, g.ID, len(g.Reads), c.settings.MinReads)
	}

	seqs := make([]string, len(g.Reads))
	for i, r := range g.Reads {
		seqs[i] = r.Seq
	}
	draft, err := poa.FindConsensus(seqs, poa.WithMode(c.settings.POAMode), poa.WithParams(c.settings.POAParams))
	if err != nil {
		return Result{}, fmt.Errorf("ccs: group %s: draft: %w", g.ID, err)
	}
	log.WithFields(logrus.Fields{"length": len(draft.Sequence), "variants": len(draft.Variants)}).Debug("draft")

	tpl, err := draft.Template()
	if err != nil {
		return Result{}, fmt.Errorf("ccs: group %s: draft: %w", g.ID, err)
	}
	mrs, err := mutation.NewMultiReadScorer(c.table, tpl, mutation.WithWorkers(c.settings.ScorerWorkers))
	if err != nil {
		return Result{}, fmt.Errorf("ccs: group %s: %w", g.ID, err)
	}
	for _, r := range g.Reads {
		mr, err := c.mapped(r, len(tpl))
		if err != nil {
			return Result{}, fmt.Errorf("ccs: group %s: read %s: %w", g.ID, r.Name, err)
		}
		ok, err := mrs.AddRead(mr)
		if err != nil {
			return Result{}, fmt.Errorf("ccs: group %s: read %s: %w", g.ID, r.Name, err)
		}
		if !ok {
			readsInactive.Inc()
			log.WithField("read", r.Name).Debug("read inactive")
		}
	}
	if n := mrs.NumActiveReads(); n < c.settings.MinReads {
		return Result{}, fmt.Errorf("%w: group %s has %d active, need %d", ErrTooFewReads, g.ID, n, c.settings.MinReads)
	}

	ref, err := refine.Refine(ctx, mrs,
		refine.WithMaxIterations(c.settings.MaxIterations),
		refine.WithSeparation(c.settings.Separation),
		refine.WithNeighborhood(c.settings.Neighborhood),
		refine.WithLogger(log),
	)
	if err != nil {
		return Result{}, fmt.Errorf("ccs: group %s: %w", g.ID, err)
	}
	qvs, err := refine.ConsensusQVs(mrs)
	if err != nil {
		return Result{}, fmt.Errorf("ccs: group %s: %w", g.ID, err)
	}
	if !ref.Converged {
		log.WithField("rounds", ref.Rounds).Warn("refinement did not converge")
	}

	return Result{
		ID:        g.ID,
		Sequence:  ref.Template.String(),
		QVs:       qvs,
		Draft:     draft.Sequence,
		NumReads:  len(g.Reads),
		NumActive: mrs.NumActiveReads(),
		Refine:    ref,
	}, nil
}

// mapped turns r into a full-span MappedRead. Reverse reads are flipped back
// to their sequenced orientation. Phred qualities, or DefaultQV when absent,
// feed all four quality channels.
func (c *Caller) mapped(r Read, tplLen int) (mutation.MappedRead, error) {
	seq, qual, strand := r.Seq, r.Qual, mutation.Forward
	if r.Reverse {
		syms, err := sequence.ParseSymbols(seq, true)
		if err != nil {
			return mutation.MappedRead{}, err
		}
		seq = syms.ReverseComplement().String()
		qual = reversed(qual)
		strand = mutation.Reverse
	}
	if qual == nil {
		qual = make([]byte, len(seq))
		for i := range qual {
			qual[i] = byte(c.settings.DefaultQV)
		}
	}
	qv := sequence.VectorFromBytes(qual)
	f, err := sequence.NewQvFeatures(seq, sequence.QvChannels{InsQv: qv, SubsQv: qv, DelQv: qv, MergeQv: qv})
	if err != nil {
		return mutation.MappedRead{}, err
	}

	return mutation.MappedRead{
		Name:          r.Name,
		Chemistry:     c.settings.Chemistry,
		Features:      f,
		Strand:        strand,
		TemplateStart: 0,
		TemplateEnd:   tplLen,
	}, nil
}

func reversed(q []byte) []byte {
	if q == nil {
		return nil
	}
	out := make([]byte, len(q))
	for i, b := range q {
		out[len(q)-1-i] = b
	}

	return out
}
