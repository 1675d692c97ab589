// SPDX-License-Identifier: MIT

package ccs

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/quiver/model"
	"github.com/katalvlaran/quiver/poa"
	"github.com/katalvlaran/quiver/refine"
	"github.com/katalvlaran/quiver/sequence"
)

// Configuration keys.
const (
	KeyChemistry          = "model.chemistry"
	KeyMatch              = "model.match"
	KeyMismatch           = "model.mismatch"
	KeyMismatchS          = "model.mismatch_s"
	KeyBranch             = "model.branch"
	KeyBranchS            = "model.branch_s"
	KeyDeletionN          = "model.deletion_n"
	KeyDeletionWithTag    = "model.deletion_with_tag"
	KeyDeletionWithTagS   = "model.deletion_with_tag_s"
	KeyNce                = "model.nce"
	KeyNceS               = "model.nce_s"
	KeyMerge              = "model.merge"
	KeyMergeS             = "model.merge_s"
	KeyMoves              = "model.moves"
	KeyDiagonalOffset     = "model.banding.offset"
	KeyHalfWidth          = "model.banding.half_width"
	KeyFastScoreThreshold = "model.fast_score_threshold"
	KeyAddThreshold       = "model.add_threshold"
	KeyPOAMode            = "poa.mode"
	KeyPOAMatch           = "poa.match"
	KeyPOAMismatch        = "poa.mismatch"
	KeyPOAInsert          = "poa.insert"
	KeyPOADelete          = "poa.delete"
	KeyMaxIterations      = "refine.max_iterations"
	KeySeparation         = "refine.separation"
	KeyNeighborhood       = "refine.neighborhood"
	KeyMinReads           = "ccs.min_reads"
	KeyDefaultQV          = "ccs.default_qv"
	KeyScorerWorkers      = "ccs.scorer_workers"
)

// Settings is everything a Caller needs.
type Settings struct {
	Chemistry          string
	Params             model.QvParams
	Moves              model.MoveSet
	Banding            model.Banding
	FastScoreThreshold float64
	AddThreshold       float64

	POAMode   poa.Mode
	POAParams poa.Params

	MaxIterations int
	Separation    int
	Neighborhood  int

	MinReads      int
	ScorerWorkers int

	// DefaultQV stands in for every quality channel of reads without QUAL.
	DefaultQV int
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyChemistry, model.FallbackChemistry)
	v.SetDefault(KeyMatch, -1.41882)
	v.SetDefault(KeyMismatch, -6.58979)
	v.SetDefault(KeyMismatchS, -0.366356)
	v.SetDefault(KeyBranch, -1.22393)
	v.SetDefault(KeyBranchS, -0.30647)
	v.SetDefault(KeyDeletionN, -3.26889)
	v.SetDefault(KeyDeletionWithTag, -0.899265)
	v.SetDefault(KeyDeletionWithTagS, 0.0403404)
	v.SetDefault(KeyNce, -0.377961)
	v.SetDefault(KeyNceS, -0.328803)
	v.SetDefault(KeyMerge, -2.65419)
	v.SetDefault(KeyMergeS, -0.28016)
	v.SetDefault(KeyMoves, "all")
	v.SetDefault(KeyDiagonalOffset, model.DefaultDiagonalOffset)
	v.SetDefault(KeyHalfWidth, model.DefaultHalfWidth)
	v.SetDefault(KeyFastScoreThreshold, -12.5)
	v.SetDefault(KeyAddThreshold, model.DefaultAddThreshold)
	v.SetDefault(KeyPOAMode, poa.Global.String())
	v.SetDefault(KeyPOAMatch, poa.DefaultMatch)
	v.SetDefault(KeyPOAMismatch, poa.DefaultMismatch)
	v.SetDefault(KeyPOAInsert, poa.DefaultInsert)
	v.SetDefault(KeyPOADelete, poa.DefaultDelete)
	v.SetDefault(KeyMaxIterations, refine.DefaultMaxIterations)
	v.SetDefault(KeySeparation, refine.DefaultSeparation)
	v.SetDefault(KeyNeighborhood, refine.DefaultNeighborhood)
	v.SetDefault(KeyMinReads, 3)
	v.SetDefault(KeyDefaultQV, 20)
	v.SetDefault(KeyScorerWorkers, 1)

	v.SetEnvPrefix("ccs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// DefaultSettings returns the built-in settings, after CCS_* environment
// overrides.
func DefaultSettings() (Settings, error) {
	return settingsFrom(newViper())
}

// LoadSettings reads path (YAML, JSON, TOML or anything else viper knows by
// extension) over the defaults.
func LoadSettings(path string) (Settings, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Settings{}, fmt.Errorf("ccs: settings %s: %w", path, err)
	}

	return settingsFrom(v)
}

func settingsFrom(v *viper.Viper) (Settings, error) {
	p, err := model.NewQvParams(v.GetString(KeyChemistry), "quiver",
		v.GetFloat64(KeyMatch), v.GetFloat64(KeyMismatch), v.GetFloat64(KeyMismatchS),
		v.GetFloat64(KeyBranch), v.GetFloat64(KeyBranchS),
		v.GetFloat64(KeyDeletionN), v.GetFloat64(KeyDeletionWithTag), v.GetFloat64(KeyDeletionWithTagS),
		v.GetFloat64(KeyNce), v.GetFloat64(KeyNceS),
		v.GetFloat64(KeyMerge))
	if err != nil {
		return Settings{}, fmt.Errorf("ccs: settings: %w", err)
	}
	for b := 0; b < sequence.NumBases; b++ {
		p.MergeS[b] = v.GetFloat64(KeyMergeS)
	}
	moves, err := model.ParseMoveSet(v.GetString(KeyMoves))
	if err != nil {
		return Settings{}, fmt.Errorf("ccs: settings: %w", err)
	}
	mode, err := poa.ParseMode(v.GetString(KeyPOAMode))
	if err != nil {
		return Settings{}, fmt.Errorf("ccs: settings: %w: %v", model.ErrConfiguration, err)
	}

	s := Settings{
		Chemistry:          v.GetString(KeyChemistry),
		Params:             p,
		Moves:              moves,
		Banding:            model.Banding{DiagonalOffset: v.GetInt(KeyDiagonalOffset), HalfWidth: v.GetInt(KeyHalfWidth)},
		FastScoreThreshold: v.GetFloat64(KeyFastScoreThreshold),
		AddThreshold:       v.GetFloat64(KeyAddThreshold),
		POAMode:            mode,
		POAParams: poa.Params{
			Match:    v.GetFloat64(KeyPOAMatch),
			Mismatch: v.GetFloat64(KeyPOAMismatch),
			Insert:   v.GetFloat64(KeyPOAInsert),
			Delete:   v.GetFloat64(KeyPOADelete),
		},
		MaxIterations: v.GetInt(KeyMaxIterations),
		Separation:    v.GetInt(KeySeparation),
		Neighborhood:  v.GetInt(KeyNeighborhood),
		MinReads:      v.GetInt(KeyMinReads),
		ScorerWorkers: v.GetInt(KeyScorerWorkers),
		DefaultQV:     v.GetInt(KeyDefaultQV),
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks every field a Caller would otherwise panic or fail on.
func (s Settings) Validate() error {
	if err := s.Banding.Validate(); err != nil {
		return fmt.Errorf("ccs: settings: %w", err)
	}
	if err := s.POAParams.Validate(); err != nil {
		return fmt.Errorf("ccs: settings: %w: %v", model.ErrConfiguration, err)
	}
	switch {
	case !(s.AddThreshold > 0 && s.AddThreshold <= 1):
		return fmt.Errorf("ccs: settings: %w: add_threshold %g", model.ErrConfiguration, s.AddThreshold)
	case s.MaxIterations < 1:
		return fmt.Errorf("ccs: settings: %w: max_iterations %d", model.ErrConfiguration, s.MaxIterations)
	case s.Separation < 0:
		return fmt.Errorf("ccs: settings: %w: separation %d", model.ErrConfiguration, s.Separation)
	case s.Neighborhood < 1:
		return fmt.Errorf("ccs: settings: %w: neighborhood %d", model.ErrConfiguration, s.Neighborhood)
	case s.MinReads < 1:
		return fmt.Errorf("ccs: settings: %w: min_reads %d", model.ErrConfiguration, s.MinReads)
	case s.ScorerWorkers < 1:
		return fmt.Errorf("ccs: settings: %w: scorer_workers %d", model.ErrConfiguration, s.ScorerWorkers)
	case s.DefaultQV < 0 || s.DefaultQV > maxQV:
		return fmt.Errorf("ccs: settings: %w: default_qv %d", model.ErrConfiguration, s.DefaultQV)
	}

	return nil
}

// Table builds the chemistry table: the settings serve as the fallback and,
// when Chemistry is named, under that name too.
func (s Settings) Table() (*model.ConfigTable, error) {
	cfg, err := model.NewConfig(s.Params, s.Moves, s.Banding, s.FastScoreThreshold)
	if err != nil {
		return nil, fmt.Errorf("ccs: %w", err)
	}
	cfg.AddThreshold = s.AddThreshold
	t := model.NewConfigTable()
	t.InsertDefault(cfg)
	if s.Chemistry != "" && s.Chemistry != model.FallbackChemistry {
		if _, err := t.InsertAs(s.Chemistry, cfg); err != nil {
			return nil, fmt.Errorf("ccs: %w", err)
		}
	}

	return t, nil
}
