// Package config holds the engine's tunable thresholds. The anti-regression
// constants are empirical defaults, not architectural truths, so they live
// here where a caller (or a test corpus run) can adjust them.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Thresholds controls candidate selection and resource caps.
type Thresholds struct {
	// MinScoreGain is the minimum score advantage a candidate needs over the
	// baseline before promotion is considered.
	MinScoreGain int `json:"min_score_gain"`
	// MinStructuralGain is the structural-delta gain below which a win is
	// not considered meaningful.
	MinStructuralGain int `json:"min_structural_gain"`
	// GrowthRatioCutoff rejects candidates that grew the text beyond this
	// ratio without a meaningful structural gain.
	GrowthRatioCutoff float64 `json:"growth_ratio_cutoff"`
	// MaxCandidates caps generated candidates, baseline included.
	MaxCandidates int `json:"max_candidates"`
	// CacheCapacity bounds the optimizer's result cache (floor of 4).
	CacheCapacity int `json:"cache_capacity"`
}

// Default returns the shipped thresholds.
func Default() Thresholds {
	return Thresholds{
		MinScoreGain:      1,
		MinStructuralGain: 2,
		GrowthRatioCutoff: 1.8,
		MaxCandidates:     16,
		CacheCapacity:     32,
	}
}

// Normalized fills zero values with defaults and enforces floors.
func (t Thresholds) Normalized() Thresholds {
	d := Default()
	if t.MinScoreGain <= 0 {
		t.MinScoreGain = d.MinScoreGain
	}
	if t.MinStructuralGain <= 0 {
		t.MinStructuralGain = d.MinStructuralGain
	}
	if t.GrowthRatioCutoff <= 1 {
		t.GrowthRatioCutoff = d.GrowthRatioCutoff
	}
	if t.MaxCandidates <= 1 {
		t.MaxCandidates = d.MaxCandidates
	}
	if t.CacheCapacity < 4 {
		t.CacheCapacity = 4
	}
	return t
}

// Load reads thresholds from a JSON file, returning defaults when the file
// does not exist.
func Load(path string) (Thresholds, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Thresholds{}, fmt.Errorf("read thresholds: %w", err)
	}
	var t Thresholds
	if err := json.Unmarshal(data, &t); err != nil {
		return Thresholds{}, fmt.Errorf("parse thresholds %s: %w", path, err)
	}
	return t.Normalized(), nil
}

// Save writes thresholds as indented JSON, creating parent directories.
func Save(path string, t Thresholds) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encode thresholds: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write thresholds: %w", err)
	}
	return nil
}
