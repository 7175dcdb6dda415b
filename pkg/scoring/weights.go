// Package scoring turns a candidate text plus its analysis into a numeric
// score with a labeled breakdown, using a clamped 12-factor weight vector
// that can come from defaults, the caller, or shallow history statistics.
package scoring

import (
	"fmt"
	"strings"
)

// Weights are the tunable coefficients for the 12 scoring factors. Bonus
// factors are non-negative, penalty factors non-positive; Clamped enforces
// each factor's range.
type Weights struct {
	OutputFormat      int `json:"output_format"`
	Requirements      int `json:"requirements"`
	Deliverables      int `json:"deliverables"`
	StrongConstraints int `json:"strong_constraints"`
	SuccessCriteria   int `json:"success_criteria"`
	ScopeBounds       int `json:"scope_bounds"`
	Questions         int `json:"questions"`
	Examples          int `json:"examples"`
	Hedging           int `json:"hedging"`
	Contradiction     int `json:"contradiction"`
	Placeholder       int `json:"placeholder"`
	Length            int `json:"length"`
}

// Default returns the built-in weight vector.
func Default() Weights {
	return Weights{
		OutputFormat:      8,
		Requirements:      6,
		Deliverables:      6,
		StrongConstraints: 6,
		SuccessCriteria:   5,
		ScopeBounds:       5,
		Questions:         4,
		Examples:          3,
		Hedging:           -4,
		Contradiction:     -6,
		Placeholder:       -3,
		Length:            -5,
	}
}

type weightRange struct{ min, max int }

var ranges = map[string]weightRange{
	"output_format":      {0, 12},
	"requirements":       {0, 10},
	"deliverables":       {0, 10},
	"strong_constraints": {0, 10},
	"success_criteria":   {0, 8},
	"scope_bounds":       {0, 8},
	"questions":          {0, 8},
	"examples":           {0, 6},
	"hedging":            {-10, 0},
	"contradiction":      {-12, 0},
	"placeholder":        {-8, 0},
	"length":             {-10, 0},
}

func clampTo(v int, name string) int {
	r := ranges[name]
	if v < r.min {
		return r.min
	}
	if v > r.max {
		return r.max
	}
	return v
}

// Clamped returns the vector with every factor forced into its range. It is
// idempotent: w.Clamped().Clamped() == w.Clamped().
func (w Weights) Clamped() Weights {
	return Weights{
		OutputFormat:      clampTo(w.OutputFormat, "output_format"),
		Requirements:      clampTo(w.Requirements, "requirements"),
		Deliverables:      clampTo(w.Deliverables, "deliverables"),
		StrongConstraints: clampTo(w.StrongConstraints, "strong_constraints"),
		SuccessCriteria:   clampTo(w.SuccessCriteria, "success_criteria"),
		ScopeBounds:       clampTo(w.ScopeBounds, "scope_bounds"),
		Questions:         clampTo(w.Questions, "questions"),
		Examples:          clampTo(w.Examples, "examples"),
		Hedging:           clampTo(w.Hedging, "hedging"),
		Contradiction:     clampTo(w.Contradiction, "contradiction"),
		Placeholder:       clampTo(w.Placeholder, "placeholder"),
		Length:            clampTo(w.Length, "length"),
	}
}

// Signature is a stable string form of the vector, used in cache keys.
func (w Weights) Signature() string {
	parts := []int{
		w.OutputFormat, w.Requirements, w.Deliverables, w.StrongConstraints,
		w.SuccessCriteria, w.ScopeBounds, w.Questions, w.Examples,
		w.Hedging, w.Contradiction, w.Placeholder, w.Length,
	}
	strs := make([]string, len(parts))
	for i, p := range parts {
		strs[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(strs, "|")
}
