package optimizer

import (
	"strings"

	"promptforge/pkg/analysis"
	"promptforge/pkg/gaps"
	"promptforge/pkg/policy"
	"promptforge/pkg/scoring"
)

// StructuralDelta compares a candidate to the baseline on structure rather
// than score: which categories of completeness were actually gained, and how
// much the text grew in the process.
type StructuralDelta struct {
	Gain        int
	GrowthRatio float64
	Meaningful  bool
}

// semanticFocus counts intent-vocabulary words present in text; the semantic
// gain category uses the difference between candidate and baseline.
func semanticFocus(text string, intent gaps.Intent) int {
	lower := strings.ToLower(text)
	n := 0
	for _, word := range scoring.VocabFor(intent) {
		if strings.Contains(lower, word) {
			n++
		}
	}
	return n
}

// computeDelta sums category-specific structural gains of candidate over
// baseline. Each category counts once; contradiction repair, output-format
// gain, and a successful semantic rewrite weigh double.
func computeDelta(baseText, candText string, base, cand analysis.Analysis,
	p gaps.Profile, pol policy.DomainPolicy, minGain int) StructuralDelta {

	var d StructuralDelta

	if cand.Has(analysis.SectionOutputFormat) && !base.Has(analysis.SectionOutputFormat) {
		d.Gain += 2
	}
	if p.Requirements && cand.Has(analysis.SectionRequirements) && !base.Has(analysis.SectionRequirements) {
		d.Gain++
	}
	if cand.EnumDeliverable && !base.EnumDeliverable {
		d.Gain++
	}
	ambiguous := base.AmbiguityCount >= 1 || p.Underspecified
	if ambiguous && cand.Has(analysis.SectionSuccessCriteria) && !base.Has(analysis.SectionSuccessCriteria) {
		d.Gain++
	}
	if ambiguous && p.Intent.AllowsQuestions() &&
		cand.Has(analysis.SectionQuestions) && !base.Has(analysis.SectionQuestions) {
		d.Gain++
	}
	if base.ScopeLeak && cand.ScopeBounds && !base.ScopeBounds {
		d.Gain++
	}
	if len(cand.Contradictions) < len(base.Contradictions) {
		d.Gain += 2
	}
	if cand.AmbiguityCount < base.AmbiguityCount {
		d.Gain++
	}
	if len(pol.MissingKeywords(baseText)) > 0 && len(pol.MissingKeywords(candText)) == 0 {
		d.Gain++
	}
	if len(pol.MissingSections(cand)) < len(pol.MissingSections(base)) {
		d.Gain++
	}
	if p.SemanticExpansion && cand.SectionCount() == 0 &&
		semanticFocus(candText, p.Intent)-semanticFocus(baseText, p.Intent) >= 2 {
		d.Gain += 2
	}

	baseLen := len(baseText)
	if baseLen < 1 {
		baseLen = 1
	}
	d.GrowthRatio = float64(len(candText)) / float64(baseLen)
	d.Meaningful = d.Gain >= minGain
	return d
}

// promote applies the anti-regression gate: the candidate must win on score,
// the structural delta must be meaningful, and bulk growth without matching
// structural gain is rejected.
func promote(candScore, baseScore int, d StructuralDelta, minScoreGain, minStructuralGain int, growthCutoff float64) bool {
	if candScore-baseScore < minScoreGain {
		return false
	}
	if !d.Meaningful {
		return false
	}
	if d.GrowthRatio > growthCutoff && d.Gain < minStructuralGain {
		return false
	}
	return true
}
