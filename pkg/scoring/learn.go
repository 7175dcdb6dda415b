package scoring

import (
	"promptforge/pkg/analysis"
)

// Learning bounds: how many history prompts feed the statistics and how far
// a single factor may drift from its default.
const (
	LearnMinSamples = 5
	LearnMaxSamples = 50
	maxBonusNudge   = 6
	maxPenaltyNudge = 8
)

// Learn derives a weight vector from recent history prompts. It measures,
// over at most the newest LearnMaxSamples prompts, how often structure was
// missing, and nudges the corresponding defaults proportionally before
// re-clamping. Fewer than LearnMinSamples prompts yields plain defaults.
func Learn(an *analysis.Analyzer, prompts []string) Weights {
	w := Default()
	if len(prompts) < LearnMinSamples {
		return w
	}
	if len(prompts) > LearnMaxSamples {
		prompts = prompts[:LearnMaxSamples]
	}

	var missingOutput, missingDeliv, missingScope, long, contradictions int
	for _, p := range prompts {
		a := an.Analyze(p)
		if !a.Has(analysis.SectionOutputFormat) {
			missingOutput++
		}
		if !a.EnumDeliverable {
			missingDeliv++
		}
		if a.ScopeLeak && !a.ScopeBounds {
			missingScope++
		}
		if a.TokenEstimate > longTokenThreshold {
			long++
		}
		contradictions += len(a.Contradictions)
	}

	n := len(prompts)
	w.OutputFormat += nudge(missingOutput, n, maxBonusNudge)
	w.Deliverables += nudge(missingDeliv, n, 5)
	w.ScopeBounds += nudge(missingScope, n, 5)
	w.Length -= nudge(long, n, 5)
	if contradictions > 0 {
		pen := contradictions
		if pen > maxPenaltyNudge-3 {
			pen = maxPenaltyNudge - 3
		}
		w.Contradiction -= pen
	}

	return w.Clamped()
}

// nudge scales a fraction hit/total into [0,limit].
func nudge(hit, total, limit int) int {
	if total == 0 {
		return 0
	}
	v := (hit*limit + total/2) / total
	if v > limit {
		return limit
	}
	return v
}
