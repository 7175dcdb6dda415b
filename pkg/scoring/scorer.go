package scoring

import (
	"fmt"
	"strings"

	"promptforge/pkg/analysis"
	"promptforge/pkg/gaps"
	"promptforge/pkg/policy"
)

// Breakdown keys. Every contribution is recorded under one of these so a
// score can always be explained.
const (
	FactorOutputFormat    = "output_format"
	FactorRequirements    = "requirements"
	FactorDeliverables    = "deliverables"
	FactorStrongConstr    = "strong_constraints"
	FactorSuccessCriteria = "success_criteria"
	FactorScopeBounds     = "scope_bounds"
	FactorQuestions       = "clarifying_questions"
	FactorExamples        = "examples"
	FactorHedging         = "hedging"
	FactorContradictions  = "contradictions"
	FactorPlaceholders    = "unresolved_placeholders"
	FactorTokenLength     = "token_length"
	FactorJSONContract    = "json_contract"
	FactorDomainPack      = "domain_pack"
	FactorQualityGate     = "quality_gate"
	FactorIntentContract  = "intent_contract"
	FactorSemanticDrift   = "semantic_sections"
	FactorSemanticFocus   = "semantic_specificity"
	FactorSemanticNoise   = "semantic_questions"
)

// Fixed contributions that are not weight factors.
const (
	domainPackBonus      = 3
	qualityGateBonus     = 3
	intentContractPen    = -4
	jsonContractPen      = -6
	semanticSectionPen   = -3
	semanticQuestionsPen = -2
	semanticFocusCap     = 6
	longTokenThreshold   = 900
)

// Input is the scoring context for one candidate. Ambiguity and
// underspecification describe the original input, so structural bonuses do
// not vanish just because a rewrite removed the hedges that earned them.
type Input struct {
	Weights        Weights
	Scenario       policy.Scenario
	Policy         policy.DomainPolicy
	Intent         gaps.Intent
	Semantic       bool
	Underspecified bool
	AmbiguousInput bool
}

// Result pairs a score with its explanation.
type Result struct {
	Score     int
	Breakdown map[string]int
	Warnings  []string
}

// Score evaluates text given its analysis. Structured mode rewards headed
// completeness; semantic mode rewards a focused heading-free paragraph.
func Score(an *analysis.Analyzer, text string, a analysis.Analysis, in Input) Result {
	r := Result{Breakdown: make(map[string]int)}
	w := in.Weights.Clamped()

	add := func(key string, v int) {
		if v == 0 {
			return
		}
		r.Breakdown[key] += v
		r.Score += v
	}

	if in.Semantic {
		scoreSemantic(text, a, in, add)
	} else {
		scoreStructured(an, text, a, in, w, add)
	}

	// Factors common to both modes.
	if a.AmbiguityCount > 0 {
		add(FactorHedging, w.Hedging)
	}
	if n := a.ExampleCount; n > 0 {
		if n > 2 {
			n = 2
		}
		add(FactorExamples, n*w.Examples)
	}
	if n := len(a.Contradictions); n > 0 {
		add(FactorContradictions, n*w.Contradiction)
		for _, c := range a.Contradictions {
			r.Warnings = append(r.Warnings, "contradiction remains: "+c)
		}
	}
	if a.Placeholders > 0 {
		add(FactorPlaceholders, a.Placeholders*w.Placeholder)
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("%d unresolved placeholder(s) such as {name} remain", a.Placeholders))
	}
	if a.TokenEstimate > longTokenThreshold {
		scale := 1 + (a.TokenEstimate-longTokenThreshold)/300
		if scale > 4 {
			scale = 4
		}
		add(FactorTokenLength, scale*w.Length)
		r.Warnings = append(r.Warnings,
			fmt.Sprintf("token estimate %d exceeds %d; the prompt may be too long", a.TokenEstimate, longTokenThreshold))
	}
	if in.Scenario == policy.ScenarioJSONAPI && !strings.Contains(strings.ToLower(text), "json") {
		add(FactorJSONContract, jsonContractPen)
	}
	if a.ScopeLeak && !a.ScopeBounds {
		r.Warnings = append(r.Warnings, "scope-leak terms present without explicit scope bounds")
	}

	return r
}

func scoreStructured(an *analysis.Analyzer, text string, a analysis.Analysis, in Input, w Weights, add func(string, int)) {
	if a.Has(analysis.SectionOutputFormat) {
		add(FactorOutputFormat, w.OutputFormat)
	} else {
		add(FactorOutputFormat, -(w.OutputFormat / 2))
	}

	if a.EnumDeliverable {
		add(FactorDeliverables, w.Deliverables)
	}
	if a.StrongConstr {
		add(FactorStrongConstr, w.StrongConstraints)
	}
	if (in.AmbiguousInput || in.Underspecified) && a.Has(analysis.SectionSuccessCriteria) {
		add(FactorSuccessCriteria, w.SuccessCriteria)
	}
	if a.ScopeLeak && a.ScopeBounds {
		add(FactorScopeBounds, w.ScopeBounds)
	}
	if (in.AmbiguousInput || in.Underspecified) && in.Intent.AllowsQuestions() &&
		a.Has(analysis.SectionQuestions) {
		add(FactorQuestions, w.Questions)
	}

	if in.Intent == gaps.IntentSoftwareBuild {
		switch {
		case a.Has(analysis.SectionRequirements) && in.Underspecified:
			add(FactorRequirements, w.Requirements)
		case a.Has(analysis.SectionRequirements):
			add(FactorRequirements, w.Requirements/2)
		case in.Underspecified:
			add(FactorRequirements, -(w.Requirements / 2))
		}
	}

	if in.Intent != gaps.IntentGeneral && an.GenericContract(text) {
		add(FactorIntentContract, intentContractPen)
	}

	if len(in.Policy.RequiredKeywords) > 0 && len(in.Policy.MissingKeywords(text)) == 0 {
		add(FactorDomainPack, domainPackBonus)
	}
	if len(in.Policy.RequiredSections) > 0 && len(in.Policy.MissingSections(a)) == 0 {
		add(FactorQualityGate, qualityGateBonus)
	}
}

// VocabFor is the intent-specific specificity vocabulary used by semantic
// scoring and by the selector's semantic gain category.
func VocabFor(intent gaps.Intent) []string {
	switch intent {
	case gaps.IntentCreativeStory:
		return []string{"character", "setting", "tension", "scene", "voice", "paragraph", "fiction"}
	case gaps.IntentGameDesign:
		return []string{"rules", "turn", "win", "component", "setup", "balance"}
	case gaps.IntentSoftwareBuild:
		return []string{"behavior", "change", "verify", "test", "file", "component"}
	case gaps.IntentGeneral:
	}
	return []string{"answer", "assumption", "reasoning", "step", "direct"}
}

func scoreSemantic(text string, a analysis.Analysis, in Input, add func(string, int)) {
	if n := a.SectionCount(); n > 0 {
		add(FactorSemanticDrift, n*semanticSectionPen)
	}

	lower := strings.ToLower(text)
	focus := 0
	for _, word := range VocabFor(in.Intent) {
		if strings.Contains(lower, word) {
			focus += 2
		}
	}
	if focus > semanticFocusCap {
		focus = semanticFocusCap
	}
	add(FactorSemanticFocus, focus)

	if a.Has(analysis.SectionQuestions) {
		add(FactorSemanticNoise, semanticQuestionsPen)
	}
}
