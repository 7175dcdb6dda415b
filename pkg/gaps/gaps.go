// Package gaps decides which structural elements are missing from an input
// by combining feature analysis, an intent classifier, and the domain policy.
package gaps

import (
	"strings"

	"promptforge/pkg/analysis"
	"promptforge/pkg/policy"
)

// Profile is the boolean gap map for one input plus the context facts the
// planner and scorer need downstream.
type Profile struct {
	Intent         Intent
	Scaffolding    bool
	Underspecified bool

	Contradictions    bool
	SentenceRewrite   bool
	SemanticExpansion bool
	Canonicalize      bool
	Requirements      bool
	Deliverables      bool
	OutputFormat      bool
	SuccessCriteria   bool
	ScopeBounds       bool
	Questions         bool
	DomainPack        bool
	QualityGate       bool
	Dedupe            bool
}

// Any reports whether at least one gap is open.
func (p Profile) Any() bool {
	return p.Contradictions || p.SentenceRewrite || p.SemanticExpansion ||
		p.Canonicalize || p.Requirements || p.Deliverables || p.OutputFormat ||
		p.SuccessCriteria || p.ScopeBounds || p.Questions || p.DomainPack ||
		p.QualityGate || p.Dedupe
}

// Detect builds the gap profile for input under the given scenario/policy.
// an supplies the shared regex cache; a must be the analysis of input.
func Detect(an *analysis.Analyzer, input string, a analysis.Analysis, scenario policy.Scenario, pol policy.DomainPolicy) Profile {
	p := Profile{Intent: Classify(input)}

	p.Scaffolding = a.SectionCount() > 0 || a.OutputTemplate || scenario.ScaffoldMandatory()

	p.Underspecified = underspecified(input, a)

	p.Contradictions = len(a.Contradictions) > 0
	p.SentenceRewrite = a.AmbiguityCount > 0
	p.SemanticExpansion = !p.Scaffolding && a.SectionCount() == 0
	p.Canonicalize = p.Scaffolding && a.SectionCount() >= 2 && !canonicalOrder(a.SectionOrder)

	if p.Scaffolding {
		p.Requirements = p.Intent == IntentSoftwareBuild && !a.Has(analysis.SectionRequirements)
		p.Deliverables = !a.EnumDeliverable && !a.Has(analysis.SectionDeliverables)
		p.OutputFormat = !a.Has(analysis.SectionOutputFormat) || genericContractFor(an, input, p.Intent)
		p.SuccessCriteria = !a.Has(analysis.SectionSuccessCriteria) &&
			(a.AmbiguityCount >= 1 || p.Underspecified)
		p.ScopeBounds = a.ScopeLeak && !a.ScopeBounds
		p.Questions = p.Intent.AllowsQuestions() &&
			(a.AmbiguityCount >= 2 || a.VagueGoal || p.Underspecified) &&
			!a.Has(analysis.SectionQuestions)
		p.QualityGate = (a.AmbiguityCount >= 1 || p.Underspecified) &&
			len(pol.MissingSections(a)) > 0
	}

	p.DomainPack = len(pol.Supplemental) > 0 &&
		(len(pol.MissingKeywords(input)) > 0 || supplementalMissing(a, pol))

	p.Dedupe = hasDuplicateLines(input)

	return p
}

// underspecified: short in some dimension, few known sections, and missing
// at least one of the accountability sections.
func underspecified(input string, a analysis.Analysis) bool {
	short := len(input) <= 220 || a.TokenEstimate <= 120 || len(a.GoalLine) <= 80
	if !short || a.SectionCount() > 3 {
		return false
	}
	return !a.Has(analysis.SectionConstraints) ||
		!a.Has(analysis.SectionSuccessCriteria) ||
		!a.Has(analysis.SectionQuestions)
}

// canonicalOrder reports whether the observed section sequence already
// follows the canonical ordering.
func canonicalOrder(order []analysis.SectionKind) bool {
	rank := map[analysis.SectionKind]int{}
	for i, k := range analysis.Kinds() {
		rank[k] = i
	}
	for i := 1; i < len(order); i++ {
		if rank[order[i-1]] > rank[order[i]] {
			return false
		}
	}
	return true
}

// genericContractFor reports whether an existing output contract is too
// generic for the inferred intent. General prompts tolerate loose contracts.
func genericContractFor(an *analysis.Analyzer, input string, intent Intent) bool {
	if intent == IntentGeneral {
		return false
	}
	return an.GenericContract(input)
}

func supplementalMissing(a analysis.Analysis, pol policy.DomainPolicy) bool {
	for _, s := range pol.Supplemental {
		if !a.Has(s.Kind) {
			return true
		}
	}
	return false
}

// hasDuplicateLines reports duplicate non-blank lines under case/whitespace
// normalization, or a run of three or more blank lines.
func hasDuplicateLines(text string) bool {
	seen := make(map[string]bool)
	blanks := 0
	for _, line := range strings.Split(text, "\n") {
		norm := strings.ToLower(strings.Join(strings.Fields(line), " "))
		if norm == "" {
			blanks++
			if blanks >= 3 {
				return true
			}
			continue
		}
		blanks = 0
		if seen[norm] {
			return true
		}
		seen[norm] = true
	}
	return false
}
