package optimizer

import (
	"strings"

	"promptforge/pkg/gaps"
	"promptforge/pkg/transform"
)

// plan is one transform combination to try as a candidate.
type plan struct {
	title string
	kinds []transform.Kind
}

// activeKinds maps the gap profile onto transform kinds in fixed priority
// order.
func activeKinds(p gaps.Profile) []transform.Kind {
	var kinds []transform.Kind
	for _, k := range transform.PriorityOrder() {
		if gapOpen(p, k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

func gapOpen(p gaps.Profile, k transform.Kind) bool {
	switch k {
	case transform.KindContradictionRepair:
		return p.Contradictions
	case transform.KindSentenceRewrite:
		return p.SentenceRewrite
	case transform.KindSemanticExpansion:
		return p.SemanticExpansion
	case transform.KindCanonicalize:
		return p.Canonicalize
	case transform.KindRequirements:
		return p.Requirements
	case transform.KindDeliverables:
		return p.Deliverables
	case transform.KindOutputFormat:
		return p.OutputFormat
	case transform.KindSuccessCriteria:
		return p.SuccessCriteria
	case transform.KindScopeBounds:
		return p.ScopeBounds
	case transform.KindQuestions:
		return p.Questions
	case transform.KindDomainPack:
		return p.DomainPack
	case transform.KindQualityGate:
		return p.QualityGate
	case transform.KindDedupe:
		return p.Dedupe
	}
	return false
}

// buildPlans returns singleton plans for every open gap plus up to three
// bundles: the full structural bundle, a format bundle, and a domain bundle.
func buildPlans(p gaps.Profile) []plan {
	active := activeKinds(p)
	plans := make([]plan, 0, len(active)+3)
	for _, k := range active {
		plans = append(plans, plan{title: k.String(), kinds: []transform.Kind{k}})
	}

	if bundle := filterKinds(active, isStructural); len(bundle) >= 2 {
		plans = append(plans, plan{title: bundleTitle("structural bundle", bundle), kinds: bundle})
	}
	if bundle := filterKinds(active, isFormat); len(bundle) >= 2 {
		plans = append(plans, plan{title: bundleTitle("format bundle", bundle), kinds: bundle})
	}
	if p.DomainPack {
		bundle := []transform.Kind{transform.KindDomainPack}
		for _, k := range active {
			switch k {
			case transform.KindQualityGate, transform.KindRequirements,
				transform.KindDeliverables, transform.KindOutputFormat:
				bundle = append(bundle, k)
			}
		}
		plans = append(plans, plan{title: bundleTitle("domain bundle", bundle), kinds: bundle})
	}
	return plans
}

// isStructural excludes the pure rewrite transforms from the full bundle.
func isStructural(k transform.Kind) bool {
	switch k {
	case transform.KindSentenceRewrite, transform.KindSemanticExpansion:
		return false
	}
	return true
}

func isFormat(k transform.Kind) bool {
	switch k {
	case transform.KindRequirements, transform.KindDeliverables,
		transform.KindOutputFormat, transform.KindSuccessCriteria,
		transform.KindQuestions, transform.KindQualityGate:
		return true
	}
	return false
}

func filterKinds(kinds []transform.Kind, keep func(transform.Kind) bool) []transform.Kind {
	var out []transform.Kind
	for _, k := range kinds {
		if keep(k) {
			out = append(out, k)
		}
	}
	return out
}

func bundleTitle(name string, kinds []transform.Kind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return name + " (" + strings.Join(names, " + ") + ")"
}
