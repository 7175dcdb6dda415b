// Package transform is the library of idempotent, code-fence-preserving text
// edits the optimizer composes into candidate rewrites. Transforms are plain
// values of Kind; Apply interprets an ordered list of them left-to-right
// over the prose segments of a text.
package transform

import (
	"fmt"

	"promptforge/pkg/analysis"
	"promptforge/pkg/gaps"
	"promptforge/pkg/policy"
	"promptforge/pkg/segment"
)

// Kind identifies one transform. The declaration order is the planner's
// fixed priority order.
type Kind int

const (
	KindContradictionRepair Kind = iota
	KindSentenceRewrite
	KindSemanticExpansion
	KindCanonicalize
	KindRequirements
	KindDeliverables
	KindOutputFormat
	KindSuccessCriteria
	KindScopeBounds
	KindQuestions
	KindDomainPack
	KindQualityGate
	KindDedupe
)

func (k Kind) String() string {
	switch k {
	case KindContradictionRepair:
		return "contradiction-repair"
	case KindSentenceRewrite:
		return "sentence-rewrite"
	case KindSemanticExpansion:
		return "semantic-expansion"
	case KindCanonicalize:
		return "canonicalize"
	case KindRequirements:
		return "requirements"
	case KindDeliverables:
		return "deliverables"
	case KindOutputFormat:
		return "output-format"
	case KindSuccessCriteria:
		return "success-criteria"
	case KindScopeBounds:
		return "scope-bounds"
	case KindQuestions:
		return "questions"
	case KindDomainPack:
		return "domain-pack"
	case KindQualityGate:
		return "quality-gate"
	case KindDedupe:
		return "dedupe"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// PriorityOrder returns every kind in planner priority order.
func PriorityOrder() []Kind {
	return []Kind{
		KindContradictionRepair,
		KindSentenceRewrite,
		KindSemanticExpansion,
		KindCanonicalize,
		KindRequirements,
		KindDeliverables,
		KindOutputFormat,
		KindSuccessCriteria,
		KindScopeBounds,
		KindQuestions,
		KindDomainPack,
		KindQualityGate,
		KindDedupe,
	}
}

// Env carries the context a transform may consult. Transforms never mutate it.
type Env struct {
	Analyzer *analysis.Analyzer
	Intent   gaps.Intent
	Scenario policy.Scenario
	Policy   policy.DomainPolicy
}

// Apply runs kinds in order over text. Every kind is routed through the
// segmenter, so code-fence content is byte-identical afterwards.
func Apply(text string, env Env, kinds ...Kind) string {
	for _, k := range kinds {
		text = segment.MapProse(text, func(prose string) string {
			return applyProse(k, prose, env)
		})
	}
	return text
}

func applyProse(k Kind, prose string, env Env) string {
	switch k {
	case KindContradictionRepair:
		return repairContradictions(prose, env)
	case KindSentenceRewrite:
		return rewriteSentences(prose)
	case KindSemanticExpansion:
		return semanticExpansion(prose, env)
	case KindCanonicalize:
		return canonicalize(prose)
	case KindRequirements:
		return inferRequirements(prose, env)
	case KindDeliverables:
		return inferDeliverables(prose, env)
	case KindOutputFormat:
		return ensureOutputFormat(prose, env)
	case KindSuccessCriteria:
		return ensureSuccessCriteria(prose, env)
	case KindScopeBounds:
		return ensureScopeBounds(prose)
	case KindQuestions:
		return ensureQuestions(prose)
	case KindDomainPack:
		return applyDomainPack(prose, env)
	case KindQualityGate:
		return applyQualityGate(prose, env)
	case KindDedupe:
		return dedupeLines(prose)
	}
	return prose
}
