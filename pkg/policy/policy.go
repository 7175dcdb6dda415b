// Package policy derives context-specific structural requirements from the
// (target, scenario) pair. Policies are stateless values recomputed per call.
package policy

import (
	"fmt"
	"strings"

	"promptforge/pkg/analysis"
)

// Target is the consumer the optimized prompt is written for.
type Target int

const (
	TargetChatModel Target = iota
	TargetCodeModel
	TargetResearchModel
	TargetLocalModel
)

func (t Target) String() string {
	switch t {
	case TargetChatModel:
		return "chat"
	case TargetCodeModel:
		return "code"
	case TargetResearchModel:
		return "research"
	case TargetLocalModel:
		return "local"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// ParseTarget maps a user-facing name to a Target.
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "chat":
		return TargetChatModel, nil
	case "code":
		return TargetCodeModel, nil
	case "research":
		return TargetResearchModel, nil
	case "local":
		return TargetLocalModel, nil
	}
	return 0, fmt.Errorf("unknown target %q (want chat, code, research, or local)", s)
}

// Scenario is the usage situation the prompt will run in.
type Scenario int

const (
	ScenarioGeneral Scenario = iota
	ScenarioSoftwareBuild
	ScenarioCodeCLI
	ScenarioJSONAPI
	ScenarioResearch
	ScenarioCreativeWriting
	ScenarioToolAgent
)

func (s Scenario) String() string {
	switch s {
	case ScenarioGeneral:
		return "general"
	case ScenarioSoftwareBuild:
		return "software-build"
	case ScenarioCodeCLI:
		return "code-cli"
	case ScenarioJSONAPI:
		return "json-api"
	case ScenarioResearch:
		return "research"
	case ScenarioCreativeWriting:
		return "creative-writing"
	case ScenarioToolAgent:
		return "tool-agent"
	}
	return fmt.Sprintf("Scenario(%d)", int(s))
}

// ParseScenario maps a user-facing name to a Scenario.
func ParseScenario(s string) (Scenario, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return ScenarioGeneral, nil
	case "software-build", "software":
		return ScenarioSoftwareBuild, nil
	case "code-cli", "cli":
		return ScenarioCodeCLI, nil
	case "json-api", "json":
		return ScenarioJSONAPI, nil
	case "research":
		return ScenarioResearch, nil
	case "creative-writing", "creative":
		return ScenarioCreativeWriting, nil
	case "tool-agent", "agent":
		return ScenarioToolAgent, nil
	}
	return 0, fmt.Errorf("unknown scenario %q", s)
}

// ScaffoldMandatory reports whether the scenario always wants explicit
// headed sections regardless of how the input looks.
func (s Scenario) ScaffoldMandatory() bool {
	switch s {
	case ScenarioSoftwareBuild, ScenarioCodeCLI, ScenarioJSONAPI, ScenarioResearch, ScenarioToolAgent:
		return true
	case ScenarioGeneral, ScenarioCreativeWriting:
		return false
	}
	return false
}

// Section is a supplemental headed block a policy can require.
type Section struct {
	Kind analysis.SectionKind
	Body string
}

// DomainPolicy is the structural contract derived from (target, scenario).
type DomainPolicy struct {
	// RequiredKeywords must appear somewhere in a complete prompt.
	RequiredKeywords []string
	// RequiredSections must be present when the input is ambiguous or
	// underspecified; the quality-gate transform synthesizes the missing ones.
	RequiredSections []analysis.SectionKind
	// Supplemental sections are appended by the domain-pack transform.
	Supplemental []Section
}

// For derives the policy for a (target, scenario) pair.
func For(target Target, scenario Scenario) DomainPolicy {
	var p DomainPolicy

	switch scenario {
	case ScenarioJSONAPI:
		p.RequiredKeywords = append(p.RequiredKeywords, "json")
		p.RequiredSections = append(p.RequiredSections, analysis.SectionOutputFormat)
	case ScenarioResearch:
		p.RequiredKeywords = append(p.RequiredKeywords, "sources")
		p.RequiredSections = append(p.RequiredSections,
			analysis.SectionOutputFormat, analysis.SectionSuccessCriteria)
		p.Supplemental = append(p.Supplemental, Section{
			Kind: analysis.SectionConstraints,
			Body: "- Cite sources for every non-obvious claim.\n- Prefer primary sources over summaries.\n- Flag any claim you could not verify.",
		})
	case ScenarioCodeCLI:
		p.RequiredSections = append(p.RequiredSections,
			analysis.SectionConstraints, analysis.SectionOutputFormat)
	case ScenarioToolAgent:
		p.RequiredSections = append(p.RequiredSections,
			analysis.SectionConstraints, analysis.SectionOutputFormat)
		p.Supplemental = append(p.Supplemental, Section{
			Kind: analysis.SectionConstraints,
			Body: "- State which tools may be used and when to stop.\n- Ask before any destructive or irreversible action.",
		})
	case ScenarioSoftwareBuild:
		p.RequiredSections = append(p.RequiredSections, analysis.SectionRequirements)
	case ScenarioGeneral, ScenarioCreativeWriting:
		// No scenario-level requirements.
	}

	switch target {
	case TargetCodeModel:
		p.Supplemental = append(p.Supplemental, Section{
			Kind: analysis.SectionSuccessCriteria,
			Body: "- Changed behavior is covered by tests.\n- The build passes with no new warnings.",
		})
	case TargetResearchModel:
		p.RequiredKeywords = appendMissing(p.RequiredKeywords, "sources")
	case TargetLocalModel:
		p.Supplemental = append(p.Supplemental, Section{
			Kind: analysis.SectionConstraints,
			Body: "- Keep the prompt under 900 tokens; local models degrade on long contexts.",
		})
	case TargetChatModel:
		// Baseline target, nothing extra.
	}

	return p
}

func appendMissing(list []string, v string) []string {
	for _, have := range list {
		if have == v {
			return list
		}
	}
	return append(list, v)
}

// MissingSections returns the required sections absent from a.
func (p DomainPolicy) MissingSections(a analysis.Analysis) []analysis.SectionKind {
	var missing []analysis.SectionKind
	for _, k := range p.RequiredSections {
		if !a.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// MissingKeywords returns required keywords absent from text (case-insensitive).
func (p DomainPolicy) MissingKeywords(text string) []string {
	lower := strings.ToLower(text)
	var missing []string
	for _, kw := range p.RequiredKeywords {
		if !strings.Contains(lower, strings.ToLower(kw)) {
			missing = append(missing, kw)
		}
	}
	return missing
}
