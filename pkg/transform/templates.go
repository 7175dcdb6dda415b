package transform

import (
	"regexp"
	"strings"

	"promptforge/pkg/analysis"
	"promptforge/pkg/gaps"
	"promptforge/pkg/policy"
)

// actionRe extracts verb-object pairs for requirement inference when no
// intent template applies.
var actionRe = regexp.MustCompile(`(?i)\b(build|create|write|fix|implement|add|design|generate|refactor|update|improve|translate|summarize)\s+((?:[a-zA-Z0-9'-]+ ?){1,4})`)

func requirementsFor(prose string, intent gaps.Intent) string {
	if bullets := extractedActions(prose); len(bullets) > 0 {
		return strings.Join(bullets, "\n")
	}
	switch intent {
	case gaps.IntentSoftwareBuild:
		return "- Reproduce the current behavior and identify the root cause.\n" +
			"- Make the smallest change that produces the desired behavior.\n" +
			"- Leave behavior outside the stated scope unchanged."
	case gaps.IntentCreativeStory:
		return "- Match the requested form, voice, and approximate length.\n" +
			"- Keep the stated subject central to the piece."
	case gaps.IntentGameDesign:
		return "- Specify components, setup, turn structure, and win condition.\n" +
			"- Cover what happens on invalid or impossible moves."
	case gaps.IntentGeneral:
	}
	return "- Address every part of the request explicitly.\n" +
		"- State assumptions where the request is silent."
}

func extractedActions(prose string) []string {
	var bullets []string
	seen := make(map[string]bool)
	for _, m := range actionRe.FindAllStringSubmatch(prose, 4) {
		verb := strings.ToUpper(m[1][:1]) + strings.ToLower(m[1][1:])
		obj := strings.TrimSpace(m[2])
		line := "- " + verb + " " + obj + "."
		if !seen[normLine(line)] {
			bullets = append(bullets, line)
			seen[normLine(line)] = true
		}
	}
	return bullets
}

// inferRequirements synthesizes a Requirements section from the input's own
// action verbs, falling back to an intent template.
func inferRequirements(prose string, env Env) string {
	return upsertSection(prose, analysis.SectionRequirements, requirementsFor(prose, env.Intent), false)
}

func deliverablesFor(intent gaps.Intent) string {
	switch intent {
	case gaps.IntentSoftwareBuild:
		return "- The code change itself.\n" +
			"- A short summary of what changed and why.\n" +
			"- Test updates covering the new behavior."
	case gaps.IntentCreativeStory:
		return "- The finished piece, ready to read as-is.\n" +
			"- A one-line title."
	case gaps.IntentGameDesign:
		return "- A complete rules document.\n" +
			"- A component list with quantities."
	case gaps.IntentGeneral:
	}
	return "- The answer itself.\n" +
		"- The key assumptions behind it."
}

func inferDeliverables(prose string, env Env) string {
	return upsertSection(prose, analysis.SectionDeliverables, deliverablesFor(env.Intent), false)
}

// outputFormatFor is the canned output contract per scenario.
func outputFormatFor(scenario policy.Scenario) string {
	switch scenario {
	case policy.ScenarioJSONAPI:
		return "Respond with a single JSON object. Use lower_snake_case keys, include every field even when empty, and emit no prose outside the JSON."
	case policy.ScenarioCodeCLI:
		return "Respond in plain text suited to a terminal: short lines, no tables, fenced blocks only for commands or code."
	case policy.ScenarioResearch:
		return "Respond in markdown: a two-sentence summary first, findings as bullets, then a Sources section listing every reference."
	case policy.ScenarioCreativeWriting:
		return "Respond with the finished prose only: no headings, no bullet lists, no commentary before or after the piece."
	case policy.ScenarioToolAgent:
		return "Respond with one action per turn: the tool to call, its arguments, and the expected outcome. Stop and wait after each action."
	case policy.ScenarioGeneral, policy.ScenarioSoftwareBuild:
	}
	return "Respond in markdown. Lead with the direct answer or change summary, then supporting detail under short headings."
}

// ensureOutputFormat appends the scenario's output contract, or replaces an
// existing contract when it is generic boilerplate for the inferred intent.
func ensureOutputFormat(prose string, env Env) string {
	replace := env.Intent != gaps.IntentGeneral && env.Analyzer.GenericContract(prose)
	return upsertSection(prose, analysis.SectionOutputFormat, outputFormatFor(env.Scenario), replace)
}

func successCriteriaFor(intent gaps.Intent) string {
	switch intent {
	case gaps.IntentSoftwareBuild:
		return "- The described behavior works end to end.\n" +
			"- Existing tests still pass.\n" +
			"- Nothing outside the stated scope changed."
	case gaps.IntentCreativeStory:
		return "- The piece matches the requested form and length.\n" +
			"- The stated subject is central, not incidental."
	case gaps.IntentGameDesign:
		return "- The rules are playable without the designer present.\n" +
			"- Turn order and edge cases are unambiguous."
	case gaps.IntentGeneral:
	}
	return "- Every part of the request is addressed.\n" +
		"- Assumptions are stated explicitly."
}

func ensureSuccessCriteria(prose string, env Env) string {
	return upsertSection(prose, analysis.SectionSuccessCriteria, successCriteriaFor(env.Intent), false)
}

// ensureScopeBounds pins down an unbounded request with explicit limits
// under Constraints.
func ensureScopeBounds(prose string) string {
	return appendSectionLines(prose, analysis.SectionConstraints,
		"- Limit the work to the items named above; everything else is out of scope.",
		"- Call out anything that seems required but is not listed.")
}

func ensureQuestions(prose string) string {
	return upsertSection(prose, analysis.SectionQuestions,
		"- What does a successful result look like to you?\n"+
			"- Are there constraints on length, tone, or format not stated above?\n"+
			"- What should explicitly stay out of scope?",
		false)
}

// applyDomainPack appends the policy's supplemental sections and surfaces
// any required keywords the text still lacks.
func applyDomainPack(prose string, env Env) string {
	for _, s := range env.Policy.Supplemental {
		prose = appendSectionLines(prose, s.Kind, strings.Split(s.Body, "\n")...)
	}
	if missing := env.Policy.MissingKeywords(prose); len(missing) > 0 {
		prose = appendSectionLines(prose, analysis.SectionConstraints,
			"- The response must address: "+strings.Join(missing, ", ")+".")
	}
	return prose
}

// applyQualityGate synthesizes every policy-required section still missing,
// using the same templates the individual transforms use.
func applyQualityGate(prose string, env Env) string {
	for _, kind := range env.Policy.RequiredSections {
		if sectionPresent(prose, kind) {
			continue
		}
		switch kind {
		case analysis.SectionGoal:
			prose = upsertSection(prose, kind, firstLine(prose), false)
		case analysis.SectionContext:
			prose = upsertSection(prose, kind, "See the request above.", false)
		case analysis.SectionRequirements:
			prose = inferRequirements(prose, env)
		case analysis.SectionConstraints:
			prose = appendSectionLines(prose, kind,
				"- Stay within the stated task; do not widen the scope.")
		case analysis.SectionDeliverables:
			prose = inferDeliverables(prose, env)
		case analysis.SectionOutputFormat:
			prose = upsertSection(prose, kind, outputFormatFor(env.Scenario), false)
		case analysis.SectionQuestions:
			prose = ensureQuestions(prose)
		case analysis.SectionSuccessCriteria:
			prose = ensureSuccessCriteria(prose, env)
		}
	}
	return prose
}

func sectionPresent(prose string, kind analysis.SectionKind) bool {
	_, secs := parseProse(prose)
	for _, s := range secs {
		if s.known && s.kind == kind {
			return true
		}
	}
	return false
}
