package transform

import (
	"regexp"
	"strings"

	"promptforge/pkg/analysis"
	"promptforge/pkg/gaps"
)

// rewriteRule substitutes one hedging phrase. Patterns are whole-word and
// case-insensitive; removal leaves whitespace cleanup to normalizeSpacing.
type rewriteRule struct {
	re   *regexp.Regexp
	repl string
}

func wordRule(token, repl string) rewriteRule {
	return rewriteRule{
		re:   regexp.MustCompile(`(?i)(^|[^a-zA-Z])` + regexp.QuoteMeta(token) + `($|[^a-zA-Z])`),
		repl: "${1}" + repl + "${2}",
	}
}

var rewriteRules = []rewriteRule{
	wordRule("could you", ""),
	wordRule("would you", ""),
	wordRule("can you", ""),
	wordRule("maybe", ""),
	wordRule("perhaps", ""),
	wordRule("possibly", ""),
	wordRule("somehow", ""),
	wordRule("kind of", ""),
	wordRule("sort of", ""),
	wordRule("try to", ""),
	wordRule("if possible", "when required"),
	wordRule("might", "must"),
	wordRule("ideally", ""),
	wordRule("or something", ""),
	wordRule("etc", ""),
}

var spaceRuns = regexp.MustCompile(`[ \t]{2,}`)
var danglingPunct = regexp.MustCompile(`\s+([,.;:!?])`)
var doubledPunct = regexp.MustCompile(`([,;:])\s*([,.;:])`)

// rewriteSentences removes or strengthens hedging phrases line by line and
// normalizes the whitespace the removals leave behind. Each rule is applied
// until stable because a replacement consumes the boundary byte that would
// start an adjacent match ("maybe maybe"). Line indentation is kept; the
// rewritten remainder is left-trimmed so a removed leading hedge does not
// leave a stray space.
func rewriteSentences(prose string) string {
	lines := strings.Split(prose, "\n")
	for i, line := range lines {
		rest := strings.TrimLeft(line, " \t")
		indent := line[:len(line)-len(rest)]
		for _, r := range rewriteRules {
			for {
				next := r.re.ReplaceAllString(rest, r.repl)
				if next == rest {
					break
				}
				rest = next
			}
		}
		lines[i] = indent + strings.TrimLeft(normalizeSpacing(rest), " \t")
	}
	return strings.Join(lines, "\n")
}

func normalizeSpacing(line string) string {
	line = spaceRuns.ReplaceAllString(line, " ")
	line = danglingPunct.ReplaceAllString(line, "$1")
	line = doubledPunct.ReplaceAllString(line, "$2")
	return strings.TrimRight(line, " \t")
}

// contradictionFix describes how to defuse one known conflict: the side-B
// phrases are replaced with a disambiguating phrase and a clarifying line is
// appended to the named section.
type contradictionFix struct {
	replacement string
	section     analysis.SectionKind
	clarifier   string
}

var contradictionFixes = map[analysis.ContradictionKind]contradictionFix{
	analysis.ContradictionConciseExhaustive: {
		replacement: "focused",
		section:     analysis.SectionConstraints,
		clarifier:   "- Keep the response concise; cover only the items explicitly listed.",
	},
	analysis.ContradictionBrowsing: {
		replacement: "using only the provided materials",
		section:     analysis.SectionConstraints,
		clarifier:   "- Work from the provided materials only; do not assume web access.",
	},
	analysis.ContradictionNoCodeImplement: {
		replacement: "outline",
		section:     analysis.SectionDeliverables,
		clarifier:   "- A written plan describing the approach, not source code.",
	},
}

// repairContradictions rewrites the conflicting clause of each detected
// contradiction and appends the clarifying line for its kind.
func repairContradictions(prose string, env Env) string {
	an := env.Analyzer
	for _, pair := range analysis.ContradictionPairs {
		if !an.HasAny(prose, pair.SideA) || !an.HasAny(prose, pair.SideB) {
			continue
		}
		fix := contradictionFixes[pair.Kind]
		for _, tok := range pair.SideB {
			re := regexp.MustCompile(`(?i)(^|[^a-zA-Z])` + regexp.QuoteMeta(tok) + `($|[^a-zA-Z])`)
			prose = re.ReplaceAllString(prose, "${1}"+fix.replacement+"${2}")
		}
		prose = appendSectionLines(prose, fix.section, fix.clarifier)
	}
	return prose
}

// semanticExpansion replaces a short unheaded request with one paragraph of
// three declarative sentences tailored to the intent. It refuses to touch
// text that already carries known headings.
func semanticExpansion(prose string, env Env) string {
	_, secs := parseProse(prose)
	for _, s := range secs {
		if s.known {
			return prose
		}
	}
	if strings.TrimSpace(prose) == "" {
		return prose
	}

	subject := gaps.Subject(prose)
	switch env.Intent {
	case gaps.IntentCreativeStory:
		if subject == "" {
			subject = "an original subject of your choosing"
		}
		return "Write a complete piece of short fiction about " + subject + ". " +
			"Establish one central character, a concrete setting, and a single source of tension within the opening paragraph. " +
			"Resolve that tension by the final paragraph and keep the whole piece under 800 words."
	case gaps.IntentGameDesign:
		if subject == "" {
			subject = "the game described below"
		}
		return "Design " + subject + " as a playable ruleset. " +
			"Define the components, the turn structure, and the win condition in plain language. " +
			"Keep the rules short enough to learn in five minutes and note one likely balance problem."
	case gaps.IntentSoftwareBuild:
		goal := firstLine(prose)
		return "Deliver a working change for the following task: " + goal + ". " +
			"State the current behavior, the desired behavior, and the smallest change that closes the difference. " +
			"List the files or components you touched and how to verify the result."
	case gaps.IntentGeneral:
	}
	topic := subject
	if topic == "" {
		topic = "the request below"
	}
	return "Give a direct and complete answer about " + topic + ". " +
		"State your answer first, then the reasoning and any assumptions you made. " +
		"Close with one concrete next step the reader can take.\n\n" + strings.TrimSpace(prose)
}

func firstLine(prose string) string {
	for _, l := range strings.Split(prose, "\n") {
		if t := strings.TrimSpace(l); t != "" {
			return strings.TrimRight(t, ".")
		}
	}
	return ""
}

// dedupeLines removes duplicate non-blank lines under case/whitespace
// normalization and collapses blank-line runs to a single blank line.
func dedupeLines(prose string) string {
	seen := make(map[string]bool)
	var out []string
	blank := false
	for _, line := range strings.Split(prose, "\n") {
		norm := normLine(line)
		if norm == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		if seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return strings.Join(out, "\n")
}
