package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// SectionKind enumerates the structural sections the engine understands.
// Every switch over SectionKind must handle all kinds so a newly added
// section cannot be silently ignored.
type SectionKind int

const (
	SectionGoal SectionKind = iota
	SectionContext
	SectionRequirements
	SectionConstraints
	SectionDeliverables
	SectionOutputFormat
	SectionQuestions
	SectionSuccessCriteria
)

// Kinds lists all known section kinds in canonical order.
func Kinds() []SectionKind {
	return []SectionKind{
		SectionGoal,
		SectionContext,
		SectionRequirements,
		SectionConstraints,
		SectionDeliverables,
		SectionOutputFormat,
		SectionQuestions,
		SectionSuccessCriteria,
	}
}

// Heading returns the canonical heading title for the kind.
func (k SectionKind) Heading() string {
	switch k {
	case SectionGoal:
		return "Goal"
	case SectionContext:
		return "Context"
	case SectionRequirements:
		return "Requirements"
	case SectionConstraints:
		return "Constraints"
	case SectionDeliverables:
		return "Deliverables"
	case SectionOutputFormat:
		return "Output Format"
	case SectionQuestions:
		return "Questions"
	case SectionSuccessCriteria:
		return "Success Criteria"
	}
	return fmt.Sprintf("SectionKind(%d)", int(k))
}

func (k SectionKind) String() string { return k.Heading() }

// aliases maps lowercase heading aliases to their section kind.
var aliases = map[string]SectionKind{
	"goal":                 SectionGoal,
	"objective":            SectionGoal,
	"aim":                  SectionGoal,
	"task":                 SectionGoal,
	"context":              SectionContext,
	"background":           SectionContext,
	"requirements":         SectionRequirements,
	"requirement":          SectionRequirements,
	"specs":                SectionRequirements,
	"specifications":       SectionRequirements,
	"constraints":          SectionConstraints,
	"constraint":           SectionConstraints,
	"limitations":          SectionConstraints,
	"rules":                SectionConstraints,
	"deliverables":         SectionDeliverables,
	"deliverable":          SectionDeliverables,
	"outputs":              SectionDeliverables,
	"artifacts":            SectionDeliverables,
	"output format":        SectionOutputFormat,
	"output-format":        SectionOutputFormat,
	"response format":      SectionOutputFormat,
	"output contract":      SectionOutputFormat,
	"format":               SectionOutputFormat,
	"questions":            SectionQuestions,
	"open questions":       SectionQuestions,
	"clarifying questions": SectionQuestions,
	"success criteria":     SectionSuccessCriteria,
	"acceptance criteria":  SectionSuccessCriteria,
	"definition of done":   SectionSuccessCriteria,
}

// headingRe matches one heading line: optional markdown hashes or bold
// markers, the alias text, then an optional inline ": value" tail.
// Group 1 is the alias, group 2 the inline value (may be empty).
var headingRe = regexp.MustCompile(`^\s{0,3}(?:#{1,6}\s*|\*\*)?([A-Za-z][A-Za-z -]{1,30}?)\*{0,2}\s*(?::\s*(.*))?$`)

// MatchHeading reports whether line is a recognized section heading, and if
// so which kind and any inline value that follows a colon.
func MatchHeading(line string) (SectionKind, string, bool) {
	m := headingRe.FindStringSubmatch(strings.TrimRight(line, " \t"))
	if m == nil {
		return 0, "", false
	}
	name := strings.ToLower(strings.TrimSpace(m[1]))
	kind, ok := aliases[name]
	if !ok {
		return 0, "", false
	}
	// A bare alias word in running prose is not a heading; require either a
	// marker prefix, a colon, or the alias alone on its line.
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)
	if lower != name && !strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "**") &&
		!strings.Contains(trimmed, ":") {
		return 0, "", false
	}
	return kind, strings.TrimSpace(m[2]), true
}
