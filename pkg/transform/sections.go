package transform

import (
	"strings"

	"promptforge/pkg/analysis"
)

// docSection is one parsed block of a prose segment: either a recognized
// section, an unrecognized heading with its body, or the leading unheaded
// text (heading == "" and known == false).
type docSection struct {
	known   bool
	kind    analysis.SectionKind
	heading string // verbatim heading line for unknown sections
	body    []string
}

func (s *docSection) bodyText() string {
	return strings.TrimSpace(strings.Join(s.body, "\n"))
}

// unknownHeading reports whether line looks like a markdown heading that the
// alias table does not recognize. Such sections are preserved verbatim.
func unknownHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return false
	}
	_, _, known := analysis.MatchHeading(line)
	return !known
}

// parseProse splits a prose segment into leading unheaded text plus ordered
// sections. Inline "Heading: value" forms become a section whose body starts
// with the value.
func parseProse(prose string) (lead []string, secs []docSection) {
	cur := -1 // index into secs, -1 while in the lead
	for _, line := range strings.Split(prose, "\n") {
		if kind, inline, ok := analysis.MatchHeading(line); ok {
			secs = append(secs, docSection{known: true, kind: kind})
			cur = len(secs) - 1
			if inline != "" {
				secs[cur].body = append(secs[cur].body, inline)
			}
			continue
		}
		if unknownHeading(line) {
			secs = append(secs, docSection{heading: line})
			cur = len(secs) - 1
			continue
		}
		if cur < 0 {
			lead = append(lead, line)
		} else {
			secs[cur].body = append(secs[cur].body, line)
		}
	}
	return lead, secs
}

// renderSections rebuilds prose text from parsed sections. Known sections
// get canonical "### Title" headings; unknown ones keep their original line.
func renderSections(lead []string, secs []docSection) string {
	var b strings.Builder
	leadText := strings.TrimSpace(strings.Join(lead, "\n"))
	if leadText != "" {
		b.WriteString(leadText)
		b.WriteString("\n")
	}
	for _, s := range secs {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		if s.known {
			b.WriteString("### " + s.kind.Heading() + "\n")
		} else {
			b.WriteString(strings.TrimRight(s.heading, " \t") + "\n")
		}
		if body := s.bodyText(); body != "" {
			b.WriteString(body)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// upsertSection inserts a section with the given body, merging into an
// existing one instead of duplicating it. A section that already has content
// is left untouched unless replace is true, which keeps the operation
// idempotent once the gap is closed.
func upsertSection(prose string, kind analysis.SectionKind, body string, replace bool) string {
	lead, secs := parseProse(prose)
	for i := range secs {
		if secs[i].known && secs[i].kind == kind {
			if secs[i].bodyText() == "" || replace {
				secs[i].body = strings.Split(body, "\n")
			}
			return renderSections(lead, secs)
		}
	}
	secs = append(secs, docSection{known: true, kind: kind, body: strings.Split(body, "\n")})
	return renderSections(lead, secs)
}

// appendSectionLines adds lines to a section's body, creating the section if
// needed and skipping lines already present (whitespace/case-insensitive).
func appendSectionLines(prose string, kind analysis.SectionKind, lines ...string) string {
	lead, secs := parseProse(prose)
	idx := -1
	for i := range secs {
		if secs[i].known && secs[i].kind == kind {
			idx = i
			break
		}
	}
	if idx < 0 {
		secs = append(secs, docSection{known: true, kind: kind})
		idx = len(secs) - 1
	}
	have := make(map[string]bool)
	for _, l := range secs[idx].body {
		have[normLine(l)] = true
	}
	for _, l := range lines {
		if !have[normLine(l)] {
			secs[idx].body = append(secs[idx].body, l)
			have[normLine(l)] = true
		}
	}
	return renderSections(lead, secs)
}

func normLine(l string) string {
	return strings.ToLower(strings.Join(strings.Fields(l), " "))
}

// canonicalize re-orders recognized sections into canonical order, keeps
// unrecognized sections after them in original order, and promotes leading
// unheaded text into Goal, then Context, then merges it into Context.
func canonicalize(prose string) string {
	lead, secs := parseProse(prose)
	if len(secs) == 0 {
		return prose
	}

	byKind := make(map[analysis.SectionKind]*docSection)
	var unknown []docSection
	for i := range secs {
		s := secs[i]
		if !s.known {
			unknown = append(unknown, s)
			continue
		}
		if existing, ok := byKind[s.kind]; ok {
			existing.body = append(existing.body, s.body...)
			continue
		}
		copied := s
		byKind[s.kind] = &copied
	}

	leadText := strings.TrimSpace(strings.Join(lead, "\n"))
	if leadText != "" {
		switch {
		case byKind[analysis.SectionGoal] == nil:
			byKind[analysis.SectionGoal] = &docSection{known: true, kind: analysis.SectionGoal, body: []string{leadText}}
		case byKind[analysis.SectionContext] == nil:
			byKind[analysis.SectionContext] = &docSection{known: true, kind: analysis.SectionContext, body: []string{leadText}}
		default:
			ctx := byKind[analysis.SectionContext]
			ctx.body = append([]string{leadText, ""}, ctx.body...)
		}
	}

	var ordered []docSection
	for _, k := range analysis.Kinds() {
		if s, ok := byKind[k]; ok {
			ordered = append(ordered, *s)
		}
	}
	ordered = append(ordered, unknown...)
	return renderSections(nil, ordered)
}
