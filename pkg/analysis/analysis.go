// Package analysis derives structural and lexical signals from a prompt.
// The Analyzer owns its compiled-regex cache so callers can hold isolated
// instances; an Analysis is an immutable value recomputed per text.
package analysis

import (
	"regexp"
	"strings"
	"sync"

	"promptforge/pkg/segment"
)

// Analysis is the set of derived facts about one text. Code-fence content is
// excluded from every signal.
type Analysis struct {
	GoalLine        string
	Sections        map[SectionKind]bool
	SectionOrder    []SectionKind
	AmbiguityCount  int
	ScopeLeak       bool
	Contradictions  []string
	ExampleCount    int
	TokenEstimate   int
	Placeholders    int
	VagueGoal       bool
	StrongConstr    bool
	OutputTemplate  bool
	ScopeBounds     bool
	EnumDeliverable bool
	FenceCount      int
}

// SectionCount returns how many known section headings are present.
func (a Analysis) SectionCount() int {
	n := 0
	for _, present := range a.Sections {
		if present {
			n++
		}
	}
	return n
}

// Has reports whether a known section heading is present.
func (a Analysis) Has(k SectionKind) bool { return a.Sections[k] }

// Analyzer performs feature extraction. Word-boundary patterns are compiled
// lazily and memoized behind a mutex so concurrent callers share one cache.
type Analyzer struct {
	mu    sync.Mutex
	cache map[string]*regexp.Regexp
}

// NewAnalyzer returns an Analyzer with an empty pattern cache.
func NewAnalyzer() *Analyzer {
	return &Analyzer{cache: make(map[string]*regexp.Regexp)}
}

var placeholderRe = regexp.MustCompile(`\{[A-Za-z][A-Za-z0-9_]*\}`)
var bulletRe = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+[.)])\s+\S`)

// wordPattern returns a case-insensitive, word-boundary-anchored matcher for
// token, compiling it at most once per Analyzer.
func (an *Analyzer) wordPattern(token string) *regexp.Regexp {
	an.mu.Lock()
	defer an.mu.Unlock()
	if re, ok := an.cache[token]; ok {
		return re
	}
	expr := `(?i)(^|[^a-zA-Z])` + regexp.QuoteMeta(token) + `($|[^a-zA-Z])`
	re := regexp.MustCompile(expr)
	an.cache[token] = re
	return re
}

// countToken counts whole-word occurrences of token in text. The pattern
// consumes the trailing boundary byte, so the scan re-seeks from one byte
// before match end; otherwise adjacent repeats ("maybe maybe") undercount.
func (an *Analyzer) countToken(text, token string) int {
	re := an.wordPattern(token)
	n := 0
	idx := 0
	for idx < len(text) {
		loc := re.FindStringIndex(text[idx:])
		if loc == nil {
			break
		}
		n++
		next := idx + loc[1] - 1
		if next <= idx {
			next = idx + loc[1]
		}
		idx = next
	}
	return n
}

func (an *Analyzer) hasToken(text, token string) bool {
	return an.wordPattern(token).MatchString(text)
}

// HasAny reports whether any token occurs as a whole word in text, using the
// Analyzer's memoized patterns.
func (an *Analyzer) HasAny(text string, tokens []string) bool {
	for _, t := range tokens {
		if an.hasToken(text, t) {
			return true
		}
	}
	return false
}

// Analyze extracts all signals from text. Fence segments contribute only to
// FenceCount and the token estimate denominator is prose characters.
func (an *Analyzer) Analyze(text string) Analysis {
	prose := segment.StripFences(text)
	a := Analysis{
		Sections:   make(map[SectionKind]bool),
		FenceCount: len(segment.Fences(text)),
	}

	lines := strings.Split(prose, "\n")
	for _, line := range lines {
		if a.GoalLine == "" && strings.TrimSpace(line) != "" {
			a.GoalLine = strings.TrimSpace(line)
		}
		if kind, _, ok := MatchHeading(line); ok {
			if !a.Sections[kind] {
				a.SectionOrder = append(a.SectionOrder, kind)
			}
			a.Sections[kind] = true
		}
	}

	for _, tok := range HedgingTokens {
		a.AmbiguityCount += an.countToken(prose, tok)
	}
	a.ScopeLeak = an.HasAny(prose, ScopeLeakTokens)

	for _, pair := range ContradictionPairs {
		if an.HasAny(prose, pair.SideA) && an.HasAny(prose, pair.SideB) {
			a.Contradictions = append(a.Contradictions, pair.Label)
		}
	}

	for _, tok := range ExampleTokens {
		a.ExampleCount += an.countToken(prose, tok)
	}

	a.Placeholders = len(placeholderRe.FindAllString(prose, -1))

	if n := len(prose); n > 4 {
		a.TokenEstimate = n / 4
	} else {
		a.TokenEstimate = 1
	}

	a.VagueGoal = len(a.GoalLine) < 60 && an.HasAny(a.GoalLine, HedgingTokens)

	if a.Sections[SectionConstraints] {
		markers := 0
		for _, tok := range ConstraintMarkers {
			markers += an.countToken(prose, tok)
		}
		a.StrongConstr = markers >= 2
	}

	a.OutputTemplate = a.Sections[SectionOutputFormat] ||
		an.hasToken(prose, "json") || an.hasToken(prose, "output format") ||
		an.hasToken(prose, "respond in markdown")

	a.ScopeBounds = an.hasToken(prose, "out of scope") ||
		an.hasToken(prose, "in scope") || an.hasToken(prose, "do not touch") ||
		an.hasToken(prose, "limit changes to")

	a.EnumDeliverable = an.enumeratedDeliverables(prose)

	return a
}

// enumeratedDeliverables reports whether a Deliverables section exists and
// actually enumerates items as bullets.
func (an *Analyzer) enumeratedDeliverables(prose string) bool {
	lines := strings.Split(prose, "\n")
	inDeliverables := false
	for _, line := range lines {
		if kind, inline, ok := MatchHeading(line); ok {
			inDeliverables = kind == SectionDeliverables
			if inDeliverables && inline != "" {
				return true
			}
			continue
		}
		if inDeliverables && bulletRe.MatchString(line) {
			return true
		}
	}
	return false
}

// GenericContract reports whether the text's output-contract wording is
// boilerplate only: it mentions a generic phrase and no concrete structure
// such as fields, columns, or a schema.
func (an *Analyzer) GenericContract(text string) bool {
	prose := strings.ToLower(segment.StripFences(text))
	generic := false
	for _, p := range GenericContractPhrases {
		if an.hasToken(prose, p) {
			generic = true
			break
		}
	}
	if !generic {
		return false
	}
	concreteCues := []string{
		"field", "fields", "schema", "column", "columns", "key", "keys",
		"section", "sections", "heading", "headings", "bullet", "bullets",
		"fenced", "sources",
	}
	for _, concrete := range concreteCues {
		if an.hasToken(prose, concrete) {
			return false
		}
	}
	return true
}
