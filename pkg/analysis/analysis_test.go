package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchHeading(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		kind   SectionKind
		inline string
		ok     bool
	}{
		{name: "markdown heading", line: "### Goal", kind: SectionGoal, ok: true},
		{name: "markdown with colon", line: "## Constraints:", kind: SectionConstraints, ok: true},
		{name: "bold heading", line: "**Deliverables**", kind: SectionDeliverables, ok: true},
		{name: "inline form", line: "Task: fix the login bug", kind: SectionGoal, inline: "fix the login bug", ok: true},
		{name: "alias output format", line: "### Output Format", kind: SectionOutputFormat, ok: true},
		{name: "alias acceptance criteria", line: "Acceptance Criteria:", kind: SectionSuccessCriteria, ok: true},
		{name: "bare alias alone", line: "questions", kind: SectionQuestions, ok: true},
		{name: "unknown heading", line: "### Appendix", ok: false},
		{name: "prose with colon", line: "We need to fix the login: it fails", ok: false},
		{name: "bullet line", line: "- Must keep the schedule.", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, inline, ok := MatchHeading(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.kind, kind)
				assert.Equal(t, tt.inline, inline)
			}
		})
	}
}

func TestAnalyzeAmbiguityWordBoundaries(t *testing.T) {
	an := NewAnalyzer()

	tests := []struct {
		name  string
		text  string
		count int
	}{
		{name: "no hedging", text: "Fix the login bug today.", count: 0},
		{name: "single token", text: "Maybe fix the login bug.", count: 1},
		{name: "phrase token", text: "Could you fix the login bug?", count: 1},
		{name: "etc as word", text: "Cover headers, footers, etc.", count: 1},
		{name: "etc inside word is not a hit", text: "The word etcetera appears here.", count: 0},
		{name: "several tokens", text: "Maybe try to fix it if possible.", count: 3},
		{name: "adjacent repeats both count", text: "maybe maybe fix it", count: 2},
		{name: "comma-separated repeats both count", text: "perhaps, perhaps later", count: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := an.Analyze(tt.text)
			assert.Equal(t, tt.count, a.AmbiguityCount)
		})
	}
}

func TestAnalyzeContradictions(t *testing.T) {
	an := NewAnalyzer()

	t.Run("concise versus entirety yields exactly one entry", func(t *testing.T) {
		a := an.Analyze("Summarize the report. Be concise. Include the document in its entirety.")
		assert.Len(t, a.Contradictions, 1)
		assert.Contains(t, a.Contradictions[0], "concise")
	})

	t.Run("one side alone is not a contradiction", func(t *testing.T) {
		a := an.Analyze("Be concise and direct.")
		assert.Empty(t, a.Contradictions)
	})

	t.Run("browsing conflict", func(t *testing.T) {
		a := an.Analyze("No browsing allowed, but do some web research on the topic.")
		assert.Len(t, a.Contradictions, 1)
	})
}

func TestAnalyzePlaceholders(t *testing.T) {
	an := NewAnalyzer()
	a := an.Analyze("Write an overview of {topic} for beginners.")
	assert.Equal(t, 1, a.Placeholders)

	a = an.Analyze("Use {tone} and {audience} appropriately.")
	assert.Equal(t, 2, a.Placeholders)
}

func TestAnalyzeSectionsAndOrder(t *testing.T) {
	an := NewAnalyzer()
	text := "### Constraints\n- Must ship this week.\n- Only touch the UI.\n\n### Goal\nShip the fix."
	a := an.Analyze(text)

	assert.True(t, a.Has(SectionConstraints))
	assert.True(t, a.Has(SectionGoal))
	assert.Equal(t, []SectionKind{SectionConstraints, SectionGoal}, a.SectionOrder)
	assert.True(t, a.StrongConstr, "constraints heading plus two marker words")
}

func TestAnalyzeIgnoresFences(t *testing.T) {
	an := NewAnalyzer()
	text := "Fix the parser.\n```\nmaybe etc {x} ### Goal\n```"
	a := an.Analyze(text)

	assert.Equal(t, 0, a.AmbiguityCount, "hedging inside fences must not count")
	assert.Equal(t, 0, a.Placeholders)
	assert.False(t, a.Has(SectionGoal))
	assert.Equal(t, 1, a.FenceCount)
}

func TestAnalyzeVagueGoal(t *testing.T) {
	an := NewAnalyzer()
	assert.True(t, an.Analyze("maybe improve the docs").VagueGoal)
	assert.False(t, an.Analyze("Rewrite the installation guide for the 2.0 release.").VagueGoal)
}

func TestAnalyzeTokenEstimate(t *testing.T) {
	an := NewAnalyzer()
	assert.Equal(t, 1, an.Analyze("ab").TokenEstimate, "floor of one token")

	long := strings.Repeat("word ", 100)
	a := an.Analyze(long)
	assert.Equal(t, len(long)/4, a.TokenEstimate)
}

func TestAnalyzeEnumeratedDeliverables(t *testing.T) {
	an := NewAnalyzer()

	withBullets := "### Deliverables\n- The code change.\n- Release notes."
	assert.True(t, an.Analyze(withBullets).EnumDeliverable)

	withoutSection := "- The code change.\n- Release notes."
	assert.False(t, an.Analyze(withoutSection).EnumDeliverable)

	emptySection := "### Deliverables\n\n### Goal\nShip it."
	assert.False(t, an.Analyze(emptySection).EnumDeliverable)
}
