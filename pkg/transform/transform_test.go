package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptforge/pkg/analysis"
	"promptforge/pkg/gaps"
	"promptforge/pkg/policy"
	"promptforge/pkg/segment"
)

func testEnv(intent gaps.Intent, target policy.Target, scenario policy.Scenario) Env {
	return Env{
		Analyzer: analysis.NewAnalyzer(),
		Intent:   intent,
		Scenario: scenario,
		Policy:   policy.For(target, scenario),
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "contradiction-repair", KindContradictionRepair.String())
	assert.Equal(t, "output-format", KindOutputFormat.String())
	assert.Equal(t, "dedupe", KindDedupe.String())
}

func TestPriorityOrder(t *testing.T) {
	order := PriorityOrder()
	require.Len(t, order, 13)
	assert.Equal(t, KindContradictionRepair, order[0])
	assert.Equal(t, KindDedupe, order[len(order)-1])
	seen := make(map[Kind]bool)
	for _, k := range order {
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
}

func TestSentenceRewrite(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
	got := Apply("Could you maybe fix the login bug, if possible?", env, KindSentenceRewrite)
	assert.Equal(t, "fix the login bug, when required?", got,
		"removing a leading hedge must not leave a leading space")
}

func TestSentenceRewriteAdjacentHedges(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)

	got := Apply("Maybe maybe fix the login bug.", env, KindSentenceRewrite)
	assert.Equal(t, "fix the login bug.", got, "both adjacent hedges must go")

	got = Apply("Perhaps, perhaps summarize the notes.", env, KindSentenceRewrite)
	assert.NotContains(t, strings.ToLower(got), "perhaps")
}

func TestSentenceRewriteKeepsIndentation(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
	got := Apply("- Fix the header.\n  - maybe fix the footer too.", env, KindSentenceRewrite)
	assert.Equal(t, "- Fix the header.\n  - fix the footer too.", got)
}

func TestContradictionRepair(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
	in := "Summarize the report. Be concise. Include the document in its entirety."
	got := Apply(in, env, KindContradictionRepair)

	assert.NotContains(t, strings.ToLower(got), "in its entirety")
	assert.Contains(t, got, "focused")
	assert.Contains(t, got, "### Constraints")
	assert.Contains(t, got, "cover only the items explicitly listed")

	after := env.Analyzer.Analyze(got)
	assert.Empty(t, after.Contradictions, "the conflict must be gone after repair")
}

func TestSemanticExpansionCreative(t *testing.T) {
	env := testEnv(gaps.IntentCreativeStory, policy.TargetChatModel, policy.ScenarioGeneral)
	got := Apply("Write a short story about a lighthouse keeper", env, KindSemanticExpansion)

	assert.Contains(t, got, "short fiction about a lighthouse keeper")
	assert.NotContains(t, got, "### ", "semantic expansion must not introduce headings")
}

func TestSemanticExpansionRefusesHeadedText(t *testing.T) {
	env := testEnv(gaps.IntentCreativeStory, policy.TargetChatModel, policy.ScenarioGeneral)
	in := "### Goal\nWrite a story about a lighthouse keeper."
	assert.Equal(t, in, Apply(in, env, KindSemanticExpansion))
}

func TestCanonicalize(t *testing.T) {
	t.Run("reorders and promotes lead to goal", func(t *testing.T) {
		env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
		in := "Ship the fix.\n### Deliverables\n- Item."
		want := "### Goal\nShip the fix.\n\n### Deliverables\n- Item."
		assert.Equal(t, want, Apply(in, env, KindCanonicalize))
	})

	t.Run("lead falls back to context when goal exists", func(t *testing.T) {
		env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
		in := "Some background line.\n### Deliverables\n- Item.\n### Goal\nShip it."
		want := "### Goal\nShip it.\n\n### Context\nSome background line.\n\n### Deliverables\n- Item."
		assert.Equal(t, want, Apply(in, env, KindCanonicalize))
	})

	t.Run("unknown headings survive after known ones", func(t *testing.T) {
		env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
		in := "### Appendix\nExtra notes.\n### Goal\nShip it."
		got := Apply(in, env, KindCanonicalize)
		assert.True(t, strings.Index(got, "### Goal") < strings.Index(got, "### Appendix"))
		assert.Contains(t, got, "Extra notes.")
	})
}

func TestOutputFormatIdempotent(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioJSONAPI)
	in := "Return the user records."
	once := Apply(in, env, KindOutputFormat)
	twice := Apply(once, env, KindOutputFormat)

	assert.Equal(t, once, twice)
	assert.Contains(t, once, "### Output Format")
	assert.Contains(t, once, "JSON")
	assert.Equal(t, 1, strings.Count(twice, "### Output Format"))
}

func TestOutputFormatReplacesGenericContract(t *testing.T) {
	env := testEnv(gaps.IntentSoftwareBuild, policy.TargetChatModel, policy.ScenarioSoftwareBuild)
	in := "Fix the parser.\n### Output Format\nRespond in a clear format."
	got := Apply(in, env, KindOutputFormat)

	assert.NotContains(t, got, "Respond in a clear format.")
	assert.Contains(t, got, "Lead with the direct answer or change summary")
}

func TestRequirementsFromActionVerbs(t *testing.T) {
	env := testEnv(gaps.IntentSoftwareBuild, policy.TargetChatModel, policy.ScenarioSoftwareBuild)
	got := Apply("Fix the login flow and add a retry button.", env, KindRequirements)

	assert.Contains(t, got, "### Requirements")
	assert.Contains(t, got, "- Fix the login flow")
	assert.Contains(t, got, "- Add a retry button")
}

func TestScopeBoundsAndQuestions(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
	got := Apply("Clean up the repo and anything else you see.", env, KindScopeBounds, KindQuestions)

	assert.Contains(t, got, "### Constraints")
	assert.Contains(t, got, "out of scope")
	assert.Contains(t, got, "### Questions")
	assert.Contains(t, got, "What does a successful result look like to you?")
}

func TestDomainPackResearch(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioResearch)
	got := Apply("Compare the three proposals.", env, KindDomainPack)

	assert.Contains(t, got, "### Constraints")
	assert.Contains(t, got, "Cite sources for every non-obvious claim.")
}

func TestQualityGateSynthesizesRequiredSections(t *testing.T) {
	env := testEnv(gaps.IntentSoftwareBuild, policy.TargetChatModel, policy.ScenarioCodeCLI)
	got := Apply("fix the login bug", env, KindQualityGate)

	assert.Contains(t, got, "### Constraints")
	assert.Contains(t, got, "### Output Format")
}

func TestDedupe(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
	in := "Summarize the notes.\nsummarize   the notes.\n\n\n\nKeep the tone neutral."
	got := Apply(in, env, KindDedupe)

	assert.Equal(t, "Summarize the notes.\n\nKeep the tone neutral.", got)
}

func TestApplyPreservesFences(t *testing.T) {
	env := testEnv(gaps.IntentSoftwareBuild, policy.TargetChatModel, policy.ScenarioSoftwareBuild)
	in := "Maybe fix this stack trace.\n```\npanic: maybe nil maybe\n```\nBe concise but cover everything."

	got := Apply(in, env, PriorityOrder()...)
	assert.Equal(t, segment.Fences(in), segment.Fences(got), "fence bytes must never change")
	assert.Contains(t, got, "panic: maybe nil maybe")
}

func TestUpsertSectionMergesEmptyBody(t *testing.T) {
	env := testEnv(gaps.IntentGeneral, policy.TargetChatModel, policy.ScenarioGeneral)
	in := "### Deliverables\n\n### Goal\nShip it."
	got := Apply(in, env, KindDeliverables)

	assert.Equal(t, 1, strings.Count(got, "### Deliverables"))
	assert.Contains(t, got, "- The answer itself.")
}
