package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"promptforge/pkg/analysis"
)

func TestLearnTooFewSamples(t *testing.T) {
	an := analysis.NewAnalyzer()
	prompts := []string{"fix the bug", "write a poem", "summarize this", "plan a trip"}
	assert.Equal(t, Default(), Learn(an, prompts), "below the sample floor the defaults stand")
}

func TestLearnRaisesStructureWeights(t *testing.T) {
	an := analysis.NewAnalyzer()
	prompts := []string{
		"fix the login bug",
		"add a retry button",
		"summarize the meeting notes",
		"plan the quarterly report",
		"draft the release announcement",
		"clean up the changelog",
	}
	w := Learn(an, prompts)

	d := Default()
	assert.Greater(t, w.OutputFormat, d.OutputFormat, "every sample lacked an output format")
	assert.Greater(t, w.Deliverables, d.Deliverables, "every sample lacked enumerated deliverables")
	assert.LessOrEqual(t, w.OutputFormat, 12)
	assert.LessOrEqual(t, w.Deliverables, 10)
	assert.Equal(t, d.Hedging, w.Hedging, "hedging is not a learned factor")
	assert.Equal(t, d.Contradiction, w.Contradiction, "no contradictions were observed")
}

func TestLearnContradictionPenalty(t *testing.T) {
	an := analysis.NewAnalyzer()
	prompts := make([]string, 5)
	for i := range prompts {
		prompts[i] = "Be concise but cover the topic in its entirety."
	}
	w := Learn(an, prompts)

	assert.Less(t, w.Contradiction, Default().Contradiction)
	assert.GreaterOrEqual(t, w.Contradiction, -12, "clamping still holds after learning")
}
