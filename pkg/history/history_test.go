package history

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptforge/pkg/scoring"
)

func TestPromptsEmptyStore(t *testing.T) {
	s := NewStore(t.TempDir())
	prompts, err := s.Prompts()
	require.NoError(t, err)
	assert.Empty(t, prompts, "a missing history file is an empty history")
}

func TestAddNewestFirst(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.Add("first"))
	require.NoError(t, s.Add("second"))
	require.NoError(t, s.Add("third"))

	prompts, err := s.Prompts()
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "second", "first"}, prompts)
}

func TestAddTrimsToCap(t *testing.T) {
	s := NewStore(t.TempDir())
	for i := 0; i < MaxPrompts+10; i++ {
		require.NoError(t, s.Add(fmt.Sprintf("prompt %d", i)))
	}

	prompts, err := s.Prompts()
	require.NoError(t, err)
	assert.Len(t, prompts, MaxPrompts)
	assert.Equal(t, fmt.Sprintf("prompt %d", MaxPrompts+9), prompts[0], "newest survives the trim")
	assert.Equal(t, "prompt 10", prompts[MaxPrompts-1], "oldest beyond the cap is dropped")
}

func TestWeightsRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	w, err := s.LoadWeights()
	require.NoError(t, err)
	assert.Nil(t, w, "no persisted vector yet")

	tuned := scoring.Default()
	tuned.OutputFormat = 11
	require.NoError(t, s.SaveWeights(tuned))

	w, err = s.LoadWeights()
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, tuned, *w)
}

func TestLoadWeightsClamps(t *testing.T) {
	s := NewStore(t.TempDir())
	out := scoring.Weights{OutputFormat: 99, Contradiction: -99}
	require.NoError(t, s.SaveWeights(out))

	w, err := s.LoadWeights()
	require.NoError(t, err)
	require.NotNil(t, w)
	assert.Equal(t, 12, w.OutputFormat, "out-of-range values are clamped on load")
	assert.Equal(t, -12, w.Contradiction)
}

func TestResetWeights(t *testing.T) {
	s := NewStore(t.TempDir())
	require.NoError(t, s.ResetWeights(), "resetting a missing vector is fine")

	require.NoError(t, s.SaveWeights(scoring.Default()))
	require.NoError(t, s.ResetWeights())

	w, err := s.LoadWeights()
	require.NoError(t, err)
	assert.Nil(t, w)
}
