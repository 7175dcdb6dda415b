package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized(t *testing.T) {
	tests := []struct {
		name string
		in   Thresholds
		want Thresholds
	}{
		{
			name: "zero value becomes defaults with cache floor",
			in:   Thresholds{},
			want: Thresholds{MinScoreGain: 1, MinStructuralGain: 2, GrowthRatioCutoff: 1.8, MaxCandidates: 16, CacheCapacity: 4},
		},
		{
			name: "valid values pass through",
			in:   Thresholds{MinScoreGain: 3, MinStructuralGain: 4, GrowthRatioCutoff: 2.5, MaxCandidates: 8, CacheCapacity: 64},
			want: Thresholds{MinScoreGain: 3, MinStructuralGain: 4, GrowthRatioCutoff: 2.5, MaxCandidates: 8, CacheCapacity: 64},
		},
		{
			name: "growth cutoff at or below one is replaced",
			in:   Thresholds{MinScoreGain: 1, MinStructuralGain: 1, GrowthRatioCutoff: 0.5, MaxCandidates: 4, CacheCapacity: 8},
			want: Thresholds{MinScoreGain: 1, MinStructuralGain: 1, GrowthRatioCutoff: 1.8, MaxCandidates: 4, CacheCapacity: 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalized())
		})
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	in := Thresholds{MinScoreGain: 2, MinStructuralGain: 3, GrowthRatioCutoff: 2.0, MaxCandidates: 10, CacheCapacity: 16}
	require.NoError(t, Save(path, in))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, got)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
