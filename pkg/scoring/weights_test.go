package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamped(t *testing.T) {
	tests := []struct {
		name string
		in   Weights
		want Weights
	}{
		{
			name: "defaults pass through",
			in:   Default(),
			want: Default(),
		},
		{
			name: "overshoot is pulled to range edges",
			in:   Weights{OutputFormat: 99, Requirements: -1, Hedging: 5, Contradiction: -99, Length: 3},
			want: Weights{OutputFormat: 12, Requirements: 0, Hedging: 0, Contradiction: -12, Length: 0},
		},
		{
			name: "zero vector is valid",
			in:   Weights{},
			want: Weights{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Clamped()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, got.Clamped(), "Clamped must be idempotent")
		})
	}
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "8|6|6|6|5|5|4|3|-4|-6|-3|-5", Default().Signature())
	assert.Equal(t, "0|0|0|0|0|0|0|0|0|0|0|0", Weights{}.Signature())

	a := Default()
	b := Default()
	b.Hedging = -5
	assert.NotEqual(t, a.Signature(), b.Signature())
}
