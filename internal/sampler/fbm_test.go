package sampler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaxAmplitudeGeometricSeries(t *testing.T) {
	p := FBmParams{Octaves: 3, Persistence: 0.5, Amplitude: 10}
	// 10 * (1 + 0.5 + 0.25) = 17.5
	require.InDelta(t, 17.5, p.MaxAmplitude(), 1e-9)
}

func TestFBmIsDeterministic(t *testing.T) {
	field := NewField(42)
	p := FBmParams{Octaves: 4, Frequency: 0.1, Persistence: 0.5, Lacunarity: 2, Amplitude: 1}
	a := FBm(field, p, 0.3, 0.4, 0.5)
	b := FBm(field, p, 0.3, 0.4, 0.5)
	require.Equal(t, a, b)
}

func TestFBmFixedPointMatchesFloatClosely(t *testing.T) {
	field := NewField(7)
	base := FBmParams{Octaves: 3, Frequency: 0.2, Persistence: 0.5, Lacunarity: 2, Amplitude: 1}
	fixed := base
	fixed.Fixed = true

	a := FBm(field, base, 0.1, 0.2, 0.3)
	b := FBm(field, fixed, 0.1, 0.2, 0.3)
	require.InDelta(t, a, b, 1e-6)
}
