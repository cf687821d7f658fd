package sampler

import "github.com/cubesphere-engine/terra/internal/cubesphere"

// HeightmapSampler maps a unit-sphere point to a terrain height measured
// from sea level.
type HeightmapSampler struct {
	field  Field
	params FBmParams
	min    float64
	max    float64
}

// NewHeightmapSampler builds a sampler from a world seed and the
// heightmap's own seed offset, clamping output to [min, max].
func NewHeightmapSampler(worldSeed uint64, seedOffset uint64, params FBmParams, min, max float64) HeightmapSampler {
	return HeightmapSampler{
		field:  NewField(worldSeed + seedOffset),
		params: params,
		min:    min,
		max:    max,
	}
}

// Height samples the height at p, a unit-sphere point. If the configured
// amplitude is zero the result is the midpoint of [min, max], independent
// of location, so a flat planet never divides by a zero amplitude range.
func (s HeightmapSampler) Height(p cubesphere.Vec3) float64 {
	if s.params.Amplitude == 0 {
		return (s.min + s.max) / 2
	}
	raw := FBm(s.field, s.params, p.X, p.Y, p.Z)
	maxAmp := s.params.MaxAmplitude()

	normalized := 0.5
	if maxAmp != 0 {
		// raw/maxAmp falls in [-1, 1]; remap to [0, 1].
		normalized = (raw/maxAmp + 1) / 2
		if normalized < 0 {
			normalized = 0
		} else if normalized > 1 {
			normalized = 1
		}
	}

	h := s.min + normalized*(s.max-s.min)
	if h < s.min {
		h = s.min
	} else if h > s.max {
		h = s.max
	}
	return h
}
