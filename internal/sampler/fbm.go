package sampler

import "github.com/cubesphere-engine/terra/internal/detgen"

// FBmParams controls fractal Brownian motion summation over a Field:
// octaves layers at frequency*lacunarity^i and amplitude*persistence^i,
// summed.
type FBmParams struct {
	Octaves     int
	Frequency   float64
	Persistence float64
	Lacunarity  float64
	Amplitude   float64

	// Fixed routes accumulation through detgen.Fixed64 instead of
	// float64, for bit-exact cross-platform sums. Ordinary sampling
	// leaves this false.
	Fixed bool
}

// MaxAmplitude returns the analytical maximum magnitude of an FBm sum —
// amplitude * sum(persistence^i) for i in [0, Octaves) — used to
// normalize a raw sum back into the noise source's own [-1, 1] range.
func (p FBmParams) MaxAmplitude() float64 {
	sum := 0.0
	amp := 1.0
	for i := 0; i < p.Octaves; i++ {
		sum += amp
		amp *= p.Persistence
	}
	return p.Amplitude * sum
}

// FBm sums p.Octaves layers of field sampled at (x, y, z). The 3D point
// must already be on (or derived from) the unit sphere, never a
// face-local coordinate, to keep face-edge and corner samples continuous.
func FBm(field Field, p FBmParams, x, y, z float64) float64 {
	if p.Fixed {
		return fbmFixed(field, p, x, y, z)
	}
	freq := p.Frequency
	amp := p.Amplitude
	sum := 0.0
	for i := 0; i < p.Octaves; i++ {
		sum += field.Eval(x*freq, y*freq, z*freq) * amp
		freq *= p.Lacunarity
		amp *= p.Persistence
	}
	return sum
}

func fbmFixed(field Field, p FBmParams, x, y, z float64) float64 {
	freq := p.Frequency
	amp := detgen.FromFloat64(p.Amplitude)
	persistence := detgen.FromFloat64(p.Persistence)
	sum := detgen.Fixed64(0)
	for i := 0; i < p.Octaves; i++ {
		sample := detgen.FromFloat64(field.Eval(x*freq, y*freq, z*freq))
		sum = sum.Add(sample.Mul(amp))
		freq *= p.Lacunarity
		amp = amp.Mul(persistence)
	}
	return sum.Float64()
}
