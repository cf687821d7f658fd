package sampler

import (
	"github.com/cubesphere-engine/terra/internal/cubesphere"
	"github.com/cubesphere-engine/terra/internal/planet"
)

// Distinct XOR constants give the temperature and moisture fields
// uncorrelated seeds derived from one world seed.
const (
	temperatureSeedXOR uint64 = 0x5441_4D50_4254_4D50
	moistureSeedXOR    uint64 = 0x4D4F_4953_5455_5245
)

// ClimateParams sets the sampling frequency for the temperature and
// moisture fields.
type ClimateParams struct {
	TemperatureFrequency float64
	MoistureFrequency    float64
}

// BiomeSampler classifies a unit-sphere point into a biome via a
// Whittaker diagram over independent temperature/moisture fields, then
// applies elevation-based overrides.
type BiomeSampler struct {
	temperature Field
	moisture    Field
	params      ClimateParams
	diagram     planet.WhittakerDiagram
	overrides   planet.ElevationOverrides
}

// NewBiomeSampler builds a sampler from a world seed, the diagram, and
// the elevation overrides that both live on planet.Def.
func NewBiomeSampler(worldSeed uint64, params ClimateParams, diagram planet.WhittakerDiagram, overrides planet.ElevationOverrides) BiomeSampler {
	return BiomeSampler{
		temperature: NewField(worldSeed ^ temperatureSeedXOR),
		moisture:    NewField(worldSeed ^ moistureSeedXOR),
		params:      params,
		diagram:     diagram,
		overrides:   overrides,
	}
}

func normalize01(v float64) float64 {
	n := (v + 1) / 2
	if n < 0 {
		n = 0
	} else if n > 1 {
		n = 1
	}
	return n
}

// Temperature returns the normalized [0,1] temperature field at p.
func (s BiomeSampler) Temperature(p cubesphere.Vec3) float64 {
	f := s.params.TemperatureFrequency
	return normalize01(s.temperature.Eval(p.X*f, p.Y*f, p.Z*f))
}

// Moisture returns the normalized [0,1] moisture field at p.
func (s BiomeSampler) Moisture(p cubesphere.Vec3) float64 {
	f := s.params.MoistureFrequency
	return normalize01(s.moisture.Eval(p.X*f, p.Y*f, p.Z*f))
}

// Classify returns the biome at p with elevation overrides applied.
func (s BiomeSampler) Classify(p cubesphere.Vec3, elevation float64) planet.BiomeID {
	base := s.diagram.Classify(s.Temperature(p), s.Moisture(p))
	return s.overrides.Apply(base, elevation)
}
