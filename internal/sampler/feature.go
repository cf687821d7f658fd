package sampler

import (
	"github.com/cespare/xxhash/v2"

	"github.com/cubesphere-engine/terra/internal/planet"
)

// FeaturePlacement is one accepted feature candidate within a chunk's 2D
// face-local footprint: Local.X/Local.Y are voxel-unit offsets in
// [0, chunkSize).
type FeaturePlacement struct {
	Local   Point2D
	Feature *planet.FeatureDef
}

// FeaturePlacer consumes Poisson-disk candidates, filtering by biome,
// slope, and sea level before a candidate is accepted, as a discrete
// per-chunk placement pass.
type FeaturePlacer struct {
	def *planet.Def
}

// NewFeaturePlacer builds a placer over a frozen planet definition.
func NewFeaturePlacer(def *planet.Def) FeaturePlacer {
	return FeaturePlacer{def: def}
}

// Place returns every accepted placement within one chunk. seed is a
// sub-seed derived separately from the chunk's main generation seed, so
// the feature Poisson stream never competes with terrain sampling for
// random draws. heightAt and biomeAt sample the already-computed
// per-column height/biome at a chunk-local (x, z).
func (p FeaturePlacer) Place(
	seed uint64,
	chunkSize int,
	heightAt func(x, z float64) float64,
	biomeAt func(x, z float64) planet.BiomeID,
) []FeaturePlacement {
	region := Region{MinX: 0, MinY: 0, MaxX: float64(chunkSize), MaxY: float64(chunkSize)}

	var out []FeaturePlacement
	for _, rule := range p.def.FeatureRules {
		feature := p.lookupFeature(rule.Feature)
		if feature == nil || rule.Density <= 0 || feature.MinSpacing <= 0 {
			continue
		}

		candidateSeed := seed ^ featureNameSeed(rule.Feature)
		candidates := PoissonDisk(candidateSeed, region, feature.MinSpacing, feature.MaxAttempts)

		for _, c := range candidates {
			biome := biomeAt(c.X, c.Y)
			if biome != rule.Biome {
				continue
			}
			if !biomeAllowed(feature.AllowedBiomes, biome) {
				continue
			}
			h := heightAt(c.X, c.Y)
			if h < feature.MinElevation {
				continue
			}
			if feature.MaxSlope > 0 && !withinSlope(heightAt, c, feature.MaxSlope) {
				continue
			}
			out = append(out, FeaturePlacement{Local: c, Feature: feature})
		}
	}
	return out
}

func (p FeaturePlacer) lookupFeature(name string) *planet.FeatureDef {
	for i := range p.def.Features {
		if p.def.Features[i].Name == name {
			return &p.def.Features[i]
		}
	}
	return nil
}

func biomeAllowed(allowed []planet.BiomeID, biome planet.BiomeID) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, b := range allowed {
		if b == biome {
			return true
		}
	}
	return false
}

// withinSlope rejects a candidate whose immediate neighborhood height
// delta exceeds maxSlope, a coarse stand-in for checking the whole
// footprint's flatness.
func withinSlope(heightAt func(x, z float64) float64, c Point2D, maxSlope float64) bool {
	h0 := heightAt(c.X, c.Y)
	for _, d := range [4][2]float64{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		h := heightAt(c.X+d[0], c.Y+d[1])
		delta := h - h0
		if delta < 0 {
			delta = -delta
		}
		if delta > maxSlope {
			return false
		}
	}
	return true
}

// featureNameSeed derives a sub-seed offset from a feature's name so
// distinct features placed in the same chunk draw from independent
// Poisson-disk streams.
func featureNameSeed(name string) uint64 {
	return xxhash.Sum64String(name)
}
