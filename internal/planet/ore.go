package planet

import "github.com/cubesphere-engine/terra/internal/voxel"

// OreDistribution is one entry in the ordered ore-placement list
// consulted by internal/sampler's ore distributor. First match wins;
// ordering defines priority.
type OreDistribution struct {
	Name           string
	Voxel          voxel.TypeID
	MinDepth       float64
	MaxDepth       float64
	VeinScale      float64 // noise sample-space scale
	NoiseThreshold float64 // [0,1]; normalized noise must exceed this
	SeedOffset     uint64  // added to the world seed to derive this ore's field
}

// CaveParams configures the cave carver sampler.
type CaveParams struct {
	Scale          float64
	Threshold      float64 // normalized noise must exceed this to carve
	SeaFloorMargin float64 // voxels below sea level left uncarved (safety)
	SeedOffset     uint64
}

// FeatureDef describes one placeable feature (tree, rock, ...).
type FeatureDef struct {
	Name          string
	MinSpacing    float64 // Poisson-disk min_distance
	MaxAttempts   int
	Voxels        []FeatureVoxel // offsets relative to the placement origin
	AllowedBiomes []BiomeID
	MaxSlope      float64 // max allowed local height delta across footprint
	MinElevation  float64 // must be at/above this to place (e.g. sea level)
}

// FeatureVoxel is one voxel offset within a feature's footprint.
type FeatureVoxel struct {
	DX, DY, DZ int
	Voxel      voxel.TypeID
}

// BiomeFeatureRule binds a biome to the features that may spawn in it and
// at what density.
type BiomeFeatureRule struct {
	Biome   BiomeID
	Feature string // FeatureDef.Name
	Density float64 // rule is skipped when <= 0; a positive value does not change spacing (FeatureDef.MinSpacing is used as is)
}
