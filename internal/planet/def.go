package planet

import (
	"errors"
	"fmt"

	"github.com/cubesphere-engine/terra/internal/voxel"
)

// ErrInvalidConfig is the sentinel wrapped by ConfigError.
var ErrInvalidConfig = errors.New("planet: invalid configuration")

// ConfigError names the field that failed validation in NewDef.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("planet: invalid config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// HeightmapParams configures the L1 heightmap fBm sampler.
type HeightmapParams struct {
	Octaves     int
	Frequency   float64
	Persistence float64
	Lacunarity  float64
	Amplitude   float64
	SeedOffset  uint64
}

// Def is the frozen per-planet configuration every sampler component
// samples against. It is constructed once at world start via NewDef and
// never mutated afterward, so it may be shared by reference across
// worker goroutines without synchronization.
type Def struct {
	WorldSeed uint64

	PlanetRadius float64
	SeaLevel     float64
	MinHeight    float64
	MaxHeight    float64

	// VoxelSize is the world-unit edge length of one voxel. Chunk
	// addresses' radial index (CY) and tangent indices (CX, CZ) are
	// converted to world units by multiplying by VoxelSize; FaceSpanVoxels
	// derives the tangent-plane wrap width from it and PlanetRadius.
	//
	// Chunk edge length itself is not configurable here: it is the
	// compile-time voxel.ChunkSize constant, since voxel.Chunk's storage
	// and Index are both built around that fixed dimension.
	VoxelSize float64

	Heightmap HeightmapParams
	Biomes    *BiomeRegistry
	Diagram   WhittakerDiagram
	Elevation ElevationOverrides

	VoxelTypes *VoxelTypeRegistry
	StoneVoxel voxel.TypeID

	Ores  []OreDistribution
	Caves CaveParams

	Features     []FeatureDef
	FeatureRules []BiomeFeatureRule

	// DeterministicFixedPoint, when set, routes fBm accumulation through
	// detgen.Fixed64 instead of float64 summation, trading a small amount
	// of precision for bit-exact cross-platform sums.
	DeterministicFixedPoint bool

	frozen bool
}

// NewDef validates cfg and returns a frozen Def ready for sharing across
// scheduler workers. The registries referenced by cfg are frozen as a
// side effect, matching the "construction-time validation, then
// immutable" contract described for VoxelTypeRegistry and BiomeRegistry.
func NewDef(cfg Def) (*Def, error) {
	d := cfg
	if err := d.validate(); err != nil {
		return nil, err
	}
	if d.Biomes != nil {
		d.Biomes.Freeze()
	}
	if d.VoxelTypes != nil {
		d.VoxelTypes.Freeze()
	}
	d.frozen = true
	return &d, nil
}

func (d *Def) validate() error {
	if d.PlanetRadius <= 0 {
		return &ConfigError{Field: "PlanetRadius", Reason: "must be positive"}
	}
	if d.MinHeight >= d.MaxHeight {
		return &ConfigError{Field: "MinHeight/MaxHeight", Reason: "MinHeight must be less than MaxHeight"}
	}
	if d.SeaLevel < d.MinHeight || d.SeaLevel > d.MaxHeight {
		return &ConfigError{Field: "SeaLevel", Reason: "must fall within [MinHeight, MaxHeight]"}
	}
	if d.VoxelSize <= 0 {
		return &ConfigError{Field: "VoxelSize", Reason: "must be positive"}
	}
	if d.Biomes == nil || d.Biomes.Len() == 0 {
		return &ConfigError{Field: "Biomes", Reason: "must register at least one biome"}
	}
	if d.VoxelTypes == nil || d.VoxelTypes.Len() == 0 {
		return &ConfigError{Field: "VoxelTypes", Reason: "must register at least air"}
	}
	if d.Heightmap.Octaves <= 0 {
		return &ConfigError{Field: "Heightmap.Octaves", Reason: "must be positive"}
	}
	if d.Heightmap.Persistence <= 0 || d.Heightmap.Persistence >= 1 {
		return &ConfigError{Field: "Heightmap.Persistence", Reason: "must fall in (0, 1)"}
	}
	for _, rule := range d.FeatureRules {
		if !d.hasFeature(rule.Feature) {
			return &ConfigError{Field: "FeatureRules", Reason: fmt.Sprintf("references undefined feature %q", rule.Feature)}
		}
	}
	return nil
}

func (d *Def) hasFeature(name string) bool {
	for _, f := range d.Features {
		if f.Name == name {
			return true
		}
	}
	return false
}

// Frozen reports whether d came from a successful NewDef call.
func (d *Def) Frozen() bool { return d.frozen }

// FaceSpanVoxels returns the voxel width of one full cube face edge,
// derived from the circumscribing cube of PlanetRadius: a cube
// circumscribing a sphere of radius r has side length 2r.
func (d *Def) FaceSpanVoxels() float64 {
	return 2 * d.PlanetRadius / d.VoxelSize
}
