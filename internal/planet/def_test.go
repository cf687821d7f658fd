package planet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubesphere-engine/terra/internal/voxel"
)

func validBaseDef() Def {
	biomes := NewBiomeRegistry()
	biomes.Register(BiomeDef{Name: "plains", SurfaceVoxel: voxel.TypeID(1)})

	voxels := NewVoxelTypeRegistry()
	voxels.Register(voxel.TypeDef{Name: "stone", Solid: true})

	return Def{
		WorldSeed:    42,
		PlanetRadius: 1000,
		SeaLevel:     0,
		MinHeight:    -200,
		MaxHeight:    200,
		VoxelSize:    1,
		Heightmap: HeightmapParams{
			Octaves: 4, Frequency: 0.01, Persistence: 0.5, Lacunarity: 2, Amplitude: 100,
		},
		Biomes:     biomes,
		VoxelTypes: voxels,
	}
}

func TestNewDefAcceptsValidConfig(t *testing.T) {
	d, err := NewDef(validBaseDef())
	require.NoError(t, err)
	require.True(t, d.Frozen())
	require.True(t, d.Biomes.Len() > 0)
}

func TestNewDefFreezesReferencedRegistries(t *testing.T) {
	cfg := validBaseDef()
	d, err := NewDef(cfg)
	require.NoError(t, err)

	_, err = d.Biomes.Register(BiomeDef{Name: "desert"})
	require.Error(t, err, "registry must be frozen once embedded in a Def")
}

func TestNewDefRejectsNonPositiveRadius(t *testing.T) {
	cfg := validBaseDef()
	cfg.PlanetRadius = 0
	_, err := NewDef(cfg)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestNewDefRejectsInvertedHeightRange(t *testing.T) {
	cfg := validBaseDef()
	cfg.MinHeight = 200
	cfg.MaxHeight = -200
	_, err := NewDef(cfg)
	require.Error(t, err)
}

func TestNewDefRejectsSeaLevelOutsideRange(t *testing.T) {
	cfg := validBaseDef()
	cfg.SeaLevel = 9999
	_, err := NewDef(cfg)
	require.Error(t, err)
}

func TestNewDefRejectsEmptyBiomeRegistry(t *testing.T) {
	cfg := validBaseDef()
	cfg.Biomes = NewBiomeRegistry()
	_, err := NewDef(cfg)
	require.Error(t, err)
}

func TestNewDefRejectsPersistenceOutOfRange(t *testing.T) {
	cfg := validBaseDef()
	cfg.Heightmap.Persistence = 1.5
	_, err := NewDef(cfg)
	require.Error(t, err)
}

func TestNewDefRejectsFeatureRuleReferencingUnknownFeature(t *testing.T) {
	cfg := validBaseDef()
	cfg.FeatureRules = []BiomeFeatureRule{{Biome: BiomeID(0), Feature: "oak_tree", Density: 1}}
	_, err := NewDef(cfg)
	require.Error(t, err)
}

func TestNewDefAcceptsKnownFeatureRule(t *testing.T) {
	cfg := validBaseDef()
	cfg.Features = []FeatureDef{{Name: "oak_tree", MinSpacing: 4, MaxAttempts: 20}}
	cfg.FeatureRules = []BiomeFeatureRule{{Biome: BiomeID(0), Feature: "oak_tree", Density: 1}}
	_, err := NewDef(cfg)
	require.NoError(t, err)
}
