// Command terragen generates a handful of chunks around a center address
// through the full pipeline (planet definition -> chunk generator ->
// scheduler pool) and prints palette and timing stats for each.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cubesphere-engine/terra/internal/chunkgen"
	"github.com/cubesphere-engine/terra/internal/config"
	"github.com/cubesphere-engine/terra/internal/planet"
	"github.com/cubesphere-engine/terra/internal/profiling"
	"github.com/cubesphere-engine/terra/internal/scheduler"
	"github.com/cubesphere-engine/terra/internal/voxel"
)

func main() {
	seed := flag.Uint64("seed", 1, "world seed")
	radius := flag.Int("radius", config.GetDemoRadius(), "chunk radius around the origin to generate")
	workers := flag.Int("workers", config.GetWorkers(), "worker pool size")
	flag.Parse()

	def, err := buildDemoPlanet(*seed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "terragen:", err)
		os.Exit(1)
	}

	gen := chunkgen.NewGenerator(def)
	pool := scheduler.NewPool(gen, *workers, config.GetQueueCapacity(), config.GetResultCapacity())
	defer pool.Close()

	profiling.ResetWindow()
	addrs := addressesAroundOrigin(*radius)
	for i, addr := range addrs {
		task := scheduler.GenerationTask{
			Address:  addr,
			Seed:     *seed,
			Priority: uint64(i), // submission order: the (-radius, -radius) corner chunk was appended first
		}
		for {
			if err := pool.Submit(task); err == nil {
				break
			}
			time.Sleep(time.Millisecond)
		}
	}

	remaining := len(addrs)
	for remaining > 0 {
		for _, r := range pool.DrainResults() {
			remaining--
			printResult(r)
		}
		if remaining > 0 {
			time.Sleep(time.Millisecond)
		}
	}

	fmt.Printf("pool %s stage totals: %s\n", pool.ID(), profiling.TopN(5))
}

func printResult(r scheduler.GeneratedChunk) {
	fmt.Printf("chunk %+v: palette=%d emissive=%d generation_time_us=%d\n",
		r.Address, len(r.Chunk.Palette), len(r.Emissive), r.GenerationTimeUs)
}

func addressesAroundOrigin(radius int) []voxel.Address {
	var out []voxel.Address
	for cx := -radius; cx <= radius; cx++ {
		for cz := -radius; cz <= radius; cz++ {
			out = append(out, voxel.Address{Face: uint8(0), CX: int32(cx), CY: 0, CZ: int32(cz)})
		}
	}
	return out
}

// buildDemoPlanet assembles a small but complete planet.Def exercising
// every L1 sampler: one ore, one cave band, one biome, one tree feature.
func buildDemoPlanet(seed uint64) (*planet.Def, error) {
	voxels := planet.NewVoxelTypeRegistry()
	stone, err := voxels.Register(voxel.TypeDef{Name: "stone", Solid: true})
	if err != nil {
		return nil, err
	}
	dirt, err := voxels.Register(voxel.TypeDef{Name: "dirt", Solid: true})
	if err != nil {
		return nil, err
	}
	grass, err := voxels.Register(voxel.TypeDef{Name: "grass", Solid: true})
	if err != nil {
		return nil, err
	}
	coal, err := voxels.Register(voxel.TypeDef{Name: "coal_ore", Solid: true})
	if err != nil {
		return nil, err
	}
	log, err := voxels.Register(voxel.TypeDef{Name: "oak_log", Solid: true})
	if err != nil {
		return nil, err
	}

	biomes := planet.NewBiomeRegistry()
	plains, err := biomes.Register(planet.BiomeDef{
		Name: "plains", SurfaceVoxel: grass, SubsurfaceVoxel: dirt, SubsurfaceDepth: 4,
		VegetationDensity: 0.1, TreeType: "oak",
	})
	if err != nil {
		return nil, err
	}

	cfg := planet.Def{
		WorldSeed:    seed,
		PlanetRadius: 4000,
		SeaLevel:     0,
		MinHeight:    -24,
		MaxHeight:    48,
		VoxelSize:    1,
		Heightmap: planet.HeightmapParams{
			Octaves: 5, Frequency: 0.006, Persistence: 0.5, Lacunarity: 2.1, Amplitude: 36,
		},
		Biomes:  biomes,
		Diagram: planet.WhittakerDiagram{Fallback: plains},
		VoxelTypes: voxels,
		StoneVoxel: stone,
		Ores: []planet.OreDistribution{
			{Name: "coal", Voxel: coal, MinDepth: 2, MaxDepth: 40, VeinScale: 0.1, NoiseThreshold: 0.75, SeedOffset: 101},
		},
		Caves: planet.CaveParams{Scale: 0.05, Threshold: 0.72, SeaFloorMargin: 4, SeedOffset: 202},
		Features: []planet.FeatureDef{
			{
				Name: "oak_tree", MinSpacing: 6, MaxAttempts: 64, MaxSlope: 2, MinElevation: 0.5,
				AllowedBiomes: []planet.BiomeID{plains},
				Voxels: []planet.FeatureVoxel{
					{DX: 0, DY: 0, DZ: 0, Voxel: log},
					{DX: 0, DY: 1, DZ: 0, Voxel: log},
					{DX: 0, DY: 2, DZ: 0, Voxel: log},
				},
			},
		},
		FeatureRules: []planet.BiomeFeatureRule{
			{Biome: plains, Feature: "oak_tree", Density: 0.02},
		},
	}

	return planet.NewDef(cfg)
}
