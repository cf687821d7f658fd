// Package chunkgen composes the L1 samplers into the per-chunk generation
// algorithm: a pure function from (address, seed, planet definition) to a
// palette-compressed voxel chunk plus its emissive source set. No I/O, no
// thread-local dependency, and no mutation of state outside the returned
// chunk except the stage timings recorded through internal/profiling —
// generation on any goroutine for the same inputs produces byte-identical
// output.
package chunkgen

import (
	"github.com/cubesphere-engine/terra/internal/cubesphere"
	"github.com/cubesphere-engine/terra/internal/planet"
	"github.com/cubesphere-engine/terra/internal/profiling"
	"github.com/cubesphere-engine/terra/internal/sampler"
	"github.com/cubesphere-engine/terra/internal/voxel"
)

// featureSubSeedXOR separates the feature-placement Poisson stream from
// the chunk's main generation seed, so tree/decoration placement never
// draws from the same random stream as terrain sampling.
const featureSubSeedXOR uint64 = 0x9E3779B97F4A7C15

// Generator holds the L1 samplers built once from a frozen planet.Def.
// Generator itself is never mutated after NewGenerator returns, so one
// instance may be shared read-only across every scheduler worker.
type Generator struct {
	def *planet.Def

	heightmap sampler.HeightmapSampler
	biome     sampler.BiomeSampler
	ores      sampler.OreDistributor
	caves     sampler.CaveField
	features  sampler.FeaturePlacer
}

// NewGenerator builds every L1 sampler from def. def must already be
// frozen (the product of a successful planet.NewDef call).
func NewGenerator(def *planet.Def) *Generator {
	return &Generator{
		def: def,
		heightmap: sampler.NewHeightmapSampler(
			def.WorldSeed, def.Heightmap.SeedOffset,
			sampler.FBmParams{
				Octaves: def.Heightmap.Octaves, Frequency: def.Heightmap.Frequency,
				Persistence: def.Heightmap.Persistence, Lacunarity: def.Heightmap.Lacunarity,
				Amplitude: def.Heightmap.Amplitude, Fixed: def.DeterministicFixedPoint,
			},
			def.MinHeight, def.MaxHeight,
		),
		biome: sampler.NewBiomeSampler(
			def.WorldSeed,
			sampler.ClimateParams{TemperatureFrequency: 1, MoistureFrequency: 1},
			def.Diagram, def.Elevation,
		),
		ores:     sampler.NewOreDistributor(def.WorldSeed, def.Ores),
		caves:    sampler.NewCaveField(def.WorldSeed, def.Caves),
		features: sampler.NewFeaturePlacer(def),
	}
}

// column holds the per-(x,z) values computed once in step 2 and reused by
// every voxel in that column and by feature placement.
type column struct {
	direction cubesphere.Vec3 // unit-sphere point for this column
	elevation float64         // surface height relative to sea level
	biome     planet.BiomeID
}

// Generate runs the full per-chunk generation algorithm: columns, then
// terrain and caves, then ores, then features, then palette
// canonicalization and emissive collection.
func (g *Generator) Generate(addr voxel.Address, seed uint64) (*voxel.Chunk, voxel.EmissiveSet) {
	chunk := voxel.NewChunk(addr)
	def := g.def
	size := voxel.ChunkSize
	faceSpan := def.FaceSpanVoxels()

	cols := make([][]column, size)
	func() {
		defer profiling.Track("chunkgen.Columns")()
		for x := 0; x < size; x++ {
			cols[x] = make([]column, size)
			for z := 0; z < size; z++ {
				u := float64(int(addr.CX)*size+x) / faceSpan
				v := float64(int(addr.CZ)*size+z) / faceSpan
				dir := cubesphere.FaceCoordToSphere(cubesphere.Face(addr.Face), wrap01(u), wrap01(v))
				elevation := g.heightmap.Height(dir)
				biome := g.biome.Classify(dir, elevation)
				cols[x][z] = column{direction: dir, elevation: elevation, biome: biome}
			}
		}
	}()

	seaLevelRadius := def.PlanetRadius + def.SeaLevel

	stopTerrain := profiling.Track("chunkgen.Terrain")
	// Steps 2-3: fill terrain columns, then carve caves in the same pass
	// (a cave only ever removes a voxel this step just set to solid).
	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			col := cols[x][z]
			bdef := def.Biomes.Get(col.biome)
			surfaceRadius := def.PlanetRadius + col.elevation

			for y := 0; y < size; y++ {
				elevationY := float64(int(addr.CY)*size+y) * def.VoxelSize
				radius := def.PlanetRadius + elevationY
				worldPos := col.direction.Scale(radius)

				var t voxel.TypeID
				switch {
				case radius > surfaceRadius:
					t = voxel.Air
				case surfaceRadius-radius < def.VoxelSize:
					t = bdef.SurfaceVoxel
				case surfaceRadius-radius < float64(bdef.SubsurfaceDepth)*def.VoxelSize:
					t = bdef.SubsurfaceVoxel
				default:
					t = def.StoneVoxel
				}

				if t != voxel.Air && g.caves.ShouldCarve(worldPos, seaLevelRadius) {
					t = voxel.Air
				}

				if t != voxel.Air {
					chunk.Set(x, y, z, t)
				}
			}
		}
	}

	stopTerrain()

	// Step 4: ore placement, restricted to voxels still holding the
	// default stone filler.
	if len(def.Ores) > 0 {
		stopOres := profiling.Track("chunkgen.Ores")
		for x := 0; x < size; x++ {
			for z := 0; z < size; z++ {
				col := cols[x][z]
				surfaceRadius := def.PlanetRadius + col.elevation
				for y := 0; y < size; y++ {
					if chunk.Get(x, y, z) != def.StoneVoxel {
						continue
					}
					elevationY := float64(int(addr.CY)*size+y) * def.VoxelSize
					radius := def.PlanetRadius + elevationY
					worldPos := col.direction.Scale(radius)
					if ore, ok := g.ores.Sample(worldPos, surfaceRadius); ok {
						chunk.Set(x, y, z, ore)
					}
				}
			}
		}
		stopOres()
	}

	// Step 5: feature placement.
	stopFeatures := profiling.Track("chunkgen.Features")
	featureSeed := seed ^ featureSubSeedXOR
	heightAt := func(x, z float64) float64 { return sampleColumnField(cols, x, z, size, func(c column) float64 { return c.elevation }) }
	biomeAt := func(x, z float64) planet.BiomeID {
		return sampleColumnField(cols, x, z, size, func(c column) planet.BiomeID { return c.biome })
	}
	placements := g.features.Place(featureSeed, size, heightAt, biomeAt)
	for _, p := range placements {
		baseX := int(p.Local.X)
		baseZ := int(p.Local.Y)
		if baseX < 0 || baseX >= size || baseZ < 0 || baseZ >= size {
			continue
		}
		baseElevation := cols[baseX][baseZ].elevation
		baseY, ok := localSurfaceY(baseElevation, addr.CY, size, def.VoxelSize)
		if !ok {
			continue
		}
		for _, fv := range p.Feature.Voxels {
			vx, vy, vz := baseX+fv.DX, baseY+fv.DY, baseZ+fv.DZ
			if vx < 0 || vx >= size || vy < 0 || vy >= size || vz < 0 || vz >= size {
				continue
			}
			chunk.Set(vx, vy, vz, fv.Voxel)
		}
	}
	stopFeatures()

	// Step 6: canonicalize palette.
	chunk.Canonicalize()

	// Step 7: collect emissive sources.
	emissive := voxel.CollectEmissive(chunk, func(t voxel.TypeID) uint8 {
		return def.VoxelTypes.Get(t).LightEmission
	})

	return chunk, emissive
}

// wrap01 folds a tangent coordinate that has drifted outside [0, 1) back
// into range; chunk indices are signed and unbounded, but a single
// Generator call always resolves them against the owning face's own
// [0, 1) parameterization.
func wrap01(v float64) float64 {
	v = v - float64(int64(v))
	if v < 0 {
		v += 1
	}
	return v
}

// sampleColumnField looks up the nearest column's precomputed value for a
// feature candidate's fractional (x, z); candidates always fall within
// [0, size) by construction of the Poisson-disk region.
func sampleColumnField[T any](cols [][]column, x, z float64, size int, pick func(column) T) T {
	ix := clampIndex(int(x), size)
	iz := clampIndex(int(z), size)
	return pick(cols[ix][iz])
}

func clampIndex(i, size int) int {
	if i < 0 {
		return 0
	}
	if i >= size {
		return size - 1
	}
	return i
}

// localSurfaceY finds the chunk-local y index whose elevation is closest
// to elevation, or false if the surface does not fall within this chunk's
// vertical slice.
func localSurfaceY(elevation float64, cy int32, size int, voxelSize float64) (int, bool) {
	rel := elevation/voxelSize - float64(int(cy)*size)
	y := int(rel + 0.5)
	if y < 0 || y >= size {
		return 0, false
	}
	return y, true
}
