package sampler

import (
	"github.com/cubesphere-engine/terra/internal/cubesphere"
	"github.com/cubesphere-engine/terra/internal/planet"
	"github.com/cubesphere-engine/terra/internal/voxel"
)

// OreDistributor walks an ordered list of planet.OreDistribution entries
// and yields the first whose depth range and noise field match.
type OreDistributor struct {
	fields []Field
	defs   []planet.OreDistribution
}

// NewOreDistributor builds one noise field per ore entry, each seeded by
// the world seed plus that ore's own offset so distinct ores are
// uncorrelated.
func NewOreDistributor(worldSeed uint64, defs []planet.OreDistribution) OreDistributor {
	fields := make([]Field, len(defs))
	for i, d := range defs {
		fields[i] = NewField(worldSeed + d.SeedOffset)
	}
	return OreDistributor{fields: fields, defs: defs}
}

// Sample returns the ore voxel type that should replace stone at
// voxelPos, given the column's surface height (radius of the surface at
// this position), or (voxel.Air, false) if no entry matches. Ordering in
// defs is priority: the first match wins.
func (o OreDistributor) Sample(voxelPos cubesphere.Vec3, surfaceHeight float64) (voxel.TypeID, bool) {
	depth := surfaceHeight - voxelPos.Length()
	if depth < 0 {
		return voxel.Air, false
	}
	for i, d := range o.defs {
		if depth < d.MinDepth || depth > d.MaxDepth {
			continue
		}
		raw := o.fields[i].Eval(voxelPos.X*d.VeinScale, voxelPos.Y*d.VeinScale, voxelPos.Z*d.VeinScale)
		if normalize01(raw) > d.NoiseThreshold {
			return d.Voxel, true
		}
	}
	return voxel.Air, false
}
