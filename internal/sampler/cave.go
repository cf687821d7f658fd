package sampler

import (
	"github.com/cubesphere-engine/terra/internal/cubesphere"
	"github.com/cubesphere-engine/terra/internal/planet"
)

// CaveField carves solid voxels to Air via a thresholded 3D simplex
// field, kept as its own component separate from terrain fill so its
// carve decision is unit-testable in isolation.
type CaveField struct {
	field  Field
	params planet.CaveParams
}

// NewCaveField seeds the cave field from the world seed plus the cave
// params' own offset.
func NewCaveField(worldSeed uint64, params planet.CaveParams) CaveField {
	return CaveField{field: NewField(worldSeed + params.SeedOffset), params: params}
}

// ShouldCarve reports whether the solid voxel at worldPos should become
// Air. Voxels within SeaFloorMargin of sea level (and below it) are never
// carved, so an accepted cave cannot breach a visibly shallow sea floor.
func (c CaveField) ShouldCarve(worldPos cubesphere.Vec3, seaLevel float64) bool {
	radius := worldPos.Length()
	if radius <= seaLevel && radius > seaLevel-c.params.SeaFloorMargin {
		return false
	}
	raw := c.field.Eval(worldPos.X*c.params.Scale, worldPos.Y*c.params.Scale, worldPos.Z*c.params.Scale)
	return normalize01(raw) > c.params.Threshold
}
