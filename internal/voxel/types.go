// Package voxel holds the chunk data model: voxel type ids, palette
// compression, voxel light, and chunk addressing. It has no dependency
// on generation or scheduling, keeping data layout separate from the
// code that produces or consumes it.
package voxel

// TypeID identifies a voxel type via the VoxelTypeRegistry. 0 is reserved
// for Air.
type TypeID uint16

// Air is the reserved id for the empty voxel.
const Air TypeID = 0

// Transparency classifies how a voxel type interacts with light and
// rendering (consumed only for light propagation here; rendering itself
// is out of scope).
type Transparency uint8

const (
	Opaque Transparency = iota
	Translucent
	Transparent
)

// TypeDef is the registry entry for one voxel type.
type TypeDef struct {
	Name          string
	Solid         bool
	Transparency  Transparency
	LightEmission uint8 // 0..15
	MaterialIndex int
}

// IsOpaque reports whether light is fully blocked by this voxel type.
func (d TypeDef) IsOpaque() bool {
	return d.Transparency == Opaque
}

// Address identifies a chunk on the cubesphere: (face, cx, cy, cz).
// Comparable, so it can be used directly as a map key.
type Address struct {
	Face uint8
	CX   int32
	CY   int32
	CZ   int32
}

// ChunkSize is the edge length of a cubic chunk in voxels.
const ChunkSize = 32

// VoxelCount is the number of voxels in one chunk.
const VoxelCount = ChunkSize * ChunkSize * ChunkSize

// Index converts local (x, y, z) in [0, ChunkSize) into a flat,
// lexicographic index: x major, then y, then z. Generation and lighting
// both iterate in this fixed order so that results are independent of
// map/slice iteration order.
func Index(x, y, z int) int {
	return (x*ChunkSize+y)*ChunkSize + z
}
