package lighting

import "github.com/cubesphere-engine/terra/internal/voxel"

// AddBlockSource raises the block-light channel at (x, y, z) to at least
// emission and floods the increase outward. Used when a single emissive
// voxel is placed into an already-lit chunk, without recomputing the
// whole chunk via ComputeInternal.
func AddBlockSource(lm *voxel.LightMap, chunk *voxel.Chunk, opaque OpacityLookup, x, y, z int, emission uint8) {
	l := lm.Get(x, y, z)
	if emission <= l.Block() {
		return
	}
	lm.Set(x, y, z, l.WithBlock(emission))
	propagate(lm, chunk, opaque, blockChannel, []point{{x, y, z}})
}

// RemoveBlockSource clears a block-light source at (x, y, z) and restores
// the light map to what it would be without that source, using the
// standard two-phase mark-and-reseed algorithm: first it darkens every
// voxel whose current light level could only have been reached through
// the removed source, then it re-floods from the surviving bright
// boundary voxels (values that must originate from some other source).
func RemoveBlockSource(lm *voxel.LightMap, chunk *voxel.Chunk, opaque OpacityLookup, x, y, z int) {
	removeSource(lm, chunk, opaque, blockChannel, x, y, z)
}

// RemoveSkySource is the sunlight-channel counterpart of RemoveBlockSource,
// used when an opaque voxel is placed where sky light previously reached
// (occluding the column) and the affected region must re-derive its
// sunlight from whatever still reaches it.
func RemoveSkySource(lm *voxel.LightMap, chunk *voxel.Chunk, opaque OpacityLookup, x, y, z int) {
	removeSource(lm, chunk, opaque, skyChannel, x, y, z)
}

type removalNode struct {
	x, y, z int
	level   uint8
}

func removeSource(lm *voxel.LightMap, chunk *voxel.Chunk, opaque OpacityLookup, ch channel, x, y, z int) {
	cur := lm.Get(x, y, z)
	oldVal := ch.get(cur)
	if oldVal == 0 {
		return
	}
	lm.Set(x, y, z, ch.with(cur, 0))

	removalQueue := []removalNode{{x, y, z, oldVal}}
	var reseed []point

	for len(removalQueue) > 0 {
		cur := removalQueue[0]
		removalQueue = removalQueue[1:]

		for _, d := range neighborDirs {
			nx, ny, nz := cur.x+d.dx, cur.y+d.dy, cur.z+d.dz
			if !inBounds(nx, ny, nz) || opaque(chunk.Get(nx, ny, nz)) {
				continue
			}
			nLight := lm.Get(nx, ny, nz)
			nVal := ch.get(nLight)
			if nVal == 0 {
				continue
			}
			expected := decay(cur.level, ch, d)
			if nVal <= expected {
				lm.Set(nx, ny, nz, ch.with(nLight, 0))
				removalQueue = append(removalQueue, removalNode{nx, ny, nz, nVal})
			} else {
				reseed = append(reseed, point{nx, ny, nz})
			}
		}
	}

	propagate(lm, chunk, opaque, ch, reseed)
}
