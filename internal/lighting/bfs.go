// Package lighting computes per-chunk block and sunlight via BFS flood
// fill and reconciles changes across adjacent chunk borders. The BFS
// shape, an explicit slice queue plus a map-based dedup set and no
// generic graph library, keeps propagation and removal as plain, easily
// traced loops.
//
// Reconciliation only covers same-face neighbors (see NeighborAddress in
// reconcile.go); a chunk sitting on a cube edge does not get light
// carried across that edge from the neighboring face, so its seam there
// stays unlit until relit locally.
package lighting

import "github.com/cubesphere-engine/terra/internal/voxel"

// OpacityLookup reports whether a voxel type blocks light propagation.
type OpacityLookup func(voxel.TypeID) bool

type point struct{ x, y, z int }

type neighborDir struct{ dx, dy, dz int }

var neighborDirs = [6]neighborDir{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// channel abstracts over the block-light and sunlight nibbles so the BFS
// and removal logic are written once and reused for both.
type channel struct {
	get             func(voxel.Light) uint8
	with            func(voxel.Light, uint8) voxel.Light
	verticalNoDecay bool // true for sunlight: propagates downward (dy == -1) without decay
}

var blockChannel = channel{
	get:  func(l voxel.Light) uint8 { return l.Block() },
	with: func(l voxel.Light, v uint8) voxel.Light { return l.WithBlock(v) },
}

var skyChannel = channel{
	get:             func(l voxel.Light) uint8 { return l.Sky() },
	with:            func(l voxel.Light, v uint8) voxel.Light { return l.WithSky(v) },
	verticalNoDecay: true,
}

// ComputeInternal runs the full internal BFS for chunk: sunlight seeded
// from a top-down per-column scan (full at every voxel with no opaque
// voxel above it within the chunk), block light seeded from emissive,
// then flooded outward by each channel's decay rule. Cross-chunk
// borders are not considered; call Reconcile afterward for that.
func ComputeInternal(chunk *voxel.Chunk, emissive voxel.EmissiveSet, opaque OpacityLookup) *voxel.LightMap {
	lm := voxel.NewLightMap(chunk.Addr)

	var skySeeds []point
	for x := 0; x < voxel.ChunkSize; x++ {
		for z := 0; z < voxel.ChunkSize; z++ {
			sky := true
			for y := voxel.ChunkSize - 1; y >= 0; y-- {
				if sky && opaque(chunk.Get(x, y, z)) {
					sky = false
				}
				if sky {
					lm.Set(x, y, z, lm.Get(x, y, z).WithSky(15))
					skySeeds = append(skySeeds, point{x, y, z})
				}
			}
		}
	}

	var blockSeeds []point
	for _, e := range emissive {
		l := lm.Get(e.X, e.Y, e.Z)
		if e.Emission > l.Block() {
			lm.Set(e.X, e.Y, e.Z, l.WithBlock(e.Emission))
		}
		blockSeeds = append(blockSeeds, point{e.X, e.Y, e.Z})
	}

	propagate(lm, chunk, opaque, skyChannel, skySeeds)
	propagate(lm, chunk, opaque, blockChannel, blockSeeds)
	return lm
}

// propagate floods ch outward from seeds, updating lm in place. A
// neighbor is updated only when the propagated value strictly exceeds
// its current value, so the result is independent of queue order: two
// arriving values at the same voxel settle on their max.
func propagate(lm *voxel.LightMap, chunk *voxel.Chunk, opaque OpacityLookup, ch channel, seeds []point) {
	queue := make([]point, 0, len(seeds))
	inQueue := make(map[int]bool, len(seeds))

	enqueue := func(p point) {
		idx := voxel.Index(p.x, p.y, p.z)
		if inQueue[idx] {
			return
		}
		inQueue[idx] = true
		queue = append(queue, p)
	}
	for _, s := range seeds {
		enqueue(s)
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		delete(inQueue, voxel.Index(cur.x, cur.y, cur.z))

		curVal := ch.get(lm.Get(cur.x, cur.y, cur.z))
		for _, d := range neighborDirs {
			nx, ny, nz := cur.x+d.dx, cur.y+d.dy, cur.z+d.dz
			if !inBounds(nx, ny, nz) || opaque(chunk.Get(nx, ny, nz)) {
				continue
			}
			propagated := decay(curVal, ch, d)
			nLight := lm.Get(nx, ny, nz)
			if propagated > ch.get(nLight) {
				lm.Set(nx, ny, nz, ch.with(nLight, propagated))
				enqueue(point{nx, ny, nz})
			}
		}
	}
}

// decay returns the value a light level propagates as across direction d:
// sunlight travelling straight down carries with no decay, everything
// else drops by 1.
func decay(val uint8, ch channel, d neighborDir) uint8 {
	if ch.verticalNoDecay && d.dy == -1 {
		return val
	}
	if val == 0 {
		return 0
	}
	return val - 1
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < voxel.ChunkSize && y >= 0 && y < voxel.ChunkSize && z >= 0 && z < voxel.ChunkSize
}
