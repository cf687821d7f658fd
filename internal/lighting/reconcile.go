package lighting

import "github.com/cubesphere-engine/terra/internal/voxel"

// OppositeFace returns the face light exits a chunk through's counterpart
// on the chunk it enters: light leaving through a chunk's +X face arrives
// on its +X neighbor's -X face, and so on.
func OppositeFace(f voxel.BorderFace) voxel.BorderFace {
	switch f {
	case voxel.BorderPosX:
		return voxel.BorderNegX
	case voxel.BorderNegX:
		return voxel.BorderPosX
	case voxel.BorderPosY:
		return voxel.BorderNegY
	case voxel.BorderNegY:
		return voxel.BorderPosY
	case voxel.BorderPosZ:
		return voxel.BorderNegZ
	case voxel.BorderNegZ:
		return voxel.BorderPosZ
	}
	panic("lighting: invalid border face")
}

// NeighborAddress returns the chunk address adjacent to addr across face
// f, for the common case of a same-face, axis-aligned neighbor (the two
// chunks share Face and only one of CX/CY/CZ differs by one). Crossing a
// cube edge onto a different Face requires rotating the border's (a, b)
// coordinate frame to match the neighbor's own tangent orientation; this
// package does not perform that rotation; see DESIGN.md for the scope
// decision.
func NeighborAddress(addr voxel.Address, f voxel.BorderFace) voxel.Address {
	n := addr
	switch f {
	case voxel.BorderPosX:
		n.CX++
	case voxel.BorderNegX:
		n.CX--
	case voxel.BorderPosY:
		n.CY++
	case voxel.BorderNegY:
		n.CY--
	case voxel.BorderPosZ:
		n.CZ++
	case voxel.BorderNegZ:
		n.CZ--
	}
	return n
}

// boundaryCoord inverts voxel.ExtractBorder's (a, b) indexing, returning
// the local (x, y, z) of the boundary voxel at face-local coordinate
// (a, b) on the given face.
func boundaryCoord(face voxel.BorderFace, a, b int) (int, int, int) {
	const last = voxel.ChunkSize - 1
	switch face {
	case voxel.BorderPosX:
		return last, a, b
	case voxel.BorderNegX:
		return 0, a, b
	case voxel.BorderPosY:
		return a, last, b
	case voxel.BorderNegY:
		return a, 0, b
	case voxel.BorderPosZ:
		return a, b, last
	case voxel.BorderNegZ:
		return a, b, 0
	}
	panic("lighting: invalid border face")
}

// ReconcileFace seeds neighborLM from a neighboring chunk's outgoing
// border, crossing in through incomingFace (the face on the *neighbor*
// side that borders the chunk source was extracted from), then
// re-floods from whatever voxels actually increased. Block light always
// decays by 1 crossing a chunk boundary; sunlight only carries across
// without decay when the crossing is strictly downward, i.e. when the
// neighbor receives it on its +Y face (meaning the neighbor sits below
// the chunk that produced source). It returns true if any neighbor voxel
// changed, so callers can decide whether to cascade further.
func ReconcileFace(neighborLM *voxel.LightMap, neighborChunk *voxel.Chunk, opaque OpacityLookup, incomingFace voxel.BorderFace, source *voxel.BorderLightFace) bool {
	changed := false
	var seeds []point

	for a := 0; a < voxel.ChunkSize; a++ {
		for b := 0; b < voxel.ChunkSize; b++ {
			srcLight := source.Values[a*voxel.ChunkSize+b]
			x, y, z := boundaryCoord(incomingFace, a, b)
			if opaque(neighborChunk.Get(x, y, z)) {
				continue
			}

			var block uint8
			if srcLight.Block() > 0 {
				block = srcLight.Block() - 1
			}

			var sky uint8
			if incomingFace == voxel.BorderPosY {
				sky = srcLight.Sky()
			} else if srcLight.Sky() > 0 {
				sky = srcLight.Sky() - 1
			}

			cur := neighborLM.Get(x, y, z)
			updated := cur
			localChanged := false
			if block > updated.Block() {
				updated = updated.WithBlock(block)
				localChanged = true
			}
			if sky > updated.Sky() {
				updated = updated.WithSky(sky)
				localChanged = true
			}
			if localChanged {
				neighborLM.Set(x, y, z, updated)
				seeds = append(seeds, point{x, y, z})
				changed = true
			}
		}
	}

	if len(seeds) > 0 {
		propagate(neighborLM, neighborChunk, opaque, blockChannel, seeds)
		propagate(neighborLM, neighborChunk, opaque, skyChannel, seeds)
	}
	return changed
}

// ChunkProvider resolves a chunk address to its current voxel data and
// light map, as held by whatever storage the caller (typically the
// scheduler's result consumer) maintains. A false second return means the
// neighbor isn't loaded, and the cascade simply stops at that boundary.
type ChunkProvider interface {
	Chunk(addr voxel.Address) (*voxel.Chunk, *voxel.LightMap, bool)
}

// maxCascadeHops bounds the cross-chunk reconcile cascade, mirroring the
// 15-hop bound a light value can travel within one chunk: a change can
// only still be propagating outward after 15 chunk-to-chunk hops if each
// hop carried the maximum level across with no decay, which sunlight's
// vertical rule permits but nothing else does.
const maxCascadeHops = 15

// Reconcile propagates a just-recomputed chunk's outgoing borders into
// its already-loaded same-face neighbors, and cascades into further
// neighbors whose own borders changed as a result, up to maxCascadeHops
// deep. It returns every neighbor address that was touched.
func Reconcile(provider ChunkProvider, opaque OpacityLookup, origin voxel.Address) []voxel.Address {
	if _, _, ok := provider.Chunk(origin); !ok {
		return nil
	}

	type work struct {
		addr voxel.Address
		hop  int
	}

	var touched []voxel.Address
	visited := map[voxel.Address]bool{origin: true}
	queue := []work{{origin, 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.hop >= maxCascadeHops {
			continue
		}

		_, curLM, ok := provider.Chunk(cur.addr)
		if !ok {
			continue
		}

		for face := voxel.BorderFace(0); face <= voxel.BorderNegZ; face++ {
			border := voxel.ExtractBorder(curLM, face)
			neighborAddr := NeighborAddress(cur.addr, face)
			neighborChunk, neighborLM, ok := provider.Chunk(neighborAddr)
			if !ok {
				continue
			}
			incoming := OppositeFace(face)
			if !ReconcileFace(neighborLM, neighborChunk, opaque, incoming, border) {
				continue
			}
			if !visited[neighborAddr] {
				visited[neighborAddr] = true
				touched = append(touched, neighborAddr)
			}
			queue = append(queue, work{neighborAddr, cur.hop + 1})
		}
	}

	return touched
}
