package lighting

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cubesphere-engine/terra/internal/voxel"
)

func TestReconcileFaceCarriesBlockLightAcrossBoundaryWithDecay(t *testing.T) {
	source := voxel.NewChunk(voxel.Address{CX: 0})
	source.Set(voxel.ChunkSize-1, 5, 5, glowT)
	emissive := voxel.EmissiveSet{{X: voxel.ChunkSize - 1, Y: 5, Z: 5, Emission: 10}}
	sourceLM := ComputeInternal(source, emissive, opacity)
	border := voxel.ExtractBorder(sourceLM, voxel.BorderPosX)

	neighbor := voxel.NewChunk(voxel.Address{CX: 1})
	neighborLM := voxel.NewLightMap(neighbor.Addr)

	changed := ReconcileFace(neighborLM, neighbor, opacity, voxel.BorderNegX, border)
	require.True(t, changed)

	got := sourceLM.Get(voxel.ChunkSize-1, 5, 5).Block()
	require.Equal(t, got-1, neighborLM.Get(0, 5, 5).Block())
}

func TestReconcileFaceSunlightNoDecayDownward(t *testing.T) {
	source := voxel.NewChunk(voxel.Address{CY: 1})
	sourceLM := ComputeInternal(source, nil, opacity) // open chunk: sky == 15 everywhere
	border := voxel.ExtractBorder(sourceLM, voxel.BorderNegY)

	below := voxel.NewChunk(voxel.Address{CY: 0})
	belowLM := voxel.NewLightMap(below.Addr)

	ReconcileFace(belowLM, below, opacity, voxel.BorderPosY, border)

	require.Equal(t, uint8(15), belowLM.Get(3, voxel.ChunkSize-1, 3).Sky())
}

type fakeProvider struct {
	chunks map[voxel.Address]*voxel.Chunk
	lights map[voxel.Address]*voxel.LightMap
}

func (p *fakeProvider) Chunk(addr voxel.Address) (*voxel.Chunk, *voxel.LightMap, bool) {
	c, ok := p.chunks[addr]
	if !ok {
		return nil, nil, false
	}
	return c, p.lights[addr], true
}

func TestReconcileCascadesIntoLoadedNeighbor(t *testing.T) {
	addrA := voxel.Address{CX: 0}
	addrB := voxel.Address{CX: 1}

	a := voxel.NewChunk(addrA)
	a.Set(voxel.ChunkSize-1, 5, 5, glowT)
	emissive := voxel.EmissiveSet{{X: voxel.ChunkSize - 1, Y: 5, Z: 5, Emission: 10}}
	lmA := ComputeInternal(a, emissive, opacity)

	b := voxel.NewChunk(addrB)
	lmB := voxel.NewLightMap(addrB)

	provider := &fakeProvider{
		chunks: map[voxel.Address]*voxel.Chunk{addrA: a, addrB: b},
		lights: map[voxel.Address]*voxel.LightMap{addrA: lmA, addrB: lmB},
	}

	touched := Reconcile(provider, opacity, addrA)
	require.Contains(t, touched, addrB)
	require.Greater(t, lmB.Get(0, 5, 5).Block(), uint8(0))
}
