package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkSetGetRoundTrip(t *testing.T) {
	c := NewChunk(Address{})
	c.Set(1, 2, 3, TypeID(5))
	require.Equal(t, TypeID(5), c.Get(1, 2, 3))
	require.Equal(t, Air, c.Get(0, 0, 0))
}

func TestChunkPaletteFirstOccurrence(t *testing.T) {
	c := NewChunk(Address{})
	c.Set(0, 0, 0, TypeID(7))
	c.Set(1, 1, 1, TypeID(3))
	c.Set(2, 2, 2, TypeID(7))

	require.Equal(t, []TypeID{Air, TypeID(7), TypeID(3)}, c.Palette)
}

func TestChunkCanonicalizeIsOrderIndependent(t *testing.T) {
	a := NewChunk(Address{})
	a.Set(5, 5, 5, TypeID(9))
	a.Set(1, 1, 1, TypeID(2))

	b := NewChunk(Address{})
	b.Set(1, 1, 1, TypeID(2))
	b.Set(5, 5, 5, TypeID(9))

	a.Canonicalize()
	b.Canonicalize()

	assert.True(t, a.Equal(b), "chunks with the same contents set in different orders must canonicalize equal")
}

func TestChunkCanonicalizeAirAtZero(t *testing.T) {
	c := NewChunk(Address{})
	c.Set(0, 0, 0, TypeID(4))
	c.Set(1, 0, 0, Air)
	c.Canonicalize()
	require.Equal(t, Air, c.Palette[0])
}

func TestChunkIndicesNarrowsWhenSmall(t *testing.T) {
	c := NewChunk(Address{})
	c.Set(0, 0, 0, TypeID(1))
	idx, ok := c.Indices().([]uint8)
	require.True(t, ok, "expected narrowed []uint8 for small palette")
	require.Len(t, idx, VoxelCount)
}

func TestChunkIndicesWidensWhenLarge(t *testing.T) {
	c := NewChunk(Address{})
	for i := 0; i < 300; i++ {
		c.Set(i%ChunkSize, (i/ChunkSize)%ChunkSize, i/(ChunkSize*ChunkSize), TypeID(i+1))
	}
	_, ok := c.Indices().([]uint16)
	require.True(t, ok, "expected widened []uint16 once palette exceeds 256 entries")
}

func TestLightPackUnpack(t *testing.T) {
	l := MakeLight(7, 15)
	require.Equal(t, uint8(7), l.Block())
	require.Equal(t, uint8(15), l.Sky())

	l2 := l.WithBlock(3)
	require.Equal(t, uint8(3), l2.Block())
	require.Equal(t, uint8(15), l2.Sky(), "WithBlock must not disturb sky channel")
}

func TestExtractBorderReadsOutermostLayer(t *testing.T) {
	m := NewLightMap(Address{})
	m.Set(ChunkSize-1, 4, 4, MakeLight(9, 0))
	b := ExtractBorder(m, BorderPosX)
	require.Equal(t, uint8(9), b.Values[4*ChunkSize+4].Block())
}
