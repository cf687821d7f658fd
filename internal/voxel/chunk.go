package voxel

// Chunk is a palette-compressed S*S*S voxel grid: a small palette of
// distinct TypeIDs (first-occurrence order) plus a dense index array into
// that palette. Palette compression keeps storage small even once a
// chunk can reference dozens of distinct ore/feature voxel types.
type Chunk struct {
	Addr    Address
	Palette []TypeID
	indices []uint16 // always stored widened; Indices() narrows on read
}

// NewChunk returns a chunk addressed at addr, filled with Air.
func NewChunk(addr Address) *Chunk {
	return &Chunk{
		Addr:    addr,
		Palette: []TypeID{Air},
		indices: make([]uint16, VoxelCount),
	}
}

// Get returns the voxel type at local (x, y, z).
func (c *Chunk) Get(x, y, z int) TypeID {
	return c.Palette[c.indices[Index(x, y, z)]]
}

// Set writes the voxel type at local (x, y, z), growing the palette if
// the type hasn't appeared in this chunk yet (first-occurrence order,
// per the palette invariant in the data model).
func (c *Chunk) Set(x, y, z int, t TypeID) {
	c.indices[Index(x, y, z)] = uint16(c.paletteIndex(t))
}

func (c *Chunk) paletteIndex(t TypeID) int {
	for i, p := range c.Palette {
		if p == t {
			return i
		}
	}
	c.Palette = append(c.Palette, t)
	return len(c.Palette) - 1
}

// Indices returns the packed index array, narrowed to uint8 when the
// palette fits in a byte (the common case), else returned as uint16.
func (c *Chunk) Indices() any {
	if len(c.Palette) <= 256 {
		out := make([]uint8, len(c.indices))
		for i, v := range c.indices {
			out[i] = uint8(v)
		}
		return out
	}
	out := make([]uint16, len(c.indices))
	copy(out, c.indices)
	return out
}

// Canonicalize rebuilds the palette in first-occurrence order over the
// chunk's lexicographic voxel iteration and remaps indices to match,
// dropping any palette entries left over from Set calls that were later
// overwritten. Two chunks with the same voxel contents canonicalize to
// the same (Palette, indices) pair regardless of the order Set was
// called in, which is what the Eq-by-tuple invariant in the data model
// requires.
func (c *Chunk) Canonicalize() {
	newPalette := make([]TypeID, 0, len(c.Palette))
	remap := make(map[TypeID]int, len(c.Palette))
	newIndices := make([]uint16, VoxelCount)

	hasAir := false
	for x := 0; x < ChunkSize; x++ {
		for y := 0; y < ChunkSize; y++ {
			for z := 0; z < ChunkSize; z++ {
				t := c.Get(x, y, z)
				if t == Air {
					hasAir = true
				}
				idx, ok := remap[t]
				if !ok {
					idx = len(newPalette)
					newPalette = append(newPalette, t)
					remap[t] = idx
				}
				newIndices[Index(x, y, z)] = uint16(idx)
			}
		}
	}

	if hasAir && (len(newPalette) == 0 || newPalette[0] != Air) {
		// Palette always contains Air at index 0 if any air is present.
		reordered := make([]TypeID, 0, len(newPalette))
		reordered = append(reordered, Air)
		oldToNew := make(map[int]int, len(newPalette))
		for i, t := range newPalette {
			if t == Air {
				oldToNew[i] = 0
				continue
			}
			oldToNew[i] = len(reordered)
			reordered = append(reordered, t)
		}
		for i, idx := range newIndices {
			newIndices[i] = uint16(oldToNew[int(idx)])
		}
		newPalette = reordered
	}

	c.Palette = newPalette
	c.indices = newIndices
}

// Equal reports whether two chunks have identical canonical contents.
// Callers that need this guarantee must Canonicalize both chunks first;
// Equal itself does not mutate.
func (c *Chunk) Equal(o *Chunk) bool {
	if len(c.Palette) != len(o.Palette) {
		return false
	}
	for i := range c.Palette {
		if c.Palette[i] != o.Palette[i] {
			return false
		}
	}
	for i := range c.indices {
		if c.indices[i] != o.indices[i] {
			return false
		}
	}
	return true
}
