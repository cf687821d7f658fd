// Package sampler composes the L1 samplers: heightmap fBm, biome
// classification, cave carving, ore distribution, and Poisson-disk feature
// candidates. Every public entry point takes a unit-sphere point (or a
// position derived from one), never a face-local (u, v) pair, so seam and
// corner continuity fall out of cubesphere.FaceCoordToSphere's own
// continuity rather than anything sampler-specific.
package sampler

import opensimplex "github.com/ojrac/opensimplex-go"

// Field is a single 3D simplex-class noise field, immutable after
// construction and safe for concurrent read-only Eval calls from any
// number of scheduler workers.
type Field struct {
	n opensimplex.Noise
}

// NewField constructs a field from a 64-bit seed. opensimplex-go seeds on
// int64; the reinterpretation is lossless (bit pattern preserved).
func NewField(seed uint64) Field {
	return Field{n: opensimplex.New(int64(seed))}
}

// Eval samples the field at a 3D point. Range is approximately [-1, 1],
// per opensimplex-go's Eval3 contract.
func (f Field) Eval(x, y, z float64) float64 {
	return f.n.Eval3(x, y, z)
}
