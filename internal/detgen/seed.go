// Package detgen provides cross-platform deterministic primitives: chunk
// seed derivation, a stream-cipher PRNG, and transcendental functions whose
// results are required to be bit-identical across threads and targets.
package detgen

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Address identifies a chunk on the cubesphere. It mirrors the layout of
// voxel.Address without importing it, so detgen has no dependency on
// the voxel package (seed derivation is a pure L0 primitive).
type Address struct {
	Face uint8
	CX   int32
	CY   int32
	CZ   int32
}

// encode writes the address into a fixed 20-byte little-endian buffer:
// 8 bytes world seed, 1 byte face, 3 bytes padding, 4 bytes CX, 4 bytes
// CY. CZ is not part of this buffer; DeriveChunkSeed hashes it separately.
// The fixed width and explicit byte order make the hash portable across
// platforms and Go versions, per the determinism contract.
func encode(worldSeed uint64, addr Address) [20]byte {
	var buf [20]byte
	binary.LittleEndian.PutUint64(buf[0:8], worldSeed)
	buf[8] = addr.Face
	binary.LittleEndian.PutUint32(buf[12:16], uint32(addr.CX))
	binary.LittleEndian.PutUint32(buf[16:20], uint32(addr.CY))
	return buf
}

// DeriveChunkSeed maps (world_seed, address) to a 64-bit chunk seed using
// xxhash64, a well-distributed non-cryptographic hash. Two calls that
// differ in any field produce uncorrelated seeds with overwhelming
// probability; spatially adjacent addresses are not guaranteed anything
// beyond that (no XOR-style correlation leaks through).
func DeriveChunkSeed(worldSeed uint64, addr Address) uint64 {
	buf := encode(worldSeed, addr)
	h := xxhash.New()
	h.Write(buf[:])
	// Second pass folds in CZ, which didn't fit encode's 20 bytes, so all
	// four address fields plus the world seed influence every output bit.
	var czBuf [4]byte
	binary.LittleEndian.PutUint32(czBuf[:], uint32(addr.CZ))
	h.Write(czBuf[:])
	return h.Sum64()
}

// expandKey derives a 32-byte ChaCha20 key from a 64-bit chunk seed by
// hashing the seed four times with distinct domain-separation constants,
// the same "derive several sub-values from one seed" idiom used by the
// corpus's noise permutation-table construction.
func expandKey(seed uint64) [32]byte {
	var key [32]byte
	for i := 0; i < 4; i++ {
		var in [9]byte
		binary.LittleEndian.PutUint64(in[0:8], seed)
		in[8] = byte(i)
		sum := xxhash.Sum64(in[:])
		binary.LittleEndian.PutUint64(key[i*8:i*8+8], sum)
	}
	return key
}
