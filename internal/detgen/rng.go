package detgen

import (
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// RNG is a deterministic, forward-only stream of pseudo-random bits backed
// by a ChaCha20 keystream. It never reseeds and never rewinds: callers draw
// from it in a fixed order, which is what makes chunk generation
// reproducible regardless of which goroutine runs it.
type RNG struct {
	cipher *chacha20.Cipher
	buf    [64]byte
	pos    int
}

// NewRNG seeds a ChunkRNG from a world seed and chunk address, the
// canonical per-chunk random stream every sampler draws from.
func NewRNG(worldSeed uint64, addr Address) *RNG {
	return NewRNGFromSeed(DeriveChunkSeed(worldSeed, addr))
}

// NewRNGFromSeed seeds a stream directly from a 64-bit seed, used when a
// sub-seed has already been derived (e.g. for a feature-placement pass
// distinct from the main terrain pass).
func NewRNGFromSeed(seed uint64) *RNG {
	key := expandKey(seed)
	// Nonce is fixed at zero: the key alone carries all entropy, and a
	// fixed nonce keeps construction pure (no external randomness, no I/O).
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// Only fails on malformed key/nonce length, which expandKey and
		// the fixed-size nonce array make impossible.
		panic("detgen: unreachable chacha20 construction failure: " + err.Error())
	}
	r := &RNG{cipher: c}
	r.fill()
	return r
}

func (r *RNG) fill() {
	var zero [64]byte
	r.cipher.XORKeyStream(r.buf[:], zero[:])
	r.pos = 0
}

// Uint64 draws the next 8 keystream bytes as a little-endian uint64.
func (r *RNG) Uint64() uint64 {
	if r.pos+8 > len(r.buf) {
		r.fill()
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos : r.pos+8])
	r.pos += 8
	return v
}

// Uint32 draws the next 4 keystream bytes as a little-endian uint32.
func (r *RNG) Uint32() uint32 {
	if r.pos+4 > len(r.buf) {
		r.fill()
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos : r.pos+4])
	r.pos += 4
	return v
}

// Float64 returns a value in [0, 1) with 53 bits of precision, matching
// the standard library's convention for float generation from an integer
// stream.
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// IntN returns a value in [0, n) for n > 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		panic("detgen: IntN requires n > 0")
	}
	return int(r.Uint64() % uint64(n))
}

// Float64Range returns a value in [lo, hi).
func (r *RNG) Float64Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
