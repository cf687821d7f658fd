package detgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRNGDeterministic(t *testing.T) {
	addr := Address{Face: 1, CX: 2, CY: 3, CZ: 4}
	r1 := NewRNG(42, addr)
	r2 := NewRNG(42, addr)

	for i := 0; i < 100; i++ {
		assert.Equal(t, r1.Uint64(), r2.Uint64(), "draw %d diverged", i)
	}
}

func TestRNGForwardOnly(t *testing.T) {
	r := NewRNG(1, Address{})
	seen := make(map[uint64]bool)
	for i := 0; i < 50; i++ {
		v := r.Uint64()
		assert.False(t, seen[v], "keystream repeated a value within 50 draws")
		seen[v] = true
	}
}

func TestRNGFloat64Range(t *testing.T) {
	r := NewRNG(7, Address{Face: 5})
	for i := 0; i < 1000; i++ {
		f := r.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)
	}
}

func TestRNGIntNRange(t *testing.T) {
	r := NewRNG(7, Address{Face: 5})
	for i := 0; i < 1000; i++ {
		v := r.IntN(10)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}
}

func TestFixedMulAdd(t *testing.T) {
	a := FromFloat64(1.5)
	b := FromFloat64(2.0)
	assert.InDelta(t, 3.0, a.Mul(b).Float64(), 1e-6)
	assert.InDelta(t, 3.5, a.Add(b).Float64(), 1e-6)

	neg := FromFloat64(-1.5)
	assert.InDelta(t, -3.0, neg.Mul(b).Float64(), 1e-6)
}
