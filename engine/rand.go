package engine

import (
	"math/bits"
	"math/rand"
)

// Rand adapts a Source to math/rand. Narrow sources are concatenated until
// 64 bits are filled; sources whose range is not a power of two contribute
// only the bits below their range.
type Rand struct {
	src  Source
	bits uint
}

var _ rand.Source64 = (*Rand)(nil)

// NewRand creates a Rand reading from src.
func NewRand(src Source) *Rand {
	span := src.Max() - src.Min()
	b := uint(bits.Len64(span))
	if span != ^uint64(0) && (span+1)&span != 0 {
		b--
	}
	if b == 0 {
		panic("engine: source range too small")
	}
	return &Rand{src: src, bits: b}
}

// Uint64 returns 64 pseudorandom bits.
func (r *Rand) Uint64() uint64 {
	if r.bits >= 64 {
		return r.src.Next() - r.src.Min()
	}
	var v uint64
	for filled := uint(0); filled < 64; filled += r.bits {
		v = v<<r.bits | ((r.src.Next() - r.src.Min()) & (uint64(1)<<r.bits - 1))
	}
	return v
}

// Int63 returns a non-negative pseudorandom int64.
func (r *Rand) Int63() int64 {
	return int64(r.Uint64() >> 1)
}

// Seed panics: engines are seeded at construction.
func (r *Rand) Seed(int64) {
	panic("engine: Seed is not supported, construct a new engine instead")
}
