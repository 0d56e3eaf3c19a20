// Package hc implements the HC-128 and HC-256 stream ciphers of Hongjun Wu
// as generators of 32-bit keystream words.
//
// Both ciphers alternate between two tables, updating one entry per step
// by adding a function of entries it does not change. Stepping back
// subtracts that same function and moves the position back.
package hc

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

// DefaultSeed seeds the default engines.
const DefaultSeed uint64 = 5489

// expand fills w[16:] from the sixteen key and IV words in w[:16].
func expand(w []uint32) {
	for i := 16; i < len(w); i++ {
		f1 := bits.RotateLeft32(w[i-15], -7) ^ bits.RotateLeft32(w[i-15], -18) ^ (w[i-15] >> 3)
		f2 := bits.RotateLeft32(w[i-2], -17) ^ bits.RotateLeft32(w[i-2], -19) ^ (w[i-2] >> 10)
		w[i] = f2 + w[i-7] + f1 + w[i-16] + uint32(i)
	}
}

func init() {
	engine.RegisterDriver("hc128", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewHC128Seeded(DefaultSeed) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return NewHC128Seeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewHC128FromSeq(seq) },
	})
	engine.RegisterDriver("hc256", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewHC256Seeded(DefaultSeed) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return NewHC256Seeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewHC256FromSeq(seq) },
	})
}
