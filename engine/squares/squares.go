// Package squares implements Widynski's counter-based squares generators.
package squares

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

// DefaultKey is used for the default engine and replaces a zero key.
const DefaultKey = 0xb504f333f9de6484

// Squares32 emits 32-bit words from four squaring rounds.
type Squares32 struct {
	key, ctr uint64
}

// Squares64 emits 64-bit words from five squaring rounds.
type Squares64 struct {
	key, ctr uint64
}

var (
	_ engine.Engine[uint32] = &Squares32{}
	_ engine.Engine[uint64] = &Squares64{}
)

func fixKey(key uint64) uint64 {
	if key == 0 {
		return DefaultKey
	}
	return key
}

func keyFromSeq(seq seedseq.Sequence) uint64 {
	return seedseq.Words(seq, 64, 1)[0]
}

// New32 creates a Squares32 with the given key at counter zero.
func New32(key uint64) *Squares32 { return &Squares32{key: fixKey(key)} }

// New32FromSeq creates a Squares32 whose key is drawn from seq.
func New32FromSeq(seq seedseq.Sequence) *Squares32 { return New32(keyFromSeq(seq)) }

// New64 creates a Squares64 with the given key at counter zero.
func New64(key uint64) *Squares64 { return &Squares64{key: fixKey(key)} }

// New64FromSeq creates a Squares64 whose key is drawn from seq.
func New64FromSeq(seq seedseq.Sequence) *Squares64 { return New64(keyFromSeq(seq)) }

func rounds(key, ctr uint64) (x, y, z uint64) {
	y = ctr * key
	z = y + key
	x = y*y + y
	x = bits.RotateLeft64(x, 32)
	x = x*x + z
	x = bits.RotateLeft64(x, 32)
	x = x*x + y
	x = bits.RotateLeft64(x, 32)
	return x, y, z
}

// Peek returns the output for the current counter.
func (e *Squares32) Peek() uint32 {
	x, _, z := rounds(e.key, e.ctr)
	return uint32((x*x + z) >> 32)
}

func (e *Squares32) Advance()         { e.ctr++ }
func (e *Squares32) Rewind()          { e.ctr-- }
func (e *Squares32) Next() uint32     { return engine.Next[uint32](e) }
func (e *Squares32) Prev() uint32     { return engine.Prev[uint32](e) }
func (e *Squares32) Discard(n uint64) { e.ctr += n }
func (e *Squares32) Min() uint32      { return 0 }
func (e *Squares32) Max() uint32      { return ^uint32(0) }

// Equal reports whether e and o are in the same state.
func (e *Squares32) Equal(o *Squares32) bool { return *e == *o }

// Peek returns the output for the current counter.
func (e *Squares64) Peek() uint64 {
	x, y, z := rounds(e.key, e.ctr)
	x = x*x + z
	t := x
	x = bits.RotateLeft64(x, 32)
	return t ^ ((x*x + y) >> 32)
}

func (e *Squares64) Advance()         { e.ctr++ }
func (e *Squares64) Rewind()          { e.ctr-- }
func (e *Squares64) Next() uint64     { return engine.Next[uint64](e) }
func (e *Squares64) Prev() uint64     { return engine.Prev[uint64](e) }
func (e *Squares64) Discard(n uint64) { e.ctr += n }
func (e *Squares64) Min() uint64      { return 0 }
func (e *Squares64) Max() uint64      { return ^uint64(0) }

// Equal reports whether e and o are in the same state.
func (e *Squares64) Equal(o *Squares64) bool { return *e == *o }

func init() {
	engine.RegisterDriver("squares32", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return New32(DefaultKey) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return New32(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return New32FromSeq(seq) },
	})
	engine.RegisterDriver("squares64", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return New64(DefaultKey) },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return New64(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return New64FromSeq(seq) },
	})
}
