// Package pcg implements PCG32 (XSH RR output over a 64-bit LCG with a
// selectable odd increment).
package pcg

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

const multiplier uint64 = 6364136223846793005

var multiplierInverse = modular.InversePow2(64, multiplier)

// Initial state and increment of the default engine.
const (
	DefaultState     uint64 = 0x853c49e6748fea9b
	DefaultIncrement uint64 = 0xda3e39cb94b95bdb
)

// DefaultStream is the stream selector whose increment is DefaultIncrement.
const DefaultStream = DefaultIncrement >> 1

// PCG32 is a 32-bit PCG generator.
type PCG32 struct {
	state uint64
	inc   uint64
}

var _ engine.Engine[uint32] = &PCG32{}

// New creates an engine with a raw state and increment. inc should be odd.
func New(state, inc uint64) *PCG32 {
	return &PCG32{state: state, inc: inc}
}

// NewDefault creates the engine with the reference initial state.
func NewDefault() *PCG32 { return New(DefaultState, DefaultIncrement) }

// NewSeeded selects stream seq and mixes initState into it.
func NewSeeded(initState, seq uint64) *PCG32 {
	e := New(0, seq<<1|1)
	e.Advance()
	e.state += initState
	e.Advance()
	return e
}

// NewFromSeq draws the initial state and the stream from seq.
func NewFromSeq(seq seedseq.Sequence) *PCG32 {
	v := seedseq.Words(seq, 64, 2)
	return NewSeeded(v[0], v[1])
}

func (e *PCG32) Peek() uint32 {
	x := uint32(((e.state >> 18) ^ e.state) >> 27)
	return bitops.RotateRight(x, uint(e.state>>59))
}

func (e *PCG32) Advance()     { e.state = e.state*multiplier + e.inc }
func (e *PCG32) Rewind()      { e.state = (e.state - e.inc) * multiplierInverse }
func (e *PCG32) Next() uint32 { return engine.Next[uint32](e) }
func (e *PCG32) Prev() uint32 { return engine.Prev[uint32](e) }
func (e *PCG32) Min() uint32  { return 0 }
func (e *PCG32) Max() uint32  { return ^uint32(0) }

// Discard skips n values in O(log n) steps.
func (e *PCG32) Discard(n uint64) { e.jump(n) }

// Backstep rewinds n values in O(log n) steps.
func (e *PCG32) Backstep(n uint64) { e.jump(-n) }

// jump applies the LCG delta times by composing the affine map in
// squaring steps. The period is 2^64, so a negative delta wraps around.
func (e *PCG32) jump(delta uint64) {
	accMult, accPlus := uint64(1), uint64(0)
	curMult, curPlus := multiplier, e.inc
	for delta > 0 {
		if delta&1 != 0 {
			accMult *= curMult
			accPlus = accPlus*curMult + curPlus
		}
		curPlus = (curMult + 1) * curPlus
		curMult *= curMult
		delta >>= 1
	}
	e.state = accMult*e.state + accPlus
}

// Equal reports whether e and o are in the same state.
func (e *PCG32) Equal(o *PCG32) bool { return *e == *o }

func init() {
	engine.RegisterDriver("pcg32", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewDefault() },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return NewSeeded(seed, DefaultStream) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq(seq) },
	})
}
