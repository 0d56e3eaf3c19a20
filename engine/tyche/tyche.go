// Package tyche implements the Tyche generator and the OpenRAND flavour
// that runs its inverse round as the forward step.
package tyche

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

const (
	// DefaultSeed is the seed of the default engine.
	DefaultSeed = 5489

	openRandGlobalSeed = 0xAAAAAAAA
	warmup             = 20
)

// Engine is a Tyche generator.
type Engine struct {
	a, b, c, d uint32
	openRand   bool
}

var _ engine.Engine[uint32] = &Engine{}

// New creates a Tyche engine from a 64-bit seed and a stream index.
func New(seed uint64, idx uint32) *Engine {
	return newSeeded(seed, idx, false)
}

// NewOpenRand creates an OpenRAND Tyche engine from a seed and stream index.
func NewOpenRand(seed uint64, idx uint32) *Engine {
	return newSeeded(seed^openRandGlobalSeed, idx, true)
}

func newSeeded(seed uint64, idx uint32, openRand bool) *Engine {
	e := &Engine{
		a:        uint32(seed >> 32),
		b:        uint32(seed),
		c:        2654435769,
		d:        1367130551 ^ idx,
		openRand: openRand,
	}
	e.Discard(warmup + 1)
	return e
}

// NewFromSeq creates an engine whose four words are drawn from seq.
func NewFromSeq(seq seedseq.Sequence, openRand bool) *Engine {
	v := seedseq.Words(seq, 32, 4)
	e := &Engine{a: uint32(v[0]), b: uint32(v[1]), c: uint32(v[2]), d: uint32(v[3]), openRand: openRand}
	if e.a|e.b|e.c|e.d == 0 {
		return newSeeded(DefaultSeed, 0, openRand)
	}
	e.Advance()
	return e
}

func (e *Engine) Peek() uint32 {
	if e.openRand {
		return e.a
	}
	return e.b
}

func (e *Engine) Advance() {
	if e.openRand {
		e.openRound()
	} else {
		e.round()
	}
}

func (e *Engine) Rewind() {
	if e.openRand {
		e.inverseOpenRound()
	} else {
		e.inverseRound()
	}
}

func (e *Engine) round() {
	e.a += e.b
	e.d = bits.RotateLeft32(e.d^e.a, 16)
	e.c += e.d
	e.b = bits.RotateLeft32(e.b^e.c, 12)
	e.a += e.b
	e.d = bits.RotateLeft32(e.d^e.a, 8)
	e.c += e.d
	e.b = bits.RotateLeft32(e.b^e.c, 7)
}

func (e *Engine) inverseRound() {
	e.b = bits.RotateLeft32(e.b, -7) ^ e.c
	e.c -= e.d
	e.d = bits.RotateLeft32(e.d, -8) ^ e.a
	e.a -= e.b
	e.b = bits.RotateLeft32(e.b, -12) ^ e.c
	e.c -= e.d
	e.d = bits.RotateLeft32(e.d, -16) ^ e.a
	e.a -= e.b
}

// openRound mirrors the inverse round with the rotations reversed.
func (e *Engine) openRound() {
	e.b = bits.RotateLeft32(e.b, 7) ^ e.c
	e.c -= e.d
	e.d = bits.RotateLeft32(e.d, 8) ^ e.a
	e.a -= e.b
	e.b = bits.RotateLeft32(e.b, 12) ^ e.c
	e.c -= e.d
	e.d = bits.RotateLeft32(e.d, 16) ^ e.a
	e.a -= e.b
}

func (e *Engine) inverseOpenRound() {
	e.a += e.b
	e.d = bits.RotateLeft32(e.d^e.a, -16)
	e.c += e.d
	e.b = bits.RotateLeft32(e.b^e.c, -12)
	e.a += e.b
	e.d = bits.RotateLeft32(e.d^e.a, -8)
	e.c += e.d
	e.b = bits.RotateLeft32(e.b^e.c, -7)
}

func (e *Engine) Next() uint32     { return engine.Next[uint32](e) }
func (e *Engine) Prev() uint32     { return engine.Prev[uint32](e) }
func (e *Engine) Discard(n uint64) { engine.Discard[uint32](e, n) }
func (e *Engine) Min() uint32      { return 0 }
func (e *Engine) Max() uint32      { return ^uint32(0) }

// Equal reports whether e and o are in the same state.
func (e *Engine) Equal(o *Engine) bool { return *e == *o }

func init() {
	engine.RegisterDriver("tyche", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return New(DefaultSeed, 0) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return New(seed, 0) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq(seq, false) },
	})
	engine.RegisterDriver("tyche_openrand", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewOpenRand(DefaultSeed, 0) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return NewOpenRand(seed, 0) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq(seq, true) },
	})
}
