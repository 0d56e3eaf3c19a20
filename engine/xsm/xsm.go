// Package xsm implements the xsm generators: a two-word LCG with a
// seed-dependent increment whose state is scrambled by a multiply-xor
// output function.
package xsm

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params are the rotations and multipliers of a variant.
type Params struct {
	R1, R2, R3   uint
	Mult1, Mult2 uint64
}

// Published variants.
var (
	XSM32 = Params{R1: 9, R2: 19, R3: 16, Mult1: 0xD251CF2D, Mult2: 0x299529B5}
	XSM64 = Params{R1: 16, R2: 40, R3: 32, Mult1: 0xA3EC647659359ACD, Mult2: 0xA3EC647659359ACD}
)

var defaultSeed uint64 = 0xf1ea5eed

// Engine is an xsm generator.
type Engine[T engine.Word] struct {
	p                 Params
	lowPrev, highPrev T
	low, high         T
	addLow, addHigh   T
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

// New creates an engine from two seed words.
func New[T engine.Word](p Params, seed1, seed2 T) *Engine[T] {
	w := bitops.Width[T]()
	e := &Engine[T]{p: p}
	if w == 32 {
		e.addLow = seed1 | 1
		e.addHigh = seed2
		e.high = (e.addHigh + seed1) << (w - 1)
	} else {
		e.addLow = seed1<<1 | 1
		e.addHigh = seed1>>(w-1) | seed2<<1
		e.high = e.addHigh ^ ((seed2 >> (w - 1)) << (w - 1))
	}
	e.low = e.addLow
	e.Advance()
	e.Advance()
	return e
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, defaultSeed)
}

// NewSeeded creates an engine from seed with a zero second seed word.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	return New(p, T(seed), 0)
}

// NewFromSeq creates an engine with both seed words drawn from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, bitops.Width[T](), 2)
	return New(p, T(v[0]), T(v[1]))
}

func (e *Engine[T]) Peek() T {
	r := e.highPrev ^ bitops.RotateLeft(e.highPrev+e.lowPrev, e.p.R1)
	r ^= bitops.RotateLeft(r+e.addHigh, e.p.R2)
	r *= T(e.p.Mult1)
	r ^= bitops.RotateLeft(r+e.high, e.p.R3)
	r *= T(e.p.Mult2)
	return r ^ r>>e.p.R3
}

func (e *Engine[T]) Advance() {
	e.lowPrev, e.highPrev = e.low, e.high
	tmp := e.low + e.addHigh
	e.low += e.addLow
	carry := T(0)
	if e.low < e.addLow {
		carry = 1
	}
	e.high += tmp + carry
}

func (e *Engine[T]) Rewind() {
	e.low, e.high = e.lowPrev, e.highPrev
	carry := T(0)
	if e.lowPrev < e.addLow {
		carry = 1
	}
	e.lowPrev -= e.addLow
	e.highPrev -= e.lowPrev + e.addHigh + carry
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

// Equal reports whether e and o are in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool { return *e == *o }

func family[T engine.Word](p Params) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return NewSeeded[T](p, seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func init() {
	engine.RegisterDriver("xsm32", family[uint32](XSM32))
	engine.RegisterDriver("xsm64", family[uint64](XSM64))
}
