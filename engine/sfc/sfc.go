// Package sfc implements Chris Doty-Humphrey's small fast counting
// generator.
package sfc

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// Params are the rotate and shift amounts of a variant.
type Params struct {
	P, Q, R uint
}

// Published variants.
var (
	SFC8   = Params{P: 3, Q: 2, R: 1}
	SFC16  = Params{P: 6, Q: 5, R: 3}
	SFC32  = Params{P: 21, Q: 9, R: 3}
	SFC32b = Params{P: 15, Q: 8, R: 3}
	SFC64  = Params{P: 24, Q: 11, R: 3}
	SFC64b = Params{P: 25, Q: 12, R: 3}
)

var defaultSeed uint64 = 0xcafef00dbeef5eed

const warmup = 12

// Engine is an sfc generator. cache holds the output of the last step and
// is determined by the other words.
type Engine[T engine.Word] struct {
	p          Params
	a, b, c, d T
	cache      T
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

// New creates an engine from its four words and runs the warm-up rounds.
func New[T engine.Word](p Params, a, b, c, d T) *Engine[T] {
	w := bitops.Width[T]()
	if p.P >= w || p.Q >= w || p.R >= w {
		panic("sfc: shift exceeds word width")
	}
	e := &Engine[T]{p: p, a: a, b: b, c: c, d: d, cache: a + b + d}
	for i := 0; i < warmup; i++ {
		e.Advance()
	}
	return e
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, defaultSeed)
}

// NewSeeded creates an engine with a, b and c set to seed.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	s := T(seed)
	return New(p, s, s, s, 1)
}

// NewFromSeq creates an engine with a, b and c drawn from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, bitops.Width[T](), 3)
	return New(p, T(v[0]), T(v[1]), T(v[2]), 1)
}

func (e *Engine[T]) Peek() T { return e.cache }

func (e *Engine[T]) Advance() {
	e.d++
	e.a = e.b ^ (e.b >> e.p.Q)
	e.b = e.c + (e.c << e.p.R)
	e.c = bitops.RotateLeft(e.c, e.p.P) + e.cache
	e.cache = e.a + e.b + e.d
}

func (e *Engine[T]) Rewind() {
	w := bitops.Width[T]()
	c := T(unshift.LeftPlus(uint64(e.b), w, e.p.R))
	e.b = T(unshift.RightXor(uint64(e.a), w, e.p.Q))
	e.cache = e.c - bitops.RotateLeft(c, e.p.P)
	e.c = c
	e.d--
	e.a = e.cache - e.b - e.d
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

// Equal reports whether e and o are in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool {
	return e.p == o.p && e.a == o.a && e.b == o.b && e.c == o.c && e.d == o.d
}

func family[T engine.Word](p Params) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return NewSeeded[T](p, seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func init() {
	engine.RegisterDriver("sfc8", family[uint8](SFC8))
	engine.RegisterDriver("sfc16", family[uint16](SFC16))
	engine.RegisterDriver("sfc32", family[uint32](SFC32))
	engine.RegisterDriver("sfc64", family[uint64](SFC64))
}
