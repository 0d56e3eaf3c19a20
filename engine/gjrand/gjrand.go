// Package gjrand implements David Blackman's gjrand generator.
package gjrand

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params hold the counter increment and rotations of a variant.
type Params struct {
	Inc     uint64
	P, Q, R uint
}

// Published variants.
var (
	GJRand8  = Params{Inc: 0x35, P: 4, Q: 2, R: 5}
	GJRand16 = Params{Inc: 0x96a5, P: 8, Q: 5, R: 10}
	GJRand32 = Params{Inc: 0x96a5, P: 16, Q: 11, R: 19}
	GJRand64 = Params{Inc: 0x55aa96a5, P: 32, Q: 23, R: 19}
)

var defaultSeed uint64 = 0xcafef00dbeef5eed

const warmup = 15

// Engine is a gjrand generator.
type Engine[T engine.Word] struct {
	p          Params
	a, b, c, d T
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New creates an engine from three seed words and discards the warm-up
// outputs.
func New[T engine.Word](p Params, a, b, c T) *Engine[T] {
	w := bitops.Width[T]()
	if p.P >= w || p.Q >= w || p.R >= w {
		panic("gjrand: rotation exceeds word width")
	}
	e := &Engine[T]{p: p, a: a, b: b, c: c}
	e.Discard(warmup)
	return e
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, defaultSeed)
}

// NewSeeded creates an engine with a set to seed, b to zero and c to the
// reference constant for the word width.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	return New(p, T(seed), 0, T(thirdSeed(bitops.Width[T]())))
}

// NewFromSeq creates an engine with all three words drawn from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, bitops.Width[T](), 3)
	return New(p, T(v[0]), T(v[1]), T(v[2]))
}

func thirdSeed(w uint) uint64 {
	switch {
	case w <= 8:
		return 201
	case w <= 16:
		return 2001
	default:
		return 2000001
	}
}

func (e *Engine[T]) Peek() T { return e.a }

func (e *Engine[T]) Advance() {
	e.b += e.c
	e.a = bitops.RotateLeft(e.a, e.p.P)
	e.c ^= e.b
	e.d += T(e.p.Inc)
	e.a += e.b
	e.c = bitops.RotateLeft(e.c, e.p.Q)
	e.b ^= e.a
	e.a += e.c
	e.b = bitops.RotateLeft(e.b, e.p.R)
	e.c += e.a
	e.b += e.d
}

func (e *Engine[T]) Rewind() {
	e.b -= e.d
	e.c -= e.a
	e.b = bitops.RotateRight(e.b, e.p.R)
	e.a -= e.c
	e.b ^= e.a
	e.c = bitops.RotateRight(e.c, e.p.Q)
	e.a -= e.b
	e.d -= T(e.p.Inc)
	e.c ^= e.b
	e.a = bitops.RotateRight(e.a, e.p.P)
	e.b -= e.c
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
	engine.RegisterDriver("gjrand8", family[uint8](GJRand8))
	engine.RegisterDriver("gjrand16", family[uint16](GJRand16))
	engine.RegisterDriver("gjrand32", family[uint32](GJRand32))
	engine.RegisterDriver("gjrand64", family[uint64](GJRand64))
}
