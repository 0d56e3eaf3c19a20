// Package jsf implements Bob Jenkins' small fast generator and arbee, its
// variant with an additional counter word.
package jsf

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params are the rotation amounts of a variant. R of zero means the third
// rotation is skipped.
type Params struct {
	P, Q, R uint
	Arbee   bool
}

// Published variants.
var (
	JSF8   = Params{P: 1, Q: 4}
	JSF32n = Params{P: 27, Q: 17}
	JSF32r = Params{P: 23, Q: 16, R: 11}
	JSF64n = Params{P: 39, Q: 11}
	JSF64r = Params{P: 7, Q: 13, R: 37}
	Arbee  = Params{P: 45, Q: 13, R: 37, Arbee: true}
)

var (
	defaultSeed1 uint64 = 0xf1ea5eed
	defaultSeed2 uint64 = 0xcafe5eed00000001
)

const warmup = 20

// Engine is a jsf generator. s[4] is the arbee counter and stays zero for
// the plain variants.
type Engine[T engine.Word] struct {
	p Params
	s [5]T
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New creates an engine from four state words, runs the warm-up rounds and
// primes the first output.
func New[T engine.Word](p Params, s0, s1, s2, s3 T) *Engine[T] {
	return NewRounds(p, warmup, s0, s1, s2, s3)
}

// NewRounds is New with the given number of warm-up rounds.
func NewRounds[T engine.Word](p Params, rounds int, s0, s1, s2, s3 T) *Engine[T] {
	w := bitops.Width[T]()
	if p.P >= w || p.Q >= w || p.R >= w {
		panic("jsf: rotation exceeds word width")
	}
	e := &Engine[T]{p: p, s: [5]T{s0, s1, s2, s3}}
	if p.Arbee {
		e.s[4] = 1
	}
	for i := 0; i < rounds+1; i++ {
		e.Advance()
	}
	return e
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, defaultSeed1)
}

// NewSeeded creates an engine whose first word is seed and whose other
// words take their defaults.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	d := T(defaultSeed2)
	return New(p, T(seed), d, d, d)
}

// NewFromSeq creates an engine whose four words are drawn from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, bitops.Width[T](), 4)
	return New(p, T(v[0]), T(v[1]), T(v[2]), T(v[3]))
}

// Peek returns the output of the last completed step.
func (e *Engine[T]) Peek() T { return e.s[3] }

// Advance performs one step.
func (e *Engine[T]) Advance() {
	s := &e.s
	x := s[0]
	if e.p.Arbee {
		x += bitops.RotateLeft(s[1], e.p.P)
	} else {
		x -= bitops.RotateLeft(s[1], e.p.P)
	}
	s[0] = s[1] ^ bitops.RotateLeft(s[2], e.p.Q)
	if e.p.R != 0 {
		s[1] = s[2] + bitops.RotateLeft(s[3], e.p.R)
	} else {
		s[1] = s[2] + s[3]
	}
	s[2] = s[3] + x
	if e.p.Arbee {
		s[2] += s[4]
		s[4]++
	}
	s[3] = x + s[0]
}

// Rewind undoes one Advance.
func (e *Engine[T]) Rewind() {
	s := &e.s
	x := s[3] - s[0]
	s[3] = s[2] - x
	if e.p.Arbee {
		s[4]--
		s[3] -= s[4]
	}
	if e.p.R != 0 {
		s[2] = s[1] - bitops.RotateLeft(s[3], e.p.R)
	} else {
		s[2] = s[1] - s[3]
	}
	s[1] = s[0] ^ bitops.RotateLeft(s[2], e.p.Q)
	if e.p.Arbee {
		s[0] = x - bitops.RotateLeft(s[1], e.p.P)
	} else {
		s[0] = x + bitops.RotateLeft(s[1], e.p.P)
	}
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
	engine.RegisterDriver("jsf8", family[uint8](JSF8))
	engine.RegisterDriver("jsf32n", family[uint32](JSF32n))
	engine.RegisterDriver("jsf32r", family[uint32](JSF32r))
	engine.RegisterDriver("jsf64n", family[uint64](JSF64n))
	engine.RegisterDriver("jsf64r", family[uint64](JSF64r))
	engine.RegisterDriver("arbee", family[uint64](Arbee))
}
