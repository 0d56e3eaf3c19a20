// Package rarns implements the rarns xor-rotate generator. The engine keeps
// the previous state next to the current one because its output mixes both.
package rarns

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// Params are the rotations and shift of a variant.
type Params struct {
	Rot1, Rot2, Rot3, Shift uint
}

// Published variants.
var (
	RARNS16 = Params{Rot1: 5, Rot2: 7, Rot3: 8, Shift: 3}
	RARNS32 = Params{Rot1: 10, Rot2: 3, Rot3: 5, Shift: 13}
	RARNS64 = Params{Rot1: 21, Rot2: 3, Rot3: 5, Shift: 13}
)

var (
	defaultSeed1 uint64 = 0xf1ea5eed
	defaultSeed2 uint64 = 0xcafe5eed00000001
)

const (
	defaultSeed3 = 20
	warmup       = 5
)

// Engine is a rarns generator.
type Engine[T engine.Word] struct {
	p     Params
	state [3]T
	prev  [3]T
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New creates an engine from three state words. For 32-bit words the third
// word is derived from the first two.
func New[T engine.Word](p Params, s0, s1, s2 T) *Engine[T] {
	w := bitops.Width[T]()
	if p.Rot1 >= w || p.Rot2 >= w || p.Rot3 >= w || p.Shift >= w {
		panic("rarns: rotation exceeds word width")
	}
	e := &Engine[T]{p: p, state: [3]T{s0, s1, s2}}
	if w == 32 {
		e.state[2] = ^(s0 + s1)
	}
	for i := 0; i < warmup+1; i++ {
		e.Advance()
	}
	return e
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, defaultSeed1)
}

// NewSeeded creates an engine whose first word is seed.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	return New(p, T(seed), T(defaultSeed2), defaultSeed3)
}

// NewFromSeq creates an engine with its words drawn from seq. An all-zero
// draw is replaced by the default seed.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, bitops.Width[T](), 3)
	if v[0]|v[1]|v[2] == 0 {
		return NewDefault[T](p)
	}
	return New(p, T(v[0]), T(v[1]), T(v[2]))
}

func (e *Engine[T]) Peek() T {
	return bitops.RotateLeft(e.prev[0]+e.prev[2], e.p.Rot1) + e.state[0]
}

func (e *Engine[T]) Advance() {
	e.prev = e.state
	s := &e.state
	old := s[0] >> e.p.Shift
	s[2] ^= s[0]
	s[0] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= old
	s[2] = bitops.RotateLeft(s[2], e.p.Rot2)
	s[0] = bitops.RotateLeft(s[0], e.p.Rot3)
}

func (e *Engine[T]) Rewind() {
	e.state = e.prev
	s := &e.prev
	s[0] = bitops.RotateRight(s[0], e.p.Rot3)
	s[2] = bitops.RotateRight(s[2], e.p.Rot2)
	s[1] ^= s[2]
	s[0] ^= s[1]
	s[0] = T(unshift.RightXor(uint64(s[0]), bitops.Width[T](), e.p.Shift))
	s[2] ^= s[0]
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
	engine.RegisterDriver("rarns16", family[uint16](RARNS16))
	engine.RegisterDriver("rarns32", family[uint32](RARNS32))
	engine.RegisterDriver("rarns64", family[uint64](RARNS64))
}
