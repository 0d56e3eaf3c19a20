// Package xoroshiro implements the xoroshiro family: two-word generators and
// the sixteen-word xoroshiro1024 variants whose state rotates through a
// ring buffer.
package xoroshiro

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params describe a variant. Bits is the state size. A, B and C are the
// linear engine's rotation, shift and rotation. The scrambler is chosen by
// which of Mult1, ORot and Mult2 are set:
//
//	Mult1 only            x * Mult1
//	Mult1, ORot, Mult2    rotl(x * Mult1, ORot) * Mult2
//	ORot only             rotl(x + y, ORot) + x
//	none                  x + y
type Params struct {
	Bits    uint
	A, B, C uint
	Mult1   uint64
	ORot    uint
	Mult2   uint64
	Rotate  bool
}

// Published variants.
var (
	Xoroshiro64Star       = Params{Bits: 64, A: 26, B: 9, C: 13, Mult1: 0x9E3779BB}
	Xoroshiro64StarStar   = Params{Bits: 64, A: 26, B: 9, C: 13, Mult1: 0x9E3779BB, ORot: 5, Mult2: 5}
	Xoroshiro128Plus      = Params{Bits: 128, A: 24, B: 16, C: 37}
	Xoroshiro128PlusPlus  = Params{Bits: 128, A: 49, B: 21, C: 28, ORot: 17}
	Xoroshiro128StarStar  = Params{Bits: 128, A: 24, B: 16, C: 37, Mult1: 5, ORot: 7, Mult2: 9}
	Xoroshiro1024PlusPlus = Params{Bits: 1024, A: 25, B: 27, C: 36, ORot: 23, Rotate: true}
	Xoroshiro1024Star     = Params{Bits: 1024, A: 25, B: 27, C: 36, Mult1: 0x9e3779b97f4a7c13, Rotate: true}
	Xoroshiro1024StarStar = Params{Bits: 1024, A: 25, B: 27, C: 36, Mult1: 5, ORot: 7, Mult2: 9, Rotate: true}
)

// Default seeds, truncated to the word width.
var (
	DefaultSeed1 uint64 = 0xc1f651c67c62c6e0
	DefaultSeed2 uint64 = 0x30d89576f866ac9f
)

// Engine is a xoroshiro generator.
type Engine[T engine.Word] struct {
	p     Params
	state *circular.Buffer[T]
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

func newEngine[T engine.Word](p Params) *Engine[T] {
	w := bitops.Width[T]()
	if p.A >= w || p.B >= w || p.C >= w || p.ORot >= w || p.Bits%w != 0 || p.Bits/w < 2 {
		panic("xoroshiro: invalid parameters")
	}
	return &Engine[T]{p: p, state: circular.New[T](int(p.Bits / w))}
}

// NewDefault creates an engine with the default seeds.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded(p, T(DefaultSeed1), T(DefaultSeed2))
}

// NewSeeded stores seed1 and seed2 in the first two words. When both are
// zero the second word is set to one.
func NewSeeded[T engine.Word](p Params, seed1, seed2 T) *Engine[T] {
	e := newEngine[T](p)
	e.state.Set(0, seed1)
	if seed1 == 0 && seed2 == 0 {
		seed2 = 1
	}
	e.state.Set(1, seed2)
	if p.Rotate {
		e.state.Inc()
	}
	return e
}

// NewFromSeq fills the whole state from seq. An all-zero draw has its
// second word set to one.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	e := newEngine[T](p)
	data := e.state.Data()
	var nonzero T
	for i, v := range seedseq.Words(seq, bitops.Width[T](), len(data)) {
		data[i] = T(v)
		nonzero |= T(v)
	}
	if nonzero == 0 {
		data[1] = 1
	}
	if p.Rotate {
		e.state.Inc()
	}
	return e
}

func (e *Engine[T]) Peek() T {
	s0, s1 := e.state.At(0), e.state.At(-1)
	p := &e.p
	switch {
	case p.Mult1 != 0 && p.ORot != 0:
		return bitops.RotateLeft(s0*T(p.Mult1), p.ORot) * T(p.Mult2)
	case p.Mult1 != 0:
		return s0 * T(p.Mult1)
	case p.ORot != 0 && p.Rotate:
		return bitops.RotateLeft(s0+s1, p.ORot) + s1
	case p.ORot != 0:
		return bitops.RotateLeft(s0+s1, p.ORot) + s0
	default:
		return s0 + s1
	}
}

func (e *Engine[T]) Advance() {
	s0, s1 := e.state.Ptr(0), e.state.Ptr(-1)
	*s1 ^= *s0
	if e.p.Rotate {
		prev := *s1
		*s1 = bitops.RotateLeft(*s0, e.p.A) ^ prev ^ (prev << e.p.B)
		*s0 = bitops.RotateLeft(prev, e.p.C)
		e.state.Inc()
		return
	}
	*s0 = bitops.RotateLeft(*s0, e.p.A) ^ *s1 ^ (*s1 << e.p.B)
	*s1 = bitops.RotateLeft(*s1, e.p.C)
}

func (e *Engine[T]) Rewind() {
	if e.p.Rotate {
		e.state.Dec()
	}
	s0, s1 := e.state.Ptr(0), e.state.Ptr(-1)
	if e.p.Rotate {
		prev := bitops.RotateRight(*s0, e.p.C)
		*s0 = bitops.RotateRight(*s1^prev^(prev<<e.p.B), e.p.A)
		*s1 = prev
	} else {
		*s1 = bitops.RotateRight(*s1, e.p.C)
		*s0 = bitops.RotateRight(*s0^*s1^(*s1<<e.p.B), e.p.A)
	}
	*s1 ^= *s0
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

// Equal reports whether e and o hold the same logical state.
func (e *Engine[T]) Equal(o *Engine[T]) bool {
	return e.p == o.p && e.state.Equal(o.state)
}

// Clone returns an independent copy of e.
func (e *Engine[T]) Clone() *Engine[T] {
	return &Engine[T]{p: e.p, state: e.state.Clone()}
}

func family[T engine.Word](p Params) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return NewSeeded(p, T(seed), T(DefaultSeed2)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func init() {
	engine.RegisterDriver("xoroshiro64star", family[uint32](Xoroshiro64Star))
	engine.RegisterDriver("xoroshiro64starstar", family[uint32](Xoroshiro64StarStar))
	engine.RegisterDriver("xoroshiro128plus", family[uint64](Xoroshiro128Plus))
	engine.RegisterDriver("xoroshiro128plusplus", family[uint64](Xoroshiro128PlusPlus))
	engine.RegisterDriver("xoroshiro128starstar", family[uint64](Xoroshiro128StarStar))
	engine.RegisterDriver("xoroshiro1024plusplus", family[uint64](Xoroshiro1024PlusPlus))
	engine.RegisterDriver("xoroshiro1024star", family[uint64](Xoroshiro1024Star))
	engine.RegisterDriver("xoroshiro1024starstar", family[uint64](Xoroshiro1024StarStar))
}
