// Package xoshiro implements Blackman and Vigna's xoshiro generators with
// four or eight state words and the +, ++ and ** scramblers.
package xoshiro

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// Scrambler selects the output function.
type Scrambler int

// Output functions.
const (
	Plus Scrambler = iota
	PlusPlus
	StarStar
)

// Params describe a variant: N state words, the linear engine's shift A
// and rotation B, and the scrambler with its rotation R for ++.
type Params struct {
	N         int
	A, B      uint
	Scrambler Scrambler
	R         uint
}

// Published variants.
var (
	Xoshiro128Plus       = Params{N: 4, A: 9, B: 11, Scrambler: Plus}
	Xoshiro128PlusPlus   = Params{N: 4, A: 9, B: 11, Scrambler: PlusPlus, R: 7}
	Xoshiro128StarStar   = Params{N: 4, A: 9, B: 11, Scrambler: StarStar}
	Xoshiro256Plus       = Params{N: 4, A: 17, B: 45, Scrambler: Plus}
	Xoshiro256PlusPlus   = Params{N: 4, A: 17, B: 45, Scrambler: PlusPlus, R: 23}
	Xoshiro256StarStar   = Params{N: 4, A: 17, B: 45, Scrambler: StarStar}
	Xoshiro512Plus       = Params{N: 8, A: 11, B: 21, Scrambler: Plus}
	Xoshiro512PlusPlus   = Params{N: 8, A: 11, B: 21, Scrambler: PlusPlus, R: 17}
	Xoshiro512StarStar   = Params{N: 8, A: 11, B: 21, Scrambler: StarStar}
	Xoshiro64StarStar16  = Params{N: 4, A: 5, B: 11, Scrambler: StarStar}
	Xoshiro32StarStar8   = Params{N: 4, A: 3, B: 7, Scrambler: StarStar}
	Xoshiro32StarStar8v2 = Params{N: 4, A: 3, B: 1, Scrambler: StarStar}
)

// DefaultSeed is the seed of the default engine.
const DefaultSeed = 1

var (
	seedConstants4 = [4]uint64{0x01d353e5f3993bb0, 0x7b9c0df6cb193b20, 0xfdfcaa91110765b6, 0x2d24cbe0ef44dcd2}
	seedConstants8 = [8]uint64{
		0x1ced436497db2a59, 0x75474f85d8a6892c, 0xa0fef4b8094c9c86, 0x748fa1a9bb555169,
		0xd7a59a6d64e66858, 0xf03b7efdb73db601, 0xfab342a99dd71962, 0x8a6921456faa6b54,
	}
)

const seedDiscard = 16

// Engine is a xoshiro generator.
type Engine[T engine.Word] struct {
	p Params
	s [8]T
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New creates an engine from explicit state words. An all-zero state has
// its last word set to one.
func New[T engine.Word](p Params, state ...T) *Engine[T] {
	w := bitops.Width[T]()
	if p.N != 4 && p.N != 8 {
		panic("xoshiro: state must have 4 or 8 words")
	}
	if p.A >= w || p.B >= w || p.R >= w || len(state) != p.N {
		panic("xoshiro: invalid parameters")
	}
	e := &Engine[T]{p: p}
	var nonzero T
	for i, v := range state {
		e.s[i] = v
		nonzero |= v
	}
	if nonzero == 0 {
		e.s[p.N-1] = 1
	}
	return e
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, DefaultSeed)
}

// NewSeeded spreads seed over the state with fixed offsets and multipliers
// and discards the first outputs.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	s := T(seed)
	state := make([]T, p.N)
	for i := range state {
		var c T
		if p.N == 4 {
			c = T(seedConstants4[i])
		} else {
			c = T(seedConstants8[i])
		}
		switch i % 4 {
		case 0:
			state[i] = c + s
		case 1:
			state[i] = c * (s + 1)
		case 2:
			state[i] = c - s
		case 3:
			state[i] = c * (s - 1)
		}
	}
	e := New(p, state...)
	e.Discard(seedDiscard)
	return e
}

// NewFromSeq creates an engine whose state words are drawn from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, bitops.Width[T](), p.N)
	state := make([]T, p.N)
	for i := range state {
		state[i] = T(v[i])
	}
	return New(p, state...)
}

func (e *Engine[T]) Peek() T {
	s := &e.s
	last := s[3]
	if e.p.N == 8 {
		last = s[2]
	}
	switch e.p.Scrambler {
	case PlusPlus:
		if e.p.N == 8 {
			return bitops.RotateLeft(s[0]+last, e.p.R) + last
		}
		return bitops.RotateLeft(s[0]+last, e.p.R) + s[0]
	case StarStar:
		return bitops.RotateLeft(s[1]*5, 7) * 9
	default:
		return s[0] + last
	}
}

func (e *Engine[T]) Advance() {
	s := &e.s
	t := s[1] << e.p.A
	if e.p.N == 8 {
		s[2] ^= s[0]
		s[5] ^= s[1]
		s[1] ^= s[2]
		s[7] ^= s[3]
		s[3] ^= s[4]
		s[4] ^= s[5]
		s[0] ^= s[6]
		s[6] ^= s[7]
		s[6] ^= t
		s[7] = bitops.RotateLeft(s[7], e.p.B)
		return
	}
	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bitops.RotateLeft(s[3], e.p.B)
}

func (e *Engine[T]) Rewind() {
	s := &e.s
	if e.p.N == 8 {
		s[7] = bitops.RotateRight(s[7], e.p.B)
		s[1] ^= s[2]
		s[6] ^= s[1] << e.p.A
		s[6] ^= s[7]
		s[0] ^= s[6]
		s[4] ^= s[5]
		s[3] ^= s[4]
		s[7] ^= s[3]
		s[5] ^= s[1]
		s[2] ^= s[0]
		return
	}
	x := bitops.RotateRight(s[3], e.p.B)
	s[0] ^= x
	s[2] ^= s[0]
	s[1] ^= s[2] ^ s[0]
	s[1] = T(unshift.LeftXor(uint64(s[1]), bitops.Width[T](), e.p.A))
	s[2] ^= s[1] << e.p.A
	s[3] = x ^ s[1]
}

// Word returns state word i.
func (e *Engine[T]) Word(i int) T { return e.s[i] }

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
	engine.RegisterDriver("xoshiro128plus", family[uint32](Xoshiro128Plus))
	engine.RegisterDriver("xoshiro128plusplus", family[uint32](Xoshiro128PlusPlus))
	engine.RegisterDriver("xoshiro128starstar", family[uint32](Xoshiro128StarStar))
	engine.RegisterDriver("xoshiro256plus", family[uint64](Xoshiro256Plus))
	engine.RegisterDriver("xoshiro256plusplus", family[uint64](Xoshiro256PlusPlus))
	engine.RegisterDriver("xoshiro256starstar", family[uint64](Xoshiro256StarStar))
	engine.RegisterDriver("xoshiro512plus", family[uint64](Xoshiro512Plus))
	engine.RegisterDriver("xoshiro512plusplus", family[uint64](Xoshiro512PlusPlus))
	engine.RegisterDriver("xoshiro512starstar", family[uint64](Xoshiro512StarStar))
	engine.RegisterDriver("xoshiro64starstar16", family[uint16](Xoshiro64StarStar16))
	engine.RegisterDriver("xoshiro32starstar8", family[uint8](Xoshiro32StarStar8))
}
