// Package romu implements Mark Overton's Romu generators, which mix a
// multiplication with rotations and additions and keep no counter.
package romu

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params describe a variant with N state words (2, 3 or 4). Rot2 is zero
// for the two-word "jr" form.
type Params struct {
	N          int
	Mult       uint64
	Rot1, Rot2 uint
}

// Published variants.
var (
	Quad   = Params{N: 4, Mult: 15241094284759029579, Rot1: 52, Rot2: 19}
	Trio   = Params{N: 3, Mult: 15241094284759029579, Rot1: 12, Rot2: 44}
	Duo    = Params{N: 2, Mult: 15241094284759029579, Rot1: 36, Rot2: 15}
	DuoJr  = Params{N: 2, Mult: 15241094284759029579, Rot1: 27}
	Quad32 = Params{N: 4, Mult: 3323815723, Rot1: 26, Rot2: 9}
	Trio32 = Params{N: 3, Mult: 3323815723, Rot1: 6, Rot2: 22}
)

// DefaultSeed is the first state word of the default engine; the others
// start at zero.
const DefaultSeed uint64 = 0x9f57c403d06c42fc

func defaultSeed[T engine.Word]() T {
	s := DefaultSeed
	return T(s)
}

// Engine is a Romu generator over words of type T.
type Engine[T engine.Word] struct {
	p    Params
	mult T
	inv  T
	s    [4]T
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New creates an engine from up to N seed words; missing words are zero.
// An all-zero state is replaced by the default seed.
func New[T engine.Word](p Params, seeds ...T) *Engine[T] {
	w := bitops.Width[T]()
	if p.N < 2 || p.N > 4 || len(seeds) > p.N || p.Rot1 >= w || p.Rot2 >= w {
		panic("romu: invalid parameters")
	}
	e := &Engine[T]{p: p, mult: T(p.Mult)}
	e.inv = T(modular.InversePow2(w, uint64(e.mult)))
	var nonzero T
	for i, v := range seeds {
		e.s[i] = v
		nonzero |= v
	}
	if nonzero == 0 {
		e.s[0] = defaultSeed[T]()
	}
	return e
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](p Params) *Engine[T] { return New(p, defaultSeed[T]()) }

// NewFromSeq fills all state words from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, bitops.Width[T](), p.N)
	seeds := make([]T, p.N)
	for i := range seeds {
		seeds[i] = T(v[i])
	}
	return New(p, seeds...)
}

func (e *Engine[T]) Peek() T {
	if e.p.N == 4 {
		return e.s[1]
	}
	return e.s[0]
}

func (e *Engine[T]) Advance() {
	s := &e.s
	r1, r2 := e.p.Rot1, e.p.Rot2
	switch {
	case e.p.N == 4:
		w, x, y, z := s[0], s[1], s[2], s[3]
		s[0] = e.mult * z
		s[1] = z + bitops.RotateLeft(w, r1)
		s[2] = y - x
		s[3] = bitops.RotateLeft(y+w, r2)
	case e.p.N == 3:
		x, y, z := s[0], s[1], s[2]
		s[0] = e.mult * z
		s[1] = bitops.RotateLeft(y-x, r1)
		s[2] = bitops.RotateLeft(z-y, r2)
	case r2 != 0:
		x, y := s[0], s[1]
		s[0] = e.mult * y
		s[1] = bitops.RotateLeft(y, r1) + bitops.RotateLeft(y, r2) - x
	default:
		x, y := s[0], s[1]
		s[0] = e.mult * y
		s[1] = bitops.RotateLeft(y-x, r1)
	}
}

func (e *Engine[T]) Rewind() {
	s := &e.s
	r1, r2 := e.p.Rot1, e.p.Rot2
	switch {
	case e.p.N == 4:
		yw := bitops.RotateRight(s[3], r2)
		s[3] = s[0] * e.inv
		s[0] = bitops.RotateRight(s[1]-s[3], r1)
		yx := s[2]
		s[2] = yw - s[0]
		s[1] = s[2] - yx
	case e.p.N == 3:
		zy := bitops.RotateRight(s[2], r2)
		s[2] = s[0] * e.inv
		yx := bitops.RotateRight(s[1], r1)
		s[1] = s[2] - zy
		s[0] = s[1] - yx
	case r2 != 0:
		y := s[0] * e.inv
		s[0] = bitops.RotateLeft(y, r1) + bitops.RotateLeft(y, r2) - s[1]
		s[1] = y
	default:
		yx := bitops.RotateRight(s[1], r1)
		s[1] = s[0] * e.inv
		s[0] = s[1] - yx
	}
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

// Equal reports whether e and o are in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool { return *e == *o }

// Mono32 is RomuMono32: a single 32-bit word of state emitting its upper
// 16 bits.
type Mono32 struct {
	s uint32
}

var _ engine.Engine[uint16] = &Mono32{}

const (
	monoMult uint32 = 3611795771
	monoRot         = 12
)

var monoInverse = uint32(modular.InversePow2(32, uint64(monoMult)))

// NewMono32 creates a Mono32 from the low 29 bits of seed.
func NewMono32(seed uint32) *Mono32 {
	return &Mono32{s: seed&0x1fffffff + 1156979152}
}

// NewMono32Default creates a Mono32 from the default seed.
func NewMono32Default() *Mono32 { return NewMono32(defaultSeed[uint32]()) }

func (e *Mono32) Peek() uint16     { return uint16(e.s >> 16) }
func (e *Mono32) Advance()         { e.s = bitops.RotateLeft(e.s*monoMult, monoRot) }
func (e *Mono32) Rewind()          { e.s = bitops.RotateRight(e.s, monoRot) * monoInverse }
func (e *Mono32) Next() uint16     { return engine.Next[uint16](e) }
func (e *Mono32) Prev() uint16     { return engine.Prev[uint16](e) }
func (e *Mono32) Discard(n uint64) { engine.Discard[uint16](e, n) }
func (e *Mono32) Min() uint16      { return 0 }
func (e *Mono32) Max() uint16      { return ^uint16(0) }

// Equal reports whether e and o are in the same state.
func (e *Mono32) Equal(o *Mono32) bool { return *e == *o }

func family[T engine.Word](p Params) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return New(p, T(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func init() {
	engine.RegisterDriver("romuquad", family[uint64](Quad))
	engine.RegisterDriver("romutrio", family[uint64](Trio))
	engine.RegisterDriver("romuduo", family[uint64](Duo))
	engine.RegisterDriver("romuduojr", family[uint64](DuoJr))
	engine.RegisterDriver("romuquad32", family[uint32](Quad32))
	engine.RegisterDriver("romutrio32", family[uint32](Trio32))
	engine.RegisterDriver("romumono32", engine.Family[uint16]{
		Default:  func() engine.Engine[uint16] { return NewMono32Default() },
		FromSeed: func(seed uint64) engine.Engine[uint16] { return NewMono32(uint32(seed)) },
		FromSeq: func(seq seedseq.Sequence) engine.Engine[uint16] {
			return NewMono32(uint32(seedseq.Words(seq, 32, 1)[0]))
		},
	})
}
