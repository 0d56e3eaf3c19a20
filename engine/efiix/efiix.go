// Package efiix implements Chris Doty-Humphrey's EFIIX generator, which
// mixes a counter-driven iteration table with a state-driven indirection
// table. Every step writes back the entries it read, so the tables can be
// restored when stepping back.
package efiix

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/engine/jsf"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

const (
	iterationSize   = 32
	indirectionSize = 16

	// Rounds of the arbee generators that expand the seed.
	seederRounds = 12
)

// Params hold the rotation of a variant.
type Params struct {
	Rot uint
}

// Published variants, named by word width.
var (
	EFIIX8x48  = Params{Rot: 3}
	EFIIX16x48 = Params{Rot: 7}
	EFIIX32x48 = Params{Rot: 13}
	EFIIX64x48 = Params{Rot: 25}
)

// DefaultSeed seeds NewDefault.
const DefaultSeed = 5489

// Engine is an EFIIX generator emitting words of type T.
type Engine[T engine.Word] struct {
	p           Params
	iteration   [iterationSize]T
	indirection [indirectionSize]T
	i, a, b, c  T
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

func newEngine[T engine.Word](p Params) *Engine[T] {
	if p.Rot >= bitops.Width[T]() {
		panic("efiix: rotation exceeds word width")
	}
	return &Engine[T]{p: p}
}

// NewDefault creates an engine with DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, DefaultSeed)
}

// NewSeeded expands seed into the tables. Every seed, zero included, gives
// a usable state. 8-bit engines run a table-filling warm-up on the seed
// bytes; wider ones draw their state from arbee.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	e := newEngine[T](p)
	if bitops.Width[T]() == 8 {
		e.seedNarrow(seed)
	} else {
		e.seedWide(seed)
	}
	return e
}

// NewFromSeq draws a, b, c, i and then both tables from seq, in that order.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	e := newEngine[T](p)
	f := seedseq.NewFiller(seq, bitops.Width[T](), 4+iterationSize+indirectionSize)
	e.a, e.b, e.c, e.i = T(f.Next()), T(f.Next()), T(f.Next()), T(f.Next())
	for k := range e.iteration {
		e.iteration[k] = T(f.Next())
	}
	for k := range e.indirection {
		e.indirection[k] = T(f.Next())
	}
	return e
}

func (e *Engine[T]) seedWide(s1 uint64) {
	s2, s3, s4 := s1, s1, s1
	seeder := jsf.NewRounds[uint64](jsf.Arbee, seederRounds, s1, s2, s3, s4)
	for k := range e.indirection {
		e.indirection[k] = T(seeder.Next())
	}
	e.i = T(seeder.Next())
	start := int(uint64(e.i) % iterationSize)
	for j := 0; j < iterationSize; j++ {
		e.iteration[(j+start)%iterationSize] = T(seeder.Next())
	}
	e.a, e.b, e.c = T(seeder.Next()), T(seeder.Next()), T(seeder.Next())
	e.Discard(64)

	seeder.Next()
	s1 += seeder.Next()
	s2 += seeder.Next()
	s3 += seeder.Next()
	seeder = jsf.NewRounds[uint64](jsf.Arbee, seederRounds,
		s1^uint64(e.a), s2^uint64(e.b), s3^uint64(e.c), ^s4)
	for k := range e.indirection {
		e.indirection[k] ^= T(seeder.Next())
	}
	e.Discard(iterationSize + 16)
}

func (e *Engine[T]) seedNarrow(s1 uint64) {
	s2, s3, s4 := s1, s1, s1
	for x := 0; x < 9; x++ {
		e.a += T(s1)
		e.b += T(s2)
		e.c += T(s3)
		e.iteration[0] += T(s4)
		s1 >>= 8
		s2 >>= 8
		s3 >>= 1
		s4 >>= 1
		if x != 0 {
			e.Discard(iterationSize)
			continue
		}
		// Grow the filled part of the tables one power of two at a time.
		mask := uint64(1)
		for ; mask < indirectionSize-1; mask = mask<<1 | 1 {
			for y := uint64(0); y <= mask; y++ {
				iterated := e.maskedStep(mask)
				e.indirection[y+mask+1] = e.b ^ iterated
			}
		}
		for ; mask < iterationSize-1; mask = mask<<1 | 1 {
			for y := uint64(0); y <= mask; y++ {
				e.maskedStep(mask)
			}
		}
	}
}

// maskedStep is Advance restricted to the first mask+1 table entries.
func (e *Engine[T]) maskedStep(mask uint64) T {
	ci, ii := uint64(e.c)&mask, uint64(e.i)&mask
	iterated := e.iteration[ii%iterationSize]
	indirect := e.indirection[ci%indirectionSize]
	e.indirection[ci] = iterated + e.a
	e.iteration[ii] = indirect
	old := e.a ^ e.b
	e.a = e.b + e.i
	e.i++
	e.b = e.c + indirect
	e.c = old + bitops.RotateLeft(e.c, 3)
	return iterated
}

func (e *Engine[T]) Peek() T {
	iterated := e.iteration[uint64(e.i)%iterationSize]
	indirect := e.indirection[uint64(e.c)%indirectionSize]
	return (e.c + indirect) ^ iterated
}

func (e *Engine[T]) Advance() {
	ii, ci := uint64(e.i)%iterationSize, uint64(e.c)%indirectionSize
	iterated, indirect := e.iteration[ii], e.indirection[ci]
	e.indirection[ci] = iterated + e.a
	e.iteration[ii] = indirect
	old := e.a ^ e.b
	e.a = e.b + e.i
	e.i++
	e.b = e.c + indirect
	e.c = old + bitops.RotateLeft(e.c, e.p.Rot)
}

func (e *Engine[T]) Rewind() {
	e.i--
	ii := uint64(e.i) % iterationSize
	indirect := e.iteration[ii]
	c := e.c
	e.c = e.b - indirect
	old := c - bitops.RotateLeft(e.c, e.p.Rot)
	e.b = e.a - e.i
	e.a = old ^ e.b
	ci := uint64(e.c) % indirectionSize
	e.iteration[ii] = e.indirection[ci] - e.a
	e.indirection[ci] = indirect
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
	engine.RegisterDriver("efiix8x48", family[uint8](EFIIX8x48))
	engine.RegisterDriver("efiix16x48", family[uint16](EFIIX16x48))
	engine.RegisterDriver("efiix32x48", family[uint32](EFIIX32x48))
	engine.RegisterDriver("efiix64x48", family[uint64](EFIIX64x48))
}
