// Package philox implements the Philox counter-based generators of Salmon
// et al., stepping through blocks in either direction.
package philox

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// DefaultSeed is the first key word of the default engines.
const DefaultSeed = 20111115

var defaultSeed uint64 = DefaultSeed

// Params are the word count, round count, multipliers and Weyl key
// increments of a Philox variant.
type Params struct {
	N      int
	Rounds int
	Mult   [2]uint64
	Weyl   [2]uint64
}

var (
	Philox2x32 = Params{N: 2, Rounds: 10, Mult: [2]uint64{0xD256D193}, Weyl: [2]uint64{0x9E3779B9}}
	Philox4x32 = Params{N: 4, Rounds: 10, Mult: [2]uint64{0xD2511F53, 0xCD9E8D57}, Weyl: [2]uint64{0x9E3779B9, 0xBB67AE85}}
	Philox2x64 = Params{N: 2, Rounds: 10, Mult: [2]uint64{0xD2B74407B1CE6E93}, Weyl: [2]uint64{0x9E3779B97F4A7C15}}
	Philox4x64 = Params{N: 4, Rounds: 10, Mult: [2]uint64{0xD2E7470EE14C6C93, 0xCA5A826395121157}, Weyl: [2]uint64{0x9E3779B97F4A7C15, 0xBB67AE8584CAA73B}}
)

// Engine is a Philox generator over N words of type T with an N/2 word key.
type Engine[T engine.Word] struct {
	p     Params
	ctr   [4]T
	key   [2]T
	block [4]T
	j     int
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

func newEngine[T engine.Word](p Params, key [2]T) *Engine[T] {
	if p.N != 2 && p.N != 4 || p.Rounds <= 0 {
		panic("philox: invalid parameters")
	}
	e := &Engine[T]{p: p, key: key}
	e.SetCounter([4]T{})
	return e
}

// New returns an engine whose first key word is seed.
func New[T engine.Word](p Params, seed T) *Engine[T] {
	return newEngine[T](p, [2]T{seed})
}

// NewDefault returns an engine keyed by DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return New[T](p, T(defaultSeed))
}

// NewFromSeq draws the N/2 key words from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	w := bitops.Width[T]()
	if w < 32 {
		w = 32
	}
	var key [2]T
	for i, v := range seedseq.Words(seq, w, p.N/2) {
		key[i] = T(v)
	}
	return newEngine[T](p, key)
}

// SetCounter positions the engine at the first word of block c.
func (e *Engine[T]) SetCounter(c [4]T) {
	e.ctr = c
	e.j = e.p.N - 1
	e.dec()
	e.generate()
	e.inc()
	e.Advance()
}

func (e *Engine[T]) inc() {
	for i := 0; i < e.p.N; i++ {
		e.ctr[i]++
		if e.ctr[i] != 0 {
			return
		}
	}
}

func (e *Engine[T]) dec() {
	for i := 0; i < e.p.N; i++ {
		e.ctr[i]--
		if e.ctr[i] != ^T(0) {
			return
		}
	}
}

func mulhilo[T engine.Word](a, b T) (hi, lo T) {
	w := bitops.Width[T]()
	if w == 64 {
		h, l := bits.Mul64(uint64(a), uint64(b))
		return T(h), T(l)
	}
	prod := uint64(a) * uint64(b)
	return T(prod >> w), T(prod)
}

func (e *Engine[T]) generate() {
	p := e.p
	m0, m1 := T(p.Mult[0]), T(p.Mult[1])
	w0, w1 := T(p.Weyl[0]), T(p.Weyl[1])
	s := e.ctr
	k0, k1 := e.key[0], e.key[1]
	for r := 0; r < p.Rounds; r++ {
		if p.N == 2 {
			hi, lo := mulhilo(s[0], m0)
			s[0], s[1] = hi^k0^s[1], lo
			k0 += w0
			continue
		}
		hi0, lo0 := mulhilo(s[2], m1)
		hi2, lo2 := mulhilo(s[0], m0)
		s = [4]T{hi0 ^ k0 ^ s[1], lo0, hi2 ^ k1 ^ s[3], lo2}
		k0 += w0
		k1 += w1
	}
	e.block = s
}

func (e *Engine[T]) Peek() T { return e.block[e.j] }

func (e *Engine[T]) Advance() {
	e.j++
	if e.j == e.p.N {
		e.generate()
		e.inc()
		e.j = 0
	}
}

func (e *Engine[T]) Rewind() {
	if e.j == 0 {
		e.j = e.p.N
		e.dec()
		e.dec()
		e.generate()
		e.inc()
	}
	e.j--
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

func init() {
	register32 := func(name string, p Params) {
		engine.RegisterDriver(name, engine.Family[uint32]{
			Default:  func() engine.Engine[uint32] { return NewDefault[uint32](p) },
			FromSeed: func(seed uint64) engine.Engine[uint32] { return New[uint32](p, uint32(seed)) },
			FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq[uint32](p, seq) },
		})
	}
	register64 := func(name string, p Params) {
		engine.RegisterDriver(name, engine.Family[uint64]{
			Default:  func() engine.Engine[uint64] { return NewDefault[uint64](p) },
			FromSeed: func(seed uint64) engine.Engine[uint64] { return New[uint64](p, seed) },
			FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq[uint64](p, seq) },
		})
	}
	register32("philox2x32", Philox2x32)
	register32("philox4x32", Philox4x32)
	register64("philox2x64", Philox2x64)
	register64("philox4x64", Philox4x64)
}
