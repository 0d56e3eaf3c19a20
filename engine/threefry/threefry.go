// Package threefry implements the Threefry counter-based generators of
// Salmon et al. A block of N words is the 20-round Threefry encryption of an
// N-word counter; stepping back regenerates the previous block.
package threefry

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// DefaultSeed is the first key word of the default engines.
const DefaultSeed = 20111115

var defaultSeed uint64 = DefaultSeed

// Params selects the word count, round count, key schedule parity constant
// and rotation table of a Threefry variant.
type Params struct {
	N      int
	Rounds int
	Parity uint64
	Rot    [16]uint
}

var (
	Threefry2x32 = Params{N: 2, Rounds: 20, Parity: 0x1BD11BDA,
		Rot: [16]uint{13, 15, 26, 6, 17, 29, 16, 24}}
	Threefry4x32 = Params{N: 4, Rounds: 20, Parity: 0x1BD11BDA,
		Rot: [16]uint{10, 26, 11, 21, 13, 27, 23, 5, 6, 20, 17, 11, 25, 10, 18, 20}}
	Threefry2x64 = Params{N: 2, Rounds: 20, Parity: 0x1BD11BDAA9FC1A22,
		Rot: [16]uint{16, 42, 12, 31, 16, 32, 24, 21}}
	Threefry4x64 = Params{N: 4, Rounds: 20, Parity: 0x1BD11BDAA9FC1A22,
		Rot: [16]uint{14, 16, 52, 57, 23, 40, 5, 37, 25, 33, 46, 12, 58, 22, 32, 32}}
)

// Engine is a Threefry generator. The counter always names the block after
// the one being read.
type Engine[T engine.Word] struct {
	p     Params
	ctr   [4]T
	key   [5]T
	block [4]T
	j     int
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New returns an engine keyed by up to N key words, missing words being
// zero, positioned at counter zero.
func New[T engine.Word](p Params, key ...T) *Engine[T] {
	if p.N != 2 && p.N != 4 || len(key) > p.N || p.Rounds <= 0 {
		panic("threefry: invalid parameters")
	}
	e := &Engine[T]{p: p}
	copy(e.key[:], key)
	return e.init()
}

// NewDefault returns an engine keyed by DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return New[T](p, T(defaultSeed))
}

// NewFromSeq draws all N key words from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	w := bitops.Width[T]()
	if w < 32 {
		w = 32
	}
	words := seedseq.Words(seq, w, p.N)
	key := make([]T, p.N)
	for i, v := range words {
		key[i] = T(v)
	}
	return New[T](p, key...)
}

func (e *Engine[T]) init() *Engine[T] {
	e.key[e.p.N] = T(e.p.Parity)
	for i := 0; i < e.p.N; i++ {
		e.key[e.p.N] ^= e.key[i]
	}
	e.j = e.p.N - 1
	e.Advance()
	return e
}

// SetCounter positions the engine at the first word of block c.
func (e *Engine[T]) SetCounter(c [4]T) {
	e.ctr = c
	e.j = e.p.N - 1
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

func (e *Engine[T]) generate() {
	p := e.p
	n := p.N
	var y [4]T
	for i := 0; i < n; i++ {
		y[i] = e.ctr[i] + e.key[i]
	}
	for r := 0; r < p.Rounds; r++ {
		if n == 2 {
			y[0] += y[1]
			y[1] = bitops.RotateLeft[T](y[1], p.Rot[r%8]) ^ y[0]
		} else {
			a, b := 1, 3
			if r%2 == 1 {
				a, b = 3, 1
			}
			y[0] += y[a]
			y[a] = bitops.RotateLeft[T](y[a], p.Rot[(2*r)%16]) ^ y[0]
			y[2] += y[b]
			y[b] = bitops.RotateLeft[T](y[b], p.Rot[(2*r+1)%16]) ^ y[2]
		}
		if r%4 == 3 {
			s := r/4 + 1
			for i := 0; i < n; i++ {
				y[i] += e.key[(s+i)%(n+1)]
			}
			y[n-1] += T(s)
		}
	}
	e.block = y
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
	register32("threefry2x32", Threefry2x32)
	register32("threefry4x32", Threefry4x32)
	register64("threefry2x64", Threefry2x64)
	register64("threefry4x64", Threefry4x64)
}
