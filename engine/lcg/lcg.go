// Package lcg implements linear congruential generators, x' = (a*x + c) mod m,
// stepped backward with the modular inverse of a, and the 128-bit
// multiplicative generators of Lehmer's form.
package lcg

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params describe a generator over W-bit words. M is the modulus, zero
// meaning 2^W.
type Params struct {
	W       uint
	A, C, M uint64
}

// Published variants.
var (
	MinStdRand0 = Params{W: 32, A: 16807, M: 2147483647}
	MinStdRand  = Params{W: 32, A: 48271, M: 2147483647}
	ZX81        = Params{W: 16, A: 75, C: 74}
	RanQD1      = Params{W: 32, A: 1664525, C: 1013904223}
	RANDU       = Params{W: 32, A: 65539, M: 2147483648}
	Borland     = Params{W: 32, A: 22695477, C: 1, M: 2147483648}
	Newlib      = Params{W: 64, A: 6364136223846793005, C: 1, M: 9223372036854775808}
	Rand48      = Params{W: 48, A: 0x5DEECE66D, C: 0xB}
	MMIX        = Params{W: 64, A: 6364136223846793005, C: 1442695040888963407}
)

// DefaultSeed is the seed of the default engine.
const DefaultSeed = 1

// Engine is a linear congruential generator. The state is stepped once at
// construction, so the first value is a*seed + c.
type Engine[T engine.Word] struct {
	p     Params
	inv   uint64
	state uint64
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

// New creates an engine from seed, reduced to the modulus. With c = 0 a
// zero seed, which would be a fixed point, is replaced by one.
func New[T engine.Word](p Params, seed uint64) *Engine[T] {
	if p.W == 0 || p.W > bitops.Width[T]() {
		panic("lcg: word width exceeds the engine type")
	}
	e := &Engine[T]{p: p}
	if p.M == 0 {
		e.inv = modular.InversePow2(p.W, p.A)
		seed &= bitops.Mask(p.W)
	} else {
		if p.A >= p.M || p.C >= p.M || p.M-1 > bitops.Mask(p.W) {
			panic("lcg: invalid parameters")
		}
		e.inv = modular.Inverse(p.M, p.A)
		seed %= p.M
	}
	if p.C == 0 && seed == 0 {
		seed = 1
	}
	e.state = seed
	e.Advance()
	return e
}

// NewDefault creates an engine with DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] { return New[T](p, DefaultSeed) }

// NewFromSeq draws the seed from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	return New[T](p, seedseq.Words(seq, 64, 1)[0])
}

func (e *Engine[T]) Peek() T { return T(e.state) }

func (e *Engine[T]) Advance() {
	if e.p.M == 0 {
		e.state = (e.p.A*e.state + e.p.C) & bitops.Mask(e.p.W)
		return
	}
	e.state = (modular.MulMod(e.p.A, e.state, e.p.M) + e.p.C) % e.p.M
}

func (e *Engine[T]) Rewind() {
	if e.p.M == 0 {
		x := e.inv * (e.state - e.p.C)
		e.state = x & bitops.Mask(e.p.W)
		return
	}
	e.state = modular.MulMod(e.inv, (e.state+e.p.M-e.p.C)%e.p.M, e.p.M)
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }

func (e *Engine[T]) Min() T {
	if e.p.C == 0 {
		return 1
	}
	return 0
}

func (e *Engine[T]) Max() T {
	if e.p.M == 0 {
		return T(bitops.Mask(e.p.W))
	}
	return T(e.p.M - 1)
}

// Equal reports whether e and o are in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool { return *e == *o }

func family[T engine.Word](p Params) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return New[T](p, seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func init() {
	engine.RegisterDriver("minstd_rand0", family[uint32](MinStdRand0))
	engine.RegisterDriver("minstd_rand", family[uint32](MinStdRand))
	engine.RegisterDriver("zx81", family[uint16](ZX81))
	engine.RegisterDriver("ranqd1", family[uint32](RanQD1))
	engine.RegisterDriver("randu", family[uint32](RANDU))
	engine.RegisterDriver("borland", family[uint32](Borland))
	engine.RegisterDriver("newlib", family[uint64](Newlib))
	engine.RegisterDriver("rand48", family[uint64](Rand48))
	engine.RegisterDriver("mmix", family[uint64](MMIX))
	engine.RegisterDriver("mcg128", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewMCG128Default(MCG128) },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return NewMCG128(MCG128, seed) },
		FromSeq: func(seq seedseq.Sequence) engine.Engine[uint64] {
			return NewMCG128(MCG128, seedseq.Words(seq, 64, 1)[0])
		},
	})
	engine.RegisterDriver("mcg128_fast", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewMCG128Default(MCG128Fast) },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return NewMCG128(MCG128Fast, seed) },
		FromSeq: func(seq seedseq.Sequence) engine.Engine[uint64] {
			return NewMCG128(MCG128Fast, seedseq.Words(seq, 64, 1)[0])
		},
	})
}
