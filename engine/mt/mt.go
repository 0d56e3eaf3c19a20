// Package mt implements the Mersenne Twister, stepping its twist one word at
// a time so that each word can be untwisted again.
package mt

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// DefaultSeed is the seed of the default engines.
const DefaultSeed = 5489

var defaultSeed uint64 = DefaultSeed

// Params are the constants of a Mersenne Twister in the usual notation.
type Params struct {
	W, N, M, R uint
	A          uint64
	U          uint
	D          uint64
	S          uint
	B          uint64
	T          uint
	C          uint64
	L          uint
	F          uint64
}

var (
	MT19937 = Params{
		W: 32, N: 624, M: 397, R: 31, A: 0x9908b0df,
		U: 11, D: 0xffffffff, S: 7, B: 0x9d2c5680, T: 15, C: 0xefc60000, L: 18,
		F: 1812433253,
	}
	MT19937_64 = Params{
		W: 64, N: 312, M: 156, R: 31, A: 0xb5026f5aa96619e9,
		U: 29, D: 0x5555555555555555, S: 17, B: 0x71d67fffeda60000, T: 37, C: 0xfff7eee000000000, L: 43,
		F: 6364136223846793005,
	}
)

// Engine is a Mersenne Twister. The cursor sits one past the most recently
// twisted word, which is the next output once tempered.
type Engine[T engine.Word] struct {
	p     Params
	state *circular.Buffer[T]
	cache T
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

func check[T engine.Word](p Params) {
	if p.W < 3 || p.W > bitops.Width[T]() || p.M < 1 || p.M > p.N || p.R > p.W {
		panic("mt: invalid parameters")
	}
}

// New seeds an engine with the classic multiplicative initialization.
func New[T engine.Word](p Params, seed T) *Engine[T] {
	check[T](p)
	mask := T(bitops.Mask(p.W))
	e := &Engine[T]{p: p, state: circular.New[T](int(p.N))}
	data := e.state.Data()
	data[0] = seed & mask
	f := T(p.F)
	for j := 1; j < len(data); j++ {
		prev := data[j-1]
		data[j] = (f*(prev^(prev>>(p.W-2))) + T(j)) & mask
	}
	return e.init()
}

// NewDefault returns an engine seeded with DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return New[T](p, T(defaultSeed))
}

// NewFromSeq fills the state from seq. A state whose significant bits are
// all zero gets its top bit set.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	check[T](p)
	e := &Engine[T]{p: p, state: circular.New[T](int(p.N))}
	data := e.state.Data()
	zero := true
	for i, v := range seedseq.Words(seq, p.W, int(p.N)) {
		data[i] = T(v)
		if i == 0 {
			v &^= bitops.Mask(p.R)
		}
		if v != 0 {
			zero = false
		}
	}
	if zero {
		data[0] = T(1) << (p.W - 1)
	}
	return e.init()
}

func (e *Engine[T]) init() *Engine[T] {
	e.Advance()
	e.Rewind()
	e.Advance()
	return e
}

func (e *Engine[T]) temper(y T) T {
	p := e.p
	y ^= (y >> p.U) & T(p.D)
	y ^= (y << p.S) & T(p.B)
	y ^= (y << p.T) & T(p.C)
	y ^= y >> p.L
	return y
}

func (e *Engine[T]) Peek() T { return e.temper(e.state.At(-1)) }

func (e *Engine[T]) Advance() {
	p, s := e.p, e.state
	lower := T(bitops.Mask(p.R))
	next := s.At(1)
	e.cache = (s.At(0) &^ lower) | (next & lower)
	s.Set(0, s.At(int(p.M))^(e.cache>>1)^((next&1)*T(p.A)))
	s.Inc()
}

func (e *Engine[T]) Rewind() {
	p, s := e.p, e.state
	mask := T(bitops.Mask(p.W))
	lower := T(bitops.Mask(p.R))
	s.Dec()
	prev := e.cache
	c := s.At(-1) ^ s.At(int(p.M)-1)
	top := c >> (p.W - 1)
	e.cache = (((c ^ top*T(p.A)) << 1) | top) & mask
	s.Set(0, (prev&^lower)|(e.cache&lower))
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return T(bitops.Mask(e.p.W)) }

// Untemper inverts the output transformation, recovering the state word
// behind an output.
func (e *Engine[T]) Untemper(y T) T {
	p := e.p
	y = T(unshift.RightXorAnd(uint64(y), p.W, p.L, bitops.Mask(p.W)))
	y = T(unshift.LeftXorAnd(uint64(y), p.W, p.T, p.C))
	y = T(unshift.LeftXorAnd(uint64(y), p.W, p.S, p.B))
	y = T(unshift.RightXorAnd(uint64(y), p.W, p.U, p.D))
	return y
}

// Equal reports whether e and o are the same twister in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool {
	return e.p == o.p && e.cache == o.cache && e.state.Equal(o.state)
}

// Clone returns an independent copy of e.
func (e *Engine[T]) Clone() *Engine[T] {
	c := *e
	c.state = e.state.Clone()
	return &c
}

func init() {
	engine.RegisterDriver("mt19937", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewDefault[uint32](MT19937) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return New[uint32](MT19937, uint32(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq[uint32](MT19937, seq) },
	})
	engine.RegisterDriver("mt19937_64", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewDefault[uint64](MT19937_64) },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return New[uint64](MT19937_64, seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq[uint64](MT19937_64, seq) },
	})
}
