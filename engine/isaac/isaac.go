// Package isaac implements Bob Jenkins' ISAAC and ISAAC-64 as streaming
// generators that emit one word per step.
package isaac

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// DefaultSeed is the first seed word of the default engines.
const DefaultSeed = 5489

var defaultSeed uint64 = DefaultSeed

const (
	size = 256
	mask = size - 1
	half = size / 2
)

// Params select the word size dependent constants.
type Params struct {
	// Shifts mix the accumulator, cycling with the position; positive
	// values shift left.
	Shifts [4]int
	Shift  uint
	// Flip complements the accumulator every fourth step.
	Flip  bool
	Ratio uint64
}

var (
	ISAAC32 = Params{Shifts: [4]int{13, -6, 2, -16}, Shift: 2, Ratio: 0x9e3779b9}
	ISAAC64 = Params{Shifts: [4]int{21, -5, 12, -33}, Shift: 3, Flip: true, Ratio: 0x9e3779b97f4a7c13}
)

// Word is the constraint of the ISAAC word types.
type Word interface {
	~uint32 | ~uint64
}

// Engine is an ISAAC generator over words of type T.
type Engine[T Word] struct {
	p       Params
	state   [size]T
	a, b, c T
	idx     int
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

func check[T Word]() uint {
	w := bitops.Width[T]()
	if w != 32 && w != 64 {
		panic("isaac: word size must be 32 or 64 bits")
	}
	return w
}

// New seeds the first two state words with s1 and s2 and scrambles the
// state with two passes of the ISAAC mix.
func New[T Word](p Params, s1, s2 T) *Engine[T] {
	w := check[T]()
	e := &Engine[T]{p: p, idx: mask}
	e.state[0], e.state[1] = s1, s2

	mix := mix32[T]
	if w == 64 {
		mix = mix64[T]
	}
	var t [8]T
	for i := range t {
		t[i] = T(p.Ratio)
	}
	for i := 0; i < 4; i++ {
		mix(&t)
	}
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < size; i += 8 {
			for x := range t {
				t[x] += e.state[i+x]
			}
			mix(&t)
			copy(e.state[i:], t[:])
		}
	}
	e.Advance()
	return e
}

// NewDefault returns an engine seeded with DefaultSeed.
func NewDefault[T Word](p Params) *Engine[T] {
	return New[T](p, T(defaultSeed), 0)
}

// NewFromSeq fills the state and then the three accumulators from seq.
func NewFromSeq[T Word](p Params, seq seedseq.Sequence) *Engine[T] {
	w := check[T]()
	e := &Engine[T]{p: p, idx: mask}
	words := seedseq.Words(seq, w, size+3)
	for i := range e.state {
		e.state[i] = T(words[i])
	}
	e.a, e.b, e.c = T(words[size]), T(words[size+1]), T(words[size+2])
	e.Advance()
	return e
}

func mix32[T Word](t *[8]T) {
	t[0] ^= t[1] << 11
	t[3] += t[0]
	t[1] += t[2]
	t[1] ^= t[2] >> 2
	t[4] += t[1]
	t[2] += t[3]
	t[2] ^= t[3] << 8
	t[5] += t[2]
	t[3] += t[4]
	t[3] ^= t[4] >> 16
	t[6] += t[3]
	t[4] += t[5]
	t[4] ^= t[5] << 10
	t[7] += t[4]
	t[5] += t[6]
	t[5] ^= t[6] >> 4
	t[0] += t[5]
	t[6] += t[7]
	t[6] ^= t[7] << 8
	t[1] += t[6]
	t[7] += t[0]
	t[7] ^= t[0] >> 9
	t[2] += t[7]
	t[0] += t[1]
}

func mix64[T Word](t *[8]T) {
	t[0] -= t[4]
	t[5] ^= t[7] >> 9
	t[7] += t[0]
	t[1] -= t[5]
	t[6] ^= t[0] << 9
	t[0] += t[1]
	t[2] -= t[6]
	t[7] ^= t[1] >> 23
	t[1] += t[2]
	t[3] -= t[7]
	t[0] ^= t[2] << 15
	t[2] += t[3]
	t[4] -= t[0]
	t[1] ^= t[3] >> 14
	t[3] += t[4]
	t[5] -= t[1]
	t[2] ^= t[4] << 20
	t[4] += t[5]
	t[6] -= t[2]
	t[3] ^= t[5] >> 17
	t[5] += t[6]
	t[7] -= t[3]
	t[4] ^= t[6] << 14
	t[6] += t[7]
}

func (e *Engine[T]) Peek() T { return e.b }

func (e *Engine[T]) Advance() {
	e.idx = (e.idx + 1) & mask
	if e.idx == 0 {
		e.c++
		e.b += e.c
	}
	x := e.state[e.idx]
	e.a ^= T(bitops.Shift(uint64(e.a), e.p.Shifts[e.idx&3]))
	if e.p.Flip && e.idx&3 == 0 {
		e.a = ^e.a
	}
	e.a += e.state[(e.idx+half)&mask]
	e.state[e.idx] = e.state[(x>>e.p.Shift)&mask] + e.a + e.b
	e.b = e.state[(e.state[e.idx]>>(8+e.p.Shift))&mask] + x
}

func (e *Engine[T]) Rewind() {
	x := e.b - e.state[(e.state[e.idx]>>(8+e.p.Shift))&mask]
	// The new word was computed from the old one when both indices
	// coincide.
	if int((x>>e.p.Shift)&mask) == e.idx {
		e.b = e.state[e.idx] - x - e.a
	} else {
		e.b = e.state[e.idx] - e.state[(x>>e.p.Shift)&mask] - e.a
	}
	e.a -= e.state[(e.idx+half)&mask]
	if e.p.Flip && e.idx&3 == 0 {
		e.a = ^e.a
	}
	e.a = T(unshift.Xor(uint64(e.a), bitops.Width[T](), e.p.Shifts[e.idx&3]))
	e.state[e.idx] = x
	if e.idx == 0 {
		e.b -= e.c
		e.c--
	}
	e.idx = (e.idx - 1) & mask
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

func init() {
	engine.RegisterDriver("isaac32", engine.Family[uint32]{
		Default: func() engine.Engine[uint32] { return NewDefault[uint32](ISAAC32) },
		FromSeed: func(seed uint64) engine.Engine[uint32] {
			return New[uint32](ISAAC32, uint32(seed), uint32(seed>>32))
		},
		FromSeq: func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq[uint32](ISAAC32, seq) },
	})
	engine.RegisterDriver("isaac64", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewDefault[uint64](ISAAC64) },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return New[uint64](ISAAC64, seed, 0) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq[uint64](ISAAC64, seq) },
	})
}
