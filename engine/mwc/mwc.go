// Package mwc implements lag-r multiply-with-carry generators. The words
// and the carry share one ring buffer; stepping backward divides by the
// multiplier, since MWC is an LCG modulo m*2^w - 1 whose inverse multiplier
// is 2^w.
package mwc

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// Params describe a generator with Bits of state (words and carry) in
// W-bit words and multiplier M.
type Params struct {
	W, Bits uint
	M       uint64
}

// Published variants.
var (
	MWC64  = Params{W: 32, Bits: 64, M: 4294957665}
	MWC128 = Params{W: 64, Bits: 128, M: 0xffebb71d94fcdaf9}
	MWC192 = Params{W: 64, Bits: 192, M: 0xffa04e67b3c95d86}
	MWC256 = Params{W: 64, Bits: 256, M: 0xfff62cf2ccc0cdaf}
)

// DefaultSeed is the first word of the default engine, whose carry is
// one.
const DefaultSeed uint64 = 0x9f57c403d06c42fc

// Engine is a multiply-with-carry generator. The value under the cursor is
// the current output and the slot behind it holds the carry.
type Engine[T engine.Word] struct {
	p     Params
	state *circular.Buffer[T]
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New creates an engine from up to Bits/W values, the last being the
// carry, reduced modulo M. The two fixed points (all zero, and all ones
// with carry M-1) have their carry replaced by one.
func New[T engine.Word](p Params, values ...T) *Engine[T] {
	if p.W != bitops.Width[T]() || p.Bits%p.W != 0 || p.Bits/p.W < 2 || p.M == 0 || p.M > uint64(^T(0)) {
		panic("mwc: invalid parameters")
	}
	n := int(p.Bits / p.W)
	if len(values) > n {
		panic("mwc: too many seed values")
	}
	e := &Engine[T]{p: p, state: circular.New[T](n)}
	data := e.state.Data()
	copy(data, values)
	data[n-1] = T(uint64(data[n-1]) % p.M)

	allZero, allOnes := true, true
	for _, v := range data[:n-1] {
		allZero = allZero && v == 0
		allOnes = allOnes && v == ^T(0)
	}
	carry := uint64(data[n-1])
	if (allZero && carry == 0) || (allOnes && carry == p.M-1) {
		data[n-1] = 1
	}
	return e
}

// NewSeeded creates an engine whose first word is seed and whose carry is
// one.
func NewSeeded[T engine.Word](p Params, seed uint64) *Engine[T] {
	values := make([]T, p.Bits/p.W)
	values[0] = T(seed)
	values[len(values)-1] = 1
	return New(p, values...)
}

// NewDefault creates an engine with DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] { return NewSeeded[T](p, DefaultSeed) }

// NewFromSeq draws all words, the carry included, from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	n := int(p.Bits / p.W)
	values := make([]T, n)
	for i, v := range seedseq.Words(seq, p.W, n) {
		values[i] = T(v)
	}
	return New(p, values...)
}

func (e *Engine[T]) Peek() T { return e.state.At(0) }

func (e *Engine[T]) Advance() {
	e.state.Dec()
	c, x := e.state.Ptr(0), e.state.Ptr(-1)
	hi, lo := bits.Mul64(uint64(*x), e.p.M)
	lo, carry := bits.Add64(lo, uint64(*c), 0)
	hi += carry
	_, next := unshift.Shr128(hi, lo, e.p.W)
	*c, *x = T(lo), T(next)
}

func (e *Engine[T]) Rewind() {
	c, x := e.state.Ptr(0), e.state.Ptr(-1)
	hi, lo := unshift.Shl128(0, uint64(*x), e.p.W)
	lo |= uint64(*c)
	q, r := bits.Div64(hi, lo, e.p.M)
	*c, *x = T(r), T(q)
	e.state.Inc()
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
		FromSeed: func(seed uint64) engine.Engine[T] { return NewSeeded[T](p, seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func init() {
	engine.RegisterDriver("mwc64", family[uint32](MWC64))
	engine.RegisterDriver("mwc128", family[uint64](MWC128))
	engine.RegisterDriver("mwc192", family[uint64](MWC192))
	engine.RegisterDriver("mwc256", family[uint64](MWC256))
}
