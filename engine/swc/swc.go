// Package swc implements Marsaglia and Zaman's subtract-with-borrow
// generators and the RANLUX discard-block adaptors built on them.
//
// Stepping backward needs the borrow that the previous step consumed. It is
// recovered from the buffer: a step whose subtrahend and output differ
// borrowed exactly when the subtrahend is smaller; equal pairs pass the
// borrow through, so the search continues further back.
package swc

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/engine/lcg"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params describe a generator x[i] = x[i-S] - x[i-R] - borrow modulo 2^W.
type Params struct {
	W    uint
	S, R int
}

// Published variants.
var (
	Ranlux24Base = Params{W: 24, S: 10, R: 24}
	Ranlux48Base = Params{W: 48, S: 5, R: 12}
)

// DefaultSeed seeds the default engine. A zero seed selects it as well, as
// do sequence words whose first steps cannot be retraced.
const DefaultSeed = 19780503

// seedEngine expands an integer seed into the initial words.
var seedEngine = lcg.Params{W: 32, A: 40014, M: 2147483563}

// Engine is a subtract-with-borrow generator. It is kept one step ahead:
// the most recent output, the slot behind the cursor, is the value Peek
// returns.
type Engine[T engine.Word] struct {
	p     Params
	mask  T
	state *circular.Buffer[T]
	carry T
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

func newEngine[T engine.Word](p Params) *Engine[T] {
	if p.W == 0 || p.W > bitops.Width[T]() || p.S < 1 || p.S >= p.R {
		panic("swc: invalid parameters")
	}
	return &Engine[T]{p: p, mask: T(bitops.Mask(p.W)), state: circular.New[T](p.R)}
}

func (p Params) seedWords() int { return p.R * int((p.W+31)/32) }

// expand draws the initial words from the 40014 mod 2147483563 LCG, as the
// standard library engines do.
func (p Params) expand(seed uint32) []uint32 {
	g := lcg.New[uint32](seedEngine, uint64(seed))
	seeds := make([]uint32, p.seedWords())
	for i := range seeds {
		seeds[i] = g.Next()
	}
	return seeds
}

// fromWords builds an engine from seed words. Words that leave a run of
// steps whose borrow cannot be recovered, such as all zero words, are
// replaced by the expansion of DefaultSeed.
func fromWords[T engine.Word](p Params, seeds []uint32) *Engine[T] {
	e := newEngine[T](p)
	e.init(seeds)
	if !e.retraces() {
		e = newEngine[T](p)
		e.init(p.expand(DefaultSeed))
	}
	return e
}

// NewSeeded expands seed into the initial words.
func NewSeeded[T engine.Word](p Params, seed uint32) *Engine[T] {
	if seed == 0 {
		seed = DefaultSeed
	}
	return fromWords[T](p, p.expand(seed))
}

// NewDefault creates an engine with DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] { return NewSeeded[T](p, 0) }

// NewFromSeq draws ceil(W/32) words per element from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	seeds := make([]uint32, p.seedWords())
	seq.Generate(seeds)
	return fromWords[T](p, seeds)
}

// retraces reports whether stepping 2R values forward and back restores e.
func (e *Engine[T]) retraces() bool {
	c := e.Clone()
	n := 2 * e.p.R
	for i := 0; i < n; i++ {
		c.Advance()
	}
	for i := 0; i < n; i++ {
		c.Rewind()
	}
	return c.Equal(e)
}

func (e *Engine[T]) init(seeds []uint32) {
	k := int((e.p.W + 31) / 32)
	data := e.state.Data()
	for i := range data {
		var v uint64
		for j := 0; j < k; j++ {
			v += uint64(seeds[i*k+j]) << (32 * j)
		}
		data[i] = T(v) & e.mask
	}
	if e.state.At(e.p.R-1) == 0 {
		e.carry = 1
	}

	// Keep the borrow that the backward step reconstructs.
	for i := 0; i < e.p.R; i++ {
		e.Advance()
	}
	for i := 0; i < e.p.R; i++ {
		e.Rewind()
	}
	e.Advance()
}

func (e *Engine[T]) Peek() T { return e.state.At(-1) }

func (e *Engine[T]) Advance() {
	xs := e.state.At(e.p.R - e.p.S)
	xr := e.state.Ptr(0)
	var borrow T
	if xs < *xr || (e.carry != 0 && xs == *xr) {
		borrow = 1
	}
	*xr = (xs - *xr - e.carry) & e.mask
	e.carry = borrow
	e.state.Inc()
}

func (e *Engine[T]) Rewind() {
	e.state.Dec()
	data := e.state.Data()
	r := e.p.R
	xri := e.state.Index()
	xsi := (xri - e.p.S + r) % r
	xs, xr := data[xsi], &data[xri]
	if xs != *xr {
		for {
			xri = (xri - 1 + r) % r
			xsi = (xsi - 1 + r) % r
			if data[xsi] != data[xri] {
				break
			}
		}
		e.carry = 0
		if data[xsi] < data[xri] {
			e.carry = 1
		}
	}
	*xr = (xs - *xr - e.carry) & e.mask
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return e.mask }

// Equal reports whether e and o hold the same logical state.
func (e *Engine[T]) Equal(o *Engine[T]) bool {
	return e.p == o.p && e.carry == o.carry && e.state.Equal(o.state)
}

// Clone returns an independent copy of e.
func (e *Engine[T]) Clone() *Engine[T] {
	c := *e
	c.state = e.state.Clone()
	return &c
}

// BlockParams describe a discard-block adaptor: of every P values of the
// base engine, the first R are used.
type BlockParams struct {
	Base Params
	P, R int
}

// RANLUX luxury levels from the standard library.
var (
	Ranlux24 = BlockParams{Base: Ranlux24Base, P: 223, R: 23}
	Ranlux48 = BlockParams{Base: Ranlux48Base, P: 389, R: 11}
)

// Ranlux is a discard-block adaptor over a subtract-with-borrow engine.
type Ranlux[T engine.Word] struct {
	p    BlockParams
	base *Engine[T]
	n    int
}

var _ engine.Engine[uint64] = &Ranlux[uint64]{}

// NewRanlux wraps base. base must have been built with p.Base.
func NewRanlux[T engine.Word](p BlockParams, base *Engine[T]) *Ranlux[T] {
	if p.R < 1 || p.R > p.P || base.p != p.Base {
		panic("swc: invalid block parameters")
	}
	return &Ranlux[T]{p: p, base: base}
}

func (e *Ranlux[T]) Peek() T { return e.base.Peek() }

func (e *Ranlux[T]) Advance() {
	e.base.Advance()
	e.n++
	if e.n == e.p.R {
		e.base.Discard(uint64(e.p.P - e.p.R))
		e.n = 0
	}
}

func (e *Ranlux[T]) Rewind() {
	if e.n == 0 {
		for i := e.p.R; i < e.p.P; i++ {
			e.base.Rewind()
		}
		e.n = e.p.R
	}
	e.base.Rewind()
	e.n--
}

func (e *Ranlux[T]) Next() T          { return engine.Next[T](e) }
func (e *Ranlux[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Ranlux[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Ranlux[T]) Min() T           { return e.base.Min() }
func (e *Ranlux[T]) Max() T           { return e.base.Max() }

// Equal reports whether e and o are in the same state.
func (e *Ranlux[T]) Equal(o *Ranlux[T]) bool {
	return e.p == o.p && e.n == o.n && e.base.Equal(o.base)
}

func family[T engine.Word](p Params) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return NewSeeded[T](p, uint32(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func blockFamily[T engine.Word](p BlockParams) engine.Family[T] {
	return engine.Family[T]{
		Default: func() engine.Engine[T] { return NewRanlux(p, NewDefault[T](p.Base)) },
		FromSeed: func(seed uint64) engine.Engine[T] {
			return NewRanlux(p, NewSeeded[T](p.Base, uint32(seed)))
		},
		FromSeq: func(seq seedseq.Sequence) engine.Engine[T] {
			return NewRanlux(p, NewFromSeq[T](p.Base, seq))
		},
	}
}

func init() {
	engine.RegisterDriver("ranlux24_base", family[uint32](Ranlux24Base))
	engine.RegisterDriver("ranlux48_base", family[uint64](Ranlux48Base))
	engine.RegisterDriver("ranlux24", blockFamily[uint32](Ranlux24))
	engine.RegisterDriver("ranlux48", blockFamily[uint64](Ranlux48))
}
