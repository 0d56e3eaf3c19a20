// Package lfsr implements L'Ecuyer's combined Tausworthe generators:
// several linear feedback shift registers stepped together and xored.
package lfsr

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Component describes one register: K meaningful bits, feedback shift Q
// and step S.
type Component struct {
	K, Q, S uint
}

// Published combinations.
var (
	Taus88  = []Component{{31, 13, 12}, {29, 2, 4}, {28, 3, 17}}
	LFSR113 = []Component{{31, 6, 18}, {29, 2, 2}, {28, 13, 7}, {25, 3, 13}}
	LFSR258 = []Component{{63, 1, 10}, {55, 24, 5}, {52, 3, 29}, {47, 5, 23}, {41, 3, 8}}
)

// Default seeds for 32 and 64-bit words.
const (
	DefaultSeed32 uint64 = 987654321
	DefaultSeed64 uint64 = 123456789123456789
)

const maxComponents = 5

type register struct {
	Component
	w uint
}

func (r register) check() {
	if r.K >= r.w || r.S >= r.K || r.Q+r.S >= r.w || 2*r.K < r.w+r.S+r.Q || r.Q == 0 {
		panic("lfsr: invalid component")
	}
}

func (r register) forward(z uint64) uint64 {
	b := (((z << r.Q) & bitops.Mask(r.w)) ^ z) >> (r.K - r.S)
	return ((z & bitops.MaskAt(r.K-r.S, r.w-r.K)) << r.S) ^ b
}

// prevHigh recovers the K meaningful bits of the predecessor of x. The
// low W-K bits of the result are zero.
func (r register) prevHigh(x uint64) uint64 {
	zp := (x >> r.S) & bitops.MaskAt(r.K-r.S, r.w-r.K)
	for j := r.w - r.S; j < r.w; {
		size := r.Q
		if r.w-j < size {
			size = r.w - j
		}
		zp |= ((x << (r.K - r.S)) ^ (zp << r.Q)) & bitops.MaskAt(size, j)
		j += size
	}
	return zp & bitops.Mask(r.w)
}

// low returns the W-K low bits a step from z writes.
func (r register) low(z uint64) uint64 {
	return ((((z << r.Q) ^ z) & bitops.Mask(r.w)) >> (r.K - r.S)) & bitops.Mask(r.w-r.K)
}

func (r register) backward(z uint64) uint64 {
	p := r.prevHigh(z)
	return p | r.low(r.prevHigh(p))
}

// seed clamps v so that the meaningful bits are not all zero and makes the
// low bits consistent with a predecessor.
func (r register) seed(v uint64) uint64 {
	z := v
	if floor := uint64(1) << (r.w - r.K); z < floor {
		z = floor
	}
	z &= bitops.Mask(r.w)
	return r.backward(r.forward(z))
}

// Engine is a combination of Tausworthe registers. It is kept one step
// ahead: Peek returns the xor of the current register states.
type Engine[T engine.Word] struct {
	regs  [maxComponents]register
	n     int
	state [maxComponents]uint64
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

// New creates an engine with every register seeded from its entry in
// seeds.
func New[T engine.Word](components []Component, seeds ...uint64) *Engine[T] {
	if len(components) == 0 || len(components) > maxComponents || len(seeds) != len(components) {
		panic("lfsr: invalid component count")
	}
	e := &Engine[T]{n: len(components)}
	for i, c := range components {
		e.regs[i] = register{Component: c, w: bitops.Width[T]()}
		e.regs[i].check()
		e.state[i] = e.regs[i].seed(seeds[i])
	}
	e.Advance()
	return e
}

func defaultSeed[T engine.Word]() uint64 {
	if bitops.Width[T]() >= 64 {
		return DefaultSeed64
	}
	return DefaultSeed32
}

// NewSeeded seeds every register with seed; zero selects the default.
func NewSeeded[T engine.Word](components []Component, seed uint64) *Engine[T] {
	if seed == 0 {
		seed = defaultSeed[T]()
	}
	seed = uint64(T(seed))
	seeds := make([]uint64, len(components))
	for i := range seeds {
		seeds[i] = seed
	}
	return New[T](components, seeds...)
}

// NewDefault creates an engine with the default seed.
func NewDefault[T engine.Word](components []Component) *Engine[T] {
	return NewSeeded[T](components, 0)
}

// NewFromSeq seeds each register with one 32-bit word of seq.
func NewFromSeq[T engine.Word](components []Component, seq seedseq.Sequence) *Engine[T] {
	words := make([]uint32, len(components))
	seq.Generate(words)
	seeds := make([]uint64, len(components))
	for i, v := range words {
		seeds[i] = uint64(v)
	}
	return New[T](components, seeds...)
}

func (e *Engine[T]) Peek() T {
	var x uint64
	for _, z := range e.state[:e.n] {
		x ^= z
	}
	return T(x)
}

func (e *Engine[T]) Advance() {
	for i := 0; i < e.n; i++ {
		e.state[i] = e.regs[i].forward(e.state[i])
	}
}

func (e *Engine[T]) Rewind() {
	for i := 0; i < e.n; i++ {
		e.state[i] = e.regs[i].backward(e.state[i])
	}
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

// Equal reports whether e and o are in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool { return *e == *o }

func family[T engine.Word](components []Component) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](components) },
		FromSeed: func(seed uint64) engine.Engine[T] { return NewSeeded[T](components, seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](components, seq) },
	}
}

func init() {
	engine.RegisterDriver("taus88", family[uint32](Taus88))
	engine.RegisterDriver("lfsr113", family[uint32](LFSR113))
	engine.RegisterDriver("lfsr258", family[uint64](LFSR258))
}
