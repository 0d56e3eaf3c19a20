// Package splitmix implements SplitMix, a Weyl sequence passed through a
// 64-bit finalizer. Stepping in either direction and skipping ahead are
// constant time, and a generator can be split into two independent ones.
package splitmix

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params describe the output finalizer (M3, M4, S, T, U) and the gamma
// mixer used by Split (M1, M2, P, Q, R). A zero U skips the last
// xorshift.
type Params struct {
	M1, M2  uint64
	P, Q, R uint
	M3, M4  uint64
	S, T, U uint
}

// Published variants.
var (
	SplitMix64 = Params{
		M1: 0xff51afd7ed558ccd, M2: 0xc4ceb9fe1a85ec53, P: 33, Q: 33, R: 33,
		M3: 0xbf58476d1ce4e5b9, M4: 0x94d049bb133111eb, S: 30, T: 27, U: 31,
	}
	SplitMix32 = Params{
		M1: 0xff51afd7ed558ccd, M2: 0xc4ceb9fe1a85ec53, P: 33, Q: 33, R: 33,
		M3: 0x62a9d9ed799705f5, M4: 0xcb24d0a5c88c35b3, S: 33, T: 28,
	}
)

// Default seed and gamma.
const (
	DefaultSeed  uint64 = 0xbad0ff1ced15ea5e
	DefaultGamma uint64 = 0x9e3779b97f4a7c15
)

// Engine is a SplitMix generator producing words of type T, taken from the
// top of the 64-bit finalizer output.
type Engine[T engine.Word] struct {
	p            Params
	seed         uint64
	gamma        uint64
	gammaInverse uint64
}

var _ engine.Engine[uint64] = &Engine[uint64]{}

// New creates an engine. gamma is forced odd.
func New[T engine.Word](p Params, seed, gamma uint64) *Engine[T] {
	gamma |= 1
	return &Engine[T]{p: p, seed: seed, gamma: gamma, gammaInverse: modular.InversePow2(64, gamma)}
}

// NewDefault creates an engine with the default seed and gamma.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return New[T](p, DefaultSeed, DefaultGamma)
}

// NewFromSeq draws the seed and the gamma from seq.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	v := seedseq.Words(seq, 64, 2)
	return New[T](p, v[0], v[1])
}

func (e *Engine[T]) Peek() T {
	x := e.seed
	x ^= x >> e.p.S
	x *= e.p.M3
	x ^= x >> e.p.T
	x *= e.p.M4
	if e.p.U != 0 {
		x ^= x >> e.p.U
	}
	return T(x >> (64 - bits.Len64(uint64(^T(0)))))
}

func (e *Engine[T]) Advance() { e.seed += e.gamma }
func (e *Engine[T]) Rewind()  { e.seed -= e.gamma }
func (e *Engine[T]) Next() T  { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T  { return engine.Prev[T](e) }

// Discard skips n values in constant time.
func (e *Engine[T]) Discard(n uint64) { e.seed += n * e.gamma }

// Backstep rewinds n values in constant time.
func (e *Engine[T]) Backstep(n uint64) { e.seed -= n * e.gamma }

func (e *Engine[T]) Min() T { return 0 }
func (e *Engine[T]) Max() T { return ^T(0) }

// Distance returns how many steps e is ahead of o. It reports false when
// the two engines walk different Weyl sequences.
func (e *Engine[T]) Distance(o *Engine[T]) (uint64, bool) {
	if e.gamma != o.gamma {
		return 0, false
	}
	return (e.seed - o.seed) * e.gammaInverse, true
}

// Split consumes two steps of e and returns a new engine seeded from its
// output with a freshly mixed gamma.
func (e *Engine[T]) Split() *Engine[T] {
	seed := e.Peek()
	e.Advance()
	x := e.seed
	x ^= x >> e.p.P
	x *= e.p.M1
	x ^= x >> e.p.Q
	x *= e.p.M2
	x ^= x >> e.p.R
	x |= 1
	if bits.OnesCount64(x^(x>>1)) < 24 {
		x ^= 0xaaaaaaaaaaaaaaaa
	}
	e.Advance()
	return New[T](e.p, uint64(seed), x)
}

// Equal reports whether e and o are in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool {
	return e.seed == o.seed && e.gamma == o.gamma
}

func family[T engine.Word](p Params) engine.Family[T] {
	return engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return New[T](p, seed, DefaultGamma) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	}
}

func init() {
	engine.RegisterDriver("splitmix64", family[uint64](SplitMix64))
	engine.RegisterDriver("splitmix32", family[uint32](SplitMix32))
}
