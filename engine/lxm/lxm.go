// Package lxm implements L64X256MixRandom from the LXM family: a 64-bit
// LCG added to the first word of a xoshiro256 state and passed through
// Lea's 64-bit mixer.
package lxm

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/engine/splitmix"
	"github.com/chihaya/brng/engine/xoshiro"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

const (
	multiplier uint64 = 0xd1342543de82ef95
	leaMult    uint64 = 0xdaba0b6eb09322e3

	goldenRatio uint64 = 0x9e3779b97f4a7c15
	silverRatio uint64 = 0x6a09e667f3bcc909
)

var multiplierInverse = modular.InversePow2(64, multiplier)

// linear is the xoshiro256 state transition; LXM uses only its first word,
// never a scrambled output.
var linear = xoshiro.Xoshiro256Plus

// L64X256Mix is an LXM generator with a 64-bit LCG and a 256-bit xoshiro
// component.
type L64X256Mix struct {
	a, s uint64
	x    *xoshiro.Engine[uint64]
}

var _ engine.Engine[uint64] = &L64X256Mix{}

// New creates an engine from the LCG increment a (forced odd), the LCG
// state s and the four xoshiro words. An all-zero xoshiro state is
// replaced by the golden and silver ratios.
func New(a, s, x0, x1, x2, x3 uint64) *L64X256Mix {
	if x0|x1|x2|x3 == 0 {
		x0, x1 = goldenRatio, silverRatio
	}
	return &L64X256Mix{a: a | 1, s: s, x: xoshiro.New[uint64](linear, x0, x1, x2, x3)}
}

// DefaultSeed is the seed of the default engine.
const DefaultSeed = 0

// NewSeeded derives the increment with a murmur finalizer and the xoshiro
// words from a SplitMix stream, both over seed ^ silverRatio.
func NewSeeded(seed uint64) *L64X256Mix {
	seed ^= silverRatio
	sm := splitmix.New[uint64](splitmix.SplitMix64, seed, goldenRatio)
	return New(mixMurmur64(seed), 1, sm.Next(), sm.Next(), sm.Next(), sm.Next())
}

// NewDefault creates an engine with DefaultSeed.
func NewDefault() *L64X256Mix { return NewSeeded(DefaultSeed) }

// NewFromSeq draws a, s and the four xoshiro words from seq.
func NewFromSeq(seq seedseq.Sequence) *L64X256Mix {
	v := seedseq.Words(seq, 64, 6)
	return New(v[0], v[1], v[2], v[3], v[4], v[5])
}

func mixMurmur64(z uint64) uint64 {
	z = (z ^ (z >> 33)) * 0xff51afd7ed558ccd
	z = (z ^ (z >> 33)) * 0xc4ceb9fe1a85ec53
	return z ^ (z >> 33)
}

func mixLea64(z uint64) uint64 {
	z = (z ^ (z >> 32)) * leaMult
	z = (z ^ (z >> 32)) * leaMult
	return z ^ (z >> 32)
}

func (e *L64X256Mix) Peek() uint64 { return mixLea64(e.s + e.x.Word(0)) }

func (e *L64X256Mix) Advance() {
	e.s = e.s*multiplier + e.a
	e.x.Advance()
}

func (e *L64X256Mix) Rewind() {
	e.s = (e.s - e.a) * multiplierInverse
	e.x.Rewind()
}

func (e *L64X256Mix) Next() uint64     { return engine.Next[uint64](e) }
func (e *L64X256Mix) Prev() uint64     { return engine.Prev[uint64](e) }
func (e *L64X256Mix) Discard(n uint64) { engine.Discard[uint64](e, n) }
func (e *L64X256Mix) Min() uint64      { return 0 }
func (e *L64X256Mix) Max() uint64      { return ^uint64(0) }

// Equal reports whether e and o are in the same state.
func (e *L64X256Mix) Equal(o *L64X256Mix) bool {
	return e.a == o.a && e.s == o.s && e.x.Equal(o.x)
}

func init() {
	engine.RegisterDriver("l64x256mix", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewDefault() },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return NewSeeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq(seq) },
	})
}
