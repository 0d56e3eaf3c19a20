package lcg

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
)

// Params128 is the multiplier of a 128-bit multiplicative generator.
type Params128 struct {
	Hi, Lo uint64
}

// Published 128-bit multipliers.
var (
	MCG128     = Params128{Hi: 5017888479014934897, Lo: 2747143273072462557}
	MCG128Fast = Params128{Lo: 0xda942042e4dd58b5}
)

// DefaultSeed128 is the seed of the default MCG128 engines.
const DefaultSeed128 uint64 = 0x9f57c403d06c42fc

// MCG128Engine multiplies a 128-bit odd state by a constant modulo 2^128
// and emits the upper 64 bits.
type MCG128Engine struct {
	a, inv [2]uint64
	s      [2]uint64
}

var _ engine.Engine[uint64] = &MCG128Engine{}

// NewMCG128 creates an engine whose state is seed forced odd.
func NewMCG128(p Params128, seed uint64) *MCG128Engine {
	e := &MCG128Engine{a: [2]uint64{p.Hi, p.Lo}, s: [2]uint64{0, seed | 1}}
	e.inv = inverse128(e.a)
	e.Advance()
	return e
}

// NewMCG128Default creates an engine with DefaultSeed128.
func NewMCG128Default(p Params128) *MCG128Engine { return NewMCG128(p, DefaultSeed128) }

// mul128 returns the low 128 bits of x*y.
func mul128(x, y [2]uint64) [2]uint64 {
	hi, lo := bits.Mul64(x[1], y[1])
	hi += x[0]*y[1] + x[1]*y[0]
	return [2]uint64{hi, lo}
}

func sub128(x, y [2]uint64) [2]uint64 {
	lo, borrow := bits.Sub64(x[1], y[1], 0)
	hi, _ := bits.Sub64(x[0], y[0], borrow)
	return [2]uint64{hi, lo}
}

// inverse128 returns the inverse of odd a modulo 2^128 by Newton
// iteration.
func inverse128(a [2]uint64) [2]uint64 {
	two := [2]uint64{0, 2}
	x := a
	for i := 0; i < 7; i++ {
		x = mul128(x, sub128(two, mul128(a, x)))
	}
	return x
}

func (e *MCG128Engine) Peek() uint64     { return e.s[0] }
func (e *MCG128Engine) Advance()         { e.s = mul128(e.s, e.a) }
func (e *MCG128Engine) Rewind()          { e.s = mul128(e.s, e.inv) }
func (e *MCG128Engine) Next() uint64     { return engine.Next[uint64](e) }
func (e *MCG128Engine) Prev() uint64     { return engine.Prev[uint64](e) }
func (e *MCG128Engine) Discard(n uint64) { engine.Discard[uint64](e, n) }
func (e *MCG128Engine) Min() uint64      { return 0 }
func (e *MCG128Engine) Max() uint64      { return ^uint64(0) }

// Equal reports whether e and o are in the same state.
func (e *MCG128Engine) Equal(o *MCG128Engine) bool { return *e == *o }
