// Package trivium implements the Trivium stream cipher as a generator of
// 64-bit keystream words. The three shift registers (93, 84 and 111 bits)
// are each held in a pair of words, newest bits first, and advance 64
// clocks per word. Stepping back solves the feedback equations for the 64
// bits that fell off the end of each register, one bit at a time.
package trivium

import (
	"encoding/binary"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// DefaultSeed seeds NewDefault.
const DefaultSeed uint64 = 5489

// Bits kept in the second word of each register.
const (
	tailA = 93 - 64
	tailB = 84 - 64
	tailC = 111 - 64
)

const warmup = 18

// register is a shift register window; bit 0 is the most significant bit
// of r[0].
type register [2]uint64

// window returns the 64 register bits starting at bit k.
func (r *register) window(k uint) uint64 { return r[0]<<k | r[1]>>(64-k) }

func (r *register) bit(p int) uint64 { return (r[p>>6] >> (63 - p&63)) & 1 }

func (r *register) set(p int, v uint64) { r[p>>6] |= v << (63 - p&63) }

func (r *register) shift(word uint64, tail uint) {
	r[1] = r[0] & bitops.MaskAt(tail, 64-tail)
	r[0] = word
}

// Engine is a Trivium keystream generator.
type Engine struct {
	a, b, c register
}

var _ engine.Engine[uint64] = &Engine{}

// New returns an engine loaded with an 80-bit key and an 80-bit IV and run
// through the initialization clocks.
func New(key, iv [10]byte) *Engine {
	var e Engine
	var buf [16]byte
	copy(buf[6:], key[:])
	e.a = register{binary.LittleEndian.Uint64(buf[8:]), binary.LittleEndian.Uint64(buf[:8])}
	copy(buf[6:], iv[:])
	e.b = register{binary.LittleEndian.Uint64(buf[8:]), binary.LittleEndian.Uint64(buf[:8])}
	e.c = register{0, 7 << (128 - 111)}
	for i := 0; i < warmup; i++ {
		e.Advance()
	}
	return &e
}

// NewSeeded returns an engine keyed by the little-endian bytes of seed with
// a zero IV.
func NewSeeded(seed uint64) *Engine {
	var key [10]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return New(key, [10]byte{})
}

// NewDefault returns an engine keyed by DefaultSeed.
func NewDefault() *Engine { return NewSeeded(DefaultSeed) }

// NewFromSeq draws twenty bytes from seq: the key, then the IV.
func NewFromSeq(seq seedseq.Sequence) *Engine {
	var words [5]uint32
	seq.Generate(words[:])
	var buf [20]byte
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	var key, iv [10]byte
	copy(key[:], buf[:10])
	copy(iv[:], buf[10:])
	return New(key, iv)
}

func (e *Engine) Peek() uint64 {
	return e.c.window(2) ^ e.c.window(47) ^
		e.a.window(2) ^ e.a.window(29) ^
		e.b.window(5) ^ e.b.window(20)
}

func (e *Engine) Advance() {
	a := e.c.window(2) ^ e.c.window(47) ^ e.a.window(5) ^ (e.c.window(46) & e.c.window(45))
	b := e.a.window(2) ^ e.a.window(29) ^ e.b.window(14) ^ (e.a.window(28) & e.a.window(27))
	c := e.b.window(5) ^ e.b.window(20) ^ e.c.window(23) ^ (e.b.window(19) & e.b.window(18))
	e.a.shift(a, tailA)
	e.b.shift(b, tailB)
	e.c.shift(c, tailC)
}

func (e *Engine) Rewind() {
	na, nb, nc := e.a[0], e.b[0], e.c[0]
	a := register{e.a[1], 0}
	b := register{e.b[1], 0}
	c := register{e.c[1], 0}
	for j := 0; j < 64; j++ {
		s := uint(63 - j)
		c.set(j+47, (na>>s)&1^c.bit(j+2)^a.bit(j+5)^(c.bit(j+46)&c.bit(j+45)))
		a.set(j+29, (nb>>s)&1^a.bit(j+2)^b.bit(j+14)^(a.bit(j+28)&a.bit(j+27)))
		b.set(j+20, (nc>>s)&1^b.bit(j+5)^c.bit(j+23)^(b.bit(j+19)&b.bit(j+18)))
	}
	e.a, e.b, e.c = a, b, c
}

func (e *Engine) Next() uint64     { return engine.Next[uint64](e) }
func (e *Engine) Prev() uint64     { return engine.Prev[uint64](e) }
func (e *Engine) Discard(n uint64) { engine.Discard[uint64](e, n) }
func (e *Engine) Min() uint64      { return 0 }
func (e *Engine) Max() uint64      { return ^uint64(0) }

func init() {
	engine.RegisterDriver("trivium", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewDefault() },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return NewSeeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq(seq) },
	})
}
