// Package chacha implements ChaCha as a counter-based generator: word i of
// the stream is word i%16 of the block keyed by the seed at counter i/16.
// Stepping in either direction only moves the counter, so Discard is O(1).
package chacha

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// DefaultSeed is the first key half of the default engines.
const DefaultSeed uint64 = 0xb504f333f9de6484

// Common round counts.
const (
	ChaCha8  = 8
	ChaCha12 = 12
	ChaCha20 = 20
)

var sigma = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// Engine is a ChaCha generator with a 256-bit key and a 128-bit word
// counter.
type Engine struct {
	rounds int
	key    [8]uint32
	hi, lo uint64
	block  [16]uint32
}

var _ engine.Engine[uint32] = &Engine{}

// New returns an engine keyed by two seed words and two stream words.
func New(rounds int, seed1, seed2, stream1, stream2 uint64) *Engine {
	var key [8]uint32
	for i, v := range [4]uint64{seed1, seed2, stream1, stream2} {
		key[2*i] = uint32(v)
		key[2*i+1] = uint32(v >> 32)
	}
	return NewFromKey(rounds, key)
}

// NewSeeded returns an engine keyed by seed alone.
func NewSeeded(rounds int, seed uint64) *Engine {
	return New(rounds, seed, 0, 0, 0)
}

// NewDefault returns an engine keyed by DefaultSeed.
func NewDefault(rounds int) *Engine {
	return NewSeeded(rounds, DefaultSeed)
}

// NewFromKey returns an engine with the given key, positioned at the start
// of the stream.
func NewFromKey(rounds int, key [8]uint32) *Engine {
	if rounds <= 0 {
		panic("chacha: rounds must be positive")
	}
	e := &Engine{rounds: rounds, key: key}
	e.generate()
	return e
}

// NewFromSeq draws the key from seq.
func NewFromSeq(rounds int, seq seedseq.Sequence) *Engine {
	var key [8]uint32
	seq.Generate(key[:])
	return NewFromKey(rounds, key)
}

func quarterRound(x *[16]uint32, a, b, c, d int) {
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 16)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 12)
	x[a] += x[b]
	x[d] = bits.RotateLeft32(x[d]^x[a], 8)
	x[c] += x[d]
	x[b] = bits.RotateLeft32(x[b]^x[c], 7)
}

func (e *Engine) generate() {
	var in [16]uint32
	copy(in[:4], sigma[:])
	copy(in[4:12], e.key[:])
	hi, lo := unshift.Shr128(e.hi, e.lo, 4)
	in[12], in[13] = uint32(lo), uint32(lo>>32)
	in[14], in[15] = uint32(hi), uint32(hi>>32)

	x := in
	for r := 1; r < e.rounds; r += 2 {
		quarterRound(&x, 0, 4, 8, 12)
		quarterRound(&x, 1, 5, 9, 13)
		quarterRound(&x, 2, 6, 10, 14)
		quarterRound(&x, 3, 7, 11, 15)
		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}
	if e.rounds&1 == 1 {
		quarterRound(&x, 0, 5, 10, 15)
		quarterRound(&x, 1, 6, 11, 12)
		quarterRound(&x, 2, 7, 8, 13)
		quarterRound(&x, 3, 4, 9, 14)
	}
	for i := range x {
		e.block[i] = x[i] + in[i]
	}
}

func (e *Engine) Peek() uint32 { return e.block[e.lo&15] }

func (e *Engine) Advance() {
	regen := e.lo&15 == 15
	var carry uint64
	e.lo, carry = bits.Add64(e.lo, 1, 0)
	e.hi += carry
	if regen {
		e.generate()
	}
}

func (e *Engine) Rewind() {
	var borrow uint64
	e.lo, borrow = bits.Sub64(e.lo, 1, 0)
	e.hi -= borrow
	if e.lo&15 == 15 {
		e.generate()
	}
}

// Discard moves the counter n words forward.
func (e *Engine) Discard(n uint64) {
	block := e.lo >> 4
	var carry uint64
	e.lo, carry = bits.Add64(e.lo, n, 0)
	e.hi += carry
	if e.lo>>4 != block || carry != 0 {
		e.generate()
	}
}

// Backstep moves the counter n words backward.
func (e *Engine) Backstep(n uint64) {
	block := e.lo >> 4
	var borrow uint64
	e.lo, borrow = bits.Sub64(e.lo, n, 0)
	e.hi -= borrow
	if e.lo>>4 != block || borrow != 0 {
		e.generate()
	}
}

// Position returns the 128-bit word counter.
func (e *Engine) Position() (hi, lo uint64) { return e.hi, e.lo }

func (e *Engine) Next() uint32 { return engine.Next[uint32](e) }
func (e *Engine) Prev() uint32 { return engine.Prev[uint32](e) }
func (e *Engine) Min() uint32  { return 0 }
func (e *Engine) Max() uint32  { return ^uint32(0) }

func init() {
	for _, v := range []struct {
		name   string
		rounds int
	}{
		{"chacha8", ChaCha8},
		{"chacha12", ChaCha12},
		{"chacha20", ChaCha20},
	} {
		rounds := v.rounds
		engine.RegisterDriver(v.name, engine.Family[uint32]{
			Default:  func() engine.Engine[uint32] { return NewDefault(rounds) },
			FromSeed: func(seed uint64) engine.Engine[uint32] { return NewSeeded(rounds, seed) },
			FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq(rounds, seq) },
		})
	}
}
