// Package speck implements a counter-based generator over the Speck128/256
// block cipher: each 128-bit counter value is encrypted into two output
// words.
package speck

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

const (
	// DefaultSeed is the first key word of the default engine.
	DefaultSeed uint64 = 0xb504f333f9de6484

	// Rounds is the number of Speck128/256 rounds.
	Rounds = 34
)

// Speck128 encrypts a 128-bit counter under an expanded 256-bit key.
type Speck128 struct {
	schedule [Rounds]uint64
	hi, lo   uint64
	block    [2]uint64
	idx      int
}

var _ engine.Engine[uint64] = &Speck128{}

// New expands the key (k0, k1, k2, k3).
func New(k0, k1, k2, k3 uint64) *Speck128 {
	e := &Speck128{}
	a, l := k0, [3]uint64{k1, k2, k3}
	for i := 0; i < Rounds-1; i++ {
		e.schedule[i] = a
		j := i % 3
		l[j] = (bits.RotateLeft64(l[j], -8) + a) ^ uint64(i)
		a = bits.RotateLeft64(a, 3) ^ l[j]
	}
	e.schedule[Rounds-1] = a
	e.generate()
	return e
}

// NewSeeded uses seed as the first key word and zeroes the rest.
func NewSeeded(seed uint64) *Speck128 {
	return New(seed, 0, 0, 0)
}

// NewFromSeq draws the whole expanded key from seq.
func NewFromSeq(seq seedseq.Sequence) *Speck128 {
	e := &Speck128{}
	copy(e.schedule[:], seedseq.Words(seq, 64, Rounds))
	e.generate()
	return e
}

func (e *Speck128) generate() {
	x, y := e.lo, e.hi
	for _, k := range e.schedule {
		y = (bits.RotateLeft64(y, -8) + x) ^ k
		x = bits.RotateLeft64(x, 3) ^ y
	}
	e.block = [2]uint64{x, y}
}

func (e *Speck128) Peek() uint64 { return e.block[e.idx] }

func (e *Speck128) Advance() {
	e.idx ^= 1
	if e.idx == 0 {
		var carry uint64
		e.lo, carry = bits.Add64(e.lo, 1, 0)
		e.hi += carry
		e.generate()
	}
}

func (e *Speck128) Rewind() {
	if e.idx == 0 {
		var borrow uint64
		e.lo, borrow = bits.Sub64(e.lo, 1, 0)
		e.hi -= borrow
		e.generate()
	}
	e.idx ^= 1
}

// Discard moves n words forward without encrypting the skipped counters.
func (e *Speck128) Discard(n uint64) {
	pos := uint64(e.idx) + n&1
	step := n>>1 + pos>>1
	e.idx = int(pos & 1)
	if step != 0 {
		var carry uint64
		e.lo, carry = bits.Add64(e.lo, step, 0)
		e.hi += carry
		e.generate()
	}
}

func (e *Speck128) Next() uint64 { return engine.Next[uint64](e) }
func (e *Speck128) Prev() uint64 { return engine.Prev[uint64](e) }
func (e *Speck128) Min() uint64  { return 0 }
func (e *Speck128) Max() uint64  { return ^uint64(0) }

func init() {
	engine.RegisterDriver("speck128", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewSeeded(DefaultSeed) },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return NewSeeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq(seq) },
	})
}
