// Package salsa implements Salsa20 as a counter-based generator over the
// keystream of golang.org/x/crypto/salsa20/salsa.
package salsa

import (
	"encoding/binary"

	"golang.org/x/crypto/salsa20/salsa"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

// DefaultSeed keys the default engine.
const DefaultSeed uint64 = 0xb504f333f9de6484

// Salsa20 is a Salsa20 generator with a 256-bit key, a 64-bit nonce and a
// 64-bit block counter.
type Salsa20 struct {
	key   [32]byte
	nonce uint64
	ctr   uint64
	idx   int
	block [16]uint32
}

var _ engine.Engine[uint32] = &Salsa20{}

// New returns an engine with the given key and nonce words, positioned at
// the start of the stream.
func New(key [8]uint32, nonce [2]uint32) *Salsa20 {
	e := &Salsa20{nonce: uint64(nonce[1])<<32 | uint64(nonce[0])}
	for i, k := range key {
		binary.LittleEndian.PutUint32(e.key[4*i:], k)
	}
	e.generate()
	return e
}

// NewSeeded uses seed as the low 64 bits of an otherwise zero key.
func NewSeeded(seed uint64) *Salsa20 {
	return New([8]uint32{uint32(seed), uint32(seed >> 32)}, [2]uint32{})
}

// NewFromSeq draws the key from seq.
func NewFromSeq(seq seedseq.Sequence) *Salsa20 {
	var key [8]uint32
	seq.Generate(key[:])
	return New(key, [2]uint32{})
}

// SetNonce selects another stream of the same key without moving the
// counter.
func (e *Salsa20) SetNonce(nonce [2]uint32) {
	e.nonce = uint64(nonce[1])<<32 | uint64(nonce[0])
	e.generate()
}

func (e *Salsa20) generate() {
	var counter [16]byte
	binary.LittleEndian.PutUint64(counter[:8], e.nonce)
	binary.LittleEndian.PutUint64(counter[8:], e.ctr)
	var buf [64]byte
	salsa.XORKeyStream(buf[:], buf[:], &counter, &e.key)
	for i := range e.block {
		e.block[i] = binary.LittleEndian.Uint32(buf[4*i:])
	}
}

func (e *Salsa20) Peek() uint32 { return e.block[e.idx] }

func (e *Salsa20) Advance() {
	e.idx = (e.idx + 1) & 15
	if e.idx == 0 {
		e.ctr++
		e.generate()
	}
}

func (e *Salsa20) Rewind() {
	if e.idx == 0 {
		e.ctr--
		e.generate()
	}
	e.idx = (e.idx - 1) & 15
}

// Discard moves n words forward without generating the skipped blocks.
func (e *Salsa20) Discard(n uint64) {
	pos := uint64(e.idx) + n&15
	ctr := e.ctr + n>>4 + pos>>4
	e.idx = int(pos & 15)
	if ctr != e.ctr {
		e.ctr = ctr
		e.generate()
	}
}

func (e *Salsa20) Next() uint32 { return engine.Next[uint32](e) }
func (e *Salsa20) Prev() uint32 { return engine.Prev[uint32](e) }
func (e *Salsa20) Min() uint32  { return 0 }
func (e *Salsa20) Max() uint32  { return ^uint32(0) }

func init() {
	engine.RegisterDriver("salsa20", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewSeeded(DefaultSeed) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return NewSeeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq(seq) },
	})
}
