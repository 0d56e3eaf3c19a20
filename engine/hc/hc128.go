package hc

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

const (
	half128 = 512
	mask128 = half128 - 1
)

// HC128 is an HC-128 generator with a 128-bit key and a 128-bit IV.
type HC128 struct {
	p, q [half128]uint32
	// idx is the position in the 1024-step cycle. P is updated on the first
	// half and Q on the second.
	idx int
}

var _ engine.Engine[uint32] = &HC128{}

// NewHC128 runs the key and IV schedule. The first word produced is the
// first keystream word of the cipher.
func NewHC128(key, iv [4]uint32) *HC128 {
	var w [1024 + 256]uint32
	copy(w[0:], key[:])
	copy(w[4:], key[:])
	copy(w[8:], iv[:])
	copy(w[12:], iv[:])
	expand(w[:])

	e := &HC128{idx: 2*half128 - 1}
	copy(e.p[:], w[256:])
	copy(e.q[:], w[256+half128:])
	for i := 0; i < 2*half128; i++ {
		e.Advance()
		t, _ := e.tables()
		t[e.idx&mask128] = e.Peek()
	}
	e.Advance()
	return e
}

// NewHC128Seeded keys an engine with the two halves of seed and a zero IV.
func NewHC128Seeded(seed uint64) *HC128 {
	return NewHC128([4]uint32{uint32(seed), uint32(seed >> 32)}, [4]uint32{})
}

// NewHC128FromSeq draws the key and then the IV from seq.
func NewHC128FromSeq(seq seedseq.Sequence) *HC128 {
	var words [8]uint32
	seq.Generate(words[:])
	var key, iv [4]uint32
	copy(key[:], words[:4])
	copy(iv[:], words[4:])
	return NewHC128(key, iv)
}

// tables returns the table updated at the current position and the one
// used for the output filter.
func (e *HC128) tables() (t, o *[half128]uint32) {
	if e.idx < half128 {
		return &e.p, &e.q
	}
	return &e.q, &e.p
}

func (e *HC128) feedback() uint32 {
	t, _ := e.tables()
	j := e.idx & mask128
	x, y, z := t[(j-3)&mask128], t[(j-10)&mask128], t[(j+1)&mask128]
	if e.idx < half128 {
		return (bits.RotateLeft32(x, -10) ^ bits.RotateLeft32(z, -23)) + bits.RotateLeft32(y, -8)
	}
	return (bits.RotateLeft32(x, 10) ^ bits.RotateLeft32(z, 23)) + bits.RotateLeft32(y, 8)
}

func (e *HC128) Peek() uint32 {
	t, o := e.tables()
	j := e.idx & mask128
	u := t[(j-12)&mask128]
	return (o[u&0xff] + o[256+(u>>16)&0xff]) ^ t[j]
}

func (e *HC128) Advance() {
	e.idx = (e.idx + 1) & (2*half128 - 1)
	t, _ := e.tables()
	t[e.idx&mask128] += e.feedback()
}

func (e *HC128) Rewind() {
	t, _ := e.tables()
	t[e.idx&mask128] -= e.feedback()
	e.idx = (e.idx - 1) & (2*half128 - 1)
}

func (e *HC128) Next() uint32     { return engine.Next[uint32](e) }
func (e *HC128) Prev() uint32     { return engine.Prev[uint32](e) }
func (e *HC128) Discard(n uint64) { engine.Discard[uint32](e, n) }
func (e *HC128) Min() uint32      { return 0 }
func (e *HC128) Max() uint32      { return ^uint32(0) }
