package hc

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

const (
	half256 = 1024
	mask256 = half256 - 1
)

// HC256 is an HC-256 generator with a 256-bit key and a 256-bit IV.
type HC256 struct {
	p, q [half256]uint32
	idx  int
}

var _ engine.Engine[uint32] = &HC256{}

// NewHC256 runs the key and IV schedule.
func NewHC256(key, iv [8]uint32) *HC256 {
	var w [2048 + 512]uint32
	copy(w[0:], key[:])
	copy(w[8:], iv[:])
	expand(w[:])

	e := &HC256{idx: 2*half256 - 1}
	copy(e.p[:], w[512:])
	copy(e.q[:], w[512+half256:])
	for i := 0; i < 4096; i++ {
		e.Advance()
	}
	e.Advance()
	return e
}

// NewHC256Seeded keys an engine with the two halves of seed and a zero IV.
func NewHC256Seeded(seed uint64) *HC256 {
	return NewHC256([8]uint32{uint32(seed), uint32(seed >> 32)}, [8]uint32{})
}

// NewHC256FromSeq draws the key and then the IV from seq.
func NewHC256FromSeq(seq seedseq.Sequence) *HC256 {
	var words [16]uint32
	seq.Generate(words[:])
	var key, iv [8]uint32
	copy(key[:], words[:8])
	copy(iv[:], words[8:])
	return NewHC256(key, iv)
}

func (e *HC256) tables() (t, o *[half256]uint32) {
	if e.idx < half256 {
		return &e.p, &e.q
	}
	return &e.q, &e.p
}

func (e *HC256) feedback() uint32 {
	t, o := e.tables()
	j := e.idx & mask256
	x, z := t[(j-3)&mask256], t[(j+1)&mask256]
	return t[(j-10)&mask256] + (bits.RotateLeft32(x, -10) ^ bits.RotateLeft32(z, -23)) + o[(x^z)&mask256]
}

func (e *HC256) Peek() uint32 {
	t, o := e.tables()
	j := e.idx & mask256
	u := t[(j-12)&mask256]
	return (o[u&0xff] + o[256+(u>>8)&0xff] + o[512+(u>>16)&0xff] + o[768+u>>24]) ^ t[j]
}

func (e *HC256) Advance() {
	e.idx = (e.idx + 1) & (2*half256 - 1)
	t, _ := e.tables()
	t[e.idx&mask256] += e.feedback()
}

func (e *HC256) Rewind() {
	t, _ := e.tables()
	t[e.idx&mask256] -= e.feedback()
	e.idx = (e.idx - 1) & (2*half256 - 1)
}

func (e *HC256) Next() uint32     { return engine.Next[uint32](e) }
func (e *HC256) Prev() uint32     { return engine.Prev[uint32](e) }
func (e *HC256) Discard(n uint64) { engine.Discard[uint32](e, n) }
func (e *HC256) Min() uint32      { return 0 }
func (e *HC256) Max() uint32      { return ^uint32(0) }
