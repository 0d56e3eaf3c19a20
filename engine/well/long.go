package well

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
)

type recurrence uint8

const (
	recurrence19937 recurrence = iota
	recurrence44497
)

// LongParams describes one of the large WELL generators. Their state keeps
// R words plus a two word cache so the step can be reversed.
type LongParams struct {
	R       int
	M1      int
	M2      int
	M3      int
	LowBits uint
	Shift0  uint
	Temper  bool
	TemperB uint32
	TemperC uint32
	kind    recurrence
}

var (
	WELL19937a = LongParams{R: 624, M1: 70, M2: 179, M3: 449, LowBits: 31, Shift0: 25, kind: recurrence19937}
	WELL19937c = LongParams{R: 624, M1: 70, M2: 179, M3: 449, LowBits: 31, Shift0: 25, kind: recurrence19937,
		Temper: true, TemperB: 0xE46E1700, TemperC: 0x9B868000}
	WELL44497a = LongParams{R: 1391, M1: 23, M2: 481, M3: 229, LowBits: 15, Shift0: 24, kind: recurrence44497}
	WELL44497b = LongParams{R: 1391, M1: 23, M2: 481, M3: 229, LowBits: 15, Shift0: 24, kind: recurrence44497,
		Temper: true, TemperB: 0x93dd1400, TemperC: 0xfa118000}
)

// Long is a WELL19937 or WELL44497 generator.
type Long struct {
	p     LongParams
	state *circular.Buffer[uint32]
	cache [2]uint32
}

var _ engine.Engine[uint32] = &Long{}

// NewLong fills the state with seed.
func NewLong(p LongParams, seed uint32) *Long {
	return newLong(p, newState(p.R, seed))
}

// NewLongFromSeq fills the state from seq.
func NewLongFromSeq(p LongParams, seq seedseq.Sequence) *Long {
	return newLong(p, newStateFromSeq(p.R, seq))
}

func newLong(p LongParams, s *circular.Buffer[uint32]) *Long {
	e := &Long{p: p, state: s}
	// One step each way leaves the cache consistent with the buffer.
	e.Advance()
	e.Rewind()
	e.Advance()
	return e
}

func (e *Long) z2(off int) uint32 {
	s := e.state
	vm2, vm3 := s.At(e.p.M2+off), s.At(e.p.M3+off)
	if e.p.kind == recurrence19937 {
		return (vm2 >> 9) ^ (vm3 ^ (vm3 >> 1))
	}
	return (vm2 ^ (vm2 << 10)) ^ (vm3 << 26)
}

func (e *Long) scramble0(vm0 uint32) uint32 {
	vm1 := e.state.At(e.p.M1)
	if e.p.kind == recurrence19937 {
		return (vm0 ^ (vm0 << 25)) ^ (vm1 ^ (vm1 >> 27))
	}
	return (vm0 ^ (vm0 << 24)) ^ (vm1 ^ (vm1 >> 30))
}

// newV0 computes the word written behind the cursor from the cache, z2 and
// the freshly written word v1.
func (e *Long) newV0(cache0, cache1, z2, v1 uint32) uint32 {
	if e.p.kind == recurrence19937 {
		return cache0 ^ (cache1 ^ (cache1 << 9)) ^ (z2 ^ (z2 << 21)) ^ (v1 ^ (v1 >> 21))
	}
	mat5 := bitops.RotateLeft[uint32](z2, 9) & 0xfbffffff
	if z2&0x00020000 != 0 {
		mat5 ^= 0xb729fcec
	}
	return cache0 ^ (cache1 ^ (cache1 >> 20)) ^ mat5 ^ v1
}

func (e *Long) lowMask() uint32 { return uint32(bitops.Mask(e.p.LowBits)) }

func (e *Long) Peek() uint32 {
	r := e.state.At(0)
	if e.p.Temper {
		r ^= (r << 7) & e.p.TemperB
		r ^= (r << 15) & e.p.TemperC
	}
	return r
}

func (e *Long) Advance() {
	s := e.state
	last := e.p.R - 1
	low := e.lowMask()
	e.cache[0] = (s.At(last) &^ low) | (s.At(last-1) & low)
	e.cache[1] = e.scramble0(s.At(0))
	z2 := e.z2(0)
	v1 := e.cache[1] ^ z2
	s.Set(0, v1)
	s.Set(last, e.newV0(e.cache[0], e.cache[1], z2, v1))
	s.Dec()
}

func (e *Long) Rewind() {
	s := e.state
	last := e.p.R - 1
	low := e.lowMask()
	s.Inc()

	vm1 := s.At(e.p.M1)
	var vm0 uint32
	if e.p.kind == recurrence19937 {
		vm0 = unshiftLeft(e.cache[1]^(vm1^(vm1>>27)), e.p.Shift0)
	} else {
		vm0 = unshiftLeft(e.cache[1]^(vm1^(vm1>>30)), e.p.Shift0)
	}
	s.Set(0, vm0)
	cache0 := e.cache[0]

	v1 := s.At(1)
	z2 := e.z2(1)
	e.cache[1] = v1 ^ z2
	e.cache[0] = e.newV0(vm0, e.cache[1], z2, v1)
	s.Set(last, (cache0&^low)|(e.cache[0]&low))
}

func (e *Long) Next() uint32     { return engine.Next[uint32](e) }
func (e *Long) Prev() uint32     { return engine.Prev[uint32](e) }
func (e *Long) Discard(n uint64) { engine.Discard[uint32](e, n) }
func (e *Long) Min() uint32      { return 0 }
func (e *Long) Max() uint32      { return ^uint32(0) }

// Equal reports whether e and o are the same variant in the same state.
func (e *Long) Equal(o *Long) bool {
	return e.p == o.p && e.cache == o.cache && e.state.Equal(o.state)
}

// Clone returns an independent copy of e.
func (e *Long) Clone() *Long {
	c := *e
	c.state = e.state.Clone()
	return &c
}
