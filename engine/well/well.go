// Package well implements the WELL generators of Panneton, L'Ecuyer and
// Matsumoto: WELL512a, WELL1024a, WELL19937a and WELL44497a, the latter two
// optionally tempered (WELL19937c, WELL44497b).
//
// Each step overwrites two slots of a ring of 32-bit words and moves the
// cursor back by one, so the slot under the cursor is always the newest
// output.
package well

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// DefaultSeed fills the state of the default engines; a zero seed selects
// it as well.
const DefaultSeed uint32 = 12345

func newState(n int, seed uint32) *circular.Buffer[uint32] {
	if seed == 0 {
		seed = DefaultSeed
	}
	s := circular.New[uint32](n)
	data := s.Data()
	for i := range data {
		data[i] = seed
	}
	return s
}

func newStateFromSeq(n int, seq seedseq.Sequence) *circular.Buffer[uint32] {
	s := circular.New[uint32](n)
	data := s.Data()
	seq.Generate(data)
	for _, v := range data {
		if v != 0 {
			return s
		}
	}
	for i := range data {
		data[i] = DefaultSeed
	}
	return s
}

func unshiftLeft(y uint32, shift uint) uint32 {
	return uint32(unshift.LeftXor(uint64(y), 32, shift))
}

// WELL512a has a 512-bit state.
type WELL512a struct {
	state *circular.Buffer[uint32]
}

var _ engine.Engine[uint32] = &WELL512a{}

// NewWELL512a fills the state with seed.
func NewWELL512a(seed uint32) *WELL512a {
	e := &WELL512a{state: newState(16, seed)}
	e.Advance()
	return e
}

// NewWELL512aFromSeq fills the state from seq.
func NewWELL512aFromSeq(seq seedseq.Sequence) *WELL512a {
	e := &WELL512a{state: newStateFromSeq(16, seq)}
	e.Advance()
	return e
}

func (e *WELL512a) Peek() uint32 { return e.state.At(0) }

func (e *WELL512a) Advance() {
	s := e.state
	vm0, vm1, vm2, vrm1 := s.At(0), s.At(13), s.At(9), s.At(15)
	z1 := (vm0 ^ (vm0 << 16)) ^ (vm1 ^ (vm1 << 15))
	z2 := vm2 ^ (vm2 >> 11)
	v1 := z1 ^ z2
	s.Set(0, v1)
	s.Set(15, (vrm1^(vrm1<<2))^(z1^(z1<<18))^(z2<<28)^(v1^((v1<<5)&0xDA442D24)))
	s.Dec()
}

func (e *WELL512a) Rewind() {
	s := e.state
	s.Inc()
	vm1, vm2 := s.At(13), s.At(9)
	v0, v1 := s.At(15), s.At(0)
	z2 := vm2 ^ (vm2 >> 11)
	z1 := v1 ^ z2
	vrm1 := v0 ^ (z1 ^ (z1 << 18)) ^ (z2 << 28) ^ (v1 ^ ((v1 << 5) & 0xDA442D24))
	s.Set(15, unshiftLeft(vrm1, 2))
	s.Set(0, unshiftLeft(z1^(vm1^(vm1<<15)), 16))
}

func (e *WELL512a) Next() uint32     { return engine.Next[uint32](e) }
func (e *WELL512a) Prev() uint32     { return engine.Prev[uint32](e) }
func (e *WELL512a) Discard(n uint64) { engine.Discard[uint32](e, n) }
func (e *WELL512a) Min() uint32      { return 0 }
func (e *WELL512a) Max() uint32      { return ^uint32(0) }

// Equal reports whether e and o hold the same logical state.
func (e *WELL512a) Equal(o *WELL512a) bool { return e.state.Equal(o.state) }

// Clone returns an independent copy of e.
func (e *WELL512a) Clone() *WELL512a { return &WELL512a{state: e.state.Clone()} }

// WELL1024a has a 1024-bit state.
type WELL1024a struct {
	state *circular.Buffer[uint32]
}

var _ engine.Engine[uint32] = &WELL1024a{}

// NewWELL1024a fills the state with seed.
func NewWELL1024a(seed uint32) *WELL1024a {
	e := &WELL1024a{state: newState(32, seed)}
	e.Advance()
	return e
}

// NewWELL1024aFromSeq fills the state from seq.
func NewWELL1024aFromSeq(seq seedseq.Sequence) *WELL1024a {
	e := &WELL1024a{state: newStateFromSeq(32, seq)}
	e.Advance()
	return e
}

func (e *WELL1024a) Peek() uint32 { return e.state.At(0) }

func (e *WELL1024a) Advance() {
	s := e.state
	vm0, vm1, vm2, vm3, vrm1 := s.At(0), s.At(3), s.At(24), s.At(10), s.At(31)
	z1 := vm0 ^ (vm1 ^ (vm1 >> 8))
	z2 := (vm2 ^ (vm2 << 19)) ^ (vm3 ^ (vm3 << 14))
	s.Set(0, z1^z2)
	s.Set(31, (vrm1^(vrm1<<11))^(z1^(z1<<7))^(z2^(z2<<13)))
	s.Dec()
}

func (e *WELL1024a) Rewind() {
	s := e.state
	s.Inc()
	vm1, vm2, vm3 := s.At(3), s.At(24), s.At(10)
	v0, v1 := s.At(31), s.At(0)
	z2 := (vm2 ^ (vm2 << 19)) ^ (vm3 ^ (vm3 << 14))
	z1 := v1 ^ z2
	s.Set(31, unshiftLeft(v0^(z1^(z1<<7))^(z2^(z2<<13)), 11))
	s.Set(0, z1^(vm1^(vm1>>8)))
}

func (e *WELL1024a) Next() uint32     { return engine.Next[uint32](e) }
func (e *WELL1024a) Prev() uint32     { return engine.Prev[uint32](e) }
func (e *WELL1024a) Discard(n uint64) { engine.Discard[uint32](e, n) }
func (e *WELL1024a) Min() uint32      { return 0 }
func (e *WELL1024a) Max() uint32      { return ^uint32(0) }

// Equal reports whether e and o hold the same logical state.
func (e *WELL1024a) Equal(o *WELL1024a) bool { return e.state.Equal(o.state) }

// Clone returns an independent copy of e.
func (e *WELL1024a) Clone() *WELL1024a { return &WELL1024a{state: e.state.Clone()} }

func init() {
	engine.RegisterDriver("well512a", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewWELL512a(DefaultSeed) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return NewWELL512a(uint32(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewWELL512aFromSeq(seq) },
	})
	engine.RegisterDriver("well1024a", engine.Family[uint32]{
		Default:  func() engine.Engine[uint32] { return NewWELL1024a(DefaultSeed) },
		FromSeed: func(seed uint64) engine.Engine[uint32] { return NewWELL1024a(uint32(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewWELL1024aFromSeq(seq) },
	})
	for _, v := range []struct {
		name string
		p    LongParams
	}{
		{"well19937a", WELL19937a},
		{"well19937c", WELL19937c},
		{"well44497a", WELL44497a},
		{"well44497b", WELL44497b},
	} {
		p := v.p
		engine.RegisterDriver(v.name, engine.Family[uint32]{
			Default:  func() engine.Engine[uint32] { return NewLong(p, DefaultSeed) },
			FromSeed: func(seed uint64) engine.Engine[uint32] { return NewLong(p, uint32(seed)) },
			FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewLongFromSeq(p, seq) },
		})
	}
}
