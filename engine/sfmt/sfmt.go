// Package sfmt implements the SIMD-oriented Fast Mersenne Twister. The state
// is a ring of 128-bit lanes, each regenerated in place when the output
// position crosses into it and restored in place when stepping back out.
//
// The 32-bit and 64-bit engines share the same lanes and differ only in how
// many words of each lane they emit.
package sfmt

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// DefaultSeed is the seed of the default engines.
const DefaultSeed uint32 = 5489

// Params are the SFMT constants for one Mersenne exponent. SL2 and SR2 are
// given in bits.
type Params struct {
	Mexp   uint
	Pos1   int
	SL1    uint
	SL2    uint
	SR1    uint
	SR2    uint
	Msk    [4]uint32
	Parity [4]uint32
}

var (
	SFMT607    = Params{607, 2, 15, 24, 13, 24, [4]uint32{0xfdff37ff, 0xef7f3f7d, 0xff777b7d, 0x7ff7fb2f}, [4]uint32{0x00000001, 0x00000000, 0x00000000, 0x5986f054}}
	SFMT1279   = Params{1279, 7, 14, 24, 5, 8, [4]uint32{0xf7fefffd, 0x7fefcfff, 0xaff3ef3f, 0xb5ffff7f}, [4]uint32{0x00000001, 0x00000000, 0x00000000, 0x20000000}}
	SFMT2281   = Params{2281, 12, 19, 8, 5, 8, [4]uint32{0xbff7ffbf, 0xfdfffffe, 0xf7ffef7f, 0xf2f7cbbf}, [4]uint32{0x00000001, 0x00000000, 0x00000000, 0x41dfa600}}
	SFMT4253   = Params{4253, 17, 20, 8, 7, 8, [4]uint32{0x9f7bffff, 0x9fffff5f, 0x3efffffb, 0xfffff7bb}, [4]uint32{0xa8000001, 0xaf5390a3, 0xb740b3f8, 0x6c11486d}}
	SFMT11213  = Params{11213, 68, 14, 24, 7, 24, [4]uint32{0xeffff7fb, 0xffffffef, 0xdfdfbfff, 0x7fffdbfd}, [4]uint32{0x00000001, 0x00000000, 0xe8148000, 0xd0c7afa3}}
	SFMT19937  = Params{19937, 122, 18, 8, 11, 8, [4]uint32{0xdfffffef, 0xddfecb7f, 0xbffaffff, 0xbffffff6}, [4]uint32{0x00000001, 0x00000000, 0x00000000, 0x13c9e684}}
	SFMT44497  = Params{44497, 330, 5, 24, 9, 24, [4]uint32{0xeffffffb, 0xdfbebfff, 0xbfbf7bef, 0x9ffd7bff}, [4]uint32{0x00000001, 0x00000000, 0xa3ac4000, 0xecc1327a}}
	SFMT86243  = Params{86243, 366, 6, 56, 19, 8, [4]uint32{0xfdbffbff, 0xbff7ff3f, 0xfd77efff, 0xbf9ff3ff}, [4]uint32{0x00000001, 0x00000000, 0x00000000, 0xe9528d85}}
	SFMT132049 = Params{132049, 110, 19, 8, 21, 8, [4]uint32{0xffffbb5f, 0xfb6ebf95, 0xfffefffa, 0xcff77fff}, [4]uint32{0x00000001, 0x00000000, 0xcb520000, 0xc7e91c7d}}
	SFMT216091 = Params{216091, 627, 11, 24, 10, 8, [4]uint32{0xbff7bff7, 0xbfffffff, 0xbffffa7f, 0xffddfbfb}, [4]uint32{0xf8000001, 0x89e80709, 0x3bd2b64b, 0x0c64b1e4}}
)

// Lanes returns the number of 128-bit lanes in the state.
func (p Params) Lanes() int { return int(p.Mexp+127) / 128 }

type lane [4]uint32

func (l lane) u128() (hi, lo uint64) {
	return uint64(l[3])<<32 | uint64(l[2]), uint64(l[1])<<32 | uint64(l[0])
}

func fromU128(hi, lo uint64) lane {
	return lane{uint32(lo), uint32(lo >> 32), uint32(hi), uint32(hi >> 32)}
}

// Engine is an SFMT emitting T, which must be 32 or 64 bits wide.
type Engine[T engine.Word] struct {
	p     Params
	state *circular.Buffer[lane]
	idx   int
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

func newEngine[T engine.Word](p Params) *Engine[T] {
	if w := bitops.Width[T](); w != 32 && w != 64 {
		panic("sfmt: output must be 32 or 64 bits wide")
	}
	if p.Pos1 <= 0 || p.Pos1 >= p.Lanes() {
		panic("sfmt: invalid parameters")
	}
	return &Engine[T]{p: p, state: circular.New[lane](p.Lanes())}
}

// NewSeeded initializes the state from a 32-bit seed.
func NewSeeded[T engine.Word](p Params, seed uint32) *Engine[T] {
	e := newEngine[T](p)
	for i := 0; i < 4*p.Lanes(); i++ {
		e.set32(i, seed)
		seed = 1812433253*(seed^(seed>>30)) + uint32(i) + 1
	}
	return e.init()
}

// NewDefault returns an engine seeded with DefaultSeed.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return NewSeeded[T](p, DefaultSeed)
}

// NewFromKey initializes the state from an array of 32-bit words.
func NewFromKey[T engine.Word](p Params, key []uint32) *Engine[T] {
	e := newEngine[T](p)
	size := 4 * p.Lanes()
	lag := 3
	switch {
	case size >= 623:
		lag = 11
	case size >= 68:
		lag = 7
	case size >= 39:
		lag = 5
	}
	mid := (size - lag) / 2

	for i := 0; i < size; i++ {
		e.set32(i, 2341178251)
	}
	count := size
	if len(key)+1 > count {
		count = len(key) + 1
	}
	for j := 0; j < count; j++ {
		i := j % size
		r := e.get32(i) ^ e.get32((i+mid)%size) ^ e.get32((i+size-1)%size)
		r = (r ^ (r >> 27)) * 1664525
		e.set32((i+mid)%size, e.get32((i+mid)%size)+r)
		if j == 0 {
			r += uint32(len(key))
		} else {
			r += uint32(i)
			if j-1 < len(key) {
				r += key[j-1]
			}
		}
		e.set32((i+mid+lag)%size, e.get32((i+mid+lag)%size)+r)
		e.set32(i, r)
	}
	for i := 0; i < size; i++ {
		r := e.get32(i) + e.get32((i+mid)%size) + e.get32((i+size-1)%size)
		r = (r ^ (r >> 27)) * 1566083941
		e.set32((i+mid)%size, e.get32((i+mid)%size)^r)
		r -= uint32(i)
		e.set32((i+mid+lag)%size, e.get32((i+mid+lag)%size)^r)
		e.set32(i, r)
	}
	return e.init()
}

// NewFromSeq fills the state from seq. Period certification also repairs
// an all-zero state.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	e := newEngine[T](p)
	for i, v := range seedseq.Words(seq, 32, 4*p.Lanes()) {
		e.set32(i, uint32(v))
	}
	return e.init()
}

func (e *Engine[T]) get32(i int) uint32 { return e.state.Data()[i/4][i%4] }

func (e *Engine[T]) set32(i int, v uint32) { e.state.Data()[i/4][i%4] = v }

func (e *Engine[T]) sub() int { return int(128 / bitops.Width[T]()) }

// certify flips one parity bit of the first lane if the state would
// otherwise not reach the full period.
func (e *Engine[T]) certify() {
	var inner uint32
	for i := 0; i < 4; i++ {
		inner ^= e.get32(i) & e.p.Parity[i]
	}
	for i := 16; i > 0; i >>= 1 {
		inner ^= inner >> i
	}
	if inner&1 == 1 {
		return
	}
	for i := 0; i < 4; i++ {
		for work := uint32(1); work != 0; work <<= 1 {
			if work&e.p.Parity[i] != 0 {
				e.set32(i, e.get32(i)^work)
				return
			}
		}
	}
}

func (e *Engine[T]) init() *Engine[T] {
	e.certify()
	e.idx = e.sub() - 1
	e.state.Dec()
	e.Advance()
	return e
}

// feedback is the part of the recursion that does not depend on the lane
// being regenerated.
func (e *Engine[T]) feedback() lane {
	p, s := e.p, e.state
	n := p.Lanes()
	b, d := s.At(p.Pos1), s.At(n-1)
	hi, lo := s.At(n - 2).u128()
	y := fromU128(unshift.Shr128(hi, lo, p.SR2))
	var out lane
	for i := range out {
		out[i] = ((b[i] >> p.SR1) & p.Msk[i]) ^ y[i] ^ (d[i] << p.SL1)
	}
	return out
}

func (e *Engine[T]) Peek() T {
	l := e.state.At(0)
	if e.sub() == 4 {
		return T(l[e.idx])
	}
	return T(uint64(l[2*e.idx]) | uint64(l[2*e.idx+1])<<32)
}

func (e *Engine[T]) Advance() {
	e.idx++
	if e.idx < e.sub() {
		return
	}
	e.idx = 0
	e.state.Inc()

	cur := e.state.Ptr(0)
	hi, lo := cur.u128()
	x := fromU128(unshift.Shl128(hi, lo, e.p.SL2))
	f := e.feedback()
	for i := range cur {
		cur[i] ^= x[i] ^ f[i]
	}
}

func (e *Engine[T]) Rewind() {
	if e.idx == 0 {
		cur := e.state.Ptr(0)
		f := e.feedback()
		for i := range cur {
			cur[i] ^= f[i]
		}
		hi, lo := cur.u128()
		*cur = fromU128(unshift.LeftXor128(hi, lo, e.p.SL2))
		e.idx = e.sub()
		e.state.Dec()
	}
	e.idx--
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return ^T(0) }

// Equal reports whether e and o are the same variant in the same state.
func (e *Engine[T]) Equal(o *Engine[T]) bool {
	return e.p == o.p && e.idx == o.idx && e.state.Equal(o.state)
}

// Clone returns an independent copy of e.
func (e *Engine[T]) Clone() *Engine[T] {
	c := *e
	c.state = e.state.Clone()
	return &c
}

func init() {
	for _, v := range []struct {
		name string
		p    Params
	}{
		{"sfmt607", SFMT607},
		{"sfmt1279", SFMT1279},
		{"sfmt2281", SFMT2281},
		{"sfmt4253", SFMT4253},
		{"sfmt11213", SFMT11213},
		{"sfmt19937", SFMT19937},
		{"sfmt44497", SFMT44497},
		{"sfmt86243", SFMT86243},
		{"sfmt132049", SFMT132049},
		{"sfmt216091", SFMT216091},
	} {
		p := v.p
		engine.RegisterDriver(v.name, engine.Family[uint32]{
			Default:  func() engine.Engine[uint32] { return NewDefault[uint32](p) },
			FromSeed: func(seed uint64) engine.Engine[uint32] { return NewSeeded[uint32](p, uint32(seed)) },
			FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint32] { return NewFromSeq[uint32](p, seq) },
		})
		engine.RegisterDriver(v.name+"_64", engine.Family[uint64]{
			Default:  func() engine.Engine[uint64] { return NewDefault[uint64](p) },
			FromSeed: func(seed uint64) engine.Engine[uint64] { return NewSeeded[uint64](p, uint32(seed)) },
			FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq[uint64](p, seq) },
		})
	}
}
