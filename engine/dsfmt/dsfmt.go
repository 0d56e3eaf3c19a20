// Package dsfmt implements the double precision SIMD-oriented Fast Mersenne
// Twister as a generator of 52-bit words, the mantissas of doubles in
// [1, 2).
package dsfmt

import (
	"math/bits"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/circular"
	"github.com/chihaya/brng/pkg/seedseq"
)

const (
	// DefaultSeed is the seed of the default engines.
	DefaultSeed uint32 = 5489

	// WordSize is the number of significant bits in each output.
	WordSize = 52

	shiftRight = 64 - WordSize
	exponent   = 0x3ff0000000000000
)

// Params are the dSFMT constants for one Mersenne exponent.
type Params struct {
	Mexp   uint
	Pos1   int
	SL     uint
	Msk    [2]uint64
	Fix    [2]uint64
	Parity [2]uint64
}

var (
	DSFMT521    = Params{521, 3, 25, [2]uint64{0x000fbfefff77efff, 0x000ffeebfbdfbfdf}, [2]uint64{0xcfb393d661638469, 0xc166867883ae2adb}, [2]uint64{0xccaa588000000000, 0x0000000000000001}}
	DSFMT1279   = Params{1279, 9, 19, [2]uint64{0x000efff7ffddffee, 0x000fbffffff77fff}, [2]uint64{0xb66627623d1a31be, 0x04b6c51147b6109b}, [2]uint64{0x7049f2da382a6aeb, 0xde4ca84a40000001}}
	DSFMT2203   = Params{2203, 7, 19, [2]uint64{0x000fdffff5edbfff, 0x000f77fffffffbfe}, [2]uint64{0xb14e907a39338485, 0xf98f0735c637ef90}, [2]uint64{0x8000000000000000, 0x0000000000000001}}
	DSFMT4253   = Params{4253, 19, 19, [2]uint64{0x0007b7fffef5feff, 0x000ffdffeffefbfc}, [2]uint64{0x80901b5fd7a11c65, 0x5a63ff0e7cb0ba74}, [2]uint64{0x1ad277be12000000, 0x0000000000000001}}
	DSFMT11213  = Params{11213, 37, 19, [2]uint64{0x000ffffffdf7fffd, 0x000dfffffff6bfff}, [2]uint64{0xd0ef7b7c75b06793, 0x9c50ff4caae0a641}, [2]uint64{0x8234c51207c80000, 0x0000000000000001}}
	DSFMT19937  = Params{19937, 117, 19, [2]uint64{0x000ffafffffffb3f, 0x000ffdfffc90fffd}, [2]uint64{0x90014964b32f4329, 0x3b8d12ac548a7c7a}, [2]uint64{0x3d84e1ac0dc82880, 0x0000000000000001}}
	DSFMT44497  = Params{44497, 304, 19, [2]uint64{0x000ff6dfffffffef, 0x0007ffdddeefff6f}, [2]uint64{0x75d910f235f6e10e, 0x7b32158aedc8e969}, [2]uint64{0x4c3356b2a0000000, 0x0000000000000001}}
	DSFMT86243  = Params{86243, 231, 13, [2]uint64{0x000ffedff6ffffdf, 0x000ffff7fdffff7e}, [2]uint64{0x1d553e776b975e68, 0x648faadf1416bf91}, [2]uint64{0x5f2cd03e2758a373, 0xc0b7eb8410000001}}
	DSFMT132049 = Params{132049, 371, 23, [2]uint64{0x000fb9f4eff4bf77, 0x000fffffbfefff37}, [2]uint64{0x4ce24c0e4e234f3b, 0x62612409b5665c2d}, [2]uint64{0x181232889145d000, 0x0000000000000001}}
	DSFMT216091 = Params{216091, 1890, 23, [2]uint64{0x000bf7df7fefcfff, 0x000e7ffffef737ff}, [2]uint64{0xd7f95a04764c27d7, 0x6a483861810bebc2}, [2]uint64{0x3af0a8f3d5600000, 0x0000000000000001}}
)

// Lanes returns the number of 128-bit lanes in the state, not counting the
// lung.
func (p Params) Lanes() int { return int(p.Mexp-128)/104 + 1 }

type lane [2]uint64

// Engine is a dSFMT generator. Besides the ring of lanes it keeps the lung,
// an extra lane mixed into every regeneration.
type Engine struct {
	p     Params
	state *circular.Buffer[lane]
	lung  lane
	idx   int
}

var _ engine.Engine[uint64] = &Engine{}

func newEngine(p Params) *Engine {
	if p.Pos1 <= 0 || p.Pos1 >= p.Lanes() {
		panic("dsfmt: invalid parameters")
	}
	return &Engine{p: p, state: circular.New[lane](p.Lanes())}
}

// word addresses the lanes followed by the lung as one run of 64-bit words.
func (e *Engine) word(i int) *uint64 {
	data := e.state.Data()
	if i/2 == len(data) {
		return &e.lung[i%2]
	}
	return &data[i/2][i%2]
}

func (e *Engine) get32(i int) uint32 {
	return uint32(*e.word(i / 2) >> (32 * uint(i%2)))
}

func (e *Engine) set32(i int, v uint32) {
	w := e.word(i / 2)
	shift := 32 * uint(i%2)
	*w = *w&^(0xffffffff<<shift) | uint64(v)<<shift
}

// NewSeeded initializes the state from a 32-bit seed.
func NewSeeded(p Params, seed uint32) *Engine {
	e := newEngine(p)
	for i := 0; i < 4*(p.Lanes()+1); i++ {
		e.set32(i, seed)
		seed = 1812433253*(seed^(seed>>30)) + uint32(i) + 1
	}
	return e.init()
}

// NewDefault returns an engine seeded with DefaultSeed.
func NewDefault(p Params) *Engine {
	return NewSeeded(p, DefaultSeed)
}

// NewFromKey initializes the state from an array of 32-bit words.
func NewFromKey(p Params, key []uint32) *Engine {
	e := newEngine(p)
	size := 4 * (p.Lanes() + 1)
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
		e.set32(i, 0x8b8b8b8b)
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

// NewFromSeq fills the lanes and the lung from seq. Twice as many words are
// drawn as are used, so that sequence-seeded engines agree with other
// implementations of the same seeding.
func NewFromSeq(p Params, seq seedseq.Sequence) *Engine {
	e := newEngine(p)
	n := 2 * (p.Lanes() + 1)
	for i, v := range seedseq.Words(seq, 64, 2*n)[:n] {
		*e.word(i) = v
	}
	return e.init()
}

// certify adjusts the lung if the state would otherwise not reach the full
// period.
func (e *Engine) certify() {
	fix, parity := e.p.Fix, e.p.Parity
	inner := ((e.lung[0] ^ fix[0]) & parity[0]) ^ ((e.lung[1] ^ fix[1]) & parity[1])
	if bits.OnesCount64(inner)&1 == 1 {
		return
	}
	if parity[1]&1 == 1 {
		e.lung[1] ^= 1
		return
	}
	for i := 1; i >= 0; i-- {
		if parity[i] != 0 {
			e.lung[i] ^= 1 << bits.TrailingZeros64(parity[i])
			return
		}
	}
}

func (e *Engine) init() *Engine {
	low := bitops.Mask(WordSize)
	data := e.state.Data()
	for i := range data {
		for j := range data[i] {
			data[i][j] = data[i][j]&low | exponent
		}
	}
	e.certify()
	e.idx = 1
	e.state.Dec()
	e.Advance()
	return e
}

func (e *Engine) Peek() uint64 { return e.state.At(0)[e.idx] & bitops.Mask(WordSize) }

// Float64 returns the current output as a double in [0, 1).
func (e *Engine) Float64() float64 {
	return float64(e.Peek()) / (1 << WordSize)
}

func (e *Engine) Advance() {
	e.idx++
	if e.idx < 2 {
		return
	}
	e.idx = 0
	e.state.Inc()

	p := e.p
	cur := e.state.Ptr(0)
	b := e.state.At(p.Pos1)
	l0 := e.lung[0]
	e.lung[0] = (cur[0] << p.SL) ^ bits.RotateLeft64(e.lung[1], 32) ^ b[0]
	e.lung[1] = (cur[1] << p.SL) ^ bits.RotateLeft64(l0, 32) ^ b[1]
	cur[0] ^= (e.lung[0] >> shiftRight) ^ (e.lung[0] & p.Msk[0])
	cur[1] ^= (e.lung[1] >> shiftRight) ^ (e.lung[1] & p.Msk[1])
}

func (e *Engine) Rewind() {
	if e.idx == 0 {
		p := e.p
		cur := e.state.Ptr(0)
		cur[0] ^= (e.lung[0] >> shiftRight) ^ (e.lung[0] & p.Msk[0])
		cur[1] ^= (e.lung[1] >> shiftRight) ^ (e.lung[1] & p.Msk[1])

		b := e.state.At(p.Pos1)
		l0 := e.lung[0]
		e.lung[0] = bits.RotateLeft64((cur[1]<<p.SL)^e.lung[1]^b[1], 32)
		e.lung[1] = bits.RotateLeft64((cur[0]<<p.SL)^l0^b[0], 32)

		e.idx = 2
		e.state.Dec()
	}
	e.idx--
}

func (e *Engine) Next() uint64     { return engine.Next[uint64](e) }
func (e *Engine) Prev() uint64     { return engine.Prev[uint64](e) }
func (e *Engine) Discard(n uint64) { engine.Discard[uint64](e, n) }
func (e *Engine) Min() uint64      { return 0 }
func (e *Engine) Max() uint64      { return bitops.Mask(WordSize) }

// Equal reports whether e and o are the same variant in the same state.
func (e *Engine) Equal(o *Engine) bool {
	return e.p == o.p && e.idx == o.idx && e.lung == o.lung && e.state.Equal(o.state)
}

// Clone returns an independent copy of e.
func (e *Engine) Clone() *Engine {
	c := *e
	c.state = e.state.Clone()
	return &c
}

func init() {
	for _, v := range []struct {
		name string
		p    Params
	}{
		{"dsfmt521", DSFMT521},
		{"dsfmt1279", DSFMT1279},
		{"dsfmt2203", DSFMT2203},
		{"dsfmt4253", DSFMT4253},
		{"dsfmt11213", DSFMT11213},
		{"dsfmt19937", DSFMT19937},
		{"dsfmt44497", DSFMT44497},
		{"dsfmt86243", DSFMT86243},
		{"dsfmt132049", DSFMT132049},
		{"dsfmt216091", DSFMT216091},
	} {
		p := v.p
		engine.RegisterDriver(v.name, engine.Family[uint64]{
			Default:  func() engine.Engine[uint64] { return NewDefault(p) },
			FromSeed: func(seed uint64) engine.Engine[uint64] { return NewSeeded(p, uint32(seed)) },
			FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq(p, seq) },
		})
	}
}
