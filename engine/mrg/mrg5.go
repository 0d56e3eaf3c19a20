package mrg

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params5 are the parameters of a combined generator of order 5:
//
//	x[n] = (A12*x[n-2] + A14*x[n-4] + A15*x[n-5]) mod M1
//	y[n] = (A21*y[n-1] + A23*y[n-3] + A25*y[n-5]) mod M2
type Params5 struct {
	M1, M2        uint64
	A12, A14, A15 uint64
	A21, A23, A25 uint64
	Seed          uint64
}

var MRG32k5a = Params5{
	M1:   4294949027, M2: 4294934327,
	A12:  1154721, A14: 1739991, A15: 4294949027 - 1108499,
	A21:  1776413, A23: 865203, A25: 4294934327 - 1641052,
	Seed: 12345,
}

// Engine5 is a combined MRG of order 5. s[0:5] holds the first recurrence,
// oldest first, and s[5:10] the second.
type Engine5[T engine.Word] struct {
	p   Params5
	inv [2]uint64
	s   [10]uint64
}

var _ engine.Engine[uint32] = &Engine5[uint32]{}

func newEngine5[T engine.Word](p Params5) *Engine5[T] {
	if bitops.Mask(bitops.Width[T]()) < p.M1-1 {
		panic("mrg: word type too narrow for the modulus")
	}
	return &Engine5[T]{
		p:   p,
		inv: [2]uint64{modular.Inverse(p.M1, p.A15), modular.Inverse(p.M2, p.A25)},
	}
}

// New5 fills every state word with seed reduced by its modulus. A zero seed
// selects the default.
func New5[T engine.Word](p Params5, seed T) *Engine5[T] {
	e := newEngine5[T](p)
	v := uint64(seed)
	if v == 0 {
		v = p.Seed
	}
	for i := range e.s {
		e.s[i] = v
	}
	e.reduce()
	e.Advance()
	return e
}

// NewDefault5 returns an engine seeded with the default seed of p.
func NewDefault5[T engine.Word](p Params5) *Engine5[T] {
	return New5[T](p, T(p.Seed))
}

// NewFromSeq5 draws ten words of the output width from seq. A recurrence
// left all zero is filled with the default seed.
func NewFromSeq5[T engine.Word](p Params5, seq seedseq.Sequence) *Engine5[T] {
	e := newEngine5[T](p)
	copy(e.s[:], seedseq.Words(seq, bitops.Width[T](), len(e.s)))
	e.reduce()
	for _, r := range [][]uint64{e.s[:5], e.s[5:]} {
		if r[0]|r[1]|r[2]|r[3]|r[4] == 0 {
			for i := range r {
				r[i] = p.Seed
			}
		}
	}
	e.Advance()
	return e
}

func (e *Engine5[T]) reduce() {
	for i := range e.s {
		m := e.p.M1
		if i >= 5 {
			m = e.p.M2
		}
		e.s[i] %= m
	}
}

func (e *Engine5[T]) Peek() T {
	return T((e.s[4] + (e.p.M1 - e.s[9])) % e.p.M1)
}

func (e *Engine5[T]) Advance() {
	p, s := e.p, &e.s
	x := (modular.MulMod(p.A12, s[3], p.M1) + modular.MulMod(p.A14, s[1], p.M1)) % p.M1
	x = (x + modular.MulMod(p.A15, s[0], p.M1)) % p.M1
	y := (modular.MulMod(p.A21, s[9], p.M2) + modular.MulMod(p.A23, s[7], p.M2)) % p.M2
	y = (y + modular.MulMod(p.A25, s[5], p.M2)) % p.M2
	*s = [10]uint64{s[1], s[2], s[3], s[4], x, s[6], s[7], s[8], s[9], y}
}

func (e *Engine5[T]) Rewind() {
	p, s := e.p, &e.s
	x := (s[4] + modular.MulMod(p.M1-p.A12, s[2], p.M1)) % p.M1
	x = (x + modular.MulMod(p.M1-p.A14, s[0], p.M1)) % p.M1
	x = modular.MulMod(x, e.inv[0], p.M1)
	y := (s[9] + modular.MulMod(p.M2-p.A21, s[8], p.M2)) % p.M2
	y = (y + modular.MulMod(p.M2-p.A23, s[6], p.M2)) % p.M2
	y = modular.MulMod(y, e.inv[1], p.M2)
	*s = [10]uint64{x, s[0], s[1], s[2], s[3], y, s[5], s[6], s[7], s[8]}
}

func (e *Engine5[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine5[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine5[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine5[T]) Min() T           { return 0 }
func (e *Engine5[T]) Max() T           { return T(e.p.M1 - 1) }

func register5[T engine.Word](name string, p Params5) {
	engine.RegisterDriver(name, engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault5[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return New5[T](p, T(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq5[T](p, seq) },
	})
}
