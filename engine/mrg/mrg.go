// Package mrg implements L'Ecuyer's combined multiple recursive generators
// MRG31k3p, MRG32k3a, MRG63k3a and MRG32k5a.
//
// Each generator runs two order-3 recurrences
//
//	x[n] = (A12*x[n-2] + A13*x[n-3]) mod M1
//	y[n] = (A21*y[n-1] + A23*y[n-3]) mod M2
//
// and emits (x[n] - y[n]) mod M1. The oldest term of each recurrence has an
// invertible multiplier, so stepping back solves for it. MRG32k5a has the
// same shape with two order-5 recurrences; see Engine5.
package mrg

import (
	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

// Params are the moduli, multipliers and default seed of a generator. The
// multipliers are reduced into [0, M).
type Params struct {
	M1, M2   uint64
	A12, A13 uint64
	A21, A23 uint64
	Seed     uint64
}

var (
	MRG31k3p = Params{
		M1:   2147483647, M2: 2147462579,
		A12:  1 << 22, A13: 1<<7 + 1,
		A21:  1 << 15, A23: 1<<15 + 1,
		Seed: 12345,
	}
	MRG32k3a = Params{
		M1:   4294967087, M2: 4294944443,
		A12:  1403580, A13: 4294967087 - 810728,
		A21:  527612, A23: 4294944443 - 1370589,
		Seed: 12345,
	}
	MRG63k3a = Params{
		M1:   9223372036854769163, M2: 9223372036854754679,
		A12:  1754669720, A13: 9223372036854769163 - 3182104042,
		A21:  31387477935, A23: 9223372036854754679 - 6199136374,
		Seed: 123456789,
	}
)

// Engine is a combined MRG emitting words of type T. s[0:3] holds the
// first recurrence, oldest first, and s[3:6] the second.
type Engine[T engine.Word] struct {
	p   Params
	inv [2]uint64
	s   [6]uint64
}

var _ engine.Engine[uint32] = &Engine[uint32]{}

func newEngine[T engine.Word](p Params) *Engine[T] {
	if bitops.Mask(bitops.Width[T]()) < p.M1-1 {
		panic("mrg: word type too narrow for the modulus")
	}
	return &Engine[T]{
		p:   p,
		inv: [2]uint64{modular.Inverse(p.M1, p.A13), modular.Inverse(p.M2, p.A23)},
	}
}

// New fills every state word with seed reduced by its modulus. A zero seed
// selects the default.
func New[T engine.Word](p Params, seed T) *Engine[T] {
	e := newEngine[T](p)
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

// NewDefault returns an engine seeded with the default seed of p.
func NewDefault[T engine.Word](p Params) *Engine[T] {
	return New[T](p, T(p.Seed))
}

// NewFromSeq draws six words of the output width from seq. A recurrence
// left all zero is filled with the default seed.
func NewFromSeq[T engine.Word](p Params, seq seedseq.Sequence) *Engine[T] {
	e := newEngine[T](p)
	copy(e.s[:], seedseq.Words(seq, bitops.Width[T](), len(e.s)))
	e.reduce()
	for _, r := range [][]uint64{e.s[:3], e.s[3:]} {
		if r[0] == 0 && r[1] == 0 && r[2] == 0 {
			r[0], r[1], r[2] = p.Seed, p.Seed, p.Seed
		}
	}
	e.Advance()
	return e
}

func (e *Engine[T]) reduce() {
	for i := range e.s {
		m := e.p.M1
		if i >= 3 {
			m = e.p.M2
		}
		e.s[i] %= m
	}
}

func (e *Engine[T]) Peek() T {
	return T((e.s[2] + (e.p.M1 - e.s[5])) % e.p.M1)
}

func (e *Engine[T]) Advance() {
	p := e.p
	x := (modular.MulMod(p.A12, e.s[1], p.M1) + modular.MulMod(p.A13, e.s[0], p.M1)) % p.M1
	y := (modular.MulMod(p.A21, e.s[5], p.M2) + modular.MulMod(p.A23, e.s[3], p.M2)) % p.M2
	e.s = [6]uint64{e.s[1], e.s[2], x, e.s[4], e.s[5], y}
}

func (e *Engine[T]) Rewind() {
	p := e.p
	x := (e.s[2] + modular.MulMod(p.M1-p.A12, e.s[0], p.M1)) % p.M1
	x = modular.MulMod(x, e.inv[0], p.M1)
	y := (e.s[5] + modular.MulMod(p.M2-p.A21, e.s[4], p.M2)) % p.M2
	y = modular.MulMod(y, e.inv[1], p.M2)
	e.s = [6]uint64{x, e.s[0], e.s[1], y, e.s[3], e.s[4]}
}

func (e *Engine[T]) Next() T          { return engine.Next[T](e) }
func (e *Engine[T]) Prev() T          { return engine.Prev[T](e) }
func (e *Engine[T]) Discard(n uint64) { engine.Discard[T](e, n) }
func (e *Engine[T]) Min() T           { return 0 }
func (e *Engine[T]) Max() T           { return T(e.p.M1 - 1) }

func register[T engine.Word](name string, p Params) {
	engine.RegisterDriver(name, engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewDefault[T](p) },
		FromSeed: func(seed uint64) engine.Engine[T] { return New[T](p, T(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewFromSeq[T](p, seq) },
	})
}

func init() {
	register[uint32]("mrg31k3p", MRG31k3p)
	register[uint32]("mrg32k3a", MRG32k3a)
	register[uint64]("mrg63k3a", MRG63k3a)
	register5[uint32]("mrg32k5a", MRG32k5a)
}
