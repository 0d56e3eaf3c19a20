// Package arc4 implements the ARC4 keystream (alleged RC4) as a byte
// generator, and wider words assembled from consecutive bytes.
//
// A step moves i, adds S[i] to j and swaps the two entries. Swapping back
// restores S[i], which is what was added to j, so the step inverts exactly.
package arc4

import (
	"encoding/binary"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/bitops"
	"github.com/chihaya/brng/pkg/seedseq"
)

// DefaultSeed seeds the default engines.
const DefaultSeed uint64 = 123

// Drop is the number of initial bytes skipped by seeded engines.
const Drop = 1024

// Engine is an ARC4 byte generator.
type Engine struct {
	s    [256]uint8
	i, j uint8
}

var _ engine.Engine[uint8] = &Engine{}

func identity() Engine {
	var e Engine
	for n := range e.s {
		e.s[n] = uint8(n)
	}
	return e
}

// NewFromKey runs the standard key schedule. The engine produces the
// keystream of the cipher from its first byte on.
func NewFromKey(key []byte) *Engine {
	if len(key) == 0 {
		panic("arc4: empty key")
	}
	e := identity()
	var j uint8
	for n := range e.s {
		j += e.s[n] + key[n%len(key)]
		e.s[n], e.s[j] = e.s[j], e.s[n]
	}
	e.Advance()
	return &e
}

// NewSeeded keys an engine with the eight little-endian bytes of seed and
// skips the first Drop bytes.
func NewSeeded(seed uint64) *Engine {
	var key [8]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	e := NewFromKey(key[:])
	e.Discard(Drop)
	return e
}

// NewDefault returns an engine seeded with DefaultSeed.
func NewDefault() *Engine { return NewSeeded(DefaultSeed) }

// NewFromSeq schedules a 128-byte key drawn from seq, starting both
// indices at the last slot, and skips Drop+1 bytes.
func NewFromSeq(seq seedseq.Sequence) *Engine {
	var scribble [32]uint32
	seq.Generate(scribble[:])
	var key [128]byte
	for n := range key {
		key[n] = uint8(scribble[n/4] >> (8 * (n % 4)))
	}

	e := identity()
	e.i = 255
	for range e.s {
		e.i++
		si := e.s[e.i]
		e.j += si + key[int(e.i)%len(key)]
		e.s[e.i] = e.s[e.j]
		e.s[e.j] = si
	}
	e.j = e.i
	e.Discard(Drop + 1)
	return &e
}

func (e *Engine) Peek() uint8 { return e.s[e.s[e.i]+e.s[e.j]] }

func (e *Engine) Advance() {
	e.i++
	e.j += e.s[e.i]
	e.s[e.i], e.s[e.j] = e.s[e.j], e.s[e.i]
}

func (e *Engine) Rewind() {
	e.s[e.i], e.s[e.j] = e.s[e.j], e.s[e.i]
	e.j -= e.s[e.i]
	e.i--
}

func (e *Engine) Next() uint8      { return engine.Next[uint8](e) }
func (e *Engine) Prev() uint8      { return engine.Prev[uint8](e) }
func (e *Engine) Discard(n uint64) { engine.Discard[uint8](e, n) }
func (e *Engine) Min() uint8       { return 0 }
func (e *Engine) Max() uint8       { return 0xff }

// WideWord is the constraint of the word types Wide assembles.
type WideWord interface {
	~uint16 | ~uint32 | ~uint64
}

// Wide assembles words of T from consecutive keystream bytes, the first
// byte being the most significant.
type Wide[T WideWord] struct {
	b Engine
}

var _ engine.Engine[uint32] = &Wide[uint32]{}

// NewWide returns a word generator over a copy of b.
func NewWide[T WideWord](b *Engine) *Wide[T] { return &Wide[T]{b: *b} }

func (w *Wide[T]) bytes() int { return int(bitops.Width[T]() / 8) }

// Peek reads the next word by stepping the byte engine over it and back.
func (w *Wide[T]) Peek() T {
	var v T
	n := w.bytes()
	for k := 0; k < n; k++ {
		v = v<<8 | T(w.b.Next())
	}
	for k := 0; k < n; k++ {
		w.b.Rewind()
	}
	return v
}

func (w *Wide[T]) Advance() {
	for k := w.bytes(); k > 0; k-- {
		w.b.Advance()
	}
}

func (w *Wide[T]) Rewind() {
	for k := w.bytes(); k > 0; k-- {
		w.b.Rewind()
	}
}

func (w *Wide[T]) Next() T          { return engine.Next[T](w) }
func (w *Wide[T]) Prev() T          { return engine.Prev[T](w) }
func (w *Wide[T]) Discard(n uint64) { w.b.Discard(n * uint64(w.bytes())) }
func (w *Wide[T]) Min() T           { return 0 }
func (w *Wide[T]) Max() T           { return ^T(0) }

func register[T WideWord](name string) {
	engine.RegisterDriver(name, engine.Family[T]{
		Default:  func() engine.Engine[T] { return NewWide[T](NewDefault()) },
		FromSeed: func(seed uint64) engine.Engine[T] { return NewWide[T](NewSeeded(seed)) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[T] { return NewWide[T](NewFromSeq(seq)) },
	})
}

func init() {
	engine.RegisterDriver("arc4", engine.Family[uint8]{
		Default:  func() engine.Engine[uint8] { return NewDefault() },
		FromSeed: func(seed uint64) engine.Engine[uint8] { return NewSeeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint8] { return NewFromSeq(seq) },
	})
	register[uint32]("arc4_32")
	register[uint64]("arc4_64")
}
