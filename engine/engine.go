// Package engine defines the contract shared by every bidirectional
// pseudorandom engine in brng and a registry to construct engines by name.
package engine

import "math/bits"

// Word is the set of native integers an engine's output is stored in. The
// logical width of an engine may be narrower than its Word.
type Word interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Stepper is the primitive triad every engine implements.
//
// Peek returns the value the next forward step emits without changing
// state. Advance moves one step forward and Rewind exactly undoes one
// Advance.
type Stepper[T Word] interface {
	Peek() T
	Advance()
	Rewind()
}

// Engine is a Stepper together with the derived operations callers use.
type Engine[T Word] interface {
	Stepper[T]

	// Next returns the current value and advances.
	Next() T

	// Prev rewinds and returns the value Next returned last.
	Prev() T

	// Discard advances n steps.
	Discard(n uint64)

	Min() T
	Max() T
}

// Next implements Engine.Next over a Stepper.
func Next[T Word](s Stepper[T]) T {
	v := s.Peek()
	s.Advance()
	return v
}

// Prev implements Engine.Prev over a Stepper.
func Prev[T Word](s Stepper[T]) T {
	s.Rewind()
	return s.Peek()
}

// Discard implements Engine.Discard over a Stepper.
func Discard[T Word](s Stepper[T], n uint64) {
	for i := uint64(0); i < n; i++ {
		s.Advance()
	}
}

// MaxOf returns the largest value of a w-bit word.
func MaxOf[T Word](w uint) T {
	if w >= 64 {
		m := ^uint64(0)
		return T(m)
	}
	return T(uint64(1)<<w - 1)
}

// Source is an Engine with its word type erased to uint64.
type Source interface {
	Next() uint64
	Prev() uint64
	Discard(n uint64)
	Min() uint64
	Max() uint64

	// Bits is the number of significant bits of Max.
	Bits() uint
}

type erased[T Word] struct {
	e Engine[T]
}

// Erase wraps e as a Source.
func Erase[T Word](e Engine[T]) Source {
	return erased[T]{e}
}

func (s erased[T]) Next() uint64     { return uint64(s.e.Next()) }
func (s erased[T]) Prev() uint64     { return uint64(s.e.Prev()) }
func (s erased[T]) Discard(n uint64) { s.e.Discard(n) }
func (s erased[T]) Min() uint64      { return uint64(s.e.Min()) }
func (s erased[T]) Max() uint64      { return uint64(s.e.Max()) }
func (s erased[T]) Bits() uint       { return uint(bits.Len64(uint64(s.e.Max()))) }

// Unwrap returns the engine behind a Source created by Erase.
func Unwrap[T Word](s Source) (Engine[T], bool) {
	e, ok := s.(erased[T])
	if !ok {
		return nil, false
	}
	return e.e, true
}
