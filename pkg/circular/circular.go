// Package circular implements a fixed-capacity ring buffer addressed
// relative to a movable cursor.
package circular

// Buffer is a ring of N values with a cursor. Logical slot k is the value k
// positions ahead of the cursor. The zero value is not usable; create one
// with New.
type Buffer[T comparable] struct {
	data  []T
	index int
	mask  int
}

// New creates a Buffer with capacity n. n must be positive.
func New[T comparable](n int) *Buffer[T] {
	if n <= 0 {
		panic("circular: capacity must be positive")
	}
	b := &Buffer[T]{data: make([]T, n), mask: -1}
	if n&(n-1) == 0 {
		b.mask = n - 1
	}
	return b
}

// Len returns the capacity of the buffer.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Index returns the physical position of the cursor.
func (b *Buffer[T]) Index() int { return b.index }

// Data returns the physical backing array. Callers may read and write it
// directly; some generators address their tables by physical position.
func (b *Buffer[T]) Data() []T { return b.data }

func (b *Buffer[T]) pos(k int) int {
	if b.mask >= 0 {
		return (b.index + k) & b.mask
	}
	n := len(b.data)
	p := (b.index + k%n) % n
	if p < 0 {
		p += n
	}
	return p
}

// At returns logical slot k.
func (b *Buffer[T]) At(k int) T { return b.data[b.pos(k)] }

// Set stores v in logical slot k.
func (b *Buffer[T]) Set(k int, v T) { b.data[b.pos(k)] = v }

// Ptr returns a pointer to logical slot k.
func (b *Buffer[T]) Ptr(k int) *T { return &b.data[b.pos(k)] }

// Inc moves the cursor forward by one.
func (b *Buffer[T]) Inc() {
	if b.mask >= 0 {
		b.index = (b.index + 1) & b.mask
		return
	}
	if b.index == len(b.data)-1 {
		b.index = 0
	} else {
		b.index++
	}
}

// Dec moves the cursor backward by one.
func (b *Buffer[T]) Dec() {
	if b.mask >= 0 {
		b.index = (b.index + b.mask) & b.mask
		return
	}
	if b.index == 0 {
		b.index = len(b.data) - 1
	} else {
		b.index--
	}
}

// Add moves the cursor forward by n.
func (b *Buffer[T]) Add(n int) { b.index = b.pos(n) }

// Sub moves the cursor backward by n.
func (b *Buffer[T]) Sub(n int) { b.index = b.pos(-n) }

// Equal reports whether b and o hold the same logical sequence, regardless
// of where their cursors physically sit.
func (b *Buffer[T]) Equal(o *Buffer[T]) bool {
	if b == o {
		return true
	}
	if len(b.data) != len(o.data) {
		return false
	}
	for i := range b.data {
		if b.At(i) != o.At(i) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of b.
func (b *Buffer[T]) Clone() *Buffer[T] {
	c := *b
	c.data = append([]T(nil), b.data...)
	return &c
}
