// Package bitops implements masks and rotations bounded to a logical word
// width narrower than the native integer it is stored in.
package bitops

import "math/bits"

// Unsigned is the set of native unsigned integers the generic helpers
// accept.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Width returns the number of bits in T.
func Width[T Unsigned]() uint {
	return uint(bits.Len64(uint64(^T(0))))
}

// RotateLeft rotates x left by s within the full width of T.
func RotateLeft[T Unsigned](x T, s uint) T {
	w := Width[T]()
	s %= w
	if s == 0 {
		return x
	}
	return x<<s | x>>(w-s)
}

// RotateRight rotates x right by s within the full width of T.
func RotateRight[T Unsigned](x T, s uint) T {
	w := Width[T]()
	s %= w
	if s == 0 {
		return x
	}
	return x>>s | x<<(w-s)
}

// Mask returns a value with the low w bits set. w may be up to 64.
func Mask(w uint) uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << w) - 1
}

// MaskAt returns size bits set starting at bit pos.
func MaskAt(size, pos uint) uint64 {
	if pos >= 64 {
		return 0
	}
	return Mask(size) << pos
}

// Rotl rotates the w-bit value x left by s.
func Rotl(x uint64, s, w uint) uint64 {
	s %= w
	if s == 0 {
		return x & Mask(w)
	}
	return ((x << s) | (x&Mask(w))>>(w-s)) & Mask(w)
}

// Rotr rotates the w-bit value x right by s.
func Rotr(x uint64, s, w uint) uint64 {
	s %= w
	if s == 0 {
		return x & Mask(w)
	}
	return ((x&Mask(w))>>s | (x << (w - s))) & Mask(w)
}

// Shift shifts x left by s when s is positive and right by -s otherwise.
func Shift(x uint64, s int) uint64 {
	if s >= 0 {
		return x << uint(s)
	}
	return x >> uint(-s)
}
