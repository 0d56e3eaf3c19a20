// Package unshift inverts the "value combined with a shifted copy of itself"
// steps found in shift-register generators.
//
// Each inverse resolves the original value chunk by chunk: the bits that the
// shift moved nothing into are already known, and every resolved chunk
// cancels its own contribution from the bits above (or below) it. All
// functions work on the low end bits of a uint64.
package unshift

import "github.com/chihaya/brng/pkg/bitops"

func chunk(shift, end, pos uint) uint {
	if shift < end-pos {
		return shift
	}
	return end - pos
}

// LeftXor returns x such that y == x ^ (x << shift) within end bits.
func LeftXor(y uint64, end, shift uint) uint64 {
	return LeftXorAnd(y, end, shift, ^uint64(0))
}

// LeftXorAnd returns x such that y == x ^ ((x << shift) & and) within end
// bits.
func LeftXorAnd(y uint64, end, shift uint, and uint64) uint64 {
	if shift == 0 {
		panic("unshift: zero shift")
	}
	var result uint64
	for pos := uint(0); pos < end; {
		size := chunk(shift, end, pos)
		part := y & bitops.MaskAt(size, pos)
		result |= part
		pos += size
		if pos < end {
			y ^= (part << shift) & and
		}
	}
	return result
}

// RightXor returns x such that y == x ^ (x >> shift) within end bits.
func RightXor(y uint64, end, shift uint) uint64 {
	return RightXorAnd(y, end, shift, ^uint64(0))
}

// RightXorAnd returns x such that y == x ^ ((x >> shift) & and) within end
// bits.
func RightXorAnd(y uint64, end, shift uint, and uint64) uint64 {
	if shift == 0 {
		panic("unshift: zero shift")
	}
	y &= bitops.Mask(end)
	var result uint64
	for pos := uint(0); pos < end; {
		size := chunk(shift, end, pos)
		part := y & bitops.MaskAt(size, end-pos-size)
		result |= part
		pos += size
		if pos < end {
			y ^= (part >> shift) & and
		}
	}
	return result
}

// LeftPlus returns x such that y == x + (x << shift) modulo 2^end.
func LeftPlus(y uint64, end, shift uint) uint64 {
	if shift == 0 {
		panic("unshift: zero shift")
	}
	var result uint64
	for pos := uint(0); pos < end; {
		size := chunk(shift, end, pos)
		part := y & bitops.MaskAt(size, pos)
		result |= part
		pos += size
		if pos < end {
			y -= part << shift
		}
	}
	return result
}

// Xor dispatches on the sign of shift: positive shifts are left shifts,
// negative shifts are right shifts, zero is the identity.
func Xor(y uint64, end uint, shift int) uint64 {
	switch {
	case shift > 0:
		return LeftXor(y, end, uint(shift))
	case shift < 0:
		return RightXor(y, end, uint(-shift))
	default:
		return y
	}
}

// LeftXor128 inverts x ^ (x << shift) on a 128-bit value split into hi and
// lo halves.
func LeftXor128(hi, lo uint64, shift uint) (uint64, uint64) {
	if shift == 0 {
		panic("unshift: zero shift")
	}
	var rhi, rlo uint64
	for pos := uint(0); pos < 128; {
		size := chunk(shift, 128, pos)
		phi, plo := and128(hi, lo, mask128(size, pos))
		rhi |= phi
		rlo |= plo
		pos += size
		if pos < 128 {
			shi, slo := shl128(phi, plo, shift)
			hi ^= shi
			lo ^= slo
		}
	}
	return rhi, rlo
}

// RightXor128 inverts x ^ (x >> shift) on a 128-bit value.
func RightXor128(hi, lo uint64, shift uint) (uint64, uint64) {
	if shift == 0 {
		panic("unshift: zero shift")
	}
	var rhi, rlo uint64
	for pos := uint(0); pos < 128; {
		size := chunk(shift, 128, pos)
		phi, plo := and128(hi, lo, mask128(size, 128-pos-size))
		rhi |= phi
		rlo |= plo
		pos += size
		if pos < 128 {
			shi, slo := shr128(phi, plo, shift)
			hi ^= shi
			lo ^= slo
		}
	}
	return rhi, rlo
}

type u128 struct{ hi, lo uint64 }

func mask128(size, pos uint) u128 {
	var m u128
	switch {
	case size >= 128:
		m = u128{^uint64(0), ^uint64(0)}
	case size >= 64:
		m = u128{bitops.Mask(size - 64), ^uint64(0)}
	default:
		m = u128{0, bitops.Mask(size)}
	}
	m.hi, m.lo = shl128(m.hi, m.lo, pos)
	return m
}

func and128(hi, lo uint64, m u128) (uint64, uint64) {
	return hi & m.hi, lo & m.lo
}

// Shl128 shifts the 128-bit value (hi, lo) left by s.
func Shl128(hi, lo uint64, s uint) (uint64, uint64) {
	return shl128(hi, lo, s)
}

// Shr128 shifts the 128-bit value (hi, lo) right by s.
func Shr128(hi, lo uint64, s uint) (uint64, uint64) {
	return shr128(hi, lo, s)
}

func shl128(hi, lo uint64, s uint) (uint64, uint64) {
	switch {
	case s == 0:
		return hi, lo
	case s >= 128:
		return 0, 0
	case s >= 64:
		return lo << (s - 64), 0
	default:
		return hi<<s | lo>>(64-s), lo << s
	}
}

func shr128(hi, lo uint64, s uint) (uint64, uint64) {
	switch {
	case s == 0:
		return hi, lo
	case s >= 128:
		return 0, 0
	case s >= 64:
		return 0, hi >> (s - 64)
	default:
		return hi >> s, lo>>s | hi<<(64-s)
	}
}
