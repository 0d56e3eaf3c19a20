// Package modular computes modular multiplicative inverses used to run
// multiplicative recurrences backwards.
package modular

import "math/bits"

// Inverse returns the inverse of b modulo n, that is the value x in [0, n)
// with x*b = 1 (mod n). b and n must be coprime.
func Inverse(n, b uint64) uint64 {
	if n == 0 {
		return InversePow2(64, b)
	}
	b %= n
	t1, t1neg := uint64(0), false
	t2, t2neg := uint64(1), false
	r0, r1 := n, b
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0%r1

		// t3 = t1 - q*t2 with explicit signs, reduced modulo n.
		qt := mulmod(q, t2, n)
		var t3 uint64
		var t3neg bool
		switch {
		case t1neg == t2neg:
			if t1 >= qt {
				t3, t3neg = t1-qt, t1neg
			} else {
				t3, t3neg = qt-t1, !t1neg
			}
		default:
			t3, t3neg = addmod(t1, qt, n), t1neg
		}
		t1, t1neg = t2, t2neg
		t2, t2neg = t3, t3neg
	}
	t1 %= n
	if t1neg && t1 != 0 {
		return n - t1
	}
	return t1
}

// InversePow2 returns the inverse of the odd value b modulo 2^w.
func InversePow2(w uint, b uint64) uint64 {
	if b&1 == 0 {
		panic("modular: even value has no inverse modulo a power of two")
	}
	// Newton iteration doubles the number of correct low bits each round.
	x := b
	for i := 0; i < 6; i++ {
		x *= 2 - b*x
	}
	if w >= 64 {
		return x
	}
	return x & (uint64(1)<<w - 1)
}

// MulMod returns a*b mod n without overflow.
func MulMod(a, b, n uint64) uint64 {
	return mulmod(a, b, n)
}

func mulmod(a, b, n uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	_, rem := bits.Div64(hi%n, lo, n)
	return rem
}

func addmod(a, b, n uint64) uint64 {
	a %= n
	b %= n
	s, c := bits.Add64(a, b, 0)
	if c != 0 || s >= n {
		s -= n
	}
	return s
}
