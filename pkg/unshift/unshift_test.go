package unshift

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/pkg/bitops"
)

func samples(n int) []uint64 {
	r := rand.New(rand.NewSource(42))
	out := []uint64{0, 1, ^uint64(0), 0x8000000000000000, 0x5555555555555555}
	for i := 0; i < n; i++ {
		out = append(out, r.Uint64())
	}
	return out
}

var widths = []uint{8, 16, 24, 31, 32, 48, 52, 63, 64}

func TestLeftXor(t *testing.T) {
	for _, end := range widths {
		m := bitops.Mask(end)
		for shift := uint(1); shift < end; shift++ {
			for _, v := range samples(32) {
				x := v & m
				y := (x ^ (x << shift)) & m
				require.Equal(t, x, LeftXor(y, end, shift), "end=%d shift=%d x=%#x", end, shift, x)
			}
		}
	}
}

func TestRightXor(t *testing.T) {
	for _, end := range widths {
		m := bitops.Mask(end)
		for shift := uint(1); shift < end; shift++ {
			for _, v := range samples(32) {
				x := v & m
				y := x ^ (x >> shift)
				require.Equal(t, x, RightXor(y, end, shift), "end=%d shift=%d x=%#x", end, shift, x)
			}
		}
	}
}

func TestLeftPlus(t *testing.T) {
	for _, end := range widths {
		m := bitops.Mask(end)
		for shift := uint(1); shift < end; shift++ {
			for _, v := range samples(32) {
				x := v & m
				y := (x + (x << shift)) & m
				require.Equal(t, x, LeftPlus(y, end, shift)&m, "end=%d shift=%d x=%#x", end, shift, x)
			}
		}
	}
}

func TestTemperingMasks(t *testing.T) {
	for _, v := range samples(256) {
		x := v & 0xffffffff
		y := x ^ ((x << 7) & 0x9d2c5680)
		require.Equal(t, x, LeftXorAnd(y, 32, 7, 0x9d2c5680))

		y = x ^ ((x >> 11) & 0xffffffff)
		require.Equal(t, x, RightXorAnd(y, 32, 11, 0xffffffff))

		z := v ^ ((v >> 29) & 0x5555555555555555)
		require.Equal(t, v, RightXorAnd(z, 64, 29, 0x5555555555555555))
	}
}

func TestXor(t *testing.T) {
	x := uint64(0x0123456789abcdef)
	require.Equal(t, x, Xor(x^(x<<13), 64, 13))
	require.Equal(t, x, Xor(x^(x>>7), 64, -7))
	require.Equal(t, x, Xor(x, 64, 0))
}

func TestXor128(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, shift := range []uint{1, 8, 18, 63, 64, 65, 100, 127} {
		for i := 0; i < 64; i++ {
			hi, lo := r.Uint64(), r.Uint64()

			shi, slo := Shl128(hi, lo, shift)
			gotHi, gotLo := LeftXor128(hi^shi, lo^slo, shift)
			require.Equal(t, hi, gotHi)
			require.Equal(t, lo, gotLo)

			shi, slo = Shr128(hi, lo, shift)
			gotHi, gotLo = RightXor128(hi^shi, lo^slo, shift)
			require.Equal(t, hi, gotHi)
			require.Equal(t, lo, gotLo)
		}
	}
}

func TestShift128(t *testing.T) {
	hi, lo := Shl128(0, 1, 64)
	require.Equal(t, uint64(1), hi)
	require.Equal(t, uint64(0), lo)

	hi, lo = Shr128(1, 0, 1)
	require.Equal(t, uint64(0), hi)
	require.Equal(t, uint64(0x8000000000000000), lo)
}

func BenchmarkLeftXor(b *testing.B) {
	var k uint64
	for i := 0; i < b.N; i++ {
		k = LeftXor(uint64(i), 64, 7)
	}
	_ = k
}
