package modular

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInverse(t *testing.T) {
	table := []struct {
		n, b uint64
	}{
		{2147483647, 16807},
		{2147483647, 48271},
		{4294967291, 279470273},
		{4294967087, 1403580},
		{9223372036854769163, 1754669720},
		{97, 13},
	}

	for _, tt := range table {
		inv := Inverse(tt.n, tt.b)
		require.Less(t, inv, tt.n)
		require.Equal(t, uint64(1), MulMod(inv, tt.b, tt.n), "n=%d b=%d", tt.n, tt.b)
	}
}

func TestInversePow2(t *testing.T) {
	for _, b := range []uint64{1, 3, 25214903917, 6364136223846793005, 0xd1342543de82ef95, 15241094284759029579} {
		for _, w := range []uint{8, 16, 32, 48, 64} {
			inv := InversePow2(w, b)
			m := ^uint64(0)
			if w < 64 {
				m = uint64(1)<<w - 1
			}
			require.Equal(t, uint64(1), (inv*b)&m, "w=%d b=%d", w, b)
		}
	}
	require.Panics(t, func() { InversePow2(64, 2) })
}

func TestInverseZeroModulus(t *testing.T) {
	b := uint64(6364136223846793005)
	require.Equal(t, uint64(1), Inverse(0, b)*b)
}
