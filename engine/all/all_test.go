package all

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
)

var optionSets = []string{
	"",
	"seed: 0",
	"seed: 42",
	"seeds: [1, 2, 3]",
	"passphrase: correct horse battery staple",
}

func TestEveryDriver(t *testing.T) {
	names := engine.Drivers()
	require.True(t, len(names) > 50)

	for _, name := range names {
		for _, opts := range optionSets {
			src, err := engine.New(name, []byte(opts))
			require.Nil(t, err, name)

			fwd := make([]uint64, 64)
			for i := range fwd {
				fwd[i] = src.Next()
				require.True(t, fwd[i] >= src.Min() && fwd[i] <= src.Max(), "%s %q", name, opts)
			}
			for i := len(fwd) - 1; i >= 0; i-- {
				require.Equal(t, fwd[i], src.Prev(), "%s %q step %d", name, opts, i)
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	for _, name := range engine.Drivers() {
		a, err := engine.New(name, []byte("seed: 99"))
		require.Nil(t, err)
		b, err := engine.New(name, []byte("seed: 99"))
		require.Nil(t, err)

		a.Discard(10)
		for i := 0; i < 10; i++ {
			b.Next()
		}
		require.Equal(t, a.Next(), b.Next(), name)
	}
}

func TestRand(t *testing.T) {
	for _, name := range []string{"mt19937", "arc4", "mrg32k3a", "pcg32"} {
		src, err := engine.New(name, nil)
		require.Nil(t, err, name)

		r := rand.New(engine.NewRand(src))
		for i := 0; i < 1000; i++ {
			k := r.Intn(10)
			require.True(t, k >= 0 && k < 10)
		}
	}
}

func TestZeroSeed(t *testing.T) {
	for _, name := range engine.Drivers() {
		for _, opts := range []string{"seed: 0", "seeds: [0, 0, 0, 0, 0, 0, 0, 0]"} {
			src, err := engine.New(name, []byte(opts))
			require.Nil(t, err, name)

			var acc uint64
			for i := 0; i < 64; i++ {
				acc |= src.Next()
			}
			require.NotZero(t, acc, "%s %q", name, opts)
		}
	}
}
