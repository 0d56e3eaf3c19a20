package well

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewWELL512a(DefaultSeed),
		[]uint32{4026844610, 3182225634, 422104290, 2569850082, 2569850082})
	engine.TestKnownAnswers[uint32](t, NewWELL512a(7),
		[]uint32{1879048252, 1923876124, 3056345372, 908599580, 908599580})
	engine.TestNth[uint32](t, NewWELL512a(DefaultSeed), 100, 1029225128)

	engine.TestKnownAnswers[uint32](t, NewWELL1024a(DefaultSeed),
		[]uint32{1145544713, 600320057, 2206447625, 781236928, 1340791593})
	engine.TestKnownAnswers[uint32](t, NewWELL1024aFromSeq(seedseq.New(1, 2, 3)),
		[]uint32{89154759, 1913571879, 805016565, 4098694265, 1461364573})

	engine.TestKnownAnswers[uint32](t, NewLong(WELL19937a, DefaultSeed),
		[]uint32{127939497, 1202131604, 1239771460, 3440561206, 576203569})
	engine.TestKnownAnswers[uint32](t, NewLong(WELL19937c, DefaultSeed),
		[]uint32{3559696297, 263000212, 943942468, 1190584118, 534559537})
	engine.TestNth[uint32](t, NewLong(WELL19937a, DefaultSeed), 2000, 1063649451)
	engine.TestKnownAnswers[uint32](t, NewLongFromSeq(WELL19937a, seedseq.New(1, 2, 3)),
		[]uint32{527694886, 3891906847, 1739423346, 3145314200, 1852007336})

	engine.TestKnownAnswers[uint32](t, NewLong(WELL44497a, DefaultSeed),
		[]uint32{1701352537, 1701352463, 1701351791, 1701353327, 1701353327})
	engine.TestKnownAnswers[uint32](t, NewLong(WELL44497b, DefaultSeed),
		[]uint32{3172995161, 3173060623, 3073443183, 892339055, 892339055})
	engine.TestNth[uint32](t, NewLong(WELL44497a, DefaultSeed), 3000, 3929407389)
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewWELL512a(DefaultSeed) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewWELL1024a(99) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewLong(WELL19937c, 5) }, 1500)
	engine.TestEngine(t, func() engine.Engine[uint32] {
		return NewLongFromSeq(WELL44497b, seedseq.New(4, 5))
	}, 3000)
}

func TestZeroSeed(t *testing.T) {
	require.True(t, NewWELL512a(0).Equal(NewWELL512a(DefaultSeed)))
	require.True(t, NewLong(WELL19937a, 0).Equal(NewLong(WELL19937a, DefaultSeed)))

	zero := seedseq.NewInserter(32, make([]uint64, 32)...)
	require.True(t, NewWELL1024aFromSeq(zero).Equal(NewWELL1024a(DefaultSeed)))
}

func TestEqualAndClone(t *testing.T) {
	a := NewLong(WELL19937a, 3)
	b := a.Clone()
	require.True(t, a.Equal(b))

	a.Next()
	require.False(t, a.Equal(b))
	b.Next()
	require.True(t, a.Equal(b))

	require.False(t, NewLong(WELL19937a, 3).Equal(NewLong(WELL19937c, 3)))
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"well512a", "well1024a", "well19937a", "well19937c", "well44497a", "well44497b"} {
		src, err := engine.New(name, nil)
		require.Nil(t, err, name)
		require.Equal(t, uint(32), src.Bits(), name)
	}
}

func BenchmarkWELL512a(b *testing.B) { engine.BenchmarkNext[uint32](b, NewWELL512a(DefaultSeed)) }

func BenchmarkWELL19937a(b *testing.B) {
	engine.BenchmarkNext[uint32](b, NewLong(WELL19937a, DefaultSeed))
}

func BenchmarkWELL19937aPrev(b *testing.B) {
	engine.BenchmarkPrev[uint32](b, NewLong(WELL19937a, DefaultSeed))
}
