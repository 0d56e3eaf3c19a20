package xoroshiro

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](Xoroshiro64Star),
		[]uint32{2252809632, 3045339660, 3738227139, 252238846, 418863131})
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](Xoroshiro64StarStar),
		[]uint32{3967255632, 1923041262, 1115888231, 1703509701, 2593591535})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Xoroshiro128Plus),
		[]uint64{17496175853519336319, 8390050457058488894, 15649802273911839137, 1255001496598031345, 1611793691994325861})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Xoroshiro128PlusPlus),
		[]uint64{10408165468935466109, 572685890086009146, 12719438651204260672, 7836711943859652876, 2231235153939775004})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Xoroshiro128StarStar),
		[]uint64{2751683904778449796, 6919506273393839721, 16911023614288361104, 4891175816783389862, 2408944223465503221})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](Xoroshiro128StarStar, 7, DefaultSeed2),
		[]uint64{40320, 15318412911255969038, 17968132667746661058, 5108950413832816800, 6685884092128096480})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](Xoroshiro128Plus, 0, 0),
		[]uint64{1, 137439019009, 18015777210762241, 4611826897716855840, 91770755193309248})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Xoroshiro1024PlusPlus),
		[]uint64{6967269285426900563, 4598208362047106651, 8126435207562781257, 14996464040357551167, 14332076880602220912})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Xoroshiro1024Star),
		[]uint64{291145584972256205, 0, 0, 0, 0})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Xoroshiro1024StarStar),
		[]uint64{658357691318271434, 0, 0, 0, 0})
	engine.TestNth[uint64](t, NewDefault[uint64](Xoroshiro1024PlusPlus), 100, 16381862397309238576)
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](Xoroshiro64StarStar) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](Xoroshiro128PlusPlus) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](Xoroshiro1024PlusPlus) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewFromSeq[uint64](Xoroshiro1024StarStar, seedseq.New(1, 2, 3))
	}, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewFromSeq[uint64](Xoroshiro1024Star, seedseq.FromPassphrase("ring"))
	}, 1000)
}

func TestEqual(t *testing.T) {
	a := NewFromSeq[uint64](Xoroshiro1024PlusPlus, seedseq.New(5))
	b := a.Clone()
	require.True(t, a.Equal(b))

	a.Next()
	require.False(t, a.Equal(b))
	b.Next()
	require.True(t, a.Equal(b))

	// The cursor position is not part of the logical state.
	c, d := newEngine[uint64](Xoroshiro1024Star), newEngine[uint64](Xoroshiro1024Star)
	d.state.Sub(3)
	for i := 0; i < c.state.Len(); i++ {
		c.state.Set(i, uint64(i+1))
		d.state.Set(i, uint64(i+1))
	}
	require.NotEqual(t, c.state.Data(), d.state.Data())
	require.True(t, c.Equal(d))
}

func TestZeroSequence(t *testing.T) {
	e := NewFromSeq[uint64](Xoroshiro128Plus, seedseq.NewInserter(64, 0, 0))
	require.True(t, e.Equal(NewSeeded[uint64](Xoroshiro128Plus, 0, 1)))
}

func TestInvalidParams(t *testing.T) {
	require.Panics(t, func() { NewDefault[uint16](Xoroshiro128Plus) })
	require.Panics(t, func() { NewDefault[uint64](Params{Bits: 64, A: 1, B: 1, C: 1}) })
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"xoroshiro64star", "xoroshiro128plusplus", "xoroshiro1024starstar"} {
		src, err := engine.New(name, []byte("seed: 42\n"))
		require.Nil(t, err, name)
		v := src.Next()
		require.Equal(t, v, src.Prev())
	}
}

func BenchmarkXoroshiro128PlusPlus(b *testing.B) {
	engine.BenchmarkNext[uint64](b, NewDefault[uint64](Xoroshiro128PlusPlus))
}

func BenchmarkXoroshiro1024PlusPlusPrev(b *testing.B) {
	engine.BenchmarkPrev[uint64](b, NewDefault[uint64](Xoroshiro1024PlusPlus))
}
