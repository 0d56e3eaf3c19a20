package xorshift

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewDefault(),
		[]uint64{14020771798691965630, 3350548285605957304, 4876001680341273344, 11375670674084377343, 121266990639577057})
	engine.TestKnownAnswers[uint64](t, NewSeeded(7),
		[]uint64{8537155868469882091, 14380529930231450815, 6126425165016638284, 6197558041145383948, 11679180939707716548})
	engine.TestKnownAnswers[uint64](t, NewXORShift128Plus(1, 2),
		[]uint64{3, 8388645, 33816707, 70368778527840, 211106267172129})
	engine.TestKnownAnswers[uint64](t, NewFromSeq(seedseq.New(1, 2, 3)),
		[]uint64{1653209740407075148, 12741300476436894302, 6286079712395849390, 5790102495076190389, 13722932877807800213})
	engine.TestNth[uint64](t, NewDefault(), 1000, 1053180335607602228)
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault() }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewXORShift128Plus(1, 0) }, 1000)
}

func TestZeroState(t *testing.T) {
	require.Equal(t, NewDefault(), NewXORShift128Plus(0, 0))
}

func TestRewindAndGenerate(t *testing.T) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < 1000; i++ {
		s0, s1 := r.Uint64(), r.Uint64()
		v, n0, n1 := GenerateAndAdvance(s0, s1)
		pv, p0, p1 := RewindAndGenerate(n0, n1)
		require.Equal(t, s0, p0)
		require.Equal(t, s1, p1)
		require.Equal(t, v, pv)
	}
}

func TestLocked(t *testing.T) {
	s := NewLockedXORShift128Plus(1, 2)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Next()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, NewXORShift128Plus(1, 2).Peek(), func() uint64 {
		for i := 0; i < 799; i++ {
			s.Prev()
		}
		return s.Prev()
	}())
}

func TestIntn(t *testing.T) {
	s := NewSeeded(uint64(time.Now().UnixNano()))
	for i := 0; i < 10000; i++ {
		k := Intn(s, 10)
		require.True(t, k >= 0, "Intn() must be >= 0")
		require.True(t, k < 10, "Intn(k) must be < k")
	}

	s0, s1 := uint64(1), uint64(2)
	var k int
	for i := 0; i < 10000; i++ {
		k, s0, s1 = IntnState(s0, s1, 10)
		require.True(t, k >= 0 && k < 10)
	}
	require.Panics(t, func() { Intn(s, 0) })
}

func TestRegistered(t *testing.T) {
	src, err := engine.New("xorshift128plus", []byte("seed: 7"))
	require.Nil(t, err)
	require.Equal(t, uint64(8537155868469882091), src.Next())
}

func BenchmarkXORShift128Plus_Next(b *testing.B) {
	engine.BenchmarkNext[uint64](b, NewDefault())
}

func BenchmarkXORShift128Plus_Prev(b *testing.B) {
	engine.BenchmarkPrev[uint64](b, NewDefault())
}

func BenchmarkIntnXORShift128Plus(b *testing.B) {
	s := NewDefault()
	var k int
	for i := 0; i < b.N; i++ {
		k = Intn(s, 1000)
	}
	_ = k
}

func BenchmarkLockedXORShift128Plus_Next(b *testing.B) {
	s := NewLockedXORShift128Plus(1, 2)
	var k uint64
	for i := 0; i < b.N; i++ {
		k = s.Next()
	}
	_ = k
}
