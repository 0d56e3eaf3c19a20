package trivium

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewDefault(), []uint64{
		9012736526568228756, 10912666519437827688, 7943055608264696451,
		3060130424054440562, 18361934624380271422,
	})
	engine.TestKnownAnswers[uint64](t, NewSeeded(7), []uint64{
		13591674151078689530, 5984489849621562056, 14132193513542011222,
		15735724150475314894, 2502217747149665633,
	})
	engine.TestKnownAnswers[uint64](t, NewSeeded(0), []uint64{1947060649049710843, 9208065887120030289})
	engine.TestKnownAnswers[uint64](t, NewFromSeq(seedseq.New(1, 2, 3)), []uint64{
		1593129367531139253, 6134734045570265421, 13406423104757710876,
		4351943534532619580, 5928253786655257129,
	})
	engine.TestKnownAnswers[uint64](t,
		New([10]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, [10]byte{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}),
		[]uint64{10676726805401024143, 11809663285320732184, 11174036037415302992})
	engine.TestNth[uint64](t, NewDefault(), 1000, 13313954758783569681)
}

func TestEngine(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault() }, 300)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewSeeded(0) }, 100)
}

func TestTailBits(t *testing.T) {
	e := NewDefault()
	for i := 0; i < 50; i++ {
		e.Next()
		require.Zero(t, e.a[1]<<tailA)
		require.Zero(t, e.b[1]<<tailB)
		require.Zero(t, e.c[1]<<tailC)
	}
}

func TestRewindWarmup(t *testing.T) {
	e := NewSeeded(42)
	for i := 0; i < warmup; i++ {
		e.Rewind()
	}
	require.Equal(t, register{0, 42 << 48}, e.a)
	require.Equal(t, register{}, e.b)
	require.Equal(t, register{0, 7 << 17}, e.c)
}

func TestRegistered(t *testing.T) {
	src, err := engine.New("trivium", []byte("seed: 7"))
	require.Nil(t, err)
	require.Equal(t, uint64(13591674151078689530), src.Next())
	require.Equal(t, uint(64), src.Bits())
}

func BenchmarkNext(b *testing.B) { engine.BenchmarkNext[uint64](b, NewDefault()) }

func BenchmarkPrev(b *testing.B) { engine.BenchmarkPrev[uint64](b, NewDefault()) }
