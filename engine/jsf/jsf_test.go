package jsf

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](JSF32n),
		[]uint32{2723230452, 519702369, 858478259, 3517897607, 1280143702})
	engine.TestKnownAnswers[uint32](t, NewSeeded[uint32](JSF32n, 7),
		[]uint32{1169752342, 2608350505, 2097656126, 152760778, 2239853894})
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](JSF32r),
		[]uint32{3757631831, 2979764820, 34059825, 712264734, 4219087867})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](JSF64n),
		[]uint64{5634020634165989962, 13115902122278224140, 14939513766133146451, 16931403359423753991, 2980230713560351651})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](JSF64r, 7),
		[]uint64{13163345391287146493, 16090636307180695708, 15573537050187226636, 7287841552975728518, 3005621226471754249})
	engine.TestKnownAnswers[uint8](t, NewDefault[uint8](JSF8),
		[]uint8{205, 134, 144, 252, 189})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Arbee),
		[]uint64{14190428975031691168, 1941491618268107775, 9254526473869110413, 5424938828198165471, 11033467650905556001})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](Arbee, 7),
		[]uint64{8248370242045337160, 9462696880091498772, 10974984067701111809, 8554070275089794134, 8405586097857343582})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](JSF32n) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewSeeded[uint32](JSF32r, 0) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewSeeded[uint64](JSF64r, 99) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint8] { return NewDefault[uint8](JSF8) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewFromSeq[uint64](Arbee, seedseq.New(1, 2, 3))
	}, 1000)
}

func TestEqual(t *testing.T) {
	a, b := NewDefault[uint64](Arbee), NewDefault[uint64](Arbee)
	require.True(t, a.Equal(b))
	a.Next()
	require.False(t, a.Equal(b))
	b.Next()
	require.True(t, a.Equal(b))
}

func TestRounds(t *testing.T) {
	want := New[uint64](Arbee, 1, 2, 3, 4)
	require.True(t, NewRounds[uint64](Arbee, warmup, 1, 2, 3, 4).Equal(want))

	e := NewRounds[uint64](Arbee, 12, 1, 2, 3, 4)
	require.False(t, e.Equal(want))
	e.Discard(warmup - 12)
	require.True(t, e.Equal(want))
}

func TestInvalidParams(t *testing.T) {
	require.Panics(t, func() { NewDefault[uint8](JSF32n) })
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"jsf32n", "jsf32r", "jsf64n", "jsf64r", "jsf8", "arbee"} {
		src, err := engine.New(name, []byte("seed: 0\n"))
		require.Nil(t, err, name)
		src.Next()
	}
}

func BenchmarkJSF64n(b *testing.B) { engine.BenchmarkNext[uint64](b, NewDefault[uint64](JSF64n)) }

func BenchmarkJSF64nPrev(b *testing.B) { engine.BenchmarkPrev[uint64](b, NewDefault[uint64](JSF64n)) }
