package lxm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewDefault(),
		[]uint64{5462611082047578805, 17095950887328919928, 15680017532028854295, 13839003410276510397, 15619666657875160355})
	engine.TestKnownAnswers[uint64](t, NewSeeded(7),
		[]uint64{8519040117858583192, 6087447947430869606, 15098611275192553124, 13095363268098901254, 5472621285767657503})
}

func TestZeroXoshiroState(t *testing.T) {
	e := New(3, 5, 0, 0, 0, 0)
	require.True(t, e.Equal(New(3, 5, goldenRatio, silverRatio, 0, 0)))
	engine.TestKnownAnswers[uint64](t, e,
		[]uint64{8551920140520589534, 886014448777729558, 9424379706976622335})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault() }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewFromSeq(seedseq.New(2, 7, 1, 8)) }, 1000)
}

func TestEqual(t *testing.T) {
	a, b := NewSeeded(1), NewSeeded(1)
	require.True(t, a.Equal(b))
	a.Next()
	require.False(t, a.Equal(b))
	a.Prev()
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(NewSeeded(2)))
}

func BenchmarkL64X256Mix(b *testing.B) { engine.BenchmarkNext[uint64](b, NewDefault()) }

func BenchmarkL64X256MixPrev(b *testing.B) { engine.BenchmarkPrev[uint64](b, NewDefault()) }
