package lfsr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](Taus88),
		[]uint32{2584743988, 1691120658, 3152798356, 2252447704, 989603736})
	engine.TestKnownAnswers[uint32](t, NewSeeded[uint32](Taus88, 7),
		[]uint32{2121856, 100674944, 1209565414, 2152030208, 3330295969})
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](LFSR113),
		[]uint32{3952563604, 1192989748, 2423800670, 1230242343, 788132445})
	engine.TestKnownAnswers[uint32](t, NewSeeded[uint32](LFSR113, 7),
		[]uint32{526368, 276808, 3223324260, 25334292, 1900226169})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](LFSR258),
		[]uint64{9973624093427544505, 17203455483290184537, 3469538395387468010, 8795315472740051422, 6545042816095807101})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](LFSR258, 7),
		[]uint64{3300682389504, 9223372586617733122, 1144048307929670, 4647721414177243136, 9815877154926232792})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](Taus88) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewSeeded[uint32](LFSR113, 7) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](LFSR258) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewFromSeq[uint64](LFSR258, seedseq.New(5, 6, 7))
	}, 1000)
}

func TestRegisterBackward(t *testing.T) {
	for _, comps := range [][]Component{Taus88, LFSR113, LFSR258} {
		w := uint(32)
		if len(comps) == 5 {
			w = 64
		}
		for _, c := range comps {
			r := register{Component: c, w: w}
			z := r.seed(0x0123456789abcdef)
			hist := []uint64{z}
			for i := 0; i < 200; i++ {
				z = r.forward(z)
				hist = append(hist, z)
			}
			for i := len(hist) - 2; i >= 0; i-- {
				z = r.backward(z)
				require.Equal(t, hist[i], z, "%+v step %d", c, i)
			}
		}
	}
}

func TestZeroSeed(t *testing.T) {
	require.True(t, NewSeeded[uint32](Taus88, 0).Equal(NewSeeded[uint32](Taus88, DefaultSeed32)))
	require.True(t, NewSeeded[uint64](LFSR258, 0).Equal(NewSeeded[uint64](LFSR258, DefaultSeed64)))

	// Seeds below the meaningful bits are clamped.
	e := New[uint32](Taus88, 1, 1, 1)
	e.Discard(100)
	for i := 0; i < e.n; i++ {
		require.NotZero(t, e.state[i]>>(32-e.regs[i].K))
	}
}

func TestInvalidComponents(t *testing.T) {
	require.Panics(t, func() { NewDefault[uint32](LFSR258) })
	require.Panics(t, func() { New[uint32](Taus88, 1, 2) })
}

func BenchmarkLFSR113(b *testing.B) { engine.BenchmarkNext[uint32](b, NewDefault[uint32](LFSR113)) }

func BenchmarkLFSR113Prev(b *testing.B) { engine.BenchmarkPrev[uint32](b, NewDefault[uint32](LFSR113)) }
