package speck

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewSeeded(DefaultSeed),
		[]uint64{2563224047333181269, 7278030512432956512, 4789523305137921135, 16213506097393776198, 2108049327400814771})
	engine.TestKnownAnswers[uint64](t, NewSeeded(7),
		[]uint64{2974828802517872282, 10355818489616632670, 10987488544871568357, 15451995766814031912, 1842483666834151505})
	engine.TestKnownAnswers[uint64](t, New(1, 2, 3, 4),
		[]uint64{4846475069005865543, 13386772027015431441, 7916608766942808881, 2417471443644852713, 3057826366528257593})
	engine.TestKnownAnswers[uint64](t, NewFromSeq(seedseq.New(1, 2, 3)),
		[]uint64{14300050708493379762, 11989450748200330499, 6485781796160174778, 3657820545455212342, 10843514754028750859})
	engine.TestNth[uint64](t, NewSeeded(DefaultSeed), 100, 4511801775400993599)
}

// The Speck128/256 test vector from the cipher's designers.
func TestBlockCipher(t *testing.T) {
	e := New(0x0706050403020100, 0x0f0e0d0c0b0a0908, 0x1716151413121110, 0x1f1e1d1c1b1a1918)
	e.hi, e.lo = 0x65736f6874206e49, 0x202e72656e6f6f70
	e.generate()
	require.Equal(t, [2]uint64{0x4eeeb48d9c188f43, 0x4109010405c0f53e}, e.block)
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewSeeded(DefaultSeed) }, 100)
}

func TestCounterCarry(t *testing.T) {
	e := NewSeeded(1)
	e.lo = ^uint64(0)
	e.generate()
	start := *e
	e.Discard(4)
	require.Equal(t, uint64(1), e.hi)
	for i := 0; i < 4; i++ {
		e.Prev()
	}
	require.Equal(t, start, *e)
}

func TestRegistered(t *testing.T) {
	src, err := engine.New("speck128", []byte("seed: 7"))
	require.Nil(t, err)
	require.Equal(t, uint64(2974828802517872282), src.Next())
}

func BenchmarkSpeck128(b *testing.B) { engine.BenchmarkNext[uint64](b, NewSeeded(DefaultSeed)) }
