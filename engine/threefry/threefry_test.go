package threefry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, New[uint32](Threefry2x32, 0, 0),
		[]uint32{0x6b200159, 0x99ba4efe, 0x508efb2c, 0xc0de3f32, 0x64a626ec})
	engine.TestKnownAnswers[uint32](t, New[uint32](Threefry4x32),
		[]uint32{0x9c6ca96a, 0xe17eae66, 0xfc10ecd4, 0x5256a7d8, 0x606694a5})
	engine.TestKnownAnswers[uint64](t, New[uint64](Threefry2x64),
		[]uint64{0xc2b6e3a8c2c69865, 0x6f81ed42f350084d, 0xbaf51c00fb3a5957, 0xed553e57f10b3b42, 0x65ca10886e2566df})
	engine.TestKnownAnswers[uint64](t, New[uint64](Threefry4x64, 0, 0, 0, 0),
		[]uint64{0x09218ebde6c85537, 0x55941f5266d86105, 0x4bd25e16282434dc, 0xee29ec846bd2e40b, 0xaffbae48c21f4d17})

	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](Threefry2x32),
		[]uint32{337125098, 1196089497, 936967119, 192943791, 1789991647})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](Threefry4x64),
		[]uint64{1656398116883445434, 9079808419945300956, 13375153334587197712, 3581969180650523923, 9790229745736971290})
	engine.TestNth[uint32](t, NewDefault[uint32](Threefry4x32), 100, 3305502818)
	engine.TestKnownAnswers[uint64](t, NewFromSeq[uint64](Threefry2x64, seedseq.New(1, 2, 3)),
		[]uint64{17655490776712338420, 14481340577080470733, 15265538476339485637, 7686551034509778022, 6276567390066433184})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](Threefry2x32) }, 100)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](Threefry4x32) }, 100)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](Threefry2x64) }, 100)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](Threefry4x64) }, 100)
}

func TestCounterWrap(t *testing.T) {
	e := New[uint32](Threefry2x32, 1, 2)
	e.SetCounter([4]uint32{^uint32(0), ^uint32(0)})
	start := *e
	require.Equal(t, [4]uint32{}, e.ctr)

	first := e.Next()
	e.Next()
	e.Next()
	require.Equal(t, [4]uint32{1}, e.ctr)
	e.Prev()
	e.Prev()
	require.Equal(t, first, e.Prev())
	require.Equal(t, start, *e)
}

func TestInvalidParams(t *testing.T) {
	require.Panics(t, func() { New[uint32](Threefry2x32, 1, 2, 3) })
	require.Panics(t, func() { New[uint32](Params{N: 3, Rounds: 20}) })
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"threefry2x32", "threefry4x32", "threefry2x64", "threefry4x64"} {
		_, err := engine.New(name, nil)
		require.Nil(t, err, name)
	}
}

func BenchmarkThreefry4x64(b *testing.B) {
	engine.BenchmarkNext[uint64](b, NewDefault[uint64](Threefry4x64))
}
