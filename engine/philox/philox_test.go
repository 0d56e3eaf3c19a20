package philox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, New[uint32](Philox2x32, 0),
		[]uint32{0xff1dae59, 0x6cd10df2})
	engine.TestKnownAnswers[uint32](t, New[uint32](Philox4x32, 0),
		[]uint32{0x6627e8d5, 0xe169c58d, 0xbc57ac4c, 0x9b00dbd8, 0xf8e4cca4})
	engine.TestKnownAnswers[uint64](t, New[uint64](Philox2x64, 0),
		[]uint64{0xca00a0459843d731, 0x66c24222c9a845b5})
	engine.TestKnownAnswers[uint64](t, New[uint64](Philox4x64, 0),
		[]uint64{0x16554d9eca36314c, 0xdb20fe9d672d0fdc, 0xd7e772cee186176b, 0x7e68b68aec7ba23b, 0x02f4ba6408e4d89b})

	engine.TestNth[uint32](t, NewDefault[uint32](Philox4x32), 10000, 1955073260)
	engine.TestNth[uint64](t, NewDefault[uint64](Philox4x64), 10000, 3409172418970261260)
	engine.TestKnownAnswers[uint64](t, NewFromSeq[uint64](Philox4x64, seedseq.New(1, 2, 3)),
		[]uint64{192757172494278014, 7426190168230903226, 13675044325643076562, 5965817176782784947, 5188671616388897163})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](Philox2x32) }, 100)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](Philox4x32) }, 100)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](Philox2x64) }, 100)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](Philox4x64) }, 100)
}

func TestSetCounter(t *testing.T) {
	a, b := NewDefault[uint32](Philox4x32), NewDefault[uint32](Philox4x32)
	a.Discard(4 * 7)
	b.SetCounter([4]uint32{7})
	require.Equal(t, *a, *b)
}

func TestMulhilo(t *testing.T) {
	hi, lo := mulhilo[uint32](0xffffffff, 0xffffffff)
	require.Equal(t, uint32(0xfffffffe), hi)
	require.Equal(t, uint32(1), lo)

	hi64, lo64 := mulhilo[uint64](1<<63, 4)
	require.Equal(t, uint64(2), hi64)
	require.Equal(t, uint64(0), lo64)
}

func TestRegistered(t *testing.T) {
	src, err := engine.New("philox4x32", []byte("seed: 0"))
	require.Nil(t, err)
	require.Equal(t, uint64(0x6627e8d5), src.Next())
}

func BenchmarkPhilox4x32(b *testing.B) {
	engine.BenchmarkNext[uint32](b, NewDefault[uint32](Philox4x32))
}
