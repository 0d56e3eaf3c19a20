package chacha

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/chacha20"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewDefault(ChaCha20),
		[]uint32{870170843, 175125385, 2125206430, 4171478670, 3226210677})
	engine.TestKnownAnswers[uint32](t, NewDefault(ChaCha8),
		[]uint32{69514943, 3047967161, 3979067688, 4074133207, 1517864727})
	engine.TestKnownAnswers[uint32](t, NewDefault(ChaCha12),
		[]uint32{3930137761, 1501290427, 3363713600, 1034878458, 3189579094})
	engine.TestKnownAnswers[uint32](t, NewSeeded(ChaCha20, 7),
		[]uint32{3118702321, 1150829157, 816813796, 231462414, 1424429535})
	engine.TestKnownAnswers[uint32](t, New(ChaCha20, 1, 2, 3, 4),
		[]uint32{2558571079, 2237587083, 3874971805, 288182261, 2221969879})
	engine.TestKnownAnswers[uint32](t, NewFromSeq(ChaCha20, seedseq.New(1, 2, 3)),
		[]uint32{3367572457, 1611417764, 311525928, 2325852332, 993698285})
	engine.TestNth[uint32](t, NewDefault(ChaCha20), 100, 712334601)
}

func TestKeystream(t *testing.T) {
	var key [8]uint32
	keyBytes := make([]byte, 32)
	for i := range key {
		key[i] = uint32(0x01010101 * (i + 1))
		binary.LittleEndian.PutUint32(keyBytes[4*i:], key[i])
	}
	c, err := chacha20.NewUnauthenticatedCipher(keyBytes, make([]byte, chacha20.NonceSize))
	require.Nil(t, err)

	stream := make([]byte, 64*50)
	c.XORKeyStream(stream, stream)

	e := NewFromKey(ChaCha20, key)
	for i := 0; i < len(stream); i += 4 {
		require.Equal(t, binary.LittleEndian.Uint32(stream[i:]), e.Next(), "word %d", i/4)
	}
}

func TestEngines(t *testing.T) {
	for _, rounds := range []int{ChaCha8, ChaCha12, ChaCha20} {
		r := rounds
		engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault(r) }, 100)
	}
}

func TestCounterCarry(t *testing.T) {
	e := NewDefault(ChaCha8)
	e.lo = ^uint64(0) - 20
	e.generate()
	start := *e

	want := make([]uint32, 40)
	for i := range want {
		want[i] = e.Next()
	}
	hi, _ := e.Position()
	require.Equal(t, uint64(1), hi)

	for i := len(want) - 1; i >= 0; i-- {
		require.Equal(t, want[i], e.Prev())
	}
	require.Equal(t, start, *e)
}

func TestDiscardBackstep(t *testing.T) {
	a, b := NewDefault(ChaCha20), NewDefault(ChaCha20)
	a.Discard(1 << 40)
	for i := 0; i < 3; i++ {
		a.Next()
	}
	a.Backstep(3)
	b.hi, b.lo = 0, 1<<40
	b.generate()
	require.Equal(t, *b, *a)
}

func TestRegistered(t *testing.T) {
	src, err := engine.New("chacha20", []byte("seed: 7"))
	require.Nil(t, err)
	require.Equal(t, uint64(3118702321), src.Next())
}

func BenchmarkChaCha20(b *testing.B) { engine.BenchmarkNext[uint32](b, NewDefault(ChaCha20)) }

func BenchmarkChaCha20Prev(b *testing.B) { engine.BenchmarkPrev[uint32](b, NewDefault(ChaCha20)) }
