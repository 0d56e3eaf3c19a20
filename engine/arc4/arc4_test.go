package arc4

import (
	"crypto/rc4"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKeystream(t *testing.T) {
	for _, key := range []string{"Key", "Wiki", "Secret", "a much longer key of forty-two bytes......"} {
		c, err := rc4.NewCipher([]byte(key))
		require.Nil(t, err)
		want := make([]byte, 600)
		c.XORKeyStream(want, want)

		e := NewFromKey([]byte(key))
		for i, b := range want {
			require.Equal(t, b, e.Next(), "key %q byte %d", key, i)
		}
	}
}

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint8](t, NewFromKey([]byte("Key")),
		[]uint8{0xeb, 0x9f, 0x77, 0x81, 0xb7, 0x34, 0xca, 0x72})
	engine.TestKnownAnswers[uint8](t, NewFromSeq(seedseq.New(1, 2, 3)),
		[]uint8{170, 179, 92, 252, 10, 195, 192, 185})
	engine.TestKnownAnswers[uint8](t, NewFromSeq(seedseq.New(0xd0beef41)),
		[]uint8{47, 24, 211, 163, 192, 33, 209, 133})
	engine.TestKnownAnswers[uint8](t, NewDefault(),
		[]uint8{254, 197, 186, 132, 196, 252, 243, 117})
	engine.TestKnownAnswers[uint8](t, NewSeeded(7),
		[]uint8{112, 133, 233, 121, 26, 233, 193, 164})
	engine.TestNth[uint8](t, NewDefault(), 1000, 254)

	engine.TestKnownAnswers[uint32](t, NewWide[uint32](NewDefault()),
		[]uint32{4274371204, 3304911733, 4253367096, 3179885533, 2706500837})
	engine.TestKnownAnswers[uint32](t, NewWide[uint32](NewFromSeq(seedseq.New(1, 2, 3))),
		[]uint32{2863881468, 180601017, 1602600473, 1247040190, 3240777185})
	engine.TestKnownAnswers[uint64](t, NewWide[uint64](NewDefault()), []uint64{
		18358284535449056117, 18268072578382377949, 11624332583760462696,
		12243084528829107921, 9679644929830878396,
	})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint8] { return NewDefault() }, 2000)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewWide[uint32](NewDefault()) }, 600)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewWide[uint64](NewFromSeq(seedseq.New(1, 2, 3)))
	}, 300)
}

func TestWidePeek(t *testing.T) {
	w := NewWide[uint32](NewDefault())
	before := *w
	v := w.Peek()
	require.Equal(t, before, *w)
	require.Equal(t, v, w.Next())
}

func TestWideBigEndian(t *testing.T) {
	b := NewDefault()
	hi, lo := b.Next(), b.Next()
	w := NewWide[uint16](NewDefault())
	require.Equal(t, uint16(hi)<<8|uint16(lo), w.Next())
	engine.TestEngine(t, func() engine.Engine[uint16] { return NewWide[uint16](NewDefault()) }, 600)
}

func TestPermutation(t *testing.T) {
	e := NewFromSeq(seedseq.New(1, 2, 3))
	e.Discard(10000)
	var seen [256]bool
	for _, v := range e.s {
		require.False(t, seen[v])
		seen[v] = true
	}
}

func TestEmptyKey(t *testing.T) {
	require.Panics(t, func() { NewFromKey(nil) })
}

func TestRegistered(t *testing.T) {
	for name, want := range map[string]uint64{"arc4": 254, "arc4_32": 4274371204, "arc4_64": 18358284535449056117} {
		src, err := engine.New(name, nil)
		require.Nil(t, err, name)
		require.Equal(t, want, src.Next(), name)
	}
}

func BenchmarkNext(b *testing.B) { engine.BenchmarkNext[uint8](b, NewDefault()) }

func BenchmarkPrev(b *testing.B) { engine.BenchmarkPrev[uint8](b, NewDefault()) }

func BenchmarkWide64(b *testing.B) { engine.BenchmarkNext[uint64](b, NewWide[uint64](NewDefault())) }
