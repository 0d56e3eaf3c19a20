package sfmt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewSeeded[uint32](SFMT19937, 1234),
		[]uint32{3440181298, 1564997079, 1510669302, 2930277156, 1452439940})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](SFMT19937, 1234),
		[]uint64{6721611276080709682, 12585444554746559478, 16304848853923953028, 9207630728734989552, 12829221948686777296})
	engine.TestKnownAnswers[uint32](t, NewFromKey[uint32](SFMT19937, []uint32{0x1234, 0x5678, 0x9abc, 0xdef0}),
		[]uint32{2920711183, 3885745737, 3501893680, 856470934, 1421864068})
	engine.TestKnownAnswers[uint32](t, NewFromSeq[uint32](SFMT19937, seedseq.New(1, 2, 3)),
		[]uint32{1318206681, 2541736563, 3514143831, 3695917701, 3331517187})
	engine.TestKnownAnswers[uint64](t, NewFromSeq[uint64](SFMT19937, seedseq.New(1, 2, 3)),
		[]uint64{10916675414450650329, 15873845658016650327, 1071915753266146051, 14587114741249297106, 7267302315556842771})

	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](SFMT607),
		[]uint32{301632665, 2576493905, 2654107460, 4017059464, 1723672877})
	engine.TestNth[uint32](t, NewDefault[uint32](SFMT607), 1000, 2722178842)
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](SFMT4253),
		[]uint32{3072629361, 4095677934, 144150283, 3745785734, 2918037764})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](SFMT216091),
		[]uint64{6135040547294545631, 12652434463011138864, 16692529881630774572, 3585728533748283924, 7873800912263475412})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](SFMT607) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](SFMT1279) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint32] {
		return NewFromSeq[uint32](SFMT19937, seedseq.FromPassphrase("lanes"))
	}, 2000)
}

func TestPeriodCertification(t *testing.T) {
	zero := seedseq.NewInserter(32, make([]uint64, 4*SFMT607.Lanes())...)
	e := NewFromSeq[uint32](SFMT607, zero)
	e.Rewind()
	nonzero := false
	for _, l := range e.state.Data() {
		if l != (lane{}) {
			nonzero = true
		}
	}
	require.True(t, nonzero)
}

func TestLanes(t *testing.T) {
	require.Equal(t, 5, SFMT607.Lanes())
	require.Equal(t, 156, SFMT19937.Lanes())
	require.Equal(t, 1689, SFMT216091.Lanes())

	hi, lo := uint64(0x0123456789abcdef), uint64(0xfedcba9876543210)
	gotHi, gotLo := fromU128(hi, lo).u128()
	require.Equal(t, hi, gotHi)
	require.Equal(t, lo, gotLo)
}

func TestEqualAndClone(t *testing.T) {
	a := NewDefault[uint64](SFMT607)
	b := a.Clone()
	a.Discard(3)
	require.False(t, a.Equal(b))
	b.Discard(3)
	require.True(t, a.Equal(b))
}

func TestInvalidWidth(t *testing.T) {
	require.Panics(t, func() { NewDefault[uint16](SFMT607) })
}

func TestRegistered(t *testing.T) {
	src, err := engine.New("sfmt19937", []byte("seed: 1234"))
	require.Nil(t, err)
	require.Equal(t, uint64(3440181298), src.Next())

	src, err = engine.New("sfmt19937_64", []byte("seed: 1234"))
	require.Nil(t, err)
	require.Equal(t, uint64(6721611276080709682), src.Next())
}

func BenchmarkSFMT19937(b *testing.B) { engine.BenchmarkNext[uint32](b, NewDefault[uint32](SFMT19937)) }

func BenchmarkSFMT19937Prev(b *testing.B) {
	engine.BenchmarkPrev[uint32](b, NewDefault[uint32](SFMT19937))
}
