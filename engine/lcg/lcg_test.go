package lcg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	var table = []struct {
		p    Params
		seed uint64
		want []uint64
	}{
		{MinStdRand0, 1, []uint64{16807, 282475249, 1622650073, 984943658, 1144108930}},
		{MinStdRand, 1, []uint64{48271, 182605794, 1291394886, 1914720637, 2078669041}},
		{MinStdRand, 7, []uint64{337897, 1278240558, 449829614, 518142577, 1665781405}},
		{RanQD1, 1, []uint64{1015568748, 1586005467, 2165703038, 3027450565, 217083232}},
		{RANDU, 1, []uint64{65539, 393225, 1769499, 7077969, 26542323}},
		{Borland, 1, []uint64{22695478, 8561967, 719750332, 71484141, 763924754}},
		{Newlib, 1, []uint64{6364136223846793006, 4661661911302352151, 5455537305215981068, 5116987657322042397, 3490389784639564826}},
		{Rand48, 1, []uint64{25214903928, 206026503483683, 245470556921330, 105707381795861, 223576932655868}},
		{MMIX, 1, []uint64{7806831264735756412, 9396908728118811419, 11960119808228829710, 7062582979898595269, 14673421054488193520}},
	}

	for _, tt := range table {
		e := New[uint64](tt.p, tt.seed)
		got := make([]uint64, len(tt.want))
		for i := range got {
			got[i] = e.Next()
		}
		require.Equal(t, tt.want, got, "%+v", tt.p)
	}

	engine.TestKnownAnswers[uint16](t, NewDefault[uint16](ZX81), []uint16{149, 11249, 57317, 39009, 42165})
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](MinStdRand0), []uint32{16807, 282475249, 1622650073})
}

func TestMCG128KnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewMCG128Default(MCG128),
		[]uint64{8156690410351818572, 11725288555843542486, 16619296144858160314, 13550124633517593464, 9757875328856926244})
	engine.TestKnownAnswers[uint64](t, NewMCG128Default(MCG128Fast),
		[]uint64{9803474084666123065, 2189139570525761392, 5151148472291483888, 14062933465837296246, 18241545297628487539})
}

func TestInverse128(t *testing.T) {
	require.Equal(t, [2]uint64{0xdfbe8d485fa69c9f, 0x310704d1671d9d75}, inverse128([2]uint64{MCG128.Hi, MCG128.Lo}))
	require.Equal(t, [2]uint64{0x0cd365d2cb1a6a6c, 0x8b838d0354ead59d}, inverse128([2]uint64{MCG128Fast.Hi, MCG128Fast.Lo}))
}

func TestEngines(t *testing.T) {
	for _, p := range []Params{MinStdRand0, MinStdRand, RanQD1, RANDU, Borland} {
		p := p
		engine.TestEngine(t, func() engine.Engine[uint32] { return New[uint32](p, 12345) }, 1000)
	}
	for _, p := range []Params{Newlib, Rand48, MMIX} {
		p := p
		engine.TestEngine(t, func() engine.Engine[uint64] { return NewFromSeq[uint64](p, seedseq.New(1, 2)) }, 1000)
	}
	engine.TestEngine(t, func() engine.Engine[uint16] { return NewDefault[uint16](ZX81) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewMCG128Default(MCG128) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewMCG128(MCG128Fast, 0) }, 1000)
}

func TestZeroSeed(t *testing.T) {
	require.True(t, New[uint32](MinStdRand, 0).Equal(New[uint32](MinStdRand, 1)))
	require.True(t, New[uint32](MinStdRand, 2147483647).Equal(New[uint32](MinStdRand, 1)))
	require.False(t, New[uint32](RanQD1, 0).Equal(New[uint32](RanQD1, 1)))
}

func TestRange(t *testing.T) {
	e := NewDefault[uint32](MinStdRand)
	require.Equal(t, uint32(1), e.Min())
	require.Equal(t, uint32(2147483646), e.Max())

	z := NewDefault[uint16](ZX81)
	require.Equal(t, uint16(0), z.Min())
	require.Equal(t, uint16(65535), z.Max())
}

func TestInvalidParams(t *testing.T) {
	require.Panics(t, func() { NewDefault[uint16](MinStdRand) })
	require.Panics(t, func() { NewDefault[uint32](Params{W: 32, A: 5, M: 3}) })
}

func TestRegistered(t *testing.T) {
	for _, name := range []string{"minstd_rand", "rand48", "mmix", "zx81", "mcg128", "mcg128_fast"} {
		src, err := engine.New(name, nil)
		require.Nil(t, err, name)
		v := src.Next()
		require.Equal(t, v, src.Prev())
	}
}

func BenchmarkMinStdRand(b *testing.B) { engine.BenchmarkNext[uint32](b, NewDefault[uint32](MinStdRand)) }

func BenchmarkMinStdRandPrev(b *testing.B) { engine.BenchmarkPrev[uint32](b, NewDefault[uint32](MinStdRand)) }
