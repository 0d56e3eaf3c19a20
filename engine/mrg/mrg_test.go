package mrg

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/modular"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](MRG31k3p),
		[]uint32{1579097239, 1319000434, 236390836, 1393231922, 786396556})
	engine.TestKnownAnswers[uint32](t, New[uint32](MRG31k3p, 7),
		[]uint32{28902272, 28754789, 1101627084, 113697277, 768116247})
	engine.TestKnownAnswers[uint32](t, NewFromSeq[uint32](MRG31k3p, seedseq.New(1, 2, 3)),
		[]uint32{1736469821, 1092663921, 1680375358, 1417117268, 1128705708})
	engine.TestNth[uint32](t, NewDefault[uint32](MRG31k3p), 10000, 1856536988)

	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](MRG32k3a),
		[]uint32{545508589, 1368065410, 1327943761, 3546985096, 951893194})
	engine.TestKnownAnswers[uint32](t, New[uint32](MRG32k3a, 7),
		[]uint32{10073447, 3827456467, 426946630, 2649274591, 378738967})
	engine.TestKnownAnswers[uint32](t, NewFromSeq[uint32](MRG32k3a, seedseq.New(1, 2, 3)),
		[]uint32{1831560536, 4229361477, 3861124135, 476702453, 3386899764})
	engine.TestNth[uint32](t, NewDefault[uint32](MRG32k3a), 10000, 878310219)

	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](MRG63k3a), []uint64{
		5937473809595949476, 8585418077995931278, 7233373107501396343,
		2930340432071454314, 6400916347256758513,
	})
	engine.TestKnownAnswers[uint64](t, New[uint64](MRG63k3a, 7), []uint64{
		9223371850544337982, 9056989427192795182, 8148776084639489976,
		3237403830352913160, 963791830083791178,
	})
	engine.TestKnownAnswers[uint64](t, NewFromSeq[uint64](MRG63k3a, seedseq.New(1, 2, 3)), []uint64{
		1428972349665872625, 479296158113393064, 1202093722760662119,
		3271994288286081922, 2203584425018935285,
	})
	engine.TestNth[uint64](t, NewDefault[uint64](MRG63k3a), 10000, 2620559276041367332)

	engine.TestKnownAnswers[uint32](t, NewDefault5[uint32](MRG32k5a),
		[]uint32{1108909451, 2782727692, 4095572532, 1865175376, 860175653})
	engine.TestKnownAnswers[uint32](t, New5[uint32](MRG32k5a, 7),
		[]uint32{5499543, 538415929, 1668119040, 2924907312, 1952966751})
	engine.TestKnownAnswers[uint32](t, NewFromSeq5[uint32](MRG32k5a, seedseq.New(1, 2, 3)),
		[]uint32{2503356744, 2163495406, 1453621702, 361994636, 935943311})
	engine.TestNth[uint32](t, NewDefault5[uint32](MRG32k5a), 10000, 3558466874)
}

// States that hit the p1 == 0, p2 == 0 and p1 == p2 branches of the
// floating point reference.
func TestMRG32k5aReferenceStates(t *testing.T) {
	for _, tt := range []struct {
		state []uint64
		want  []uint32
	}{
		{
			[]uint64{1958623832, 2866876007, 150144429, 478980109, 740639212, 3955543965, 2550687073, 3509537915, 119502490, 4039470558},
			[]uint32{3903723197, 327999381, 2188052597},
		},
		{
			[]uint64{1958623832, 2866876007, 150144429, 478980109, 740639212, 2313483013, 1786764733, 713760824, 4050934279, 1671982563},
			[]uint32{4237914736, 1357313421, 3564391338},
		},
		{
			[]uint64{2027557476, 2763277694, 1990012522, 2412316413, 2112525205, 2313483013, 1786764733, 713760824, 4050934279, 1671982563},
			[]uint32{2744486652, 200253966, 3814300195},
		},
	} {
		engine.TestKnownAnswers[uint32](t, NewFromSeq5[uint32](MRG32k5a, seedseq.NewInserter(32, tt.state...)), tt.want)
	}
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](MRG31k3p) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](MRG32k3a) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](MRG63k3a) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault5[uint32](MRG32k5a) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault5[uint64](MRG32k5a) }, 500)
}

func TestWideWord(t *testing.T) {
	narrow, wide := NewDefault5[uint32](MRG32k5a), NewDefault5[uint64](MRG32k5a)
	for i := 0; i < 1000; i++ {
		require.Equal(t, uint64(narrow.Next()), wide.Next())
	}
	require.Equal(t, uint64(narrow.Max()), wide.Max())
}

func TestZeroSeed(t *testing.T) {
	require.Equal(t, NewDefault[uint32](MRG32k3a), New[uint32](MRG32k3a, 0))

	e := NewFromSeq[uint32](MRG32k3a, seedseq.NewInserter(32, 0, 0, 0, 5, 6, 7))
	e.Rewind()
	require.Equal(t, [6]uint64{12345, 12345, 12345, 5, 6, 7}, e.s)

	require.Equal(t, NewDefault5[uint32](MRG32k5a), New5[uint32](MRG32k5a, 0))

	e5 := NewFromSeq5[uint32](MRG32k5a, seedseq.NewInserter(32, 0, 0, 0, 0, 0, 5, 6, 7, 8, 9))
	e5.Rewind()
	require.Equal(t, [10]uint64{12345, 12345, 12345, 12345, 12345, 5, 6, 7, 8, 9}, e5.s)
}

func TestInverses(t *testing.T) {
	for _, p := range []Params{MRG31k3p, MRG32k3a, MRG63k3a} {
		e := newEngine[uint64](p)
		require.Equal(t, uint64(1), modular.MulMod(e.inv[0], p.A13, p.M1))
		require.Equal(t, uint64(1), modular.MulMod(e.inv[1], p.A23, p.M2))
	}
	e := newEngine5[uint64](MRG32k5a)
	require.Equal(t, uint64(1), modular.MulMod(e.inv[0], MRG32k5a.A15, MRG32k5a.M1))
	require.Equal(t, uint64(1), modular.MulMod(e.inv[1], MRG32k5a.A25, MRG32k5a.M2))
}

func TestNarrowWord(t *testing.T) {
	require.Panics(t, func() { NewDefault[uint32](MRG63k3a) })
	require.Panics(t, func() { NewDefault5[uint16](MRG32k5a) })
}

func TestRegistered(t *testing.T) {
	for name, want := range map[string]uint64{
		"mrg31k3p": 28902272,
		"mrg32k3a": 10073447,
		"mrg63k3a": 9223371850544337982,
		"mrg32k5a": 5499543,
	} {
		src, err := engine.New(name, []byte("seed: 7"))
		require.Nil(t, err, name)
		require.Equal(t, want, src.Next(), name)
	}
}

func BenchmarkMRG32k3a(b *testing.B) { engine.BenchmarkNext[uint32](b, NewDefault[uint32](MRG32k3a)) }

func BenchmarkMRG63k3aPrev(b *testing.B) {
	engine.BenchmarkPrev[uint64](b, NewDefault[uint64](MRG63k3a))
}
