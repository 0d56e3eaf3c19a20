package isaac

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers32(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](ISAAC32),
		[]uint32{844728616, 4072053242, 11665719, 4051328889, 3763270677})
	engine.TestKnownAnswers[uint32](t, New[uint32](ISAAC32, 7, 0),
		[]uint32{1447849008, 2943917825, 2481454683, 1310793507, 1274433629})
	engine.TestKnownAnswers[uint32](t, New[uint32](ISAAC32, 1, 2),
		[]uint32{4076861249, 3875726759, 1007982165, 1515676066, 1273994606})
	engine.TestKnownAnswers[uint32](t, NewFromSeq[uint32](ISAAC32, seedseq.New(1, 2, 3)),
		[]uint32{4001007331, 3793859243, 1943918676, 2280133061, 3552155438})
	engine.TestNth[uint32](t, NewDefault[uint32](ISAAC32), 1000, 3030006209)
}

func TestKnownAnswers64(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](ISAAC64), []uint64{
		16166342120655054804, 14527466510497629075, 14440414551486372199,
		16429675965140320397, 8598710423021305681,
	})
	engine.TestKnownAnswers[uint64](t, New[uint64](ISAAC64, 7, 0), []uint64{
		12690504804515151511, 15263645768463160668, 1659431509014406388,
		7103721948670837386, 4173088536988833806,
	})
	engine.TestKnownAnswers[uint64](t, New[uint64](ISAAC64, 1, 2), []uint64{
		6472870398857084892, 5842329533242950551, 16070546336416697920,
		6372287113922150356, 5919886357940156859,
	})
	engine.TestKnownAnswers[uint64](t, NewFromSeq[uint64](ISAAC64, seedseq.New(1, 2, 3)), []uint64{
		18136600733239693037, 1938035751858366115, 2807787882683391946,
		7045835113370113677, 14447459213555368192,
	})
	engine.TestNth[uint64](t, NewDefault[uint64](ISAAC64), 1000, 2271431560408430865)
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](ISAAC32) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewDefault[uint64](ISAAC64) }, 1000)
	engine.TestEngine(t, func() engine.Engine[uint32] {
		return NewFromSeq[uint32](ISAAC32, seedseq.New(1, 2, 3))
	}, 600)
}

// A state of identical words makes the update read back the word it is
// replacing on every step.
func TestSelfReference(t *testing.T) {
	e := NewFromSeq[uint32](ISAAC32, seedseq.NewInserter(32, make([]uint64, size+3)...))
	start := *e
	for i := 0; i < 3*size; i++ {
		e.Next()
	}
	for i := 0; i < 3*size; i++ {
		e.Prev()
	}
	require.Equal(t, start, *e)
}

func TestInvalidWidth(t *testing.T) {
	require.Panics(t, func() { NewDefault[uint16](ISAAC32) })
}

func TestRegistered(t *testing.T) {
	src, err := engine.New("isaac32", []byte("seed: 7"))
	require.Nil(t, err)
	require.Equal(t, uint64(1447849008), src.Next())

	src, err = engine.New("isaac64", []byte("seed: 7"))
	require.Nil(t, err)
	require.Equal(t, uint64(12690504804515151511), src.Next())
}

func BenchmarkISAAC32(b *testing.B) { engine.BenchmarkNext[uint32](b, NewDefault[uint32](ISAAC32)) }

func BenchmarkISAAC64(b *testing.B) { engine.BenchmarkNext[uint64](b, NewDefault[uint64](ISAAC64)) }

func BenchmarkISAAC64Prev(b *testing.B) {
	engine.BenchmarkPrev[uint64](b, NewDefault[uint64](ISAAC64))
}
