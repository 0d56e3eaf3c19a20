package gjrand

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](GJRand64),
		[]uint64{14528621056511401689, 6683232778373007569, 2986114258248163643, 16224588264565129094, 286052157024262310})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](GJRand64, 7),
		[]uint64{5311280060709481523, 5438248746023586760, 17645466530079159817, 10405116885090612658, 13582737361157333530})
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](GJRand32),
		[]uint32{3288749969, 4007359213, 3892057029, 1876146152, 2275871781})
	engine.TestKnownAnswers[uint16](t, NewDefault[uint16](GJRand16),
		[]uint16{13031, 34005, 59081, 29722, 52841})
	engine.TestKnownAnswers[uint8](t, NewDefault[uint8](GJRand8),
		[]uint8{5, 112, 240, 130, 234})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint8] { return NewDefault[uint8](GJRand8) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint16] { return NewSeeded[uint16](GJRand16, 0) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](GJRand32) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewFromSeq[uint64](GJRand64, seedseq.New(8))
	}, 500)
}

func TestEqual(t *testing.T) {
	a, b := NewDefault[uint64](GJRand64), NewSeeded[uint64](GJRand64, 1)
	require.False(t, a.Equal(b))
	require.True(t, a.Equal(NewDefault[uint64](GJRand64)))
}
