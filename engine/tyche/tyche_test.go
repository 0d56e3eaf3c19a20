package tyche

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, New(DefaultSeed, 0),
		[]uint32{2920578392, 3881376358, 2498410884, 518160232, 3410101478})
	engine.TestKnownAnswers[uint32](t, NewOpenRand(DefaultSeed, 0),
		[]uint32{1757600561, 214735517, 2300583315, 3203245176, 97436028})
	engine.TestKnownAnswers[uint32](t, New(7, 3),
		[]uint32{3487334337, 1997449123, 442145366, 3781037745, 2704402090})
	engine.TestKnownAnswers[uint32](t, NewFromSeq(seedseq.New(1, 2, 3), false),
		[]uint32{2297442267, 2329189615, 2911706883, 879651311, 1259984738})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return New(DefaultSeed, 0) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewOpenRand(0, 1) }, 500)
}

func TestZeroSequence(t *testing.T) {
	e := NewFromSeq(seedseq.NewInserter(32, 0, 0, 0, 0), false)
	require.True(t, e.Equal(New(DefaultSeed, 0)))
}
