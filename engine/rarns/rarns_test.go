package rarns

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](RARNS64),
		[]uint64{6955692277481298590, 8613341249797879421, 5094183917899393379, 13506896237691126381, 13026335117716110428})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](RARNS64, 7),
		[]uint64{2217773117786389403, 18052850607248671635, 1689981292988967680, 17739609467704444994, 12601105692394338945})
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](RARNS32),
		[]uint32{2687446189, 156862338, 555286267, 946450740, 1369076551})
	engine.TestKnownAnswers[uint16](t, NewDefault[uint16](RARNS16),
		[]uint16{42616, 22930, 65234, 57225, 24896})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint16] { return NewDefault[uint16](RARNS16) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewSeeded[uint32](RARNS32, 0) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewFromSeq[uint64](RARNS64, seedseq.New(11, 12))
	}, 500)
}

func TestZeroSequence(t *testing.T) {
	e := NewFromSeq[uint64](RARNS64, seedseq.NewInserter(64, 0, 0, 0))
	require.True(t, e.Equal(NewDefault[uint64](RARNS64)))
}
