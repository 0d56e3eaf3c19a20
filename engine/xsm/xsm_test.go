package xsm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/seedseq"
)

func TestKnownAnswers(t *testing.T) {
	engine.TestKnownAnswers[uint32](t, NewDefault[uint32](XSM32),
		[]uint32{4269150040, 1625168216, 1278762924, 819296691, 893025321})
	engine.TestKnownAnswers[uint32](t, NewSeeded[uint32](XSM32, 7),
		[]uint32{955153311, 4218689808, 1139261166, 2018763262, 2741627063})
	engine.TestKnownAnswers[uint64](t, NewDefault[uint64](XSM64),
		[]uint64{10100940686299886584, 15170070682542421694, 1247229889488833409, 9622736552540639667, 12246573857635445549})
	engine.TestKnownAnswers[uint64](t, NewSeeded[uint64](XSM64, 7),
		[]uint64{87556366697206901, 18099679437569151150, 6946153282418360069, 6969379374970170162, 11907696183480141649})
}

func TestEngines(t *testing.T) {
	engine.TestEngine(t, func() engine.Engine[uint32] { return NewDefault[uint32](XSM32) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint64] { return NewSeeded[uint64](XSM64, 0) }, 500)
	engine.TestEngine(t, func() engine.Engine[uint64] {
		return NewFromSeq[uint64](XSM64, seedseq.New(3))
	}, 500)
}

func TestCarryAcrossLowWord(t *testing.T) {
	e := New[uint32](XSM32, 0xffffffff, 0)
	ref := New[uint32](XSM32, 0xffffffff, 0)
	for i := 0; i < 100; i++ {
		e.Next()
	}
	for i := 0; i < 100; i++ {
		e.Prev()
	}
	require.True(t, e.Equal(ref))
}
