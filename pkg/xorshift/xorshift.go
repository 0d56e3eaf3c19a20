// Package xorshift implements the XORShift128+ PRNG as a bidirectional
// engine, plus stateless helpers that step a bare (s0, s1) pair.
package xorshift

import (
	"sync"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/engine/splitmix"
	"github.com/chihaya/brng/pkg/seedseq"
	"github.com/chihaya/brng/pkg/unshift"
)

// DefaultSeed is expanded through SplitMix64 by NewDefault.
const DefaultSeed uint64 = 5489

// XORShift describes the functionality of an XORShift PRNG.
type XORShift interface {
	Next() uint64
}

// XORShift128Plus holds the state of an XORShift128Plus PRNG.
type XORShift128Plus struct {
	state [2]uint64
}

var _ engine.Engine[uint64] = &XORShift128Plus{}

// NewXORShift128Plus creates a new XORShift PRNG. An all-zero state is a
// fixed point and is replaced by the default state.
func NewXORShift128Plus(s0, s1 uint64) *XORShift128Plus {
	if s0 == 0 && s1 == 0 {
		return NewDefault()
	}
	return &XORShift128Plus{
		state: [2]uint64{s0, s1},
	}
}

// NewSeeded expands seed into a state with SplitMix64.
func NewSeeded(seed uint64) *XORShift128Plus {
	sm := splitmix.New[uint64](splitmix.SplitMix64, seed, splitmix.DefaultGamma)
	return NewXORShift128Plus(sm.Next(), sm.Next())
}

// NewDefault creates a PRNG seeded with DefaultSeed.
func NewDefault() *XORShift128Plus {
	return NewSeeded(DefaultSeed)
}

// NewFromSeq draws the state from seq.
func NewFromSeq(seq seedseq.Sequence) *XORShift128Plus {
	v := seedseq.Words(seq, 64, 2)
	return NewXORShift128Plus(v[0], v[1])
}

// Peek returns the number the next call to Next returns.
func (s *XORShift128Plus) Peek() uint64 { return s.state[0] + s.state[1] }

// Advance moves the state one step forward.
func (s *XORShift128Plus) Advance() {
	_, s.state[0], s.state[1] = GenerateAndAdvance(s.state[0], s.state[1])
}

// Rewind moves the state one step back.
func (s *XORShift128Plus) Rewind() {
	_, s.state[0], s.state[1] = RewindAndGenerate(s.state[0], s.state[1])
}

// Next generates a pseudorandom number and advances the state of s.
func (s *XORShift128Plus) Next() uint64 { return engine.Next[uint64](s) }

// Prev rewinds the state of s and returns the number Next returned last.
func (s *XORShift128Plus) Prev() uint64 { return engine.Prev[uint64](s) }

func (s *XORShift128Plus) Discard(n uint64) { engine.Discard[uint64](s, n) }
func (s *XORShift128Plus) Min() uint64      { return 0 }
func (s *XORShift128Plus) Max() uint64      { return ^uint64(0) }

// LockedXORShift128Plus is a thread-safe XORShift128Plus.
type LockedXORShift128Plus struct {
	sync.Mutex
	s XORShift128Plus
}

// NewLockedXORShift128Plus creates a new LockedXORShift128Plus.
func NewLockedXORShift128Plus(s0, s1 uint64) *LockedXORShift128Plus {
	return &LockedXORShift128Plus{
		s: *NewXORShift128Plus(s0, s1),
	}
}

// Next generates a pseudorandom number and advances the state of s.
func (s *LockedXORShift128Plus) Next() uint64 {
	s.Lock()
	v := s.s.Next()
	s.Unlock()
	return v
}

// Prev rewinds the state of s and returns the number Next returned last.
func (s *LockedXORShift128Plus) Prev() uint64 {
	s.Lock()
	v := s.s.Prev()
	s.Unlock()
	return v
}

// GenerateAndAdvance applies XORShift128Plus on s0 and s1, returning
// the new states newS0, newS1 and a pseudo-random number v.
func GenerateAndAdvance(s0, s1 uint64) (v, newS0, newS1 uint64) {
	v = s0 + s1
	newS0 = s1
	s0 ^= s0 << 23
	newS1 = s0 ^ s1 ^ (s0 >> 18) ^ (s1 >> 5)
	return
}

// RewindAndGenerate undoes GenerateAndAdvance: given its newS0 and newS1 it
// returns the states s0, s1 it was called with and the number v it
// returned.
func RewindAndGenerate(newS0, newS1 uint64) (v, s0, s1 uint64) {
	s1 = newS0
	s0 = unshift.RightXor(newS1^s1^(s1>>5), 64, 18)
	s0 = unshift.LeftXor(s0, 64, 23)
	v = s0 + s1
	return
}

// Intn generates an int k that satisfies k >= 0 && k < n.
// n must be > 0.
func Intn(s XORShift, n int) int {
	if n <= 0 {
		panic("invalid n <= 0")
	}
	return int(s.Next() % uint64(n))
}

// IntnState is Intn over a bare state. It returns the generated k and the
// new state of the generator.
func IntnState(s0, s1 uint64, n int) (int, uint64, uint64) {
	if n <= 0 {
		panic("invalid n <= 0")
	}
	v, newS0, newS1 := GenerateAndAdvance(s0, s1)
	return int(v % uint64(n)), newS0, newS1
}

func init() {
	engine.RegisterDriver("xorshift128plus", engine.Family[uint64]{
		Default:  func() engine.Engine[uint64] { return NewDefault() },
		FromSeed: func(seed uint64) engine.Engine[uint64] { return NewSeeded(seed) },
		FromSeq:  func(seq seedseq.Sequence) engine.Engine[uint64] { return NewFromSeq(seq) },
	})
}
