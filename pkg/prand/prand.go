// Package prand allows parallel access to randomness based on indices or
// arbitrary keys.
package prand

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"

	"github.com/chihaya/brng/engine"
)

type lockableSource struct {
	engine.Source
	*sync.Mutex
}

// Container is a container for sources of random numbers that can be locked
// individually.
type Container struct {
	sources []lockableSource
}

// NewSeeded returns a new Container with num sources created by the engine
// driver name. The ith source is seeded with seed+i.
func NewSeeded(name string, num int, seed uint64) (*Container, error) {
	if num <= 0 {
		return nil, errors.Errorf("invalid container size %d", num)
	}

	toReturn := Container{
		sources: make([]lockableSource, num),
	}

	for i := 0; i < num; i++ {
		src, err := engine.New(name, []byte("seed: "+strconv.FormatUint(seed+uint64(i), 10)))
		if err != nil {
			return nil, err
		}
		toReturn.sources[i].Source = src
		toReturn.sources[i].Mutex = &sync.Mutex{}
	}

	return &toReturn, nil
}

// Len returns the number of sources in the Container.
func (s *Container) Len() int { return len(s.sources) }

// Get locks and returns the nth source.
//
// Get panics if n is not a valid index for this Container.
func (s *Container) Get(n int) engine.Source {
	r := s.sources[n]
	r.Lock()
	return r.Source
}

// GetByKey locks and returns a source derived from the key.
func (s *Container) GetByKey(key []byte) engine.Source {
	return s.Get(s.index(key))
}

// Return returns the nth source to be available again.
//
// Return panics if n is not a valid index for this Container.
// Returning a source that is not locked is a fatal error.
func (s *Container) Return(n int) {
	s.sources[n].Unlock()
}

// ReturnByKey returns the source derived from the key.
//
// Returning a source that is not locked is a fatal error.
func (s *Container) ReturnByKey(key []byte) {
	s.Return(s.index(key))
}

func (s *Container) index(key []byte) int {
	return int(xxhash.Sum64(key) % uint64(len(s.sources)))
}
