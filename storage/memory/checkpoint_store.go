// Package memory implements a CheckpointStore that lives in the memory of a
// single process.
package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/chihaya/brng/pkg/stop"
	"github.com/chihaya/brng/storage"
)

// Name is the name by which this checkpoint store is registered with
// brng.
const Name = "memory"

func init() {
	storage.RegisterDriver(Name, driver{})
}

type driver struct{}

func (d driver) NewCheckpointStore(_ []byte) (storage.CheckpointStore, error) {
	return New(), nil
}

type checkpointStore struct {
	mu          sync.RWMutex
	checkpoints map[string]storage.Checkpoint
	locks       map[string]chan struct{}
	closed      chan struct{}
}

var _ storage.CheckpointStore = &checkpointStore{}

// New creates a new CheckpointStore backed by memory.
func New() storage.CheckpointStore {
	return &checkpointStore{
		checkpoints: make(map[string]storage.Checkpoint),
		locks:       make(map[string]chan struct{}),
		closed:      make(chan struct{}),
	}
}

func panicIfClosed(closed <-chan struct{}) {
	select {
	case <-closed:
		panic("attempted to interact with stopped memory store")
	default:
	}
}

func record(op string, start time.Time, err *error) {
	storage.RecordOperation(Name, op, start, *err)
}

func (s *checkpointStore) Put(name string, cp storage.Checkpoint) (err error) {
	panicIfClosed(s.closed)
	defer record("put", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checkpoints[name]; !ok {
		storage.PromCheckpointsCount.Inc()
	}
	s.checkpoints[name] = cp
	return nil
}

func (s *checkpointStore) Get(name string) (cp storage.Checkpoint, err error) {
	panicIfClosed(s.closed)
	defer record("get", time.Now(), &err)

	s.mu.RLock()
	defer s.mu.RUnlock()

	cp, ok := s.checkpoints[name]
	if !ok {
		return cp, storage.ErrResourceDoesNotExist
	}
	return cp, nil
}

func (s *checkpointStore) Delete(name string) (err error) {
	panicIfClosed(s.closed)
	defer record("delete", time.Now(), &err)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.checkpoints[name]; !ok {
		return storage.ErrResourceDoesNotExist
	}
	delete(s.checkpoints, name)
	storage.PromCheckpointsCount.Dec()
	return nil
}

func (s *checkpointStore) Names() ([]string, error) {
	panicIfClosed(s.closed)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return storage.SortedNames(s.checkpoints), nil
}

// lock returns the channel guarding name. A send acquires, a receive
// releases.
func (s *checkpointStore) lock(name string) chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[name]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[name] = l
	}
	return l
}

func (s *checkpointStore) Lock(name string) (storage.Unlocker, error) {
	panicIfClosed(s.closed)

	l := s.lock(name)
	l <- struct{}{}

	var released int32
	return func() error {
		if !atomic.CompareAndSwapInt32(&released, 0, 1) {
			return storage.ErrLockNotHeld
		}
		<-l
		return nil
	}, nil
}

func (s *checkpointStore) Stop() stop.Result {
	c := make(stop.Channel)
	go func() {
		close(s.closed)
		c.Done()
	}()
	return c.Result()
}
