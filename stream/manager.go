package stream

import (
	"errors"
	"sync"

	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/stop"
	"github.com/chihaya/brng/storage"
)

var (
	// ErrInvalidName is returned for a stream without a name.
	ErrInvalidName = errors.New("stream name must not be empty")

	// ErrStreamDoesNotExist is returned for operations on a stream that was
	// neither opened nor checkpointed.
	ErrStreamDoesNotExist = errors.New("stream does not exist")

	// ErrConflictingStream is returned by Open when a checkpoint of the same
	// name was created from a different engine or options.
	ErrConflictingStream = errors.New("stream exists with a different engine or options")
)

// Manager owns the open streams of a process and keeps their checkpoints in
// a CheckpointStore. Every operation runs under the store's lock for the
// stream and first catches up with the stored position, so processes sharing
// a store see one consistent stream.
type Manager struct {
	store storage.CheckpointStore

	mu      sync.RWMutex
	streams map[string]*Stream
}

// NewManager creates a Manager keeping checkpoints in store.
func NewManager(store storage.CheckpointStore) *Manager {
	return &Manager{
		store:   store,
		streams: make(map[string]*Stream),
	}
}

// Open opens a stream. A checkpoint of the same name is resumed if it was
// created from the same engine and options, otherwise a new stream is
// checkpointed at position 0.
func (m *Manager) Open(cfg Config) (*Stream, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}

	unlock, err := m.store.Lock(cfg.Name)
	if err != nil {
		return nil, err
	}
	defer unlockAndLog(cfg.Name, unlock)

	cp, err := m.store.Get(cfg.Name)
	switch {
	case err == storage.ErrResourceDoesNotExist:
		if err := m.store.Put(cfg.Name, s.Checkpoint()); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	case cp.Engine != s.engine || cp.Options != s.options:
		return nil, ErrConflictingStream
	default:
		s.SeekTo(cp.Position)
	}

	m.mu.Lock()
	m.streams[cfg.Name] = s
	m.mu.Unlock()

	log.Info("opened stream", cfg, log.Fields{"position": s.Position()})
	return s, nil
}

// Get returns the named stream, loading it from its checkpoint if another
// process opened it.
func (m *Manager) Get(name string) (*Stream, error) {
	m.mu.RLock()
	s, ok := m.streams[name]
	m.mu.RUnlock()
	if ok {
		return s, nil
	}

	cp, err := m.store.Get(name)
	if err == storage.ErrResourceDoesNotExist {
		return nil, ErrStreamDoesNotExist
	} else if err != nil {
		return nil, err
	}

	s, err = restore(name, cp)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.streams[name]; ok {
		return existing, nil
	}
	m.streams[name] = s
	return s, nil
}

// Names returns the sorted names of all streams in the store.
func (m *Manager) Names() ([]string, error) {
	return m.store.Names()
}

// Next returns the next n values of the named stream.
func (m *Manager) Next(name string, n int) ([]uint64, error) {
	var out []uint64
	err := m.update(name, func(s *Stream) { out = s.next(n) })
	return out, err
}

// Prev moves the named stream back n steps and returns the values passed
// over, most recent first.
func (m *Manager) Prev(name string, n int) ([]uint64, error) {
	var out []uint64
	err := m.update(name, func(s *Stream) { out = s.prev(n) })
	return out, err
}

// SeekTo moves the named stream to pos.
func (m *Manager) SeekTo(name string, pos int64) error {
	return m.update(name, func(s *Stream) { s.seek(pos) })
}

// Position returns the stored position of the named stream.
func (m *Manager) Position(name string) (int64, error) {
	cp, err := m.store.Get(name)
	if err == storage.ErrResourceDoesNotExist {
		return 0, ErrStreamDoesNotExist
	}
	return cp.Position, err
}

// Delete forgets the named stream.
func (m *Manager) Delete(name string) error {
	unlock, err := m.store.Lock(name)
	if err != nil {
		return err
	}
	defer unlockAndLog(name, unlock)

	m.mu.Lock()
	delete(m.streams, name)
	m.mu.Unlock()

	if err := m.store.Delete(name); err == storage.ErrResourceDoesNotExist {
		return ErrStreamDoesNotExist
	} else if err != nil {
		return err
	}
	return nil
}

func (m *Manager) update(name string, f func(*Stream)) error {
	s, err := m.Get(name)
	if err != nil {
		return err
	}

	unlock, err := m.store.Lock(name)
	if err != nil {
		return err
	}
	defer unlockAndLog(name, unlock)

	cp, err := m.store.Get(name)
	if err == storage.ErrResourceDoesNotExist {
		return ErrStreamDoesNotExist
	} else if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seek(cp.Position)
	f(s)
	return m.store.Put(name, s.checkpoint())
}

// Stop stops the underlying store.
func (m *Manager) Stop() stop.Result {
	return m.store.Stop()
}

func unlockAndLog(name string, unlock storage.Unlocker) {
	if err := unlock(); err != nil {
		log.Warn("failed to release stream", log.Fields{"name": name}, log.Err(err))
	}
}
