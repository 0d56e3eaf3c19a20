// Package stream implements named engine streams: engines whose position is
// tracked so that they can be moved in either direction, checkpointed and
// restored.
package stream

import (
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/metrics"
	"github.com/chihaya/brng/storage"
)

// Config describes a stream to open.
type Config struct {
	Name    string                 `yaml:"name"`
	Engine  string                 `yaml:"engine"`
	Options map[string]interface{} `yaml:"options"`
}

// LogFields renders the current config as a set of Logrus fields.
func (cfg Config) LogFields() log.Fields {
	return log.Fields{
		"name":    cfg.Name,
		"engine":  cfg.Engine,
		"options": cfg.Options,
	}
}

// Stream is an engine together with its position: the net number of steps
// it has taken forward since it was seeded.
//
// Stream is safe for concurrent use.
type Stream struct {
	name    string
	engine  string
	options string

	mu  sync.Mutex
	src engine.Source
	pos int64
}

// New creates a stream at position 0 from a registered engine.
func New(cfg Config) (*Stream, error) {
	if cfg.Name == "" {
		return nil, ErrInvalidName
	}

	options := ""
	if len(cfg.Options) > 0 {
		b, err := yaml.Marshal(cfg.Options)
		if err != nil {
			return nil, errors.Wrap(err, "invalid stream options")
		}
		options = string(b)
	}

	return restore(cfg.Name, storage.Checkpoint{Engine: cfg.Engine, Options: options})
}

func restore(name string, cp storage.Checkpoint) (*Stream, error) {
	src, err := engine.New(cp.Engine, []byte(cp.Options))
	if err != nil {
		return nil, err
	}

	s := &Stream{
		name:    name,
		engine:  cp.Engine,
		options: cp.Options,
		src:     src,
	}
	s.seek(cp.Position)
	return s, nil
}

// Name returns the name of the stream.
func (s *Stream) Name() string { return s.name }

// Engine returns the name of the engine driving the stream.
func (s *Stream) Engine() string { return s.engine }

// Bits returns the number of significant bits of each value.
func (s *Stream) Bits() uint { return s.src.Bits() }

// Position returns the current position.
func (s *Stream) Position() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// Checkpoint returns what is needed to restore the stream as it is now.
func (s *Stream) Checkpoint() storage.Checkpoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkpoint()
}

func (s *Stream) checkpoint() storage.Checkpoint {
	return storage.Checkpoint{Engine: s.engine, Options: s.options, Position: s.pos}
}

// Next returns the next n values and moves forward past them.
func (s *Stream) Next(n int) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next(n)
}

func (s *Stream) next(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.src.Next()
	}
	s.pos += int64(n)
	metrics.RecordWords(s.engine, metrics.Forward, n)
	return out
}

// Prev moves back n steps and returns the values passed over, most recent
// first.
func (s *Stream) Prev(n int) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prev(n)
}

func (s *Stream) prev(n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = s.src.Prev()
	}
	s.pos -= int64(n)
	metrics.RecordWords(s.engine, metrics.Backward, n)
	return out
}

// SeekTo moves the stream to pos.
func (s *Stream) SeekTo(pos int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seek(pos)
}

func (s *Stream) seek(pos int64) {
	if pos > s.pos {
		s.src.Discard(uint64(pos - s.pos))
	}
	for ; s.pos > pos; s.pos-- {
		s.src.Prev()
	}
	s.pos = pos
}
