// Package frontend holds what the brng frontends share: the stream logic
// they serve and the validation of request parameters.
package frontend

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/match"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/stream"
)

// ClientError represents an error that should be exposed to the client over
// the frontend's protocol.
type ClientError string

// Error implements the error interface for ClientError.
func (c ClientError) Error() string { return string(c) }

// Errors exposed to clients.
var (
	ErrInvalidCount    = ClientError("count must be a positive integer")
	ErrCountTooLarge   = ClientError("count exceeds the configured maximum")
	ErrInvalidSeed     = ClientError("seed must be an unsigned 64-bit integer")
	ErrInvalidSeeds    = ClientError("seeds must be a comma separated list of unsigned 32-bit integers")
	ErrInvalidSkip     = ClientError("skip must be an unsigned 64-bit integer")
	ErrInvalidPosition = ClientError("position must be a signed 64-bit integer")
	ErrUnknownEngine   = ClientError("unknown engine")
	ErrUnknownStream   = ClientError("unknown stream")
	ErrStreamConflict  = ClientError("stream exists with a different engine or options")
	ErrTooFar          = ClientError("skip or seek distance exceeds the maximum")
)

// DefaultMaxCount bounds the values returned by a single request when a
// frontend is configured without a maximum.
const DefaultMaxCount = 1 << 16

// MaxDistance bounds how far a single request may skip or seek, since most
// engines step one value at a time.
const MaxDistance = 1 << 24

// StreamLogic is the interface used by a frontend to operate on named
// streams.
type StreamLogic interface {
	Open(cfg stream.Config) (*stream.Stream, error)
	Next(name string, n int) ([]uint64, error)
	Prev(name string, n int) ([]uint64, error)
	SeekTo(name string, pos int64) error
	Position(name string) (int64, error)
	Delete(name string) error
	Names() ([]string, error)
}

var _ StreamLogic = &stream.Manager{}

// TranslateError maps errors of the engine and stream packages to the
// ClientError a frontend reports. Other errors are returned unchanged.
func TranslateError(err error) error {
	switch errors.Cause(err) {
	case engine.ErrDriverDoesNotExist:
		return ErrUnknownEngine
	case stream.ErrStreamDoesNotExist:
		return ErrUnknownStream
	case stream.ErrConflictingStream:
		return ErrStreamConflict
	case stream.ErrInvalidName, engine.ErrConflictingSeeds:
		return ClientError(errors.Cause(err).Error())
	}
	return err
}

// ParseCount parses a requested number of values. An empty string means 1.
func ParseCount(s string, max int) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, ErrInvalidCount
	}
	if max <= 0 {
		max = DefaultMaxCount
	}
	if n > max {
		return 0, ErrCountTooLarge
	}
	return n, nil
}

// ParsePosition parses a stream position.
func ParsePosition(s string) (int64, error) {
	pos, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidPosition
	}
	return pos, nil
}

// CheckDistance returns ErrTooFar if moving from one position to another
// exceeds MaxDistance.
func CheckDistance(from, to int64) error {
	d := to - from
	if (to > from) != (d > 0) || d > MaxDistance || d < -MaxDistance {
		return ErrTooFar
	}
	return nil
}

// MatchNames returns the names matching a glob pattern, where * matches any
// sequence and ? any single character. An empty pattern matches every name.
func MatchNames(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}
	matched := make([]string, 0, len(names))
	for _, name := range names {
		if match.Match(name, pattern) {
			matched = append(matched, name)
		}
	}
	return matched
}

// SeedParams are the ways a request can seed an engine. At most one of Seed,
// Seeds and Passphrase may be set.
type SeedParams struct {
	Seed       string
	Seeds      string
	Passphrase string
	Skip       string
}

// Options parses the seeding parameters of p. Skip is not part of them.
func (p SeedParams) Options() (engine.Options, error) {
	var opts engine.Options
	if p.Seed != "" {
		seed, err := strconv.ParseUint(p.Seed, 10, 64)
		if err != nil {
			return opts, ErrInvalidSeed
		}
		opts.Seed = &seed
	}
	if p.Seeds != "" {
		for _, field := range strings.Split(p.Seeds, ",") {
			v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
			if err != nil {
				return opts, ErrInvalidSeeds
			}
			opts.Seeds = append(opts.Seeds, uint32(v))
		}
	}
	opts.Passphrase = p.Passphrase
	return opts, nil
}

// StreamOptions renders the seeding parameters of p as the options of a
// stream.Config. It returns nil if p selects the default seed.
func (p SeedParams) StreamOptions() (map[string]interface{}, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, TranslateError(err)
	}

	m := make(map[string]interface{})
	if opts.Seed != nil {
		m["seed"] = *opts.Seed
	}
	if opts.Seeds != nil {
		m["seeds"] = opts.Seeds
	}
	if opts.Passphrase != "" {
		m["passphrase"] = opts.Passphrase
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}

// Values creates the named engine seeded by p, skips p.Skip values and
// returns the next n.
func Values(name string, p SeedParams, n int) ([]uint64, engine.Source, error) {
	opts, err := p.Options()
	if err != nil {
		return nil, nil, err
	}

	var skip uint64
	if p.Skip != "" {
		skip, err = strconv.ParseUint(p.Skip, 10, 64)
		if err != nil {
			return nil, nil, ErrInvalidSkip
		}
		if skip > MaxDistance {
			return nil, nil, ErrTooFar
		}
	}

	src, err := engine.NewFromOptions(name, opts)
	if err != nil {
		return nil, nil, TranslateError(err)
	}

	src.Discard(skip)
	out := make([]uint64, n)
	for i := range out {
		out[i] = src.Next()
	}
	return out, src, nil
}
