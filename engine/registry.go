package engine

import (
	"errors"
	"sort"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/seedseq"
)

var (
	driversM sync.RWMutex
	drivers  = make(map[string]Driver)

	// ErrDriverDoesNotExist is the error returned by New when an engine
	// driver with that name does not exist.
	ErrDriverDoesNotExist = errors.New("engine driver with that name does not exist")

	// ErrConflictingSeeds is returned for options that set more than one of
	// seed, seeds and passphrase.
	ErrConflictingSeeds = errors.New("at most one of seed, seeds and passphrase may be set")
)

// Driver is the interface used to construct a named engine variant.
//
// The options parameter is YAML encoded bytes that should be unmarshalled
// into Options.
type Driver interface {
	NewSource(options []byte) (Source, error)
}

// Options selects how a registered engine is seeded. With nothing set the
// engine's default seed is used.
type Options struct {
	Seed       *uint64  `yaml:"seed,omitempty"`
	Seeds      []uint32 `yaml:"seeds,omitempty"`
	Passphrase string   `yaml:"passphrase,omitempty"`
}

// ParseOptions unmarshals and validates YAML encoded Options.
func ParseOptions(optionBytes []byte) (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(optionBytes, &opts); err != nil {
		return opts, pkgerrors.Wrap(err, "invalid engine options")
	}
	return opts, opts.Validate()
}

// Validate returns ErrConflictingSeeds if more than one way of seeding is
// set.
func (o Options) Validate() error {
	set := 0
	if o.Seed != nil {
		set++
	}
	if o.Seeds != nil {
		set++
	}
	if o.Passphrase != "" {
		set++
	}
	if set > 1 {
		return ErrConflictingSeeds
	}
	return nil
}

// Sequence returns the seed sequence selected by o, if any.
func (o Options) Sequence() seedseq.Sequence {
	switch {
	case o.Seeds != nil:
		return seedseq.New(o.Seeds...)
	case o.Passphrase != "":
		return seedseq.FromPassphrase(o.Passphrase)
	default:
		return nil
	}
}

// Family is a Driver built from the three constructors every engine offers.
type Family[T Word] struct {
	Default  func() Engine[T]
	FromSeed func(seed uint64) Engine[T]
	FromSeq  func(seq seedseq.Sequence) Engine[T]
}

// NewSource implements Driver.
func (f Family[T]) NewSource(optionBytes []byte) (Source, error) {
	opts, err := ParseOptions(optionBytes)
	if err != nil {
		return nil, err
	}
	return f.FromOptions(opts), nil
}

// FromOptions constructs the engine selected by validated opts.
func (f Family[T]) FromOptions(opts Options) Source {
	switch seq := opts.Sequence(); {
	case seq != nil:
		return Erase(f.FromSeq(seq))
	case opts.Seed != nil:
		return Erase(f.FromSeed(*opts.Seed))
	default:
		return Erase(f.Default())
	}
}

// RegisterDriver makes a Driver available by the provided name.
//
// If called twice with the same name, the name is blank, or if the provided
// Driver is nil, this function panics.
func RegisterDriver(name string, d Driver) {
	if name == "" {
		panic("engine: could not register a Driver with an empty name")
	}
	if d == nil {
		panic("engine: could not register a nil Driver")
	}

	driversM.Lock()
	defer driversM.Unlock()

	if _, dup := drivers[name]; dup {
		panic("engine: RegisterDriver called twice for " + name)
	}

	drivers[name] = d
}

// New attempts to initialize a new engine from the list of registered
// Drivers.
//
// If a driver does not exist, returns ErrDriverDoesNotExist.
func New(name string, optionBytes []byte) (Source, error) {
	d, err := driver(name)
	if err != nil {
		return nil, err
	}

	src, err := d.NewSource(optionBytes)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to create engine %s", name)
	}

	log.Debug("created engine", log.Fields{"name": name, "bits": src.Bits()})
	return src, nil
}

// NewFromOptions is New for options that are already decoded. Unlike New it
// returns ErrConflictingSeeds unwrapped.
func NewFromOptions(name string, opts Options) (Source, error) {
	d, err := driver(name)
	if err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var src Source
	if fo, ok := d.(interface{ FromOptions(Options) Source }); ok {
		src = fo.FromOptions(opts)
	} else {
		optionBytes, err := yaml.Marshal(opts)
		if err != nil {
			return nil, err
		}
		if src, err = d.NewSource(optionBytes); err != nil {
			return nil, pkgerrors.Wrapf(err, "failed to create engine %s", name)
		}
	}

	log.Debug("created engine", log.Fields{"name": name, "bits": src.Bits()})
	return src, nil
}

func driver(name string) (Driver, error) {
	driversM.RLock()
	d, ok := drivers[name]
	driversM.RUnlock()
	if !ok {
		return nil, ErrDriverDoesNotExist
	}
	return d, nil
}

// Drivers returns the sorted names of all registered drivers.
func Drivers() []string {
	driversM.RLock()
	defer driversM.RUnlock()

	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Config is the generic configuration format used to construct engines in
// bulk.
type Config struct {
	Name    string                 `yaml:"name"`
	Options map[string]interface{} `yaml:"options"`
}

// SourcesFromConfigs is a utility function for initializing Sources in bulk.
func SourcesFromConfigs(cfgs []Config) (sources map[string]Source, err error) {
	sources = make(map[string]Source, len(cfgs))
	for _, cfg := range cfgs {
		// Marshal the options back into bytes.
		var optionBytes []byte
		optionBytes, err = yaml.Marshal(cfg.Options)
		if err != nil {
			return
		}

		var src Source
		src, err = New(cfg.Name, optionBytes)
		if err != nil {
			return
		}

		sources[cfg.Name] = src
	}

	return
}
