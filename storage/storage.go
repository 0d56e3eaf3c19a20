// Package storage defines where stream checkpoints are kept and a registry
// of the drivers that keep them.
package storage

import (
	"errors"
	"sort"
	"sync"

	"github.com/chihaya/brng/pkg/stop"
)

var (
	driversM sync.RWMutex
	drivers  = make(map[string]Driver)
)

// Driver is the interface used to initialize a new type of CheckpointStore.
//
// The options parameter is YAML encoded bytes that should be unmarshalled
// into the driver's config type.
type Driver interface {
	NewCheckpointStore(options []byte) (CheckpointStore, error)
}

// ErrResourceDoesNotExist is the error returned by Get and Delete if the
// requested checkpoint does not exist.
var ErrResourceDoesNotExist = errors.New("resource does not exist")

// ErrDriverDoesNotExist is the error returned by NewCheckpointStore when a
// checkpoint store driver with that name does not exist.
var ErrDriverDoesNotExist = errors.New("checkpoint store driver with that name does not exist")

// ErrLockNotHeld is returned by an Unlocker whose lock expired or was
// released already.
var ErrLockNotHeld = errors.New("lock not held")

// Checkpoint records where a stream is: the engine it was created from and
// the net number of steps it has taken forward since then. Position is
// negative for a stream that was rewound past its seed.
type Checkpoint struct {
	Engine   string `yaml:"engine"`
	Options  string `yaml:"options"`
	Position int64  `yaml:"position"`
}

// Unlocker releases a lock acquired by CheckpointStore.Lock.
type Unlocker func() error

// CheckpointStore is an interface that abstracts the interactions of storing
// and retrieving stream checkpoints such that it can be implemented for
// various data stores.
type CheckpointStore interface {
	// Put creates or replaces the checkpoint of the named stream.
	Put(name string, cp Checkpoint) error

	// Get returns the checkpoint of the named stream.
	//
	// If the stream does not exist, this function should return
	// ErrResourceDoesNotExist.
	Get(name string) (Checkpoint, error)

	// Delete removes the checkpoint of the named stream.
	//
	// If the stream does not exist, this function should return
	// ErrResourceDoesNotExist.
	Delete(name string) error

	// Names returns the sorted names of all stored streams.
	Names() ([]string, error)

	// Lock blocks until the caller exclusively owns the named stream among
	// every user of the store.
	Lock(name string) (Unlocker, error)

	// stop is an interface that expects a Stop method to stop the
	// CheckpointStore.
	// For more details see the documentation in the stop package.
	stop.Stopper
}

// RegisterDriver makes a Driver available by the provided name.
//
// If called twice with the same name, the name is blank, or if the provided
// Driver is nil, this function panics.
func RegisterDriver(name string, d Driver) {
	if name == "" {
		panic("storage: could not register a Driver with an empty name")
	}
	if d == nil {
		panic("storage: could not register a nil Driver")
	}

	driversM.Lock()
	defer driversM.Unlock()

	if _, dup := drivers[name]; dup {
		panic("storage: RegisterDriver called twice for " + name)
	}

	drivers[name] = d
}

// NewCheckpointStore attempts to initialize a new CheckpointStore with given a
// name from the list of registered Drivers.
//
// If a driver does not exist, returns ErrDriverDoesNotExist.
func NewCheckpointStore(name string, options []byte) (CheckpointStore, error) {
	driversM.RLock()
	defer driversM.RUnlock()

	d, ok := drivers[name]
	if !ok {
		return nil, ErrDriverDoesNotExist
	}

	return d.NewCheckpointStore(options)
}

// SortedNames returns the keys of m in order.
func SortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
