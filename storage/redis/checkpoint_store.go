// Package redis implements a CheckpointStore backed by Redis, so that several
// brng processes can share streams. Ownership of a stream across processes
// is arbitrated with a Redlock mutex.
//
// A stream named s is kept in the hash "<prefix>checkpoint:s" with the
// fields engine, options and position; the names of all streams are kept in
// the set "<prefix>checkpoints".
package redis

import (
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	redigolib "github.com/gomodule/redigo/redis"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/stop"
	"github.com/chihaya/brng/storage"
)

// Name is the name by which this checkpoint store is registered with
// brng.
const Name = "redis"

// Default config constants.
const (
	defaultKeyPrefix           = "brng_"
	defaultRedisBroker         = "redis://127.0.0.1:6379/0"
	defaultRedisReadTimeout    = time.Second * 15
	defaultRedisWriteTimeout   = time.Second * 15
	defaultRedisConnectTimeout = time.Second * 15
	defaultMaxIdle             = 3
	defaultLockExpiry          = time.Second * 8
)

func init() {
	storage.RegisterDriver(Name, driver{})
}

type driver struct{}

func (d driver) NewCheckpointStore(options []byte) (storage.CheckpointStore, error) {
	var cfg Config
	if err := yaml.Unmarshal(options, &cfg); err != nil {
		return nil, errors.Wrap(err, "invalid redis options")
	}
	return New(cfg)
}

// Config holds the configuration of a redis CheckpointStore.
type Config struct {
	KeyPrefix           string        `yaml:"key_prefix"`
	RedisBroker         string        `yaml:"redis_broker"`
	RedisReadTimeout    time.Duration `yaml:"redis_read_timeout"`
	RedisWriteTimeout   time.Duration `yaml:"redis_write_timeout"`
	RedisConnectTimeout time.Duration `yaml:"redis_connect_timeout"`
	MaxIdle             int           `yaml:"max_idle"`
	LockExpiry          time.Duration `yaml:"lock_expiry"`
}

// LogFields renders the current config as a set of Logrus fields.
func (cfg Config) LogFields() log.Fields {
	return log.Fields{
		"name":                Name,
		"keyPrefix":           cfg.KeyPrefix,
		"redisBroker":         cfg.RedisBroker,
		"redisReadTimeout":    cfg.RedisReadTimeout,
		"redisWriteTimeout":   cfg.RedisWriteTimeout,
		"redisConnectTimeout": cfg.RedisConnectTimeout,
		"maxIdle":             cfg.MaxIdle,
		"lockExpiry":          cfg.LockExpiry,
	}
}

// Validate sanity checks values set in a config and returns a new config with
// default values replacing anything that is invalid.
//
// This function warns to the logger when a value is changed.
func (cfg Config) Validate() Config {
	validcfg := cfg

	if cfg.KeyPrefix == "" {
		validcfg.KeyPrefix = defaultKeyPrefix
	}

	if cfg.RedisBroker == "" {
		validcfg.RedisBroker = defaultRedisBroker
		log.Warn("falling back to default configuration", log.Fields{
			"name":     Name + ".RedisBroker",
			"provided": cfg.RedisBroker,
			"default":  validcfg.RedisBroker,
		})
	}

	if cfg.RedisReadTimeout <= 0 {
		validcfg.RedisReadTimeout = defaultRedisReadTimeout
	}

	if cfg.RedisWriteTimeout <= 0 {
		validcfg.RedisWriteTimeout = defaultRedisWriteTimeout
	}

	if cfg.RedisConnectTimeout <= 0 {
		validcfg.RedisConnectTimeout = defaultRedisConnectTimeout
	}

	if cfg.MaxIdle <= 0 {
		validcfg.MaxIdle = defaultMaxIdle
	}

	if cfg.LockExpiry <= 0 {
		validcfg.LockExpiry = defaultLockExpiry
	}

	return validcfg
}

type checkpointStore struct {
	rb     *redisBackend
	cfg    Config
	closed chan struct{}
}

var _ storage.CheckpointStore = &checkpointStore{}

// New creates a new CheckpointStore backed by redis.
func New(provided Config) (storage.CheckpointStore, error) {
	cfg := provided.Validate()

	u, err := parseRedisURL(cfg.RedisBroker)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis broker")
	}

	s := &checkpointStore{
		rb:     newRedisBackend(&cfg, u, u.SocketPath),
		cfg:    cfg,
		closed: make(chan struct{}),
	}

	conn := s.rb.open()
	defer conn.Close()
	if _, err := conn.Do("PING"); err != nil {
		s.rb.pool.Close()
		return nil, errors.Wrap(err, "failed to reach redis")
	}

	log.Debug("created checkpoint store", cfg)
	return s, nil
}

func panicIfClosed(closed <-chan struct{}) {
	select {
	case <-closed:
		panic("attempted to interact with stopped redis store")
	default:
	}
}

func record(op string, start time.Time, err *error) {
	storage.RecordOperation(Name, op, start, *err)
}

func (s *checkpointStore) checkpointKey(name string) string {
	return s.cfg.KeyPrefix + "checkpoint:" + name
}

func (s *checkpointStore) namesKey() string {
	return s.cfg.KeyPrefix + "checkpoints"
}

func (s *checkpointStore) lockKey(name string) string {
	return s.cfg.KeyPrefix + "lock:" + name
}

func (s *checkpointStore) Put(name string, cp storage.Checkpoint) (err error) {
	panicIfClosed(s.closed)
	defer record("put", time.Now(), &err)

	conn := s.rb.open()
	defer conn.Close()

	if err = conn.Send("MULTI"); err != nil {
		return err
	}
	if err = conn.Send("HMSET", s.checkpointKey(name),
		"engine", cp.Engine,
		"options", cp.Options,
		"position", strconv.FormatInt(cp.Position, 10),
	); err != nil {
		return err
	}
	if err = conn.Send("SADD", s.namesKey(), name); err != nil {
		return err
	}

	replies, err := redigolib.Values(conn.Do("EXEC"))
	if err != nil {
		return err
	}
	added, err := redigolib.Int(replies[1], nil)
	if err != nil {
		return err
	}
	if added == 1 {
		storage.PromCheckpointsCount.Inc()
	}
	return nil
}

func (s *checkpointStore) Get(name string) (cp storage.Checkpoint, err error) {
	panicIfClosed(s.closed)
	defer record("get", time.Now(), &err)

	conn := s.rb.open()
	defer conn.Close()

	fields, err := redigolib.StringMap(conn.Do("HGETALL", s.checkpointKey(name)))
	if err != nil {
		return cp, err
	}
	if len(fields) == 0 {
		return cp, storage.ErrResourceDoesNotExist
	}

	cp.Engine = fields["engine"]
	cp.Options = fields["options"]
	cp.Position, err = strconv.ParseInt(fields["position"], 10, 64)
	if err != nil {
		return cp, errors.Wrapf(err, "corrupt checkpoint %s", name)
	}
	return cp, nil
}

func (s *checkpointStore) Delete(name string) (err error) {
	panicIfClosed(s.closed)
	defer record("delete", time.Now(), &err)

	conn := s.rb.open()
	defer conn.Close()

	if err = conn.Send("MULTI"); err != nil {
		return err
	}
	if err = conn.Send("DEL", s.checkpointKey(name)); err != nil {
		return err
	}
	if err = conn.Send("SREM", s.namesKey(), name); err != nil {
		return err
	}

	replies, err := redigolib.Values(conn.Do("EXEC"))
	if err != nil {
		return err
	}
	deleted, err := redigolib.Int(replies[0], nil)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return storage.ErrResourceDoesNotExist
	}
	storage.PromCheckpointsCount.Dec()
	return nil
}

func (s *checkpointStore) Names() ([]string, error) {
	panicIfClosed(s.closed)

	conn := s.rb.open()
	defer conn.Close()

	names, err := redigolib.Strings(conn.Do("SMEMBERS", s.namesKey()))
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return storage.SortedNames(set), nil
}

func (s *checkpointStore) Lock(name string) (storage.Unlocker, error) {
	panicIfClosed(s.closed)

	m := s.rb.redsync.NewMutex(s.lockKey(name), redsync.WithExpiry(s.cfg.LockExpiry))
	if err := m.Lock(); err != nil {
		return nil, errors.Wrapf(err, "failed to lock stream %s", name)
	}

	return func() error {
		ok, err := m.Unlock()
		if !ok {
			if err != nil {
				log.Debug("failed to unlock stream", log.Fields{"name": name}, log.Err(err))
			}
			return storage.ErrLockNotHeld
		}
		return nil
	}, nil
}

func (s *checkpointStore) Stop() stop.Result {
	c := make(stop.Channel)
	go func() {
		close(s.closed)
		c.Done(s.rb.pool.Close())
	}()
	return c.Result()
}
