package main

import (
	"errors"
	"io/ioutil"
	"os"

	"gopkg.in/yaml.v2"

	httpfrontend "github.com/chihaya/brng/frontend/http"
	respfrontend "github.com/chihaya/brng/frontend/resp"
	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/storage"
	"github.com/chihaya/brng/storage/memory"
	"github.com/chihaya/brng/stream"

	// Imports to register storage drivers.
	_ "github.com/chihaya/brng/storage/redis"
)

type storageConfig struct {
	Name   string                 `yaml:"name"`
	Config map[string]interface{} `yaml:"config"`
}

// LogFields renders the current config as a set of Logrus fields.
func (cfg storageConfig) LogFields() log.Fields {
	return log.Fields{"name": cfg.Name}
}

// New creates the configured CheckpointStore. An empty name means memory.
func (cfg storageConfig) New() (storage.CheckpointStore, error) {
	name := cfg.Name
	if name == "" {
		name = memory.Name
	}

	var optionBytes []byte
	if len(cfg.Config) > 0 {
		var err error
		optionBytes, err = yaml.Marshal(cfg.Config)
		if err != nil {
			return nil, err
		}
	}
	return storage.NewCheckpointStore(name, optionBytes)
}

// Config represents the configuration used for executing brng.
type Config struct {
	Log         log.Config          `yaml:"log"`
	MetricsAddr string              `yaml:"metrics_addr"`
	HTTPConfig  httpfrontend.Config `yaml:"http"`
	RESPConfig  respfrontend.Config `yaml:"resp"`
	Storage     storageConfig       `yaml:"storage"`
	Streams     []stream.Config     `yaml:"streams"`
}

// ConfigFile represents a namespaced YAML configation file.
type ConfigFile struct {
	Brng Config `yaml:"brng"`
}

// ParseConfigFile returns a new ConfigFile given the path to a YAML
// configuration file.
//
// It supports relative and absolute paths and environment variables, both in
// the path and in the file.
func ParseConfigFile(path string) (*ConfigFile, error) {
	if path == "" {
		return nil, errors.New("no config path specified")
	}

	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contents, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	var cfgFile ConfigFile
	err = yaml.Unmarshal([]byte(os.ExpandEnv(string(contents))), &cfgFile)
	if err != nil {
		return nil, err
	}

	return &cfgFile, nil
}
