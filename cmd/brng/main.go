package main

import (
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	httpfrontend "github.com/chihaya/brng/frontend/http"
	respfrontend "github.com/chihaya/brng/frontend/resp"
	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/metrics"
	"github.com/chihaya/brng/pkg/stop"
	"github.com/chihaya/brng/storage"
	"github.com/chihaya/brng/stream"

	// Imports to register engine drivers.
	_ "github.com/chihaya/brng/engine/all"
)

// Run represents the state of a running instance of brng.
type Run struct {
	configFilePath string
	store          storage.CheckpointStore
	sg             *stop.Group
}

// NewRun runs an instance of brng.
func NewRun(configFilePath string) (*Run, error) {
	r := &Run{
		configFilePath: configFilePath,
	}

	return r, r.Start(nil)
}

// Start begins an instance of brng.
// It is optional to provide an instance of the checkpoint store to avoid the
// creation of a new one.
func (r *Run) Start(store storage.CheckpointStore) error {
	configFile, err := ParseConfigFile(r.configFilePath)
	if err != nil {
		return errors.Wrap(err, "failed to read config")
	}
	cfg := configFile.Brng

	if err := log.Setup(cfg.Log); err != nil {
		return err
	}
	if debugLog {
		log.SetDebug(true)
	}

	r.sg = stop.NewGroup()

	if cfg.MetricsAddr != "" {
		log.Info("starting metrics server", log.Fields{"addr": cfg.MetricsAddr})
		r.sg.Add(metrics.NewServer(cfg.MetricsAddr))
	} else {
		log.Info("metrics disabled because of empty address")
	}

	if store == nil {
		log.Info("starting checkpoint store", cfg.Storage)
		store, err = cfg.Storage.New()
		if err != nil {
			return errors.Wrap(err, "failed to create checkpoint store")
		}
	}
	r.store = store

	manager := stream.NewManager(store)
	for _, streamCfg := range cfg.Streams {
		if _, err := manager.Open(streamCfg); err != nil {
			return errors.Wrapf(err, "failed to open stream %q", streamCfg.Name)
		}
	}

	if cfg.HTTPConfig.Addr == "" && cfg.RESPConfig.Addr == "" {
		return errors.New("must specify at least one frontend")
	}

	if cfg.HTTPConfig.Addr != "" {
		log.Info("starting HTTP frontend", cfg.HTTPConfig)
		httpfe, err := httpfrontend.NewFrontend(manager, cfg.HTTPConfig)
		if err != nil {
			return err
		}
		r.sg.Add(httpfe)
	}

	if cfg.RESPConfig.Addr != "" {
		log.Info("starting RESP frontend", cfg.RESPConfig)
		respfe, err := respfrontend.NewFrontend(manager, cfg.RESPConfig)
		if err != nil {
			return err
		}
		r.sg.Add(respfe)
	}

	return nil
}

func combineErrors(prefix string, errs []error) error {
	errStrs := make([]string, 0, len(errs))
	for _, err := range errs {
		errStrs = append(errStrs, err.Error())
	}

	return errors.New(prefix + ": " + strings.Join(errStrs, "; "))
}

// Stop shuts down an instance of brng.
func (r *Run) Stop(keepStore bool) (storage.CheckpointStore, error) {
	log.Debug("stopping frontends and metrics server")
	if errs := r.sg.Stop().Wait(); len(errs) != 0 {
		return nil, combineErrors("failed while shutting down frontends", errs)
	}

	if keepStore {
		return r.store, nil
	}

	log.Debug("stopping checkpoint store")
	if errs := r.store.Stop().Wait(); len(errs) != 0 {
		return nil, combineErrors("failed while shutting down checkpoint store", errs)
	}

	return nil, nil
}

// RootRunCmdFunc implements a Cobra command that runs an instance of brng
// and handles reloading and shutdown via process signals.
func RootRunCmdFunc(cmd *cobra.Command, args []string) error {
	configFilePath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	r, err := NewRun(configFilePath)
	if err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	reload := makeReloadChan()

	for {
		select {
		case <-reload:
			log.Info("reloading; received reload signal")
			store, err := r.Stop(true)
			if err != nil {
				return err
			}

			if err := r.Start(store); err != nil {
				return err
			}
		case <-quit:
			log.Info("shutting down; received shutdown signal")
			if _, err := r.Stop(false); err != nil {
				return err
			}

			return nil
		}
	}
}

var (
	debugLog bool
	jsonLog  bool
)

// RootPreRunCmdFunc handles command line flags for the Run command.
func RootPreRunCmdFunc(cmd *cobra.Command, args []string) error {
	if jsonLog {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	if debugLog {
		log.SetDebug(true)
		log.Info("enabled debug logging")
	}

	cpuProfilePath, err := cmd.Flags().GetString("cpuprofile")
	if err != nil {
		return err
	}
	if cpuProfilePath != "" {
		f, err := os.Create(cpuProfilePath)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		log.Info("enabled CPU profiling", log.Fields{"path": cpuProfilePath})
	}

	return nil
}

// RootPostRunCmdFunc handles clean up of any state initialized by command
// line flags.
func RootPostRunCmdFunc(cmd *cobra.Command, args []string) error {
	// This can be called regardless because it noops when not profiling.
	pprof.StopCPUProfile()

	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:                "brng",
		Short:              "Bidirectional pseudorandom number generators",
		Long:               "Serve and inspect pseudorandom engines that step both forwards and backwards",
		PersistentPreRunE:  RootPreRunCmdFunc,
		RunE:               RootRunCmdFunc,
		PersistentPostRunE: RootPostRunCmdFunc,
	}

	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json", false, "enable json logging")
	rootCmd.PersistentFlags().String("cpuprofile", "", "location to save a CPU profile")

	rootCmd.Flags().String("config", "/etc/brng.yaml", "location of configuration file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve engines and streams; the same as running brng without a command",
		RunE:  RootRunCmdFunc,
	}
	serveCmd.Flags().String("config", "/etc/brng.yaml", "location of configuration file")

	rootCmd.AddCommand(serveCmd, listCmd(), genCmd(), checkCmd(), benchCmd(), e2eCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal("failed when executing root cobra command", log.Err(err))
	}
}
