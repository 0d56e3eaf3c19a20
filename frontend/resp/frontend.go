// Package resp implements a frontend speaking the Redis serialization
// protocol, so that any Redis client can draw values from engines and
// streams.
package resp

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/redcon"

	"github.com/chihaya/brng/frontend"
	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/stop"
)

// Config represents all of the configurable options for a RESP Frontend.
type Config struct {
	Addr                string `yaml:"addr"`
	MaxCount            int    `yaml:"max_count"`
	EnableRequestTiming bool   `yaml:"enable_request_timing"`
}

// LogFields renders the current config as a set of Logrus fields.
func (cfg Config) LogFields() log.Fields {
	return log.Fields{
		"addr":                cfg.Addr,
		"maxCount":            cfg.MaxCount,
		"enableRequestTiming": cfg.EnableRequestTiming,
	}
}

// Validate sanity checks values set in a config and returns a new config with
// default values replacing anything that is invalid.
//
// This function warns to the logger when a value is changed.
func (cfg Config) Validate() Config {
	validcfg := cfg

	if cfg.MaxCount <= 0 {
		validcfg.MaxCount = frontend.DefaultMaxCount
		log.Warn("falling back to default configuration", log.Fields{
			"name":     "resp.MaxCount",
			"provided": cfg.MaxCount,
			"default":  validcfg.MaxCount,
		})
	}

	return validcfg
}

// Frontend holds the state of a RESP Frontend.
type Frontend struct {
	srv     *redcon.Server
	closing chan struct{}
	wg      sync.WaitGroup

	logic frontend.StreamLogic
	Config
}

// NewFrontend creates a new instance of a RESP Frontend that asynchronously
// serves commands.
func NewFrontend(logic frontend.StreamLogic, provided Config) (*Frontend, error) {
	cfg := provided.Validate()

	f := &Frontend{
		closing: make(chan struct{}),
		logic:   logic,
		Config:  cfg,
	}
	f.srv = redcon.NewServer(cfg.Addr, f.handle, f.accept, f.closed)

	listening := make(chan error, 1)
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		// A listen error is also sent on listening; serving only returns
		// once the server is closed.
		_ = f.srv.ListenServeAndSignal(listening)
	}()

	if err := <-listening; err != nil {
		f.wg.Wait()
		return nil, err
	}
	log.Info("started serving resp", log.Fields{"addr": f.srv.Addr().String()})

	return f, nil
}

// Addr returns the address the Frontend listens on.
func (f *Frontend) Addr() net.Addr { return f.srv.Addr() }

// Stop provides a thread-safe way to shutdown a currently running Frontend.
// Open connections are closed.
func (f *Frontend) Stop() stop.Result {
	select {
	case <-f.closing:
		return stop.AlreadyStopped
	default:
	}
	close(f.closing)

	c := make(stop.Channel)
	go func() {
		err := f.srv.Close()
		f.wg.Wait()
		c.Done(err)
	}()

	return c.Result()
}

func (f *Frontend) accept(conn redcon.Conn) bool {
	select {
	case <-f.closing:
		return false
	default:
	}
	log.Debug("resp: accepted connection", log.Fields{"addr": conn.RemoteAddr()})
	return true
}

func (f *Frontend) closed(conn redcon.Conn, err error) {
	log.Debug("resp: closed connection", log.Fields{"addr": conn.RemoteAddr()}, log.Err(err))
}

// handle executes cmd and any commands pipelined behind it.
func (f *Frontend) handle(conn redcon.Conn, cmd redcon.Command) {
	f.exec(conn, commandToArgs(cmd))
	for _, cmd := range conn.ReadPipeline() {
		f.exec(conn, commandToArgs(cmd))
	}
}

func (f *Frontend) exec(conn redcon.Conn, args []string) {
	var start time.Time
	if f.EnableRequestTiming {
		start = time.Now()
	}

	name := args[0]
	c, ok := commands[name]
	var err error
	switch {
	case !ok:
		name = "unknown"
		err = ErrUnknownCommand
	case len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs):
		err = ErrWrongNumArgs
	default:
		err = c.fn(f, conn, args)
	}

	if err != nil {
		writeError(conn, err)
	}

	if f.EnableRequestTiming {
		recordResponseDuration(name, err, time.Since(start))
	} else {
		recordResponseDuration(name, err, time.Duration(0))
	}
}

func commandToArgs(cmd redcon.Command) []string {
	args := make([]string, len(cmd.Args))
	args[0] = strings.ToLower(string(cmd.Args[0]))
	for i := 1; i < len(cmd.Args); i++ {
		args[i] = string(cmd.Args[i])
	}
	return args
}

// writeError communicates an error to a client as an error reply.
func writeError(conn redcon.Conn, err error) {
	if _, ok := err.(frontend.ClientError); ok {
		conn.WriteError("ERR " + err.Error())
		return
	}
	log.Error("resp: internal error", log.Err(err))
	conn.WriteError("ERR internal error")
}
