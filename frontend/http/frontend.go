// Package http implements a JSON API over HTTP serving engine values and
// named streams.
//
// Routes:
//
//	GET    /v1/engines
//	GET    /v1/engines/:name/values?count=&seed=&seeds=&passphrase=&skip=
//	GET    /v1/streams?match=
//	POST   /v1/streams
//	GET    /v1/streams/:name
//	POST   /v1/streams/:name/next?count=
//	POST   /v1/streams/:name/prev?count=
//	PUT    /v1/streams/:name/position?position=
//	DELETE /v1/streams/:name
package http

import (
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/chihaya/brng/engine"
	"github.com/chihaya/brng/frontend"
	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/stop"
)

// Config represents all of the configurable options for an HTTP Frontend.
type Config struct {
	Addr                string        `yaml:"addr"`
	ReadTimeout         time.Duration `yaml:"read_timeout"`
	WriteTimeout        time.Duration `yaml:"write_timeout"`
	IdleTimeout         time.Duration `yaml:"idle_timeout"`
	MaxCount            int           `yaml:"max_count"`
	EnableRequestTiming bool          `yaml:"enable_request_timing"`
}

// LogFields renders the current config as a set of Logrus fields.
func (cfg Config) LogFields() log.Fields {
	return log.Fields{
		"addr":                cfg.Addr,
		"readTimeout":         cfg.ReadTimeout,
		"writeTimeout":        cfg.WriteTimeout,
		"idleTimeout":         cfg.IdleTimeout,
		"maxCount":            cfg.MaxCount,
		"enableRequestTiming": cfg.EnableRequestTiming,
	}
}

// Default config constants.
const (
	defaultReadTimeout  = 2 * time.Second
	defaultWriteTimeout = 2 * time.Second
	defaultIdleTimeout  = 30 * time.Second
)

// Validate sanity checks values set in a config and returns a new config with
// default values replacing anything that is invalid.
//
// This function warns to the logger when a value is changed.
func (cfg Config) Validate() Config {
	validcfg := cfg

	if cfg.ReadTimeout <= 0 {
		validcfg.ReadTimeout = defaultReadTimeout
		log.Warn("falling back to default configuration", log.Fields{
			"name":     "http.ReadTimeout",
			"provided": cfg.ReadTimeout,
			"default":  validcfg.ReadTimeout,
		})
	}

	if cfg.WriteTimeout <= 0 {
		validcfg.WriteTimeout = defaultWriteTimeout
		log.Warn("falling back to default configuration", log.Fields{
			"name":     "http.WriteTimeout",
			"provided": cfg.WriteTimeout,
			"default":  validcfg.WriteTimeout,
		})
	}

	if cfg.IdleTimeout <= 0 {
		validcfg.IdleTimeout = defaultIdleTimeout
	}

	if cfg.MaxCount <= 0 {
		validcfg.MaxCount = frontend.DefaultMaxCount
		log.Warn("falling back to default configuration", log.Fields{
			"name":     "http.MaxCount",
			"provided": cfg.MaxCount,
			"default":  validcfg.MaxCount,
		})
	}

	return validcfg
}

// Frontend represents the state of an HTTP Frontend.
type Frontend struct {
	srv      *http.Server
	listener net.Listener

	engines     []engineInfo
	enginesOnce sync.Once

	logic frontend.StreamLogic
	Config
}

// NewFrontend creates a new instance of an HTTP Frontend that asynchronously
// serves requests.
func NewFrontend(logic frontend.StreamLogic, provided Config) (*Frontend, error) {
	cfg := provided.Validate()

	f := &Frontend{
		logic:  logic,
		Config: cfg,
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return nil, err
	}
	f.listener = ln
	f.srv = &http.Server{
		Handler:      f.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		log.Info("started serving http", log.Fields{"addr": ln.Addr().String()})
		if err := f.srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed while serving http", log.Err(err))
		}
	}()

	return f, nil
}

// Addr returns the address the Frontend listens on.
func (f *Frontend) Addr() net.Addr { return f.listener.Addr() }

// Stop provides a thread-safe way to shutdown a currently running Frontend.
func (f *Frontend) Stop() stop.Result {
	return stop.Server(f.srv)()
}

// Handler returns the router serving the API. It may be used without calling
// NewFrontend.
func (f *Frontend) Handler() http.Handler {
	if f.MaxCount <= 0 {
		f.MaxCount = frontend.DefaultMaxCount
	}

	router := httprouter.New()
	router.GET("/v1/engines", f.timed("engines", f.enginesRoute))
	router.GET("/v1/engines/:name/values", f.timed("values", f.valuesRoute))
	router.GET("/v1/streams", f.timed("streams", f.streamsRoute))
	router.POST("/v1/streams", f.timed("open", f.openRoute))
	router.GET("/v1/streams/:name", f.timed("position", f.positionRoute))
	router.POST("/v1/streams/:name/next", f.timed("next", f.nextRoute))
	router.POST("/v1/streams/:name/prev", f.timed("prev", f.prevRoute))
	router.PUT("/v1/streams/:name/position", f.timed("seek", f.seekRoute))
	router.DELETE("/v1/streams/:name", f.timed("delete", f.deleteRoute))
	return router
}

type route func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) error

// timed adapts a route to httprouter, writing its error and recording its
// duration.
func (f *Frontend) timed(action string, rt route) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		var start time.Time
		if f.EnableRequestTiming {
			start = time.Now()
		}

		err := rt(w, r, ps)
		if err != nil {
			_ = WriteError(w, err)
		}

		if f.EnableRequestTiming {
			recordResponseDuration(action, err, time.Since(start))
		} else {
			recordResponseDuration(action, err, time.Duration(0))
		}
	}
}

func (f *Frontend) enginesRoute(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) error {
	f.enginesOnce.Do(func() {
		for _, name := range engine.Drivers() {
			src, err := engine.New(name, nil)
			if err != nil {
				log.Error("failed to describe engine", log.Fields{"name": name}, log.Err(err))
				continue
			}
			f.engines = append(f.engines, engineInfo{Name: name, Bits: src.Bits(), Min: src.Min(), Max: src.Max()})
		}
	})
	return WriteResponse(w, http.StatusOK, enginesResponse{Engines: f.engines})
}

func (f *Frontend) valuesRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) error {
	n, err := frontend.ParseCount(r.URL.Query().Get("count"), f.MaxCount)
	if err != nil {
		return err
	}

	name := ps.ByName("name")
	values, src, err := frontend.Values(name, ParseSeedParams(r), n)
	if err != nil {
		return err
	}
	return WriteResponse(w, http.StatusOK, valuesResponse{Engine: name, Bits: src.Bits(), Values: values})
}

func (f *Frontend) streamsRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) error {
	names, err := f.logic.Names()
	if err != nil {
		return err
	}
	names = frontend.MatchNames(names, r.URL.Query().Get("match"))
	return WriteResponse(w, http.StatusOK, streamsResponse{Streams: names})
}

func (f *Frontend) openRoute(w http.ResponseWriter, r *http.Request, _ httprouter.Params) error {
	cfg, err := ParseStreamConfig(r)
	if err != nil {
		return err
	}
	s, err := f.logic.Open(cfg)
	if err != nil {
		return frontend.TranslateError(err)
	}
	return WriteResponse(w, http.StatusCreated, streamResponse{Name: s.Name(), Position: s.Position()})
}

func (f *Frontend) positionRoute(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) error {
	name := ps.ByName("name")
	pos, err := f.logic.Position(name)
	if err != nil {
		return frontend.TranslateError(err)
	}
	return WriteResponse(w, http.StatusOK, streamResponse{Name: name, Position: pos})
}

func (f *Frontend) nextRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) error {
	return f.step(w, r, ps, f.logic.Next)
}

func (f *Frontend) prevRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) error {
	return f.step(w, r, ps, f.logic.Prev)
}

func (f *Frontend) step(w http.ResponseWriter, r *http.Request, ps httprouter.Params, op func(string, int) ([]uint64, error)) error {
	n, err := frontend.ParseCount(r.URL.Query().Get("count"), f.MaxCount)
	if err != nil {
		return err
	}

	name := ps.ByName("name")
	values, err := op(name, n)
	if err != nil {
		return frontend.TranslateError(err)
	}
	pos, err := f.logic.Position(name)
	if err != nil {
		return frontend.TranslateError(err)
	}
	return WriteResponse(w, http.StatusOK, streamResponse{Name: name, Position: pos, Values: values})
}

func (f *Frontend) seekRoute(w http.ResponseWriter, r *http.Request, ps httprouter.Params) error {
	pos, err := frontend.ParsePosition(r.URL.Query().Get("position"))
	if err != nil {
		return err
	}

	name := ps.ByName("name")
	current, err := f.logic.Position(name)
	if err != nil {
		return frontend.TranslateError(err)
	}
	if err := frontend.CheckDistance(current, pos); err != nil {
		return err
	}
	if err := f.logic.SeekTo(name, pos); err != nil {
		return frontend.TranslateError(err)
	}
	return WriteResponse(w, http.StatusOK, streamResponse{Name: name, Position: pos})
}

func (f *Frontend) deleteRoute(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) error {
	if err := f.logic.Delete(ps.ByName("name")); err != nil {
		return frontend.TranslateError(err)
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
