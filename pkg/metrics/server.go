// Package metrics implements a standalone HTTP server for serving pprof
// profiles and Prometheus metrics, along with the collectors shared by the
// rest of brng.
package metrics

import (
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chihaya/brng/pkg/log"
	"github.com/chihaya/brng/pkg/stop"
)

// WordsGenerated counts the words handed out per engine and direction.
var WordsGenerated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "brng_words_generated_total",
		Help: "The number of words generated, partitioned by engine and direction",
	},
	[]string{"engine", "direction"},
)

func init() {
	prometheus.MustRegister(WordsGenerated)
}

// Direction labels for WordsGenerated.
const (
	Forward  = "forward"
	Backward = "backward"
)

// RecordWords adds n words generated by engine in direction.
func RecordWords(engine, direction string, n int) {
	WordsGenerated.WithLabelValues(engine, direction).Add(float64(n))
}

// Server represents a standalone HTTP server for serving a Prometheus metrics
// endpoint.
type Server struct {
	srv *http.Server
}

// Stop shuts down the server.
func (s *Server) Stop() stop.Result {
	return stop.Server(s.srv)()
}

// NewServer creates a new instance of a Prometheus server that asynchronously
// serves requests.
func NewServer(addr string) *Server {
	s := &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           Handler(),
			ReadHeaderTimeout: time.Second * 60,
		},
	}

	go func() {
		log.Info("started serving metrics", log.Fields{"addr": addr})
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed while serving prometheus", log.Err(err))
		}
	}()

	return s
}

// Handler returns the mux served by a Server.
func Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return mux
}
