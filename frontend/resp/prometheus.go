package resp

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/chihaya/brng/frontend"
)

func init() {
	prometheus.MustRegister(promResponseDurationMilliseconds)
}

var promResponseDurationMilliseconds = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "brng_resp_response_duration_milliseconds",
		Help:    "The duration of time it takes to execute and reply to a command",
		Buckets: prometheus.ExponentialBuckets(0.0625, 2, 14),
	},
	[]string{"command", "error"},
)

// recordResponseDuration records the duration of time to reply to a command
// in milliseconds.
func recordResponseDuration(command string, err error, duration time.Duration) {
	var errString string
	if err != nil {
		if _, ok := err.(frontend.ClientError); ok {
			errString = err.Error()
		} else {
			errString = "internal error"
		}
	}

	promResponseDurationMilliseconds.
		WithLabelValues(command, errString).
		Observe(float64(duration.Nanoseconds()) / float64(time.Millisecond))
}
