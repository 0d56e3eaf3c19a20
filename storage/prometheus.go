package storage

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	// Register the metrics.
	prometheus.MustRegister(
		PromOperationDurationMilliseconds,
		PromCheckpointsCount,
	)
}

var (
	// PromOperationDurationMilliseconds is a histogram used by checkpoint
	// stores to record how long each operation takes.
	PromOperationDurationMilliseconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brng_storage_operation_duration_milliseconds",
		Help:    "The time it takes to perform a checkpoint store operation",
		Buckets: prometheus.ExponentialBuckets(0.125, 2, 12),
	}, []string{"store", "operation", "error"})

	// PromCheckpointsCount is a gauge used to hold the number of checkpoints
	// written by this process and not deleted since.
	PromCheckpointsCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "brng_storage_checkpoints_count",
		Help: "The number of checkpoints tracked",
	})
)

// RecordOperation records the duration of an operation of the named store
// that started at start and failed with err, if not nil.
func RecordOperation(store, op string, start time.Time, err error) {
	errString := ""
	if err != nil && err != ErrResourceDoesNotExist {
		errString = "true"
	}
	PromOperationDurationMilliseconds.
		WithLabelValues(store, op, errString).
		Observe(float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond))
}
