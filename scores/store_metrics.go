package scores

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	storeLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "arena",
			Subsystem: "scores",
			Name:      "call_seconds",
			Help:      "Latency of scores store calls.",
		},
		[]string{"method"},
	)
	storeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "arena",
			Subsystem: "scores",
			Name:      "errors_total",
			Help:      "Scores store calls that returned an error, not found excluded.",
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(storeLatency, storeErrors)
}

// InstrumentStore times every call on s and counts its failures.
func InstrumentStore(s Store) Store { return &instrumented{next: s} }

type instrumented struct{ next Store }

// observe is deferred with a pointer to the call's named error.
func observe(method string, start time.Time, err *error) {
	storeLatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if *err != nil && errors.Cause(*err) != ErrNotFound {
		storeErrors.WithLabelValues(method).Inc()
	}
}

func (i *instrumented) Record(ctx context.Context, r Result) (err error) {
	defer observe("record", time.Now(), &err)
	return i.next.Record(ctx, r)
}

func (i *instrumented) Get(ctx context.Context, id string) (r Result, err error) {
	defer observe("get", time.Now(), &err)
	return i.next.Get(ctx, id)
}

func (i *instrumented) Top(ctx context.Context, limit int) (rs []Result, err error) {
	defer observe("top", time.Now(), &err)
	return i.next.Top(ctx, limit)
}
