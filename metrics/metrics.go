// SPDX-License-Identifier: MIT

// Package metrics exposes tsdist activity as Prometheus collectors. A
// Collector implements pairwise.Observer, so passing it through
// distances.WithObserver records pair and matrix counts; the service feeds it
// cache outcomes, request results and accelerator breaker transitions.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"

	"github.com/katalvlaran/tsdist/pairwise"
)

const namespace = "tsdist"

// Collector groups every tsdist metric. It is safe for concurrent use.
type Collector struct {
	pairs    prometheus.Counter
	matrices prometheus.Counter
	duration prometheus.Histogram
	cache    *prometheus.CounterVec
	requests *prometheus.CounterVec
	breaker  prometheus.Gauge
}

var _ pairwise.Observer = (*Collector)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		pairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pairs_total",
			Help:      "Sequence pairs evaluated on the CPU path.",
		}),
		matrices: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matrices_total",
			Help:      "Distance matrices completed on the CPU path.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "matrix_duration_seconds",
			Help:      "Wall time of one distance matrix.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Result cache lookups by outcome.",
		}, []string{"result"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Distance requests by metric and HTTP status.",
		}, []string{"metric", "code"}),
		breaker: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "accelerator_breaker_state",
			Help:      "Accelerator circuit breaker state (0 closed, 1 half-open, 2 open).",
		}),
	}
	for _, col := range []prometheus.Collector{c.pairs, c.matrices, c.duration, c.cache, c.requests, c.breaker} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// PairsComputed implements pairwise.Observer.
func (c *Collector) PairsComputed(n int) { c.pairs.Add(float64(n)) }

// MatrixComputed implements pairwise.Observer.
func (c *Collector) MatrixComputed(_, _ int, elapsed time.Duration) {
	c.matrices.Inc()
	c.duration.Observe(elapsed.Seconds())
}

// CacheHit records a result cache hit.
func (c *Collector) CacheHit() { c.cache.WithLabelValues("hit").Inc() }

// CacheMiss records a result cache miss.
func (c *Collector) CacheMiss() { c.cache.WithLabelValues("miss").Inc() }

// Request records one finished distance request.
func (c *Collector) Request(metric string, status int) {
	c.requests.WithLabelValues(metric, strconv.Itoa(status)).Inc()
}

// BreakerChanged matches device.WithStateListener.
func (c *Collector) BreakerChanged(_, to gobreaker.State) {
	c.breaker.Set(float64(to))
}
