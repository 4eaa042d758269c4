// Package promhooks exports keyonce cache events as Prometheus metrics.
package promhooks

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/unkn0wn-root/keyonce"
)

type Hooks struct {
	hits           prometheus.Counter
	creations      prometheus.Counter
	producerErrors prometheus.Counter
	removals       prometheus.Counter
	disposalErrors prometheus.Counter
	createSeconds  prometheus.Histogram
	entries        prometheus.Gauge
}

var _ keyonce.Hooks = (*Hooks)(nil)

// New registers the metrics on reg. name distinguishes caches in the same
// process and becomes the "cache" label.
func New(reg prometheus.Registerer, name string) *Hooks {
	labels := prometheus.Labels{"cache": name}
	f := promauto.With(reg)
	return &Hooks{
		hits: f.NewCounter(prometheus.CounterOpts{
			Name:        "keyonce_hits_total",
			Help:        "Lookups answered from an already-committed entry.",
			ConstLabels: labels,
		}),
		creations: f.NewCounter(prometheus.CounterOpts{
			Name:        "keyonce_creations_total",
			Help:        "Values created by the producer and committed.",
			ConstLabels: labels,
		}),
		producerErrors: f.NewCounter(prometheus.CounterOpts{
			Name:        "keyonce_producer_errors_total",
			Help:        "Producer invocations that failed.",
			ConstLabels: labels,
		}),
		removals: f.NewCounter(prometheus.CounterOpts{
			Name:        "keyonce_removals_total",
			Help:        "Entries removed via Remove.",
			ConstLabels: labels,
		}),
		disposalErrors: f.NewCounter(prometheus.CounterOpts{
			Name:        "keyonce_disposal_errors_total",
			Help:        "Removed values whose release failed.",
			ConstLabels: labels,
		}),
		createSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:        "keyonce_creation_duration_seconds",
			Help:        "Producer latency for committed values.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: labels,
		}),
		entries: f.NewGauge(prometheus.GaugeOpts{
			Name:        "keyonce_entries",
			Help:        "Live entries in the cache.",
			ConstLabels: labels,
		}),
	}
}

func (h *Hooks) Hit() { h.hits.Inc() }

func (h *Hooks) Created(_ any, elapsed time.Duration) {
	h.creations.Inc()
	h.createSeconds.Observe(elapsed.Seconds())
	h.entries.Inc()
}

func (h *Hooks) ProducerError(any, error) { h.producerErrors.Inc() }

func (h *Hooks) Removed(any) {
	h.removals.Inc()
	h.entries.Dec()
}

func (h *Hooks) DisposalError(any, error) { h.disposalErrors.Inc() }

func (h *Hooks) Cleared(drained int) { h.entries.Sub(float64(drained)) }

func (h *Hooks) TornDown(int) { h.entries.Set(0) }
