// Package svcmetrics exports service lifecycle events as Prometheus metrics.
//
//	obs, err := svcmetrics.New(prometheus.DefaultRegisterer)
//	s := svcrepo.For[Cache]().Name("cache").Observer(obs)...
package svcmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sectrean/svcrepo"
	"github.com/sectrean/svcrepo/internal/errors"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Observer records service lifecycle events. It implements [svcrepo.Observer].
type Observer struct {
	constructions *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	disposals     *prometheus.CounterVec
	active        *prometheus.GaugeVec
}

var _ svcrepo.Observer = (*Observer)(nil)

// New creates an [Observer] and registers its collectors with reg.
//
// Available options:
//   - [WithNamespace] sets the metric name prefix. The default is "svcrepo".
//   - [WithBuckets] sets the construction duration histogram buckets.
func New(reg prometheus.Registerer, opts ...Option) (*Observer, error) {
	if reg == nil {
		return nil, errors.New("svcmetrics.New: registerer is nil")
	}

	cfg := config{
		namespace: "svcrepo",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	o := &Observer{
		constructions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Name:      "constructions_total",
				Help:      "Service instances constructed, by result.",
			},
			[]string{"service", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.namespace,
				Name:      "construction_duration_seconds",
				Help:      "Time spent constructing service instances in seconds.",
				Buckets:   cfg.buckets,
			},
			[]string{"service"},
		),
		disposals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.namespace,
				Name:      "disposals_total",
				Help:      "Singleton instances disposed, by result.",
			},
			[]string{"service", "result"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.namespace,
				Name:      "active_instances",
				Help:      "Singleton instances currently held.",
			},
			[]string{"service"},
		),
	}

	var errs errors.MultiError
	for _, c := range []prometheus.Collector{o.constructions, o.duration, o.disposals, o.active} {
		errs = errs.Append(reg.Register(c))
	}
	if err := errs.Wrap("svcmetrics.New"); err != nil {
		return nil, err
	}

	return o, nil
}

// Constructed counts a successful construction and records its duration.
func (o *Observer) Constructed(name string, elapsed time.Duration) {
	o.constructions.WithLabelValues(name, resultSuccess).Inc()
	o.duration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// ConstructionFailed counts a failed construction.
func (o *Observer) ConstructionFailed(name string, _ error) {
	o.constructions.WithLabelValues(name, resultFailure).Inc()
}

// Activated increments the active instances of the service.
func (o *Observer) Activated(name string) {
	o.active.WithLabelValues(name).Inc()
}

// Deactivated decrements the active instances of the service.
func (o *Observer) Deactivated(name string) {
	o.active.WithLabelValues(name).Dec()
}

// Disposed counts a disposal by result.
func (o *Observer) Disposed(name string, err error) {
	result := resultSuccess
	if err != nil {
		result = resultFailure
	}
	o.disposals.WithLabelValues(name, result).Inc()
}
