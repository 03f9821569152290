// Package promcollector implements shell.MetricsCollector on top of the Prometheus client library.
//
// Instruments are created on first use and keyed by metric name:
//   - RecordDuration -> HistogramVec (seconds)
//   - IncrementCounter -> CounterVec
//   - RecordValue -> GaugeVec
//
// The label names of an instrument are fixed by its first observation.
// Later observations with a different label set are dropped and logged.
package promcollector

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

const (
	logMsgObservationDropped = "metric observation dropped"
	logAttrMetric            = "metric"
	logAttrError             = "error"
)

// ErrNilRegisterer is returned when NewCollector gets a nil registerer.
var ErrNilRegisterer = errors.New("prometheus registerer must not be nil")

var _ shell.ContextualMetricsCollector = (*Collector)(nil)

// Collector is a shell.MetricsCollector backed by Prometheus vectors.
type Collector struct {
	registerer prometheus.Registerer
	namespace  string
	buckets    []float64
	logger     shell.Logger

	mu         sync.Mutex
	histograms map[string]*prometheus.HistogramVec
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
}

// Option configures a Collector.
type Option func(*Collector)

// WithNamespace prefixes every metric name with namespace and an underscore.
func WithNamespace(namespace string) Option {
	return func(c *Collector) {
		c.namespace = namespace
	}
}

// WithBuckets overrides prometheus.DefBuckets for duration histograms.
func WithBuckets(buckets ...float64) Option {
	return func(c *Collector) {
		if len(buckets) > 0 {
			c.buckets = buckets
		}
	}
}

// WithLogger sets the logger for dropped observations.
func WithLogger(logger shell.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// NewCollector creates a Collector that registers its instruments with registerer.
func NewCollector(registerer prometheus.Registerer, options ...Option) (*Collector, error) {
	if registerer == nil {
		return nil, ErrNilRegisterer
	}

	c := &Collector{
		registerer: registerer,
		buckets:    prometheus.DefBuckets,
		histograms: make(map[string]*prometheus.HistogramVec),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// RecordDuration observes duration in seconds.
func (c *Collector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	c.RecordDurationContext(context.Background(), metric, duration, labels)
}

// RecordDurationContext observes duration in seconds.
func (c *Collector) RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	vec, err := c.histogram(metric, labelNames(labels))
	if err == nil {
		var observer prometheus.Observer

		if observer, err = vec.GetMetricWith(labels); err == nil {
			observer.Observe(duration.Seconds())
			return
		}
	}

	c.drop(ctx, metric, err)
}

// IncrementCounter adds one to the counter.
func (c *Collector) IncrementCounter(metric string, labels map[string]string) {
	c.IncrementCounterContext(context.Background(), metric, labels)
}

// IncrementCounterContext adds one to the counter.
func (c *Collector) IncrementCounterContext(ctx context.Context, metric string, labels map[string]string) {
	vec, err := c.counter(metric, labelNames(labels))
	if err == nil {
		var counter prometheus.Counter

		if counter, err = vec.GetMetricWith(labels); err == nil {
			counter.Inc()
			return
		}
	}

	c.drop(ctx, metric, err)
}

// RecordValue sets the gauge.
func (c *Collector) RecordValue(metric string, value float64, labels map[string]string) {
	c.RecordValueContext(context.Background(), metric, value, labels)
}

// RecordValueContext sets the gauge.
func (c *Collector) RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string) {
	vec, err := c.gauge(metric, labelNames(labels))
	if err == nil {
		var gauge prometheus.Gauge

		if gauge, err = vec.GetMetricWith(labels); err == nil {
			gauge.Set(value)
			return
		}
	}

	c.drop(ctx, metric, err)
}

func (c *Collector) histogram(metric string, names []string) (*prometheus.HistogramVec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vec, ok := c.histograms[metric]; ok {
		return vec, nil
	}

	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: c.namespace,
		Name:      metric,
		Help:      "Duration of roadmap operations in seconds.",
		Buckets:   c.buckets,
	}, names)

	registered, err := register(c.registerer, vec)
	if err != nil {
		return nil, err
	}

	c.histograms[metric] = registered

	return registered, nil
}

func (c *Collector) counter(metric string, names []string) (*prometheus.CounterVec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vec, ok := c.counters[metric]; ok {
		return vec, nil
	}

	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: c.namespace,
		Name:      metric,
		Help:      "Count of roadmap operations.",
	}, names)

	registered, err := register(c.registerer, vec)
	if err != nil {
		return nil, err
	}

	c.counters[metric] = registered

	return registered, nil
}

func (c *Collector) gauge(metric string, names []string) (*prometheus.GaugeVec, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if vec, ok := c.gauges[metric]; ok {
		return vec, nil
	}

	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: c.namespace,
		Name:      metric,
		Help:      "Current value of a roadmap measurement.",
	}, names)

	registered, err := register(c.registerer, vec)
	if err != nil {
		return nil, err
	}

	c.gauges[metric] = registered

	return registered, nil
}

// register returns the already registered vector when an equal one exists.
func register[V prometheus.Collector](registerer prometheus.Registerer, vec V) (V, error) {
	err := registerer.Register(vec)
	if err == nil {
		return vec, nil
	}

	var alreadyRegistered prometheus.AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		if existing, ok := alreadyRegistered.ExistingCollector.(V); ok {
			return existing, nil
		}
	}

	var zero V

	return zero, err
}

func (c *Collector) drop(ctx context.Context, metric string, err error) {
	if contextual := shell.ContextualLoggerFrom(c.logger); contextual != nil {
		contextual.WarnContext(ctx, logMsgObservationDropped, logAttrMetric, metric, logAttrError, err.Error())
	} else if c.logger != nil {
		c.logger.Warn(logMsgObservationDropped, logAttrMetric, metric, logAttrError, err.Error())
	}
}

func labelNames(labels map[string]string) []string {
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}
