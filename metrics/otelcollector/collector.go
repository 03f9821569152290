// Package otelcollector backs the shell metrics and logger ports with OpenTelemetry.
//
//   - RecordDuration -> Float64Histogram (seconds)
//   - IncrementCounter -> Int64Counter
//   - RecordValue -> Float64Gauge
//
// Instruments are created lazily from the meter and cached by name.
package otelcollector

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

const (
	logMsgInstrumentFailed = "creating otel instrument failed"
	logAttrMetric          = "metric"
	logAttrError           = "error"

	descriptionDuration = "Roadmap operation duration"
	descriptionCounter  = "Roadmap operation counter"
	descriptionValue    = "Roadmap current value"
)

// ErrNilMeter is returned when NewCollector gets a nil meter.
var ErrNilMeter = errors.New("otel meter must not be nil")

var _ shell.ContextualMetricsCollector = (*Collector)(nil)

// Collector is a shell.MetricsCollector backed by an OpenTelemetry meter.
type Collector struct {
	meter  metric.Meter
	logger shell.Logger

	mu         sync.Mutex
	histograms map[string]metric.Float64Histogram
	counters   map[string]metric.Int64Counter
	gauges     map[string]metric.Float64Gauge
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets the logger for instruments the meter refuses to create.
func WithLogger(logger shell.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// NewCollector creates a Collector on a meter taken from the application's MeterProvider.
func NewCollector(meter metric.Meter, options ...Option) (*Collector, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}

	c := &Collector{
		meter:      meter,
		histograms: make(map[string]metric.Float64Histogram),
		counters:   make(map[string]metric.Int64Counter),
		gauges:     make(map[string]metric.Float64Gauge),
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

// RecordDuration records duration in seconds.
func (c *Collector) RecordDuration(name string, duration time.Duration, labels map[string]string) {
	c.RecordDurationContext(context.Background(), name, duration, labels)
}

// RecordDurationContext records duration in seconds with the caller's context.
func (c *Collector) RecordDurationContext(ctx context.Context, name string, duration time.Duration, labels map[string]string) {
	if histogram := c.histogram(ctx, name); histogram != nil {
		histogram.Record(ctx, duration.Seconds(), metric.WithAttributes(attributes(labels)...))
	}
}

// IncrementCounter adds one.
func (c *Collector) IncrementCounter(name string, labels map[string]string) {
	c.IncrementCounterContext(context.Background(), name, labels)
}

// IncrementCounterContext adds one with the caller's context.
func (c *Collector) IncrementCounterContext(ctx context.Context, name string, labels map[string]string) {
	if counter := c.counter(ctx, name); counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attributes(labels)...))
	}
}

// RecordValue sets a gauge.
func (c *Collector) RecordValue(name string, value float64, labels map[string]string) {
	c.RecordValueContext(context.Background(), name, value, labels)
}

// RecordValueContext sets a gauge with the caller's context.
func (c *Collector) RecordValueContext(ctx context.Context, name string, value float64, labels map[string]string) {
	if gauge := c.gauge(ctx, name); gauge != nil {
		gauge.Record(ctx, value, metric.WithAttributes(attributes(labels)...))
	}
}

func (c *Collector) histogram(ctx context.Context, name string) metric.Float64Histogram {
	c.mu.Lock()
	defer c.mu.Unlock()

	if histogram, ok := c.histograms[name]; ok {
		return histogram
	}

	histogram, err := c.meter.Float64Histogram(name, metric.WithDescription(descriptionDuration), metric.WithUnit("s"))
	if err != nil {
		c.warn(ctx, name, err)
		return nil
	}

	c.histograms[name] = histogram

	return histogram
}

func (c *Collector) counter(ctx context.Context, name string) metric.Int64Counter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[name]; ok {
		return counter
	}

	counter, err := c.meter.Int64Counter(name, metric.WithDescription(descriptionCounter))
	if err != nil {
		c.warn(ctx, name, err)
		return nil
	}

	c.counters[name] = counter

	return counter
}

func (c *Collector) gauge(ctx context.Context, name string) metric.Float64Gauge {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gauge, ok := c.gauges[name]; ok {
		return gauge
	}

	gauge, err := c.meter.Float64Gauge(name, metric.WithDescription(descriptionValue))
	if err != nil {
		c.warn(ctx, name, err)
		return nil
	}

	c.gauges[name] = gauge

	return gauge
}

func (c *Collector) warn(ctx context.Context, name string, err error) {
	if contextual := shell.ContextualLoggerFrom(c.logger); contextual != nil {
		contextual.WarnContext(ctx, logMsgInstrumentFailed, logAttrMetric, name, logAttrError, err.Error())
	} else if c.logger != nil {
		c.logger.Warn(logMsgInstrumentFailed, logAttrMetric, name, logAttrError, err.Error())
	}
}

func attributes(labels map[string]string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, len(labels))
	for key, value := range labels {
		attrs = append(attrs, attribute.String(key, value))
	}

	return attrs
}
