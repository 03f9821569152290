package command

import (
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap/planning"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

// runtime holds the collaborators shared by all services.
type runtime struct {
	dispatcher   EventDispatcher
	logger       shell.Logger
	metrics      shell.MetricsCollector
	retryOptions []shell.RetryOption
	balancer     planning.PriorityBalancer
	normalizer   planning.TimeframeNormalizer
}

// Option configures a service.
type Option func(*runtime)

// WithDispatcher sets the dispatcher that receives events after each save.
// Without one, events are still collected on the returned roadmap but not dispatched.
func WithDispatcher(dispatcher EventDispatcher) Option {
	return func(rt *runtime) {
		rt.dispatcher = dispatcher
	}
}

// WithLogger sets the logger. *slog.Logger is the intended implementation.
func WithLogger(logger shell.Logger) Option {
	return func(rt *runtime) {
		rt.logger = logger
	}
}

// WithMetrics sets the metrics collector for command, query and retry metrics.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(rt *runtime) {
		rt.metrics = collector
	}
}

// WithRetryOptions sets a custom retry configuration.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(rt *runtime) {
		rt.retryOptions = opts
	}
}

// WithPriorityBalancer replaces the default priority balancer.
func WithPriorityBalancer(balancer planning.PriorityBalancer) Option {
	return func(rt *runtime) {
		rt.balancer = balancer
	}
}

// WithTimeframeNormalizer replaces the default timeframe normalizer.
func WithTimeframeNormalizer(normalizer planning.TimeframeNormalizer) Option {
	return func(rt *runtime) {
		rt.normalizer = normalizer
	}
}

func newRuntime(opts ...Option) runtime {
	rt := runtime{
		balancer:   planning.NewPriorityBalancer(),
		normalizer: planning.NewTimeframeNormalizer(),
	}

	for _, opt := range opts {
		opt(&rt)
	}

	return rt
}
