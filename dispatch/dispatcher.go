package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

// AllEventTypes registers a handler for every event type.
const AllEventTypes = "*"

const (
	logMsgHandlerFailed = "event handler failed"
	logMsgDispatched    = "event dispatched"

	logAttrEventType    = "event_type"
	logAttrHandlerIndex = "handler_index"
	logAttrHandlerCount = "handler_count"
	logAttrRoadmapID    = "roadmap_id"
	logAttrError        = "error"
)

// Handler reacts to a dispatched domain event.
type Handler func(ctx context.Context, event roadmap.DomainEvent) error

// Dispatcher is a registry of handlers keyed by event type.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   shell.Logger
	metrics  shell.MetricsCollector
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used to report handler failures.
func WithLogger(logger shell.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics sets the metrics collector for dispatch and failure counters.
func WithMetrics(collector shell.MetricsCollector) Option {
	return func(d *Dispatcher) {
		d.metrics = collector
	}
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(options ...Option) *Dispatcher {
	d := &Dispatcher{handlers: make(map[string][]Handler)}

	for _, option := range options {
		option(d)
	}

	return d
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// Default returns the process-wide Dispatcher, building it on first use.
// It logs through slog.Default and is never torn down.
func Default() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = NewDispatcher(WithLogger(slog.Default()))
	})

	return defaultDispatcher
}

// Register appends a handler for the event type. Handlers run in registration order.
// Use AllEventTypes to receive every event.
func (d *Dispatcher) Register(eventType string, handler Handler) {
	if handler == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// HandlerCount returns the number of handlers registered for exactly this event type.
func (d *Dispatcher) HandlerCount(eventType string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.handlers[eventType])
}

// Dispatch runs every handler registered for the event's type, followed by the
// AllEventTypes handlers. It returns the number of handlers that failed.
func (d *Dispatcher) Dispatch(ctx context.Context, event roadmap.DomainEvent) int {
	if event == nil {
		return 0
	}

	eventType := event.EventType()
	handlers := d.handlersFor(eventType)
	failures := 0

	for i, handler := range handlers {
		if err := d.invoke(ctx, handler, event); err != nil {
			failures++
			d.reportFailure(ctx, event, i, err)
		}
	}

	shell.IncrementCounter(ctx, d.metrics, shell.EventsDispatchedMetric, map[string]string{logAttrEventType: eventType})
	d.logDispatched(ctx, event, len(handlers))

	return failures
}

// DispatchAll dispatches the events in order and returns the total number of failed handlers.
func (d *Dispatcher) DispatchAll(ctx context.Context, events roadmap.DomainEvents) int {
	failures := 0
	for _, event := range events {
		failures += d.Dispatch(ctx, event)
	}

	return failures
}

func (d *Dispatcher) handlersFor(eventType string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Handler, 0, len(d.handlers[eventType])+len(d.handlers[AllEventTypes]))
	out = append(out, d.handlers[eventType]...)

	if eventType != AllEventTypes {
		out = append(out, d.handlers[AllEventTypes]...)
	}

	return out
}

func (d *Dispatcher) invoke(ctx context.Context, handler Handler, event roadmap.DomainEvent) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("handler panicked: %v", recovered)
		}
	}()

	return handler(ctx, event)
}

func (d *Dispatcher) reportFailure(ctx context.Context, event roadmap.DomainEvent, index int, err error) {
	shell.IncrementCounter(ctx, d.metrics, shell.EventHandlerFailuresMetric, map[string]string{
		logAttrEventType:    event.EventType(),
		logAttrHandlerIndex: strconv.Itoa(index),
	})

	args := []any{
		logAttrEventType, event.EventType(),
		logAttrRoadmapID, event.AggregateID(),
		logAttrHandlerIndex, index,
		logAttrError, err.Error(),
	}

	if contextual := shell.ContextualLoggerFrom(d.logger); contextual != nil {
		contextual.WarnContext(ctx, logMsgHandlerFailed, args...)
	} else if d.logger != nil {
		d.logger.Warn(logMsgHandlerFailed, args...)
	}
}

func (d *Dispatcher) logDispatched(ctx context.Context, event roadmap.DomainEvent, handlerCount int) {
	args := []any{
		logAttrEventType, event.EventType(),
		logAttrRoadmapID, event.AggregateID(),
		logAttrHandlerCount, handlerCount,
	}

	if contextual := shell.ContextualLoggerFrom(d.logger); contextual != nil {
		contextual.DebugContext(ctx, logMsgDispatched, args...)
	} else if d.logger != nil {
		d.logger.Debug(logMsgDispatched, args...)
	}
}
