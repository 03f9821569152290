package dispatch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/dispatch"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
	"github.com/AntonStoeckl/roadmap-aggregate-go/testutil/testdoubles"
)

func givenStatusChanged() roadmap.DomainEvent {
	return roadmap.BuildItemStatusChanged(
		roadmap.PathToInitiative("r-1", "tf-1", "in-1"),
		"item-1",
		roadmap.StatusPlanned,
		roadmap.StatusCompleted,
		time.Now(),
	)
}

func Test_Dispatcher_Dispatch_RunsHandlersInRegistrationOrder(t *testing.T) {
	// arrange
	d := dispatch.NewDispatcher()
	var calls []string

	d.Register(roadmap.ItemStatusChangedEventType, func(_ context.Context, _ roadmap.DomainEvent) error {
		calls = append(calls, "first")
		return nil
	})
	d.Register(roadmap.ItemStatusChangedEventType, func(_ context.Context, _ roadmap.DomainEvent) error {
		calls = append(calls, "second")
		return nil
	})
	d.Register(roadmap.ItemAddedEventType, func(_ context.Context, _ roadmap.DomainEvent) error {
		calls = append(calls, "other-type")
		return nil
	})

	// act
	failures := d.Dispatch(context.Background(), givenStatusChanged())

	// assert
	assert.Equal(t, 0, failures)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 2, d.HandlerCount(roadmap.ItemStatusChangedEventType))
}

func Test_Dispatcher_Dispatch_IsolatesFailingAndPanickingHandlers(t *testing.T) {
	// arrange
	logger := testdoubles.NewLoggerSpy()
	metrics := testdoubles.NewMetricsCollectorSpy()
	d := dispatch.NewDispatcher(dispatch.WithLogger(logger), dispatch.WithMetrics(metrics))
	reached := false

	d.Register(roadmap.ItemStatusChangedEventType, func(_ context.Context, _ roadmap.DomainEvent) error {
		return errors.New("mail server down")
	})
	d.Register(roadmap.ItemStatusChangedEventType, func(_ context.Context, _ roadmap.DomainEvent) error {
		panic("nil map")
	})
	d.Register(roadmap.ItemStatusChangedEventType, func(_ context.Context, _ roadmap.DomainEvent) error {
		reached = true
		return nil
	})

	// act
	failures := d.Dispatch(context.Background(), givenStatusChanged())

	// assert
	assert.Equal(t, 2, failures)
	assert.True(t, reached, "handlers after a failing one must still run")

	warnings := logger.Records(testdoubles.LevelWarn)
	require.Len(t, warnings, 2)
	assert.Equal(t, "event handler failed", warnings[0].Message)

	index, found := warnings[1].Attr("handler_index")
	require.True(t, found)
	assert.Equal(t, 1, index)

	errText, _ := warnings[1].Attr("error")
	assert.Contains(t, errText, "nil map")

	assert.Len(t, metrics.CountersFor(shell.EventHandlerFailuresMetric), 2)
	assert.Len(t, metrics.CountersFor(shell.EventsDispatchedMetric), 1)
}

func Test_Dispatcher_DispatchAll_KeepsEventOrder(t *testing.T) {
	// arrange
	d := dispatch.NewDispatcher()
	var seen []string

	d.Register(dispatch.AllEventTypes, func(_ context.Context, event roadmap.DomainEvent) error {
		seen = append(seen, event.EventType())
		return nil
	})

	events := roadmap.DomainEvents{
		roadmap.BuildRoadmapCreated("r-1", "R", "alice", time.Now()),
		givenStatusChanged(),
	}

	// act
	failures := d.DispatchAll(context.Background(), events)

	// assert
	assert.Equal(t, 0, failures)
	assert.Equal(t, []string{roadmap.RoadmapCreatedEventType, roadmap.ItemStatusChangedEventType}, seen)
}

func Test_Dispatcher_Dispatch_WithoutHandlers_IsNoOp(t *testing.T) {
	d := dispatch.NewDispatcher()

	assert.Equal(t, 0, d.Dispatch(context.Background(), givenStatusChanged()))
	assert.Equal(t, 0, d.Dispatch(context.Background(), nil))
}

func Test_Default_ReturnsSameInstance(t *testing.T) {
	assert.Same(t, dispatch.Default(), dispatch.Default())
}
