package command

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

const (
	logMsgEntityRemoved = "roadmap entity removed"

	logAttrKind = "kind"
	logAttrID   = "id"
)

// Result is the outcome of a mutating roadmap command.
type Result struct {
	// Roadmap is the saved roadmap. Its PendingEvents are the events that were dispatched.
	Roadmap roadmap.Roadmap

	// Found is false when no roadmap with the requested id exists. Nothing was changed then.
	Found bool

	// CreatedID is the id of the entity an Add operation created.
	CreatedID string

	// Events are the dispatched events in dispatch order.
	Events roadmap.DomainEvents

	// Meta carries retry metadata and the business outcome.
	Meta shell.HandlerResult
}

// change applies a command to a loaded roadmap. It returns the rebuilt roadmap and,
// for Add operations, the id of the created entity.
type change func(r roadmap.Roadmap) (roadmap.Roadmap, string, error)

type roadmapExecutor struct {
	repo RoadmapRepository
	rt   runtime
}

// mutate runs the load-change-save-dispatch protocol with retry on concurrency conflicts.
func (x roadmapExecutor) mutate(ctx context.Context, commandType, roadmapID string, apply change) (Result, error) {
	start := time.Now()
	shell.LogCommandStart(ctx, x.rt.logger, commandType, roadmapID)

	var result Result

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		result = Result{}

		current, found, loadErr := x.repo.FindByID(retryCtx, roadmapID)
		if loadErr != nil {
			return errors.Join(ErrLoadingRoadmapFailed, loadErr)
		}

		if !found {
			return nil
		}

		result.Found = true

		next, createdID, changeErr := apply(current)
		if changeErr != nil {
			return changeErr
		}

		next = next.NextRevision()
		if saveErr := x.repo.Save(retryCtx, next); saveErr != nil {
			return errors.Join(ErrSavingRoadmapFailed, saveErr)
		}

		result.Roadmap = next
		result.CreatedID = createdID
		result.Events = next.PendingEvents()

		return nil
	}, x.retryOptions(commandType)...)

	if err != nil {
		result.Meta = shell.NewErrorResult(retryMetrics)
		x.fail(ctx, commandType, roadmapID, err, time.Since(start))

		return result, err
	}

	if !result.Found {
		result.Meta = shell.NewSuccessResult(retryMetrics, 0)
		shell.RecordCommandMetrics(ctx, x.rt.metrics, commandType, shell.StatusNotFound, time.Since(start))

		return result, nil
	}

	x.finish(ctx, commandType, &result, retryMetrics, start)

	return result, nil
}

// create saves a new roadmap at revision 1 and dispatches its events.
func (x roadmapExecutor) create(ctx context.Context, commandType string, r roadmap.Roadmap) (Result, error) {
	start := time.Now()
	shell.LogCommandStart(ctx, x.rt.logger, commandType, r.ID())

	next := r.NextRevision()
	if err := x.repo.Save(ctx, next); err != nil {
		err = errors.Join(ErrSavingRoadmapFailed, err)
		x.fail(ctx, commandType, r.ID(), err, time.Since(start))

		return Result{}, err
	}

	result := Result{
		Roadmap:   next,
		Found:     true,
		CreatedID: next.ID(),
		Events:    next.PendingEvents(),
	}

	x.finish(ctx, commandType, &result, shell.RetryMetrics{Attempts: 1, LastErrorType: "none"}, start)

	return result, nil
}

func (x roadmapExecutor) finish(
	ctx context.Context,
	commandType string,
	result *Result,
	retryMetrics shell.RetryMetrics,
	start time.Time,
) {
	if x.rt.dispatcher != nil && len(result.Events) > 0 {
		x.rt.dispatcher.DispatchAll(ctx, result.Events)
	}

	result.Meta = shell.NewSuccessResult(retryMetrics, len(result.Events))

	duration := time.Since(start)
	shell.RecordCommandMetrics(ctx, x.rt.metrics, commandType, shell.ClassifyBusinessOutcome(result.Events), duration)
	shell.LogCommandSuccess(ctx, x.rt.logger, commandType, result.Roadmap.ID(), result.Meta, duration)
}

func (x roadmapExecutor) fail(ctx context.Context, commandType, roadmapID string, err error, duration time.Duration) {
	shell.RecordCommandMetrics(ctx, x.rt.metrics, commandType, shell.ClassifyError(err), duration)
	shell.LogCommandError(ctx, x.rt.logger, commandType, roadmapID, err, duration)
}

func (x roadmapExecutor) retryOptions(commandType string) []shell.RetryOption {
	opts := make([]shell.RetryOption, 0, len(x.rt.retryOptions)+1)
	opts = append(opts, x.rt.retryOptions...)

	if x.rt.metrics != nil {
		opts = append(opts, shell.WithMetrics(x.rt.metrics, commandType))
	}

	return opts
}

// load reads a roadmap for a query.
func (x roadmapExecutor) load(ctx context.Context, queryType, roadmapID string) (roadmap.Roadmap, bool, error) {
	start := time.Now()

	r, found, err := x.repo.FindByID(ctx, roadmapID)
	if err != nil {
		err = errors.Join(ErrLoadingRoadmapFailed, err)
	}

	x.observeQuery(ctx, queryType, err, start)

	return r, found, err
}

func (x roadmapExecutor) observeQuery(ctx context.Context, queryType string, err error, start time.Time) {
	duration := time.Since(start)
	shell.RecordQueryMetrics(ctx, x.rt.metrics, queryType, shell.ClassifyError(err), duration)
	shell.LogQueryResult(ctx, x.rt.logger, queryType, err, duration)
}

// logRemoval records removals, which raise no domain event.
func (x roadmapExecutor) logRemoval(ctx context.Context, roadmapID, kind, id string) {
	args := []any{shell.LogAttrRoadmapID, roadmapID, logAttrKind, kind, logAttrID, id}

	if contextualLogger := shell.ContextualLoggerFrom(x.rt.logger); contextualLogger != nil {
		contextualLogger.InfoContext(ctx, logMsgEntityRemoved, args...)
	} else if x.rt.logger != nil {
		x.rt.logger.Info(logMsgEntityRemoved, args...)
	}
}
