package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/config"
	"github.com/AntonStoeckl/roadmap-aggregate-go/dispatch"
	"github.com/AntonStoeckl/roadmap-aggregate-go/metrics/promcollector"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
	"github.com/AntonStoeckl/roadmap-aggregate-go/store/memstore"
	"github.com/AntonStoeckl/roadmap-aggregate-go/store/postgresengine"
	"github.com/AntonStoeckl/roadmap-aggregate-go/store/redisengine"
)

const (
	logMsgDomainEvent = "domain event"
	logAttrEventType  = "event_type"
	logAttrRoadmapID  = "roadmap_id"
)

// app holds everything a single roadmapctl run needs.
type app struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics shell.MetricsCollector
	facade  command.Facade
	closers []func() error
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, err
	}

	options := &slog.HandlerOptions{Level: level}

	if cfg.Format == config.FormatJSON {
		return slog.New(slog.NewJSONHandler(w, options)), nil
	}

	return slog.New(slog.NewTextHandler(w, options)), nil
}

func newApp(ctx context.Context, cfg config.Config, logOutput io.Writer) (*app, error) {
	logger, err := newLogger(cfg.Log, logOutput)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger}

	if err = a.setUpMetrics(); err != nil {
		return nil, err
	}

	roadmaps, notes, err := a.buildStores(ctx)
	if err != nil {
		return nil, errors.Join(err, a.close())
	}

	dispatcher := dispatch.NewDispatcher(dispatch.WithLogger(logger), dispatch.WithMetrics(a.metrics))
	dispatcher.Register(dispatch.AllEventTypes, a.logEvent)

	a.facade = command.NewFacade(
		roadmaps,
		notes,
		command.WithDispatcher(dispatcher),
		command.WithLogger(logger),
		command.WithMetrics(a.metrics),
		command.WithRetryOptions(cfg.Retry.Options()...),
		command.WithPriorityBalancer(cfg.Limits.PriorityBalancer()),
		command.WithTimeframeNormalizer(cfg.Limits.TimeframeNormalizer()),
	)

	return a, nil
}

func (a *app) setUpMetrics() error {
	if !a.cfg.Metrics.Enabled {
		return nil
	}

	registry := prometheus.NewRegistry()

	collector, err := promcollector.NewCollector(
		registry,
		promcollector.WithNamespace(a.cfg.Metrics.Namespace),
		promcollector.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}

	a.metrics = collector

	if textfile := a.cfg.Metrics.Textfile; textfile != "" {
		a.closers = append(a.closers, func() error {
			return prometheus.WriteToTextfile(textfile, registry)
		})
	}

	return nil
}

func (a *app) buildStores(ctx context.Context) (command.RoadmapRepository, command.NoteRepository, error) {
	var pg postgresengine.Store

	if a.cfg.Storage.Driver == config.DriverPostgres || a.cfg.NoteDriver() == config.DriverPostgres {
		store, err := a.openPostgres(ctx)
		if err != nil {
			return nil, nil, err
		}

		pg = store
	}

	var (
		roadmaps    command.RoadmapRepository
		notes       command.NoteRepository
		memRoadmaps *memstore.RoadmapRepository
		memNotes    *memstore.NoteRepository
	)

	switch a.cfg.Storage.Driver {
	case config.DriverPostgres:
		roadmaps = pg.Roadmaps
	default:
		memRoadmaps = memstore.NewRoadmapRepository()
		roadmaps = memRoadmaps
	}

	switch a.cfg.NoteDriver() {
	case config.DriverPostgres:
		notes = pg.Notes
	case config.DriverRedis:
		repo, err := a.openRedis()
		if err != nil {
			return nil, nil, err
		}

		notes = repo
	default:
		memNotes = memstore.NewNoteRepository()
		notes = memNotes
	}

	if memRoadmaps != nil && a.cfg.Storage.SnapshotFile != "" {
		if err := a.restoreSnapshot(memRoadmaps, memNotes); err != nil {
			return nil, nil, err
		}
	}

	return roadmaps, notes, nil
}

func (a *app) openPostgres(ctx context.Context) (postgresengine.Store, error) {
	options := []postgresengine.Option{
		postgresengine.WithRoadmapTableName(a.cfg.Storage.RoadmapTable),
		postgresengine.WithNoteTableName(a.cfg.Storage.NoteTable),
		postgresengine.WithLogger(a.logger),
		postgresengine.WithMetrics(a.metrics),
	}

	var (
		store postgresengine.Store
		err   error
	)

	switch a.cfg.Storage.Adapter {
	case config.AdapterSQL:
		db, openErr := config.OpenSQLDB(ctx, a.cfg.Storage.DSN)
		if openErr != nil {
			return postgresengine.Store{}, openErr
		}

		a.closers = append(a.closers, db.Close)
		store, err = postgresengine.NewStoreFromSQLDB(db, options...)

	case config.AdapterSQLX:
		db, openErr := config.OpenSQLX(ctx, a.cfg.Storage.DSN)
		if openErr != nil {
			return postgresengine.Store{}, openErr
		}

		a.closers = append(a.closers, db.Close)
		store, err = postgresengine.NewStoreFromSQLX(db, options...)

	default:
		pool, openErr := config.OpenPGXPool(ctx, a.cfg.Storage.DSN)
		if openErr != nil {
			return postgresengine.Store{}, openErr
		}

		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		store, err = postgresengine.NewStoreFromPGXPool(pool, options...)
	}

	if err != nil {
		return postgresengine.Store{}, err
	}

	if err = store.EnsureSchema(ctx); err != nil {
		return postgresengine.Store{}, err
	}

	return store, nil
}

func (a *app) openRedis() (*redisengine.NoteRepository, error) {
	client := redis.NewClient(a.cfg.Redis.RedisOptions())
	a.closers = append(a.closers, client.Close)

	return redisengine.NewNoteRepository(
		client,
		redisengine.WithKeyPrefix(a.cfg.Redis.KeyPrefix),
		redisengine.WithLogger(a.logger),
	)
}

func (a *app) restoreSnapshot(roadmaps *memstore.RoadmapRepository, notes *memstore.NoteRepository) error {
	path := a.cfg.Storage.SnapshotFile

	snapshot, err := memstore.ReadSnapshotFile(path)
	if err != nil {
		return err
	}

	if err = snapshot.Restore(roadmaps, notes); err != nil {
		return fmt.Errorf("restoring %s: %w", path, err)
	}

	a.closers = append(a.closers, func() error {
		return memstore.TakeSnapshot(roadmaps, notes).WriteFile(path)
	})

	return nil
}

func (a *app) logEvent(ctx context.Context, event roadmap.DomainEvent) error {
	a.logger.InfoContext(ctx, logMsgDomainEvent, logAttrEventType, event.EventType(), logAttrRoadmapID, event.AggregateID())
	return nil
}

// close runs the closers in reverse order. Calling it again is a no-op.
func (a *app) close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	a.closers = nil

	return errors.Join(errs...)
}
