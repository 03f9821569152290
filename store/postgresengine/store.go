package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
	"github.com/AntonStoeckl/roadmap-aggregate-go/store/postgresengine/internal/adapters"
)

const (
	// StatementDurationMetric tracks SQL statement duration per action.
	StatementDurationMetric = "roadmap_store_statement_duration_seconds"

	dialectPostgres = "postgres"

	colID        = "id"
	colRevision  = "revision"
	colTitle     = "title"
	colDocument  = "document"
	colUpdatedAt = "updated_at"
	colCategory  = "category"
	colPriority  = "priority"
	colTimeline  = "timeline"

	castJsonb    = "?::jsonb"
	excludedCol  = "EXCLUDED."
	labelAction  = "action"
	labelStatus  = "status"
	statusOK     = "ok"
	statusFailed = "failed"

	logMsgSQLExecuted         = "executed sql for: "
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database statement execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logAttrError              = "error"
	logAttrQuery              = "query"
	logAttrDurationMS         = "duration_ms"
	logAttrRoadmapID          = "roadmap_id"
	logAttrRevision           = "revision"
)

const schemaTemplate = `
CREATE TABLE IF NOT EXISTS %[1]s (
	id         TEXT PRIMARY KEY,
	revision   BIGINT NOT NULL,
	title      TEXT NOT NULL,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS %[2]s (
	id         TEXT PRIMARY KEY,
	category   TEXT NOT NULL,
	priority   TEXT NOT NULL,
	timeline   TEXT NOT NULL,
	document   JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS %[3]s ON %[2]s (category, priority);
`

// Store bundles the roadmap and note repositories on one connection.
type Store struct {
	Roadmaps RoadmapRepository
	Notes    NoteRepository
	runner   runner
}

// NewStoreFromPGXPool creates a Store on a pgx pool.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapter(db), options)
}

// NewStoreFromPGXPoolWithReplica creates a Store that reads from the replica pool.
func NewStoreFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil || replica == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewPGXAdapterWithReplica(db, replica), options)
}

// NewStoreFromSQLDB creates a Store on a sql.DB opened with the lib/pq driver.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), options)
}

// NewStoreFromSQLX creates a Store on a sqlx.DB.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), options)
}

func newStore(db adapters.DBAdapter, options []Option) (Store, error) {
	s, err := newSettings(options)
	if err != nil {
		return Store{}, err
	}

	r := runner{db: db, logger: s.logger, metrics: s.metrics}

	return Store{
		Roadmaps: RoadmapRepository{runner: r, tableName: s.roadmapTableName},
		Notes:    NoteRepository{runner: r, tableName: s.noteTableName},
		runner:   r,
	}, nil
}

// Schema returns the DDL for both tables.
func (s Store) Schema() string {
	return fmt.Sprintf(
		schemaTemplate,
		pq.QuoteIdentifier(s.Roadmaps.tableName),
		pq.QuoteIdentifier(s.Notes.tableName),
		pq.QuoteIdentifier(s.Notes.tableName+"_category_priority_idx"),
	)
}

// EnsureSchema creates the tables if they do not exist.
func (s Store) EnsureSchema(ctx context.Context) error {
	_, err := s.runner.exec(ctx, "schema", s.Schema())
	return err
}

// runner executes rendered SQL with logging and metrics.
type runner struct {
	db      adapters.DBAdapter
	logger  shell.Logger
	metrics shell.MetricsCollector
}

func (r runner) builder() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

// documents runs a query whose single column is a jsonb document.
func (r runner) documents(ctx context.Context, action, sqlQuery string) ([][]byte, error) {
	start := time.Now()
	rows, queryErr := r.db.Query(ctx, sqlQuery)
	r.observe(action, sqlQuery, queryErr, time.Since(start))

	if queryErr != nil {
		r.logError(logMsgDBQueryFailed, queryErr, sqlQuery)
		return nil, errors.Join(ErrQueryingFailed, queryErr)
	}

	defer r.closeRows(rows)

	docs := make([][]byte, 0)

	for rows.Next() {
		var doc []byte
		if scanErr := rows.Scan(&doc); scanErr != nil {
			r.logError(logMsgScanRowFailed, scanErr, sqlQuery)
			return nil, errors.Join(ErrScanningRowFailed, scanErr)
		}

		docs = append(docs, doc)
	}

	if iterErr := rows.Err(); iterErr != nil {
		return nil, errors.Join(ErrQueryingFailed, iterErr)
	}

	return docs, nil
}

// exec runs a write and returns the affected row count.
func (r runner) exec(ctx context.Context, action, sqlQuery string) (int64, error) {
	start := time.Now()
	result, execErr := r.db.Exec(ctx, sqlQuery)
	r.observe(action, sqlQuery, execErr, time.Since(start))

	if execErr != nil {
		r.logError(logMsgDBExecFailed, execErr, sqlQuery)
		return 0, errors.Join(ErrExecFailed, execErr)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrGettingRowsAffectedFailed, err)
	}

	return rowsAffected, nil
}

func (r runner) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil && r.logger != nil {
		r.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (r runner) observe(action, sqlQuery string, err error, duration time.Duration) {
	if r.logger != nil {
		r.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, shell.ToMilliseconds(duration), logAttrQuery, sqlQuery)
	}

	if r.metrics != nil {
		status := statusOK
		if err != nil {
			status = statusFailed
		}

		r.metrics.RecordDuration(StatementDurationMetric, duration, map[string]string{labelAction: action, labelStatus: status})
	}
}

func (r runner) logError(msg string, err error, sqlQuery string) {
	if r.logger != nil {
		r.logger.Error(msg, logAttrError, err.Error(), logAttrQuery, sqlQuery)
	}
}

func (r runner) logConflict(roadmapID string, revision uint64) {
	if r.logger != nil {
		r.logger.Info(logMsgConcurrencyConflict, logAttrRoadmapID, roadmapID, logAttrRevision, revision)
	}
}

func buildFailed(err error) error {
	return errors.Join(ErrBuildingQueryFailed, err)
}
