package config

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const postgresDriverName = "postgres"

const (
	defaultMaxConnections    = int32(8)
	defaultMinConnections    = int32(2)
	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = time.Second * 5

	defaultMaxOpenConnections = 50
	defaultMaxIdleConnections = 10
)

var (
	// ErrEmptyDSN is returned by the builders for an empty DSN.
	ErrEmptyDSN = errors.New("postgres dsn must not be empty")

	// ErrOpeningDatabaseFailed wraps errors while opening or pinging the database.
	ErrOpeningDatabaseFailed = errors.New("opening database failed")
)

// PGXPoolConfig parses dsn into a pgxpool.Config with the project's pool settings.
func PGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	dbConfig.MaxConns = defaultMaxConnections
	dbConfig.MinConns = defaultMinConnections
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// OpenPGXPool builds and pings a pool from dsn.
func OpenPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dbConfig, err := PGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return pool, nil
}

// OpenSQLDB opens a lib/pq backed *sql.DB and pings it.
func OpenSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sql.Open(postgresDriverName, dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	configurePool(db)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return db, nil
}

// OpenSQLX opens a lib/pq backed *sqlx.DB and pings it.
func OpenSQLX(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sqlx.Open(postgresDriverName, dsn)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	configurePool(db.DB)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	return db, nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(defaultMaxOpenConnections)
	db.SetMaxIdleConns(defaultMaxIdleConnections)
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
