package adapters

import "context"

// DBAdapter runs fully rendered SQL statements.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
}

// DBRows iterates over query results.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DBResult reports how many rows a statement touched.
type DBResult interface {
	RowsAffected() (int64, error)
}
