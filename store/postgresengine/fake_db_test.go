package postgresengine

import (
	"context"

	"github.com/AntonStoeckl/roadmap-aggregate-go/store/postgresengine/internal/adapters"
)

// fakeDB records rendered SQL and replays scripted results.
type fakeDB struct {
	queries      []string
	execs        []string
	documents    [][]byte
	rowsAffected int64
	err          error
}

func (f *fakeDB) Query(_ context.Context, query string) (adapters.DBRows, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}

	return &fakeRows{documents: f.documents, index: -1}, nil
}

func (f *fakeDB) Exec(_ context.Context, query string) (adapters.DBResult, error) {
	f.execs = append(f.execs, query)
	if f.err != nil {
		return nil, f.err
	}

	return fakeResult(f.rowsAffected), nil
}

type fakeRows struct {
	documents [][]byte
	index     int
}

func (r *fakeRows) Next() bool {
	r.index++
	return r.index < len(r.documents)
}

func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*[]byte)) = r.documents[r.index]
	return nil
}

func (r *fakeRows) Err() error {
	return nil
}

func (r *fakeRows) Close() error {
	return nil
}

type fakeResult int64

func (f fakeResult) RowsAffected() (int64, error) {
	return int64(f), nil
}

func givenStore(db *fakeDB, options ...Option) Store {
	store, err := newStore(db, options)
	if err != nil {
		panic(err)
	}

	return store
}
