// Package postgresengine stores roadmaps and notes in PostgreSQL.
//
// Each roadmap is one row holding its full record as jsonb plus a revision column.
// Save only succeeds if the stored revision directly precedes the new one, otherwise it
// fails with shell.ErrConcurrencyConflict. Notes are stored the same way with their
// category, priority and timeline copied into columns for filtering.
//
// The repositories run on pgxpool.Pool, sql.DB or sqlx.DB:
//
//	pool, _ := pgxpool.NewWithConfig(ctx, config.PGXPoolConfig(dsn))
//	store, _ := postgresengine.NewStoreFromPGXPool(pool, postgresengine.WithLogger(logger))
//	_ = store.EnsureSchema(ctx)
//	service := command.NewRoadmapService(store.Roadmaps)
package postgresengine
