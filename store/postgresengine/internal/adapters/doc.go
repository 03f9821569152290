// Package adapters puts pgxpool.Pool, sql.DB and sqlx.DB behind one DBAdapter interface,
// so the roadmap repositories run the same goqu-built SQL on any of them.
package adapters
