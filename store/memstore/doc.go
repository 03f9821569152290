// Package memstore provides in-memory roadmap and note repositories.
//
// Roadmaps are kept as records, never as live aggregates, so a caller can never
// mutate stored state by holding on to a returned value. Saves are checked against
// the stored revision exactly like the PostgreSQL repository does.
package memstore
