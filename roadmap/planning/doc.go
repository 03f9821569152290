// Package planning holds the domain services that look across a whole roadmap:
// priority balancing, timeframe normalization and the advisory structure suggestion.
//
// Both soft invariants they guard are reported as a ValidationResult value and
// repaired by returning a rebuilt roadmap. Nothing here persists or dispatches.
package planning
