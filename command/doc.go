// Package command implements the write and read services of the roadmap aggregate.
//
// Every mutating operation follows the same protocol:
// load the roadmap by id (an absent roadmap is reported, not an error), navigate to the
// target entity (an unknown id fails with roadmap.NotFoundError), apply the entity-level
// change with an EventPath, rebuild every ancestor, save the next revision, and finally
// dispatch the pending events. The load-to-save cycle is retried on concurrency conflicts.
//
// Nothing is saved when a step before the save fails, so a failed command leaves the
// stored roadmap untouched.
package command
