// Package dispatch delivers domain events to handlers registered by event type.
//
// Events are dispatched after the roadmap has been saved. A failing or panicking handler
// is logged and counted but never fails the command that raised the event, and never
// stops the remaining handlers from running.
//
// The composition root owns a Dispatcher and passes it to whoever registers or dispatches.
// Default returns a lazily built process-wide instance for callers that have no root.
package dispatch
