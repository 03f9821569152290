// Package roadmap contains the roadmap aggregate:
// timeframes, initiatives and items under a single Roadmap root.
//
// All entities are immutable values. Every mutating method returns a new
// instance and leaves the receiver untouched, so a container holding a
// mutated child must be rebuilt by the caller (remove the old child, add the
// new one). Children never reference their parents. Methods that raise
// domain events take an EventPath carrying the ids of the ancestors, which is
// only used to stamp the outgoing event.
//
// Raised events are kept as pending events on the entity that changed and are
// re-exposed by every container through PendingEvents, so the events of a
// whole command can be collected from the rebuilt root before dispatch.
//
// Status, Priority and Category are closed value objects. Parsing an unknown
// string returns ErrUnknownEnumValue.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package roadmap
