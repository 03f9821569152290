package roadmap

import (
	"time"
)

// DomainEvents is a slice of DomainEvent instances.
type DomainEvents = []DomainEvent

// DomainEvent represents a state transition that has happened inside a roadmap aggregate.
type DomainEvent interface {
	// EventType returns the string identifier for this event type.
	EventType() string

	// HasOccurredAt returns when this event occurred.
	HasOccurredAt() time.Time

	// AggregateID returns the id of the roadmap the event belongs to.
	AggregateID() string
}

// EventPath carries the ids of the ancestors of an entity.
// Entities never reference their parents, so a method that raises an event
// receives the path explicitly. A zero EventPath suppresses event creation.
type EventPath struct {
	RoadmapID    string
	TimeframeID  string
	InitiativeID string
}

// PathToTimeframe builds an EventPath that reaches a timeframe.
func PathToTimeframe(roadmapID, timeframeID string) EventPath {
	return EventPath{RoadmapID: roadmapID, TimeframeID: timeframeID}
}

// PathToInitiative builds an EventPath that reaches an initiative.
func PathToInitiative(roadmapID, timeframeID, initiativeID string) EventPath {
	return EventPath{RoadmapID: roadmapID, TimeframeID: timeframeID, InitiativeID: initiativeID}
}

func (p EventPath) reachesRoadmap() bool {
	return p.RoadmapID != ""
}

func (p EventPath) reachesTimeframe() bool {
	return p.reachesRoadmap() && p.TimeframeID != ""
}

func (p EventPath) reachesInitiative() bool {
	return p.reachesTimeframe() && p.InitiativeID != ""
}

func appendEvents(pending DomainEvents, events ...DomainEvent) DomainEvents {
	out := make(DomainEvents, 0, len(pending)+len(events))
	out = append(out, pending...)

	return append(out, events...)
}
