package roadmap

import (
	"time"
)

const (
	// RoadmapCreatedEventType is the event type identifier.
	RoadmapCreatedEventType = "RoadmapCreated"

	// RoadmapUpdatedEventType is the event type identifier.
	RoadmapUpdatedEventType = "RoadmapUpdated"

	// TimeframeAddedEventType is the event type identifier.
	TimeframeAddedEventType = "TimeframeAdded"
)

// RoadmapCreated represents the creation of a new roadmap.
type RoadmapCreated struct {
	RoadmapID  string
	Title      string
	Owner      string
	OccurredAt time.Time
}

// BuildRoadmapCreated creates a new RoadmapCreated event.
func BuildRoadmapCreated(roadmapID, title, owner string, occurredAt time.Time) RoadmapCreated {
	return RoadmapCreated{
		RoadmapID:  roadmapID,
		Title:      title,
		Owner:      owner,
		OccurredAt: ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RoadmapCreated) EventType() string {
	return RoadmapCreatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RoadmapCreated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e RoadmapCreated) AggregateID() string {
	return e.RoadmapID
}

// RoadmapUpdated represents a change of the root's descriptive fields.
type RoadmapUpdated struct {
	RoadmapID     string
	ChangedFields []string
	OccurredAt    time.Time
}

// BuildRoadmapUpdated creates a new RoadmapUpdated event.
func BuildRoadmapUpdated(roadmapID string, changedFields []string, occurredAt time.Time) RoadmapUpdated {
	return RoadmapUpdated{
		RoadmapID:     roadmapID,
		ChangedFields: copyStrings(changedFields),
		OccurredAt:    ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e RoadmapUpdated) EventType() string {
	return RoadmapUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e RoadmapUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e RoadmapUpdated) AggregateID() string {
	return e.RoadmapID
}

// TimeframeAdded represents a new timeframe planned into a roadmap.
type TimeframeAdded struct {
	RoadmapID   string
	TimeframeID string
	Name        string
	Order       int
	OccurredAt  time.Time
}

// BuildTimeframeAdded creates a new TimeframeAdded event.
func BuildTimeframeAdded(roadmapID, timeframeID, name string, order int, occurredAt time.Time) TimeframeAdded {
	return TimeframeAdded{
		RoadmapID:   roadmapID,
		TimeframeID: timeframeID,
		Name:        name,
		Order:       order,
		OccurredAt:  ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e TimeframeAdded) EventType() string {
	return TimeframeAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e TimeframeAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e TimeframeAdded) AggregateID() string {
	return e.RoadmapID
}
