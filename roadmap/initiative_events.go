package roadmap

import (
	"time"
)

const (
	// InitiativeAddedEventType is the event type identifier.
	InitiativeAddedEventType = "InitiativeAdded"

	// InitiativeMovedEventType is the event type identifier.
	InitiativeMovedEventType = "InitiativeMoved"

	// InitiativePriorityChangedEventType is the event type identifier.
	InitiativePriorityChangedEventType = "InitiativePriorityChanged"

	// InitiativeCategoryChangedEventType is the event type identifier.
	InitiativeCategoryChangedEventType = "InitiativeCategoryChanged"
)

// InitiativeAdded represents an initiative added to a timeframe.
type InitiativeAdded struct {
	RoadmapID    string
	TimeframeID  string
	InitiativeID string
	Title        string
	OccurredAt   time.Time
}

// BuildInitiativeAdded creates a new InitiativeAdded event.
func BuildInitiativeAdded(roadmapID, timeframeID, initiativeID, title string, occurredAt time.Time) InitiativeAdded {
	return InitiativeAdded{
		RoadmapID:    roadmapID,
		TimeframeID:  timeframeID,
		InitiativeID: initiativeID,
		Title:        title,
		OccurredAt:   ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e InitiativeAdded) EventType() string {
	return InitiativeAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e InitiativeAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e InitiativeAdded) AggregateID() string {
	return e.RoadmapID
}

// InitiativeMoved represents an initiative moved from one timeframe to another.
type InitiativeMoved struct {
	RoadmapID       string
	InitiativeID    string
	FromTimeframeID string
	ToTimeframeID   string
	OccurredAt      time.Time
}

// BuildInitiativeMoved creates a new InitiativeMoved event.
func BuildInitiativeMoved(roadmapID, initiativeID, fromTimeframeID, toTimeframeID string, occurredAt time.Time) InitiativeMoved {
	return InitiativeMoved{
		RoadmapID:       roadmapID,
		InitiativeID:    initiativeID,
		FromTimeframeID: fromTimeframeID,
		ToTimeframeID:   toTimeframeID,
		OccurredAt:      ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e InitiativeMoved) EventType() string {
	return InitiativeMovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e InitiativeMoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e InitiativeMoved) AggregateID() string {
	return e.RoadmapID
}

// InitiativePriorityChanged represents a priority change of an initiative.
type InitiativePriorityChanged struct {
	RoadmapID    string
	TimeframeID  string
	InitiativeID string
	OldPriority  string
	NewPriority  string
	OccurredAt   time.Time
}

// BuildInitiativePriorityChanged creates a new InitiativePriorityChanged event.
func BuildInitiativePriorityChanged(path EventPath, oldPriority, newPriority Priority, occurredAt time.Time) InitiativePriorityChanged {
	return InitiativePriorityChanged{
		RoadmapID:    path.RoadmapID,
		TimeframeID:  path.TimeframeID,
		InitiativeID: path.InitiativeID,
		OldPriority:  oldPriority.String(),
		NewPriority:  newPriority.String(),
		OccurredAt:   ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e InitiativePriorityChanged) EventType() string {
	return InitiativePriorityChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e InitiativePriorityChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e InitiativePriorityChanged) AggregateID() string {
	return e.RoadmapID
}

// InitiativeCategoryChanged represents a category change of an initiative.
type InitiativeCategoryChanged struct {
	RoadmapID    string
	TimeframeID  string
	InitiativeID string
	OldCategory  string
	NewCategory  string
	OccurredAt   time.Time
}

// BuildInitiativeCategoryChanged creates a new InitiativeCategoryChanged event.
func BuildInitiativeCategoryChanged(path EventPath, oldCategory, newCategory Category, occurredAt time.Time) InitiativeCategoryChanged {
	return InitiativeCategoryChanged{
		RoadmapID:    path.RoadmapID,
		TimeframeID:  path.TimeframeID,
		InitiativeID: path.InitiativeID,
		OldCategory:  oldCategory.String(),
		NewCategory:  newCategory.String(),
		OccurredAt:   ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e InitiativeCategoryChanged) EventType() string {
	return InitiativeCategoryChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e InitiativeCategoryChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e InitiativeCategoryChanged) AggregateID() string {
	return e.RoadmapID
}
