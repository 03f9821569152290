package roadmap

import (
	"time"
)

const (
	// ItemAddedEventType is the event type identifier.
	ItemAddedEventType = "ItemAdded"

	// ItemMovedEventType is the event type identifier.
	ItemMovedEventType = "ItemMoved"

	// ItemStatusChangedEventType is the event type identifier.
	ItemStatusChangedEventType = "ItemStatusChanged"
)

// ItemAdded represents an item added to an initiative.
type ItemAdded struct {
	RoadmapID    string
	TimeframeID  string
	InitiativeID string
	ItemID       string
	Title        string
	Status       string
	OccurredAt   time.Time
}

// BuildItemAdded creates a new ItemAdded event.
func BuildItemAdded(path EventPath, item Item, occurredAt time.Time) ItemAdded {
	return ItemAdded{
		RoadmapID:    path.RoadmapID,
		TimeframeID:  path.TimeframeID,
		InitiativeID: path.InitiativeID,
		ItemID:       item.ID(),
		Title:        item.Title(),
		Status:       item.Status().String(),
		OccurredAt:   ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ItemAdded) EventType() string {
	return ItemAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e ItemAdded) AggregateID() string {
	return e.RoadmapID
}

// ItemMoved represents an item moved between initiatives of the same roadmap.
type ItemMoved struct {
	RoadmapID        string
	ItemID           string
	FromTimeframeID  string
	FromInitiativeID string
	ToTimeframeID    string
	ToInitiativeID   string
	OccurredAt       time.Time
}

// BuildItemMoved creates a new ItemMoved event.
func BuildItemMoved(itemID string, from EventPath, to EventPath, occurredAt time.Time) ItemMoved {
	return ItemMoved{
		RoadmapID:        from.RoadmapID,
		ItemID:           itemID,
		FromTimeframeID:  from.TimeframeID,
		FromInitiativeID: from.InitiativeID,
		ToTimeframeID:    to.TimeframeID,
		ToInitiativeID:   to.InitiativeID,
		OccurredAt:       ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ItemMoved) EventType() string {
	return ItemMovedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemMoved) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e ItemMoved) AggregateID() string {
	return e.RoadmapID
}

// ItemStatusChanged represents a status transition of an item.
type ItemStatusChanged struct {
	RoadmapID    string
	TimeframeID  string
	InitiativeID string
	ItemID       string
	OldStatus    string
	NewStatus    string
	OccurredAt   time.Time
}

// BuildItemStatusChanged creates a new ItemStatusChanged event.
func BuildItemStatusChanged(path EventPath, itemID string, oldStatus, newStatus Status, occurredAt time.Time) ItemStatusChanged {
	return ItemStatusChanged{
		RoadmapID:    path.RoadmapID,
		TimeframeID:  path.TimeframeID,
		InitiativeID: path.InitiativeID,
		ItemID:       itemID,
		OldStatus:    oldStatus.String(),
		NewStatus:    newStatus.String(),
		OccurredAt:   ToTimestamp(occurredAt),
	}
}

// EventType returns the event type identifier.
func (e ItemStatusChanged) EventType() string {
	return ItemStatusChangedEventType
}

// HasOccurredAt returns when this event occurred.
func (e ItemStatusChanged) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// AggregateID returns the roadmap id.
func (e ItemStatusChanged) AggregateID() string {
	return e.RoadmapID
}
