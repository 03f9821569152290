package roadmap

import (
	"time"
)

// The factory functions below return false when the change is a no-op or when
// the path does not reach far enough to identify the changed entity.

func statusChange(path EventPath, itemID string, oldStatus, newStatus Status, at time.Time) (DomainEvent, bool) {
	if !path.reachesInitiative() || oldStatus.Equals(newStatus) {
		return nil, false
	}

	return BuildItemStatusChanged(path, itemID, oldStatus, newStatus, at), true
}

func priorityChange(path EventPath, oldPriority, newPriority Priority, at time.Time) (DomainEvent, bool) {
	if !path.reachesInitiative() || oldPriority.Equals(newPriority) {
		return nil, false
	}

	return BuildInitiativePriorityChanged(path, oldPriority, newPriority, at), true
}

func categoryChange(path EventPath, oldCategory, newCategory Category, at time.Time) (DomainEvent, bool) {
	if !path.reachesInitiative() || oldCategory.Equals(newCategory) {
		return nil, false
	}

	return BuildInitiativeCategoryChanged(path, oldCategory, newCategory, at), true
}

func itemAddition(path EventPath, item Item, at time.Time) (DomainEvent, bool) {
	if !path.reachesInitiative() {
		return nil, false
	}

	return BuildItemAdded(path, item, at), true
}

func initiativeAddition(path EventPath, initiative Initiative, at time.Time) (DomainEvent, bool) {
	if !path.reachesTimeframe() {
		return nil, false
	}

	return BuildInitiativeAdded(path.RoadmapID, path.TimeframeID, initiative.ID(), initiative.Title(), at), true
}
