package roadmap

import (
	"errors"
	"fmt"
)

const (
	// KindRoadmap names the aggregate root in NotFoundError values.
	KindRoadmap = "roadmap"

	// KindTimeframe names a timeframe in NotFoundError values.
	KindTimeframe = "timeframe"

	// KindInitiative names an initiative in NotFoundError values.
	KindInitiative = "initiative"

	// KindItem names an item in NotFoundError values.
	KindItem = "item"

	// KindNote names a roadmap note in NotFoundError values.
	KindNote = "note"

	// KindRepository is the container kind used for top-level lookups.
	KindRepository = "repository"
)

var (
	// ErrNotFound is the sentinel every NotFoundError unwraps to.
	ErrNotFound = errors.New("not found")

	// ErrUnknownEnumValue is returned when a string does not match any member of a value object.
	ErrUnknownEnumValue = errors.New("unknown value")

	// ErrInvalidRecord is returned when a persisted record cannot be turned back into an entity.
	ErrInvalidRecord = errors.New("invalid record")
)

// NotFoundError reports an id that does not exist in the container it was searched in.
type NotFoundError struct {
	Kind          string
	ID            string
	ContainerKind string
	ContainerID   string
}

// NewNotFoundError builds a NotFoundError.
func NewNotFoundError(kind, id, containerKind, containerID string) NotFoundError {
	return NotFoundError{
		Kind:          kind,
		ID:            id,
		ContainerKind: containerKind,
		ContainerID:   containerID,
	}
}

// Error implements the error interface.
func (e NotFoundError) Error() string {
	if e.ContainerID == "" {
		return fmt.Sprintf("%s %q not found in %s", e.Kind, e.ID, e.ContainerKind)
	}

	return fmt.Sprintf("%s %q not found in %s %q", e.Kind, e.ID, e.ContainerKind, e.ContainerID)
}

// Unwrap makes errors.Is(err, ErrNotFound) work.
func (e NotFoundError) Unwrap() error {
	return ErrNotFound
}

func unknownEnumValue(enum, value string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownEnumValue, enum, value)
}
