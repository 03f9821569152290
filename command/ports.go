package command

import (
	"context"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// RoadmapRepository loads and replaces whole roadmaps.
// Save must reject a roadmap whose revision does not directly follow the stored one with
// an error that matches shell.ErrConcurrencyConflict.
type RoadmapRepository interface {
	FindByID(ctx context.Context, id string) (roadmap.Roadmap, bool, error)
	FindAll(ctx context.Context) ([]roadmap.Roadmap, error)
	Save(ctx context.Context, r roadmap.Roadmap) error
	Delete(ctx context.Context, id string) (bool, error)
}

// NoteRepository stores roadmap notes independently of the roadmaps they refer to.
type NoteRepository interface {
	FindByID(ctx context.Context, id string) (roadmap.Note, bool, error)
	FindAll(ctx context.Context) ([]roadmap.Note, error)
	FindByCategory(ctx context.Context, category roadmap.Category) ([]roadmap.Note, error)
	FindByPriority(ctx context.Context, priority roadmap.Priority) ([]roadmap.Note, error)
	FindByTimeline(ctx context.Context, timeline string) ([]roadmap.Note, error)
	Save(ctx context.Context, note roadmap.Note) error
	Delete(ctx context.Context, id string) (bool, error)
}

// EventDispatcher receives the events of a command after the roadmap was saved.
// *dispatch.Dispatcher satisfies it.
type EventDispatcher interface {
	DispatchAll(ctx context.Context, events roadmap.DomainEvents) int
}
