package memstore

import (
	"context"
	"slices"
	"sync"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// NoteRepository keeps roadmap notes in memory.
type NoteRepository struct {
	mu      sync.RWMutex
	ids     []string
	records map[string]roadmap.NoteRecord
}

// NewNoteRepository creates an empty NoteRepository.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{records: make(map[string]roadmap.NoteRecord)}
}

// FindByID returns the note. A missing id is reported with found == false.
func (repo *NoteRepository) FindByID(ctx context.Context, id string) (roadmap.Note, bool, error) {
	if err := ctx.Err(); err != nil {
		return roadmap.Note{}, false, err
	}

	repo.mu.RLock()
	rec, found := repo.records[id]
	repo.mu.RUnlock()

	if !found {
		return roadmap.Note{}, false, nil
	}

	note, err := roadmap.NoteFromRecord(rec)
	if err != nil {
		return roadmap.Note{}, false, err
	}

	return note, true, nil
}

// FindAll returns all notes in the order they were first saved.
func (repo *NoteRepository) FindAll(ctx context.Context) ([]roadmap.Note, error) {
	return repo.filter(ctx, func(roadmap.NoteRecord) bool { return true })
}

// FindByCategory returns the notes of one category.
func (repo *NoteRepository) FindByCategory(ctx context.Context, category roadmap.Category) ([]roadmap.Note, error) {
	return repo.filter(ctx, func(rec roadmap.NoteRecord) bool { return rec.Category == category.String() })
}

// FindByPriority returns the notes of one priority.
func (repo *NoteRepository) FindByPriority(ctx context.Context, priority roadmap.Priority) ([]roadmap.Note, error) {
	return repo.filter(ctx, func(rec roadmap.NoteRecord) bool { return rec.Priority == priority.String() })
}

// FindByTimeline returns the notes whose timeline matches exactly.
func (repo *NoteRepository) FindByTimeline(ctx context.Context, timeline string) ([]roadmap.Note, error) {
	return repo.filter(ctx, func(rec roadmap.NoteRecord) bool { return rec.Timeline == timeline })
}

// Save inserts or replaces the note.
func (repo *NoteRepository) Save(ctx context.Context, note roadmap.Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec := note.ToRecord()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.records[rec.ID]; !exists {
		repo.ids = append(repo.ids, rec.ID)
	}

	repo.records[rec.ID] = rec

	return nil
}

// Delete removes a note and reports whether it existed.
func (repo *NoteRepository) Delete(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.records[id]; !exists {
		return false, nil
	}

	delete(repo.records, id)
	repo.ids = slices.DeleteFunc(repo.ids, func(candidate string) bool {
		return candidate == id
	})

	return true, nil
}

func (repo *NoteRepository) filter(ctx context.Context, keep func(roadmap.NoteRecord) bool) ([]roadmap.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	var records []roadmap.NoteRecord
	for _, id := range repo.ids {
		if rec := repo.records[id]; keep(rec) {
			records = append(records, rec)
		}
	}
	repo.mu.RUnlock()

	out := make([]roadmap.Note, 0, len(records))
	for _, rec := range records {
		note, err := roadmap.NoteFromRecord(rec)
		if err != nil {
			return nil, err
		}

		out = append(out, note)
	}

	return out, nil
}
