package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

// RoadmapRepository is a load-whole/replace-whole roadmap store held in memory.
type RoadmapRepository struct {
	mu      sync.RWMutex
	ids     []string
	records map[string]roadmap.RoadmapRecord
}

// NewRoadmapRepository creates an empty RoadmapRepository.
func NewRoadmapRepository() *RoadmapRepository {
	return &RoadmapRepository{records: make(map[string]roadmap.RoadmapRecord)}
}

// FindByID returns the stored roadmap. A missing id is reported with found == false, not as an error.
func (repo *RoadmapRepository) FindByID(ctx context.Context, id string) (roadmap.Roadmap, bool, error) {
	if err := ctx.Err(); err != nil {
		return roadmap.Roadmap{}, false, err
	}

	repo.mu.RLock()
	rec, found := repo.records[id]
	repo.mu.RUnlock()

	if !found {
		return roadmap.Roadmap{}, false, nil
	}

	r, err := roadmap.FromRecord(rec)
	if err != nil {
		return roadmap.Roadmap{}, false, err
	}

	return r, true, nil
}

// FindAll returns all roadmaps in the order they were first saved.
func (repo *RoadmapRepository) FindAll(ctx context.Context) ([]roadmap.Roadmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	records := make([]roadmap.RoadmapRecord, 0, len(repo.ids))
	for _, id := range repo.ids {
		records = append(records, repo.records[id])
	}
	repo.mu.RUnlock()

	out := make([]roadmap.Roadmap, 0, len(records))
	for _, rec := range records {
		r, err := roadmap.FromRecord(rec)
		if err != nil {
			return nil, err
		}

		out = append(out, r)
	}

	return out, nil
}

// Save stores the roadmap if its revision directly follows the stored one.
// Revision 1 inserts and requires the id to be free.
func (repo *RoadmapRepository) Save(ctx context.Context, r roadmap.Roadmap) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rec := r.ToRecord()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	stored, exists := repo.records[rec.ID]

	switch {
	case !exists && rec.Revision != 1:
		return errors.Join(shell.ErrConcurrencyConflict, fmt.Errorf("roadmap %q is gone, cannot save revision %d", rec.ID, rec.Revision))
	case exists && stored.Revision+1 != rec.Revision:
		return errors.Join(shell.ErrConcurrencyConflict, fmt.Errorf("roadmap %q is at revision %d, cannot save revision %d", rec.ID, stored.Revision, rec.Revision))
	}

	if !exists {
		repo.ids = append(repo.ids, rec.ID)
	}

	repo.records[rec.ID] = rec

	return nil
}

// Delete removes a roadmap and reports whether it existed.
func (repo *RoadmapRepository) Delete(ctx context.Context, id string) (bool, error) {
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
