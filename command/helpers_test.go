package command_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/dispatch"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
	"github.com/AntonStoeckl/roadmap-aggregate-go/store/memstore"
)

type eventRecorder struct {
	mu     sync.Mutex
	events roadmap.DomainEvents
}

func (r *eventRecorder) handle(_ context.Context, event roadmap.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)

	return nil
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]string, 0, len(r.events))
	for _, event := range r.events {
		types = append(types, event.EventType())
	}

	return types
}

type fixture struct {
	repo     *memstore.RoadmapRepository
	notes    *memstore.NoteRepository
	recorder *eventRecorder
	facade   command.Facade
}

func givenFixture(t *testing.T, opts ...command.Option) fixture {
	t.Helper()

	recorder := &eventRecorder{}
	dispatcher := dispatch.NewDispatcher()
	dispatcher.Register(dispatch.AllEventTypes, recorder.handle)

	repo := memstore.NewRoadmapRepository()
	notes := memstore.NewNoteRepository()

	allOpts := append([]command.Option{
		command.WithDispatcher(dispatcher),
		command.WithRetryOptions(shell.WithBaseDelay(0)),
	}, opts...)

	return fixture{
		repo:     repo,
		notes:    notes,
		recorder: recorder,
		facade:   command.NewFacade(repo, notes, allOpts...),
	}
}

// givenTwoTimeframes creates a roadmap with T1 (order 0) and T2 (order 1).
func givenTwoTimeframes(t *testing.T, f fixture) (roadmapID, t1, t2 string) {
	t.Helper()

	created, err := f.facade.CreateRoadmap(context.Background(), command.RoadmapParams{
		Title: "Product",
		Owner: "alice",
		Timeframes: []command.TimeframeParams{
			{Name: "T1", Order: 0},
			{Name: "T2", Order: 1},
		},
	})
	require.NoError(t, err)

	timeframes := created.Roadmap.Timeframes()
	require.Len(t, timeframes, 2)

	return created.Roadmap.ID(), timeframes[0].ID(), timeframes[1].ID()
}

func storedRecord(t *testing.T, f fixture, roadmapID string) roadmap.RoadmapRecord {
	t.Helper()

	r, found, err := f.repo.FindByID(context.Background(), roadmapID)
	require.NoError(t, err)
	require.True(t, found)

	return r.ToRecord()
}

// racingRepository lets a competing writer save right before the first update save.
type racingRepository struct {
	*memstore.RoadmapRepository
	raced bool
}

func (repo *racingRepository) Save(ctx context.Context, r roadmap.Roadmap) error {
	if !repo.raced && r.Revision() > 1 {
		repo.raced = true

		current, _, err := repo.RoadmapRepository.FindByID(ctx, r.ID())
		if err != nil {
			return err
		}

		competing := current.Update(roadmap.RoadmapPatch{Owner: roadmap.Ptr("intruder")}).NextRevision()
		if err = repo.RoadmapRepository.Save(ctx, competing); err != nil {
			return err
		}
	}

	return repo.RoadmapRepository.Save(ctx, r)
}
