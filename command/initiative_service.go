package command

import (
	"context"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

const (
	commandTypeAddInitiative    = "AddInitiative"
	commandTypeUpdateInitiative = "UpdateInitiative"
	commandTypeRemoveInitiative = "RemoveInitiative"
	commandTypeMoveInitiative   = "MoveInitiative"

	queryTypeGetInitiative = "GetInitiative"
)

// InitiativeService handles initiatives inside the timeframes of a roadmap.
type InitiativeService struct {
	exec roadmapExecutor
}

// NewInitiativeService creates an InitiativeService.
func NewInitiativeService(repo RoadmapRepository, opts ...Option) InitiativeService {
	return InitiativeService{exec: roadmapExecutor{repo: repo, rt: newRuntime(opts...)}}
}

// Add creates an initiative, optionally holding items, in a timeframe and raises InitiativeAdded.
func (s InitiativeService) Add(ctx context.Context, roadmapID, timeframeID string, in InitiativeInput) (Result, error) {
	initiative, err := buildInitiative(in)
	if err != nil {
		return Result{}, err
	}

	return s.exec.mutate(ctx, commandTypeAddInitiative, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		timeframe, err := timeframeIn(r, timeframeID)
		if err != nil {
			return r, "", err
		}

		timeframe = timeframe.AddInitiative(initiative, roadmap.PathToTimeframe(r.ID(), timeframeID))

		return r.AddTimeframe(timeframe), initiative.ID(), nil
	})
}

// Update applies a patch. Priority and category changes raise events.
func (s InitiativeService) Update(
	ctx context.Context,
	roadmapID, timeframeID, initiativeID string,
	patch roadmap.InitiativePatch,
) (Result, error) {
	if patch.Title != nil {
		if err := requireTitle(*patch.Title); err != nil {
			return Result{}, err
		}
	}

	return s.exec.mutate(ctx, commandTypeUpdateInitiative, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		timeframe, initiative, err := initiativeIn(r, timeframeID, initiativeID)
		if err != nil {
			return r, "", err
		}

		initiative = initiative.Update(patch, roadmap.PathToTimeframe(r.ID(), timeframeID))

		return withInitiative(r, timeframe, initiative), "", nil
	})
}

// Remove deletes an initiative with all its items.
func (s InitiativeService) Remove(ctx context.Context, roadmapID, timeframeID, initiativeID string) (Result, error) {
	result, err := s.exec.mutate(ctx, commandTypeRemoveInitiative, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		timeframe, err := timeframeIn(r, timeframeID)
		if err != nil {
			return r, "", err
		}

		timeframe, err = timeframe.RemoveInitiative(initiativeID)
		if err != nil {
			return r, "", err
		}

		return r.AddTimeframe(timeframe), "", nil
	})

	if err == nil && result.Found {
		s.exec.logRemoval(ctx, roadmapID, roadmap.KindInitiative, initiativeID)
	}

	return result, err
}

// Move relocates an initiative to another timeframe. Either both halves persist or neither.
func (s InitiativeService) Move(
	ctx context.Context,
	roadmapID, initiativeID, fromTimeframeID, toTimeframeID string,
) (Result, error) {
	return s.exec.mutate(ctx, commandTypeMoveInitiative, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		next, err := r.MoveInitiative(initiativeID, fromTimeframeID, toTimeframeID)
		return next, "", err
	})
}

// Get returns an initiative. It reports false if the roadmap does not exist.
func (s InitiativeService) Get(
	ctx context.Context,
	roadmapID, timeframeID, initiativeID string,
) (roadmap.Initiative, bool, error) {
	r, found, err := s.exec.load(ctx, queryTypeGetInitiative, roadmapID)
	if err != nil || !found {
		return roadmap.Initiative{}, found, err
	}

	_, initiative, err := initiativeIn(r, timeframeID, initiativeID)

	return initiative, true, err
}
