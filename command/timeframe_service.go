package command

import (
	"context"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

const (
	commandTypeAddTimeframe    = "AddTimeframe"
	commandTypeUpdateTimeframe = "UpdateTimeframe"
	commandTypeRemoveTimeframe = "RemoveTimeframe"

	queryTypeGetTimeframe = "GetTimeframe"
)

// TimeframeService handles timeframes of a roadmap.
type TimeframeService struct {
	exec roadmapExecutor
}

// NewTimeframeService creates a TimeframeService.
func NewTimeframeService(repo RoadmapRepository, opts ...Option) TimeframeService {
	return TimeframeService{exec: roadmapExecutor{repo: repo, rt: newRuntime(opts...)}}
}

// Add plans a new timeframe, optionally holding initiatives, and raises TimeframeAdded.
func (s TimeframeService) Add(ctx context.Context, roadmapID string, in TimeframeInput) (Result, error) {
	timeframe, err := buildTimeframe(in)
	if err != nil {
		return Result{}, err
	}

	return s.exec.mutate(ctx, commandTypeAddTimeframe, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		return r.PlanTimeframe(timeframe), timeframe.ID(), nil
	})
}

// Update renames and/or reorders a timeframe.
func (s TimeframeService) Update(
	ctx context.Context,
	roadmapID, timeframeID string,
	patch roadmap.TimeframePatch,
) (Result, error) {
	if patch.Name != nil {
		if err := requireTitle(*patch.Name); err != nil {
			return Result{}, err
		}
	}

	return s.exec.mutate(ctx, commandTypeUpdateTimeframe, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		timeframe, err := timeframeIn(r, timeframeID)
		if err != nil {
			return r, "", err
		}

		return r.AddTimeframe(timeframe.Update(patch)), "", nil
	})
}

// Remove deletes a timeframe with all its initiatives.
func (s TimeframeService) Remove(ctx context.Context, roadmapID, timeframeID string) (Result, error) {
	result, err := s.exec.mutate(ctx, commandTypeRemoveTimeframe, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		next, err := r.RemoveTimeframe(timeframeID)
		return next, "", err
	})

	if err == nil && result.Found {
		s.exec.logRemoval(ctx, roadmapID, roadmap.KindTimeframe, timeframeID)
	}

	return result, err
}

// Get returns a timeframe. It reports false if the roadmap does not exist.
func (s TimeframeService) Get(ctx context.Context, roadmapID, timeframeID string) (roadmap.Timeframe, bool, error) {
	r, found, err := s.exec.load(ctx, queryTypeGetTimeframe, roadmapID)
	if err != nil || !found {
		return roadmap.Timeframe{}, found, err
	}

	timeframe, err := timeframeIn(r, timeframeID)

	return timeframe, true, err
}
