package command

import (
	"context"
	"errors"
	"time"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap/planning"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
)

const (
	commandTypeCreateRoadmap    = "CreateRoadmap"
	commandTypeUpdateRoadmap    = "UpdateRoadmap"
	commandTypeDeleteRoadmap    = "DeleteRoadmap"
	commandTypeRebalanceRoadmap = "RebalanceRoadmap"
	commandTypeNormalizeRoadmap = "NormalizeRoadmap"

	queryTypeGetRoadmap       = "GetRoadmap"
	queryTypeListRoadmaps     = "ListRoadmaps"
	queryTypeValidateRoadmap  = "ValidateRoadmap"
	queryTypeSuggestStructure = "SuggestStructure"
	queryTypeRoadmapStats     = "RoadmapStats"
)

// RoadmapService handles commands and queries on the roadmap root.
type RoadmapService struct {
	exec roadmapExecutor
}

// NewRoadmapService creates a RoadmapService.
func NewRoadmapService(repo RoadmapRepository, opts ...Option) RoadmapService {
	return RoadmapService{exec: roadmapExecutor{repo: repo, rt: newRuntime(opts...)}}
}

// Create builds a roadmap with its nested timeframes, initiatives and items and saves it.
func (s RoadmapService) Create(ctx context.Context, in CreateRoadmapInput) (Result, error) {
	r, err := buildRoadmap(in)
	if err != nil {
		return Result{}, err
	}

	return s.exec.create(ctx, commandTypeCreateRoadmap, r)
}

// Update changes the root fields. UpdatedAt is always refreshed.
func (s RoadmapService) Update(ctx context.Context, roadmapID string, patch roadmap.RoadmapPatch) (Result, error) {
	if patch.Title != nil {
		if err := requireTitle(*patch.Title); err != nil {
			return Result{}, err
		}
	}

	return s.exec.mutate(ctx, commandTypeUpdateRoadmap, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		return r.Update(patch), "", nil
	})
}

// Delete removes a roadmap. It reports false if there was none.
func (s RoadmapService) Delete(ctx context.Context, roadmapID string) (bool, error) {
	start := time.Now()
	shell.LogCommandStart(ctx, s.exec.rt.logger, commandTypeDeleteRoadmap, roadmapID)

	deleted, err := s.exec.repo.Delete(ctx, roadmapID)
	if err != nil {
		err = errors.Join(ErrDeletingRoadmapFailed, err)
		s.exec.fail(ctx, commandTypeDeleteRoadmap, roadmapID, err, time.Since(start))

		return false, err
	}

	status := shell.StatusSuccess
	if !deleted {
		status = shell.StatusNotFound
	}

	shell.RecordCommandMetrics(ctx, s.exec.rt.metrics, commandTypeDeleteRoadmap, status, time.Since(start))

	if deleted {
		s.exec.logRemoval(ctx, roadmapID, roadmap.KindRoadmap, roadmapID)
	}

	return deleted, nil
}

// Get returns the roadmap, or false if there is none.
func (s RoadmapService) Get(ctx context.Context, roadmapID string) (roadmap.Roadmap, bool, error) {
	return s.exec.load(ctx, queryTypeGetRoadmap, roadmapID)
}

// List returns all roadmaps.
func (s RoadmapService) List(ctx context.Context) ([]roadmap.Roadmap, error) {
	start := time.Now()

	roadmaps, err := s.exec.repo.FindAll(ctx)
	if err != nil {
		err = errors.Join(ErrLoadingRoadmapFailed, err)
	}

	s.exec.observeQuery(ctx, queryTypeListRoadmaps, err, start)

	return roadmaps, err
}

// Validate runs the priority and timeframe checks. Violations are returned as data.
func (s RoadmapService) Validate(ctx context.Context, roadmapID string) (planning.ValidationResult, bool, error) {
	r, found, err := s.exec.load(ctx, queryTypeValidateRoadmap, roadmapID)
	if err != nil || !found {
		return planning.ValidationResult{}, found, err
	}

	return planning.Merge(s.exec.rt.balancer.Validate(r), s.exec.rt.normalizer.Validate(r)), true, nil
}

// Rebalance downgrades excess high-priority initiatives and saves the result.
func (s RoadmapService) Rebalance(ctx context.Context, roadmapID string) (Result, error) {
	return s.exec.mutate(ctx, commandTypeRebalanceRoadmap, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		return s.exec.rt.balancer.Rebalance(r), "", nil
	})
}

// Normalize reassigns timeframe orders to 0..n-1 and saves the result.
func (s RoadmapService) Normalize(ctx context.Context, roadmapID string) (Result, error) {
	return s.exec.mutate(ctx, commandTypeNormalizeRoadmap, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		return s.exec.rt.normalizer.NormalizeOrdering(r), "", nil
	})
}

// Suggest buckets initiative titles into short, medium and long term.
func (s RoadmapService) Suggest(ctx context.Context, roadmapID string) (planning.Structure, bool, error) {
	r, found, err := s.exec.load(ctx, queryTypeSuggestStructure, roadmapID)
	if err != nil || !found {
		return planning.Structure{}, found, err
	}

	return s.exec.rt.normalizer.SuggestStructure(r), true, nil
}

// Stats computes item and initiative counts.
func (s RoadmapService) Stats(ctx context.Context, roadmapID string) (roadmap.Stats, bool, error) {
	r, found, err := s.exec.load(ctx, queryTypeRoadmapStats, roadmapID)
	if err != nil || !found {
		return roadmap.Stats{}, found, err
	}

	return roadmap.ComputeStats(r), true, nil
}
