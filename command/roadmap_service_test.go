package command_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/command"
	"github.com/AntonStoeckl/roadmap-aggregate-go/dispatch"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/shell"
	"github.com/AntonStoeckl/roadmap-aggregate-go/store/memstore"
	"github.com/AntonStoeckl/roadmap-aggregate-go/testutil/testdoubles"
)

func Test_RoadmapService_Create_SavesNestedStructureAtRevisionOne(t *testing.T) {
	// arrange
	f := givenFixture(t)
	ctx := context.Background()

	// act
	result, err := f.facade.Roadmaps.Create(ctx, command.CreateRoadmapInput{
		Title: "Product",
		Timeframes: []command.TimeframeInput{{
			Name: "Q1",
			Initiatives: []command.InitiativeInput{{
				Title:    "Auth",
				Priority: roadmap.PriorityHigh,
				Items:    []command.ItemInput{{Title: "Login", Status: roadmap.StatusInProgress}},
			}},
		}},
	})

	// assert
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, result.Roadmap.ID(), result.CreatedID)

	stored, found, err := f.facade.Roadmaps.Get(ctx, result.CreatedID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, uint64(1), stored.Revision())

	placed := stored.Initiatives()
	require.Len(t, placed, 1)
	assert.Equal(t, roadmap.CategoryFeature, placed[0].Initiative.Category())
	assert.Equal(t, roadmap.StatusInProgress, placed[0].Initiative.Items()[0].Status())

	assert.Equal(t, []string{roadmap.RoadmapCreatedEventType}, f.recorder.types())
}

func Test_RoadmapService_Create_EmptyTitle_Fails(t *testing.T) {
	f := givenFixture(t)

	_, err := f.facade.Roadmaps.Create(context.Background(), command.CreateRoadmapInput{Title: "  "})

	assert.ErrorIs(t, err, command.ErrEmptyTitle)
}

func Test_RoadmapService_Update_UnknownRoadmap_IsAbsentNotError(t *testing.T) {
	// arrange
	f := givenFixture(t)

	// act
	result, err := f.facade.Roadmaps.Update(context.Background(), "missing", roadmap.RoadmapPatch{Title: roadmap.Ptr("x")})

	// assert
	require.NoError(t, err)
	assert.False(t, result.Found)
	assert.Empty(t, result.Events)
	assert.Empty(t, f.recorder.types())
}

func Test_RoadmapService_Update_RetriesOnConcurrencyConflict(t *testing.T) {
	// arrange
	ctx := context.Background()
	repo := &racingRepository{RoadmapRepository: memstore.NewRoadmapRepository()}
	service := command.NewRoadmapService(repo, command.WithRetryOptions(shell.WithBaseDelay(0)))

	created, err := service.Create(ctx, command.CreateRoadmapInput{Title: "Product", Owner: "alice"})
	require.NoError(t, err)

	// act
	result, err := service.Update(ctx, created.CreatedID, roadmap.RoadmapPatch{Title: roadmap.Ptr("Platform")})

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, result.Meta.RetryAttempts)

	stored, _, err := repo.FindByID(ctx, created.CreatedID)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stored.Revision())
	assert.Equal(t, "Platform", stored.Title())
	assert.Equal(t, "intruder", stored.Owner(), "the competing write must not be lost")
}

func Test_RoadmapService_Delete(t *testing.T) {
	// arrange
	logger := testdoubles.NewLoggerSpy()
	f := givenFixture(t, command.WithLogger(logger))
	roadmapID, _, _ := givenTwoTimeframes(t, f)

	// act
	deleted, err := f.facade.Roadmaps.Delete(context.Background(), roadmapID)
	require.NoError(t, err)

	deletedAgain, err := f.facade.Roadmaps.Delete(context.Background(), roadmapID)
	require.NoError(t, err)

	// assert
	assert.True(t, deleted)
	assert.False(t, deletedAgain)
	assert.True(t, logger.HasMessage(testdoubles.LevelInfo, "roadmap entity removed"))

	all, err := f.facade.Roadmaps.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_RoadmapService_ValidateAndRebalance(t *testing.T) {
	// arrange
	f := givenFixture(t)
	ctx := context.Background()

	initiatives := make([]command.InitiativeInput, 0, 8)
	for _, title := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		initiatives = append(initiatives, command.InitiativeInput{Title: title, Priority: roadmap.PriorityHigh})
	}

	created, err := f.facade.Roadmaps.Create(ctx, command.CreateRoadmapInput{
		Title:      "Crowded",
		Timeframes: []command.TimeframeInput{{Name: "Now", Initiatives: initiatives}},
	})
	require.NoError(t, err)

	// act
	before, found, err := f.facade.Roadmaps.Validate(ctx, created.CreatedID)
	require.NoError(t, err)
	require.True(t, found)

	rebalanced, err := f.facade.Roadmaps.Rebalance(ctx, created.CreatedID)
	require.NoError(t, err)

	after, _, err := f.facade.Roadmaps.Validate(ctx, created.CreatedID)
	require.NoError(t, err)

	// assert
	assert.False(t, before.Valid)
	assert.Contains(t, before.Message, "too many high-priority initiatives: 8 > 5")
	assert.True(t, after.Valid)
	assert.Len(t, rebalanced.Events, 3)

	stats, _, err := f.facade.Roadmaps.Stats(ctx, created.CreatedID)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.InitiativesByLevel["high"])
	assert.Equal(t, 3, stats.InitiativesByLevel["medium"])
}

func Test_RoadmapService_Normalize(t *testing.T) {
	// arrange
	f := givenFixture(t)
	ctx := context.Background()

	created, err := f.facade.Roadmaps.Create(ctx, command.CreateRoadmapInput{
		Title: "Gappy",
		Timeframes: []command.TimeframeInput{
			{Name: "late-a", Order: 5},
			{Name: "late-b", Order: 5},
			{Name: "early", Order: 2},
		},
	})
	require.NoError(t, err)

	// act
	_, err = f.facade.Roadmaps.Normalize(ctx, created.CreatedID)
	require.NoError(t, err)

	// assert
	stored, _, err := f.facade.Roadmaps.Get(ctx, created.CreatedID)
	require.NoError(t, err)

	names := make([]string, 0, 3)
	orders := make([]int, 0, 3)
	for _, timeframe := range stored.Timeframes() {
		names = append(names, timeframe.Name())
		orders = append(orders, timeframe.Order())
	}

	assert.Equal(t, []string{"early", "late-a", "late-b"}, names)
	assert.Equal(t, []int{0, 1, 2}, orders)
}

func Test_RoadmapService_DispatchesAfterSave(t *testing.T) {
	// arrange
	ctx := context.Background()
	repo := memstore.NewRoadmapRepository()
	dispatcher := dispatch.NewDispatcher()
	service := command.NewRoadmapService(repo, command.WithDispatcher(dispatcher))

	var revisionSeenByHandler uint64
	dispatcher.Register(roadmap.RoadmapUpdatedEventType, func(ctx context.Context, event roadmap.DomainEvent) error {
		stored, _, err := repo.FindByID(ctx, event.AggregateID())
		revisionSeenByHandler = stored.Revision()

		return err
	})

	created, err := service.Create(ctx, command.CreateRoadmapInput{Title: "Product"})
	require.NoError(t, err)

	// act
	_, err = service.Update(ctx, created.CreatedID, roadmap.RoadmapPatch{Owner: roadmap.Ptr("bob")})

	// assert
	require.NoError(t, err)
	assert.Equal(t, uint64(2), revisionSeenByHandler)
}

func Test_RoadmapService_RecordsCommandMetrics(t *testing.T) {
	// arrange
	metrics := testdoubles.NewMetricsCollectorSpy()
	f := givenFixture(t, command.WithMetrics(metrics))

	// act
	_, err := f.facade.Roadmaps.Create(context.Background(), command.CreateRoadmapInput{Title: "Product"})

	// assert
	require.NoError(t, err)

	calls := metrics.CountersFor(shell.CommandCallsMetric)
	require.Len(t, calls, 1)
	assert.Equal(t, "CreateRoadmap", calls[0].Labels[shell.LogAttrCommandType])
	assert.Equal(t, shell.StatusSuccess, calls[0].Labels[shell.LogAttrStatus])
}
