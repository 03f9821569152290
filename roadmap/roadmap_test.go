package roadmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

func Test_New_FoldsInNestedTimeframes(t *testing.T) {
	// arrange
	item := roadmap.NewItem("Login", "")
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithItems(item))
	timeframe := roadmap.NewTimeframe("Q1", 0, roadmap.WithInitiatives(initiative))

	// act
	r := roadmap.New("Product", "desc", "1.0", "alice", timeframe)

	// assert
	assert.NotEmpty(t, r.ID())
	assert.Equal(t, 1, r.TimeframeCount())
	assert.Equal(t, uint64(0), r.Revision())
	assert.Equal(t, r.CreatedAt(), r.UpdatedAt())

	placed := r.Initiatives()
	require.Len(t, placed, 1)
	assert.Equal(t, timeframe.ID(), placed[0].TimeframeID)
	assert.Equal(t, 1, placed[0].Initiative.ItemCount())

	events := r.PendingEvents()
	require.Len(t, events, 1)
	created, ok := events[0].(roadmap.RoadmapCreated)
	require.True(t, ok)
	assert.Equal(t, r.ID(), created.RoadmapID)
	assert.Equal(t, "Product", created.Title)
	assert.Equal(t, "alice", created.Owner)
}

func Test_Roadmap_Timeframes_SortedByOrderWithStableTies(t *testing.T) {
	// arrange
	late := roadmap.NewTimeframe("late", 5)
	tieA := roadmap.NewTimeframe("tie-a", 1)
	early := roadmap.NewTimeframe("early", 0)
	tieB := roadmap.NewTimeframe("tie-b", 1)

	// act
	r := roadmap.New("R", "", "", "", late, tieA, early, tieB)

	// assert
	names := make([]string, 0, 4)
	for _, timeframe := range r.Timeframes() {
		names = append(names, timeframe.Name())
	}

	assert.Equal(t, []string{"early", "tie-a", "tie-b", "late"}, names)
}

func Test_Roadmap_AddTimeframe_DuplicateID_LastWriteWins(t *testing.T) {
	// arrange
	r := roadmap.New("R", "", "", "", roadmap.NewTimeframe("first", 0, roadmap.WithTimeframeID("tf")))

	// act
	r = r.AddTimeframe(roadmap.NewTimeframe("second", 0, roadmap.WithTimeframeID("tf")))

	// assert
	require.Equal(t, 1, r.TimeframeCount())
	timeframe, found := r.Timeframe("tf")
	require.True(t, found)
	assert.Equal(t, "second", timeframe.Name())
}

func Test_Roadmap_PlanTimeframe_RaisesTimeframeAdded(t *testing.T) {
	// arrange
	r := roadmap.New("R", "", "", "")
	timeframe := roadmap.NewTimeframe("Q2", 1)

	// act
	updated := r.PlanTimeframe(timeframe)

	// assert
	events := updated.PendingEvents()
	require.Len(t, events, 2)
	added, ok := events[1].(roadmap.TimeframeAdded)
	require.True(t, ok)
	assert.Equal(t, timeframe.ID(), added.TimeframeID)
	assert.Equal(t, 1, added.Order)
	assert.Len(t, r.PendingEvents(), 1)
}

func Test_Roadmap_RemoveTimeframe_UnknownID_FailsWithNotFound(t *testing.T) {
	r := roadmap.New("R", "", "", "")

	unchanged, err := r.RemoveTimeframe("missing")

	assert.ErrorIs(t, err, roadmap.ErrNotFound)
	assert.Equal(t, r.ToRecord(), unchanged.ToRecord())
}

func Test_Roadmap_Update_RaisesRoadmapUpdatedWithChangedFields(t *testing.T) {
	// arrange
	r := roadmap.New("R", "desc", "1.0", "alice")

	// act
	updated := r.Update(roadmap.RoadmapPatch{
		Title:   roadmap.Ptr("R2"),
		Version: roadmap.Ptr("1.0"),
		Owner:   roadmap.Ptr("bob"),
	})

	// assert
	assert.Equal(t, "R2", updated.Title())
	assert.Equal(t, "bob", updated.Owner())
	assert.Equal(t, "R", r.Title())
	assert.False(t, updated.UpdatedAt().Before(r.UpdatedAt()))

	events := updated.PendingEvents()
	require.Len(t, events, 2)
	changed, ok := events[1].(roadmap.RoadmapUpdated)
	require.True(t, ok)
	assert.Equal(t, []string{"title", "owner"}, changed.ChangedFields)
}

func Test_Roadmap_Update_EmptyPatch_ChangesOnlyUpdatedAt(t *testing.T) {
	// arrange
	r := roadmap.New("R", "desc", "1.0", "alice", roadmap.NewTimeframe("Q1", 0))

	// act
	updated := r.Update(roadmap.RoadmapPatch{})

	// assert
	before := r.ToRecord()
	after := updated.ToRecord()
	after.UpdatedAt = before.UpdatedAt
	assert.Equal(t, before, after)
	assert.Len(t, updated.PendingEvents(), 1)
}

func Test_Roadmap_MoveInitiative_AddThenMove(t *testing.T) {
	// arrange
	t1 := roadmap.NewTimeframe("T1", 0)
	t2 := roadmap.NewTimeframe("T2", 1)
	r := roadmap.New("R", "", "", "", t1, t2)

	initiative := roadmap.NewInitiative("I", "", roadmap.CategoryFeature, roadmap.PriorityHigh)
	item := roadmap.NewItem("X", "")
	initiative = initiative.AddItem(item, roadmap.PathToTimeframe(r.ID(), t1.ID()))
	t1 = t1.AddInitiative(initiative, roadmap.PathToTimeframe(r.ID(), ""))
	r = r.AddTimeframe(t1)

	// act
	moved, err := r.MoveInitiative(initiative.ID(), t1.ID(), t2.ID())

	// assert
	require.NoError(t, err)

	source, _ := moved.Timeframe(t1.ID())
	target, _ := moved.Timeframe(t2.ID())
	assert.Equal(t, 0, source.InitiativeCount())
	require.Equal(t, 1, target.InitiativeCount())

	movedInitiative, found := target.Initiative(initiative.ID())
	require.True(t, found)
	_, found = movedInitiative.Item(item.ID())
	assert.True(t, found)

	eventTypes := make([]string, 0)
	for _, event := range moved.PendingEvents() {
		eventTypes = append(eventTypes, event.EventType())
	}

	assert.Equal(t, []string{
		roadmap.RoadmapCreatedEventType,
		roadmap.InitiativeMovedEventType,
		roadmap.InitiativeAddedEventType,
		roadmap.ItemAddedEventType,
	}, eventTypes)
}

func Test_Roadmap_MoveInitiative_UnknownTarget_LeavesRoadmapUnchanged(t *testing.T) {
	// arrange
	initiative := roadmap.NewInitiative("I", "", roadmap.CategoryFeature, roadmap.PriorityHigh)
	t1 := roadmap.NewTimeframe("T1", 0, roadmap.WithInitiatives(initiative))
	r := roadmap.New("R", "", "", "", t1)

	// act
	unchanged, err := r.MoveInitiative(initiative.ID(), t1.ID(), "missing")

	// assert
	assert.ErrorIs(t, err, roadmap.ErrNotFound)
	assert.Equal(t, r.ToRecord(), unchanged.ToRecord())
}

func Test_Roadmap_MoveInitiative_SameTimeframe_IsNoOp(t *testing.T) {
	initiative := roadmap.NewInitiative("I", "", roadmap.CategoryFeature, roadmap.PriorityHigh)
	t1 := roadmap.NewTimeframe("T1", 0, roadmap.WithInitiatives(initiative))
	r := roadmap.New("R", "", "", "", t1)

	unchanged, err := r.MoveInitiative(initiative.ID(), t1.ID(), t1.ID())

	require.NoError(t, err)
	assert.Len(t, unchanged.PendingEvents(), 1)
}

func Test_Roadmap_MoveItem_BetweenTimeframes(t *testing.T) {
	// arrange
	item := roadmap.NewItem("X", "", roadmap.WithStatus(roadmap.StatusInProgress))
	source := roadmap.NewInitiative("A", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithItems(item))
	target := roadmap.NewInitiative("B", "", roadmap.CategoryResearch, roadmap.PriorityLow)
	t1 := roadmap.NewTimeframe("T1", 0, roadmap.WithInitiatives(source))
	t2 := roadmap.NewTimeframe("T2", 1, roadmap.WithInitiatives(target))
	r := roadmap.New("R", "", "", "", t1, t2)

	from := roadmap.EventPath{TimeframeID: t1.ID(), InitiativeID: source.ID()}
	to := roadmap.EventPath{TimeframeID: t2.ID(), InitiativeID: target.ID()}

	// act
	moved, err := r.MoveItem(item.ID(), from, to)

	// assert
	require.NoError(t, err)

	tf1, _ := moved.Timeframe(t1.ID())
	a, _ := tf1.Initiative(source.ID())
	assert.Equal(t, 0, a.ItemCount())

	tf2, _ := moved.Timeframe(t2.ID())
	b, _ := tf2.Initiative(target.ID())
	movedItem, found := b.Item(item.ID())
	require.True(t, found)
	assert.Equal(t, roadmap.StatusInProgress, movedItem.Status())

	events := moved.PendingEvents()
	require.Len(t, events, 2)
	itemMoved, ok := events[1].(roadmap.ItemMoved)
	require.True(t, ok)
	assert.Equal(t, r.ID(), itemMoved.RoadmapID)
	assert.Equal(t, source.ID(), itemMoved.FromInitiativeID)
	assert.Equal(t, target.ID(), itemMoved.ToInitiativeID)
}

func Test_Roadmap_MoveItem_UnknownItem_FailsWithNotFound(t *testing.T) {
	source := roadmap.NewInitiative("A", "", roadmap.CategoryFeature, roadmap.PriorityHigh)
	t1 := roadmap.NewTimeframe("T1", 0, roadmap.WithInitiatives(source))
	r := roadmap.New("R", "", "", "", t1)
	path := roadmap.EventPath{TimeframeID: t1.ID(), InitiativeID: source.ID()}

	_, err := r.MoveItem("missing", path, path)

	assert.ErrorIs(t, err, roadmap.ErrNotFound)
	assert.Contains(t, err.Error(), "missing")
	assert.Contains(t, err.Error(), source.ID())
}

func Test_Roadmap_PendingEvents_RootFirstThenTimeframesByOrder(t *testing.T) {
	// arrange
	later := roadmap.NewTimeframe("later", 1)
	sooner := roadmap.NewTimeframe("sooner", 0)
	r := roadmap.New("R", "", "", "", later, sooner)

	laterInitiative := roadmap.NewInitiative("L", "", roadmap.CategoryFeature, roadmap.PriorityLow)
	soonerInitiative := roadmap.NewInitiative("S", "", roadmap.CategoryFeature, roadmap.PriorityLow)

	r = r.AddTimeframe(later.AddInitiative(laterInitiative, roadmap.PathToTimeframe(r.ID(), "")))
	r = r.AddTimeframe(sooner.AddInitiative(soonerInitiative, roadmap.PathToTimeframe(r.ID(), "")))

	// act
	events := r.PendingEvents()

	// assert
	require.Len(t, events, 3)
	assert.Equal(t, roadmap.RoadmapCreatedEventType, events[0].EventType())
	assert.Equal(t, soonerInitiative.ID(), events[1].(roadmap.InitiativeAdded).InitiativeID)
	assert.Equal(t, laterInitiative.ID(), events[2].(roadmap.InitiativeAdded).InitiativeID)
}
