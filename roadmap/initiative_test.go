package roadmap_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

func Test_Initiative_AddItem_WithPath_RaisesItemAdded(t *testing.T) {
	// arrange
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithInitiativeID("in-1"))
	item := roadmap.NewItem("Login", "", roadmap.WithItemID("item-1"))

	// act
	updated := initiative.AddItem(item, roadmap.PathToTimeframe("r-1", "tf-1"))

	// assert
	assert.Equal(t, 1, updated.ItemCount())
	assert.Equal(t, 0, initiative.ItemCount())
	require.Len(t, updated.PendingEvents(), 1)

	event, ok := updated.PendingEvents()[0].(roadmap.ItemAdded)
	require.True(t, ok)
	assert.Equal(t, "r-1", event.RoadmapID)
	assert.Equal(t, "tf-1", event.TimeframeID)
	assert.Equal(t, "in-1", event.InitiativeID)
	assert.Equal(t, "item-1", event.ItemID)
	assert.Equal(t, "planned", event.Status)
}

func Test_Initiative_AddItem_ReExposesItemEvents(t *testing.T) {
	// arrange
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithInitiativeID("in-1"))
	item := roadmap.NewItem("Login", "").
		Update(roadmap.ItemPatch{Status: roadmap.Ptr(roadmap.StatusBlocked)}, roadmap.PathToInitiative("r-1", "tf-1", "in-1"))

	// act
	updated := initiative.AddItem(item, roadmap.PathToTimeframe("r-1", "tf-1"))

	// assert
	events := updated.PendingEvents()
	require.Len(t, events, 2)
	assert.Equal(t, roadmap.ItemAddedEventType, events[0].EventType())
	assert.Equal(t, roadmap.ItemStatusChangedEventType, events[1].EventType())
}

func Test_Initiative_AddItem_WithoutPath_RaisesNoEvent(t *testing.T) {
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh)

	updated := initiative.AddItem(roadmap.NewItem("Login", ""), roadmap.EventPath{})

	assert.Empty(t, updated.PendingEvents())
}

func Test_Initiative_AddItem_DuplicateID_LastWriteWins(t *testing.T) {
	// arrange
	first := roadmap.NewItem("first", "", roadmap.WithItemID("dup"))
	other := roadmap.NewItem("other", "", roadmap.WithItemID("other"))
	second := roadmap.NewItem("second", "", roadmap.WithItemID("dup"))
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithItems(first, other))

	// act
	updated := initiative.AddItem(second, roadmap.EventPath{})

	// assert
	require.Equal(t, 2, updated.ItemCount())
	assert.Equal(t, "second", updated.Items()[0].Title(), "the replaced item keeps its position")
	assert.Equal(t, "other", updated.Items()[1].Title())
}

func Test_Initiative_RemoveItem_UnknownID_FailsWithNotFound(t *testing.T) {
	// arrange
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithInitiativeID("in-1"))

	// act
	_, err := initiative.RemoveItem("missing")

	// assert
	assert.ErrorIs(t, err, roadmap.ErrNotFound)

	var notFound roadmap.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, roadmap.KindItem, notFound.Kind)
	assert.Equal(t, "missing", notFound.ID)
	assert.Equal(t, roadmap.KindInitiative, notFound.ContainerKind)
	assert.Equal(t, "in-1", notFound.ContainerID)
}

func Test_Initiative_RemoveItem(t *testing.T) {
	item := roadmap.NewItem("Login", "")
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithItems(item))

	updated, err := initiative.RemoveItem(item.ID())

	require.NoError(t, err)
	assert.Equal(t, 0, updated.ItemCount())
	_, found := updated.Item(item.ID())
	assert.False(t, found)
	_, found = initiative.Item(item.ID())
	assert.True(t, found)
}

func Test_Initiative_Update_RaisesPriorityAndCategoryEvents(t *testing.T) {
	// arrange
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh, roadmap.WithInitiativeID("in-1"))
	path := roadmap.PathToTimeframe("r-1", "tf-1")

	// act
	updated := initiative.Update(roadmap.InitiativePatch{
		Category: roadmap.Ptr(roadmap.CategoryTechDebt),
		Priority: roadmap.Ptr(roadmap.PriorityLow),
	}, path)

	// assert
	events := updated.PendingEvents()
	require.Len(t, events, 2)

	categoryChanged, ok := events[0].(roadmap.InitiativeCategoryChanged)
	require.True(t, ok)
	assert.Equal(t, "in-1", categoryChanged.InitiativeID)
	assert.Equal(t, "feature", categoryChanged.OldCategory)
	assert.Equal(t, "tech-debt", categoryChanged.NewCategory)

	priorityChanged, ok := events[1].(roadmap.InitiativePriorityChanged)
	require.True(t, ok)
	assert.Equal(t, "high", priorityChanged.OldPriority)
	assert.Equal(t, "low", priorityChanged.NewPriority)
}

func Test_Initiative_Update_SameValues_RaisesNoEvents(t *testing.T) {
	// arrange
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh)

	// act
	updated := initiative.Update(roadmap.InitiativePatch{
		Category: roadmap.Ptr(roadmap.CategoryFeature),
		Priority: roadmap.Ptr(roadmap.PriorityHigh),
	}, roadmap.PathToTimeframe("r-1", "tf-1"))

	// assert
	assert.Empty(t, updated.PendingEvents())
	assert.Equal(t, initiative.ToRecord(), updated.ToRecord())
}

func Test_Initiative_UpdatePriority(t *testing.T) {
	initiative := roadmap.NewInitiative("Auth", "", roadmap.CategoryFeature, roadmap.PriorityHigh)

	updated := initiative.UpdatePriority(roadmap.PriorityMedium, roadmap.PathToTimeframe("r-1", "tf-1"))

	assert.Equal(t, roadmap.PriorityMedium, updated.Priority())
	require.Len(t, updated.PendingEvents(), 1)
	assert.Equal(t, roadmap.InitiativePriorityChangedEventType, updated.PendingEvents()[0].EventType())
}
