package command

import (
	"context"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

const (
	commandTypeAddItem             = "AddItem"
	commandTypeUpdateItem          = "UpdateItem"
	commandTypeRemoveItem          = "RemoveItem"
	commandTypeMoveItem            = "MoveItem"
	commandTypeAddRelatedEntity    = "AddRelatedEntity"
	commandTypeRemoveRelatedEntity = "RemoveRelatedEntity"

	queryTypeGetItem = "GetItem"
)

// ItemLocation addresses an initiative inside a roadmap.
type ItemLocation struct {
	TimeframeID  string
	InitiativeID string
}

func (l ItemLocation) path() roadmap.EventPath {
	return roadmap.EventPath{TimeframeID: l.TimeframeID, InitiativeID: l.InitiativeID}
}

// ItemService handles items inside initiatives.
type ItemService struct {
	exec roadmapExecutor
}

// NewItemService creates an ItemService.
func NewItemService(repo RoadmapRepository, opts ...Option) ItemService {
	return ItemService{exec: roadmapExecutor{repo: repo, rt: newRuntime(opts...)}}
}

// Add creates an item in an initiative and raises ItemAdded.
func (s ItemService) Add(ctx context.Context, roadmapID string, at ItemLocation, in ItemInput) (Result, error) {
	item, err := buildItem(in)
	if err != nil {
		return Result{}, err
	}

	return s.exec.mutate(ctx, commandTypeAddItem, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		timeframe, initiative, err := initiativeIn(r, at.TimeframeID, at.InitiativeID)
		if err != nil {
			return r, "", err
		}

		initiative = initiative.AddItem(item, roadmap.PathToTimeframe(r.ID(), at.TimeframeID))

		return withInitiative(r, timeframe, initiative), item.ID(), nil
	})
}

// Update applies a patch. A status change raises ItemStatusChanged.
// An unknown item fails with a NotFoundError and nothing is saved.
func (s ItemService) Update(
	ctx context.Context,
	roadmapID string,
	at ItemLocation,
	itemID string,
	patch roadmap.ItemPatch,
) (Result, error) {
	if patch.Title != nil {
		if err := requireTitle(*patch.Title); err != nil {
			return Result{}, err
		}
	}

	return s.changeItem(ctx, commandTypeUpdateItem, roadmapID, at, itemID, func(r roadmap.Roadmap, item roadmap.Item) roadmap.Item {
		return item.Update(patch, roadmap.PathToInitiative(r.ID(), at.TimeframeID, at.InitiativeID))
	})
}

// AddRelatedEntity links an item to another entity. Linking twice is a no-op.
func (s ItemService) AddRelatedEntity(ctx context.Context, roadmapID string, at ItemLocation, itemID, entityID string) (Result, error) {
	return s.changeItem(ctx, commandTypeAddRelatedEntity, roadmapID, at, itemID, func(_ roadmap.Roadmap, item roadmap.Item) roadmap.Item {
		return item.AddRelatedEntity(entityID)
	})
}

// RemoveRelatedEntity unlinks an entity. Unlinking an absent id is a no-op.
func (s ItemService) RemoveRelatedEntity(ctx context.Context, roadmapID string, at ItemLocation, itemID, entityID string) (Result, error) {
	return s.changeItem(ctx, commandTypeRemoveRelatedEntity, roadmapID, at, itemID, func(_ roadmap.Roadmap, item roadmap.Item) roadmap.Item {
		return item.RemoveRelatedEntity(entityID)
	})
}

// Remove deletes an item.
func (s ItemService) Remove(ctx context.Context, roadmapID string, at ItemLocation, itemID string) (Result, error) {
	result, err := s.exec.mutate(ctx, commandTypeRemoveItem, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		timeframe, initiative, err := initiativeIn(r, at.TimeframeID, at.InitiativeID)
		if err != nil {
			return r, "", err
		}

		initiative, err = initiative.RemoveItem(itemID)
		if err != nil {
			return r, "", err
		}

		return withInitiative(r, timeframe, initiative), "", nil
	})

	if err == nil && result.Found {
		s.exec.logRemoval(ctx, roadmapID, roadmap.KindItem, itemID)
	}

	return result, err
}

// Move relocates an item to another initiative, possibly in another timeframe.
// Either both halves persist or neither.
func (s ItemService) Move(ctx context.Context, roadmapID, itemID string, from, to ItemLocation) (Result, error) {
	return s.exec.mutate(ctx, commandTypeMoveItem, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		next, err := r.MoveItem(itemID, from.path(), to.path())
		return next, "", err
	})
}

// Get returns an item. It reports false if the roadmap does not exist.
func (s ItemService) Get(ctx context.Context, roadmapID string, at ItemLocation, itemID string) (roadmap.Item, bool, error) {
	r, found, err := s.exec.load(ctx, queryTypeGetItem, roadmapID)
	if err != nil || !found {
		return roadmap.Item{}, found, err
	}

	_, _, item, err := itemIn(r, at.TimeframeID, at.InitiativeID, itemID)

	return item, true, err
}

func (s ItemService) changeItem(
	ctx context.Context,
	commandType, roadmapID string,
	at ItemLocation,
	itemID string,
	apply func(r roadmap.Roadmap, item roadmap.Item) roadmap.Item,
) (Result, error) {
	return s.exec.mutate(ctx, commandType, roadmapID, func(r roadmap.Roadmap) (roadmap.Roadmap, string, error) {
		timeframe, initiative, item, err := itemIn(r, at.TimeframeID, at.InitiativeID, itemID)
		if err != nil {
			return r, "", err
		}

		return withItem(r, timeframe, initiative, apply(r, item)), "", nil
	})
}
