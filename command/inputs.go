package command

import (
	"strings"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// ItemInput describes an item to create. A zero Status defaults to planned.
type ItemInput struct {
	Title           string
	Description     string
	Status          roadmap.Status
	RelatedEntities []string
	Notes           string
}

// InitiativeInput describes an initiative to create, optionally with items.
// A zero Category defaults to feature and a zero Priority to medium.
type InitiativeInput struct {
	Title       string
	Description string
	Category    roadmap.Category
	Priority    roadmap.Priority
	Items       []ItemInput
}

// TimeframeInput describes a timeframe to create, optionally with initiatives.
type TimeframeInput struct {
	Name        string
	Order       int
	Initiatives []InitiativeInput
}

// CreateRoadmapInput describes a roadmap to create with its nested structure.
type CreateRoadmapInput struct {
	Title       string
	Description string
	Version     string
	Owner       string
	Timeframes  []TimeframeInput
}

// NoteInput describes a note to create.
type NoteInput struct {
	Title        string
	Content      string
	Category     roadmap.Category
	Priority     roadmap.Priority
	Timeline     string
	RelatedItems []string
}

func requireTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}

	return nil
}

func buildItem(in ItemInput) (roadmap.Item, error) {
	if err := requireTitle(in.Title); err != nil {
		return roadmap.Item{}, err
	}

	return roadmap.NewItem(
		in.Title,
		in.Description,
		roadmap.WithStatus(in.Status),
		roadmap.WithRelatedEntities(in.RelatedEntities...),
		roadmap.WithNotes(in.Notes),
	), nil
}

func buildInitiative(in InitiativeInput) (roadmap.Initiative, error) {
	if err := requireTitle(in.Title); err != nil {
		return roadmap.Initiative{}, err
	}

	items := make([]roadmap.Item, 0, len(in.Items))
	for _, itemIn := range in.Items {
		item, err := buildItem(itemIn)
		if err != nil {
			return roadmap.Initiative{}, err
		}

		items = append(items, item)
	}

	category := in.Category
	if category.IsZero() {
		category = roadmap.CategoryFeature
	}

	priority := in.Priority
	if priority.IsZero() {
		priority = roadmap.PriorityMedium
	}

	return roadmap.NewInitiative(in.Title, in.Description, category, priority, roadmap.WithItems(items...)), nil
}

func buildTimeframe(in TimeframeInput) (roadmap.Timeframe, error) {
	if err := requireTitle(in.Name); err != nil {
		return roadmap.Timeframe{}, err
	}

	initiatives := make([]roadmap.Initiative, 0, len(in.Initiatives))
	for _, initiativeIn := range in.Initiatives {
		initiative, err := buildInitiative(initiativeIn)
		if err != nil {
			return roadmap.Timeframe{}, err
		}

		initiatives = append(initiatives, initiative)
	}

	return roadmap.NewTimeframe(in.Name, in.Order, roadmap.WithInitiatives(initiatives...)), nil
}

func buildRoadmap(in CreateRoadmapInput) (roadmap.Roadmap, error) {
	if err := requireTitle(in.Title); err != nil {
		return roadmap.Roadmap{}, err
	}

	timeframes := make([]roadmap.Timeframe, 0, len(in.Timeframes))
	for _, timeframeIn := range in.Timeframes {
		timeframe, err := buildTimeframe(timeframeIn)
		if err != nil {
			return roadmap.Roadmap{}, err
		}

		timeframes = append(timeframes, timeframe)
	}

	return roadmap.New(in.Title, in.Description, in.Version, in.Owner, timeframes...), nil
}

func buildNote(in NoteInput) (roadmap.Note, error) {
	if err := requireTitle(in.Title); err != nil {
		return roadmap.Note{}, err
	}

	category := in.Category
	if category.IsZero() {
		category = roadmap.CategoryFeature
	}

	priority := in.Priority
	if priority.IsZero() {
		priority = roadmap.PriorityMedium
	}

	return roadmap.NewNote(in.Title, in.Content, category, priority, in.Timeline, in.RelatedItems...), nil
}
