package command

import (
	"context"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// ItemParams is the string-typed shape of an item to create. An empty Status means planned.
type ItemParams struct {
	Title           string   `json:"title" yaml:"title"`
	Description     string   `json:"description" yaml:"description"`
	Status          string   `json:"status" yaml:"status"`
	RelatedEntities []string `json:"relatedEntities" yaml:"relatedEntities"`
	Notes           string   `json:"notes" yaml:"notes"`
}

// InitiativeParams is the string-typed shape of an initiative to create.
type InitiativeParams struct {
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Category    string       `json:"category" yaml:"category"`
	Priority    string       `json:"priority" yaml:"priority"`
	Items       []ItemParams `json:"items" yaml:"items"`
}

// TimeframeParams is the string-typed shape of a timeframe to create.
type TimeframeParams struct {
	Name        string             `json:"name" yaml:"name"`
	Order       int                `json:"order" yaml:"order"`
	Initiatives []InitiativeParams `json:"initiatives" yaml:"initiatives"`
}

// RoadmapParams is the string-typed shape of a roadmap to create.
type RoadmapParams struct {
	Title       string            `json:"title" yaml:"title"`
	Description string            `json:"description" yaml:"description"`
	Version     string            `json:"version" yaml:"version"`
	Owner       string            `json:"owner" yaml:"owner"`
	Timeframes  []TimeframeParams `json:"timeframes" yaml:"timeframes"`
}

// InitiativeUpdateParams is the string-typed patch of an initiative. Nil fields are left untouched.
type InitiativeUpdateParams struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
}

// ItemUpdateParams is the string-typed patch of an item. Nil fields are left untouched.
type ItemUpdateParams struct {
	Title           *string
	Description     *string
	Status          *string
	RelatedEntities *[]string
	Notes           *string
}

// NoteParams is the string-typed shape of a note to create.
type NoteParams struct {
	Title        string   `json:"title" yaml:"title"`
	Content      string   `json:"content" yaml:"content"`
	Category     string   `json:"category" yaml:"category"`
	Priority     string   `json:"priority" yaml:"priority"`
	Timeline     string   `json:"timeline" yaml:"timeline"`
	RelatedItems []string `json:"relatedItems" yaml:"relatedItems"`
}

// Facade bundles the services and accepts free-form strings for status, priority and category.
// Unknown values fail with roadmap.ErrUnknownEnumValue before anything is loaded.
type Facade struct {
	Roadmaps    RoadmapService
	Timeframes  TimeframeService
	Initiatives InitiativeService
	Items       ItemService
	Notes       NoteService
}

// NewFacade wires all services with the same options.
func NewFacade(roadmaps RoadmapRepository, notes NoteRepository, opts ...Option) Facade {
	return Facade{
		Roadmaps:    NewRoadmapService(roadmaps, opts...),
		Timeframes:  NewTimeframeService(roadmaps, opts...),
		Initiatives: NewInitiativeService(roadmaps, opts...),
		Items:       NewItemService(roadmaps, opts...),
		Notes:       NewNoteService(notes, opts...),
	}
}

// CreateRoadmap creates a roadmap from nested params.
func (f Facade) CreateRoadmap(ctx context.Context, params RoadmapParams) (Result, error) {
	timeframes, err := timeframeInputs(params.Timeframes)
	if err != nil {
		return Result{}, err
	}

	return f.Roadmaps.Create(ctx, CreateRoadmapInput{
		Title:       params.Title,
		Description: params.Description,
		Version:     params.Version,
		Owner:       params.Owner,
		Timeframes:  timeframes,
	})
}

// AddTimeframe adds a timeframe from params.
func (f Facade) AddTimeframe(ctx context.Context, roadmapID string, params TimeframeParams) (Result, error) {
	in, err := timeframeInput(params)
	if err != nil {
		return Result{}, err
	}

	return f.Timeframes.Add(ctx, roadmapID, in)
}

// AddInitiative adds an initiative from params.
func (f Facade) AddInitiative(ctx context.Context, roadmapID, timeframeID string, params InitiativeParams) (Result, error) {
	in, err := initiativeInput(params)
	if err != nil {
		return Result{}, err
	}

	return f.Initiatives.Add(ctx, roadmapID, timeframeID, in)
}

// UpdateInitiative applies a string-typed patch.
func (f Facade) UpdateInitiative(
	ctx context.Context,
	roadmapID, timeframeID, initiativeID string,
	params InitiativeUpdateParams,
) (Result, error) {
	patch := roadmap.InitiativePatch{Title: params.Title, Description: params.Description}

	if params.Category != nil {
		category, err := roadmap.ParseCategory(*params.Category)
		if err != nil {
			return Result{}, err
		}

		patch.Category = &category
	}

	if params.Priority != nil {
		priority, err := roadmap.ParsePriority(*params.Priority)
		if err != nil {
			return Result{}, err
		}

		patch.Priority = &priority
	}

	return f.Initiatives.Update(ctx, roadmapID, timeframeID, initiativeID, patch)
}

// UpdateInitiativePriority changes only the priority.
func (f Facade) UpdateInitiativePriority(ctx context.Context, roadmapID, timeframeID, initiativeID, priority string) (Result, error) {
	return f.UpdateInitiative(ctx, roadmapID, timeframeID, initiativeID, InitiativeUpdateParams{Priority: &priority})
}

// MoveInitiative moves an initiative between timeframes.
func (f Facade) MoveInitiative(ctx context.Context, roadmapID, initiativeID, fromTimeframeID, toTimeframeID string) (Result, error) {
	return f.Initiatives.Move(ctx, roadmapID, initiativeID, fromTimeframeID, toTimeframeID)
}

// AddItem adds an item from params.
func (f Facade) AddItem(ctx context.Context, roadmapID, timeframeID, initiativeID string, params ItemParams) (Result, error) {
	in, err := itemInput(params)
	if err != nil {
		return Result{}, err
	}

	return f.Items.Add(ctx, roadmapID, ItemLocation{TimeframeID: timeframeID, InitiativeID: initiativeID}, in)
}

// UpdateItem applies a string-typed patch.
func (f Facade) UpdateItem(
	ctx context.Context,
	roadmapID, timeframeID, initiativeID, itemID string,
	params ItemUpdateParams,
) (Result, error) {
	patch := roadmap.ItemPatch{
		Title:           params.Title,
		Description:     params.Description,
		RelatedEntities: params.RelatedEntities,
		Notes:           params.Notes,
	}

	if params.Status != nil {
		status, err := roadmap.ParseStatus(*params.Status)
		if err != nil {
			return Result{}, err
		}

		patch.Status = &status
	}

	at := ItemLocation{TimeframeID: timeframeID, InitiativeID: initiativeID}

	return f.Items.Update(ctx, roadmapID, at, itemID, patch)
}

// UpdateItemStatus changes only the status.
func (f Facade) UpdateItemStatus(ctx context.Context, roadmapID, timeframeID, initiativeID, itemID, status string) (Result, error) {
	return f.UpdateItem(ctx, roadmapID, timeframeID, initiativeID, itemID, ItemUpdateParams{Status: &status})
}

// MoveItem moves an item between initiatives.
func (f Facade) MoveItem(
	ctx context.Context,
	roadmapID, itemID string,
	fromTimeframeID, fromInitiativeID string,
	toTimeframeID, toInitiativeID string,
) (Result, error) {
	from := ItemLocation{TimeframeID: fromTimeframeID, InitiativeID: fromInitiativeID}
	to := ItemLocation{TimeframeID: toTimeframeID, InitiativeID: toInitiativeID}

	return f.Items.Move(ctx, roadmapID, itemID, from, to)
}

// CreateNote creates a note from params.
func (f Facade) CreateNote(ctx context.Context, params NoteParams) (roadmap.Note, error) {
	category, err := optionalCategory(params.Category)
	if err != nil {
		return roadmap.Note{}, err
	}

	priority, err := optionalPriority(params.Priority)
	if err != nil {
		return roadmap.Note{}, err
	}

	return f.Notes.Create(ctx, NoteInput{
		Title:        params.Title,
		Content:      params.Content,
		Category:     category,
		Priority:     priority,
		Timeline:     params.Timeline,
		RelatedItems: params.RelatedItems,
	})
}

// NotesByCategory lists notes of a category given as string.
func (f Facade) NotesByCategory(ctx context.Context, category string) ([]roadmap.Note, error) {
	parsed, err := roadmap.ParseCategory(category)
	if err != nil {
		return nil, err
	}

	return f.Notes.ByCategory(ctx, parsed)
}

// NotesByPriority lists notes of a priority given as string.
func (f Facade) NotesByPriority(ctx context.Context, priority string) ([]roadmap.Note, error) {
	parsed, err := roadmap.ParsePriority(priority)
	if err != nil {
		return nil, err
	}

	return f.Notes.ByPriority(ctx, parsed)
}

func itemInput(params ItemParams) (ItemInput, error) {
	var status roadmap.Status

	if params.Status != "" {
		parsed, err := roadmap.ParseStatus(params.Status)
		if err != nil {
			return ItemInput{}, err
		}

		status = parsed
	}

	return ItemInput{
		Title:           params.Title,
		Description:     params.Description,
		Status:          status,
		RelatedEntities: params.RelatedEntities,
		Notes:           params.Notes,
	}, nil
}

func initiativeInput(params InitiativeParams) (InitiativeInput, error) {
	category, err := optionalCategory(params.Category)
	if err != nil {
		return InitiativeInput{}, err
	}

	priority, err := optionalPriority(params.Priority)
	if err != nil {
		return InitiativeInput{}, err
	}

	items := make([]ItemInput, 0, len(params.Items))
	for _, itemParams := range params.Items {
		item, err := itemInput(itemParams)
		if err != nil {
			return InitiativeInput{}, err
		}

		items = append(items, item)
	}

	return InitiativeInput{
		Title:       params.Title,
		Description: params.Description,
		Category:    category,
		Priority:    priority,
		Items:       items,
	}, nil
}

func timeframeInput(params TimeframeParams) (TimeframeInput, error) {
	initiatives := make([]InitiativeInput, 0, len(params.Initiatives))
	for _, initiativeParams := range params.Initiatives {
		initiative, err := initiativeInput(initiativeParams)
		if err != nil {
			return TimeframeInput{}, err
		}

		initiatives = append(initiatives, initiative)
	}

	return TimeframeInput{Name: params.Name, Order: params.Order, Initiatives: initiatives}, nil
}

func timeframeInputs(params []TimeframeParams) ([]TimeframeInput, error) {
	timeframes := make([]TimeframeInput, 0, len(params))
	for _, timeframeParams := range params {
		timeframe, err := timeframeInput(timeframeParams)
		if err != nil {
			return nil, err
		}

		timeframes = append(timeframes, timeframe)
	}

	return timeframes, nil
}

func optionalCategory(s string) (roadmap.Category, error) {
	if s == "" {
		return roadmap.Category{}, nil
	}

	return roadmap.ParseCategory(s)
}

func optionalPriority(s string) (roadmap.Priority, error) {
	if s == "" {
		return roadmap.Priority{}, nil
	}

	return roadmap.ParsePriority(s)
}
