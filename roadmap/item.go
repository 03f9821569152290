package roadmap

import (
	"slices"
)

// Item is the leaf entity of a roadmap: a concrete piece of work inside an initiative.
type Item struct {
	id              string
	title           string
	description     string
	status          Status
	relatedEntities []string
	notes           string
	events          DomainEvents
}

// ItemOption configures an Item at construction time.
type ItemOption func(*Item)

// WithItemID sets an explicit id instead of a generated one.
func WithItemID(id string) ItemOption {
	return func(i *Item) {
		i.id = id
	}
}

// WithStatus sets the initial status. The zero Status is ignored.
func WithStatus(status Status) ItemOption {
	return func(i *Item) {
		if !status.IsZero() {
			i.status = status
		}
	}
}

// WithRelatedEntities sets the initial related ids, dropping duplicates.
func WithRelatedEntities(ids ...string) ItemOption {
	return func(i *Item) {
		for _, id := range ids {
			if !slices.Contains(i.relatedEntities, id) {
				i.relatedEntities = append(i.relatedEntities, id)
			}
		}
	}
}

// WithNotes sets the initial notes.
func WithNotes(notes string) ItemOption {
	return func(i *Item) {
		i.notes = notes
	}
}

// NewItem creates an Item with a generated id and status Planned unless configured otherwise.
func NewItem(title, description string, opts ...ItemOption) Item {
	item := Item{
		id:              NewID(),
		title:           title,
		description:     description,
		status:          StatusPlanned,
		relatedEntities: make([]string, 0),
	}

	for _, opt := range opts {
		opt(&item)
	}

	return item
}

// ItemPatch holds the fields to change in Item.Update. Nil fields are left untouched.
type ItemPatch struct {
	Title           *string
	Description     *string
	Status          *Status
	RelatedEntities *[]string
	Notes           *string
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.RelatedEntities == nil && p.Notes == nil
}

func (i Item) ID() string {
	return i.id
}

func (i Item) Title() string {
	return i.title
}

func (i Item) Description() string {
	return i.description
}

func (i Item) Status() Status {
	return i.status
}

// RelatedEntities returns a copy of the related ids.
func (i Item) RelatedEntities() []string {
	return copyStrings(i.relatedEntities)
}

func (i Item) Notes() string {
	return i.notes
}

// PendingEvents returns the events raised on this item.
func (i Item) PendingEvents() DomainEvents {
	return i.events
}

// Update applies the patch and returns the new Item.
// A status change raises ItemStatusChanged when the path reaches the parent initiative.
func (i Item) Update(patch ItemPatch, path EventPath) Item {
	next := i.clone()

	if patch.Title != nil {
		next.title = *patch.Title
	}

	if patch.Description != nil {
		next.description = *patch.Description
	}

	if patch.Notes != nil {
		next.notes = *patch.Notes
	}

	if patch.RelatedEntities != nil {
		next.relatedEntities = make([]string, 0, len(*patch.RelatedEntities))
		WithRelatedEntities(*patch.RelatedEntities...)(&next)
	}

	if patch.Status != nil && !patch.Status.IsZero() {
		next.status = *patch.Status

		if event, ok := statusChange(path, i.id, i.status, next.status, now()); ok {
			next.events = appendEvents(next.events, event)
		}
	}

	return next
}

// AddRelatedEntity adds an id to the related entities. Adding a present id is a no-op.
func (i Item) AddRelatedEntity(id string) Item {
	if slices.Contains(i.relatedEntities, id) {
		return i
	}

	next := i.clone()
	next.relatedEntities = append(next.relatedEntities, id)

	return next
}

// RemoveRelatedEntity removes an id from the related entities. Removing an absent id is a no-op.
func (i Item) RemoveRelatedEntity(id string) Item {
	if !slices.Contains(i.relatedEntities, id) {
		return i
	}

	next := i.clone()
	next.relatedEntities = slices.DeleteFunc(next.relatedEntities, func(candidate string) bool {
		return candidate == id
	})

	return next
}

func (i Item) clone() Item {
	next := i
	next.relatedEntities = copyStrings(i.relatedEntities)

	return next
}
