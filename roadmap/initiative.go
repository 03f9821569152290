package roadmap

// Initiative groups related items inside a timeframe and carries their classification.
type Initiative struct {
	id          string
	title       string
	description string
	category    Category
	priority    Priority
	items       itemCollection
	events      DomainEvents
}

// InitiativeOption configures an Initiative at construction time.
type InitiativeOption func(*Initiative)

// WithInitiativeID sets an explicit id instead of a generated one.
func WithInitiativeID(id string) InitiativeOption {
	return func(i *Initiative) {
		i.id = id
	}
}

// WithItems adds initial items. Items with equal ids collapse to the last one.
func WithItems(items ...Item) InitiativeOption {
	return func(i *Initiative) {
		for _, item := range items {
			i.items = i.items.add(item)
		}
	}
}

// NewInitiative creates an Initiative with a generated id.
func NewInitiative(title, description string, category Category, priority Priority, opts ...InitiativeOption) Initiative {
	initiative := Initiative{
		id:          NewID(),
		title:       title,
		description: description,
		category:    category,
		priority:    priority,
		items:       newItemCollection(),
	}

	for _, opt := range opts {
		opt(&initiative)
	}

	return initiative
}

// InitiativePatch holds the fields to change in Initiative.Update. Nil fields are left untouched.
type InitiativePatch struct {
	Title       *string
	Description *string
	Category    *Category
	Priority    *Priority
}

// IsEmpty reports whether the patch changes nothing.
func (p InitiativePatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Category == nil && p.Priority == nil
}

func (i Initiative) ID() string {
	return i.id
}

func (i Initiative) Title() string {
	return i.title
}

func (i Initiative) Description() string {
	return i.description
}

func (i Initiative) Category() Category {
	return i.category
}

func (i Initiative) Priority() Priority {
	return i.priority
}

// Items returns the items in insertion order.
func (i Initiative) Items() []Item {
	return i.items.all()
}

func (i Initiative) ItemCount() int {
	return i.items.count()
}

// Item looks up an item by id.
func (i Initiative) Item(itemID string) (Item, bool) {
	return i.items.get(itemID)
}

// PendingEvents returns the events raised on this initiative followed by the events of its items.
func (i Initiative) PendingEvents() DomainEvents {
	return appendEvents(i.events, i.items.events()...)
}

// AddItem adds or replaces an item.
// When the path reaches the timeframe, ItemAdded is raised, stamped with this initiative's id.
// Events the item already carries stay attached to it and are re-exposed through PendingEvents.
func (i Initiative) AddItem(item Item, path EventPath) Initiative {
	next := i
	next.items = i.items.add(item)

	path.InitiativeID = i.id
	if event, ok := itemAddition(path, item, now()); ok {
		next.events = appendEvents(i.events, event)
	}

	return next
}

// RemoveItem removes an item or fails with a NotFoundError.
func (i Initiative) RemoveItem(itemID string) (Initiative, error) {
	items, removed := i.items.remove(itemID)
	if !removed {
		return i, NewNotFoundError(KindItem, itemID, KindInitiative, i.id)
	}

	next := i
	next.items = items

	return next, nil
}

// Update applies the patch and returns the new Initiative.
// Priority and category changes raise events when the path reaches the timeframe.
func (i Initiative) Update(patch InitiativePatch, path EventPath) Initiative {
	next := i
	path.InitiativeID = i.id
	at := now()

	if patch.Title != nil {
		next.title = *patch.Title
	}

	if patch.Description != nil {
		next.description = *patch.Description
	}

	if patch.Category != nil && !patch.Category.IsZero() {
		next.category = *patch.Category

		if event, ok := categoryChange(path, i.category, next.category, at); ok {
			next.events = appendEvents(next.events, event)
		}
	}

	if patch.Priority != nil && !patch.Priority.IsZero() {
		next.priority = *patch.Priority

		if event, ok := priorityChange(path, i.priority, next.priority, at); ok {
			next.events = appendEvents(next.events, event)
		}
	}

	return next
}

// UpdatePriority is a shorthand for Update with only the priority set.
func (i Initiative) UpdatePriority(priority Priority, path EventPath) Initiative {
	return i.Update(InitiativePatch{Priority: &priority}, path)
}
