package roadmap

import (
	"cmp"
	"slices"
	"time"
)

// Roadmap is the aggregate root. All reads and writes of timeframes,
// initiatives and items flow through it.
type Roadmap struct {
	id          string
	title       string
	description string
	version     string
	owner       string
	timeframes  collection[Timeframe]
	createdAt   time.Time
	updatedAt   time.Time
	revision    uint64
	events      DomainEvents
}

// PlacedInitiative is an initiative together with the timeframe that holds it.
type PlacedInitiative struct {
	TimeframeID    string
	TimeframeOrder int
	Initiative     Initiative
}

// RoadmapPatch holds the fields to change in Roadmap.Update. Nil fields are left untouched.
type RoadmapPatch struct {
	Title       *string
	Description *string
	Version     *string
	Owner       *string
}

// IsEmpty reports whether the patch changes nothing.
func (p RoadmapPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Version == nil && p.Owner == nil
}

// New creates a Roadmap with a generated id and folds in the given timeframes,
// which may already hold initiatives and items. RoadmapCreated is raised.
func New(title, description, version, owner string, timeframes ...Timeframe) Roadmap {
	createdAt := now()

	r := Roadmap{
		id:          NewID(),
		title:       title,
		description: description,
		version:     version,
		owner:       owner,
		createdAt:   createdAt,
		updatedAt:   createdAt,
	}

	for _, timeframe := range timeframes {
		r.timeframes = r.timeframes.with(timeframe.ID(), timeframe)
	}

	r.events = DomainEvents{BuildRoadmapCreated(r.id, title, owner, createdAt)}

	return r
}

func (r Roadmap) ID() string {
	return r.id
}

func (r Roadmap) Title() string {
	return r.title
}

func (r Roadmap) Description() string {
	return r.description
}

func (r Roadmap) Version() string {
	return r.version
}

func (r Roadmap) Owner() string {
	return r.owner
}

func (r Roadmap) CreatedAt() time.Time {
	return r.createdAt
}

func (r Roadmap) UpdatedAt() time.Time {
	return r.updatedAt
}

// Revision is the persisted revision this instance is based on. A new roadmap has revision 0.
func (r Roadmap) Revision() uint64 {
	return r.revision
}

// NextRevision returns a copy with the revision incremented, ready to be saved.
func (r Roadmap) NextRevision() Roadmap {
	next := r
	next.revision = r.revision + 1

	return next
}

// Timeframes returns the timeframes sorted by order. Equal orders keep insertion order.
func (r Roadmap) Timeframes() []Timeframe {
	timeframes := r.timeframes.values()
	slices.SortStableFunc(timeframes, func(a, b Timeframe) int {
		return cmp.Compare(a.Order(), b.Order())
	})

	return timeframes
}

func (r Roadmap) TimeframeCount() int {
	return r.timeframes.len()
}

// Timeframe looks up a timeframe by id.
func (r Roadmap) Timeframe(timeframeID string) (Timeframe, bool) {
	return r.timeframes.get(timeframeID)
}

// Initiatives flattens all initiatives, ordered by timeframe order and then by insertion order.
func (r Roadmap) Initiatives() []PlacedInitiative {
	var out []PlacedInitiative
	for _, timeframe := range r.Timeframes() {
		for _, initiative := range timeframe.Initiatives() {
			out = append(out, PlacedInitiative{
				TimeframeID:    timeframe.ID(),
				TimeframeOrder: timeframe.Order(),
				Initiative:     initiative,
			})
		}
	}

	return out
}

// PendingEvents returns the root's own events followed by the events of all timeframes in order.
func (r Roadmap) PendingEvents() DomainEvents {
	out := appendEvents(r.events)
	for _, timeframe := range r.Timeframes() {
		out = append(out, timeframe.PendingEvents()...)
	}

	return out
}

// AddTimeframe adds or replaces a timeframe.
func (r Roadmap) AddTimeframe(timeframe Timeframe) Roadmap {
	next := r
	next.timeframes = r.timeframes.with(timeframe.ID(), timeframe)
	next.updatedAt = now()

	return next
}

// PlanTimeframe adds a new timeframe and raises TimeframeAdded.
func (r Roadmap) PlanTimeframe(timeframe Timeframe) Roadmap {
	next := r.AddTimeframe(timeframe)
	next.events = appendEvents(r.events, BuildTimeframeAdded(r.id, timeframe.ID(), timeframe.Name(), timeframe.Order(), next.updatedAt))

	return next
}

// RemoveTimeframe removes a timeframe or fails with a NotFoundError.
func (r Roadmap) RemoveTimeframe(timeframeID string) (Roadmap, error) {
	if !r.timeframes.has(timeframeID) {
		return r, NewNotFoundError(KindTimeframe, timeframeID, KindRoadmap, r.id)
	}

	next := r
	next.timeframes = r.timeframes.without(timeframeID)
	next.updatedAt = now()

	return next, nil
}

// Update applies the patch and always refreshes UpdatedAt.
// RoadmapUpdated is raised when at least one field actually changed.
func (r Roadmap) Update(patch RoadmapPatch) Roadmap {
	next := r
	next.updatedAt = now()

	var changed []string

	apply := func(field string, target *string, value *string) {
		if value == nil || *target == *value {
			return
		}

		*target = *value
		changed = append(changed, field)
	}

	apply("title", &next.title, patch.Title)
	apply("description", &next.description, patch.Description)
	apply("version", &next.version, patch.Version)
	apply("owner", &next.owner, patch.Owner)

	if len(changed) > 0 {
		next.events = appendEvents(r.events, BuildRoadmapUpdated(r.id, changed, next.updatedAt))
	}

	return next
}

// MoveInitiative moves an initiative between two timeframes. Nothing changes when
// any id is unknown. Moving into the same timeframe is a no-op.
func (r Roadmap) MoveInitiative(initiativeID, fromTimeframeID, toTimeframeID string) (Roadmap, error) {
	from, found := r.timeframes.get(fromTimeframeID)
	if !found {
		return r, NewNotFoundError(KindTimeframe, fromTimeframeID, KindRoadmap, r.id)
	}

	to, found := r.timeframes.get(toTimeframeID)
	if !found {
		return r, NewNotFoundError(KindTimeframe, toTimeframeID, KindRoadmap, r.id)
	}

	initiative, found := from.Initiative(initiativeID)
	if !found {
		return r, NewNotFoundError(KindInitiative, initiativeID, KindTimeframe, fromTimeframeID)
	}

	if fromTimeframeID == toTimeframeID {
		return r, nil
	}

	from, _ = from.RemoveInitiative(initiativeID)
	to = to.AddInitiative(initiative, EventPath{})

	next := r.AddTimeframe(from).AddTimeframe(to)
	next.events = appendEvents(r.events, BuildInitiativeMoved(r.id, initiativeID, fromTimeframeID, toTimeframeID, next.updatedAt))

	return next, nil
}

// MoveItem moves an item between two initiatives of this roadmap. The paths only
// need TimeframeID and InitiativeID. Nothing changes when any id is unknown.
func (r Roadmap) MoveItem(itemID string, from, to EventPath) (Roadmap, error) {
	_, sourceInitiative, err := r.locateInitiative(from.TimeframeID, from.InitiativeID)
	if err != nil {
		return r, err
	}

	if _, _, err = r.locateInitiative(to.TimeframeID, to.InitiativeID); err != nil {
		return r, err
	}

	item, found := sourceInitiative.Item(itemID)
	if !found {
		return r, NewNotFoundError(KindItem, itemID, KindInitiative, from.InitiativeID)
	}

	if from.TimeframeID == to.TimeframeID && from.InitiativeID == to.InitiativeID {
		return r, nil
	}

	sourceInitiative, _ = sourceInitiative.RemoveItem(itemID)
	next := r.replaceInitiative(from.TimeframeID, sourceInitiative)

	targetTimeframe, targetInitiative, _ := next.locateInitiative(to.TimeframeID, to.InitiativeID)
	next = next.AddTimeframe(targetTimeframe.AddInitiative(targetInitiative.AddItem(item, EventPath{}), EventPath{}))

	from.RoadmapID = r.id
	to.RoadmapID = r.id
	next.events = appendEvents(r.events, BuildItemMoved(itemID, from, to, next.updatedAt))

	return next, nil
}

func (r Roadmap) locateInitiative(timeframeID, initiativeID string) (Timeframe, Initiative, error) {
	timeframe, found := r.timeframes.get(timeframeID)
	if !found {
		return Timeframe{}, Initiative{}, NewNotFoundError(KindTimeframe, timeframeID, KindRoadmap, r.id)
	}

	initiative, found := timeframe.Initiative(initiativeID)
	if !found {
		return Timeframe{}, Initiative{}, NewNotFoundError(KindInitiative, initiativeID, KindTimeframe, timeframeID)
	}

	return timeframe, initiative, nil
}

func (r Roadmap) replaceInitiative(timeframeID string, initiative Initiative) Roadmap {
	timeframe, _ := r.timeframes.get(timeframeID)

	return r.AddTimeframe(timeframe.AddInitiative(initiative, EventPath{}))
}
