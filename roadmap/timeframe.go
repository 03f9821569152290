package roadmap

// Timeframe is a period of a roadmap holding initiatives.
// Order is expected to be unique and gapless within a roadmap, which the
// planning package checks and repairs; the timeframe itself does not enforce it.
type Timeframe struct {
	id          string
	name        string
	order       int
	initiatives collection[Initiative]
	events      DomainEvents
}

// TimeframeOption configures a Timeframe at construction time.
type TimeframeOption func(*Timeframe)

// WithTimeframeID sets an explicit id instead of a generated one.
func WithTimeframeID(id string) TimeframeOption {
	return func(t *Timeframe) {
		t.id = id
	}
}

// WithInitiatives adds initial initiatives. Initiatives with equal ids collapse to the last one.
func WithInitiatives(initiatives ...Initiative) TimeframeOption {
	return func(t *Timeframe) {
		for _, initiative := range initiatives {
			t.initiatives = t.initiatives.with(initiative.ID(), initiative)
		}
	}
}

// NewTimeframe creates a Timeframe with a generated id.
func NewTimeframe(name string, order int, opts ...TimeframeOption) Timeframe {
	timeframe := Timeframe{
		id:    NewID(),
		name:  name,
		order: order,
	}

	for _, opt := range opts {
		opt(&timeframe)
	}

	return timeframe
}

// TimeframePatch holds the fields to change in Timeframe.Update. Nil fields are left untouched.
type TimeframePatch struct {
	Name  *string
	Order *int
}

// IsEmpty reports whether the patch changes nothing.
func (p TimeframePatch) IsEmpty() bool {
	return p.Name == nil && p.Order == nil
}

func (t Timeframe) ID() string {
	return t.id
}

func (t Timeframe) Name() string {
	return t.name
}

func (t Timeframe) Order() int {
	return t.order
}

// Initiatives returns the initiatives in insertion order.
func (t Timeframe) Initiatives() []Initiative {
	return t.initiatives.values()
}

func (t Timeframe) InitiativeCount() int {
	return t.initiatives.len()
}

// Initiative looks up an initiative by id.
func (t Timeframe) Initiative(initiativeID string) (Initiative, bool) {
	return t.initiatives.get(initiativeID)
}

// PendingEvents returns the events raised on this timeframe followed by those of its initiatives.
func (t Timeframe) PendingEvents() DomainEvents {
	out := appendEvents(t.events)
	for _, initiative := range t.initiatives.values() {
		out = append(out, initiative.PendingEvents()...)
	}

	return out
}

// AddInitiative adds or replaces an initiative.
// When the path reaches the roadmap, InitiativeAdded is raised, stamped with this timeframe's id.
func (t Timeframe) AddInitiative(initiative Initiative, path EventPath) Timeframe {
	next := t
	next.initiatives = t.initiatives.with(initiative.ID(), initiative)

	path.TimeframeID = t.id
	if event, ok := initiativeAddition(path, initiative, now()); ok {
		next.events = appendEvents(t.events, event)
	}

	return next
}

// RemoveInitiative removes an initiative or fails with a NotFoundError.
func (t Timeframe) RemoveInitiative(initiativeID string) (Timeframe, error) {
	if !t.initiatives.has(initiativeID) {
		return t, NewNotFoundError(KindInitiative, initiativeID, KindTimeframe, t.id)
	}

	next := t
	next.initiatives = t.initiatives.without(initiativeID)

	return next, nil
}

// Update renames and/or reorders the timeframe.
func (t Timeframe) Update(patch TimeframePatch) Timeframe {
	next := t

	if patch.Name != nil {
		next.name = *patch.Name
	}

	if patch.Order != nil {
		next.order = *patch.Order
	}

	return next
}
