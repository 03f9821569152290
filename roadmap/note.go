package roadmap

import (
	"slices"
	"time"
)

// Note is a free-standing planning note. It lives outside the Roadmap aggregate
// and refers to roadmap entities by id only.
type Note struct {
	id           string
	title        string
	content      string
	category     Category
	priority     Priority
	timeline     string
	relatedItems []string
	createdAt    time.Time
	updatedAt    time.Time
}

// NotePatch holds the fields to change in Note.Update. Nil fields are left untouched.
type NotePatch struct {
	Title        *string
	Content      *string
	Category     *Category
	Priority     *Priority
	Timeline     *string
	RelatedItems *[]string
}

// NewNote creates a Note with a generated id.
func NewNote(title, content string, category Category, priority Priority, timeline string, relatedItems ...string) Note {
	createdAt := now()

	return Note{
		id:           NewID(),
		title:        title,
		content:      content,
		category:     category,
		priority:     priority,
		timeline:     timeline,
		relatedItems: dedupe(relatedItems),
		createdAt:    createdAt,
		updatedAt:    createdAt,
	}
}

func (n Note) ID() string {
	return n.id
}

func (n Note) Title() string {
	return n.title
}

func (n Note) Content() string {
	return n.content
}

func (n Note) Category() Category {
	return n.category
}

func (n Note) Priority() Priority {
	return n.priority
}

func (n Note) Timeline() string {
	return n.timeline
}

// RelatedItems returns a copy of the referenced roadmap entity ids.
func (n Note) RelatedItems() []string {
	return copyStrings(n.relatedItems)
}

func (n Note) CreatedAt() time.Time {
	return n.createdAt
}

func (n Note) UpdatedAt() time.Time {
	return n.updatedAt
}

// Update applies the patch and refreshes UpdatedAt.
func (n Note) Update(patch NotePatch) Note {
	next := n
	next.relatedItems = copyStrings(n.relatedItems)
	next.updatedAt = now()

	if patch.Title != nil {
		next.title = *patch.Title
	}

	if patch.Content != nil {
		next.content = *patch.Content
	}

	if patch.Category != nil && !patch.Category.IsZero() {
		next.category = *patch.Category
	}

	if patch.Priority != nil && !patch.Priority.IsZero() {
		next.priority = *patch.Priority
	}

	if patch.Timeline != nil {
		next.timeline = *patch.Timeline
	}

	if patch.RelatedItems != nil {
		next.relatedItems = dedupe(*patch.RelatedItems)
	}

	return next
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}

	return out
}
