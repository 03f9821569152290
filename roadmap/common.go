package roadmap

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewID returns a time-ordered random identifier (UUIDv7).
// Uniqueness within the parent container is what the aggregate relies on.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

// Ptr returns a pointer to v. It is a convenience for building patches.
func Ptr[T any](v T) *T {
	return &v
}

// ToTimestamp converts a time to UTC with microsecond precision, which is what survives persistence.
func ToTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func now() time.Time {
	return ToTimestamp(time.Now())
}

// enumKey folds case and separators so "InProgress", "in_progress" and "in-progress" compare equal.
func enumKey(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)

	return out
}

// collection is a copy-on-write map keyed by id that remembers insertion order.
// Adding an existing id replaces the entry in place.
type collection[T any] struct {
	ids  []string
	byID map[string]T
}

func (c collection[T]) with(id string, v T) collection[T] {
	next := collection[T]{
		ids:  slices.Clone(c.ids),
		byID: make(map[string]T, len(c.byID)+1),
	}

	for k, existing := range c.byID {
		next.byID[k] = existing
	}

	if _, exists := next.byID[id]; !exists {
		next.ids = append(next.ids, id)
	}

	next.byID[id] = v

	return next
}

func (c collection[T]) without(id string) collection[T] {
	next := collection[T]{
		ids:  make([]string, 0, len(c.ids)),
		byID: make(map[string]T, len(c.byID)),
	}

	for _, k := range c.ids {
		if k == id {
			continue
		}

		next.ids = append(next.ids, k)
		next.byID[k] = c.byID[k]
	}

	return next
}

func (c collection[T]) get(id string) (T, bool) {
	v, ok := c.byID[id]
	return v, ok
}

func (c collection[T]) has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

func (c collection[T]) values() []T {
	out := make([]T, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, c.byID[id])
	}

	return out
}

func (c collection[T]) len() int {
	return len(c.ids)
}
