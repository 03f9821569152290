package roadmap

// Priority ranks an initiative. The zero value is not a valid priority.
type Priority struct {
	value string
}

var (
	PriorityHigh   = Priority{value: "high"}
	PriorityMedium = Priority{value: "medium"}
	PriorityLow    = Priority{value: "low"}
)

var allPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority converts a free-form string into a Priority.
func ParsePriority(s string) (Priority, error) {
	key := enumKey(s)
	for _, candidate := range allPriorities {
		if candidate.value == key {
			return candidate, nil
		}
	}

	return Priority{}, unknownEnumValue("priority", s)
}

// AllPriorities returns every known Priority from high to low.
func AllPriorities() []Priority {
	out := make([]Priority, len(allPriorities))
	copy(out, allPriorities)

	return out
}

func (p Priority) String() string {
	return p.value
}

func (p Priority) Equals(other Priority) bool {
	return p.value == other.value
}

func (p Priority) IsZero() bool {
	return p.value == ""
}

func (p Priority) IsHigh() bool {
	return p == PriorityHigh
}

func (p Priority) IsMedium() bool {
	return p == PriorityMedium
}

func (p Priority) IsLow() bool {
	return p == PriorityLow
}

// Rank returns 0 for high, 1 for medium, 2 for low and 3 for the zero value.
func (p Priority) Rank() int {
	for i, candidate := range allPriorities {
		if candidate == p {
			return i
		}
	}

	return len(allPriorities)
}
