package roadmap

// Status is the lifecycle state of a roadmap item.
// The zero value is not a valid status; use ParseStatus or one of the named values.
type Status struct {
	value string
}

var (
	StatusPlanned    = Status{value: "planned"}
	StatusInProgress = Status{value: "in-progress"}
	StatusBlocked    = Status{value: "blocked"}
	StatusCompleted  = Status{value: "completed"}
	StatusCancelled  = Status{value: "cancelled"}
)

var allStatuses = []Status{StatusPlanned, StatusInProgress, StatusBlocked, StatusCompleted, StatusCancelled}

// ParseStatus converts a free-form string into a Status.
func ParseStatus(s string) (Status, error) {
	key := enumKey(s)
	for _, candidate := range allStatuses {
		if enumKey(candidate.value) == key {
			return candidate, nil
		}
	}

	return Status{}, unknownEnumValue("status", s)
}

// AllStatuses returns every known Status in lifecycle order.
func AllStatuses() []Status {
	out := make([]Status, len(allStatuses))
	copy(out, allStatuses)

	return out
}

func (s Status) String() string {
	return s.value
}

func (s Status) Equals(other Status) bool {
	return s.value == other.value
}

func (s Status) IsZero() bool {
	return s.value == ""
}

func (s Status) IsPlanned() bool {
	return s == StatusPlanned
}

func (s Status) IsInProgress() bool {
	return s == StatusInProgress
}

func (s Status) IsBlocked() bool {
	return s == StatusBlocked
}

func (s Status) IsCompleted() bool {
	return s == StatusCompleted
}

func (s Status) IsCancelled() bool {
	return s == StatusCancelled
}

// IsOpen reports whether work on the item is still outstanding.
func (s Status) IsOpen() bool {
	return s.IsPlanned() || s.IsInProgress() || s.IsBlocked()
}
