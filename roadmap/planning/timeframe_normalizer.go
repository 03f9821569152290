package planning

import (
	"fmt"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// DefaultMaxTimeframes is the maximum number of timeframes a roadmap should hold.
const DefaultMaxTimeframes = 10

// TimeframeNormalizer checks and restores unique, contiguous timeframe ordering.
type TimeframeNormalizer struct {
	maxTimeframes int
}

// TimeframeNormalizerOption configures a TimeframeNormalizer.
type TimeframeNormalizerOption func(*TimeframeNormalizer)

// WithMaxTimeframes overrides DefaultMaxTimeframes. Non-positive values are ignored.
func WithMaxTimeframes(limit int) TimeframeNormalizerOption {
	return func(n *TimeframeNormalizer) {
		if limit > 0 {
			n.maxTimeframes = limit
		}
	}
}

// NewTimeframeNormalizer creates a TimeframeNormalizer.
func NewTimeframeNormalizer(options ...TimeframeNormalizerOption) TimeframeNormalizer {
	normalizer := TimeframeNormalizer{maxTimeframes: DefaultMaxTimeframes}

	for _, option := range options {
		option(&normalizer)
	}

	return normalizer
}

// MaxTimeframes returns the configured limit.
func (n TimeframeNormalizer) MaxTimeframes() int {
	return n.maxTimeframes
}

// Validate checks the timeframe count and reports every duplicated order value.
func (n TimeframeNormalizer) Validate(r roadmap.Roadmap) ValidationResult {
	var violations []string

	if count := r.TimeframeCount(); count > n.maxTimeframes {
		violations = append(violations, fmt.Sprintf("too many timeframes: %d > %d", count, n.maxTimeframes))
	}

	seen := make(map[int]int)
	var duplicates []int
	for _, timeframe := range r.Timeframes() {
		seen[timeframe.Order()]++
		if seen[timeframe.Order()] == 2 {
			duplicates = append(duplicates, timeframe.Order())
		}
	}

	for _, order := range duplicates {
		violations = append(violations, fmt.Sprintf("duplicate timeframe order %d used by %d timeframes", order, seen[order]))
	}

	if len(violations) == 0 {
		return Valid()
	}

	return Invalid(violations...)
}

// IsNormalized reports whether the orders are exactly 0..n-1.
func (n TimeframeNormalizer) IsNormalized(r roadmap.Roadmap) bool {
	for rank, timeframe := range r.Timeframes() {
		if timeframe.Order() != rank {
			return false
		}
	}

	return true
}

// NormalizeOrdering reassigns every timeframe its rank (0..n-1) in the current order.
// Timeframes with equal orders keep their insertion order. A normalized roadmap is returned unchanged.
func (n TimeframeNormalizer) NormalizeOrdering(r roadmap.Roadmap) roadmap.Roadmap {
	if n.IsNormalized(r) {
		return r
	}

	sorted := r.Timeframes()

	next := r
	for _, timeframe := range sorted {
		next, _ = next.RemoveTimeframe(timeframe.ID())
	}

	for rank, timeframe := range sorted {
		if timeframe.Order() != rank {
			timeframe = timeframe.Update(roadmap.TimeframePatch{Order: roadmap.Ptr(rank)})
		}

		next = next.AddTimeframe(timeframe)
	}

	return next
}
