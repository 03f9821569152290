package planning

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// DefaultMaxHighPriority is the roadmap-wide limit of high-priority initiatives.
const DefaultMaxHighPriority = 5

// PriorityBalancer checks and restores the limit of high-priority initiatives.
type PriorityBalancer struct {
	maxHighPriority int
}

// PriorityBalancerOption configures a PriorityBalancer.
type PriorityBalancerOption func(*PriorityBalancer)

// WithMaxHighPriority overrides DefaultMaxHighPriority. Non-positive values are ignored.
func WithMaxHighPriority(limit int) PriorityBalancerOption {
	return func(b *PriorityBalancer) {
		if limit > 0 {
			b.maxHighPriority = limit
		}
	}
}

// NewPriorityBalancer creates a PriorityBalancer.
func NewPriorityBalancer(options ...PriorityBalancerOption) PriorityBalancer {
	balancer := PriorityBalancer{maxHighPriority: DefaultMaxHighPriority}

	for _, option := range options {
		option(&balancer)
	}

	return balancer
}

// MaxHighPriority returns the configured limit.
func (b PriorityBalancer) MaxHighPriority() int {
	return b.maxHighPriority
}

// CountHighPriority counts high-priority initiatives across all timeframes.
func (b PriorityBalancer) CountHighPriority(r roadmap.Roadmap) int {
	count := 0
	for _, placed := range r.Initiatives() {
		if placed.Initiative.Priority().IsHigh() {
			count++
		}
	}

	return count
}

// Validate reports whether the roadmap stays within the high-priority limit.
func (b PriorityBalancer) Validate(r roadmap.Roadmap) ValidationResult {
	count := b.CountHighPriority(r)
	if count > b.maxHighPriority {
		return Invalid(fmt.Sprintf("too many high-priority initiatives: %d > %d", count, b.maxHighPriority))
	}

	return Valid()
}

type scoredInitiative struct {
	placed roadmap.PlacedInitiative
	score  int
}

// DowngradeCandidates returns the high-priority initiatives Rebalance would downgrade, in downgrade order.
//
// Each high-priority initiative is scored order*10 - itemCount, so later timeframes and
// initiatives with fewer items go first. Equal scores keep composition order
// (timeframe order, then insertion order within the timeframe).
func (b PriorityBalancer) DowngradeCandidates(r roadmap.Roadmap) []roadmap.PlacedInitiative {
	var scored []scoredInitiative
	for _, placed := range r.Initiatives() {
		if !placed.Initiative.Priority().IsHigh() {
			continue
		}

		scored = append(scored, scoredInitiative{
			placed: placed,
			score:  placed.TimeframeOrder*10 - placed.Initiative.ItemCount(),
		})
	}

	excess := len(scored) - b.maxHighPriority
	if excess <= 0 {
		return []roadmap.PlacedInitiative{}
	}

	slices.SortStableFunc(scored, func(a, c scoredInitiative) int {
		return cmp.Compare(c.score, a.score)
	})

	out := make([]roadmap.PlacedInitiative, 0, excess)
	for _, candidate := range scored[:excess] {
		out = append(out, candidate.placed)
	}

	return out
}

// Rebalance downgrades the excess high-priority initiatives to medium and rebuilds the
// affected timeframes. Each downgrade raises InitiativePriorityChanged.
// A roadmap within the limit is returned unchanged.
func (b PriorityBalancer) Rebalance(r roadmap.Roadmap) roadmap.Roadmap {
	next := r
	for _, candidate := range b.DowngradeCandidates(r) {
		timeframe, found := next.Timeframe(candidate.TimeframeID)
		if !found {
			continue
		}

		initiative, found := timeframe.Initiative(candidate.Initiative.ID())
		if !found {
			continue
		}

		downgraded := initiative.UpdatePriority(roadmap.PriorityMedium, roadmap.PathToTimeframe(r.ID(), timeframe.ID()))
		next = next.AddTimeframe(timeframe.AddInitiative(downgraded, roadmap.EventPath{}))
	}

	return next
}
