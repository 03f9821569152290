package roadmap

// Stats summarizes the content of a roadmap.
type Stats struct {
	Timeframes         int
	Initiatives        int
	Items              int
	ItemsByStatus      map[string]int
	InitiativesByLevel map[string]int
	CompletionPercent  float64
}

// ComputeStats counts initiatives per priority and items per status.
// Every known status and priority is present in the maps, possibly with zero.
func ComputeStats(r Roadmap) Stats {
	stats := Stats{
		Timeframes:         r.TimeframeCount(),
		ItemsByStatus:      make(map[string]int, len(AllStatuses())),
		InitiativesByLevel: make(map[string]int, len(AllPriorities())),
	}

	for _, status := range AllStatuses() {
		stats.ItemsByStatus[status.String()] = 0
	}

	for _, priority := range AllPriorities() {
		stats.InitiativesByLevel[priority.String()] = 0
	}

	for _, placed := range r.Initiatives() {
		stats.Initiatives++
		stats.InitiativesByLevel[placed.Initiative.Priority().String()]++

		for _, item := range placed.Initiative.Items() {
			stats.Items++
			stats.ItemsByStatus[item.Status().String()]++
		}
	}

	if stats.Items > 0 {
		stats.CompletionPercent = float64(stats.ItemsByStatus[StatusCompleted.String()]) * 100 / float64(stats.Items)
	}

	return stats
}
