package command

import (
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

func timeframeIn(r roadmap.Roadmap, timeframeID string) (roadmap.Timeframe, error) {
	timeframe, found := r.Timeframe(timeframeID)
	if !found {
		return roadmap.Timeframe{}, roadmap.NewNotFoundError(roadmap.KindTimeframe, timeframeID, roadmap.KindRoadmap, r.ID())
	}

	return timeframe, nil
}

func initiativeIn(r roadmap.Roadmap, timeframeID, initiativeID string) (roadmap.Timeframe, roadmap.Initiative, error) {
	timeframe, err := timeframeIn(r, timeframeID)
	if err != nil {
		return roadmap.Timeframe{}, roadmap.Initiative{}, err
	}

	initiative, found := timeframe.Initiative(initiativeID)
	if !found {
		return roadmap.Timeframe{}, roadmap.Initiative{}, roadmap.NewNotFoundError(roadmap.KindInitiative, initiativeID, roadmap.KindTimeframe, timeframeID)
	}

	return timeframe, initiative, nil
}

func itemIn(r roadmap.Roadmap, timeframeID, initiativeID, itemID string) (roadmap.Timeframe, roadmap.Initiative, roadmap.Item, error) {
	timeframe, initiative, err := initiativeIn(r, timeframeID, initiativeID)
	if err != nil {
		return roadmap.Timeframe{}, roadmap.Initiative{}, roadmap.Item{}, err
	}

	item, found := initiative.Item(itemID)
	if !found {
		return roadmap.Timeframe{}, roadmap.Initiative{}, roadmap.Item{}, roadmap.NewNotFoundError(roadmap.KindItem, itemID, roadmap.KindInitiative, initiativeID)
	}

	return timeframe, initiative, item, nil
}

// withInitiative rebuilds the timeframe and the root around a changed initiative.
// The zero EventPath keeps the rebuild from raising InitiativeAdded again.
func withInitiative(r roadmap.Roadmap, timeframe roadmap.Timeframe, initiative roadmap.Initiative) roadmap.Roadmap {
	return r.AddTimeframe(timeframe.AddInitiative(initiative, roadmap.EventPath{}))
}

// withItem rebuilds initiative, timeframe and root around a changed item.
func withItem(r roadmap.Roadmap, timeframe roadmap.Timeframe, initiative roadmap.Initiative, item roadmap.Item) roadmap.Roadmap {
	return withInitiative(r, timeframe, initiative.AddItem(item, roadmap.EventPath{}))
}
