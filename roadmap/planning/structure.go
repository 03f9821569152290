package planning

import (
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

// Structure is an advisory grouping of initiative titles by horizon.
type Structure struct {
	ShortTerm  []string `json:"shortTerm"`
	MediumTerm []string `json:"mediumTerm"`
	LongTerm   []string `json:"longTerm"`
}

// SuggestStructure buckets initiative titles by priority: high goes short-term,
// medium goes medium-term, everything else long-term. The roadmap is not changed.
func SuggestStructure(r roadmap.Roadmap) Structure {
	structure := Structure{
		ShortTerm:  []string{},
		MediumTerm: []string{},
		LongTerm:   []string{},
	}

	for _, placed := range r.Initiatives() {
		title := placed.Initiative.Title()

		switch priority := placed.Initiative.Priority(); {
		case priority.IsHigh():
			structure.ShortTerm = append(structure.ShortTerm, title)
		case priority.IsMedium():
			structure.MediumTerm = append(structure.MediumTerm, title)
		default:
			structure.LongTerm = append(structure.LongTerm, title)
		}
	}

	return structure
}

// SuggestStructure is the method form of the package function, for callers holding a normalizer.
func (n TimeframeNormalizer) SuggestStructure(r roadmap.Roadmap) Structure {
	return SuggestStructure(r)
}
