package planning_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap/planning"
)

func Test_TimeframeNormalizer_NormalizeOrdering_PreservesRelativeRank(t *testing.T) {
	// arrange
	tiedFirst := roadmap.NewTimeframe("tied-first", 5)
	tiedSecond := roadmap.NewTimeframe("tied-second", 5)
	lowest := roadmap.NewTimeframe("lowest", 2)
	r := roadmap.New("R", "", "", "", tiedFirst, tiedSecond, lowest)
	normalizer := planning.NewTimeframeNormalizer()

	// act
	normalized := normalizer.NormalizeOrdering(r)

	// assert
	timeframes := normalized.Timeframes()
	require.Len(t, timeframes, 3)
	assert.Equal(t, "lowest", timeframes[0].Name())
	assert.Equal(t, 0, timeframes[0].Order())
	assert.Equal(t, "tied-first", timeframes[1].Name())
	assert.Equal(t, 1, timeframes[1].Order())
	assert.Equal(t, "tied-second", timeframes[2].Name())
	assert.Equal(t, 2, timeframes[2].Order())

	assert.True(t, normalizer.IsNormalized(normalized))
	assert.True(t, normalizer.Validate(normalized).Valid)
}

func Test_TimeframeNormalizer_NormalizeOrdering_KeepsInitiatives(t *testing.T) {
	// arrange
	initiative := roadmap.NewInitiative("I", "", roadmap.CategoryFeature, roadmap.PriorityLow)
	timeframe := roadmap.NewTimeframe("T", 7, roadmap.WithInitiatives(initiative))
	r := roadmap.New("R", "", "", "", timeframe)

	// act
	normalized := planning.NewTimeframeNormalizer().NormalizeOrdering(r)

	// assert
	got, found := normalized.Timeframe(timeframe.ID())
	require.True(t, found)
	assert.Equal(t, 0, got.Order())
	assert.Equal(t, 1, got.InitiativeCount())
}

func Test_TimeframeNormalizer_NormalizeOrdering_AlreadyNormalized_IsUnchanged(t *testing.T) {
	r := roadmap.New("R", "", "", "", roadmap.NewTimeframe("a", 0), roadmap.NewTimeframe("b", 1))

	normalized := planning.NewTimeframeNormalizer().NormalizeOrdering(r)

	assert.Equal(t, r.ToRecord(), normalized.ToRecord())
}

func Test_TimeframeNormalizer_Validate_ReportsEveryDuplicate(t *testing.T) {
	// arrange
	r := roadmap.New("R", "", "", "",
		roadmap.NewTimeframe("a", 1),
		roadmap.NewTimeframe("b", 1),
		roadmap.NewTimeframe("c", 3),
		roadmap.NewTimeframe("d", 3),
		roadmap.NewTimeframe("e", 3),
	)

	// act
	result := planning.NewTimeframeNormalizer().Validate(r)

	// assert
	assert.False(t, result.Valid)
	assert.Equal(t, []string{
		"duplicate timeframe order 1 used by 2 timeframes",
		"duplicate timeframe order 3 used by 3 timeframes",
	}, result.Violations)
}

func Test_TimeframeNormalizer_Validate_TooManyTimeframes(t *testing.T) {
	// arrange
	timeframes := make([]roadmap.Timeframe, 0, 11)
	for i := 0; i < 11; i++ {
		timeframes = append(timeframes, roadmap.NewTimeframe("tf", i))
	}

	r := roadmap.New("R", "", "", "", timeframes...)

	// act
	result := planning.NewTimeframeNormalizer().Validate(r)

	// assert
	assert.False(t, result.Valid)
	assert.Equal(t, "too many timeframes: 11 > 10", result.Message)
}

func Test_SuggestStructure_BucketsByPriority(t *testing.T) {
	// arrange
	r := roadmap.New("R", "", "", "", roadmap.NewTimeframe("now", 0, roadmap.WithInitiatives(
		roadmap.NewInitiative("urgent", "", roadmap.CategoryBugFix, roadmap.PriorityHigh),
		roadmap.NewInitiative("soon", "", roadmap.CategoryFeature, roadmap.PriorityMedium),
		roadmap.NewInitiative("someday", "", roadmap.CategoryResearch, roadmap.PriorityLow),
	)))

	// act
	structure := planning.SuggestStructure(r)

	// assert
	assert.Equal(t, []string{"urgent"}, structure.ShortTerm)
	assert.Equal(t, []string{"soon"}, structure.MediumTerm)
	assert.Equal(t, []string{"someday"}, structure.LongTerm)
}

func Test_Merge_CombinesViolations(t *testing.T) {
	merged := planning.Merge(planning.Valid(), planning.Invalid("a"), planning.Invalid("b"))

	assert.False(t, merged.Valid)
	assert.Equal(t, "a; b", merged.Message)
	assert.True(t, planning.Merge(planning.Valid(), planning.Valid()).Valid)
}
