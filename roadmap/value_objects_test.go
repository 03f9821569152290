package roadmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/roadmap-aggregate-go/roadmap"
)

func Test_ParseStatus_AcceptsFreeFormSpellings(t *testing.T) {
	testCases := map[string]roadmap.Status{
		"planned":     roadmap.StatusPlanned,
		"Planned":     roadmap.StatusPlanned,
		"in-progress": roadmap.StatusInProgress,
		"in_progress": roadmap.StatusInProgress,
		"InProgress":  roadmap.StatusInProgress,
		" blocked ":   roadmap.StatusBlocked,
		"COMPLETED":   roadmap.StatusCompleted,
		"cancelled":   roadmap.StatusCancelled,
	}

	for input, expected := range testCases {
		t.Run(input, func(t *testing.T) {
			// act
			status, err := roadmap.ParseStatus(input)

			// assert
			require.NoError(t, err)
			assert.Equal(t, expected, status)
			assert.True(t, status.Equals(expected))
		})
	}
}

func Test_ParseStatus_RejectsUnknownValue(t *testing.T) {
	// act
	status, err := roadmap.ParseStatus("done-ish")

	// assert
	assert.ErrorIs(t, err, roadmap.ErrUnknownEnumValue)
	assert.Contains(t, err.Error(), "done-ish")
	assert.True(t, status.IsZero())
}

func Test_Status_StringRoundTrip(t *testing.T) {
	for _, status := range roadmap.AllStatuses() {
		parsed, err := roadmap.ParseStatus(status.String())

		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}
}

func Test_Status_Classifiers(t *testing.T) {
	assert.True(t, roadmap.StatusPlanned.IsPlanned())
	assert.True(t, roadmap.StatusInProgress.IsInProgress())
	assert.True(t, roadmap.StatusBlocked.IsBlocked())
	assert.True(t, roadmap.StatusCompleted.IsCompleted())
	assert.True(t, roadmap.StatusCancelled.IsCancelled())
	assert.False(t, roadmap.StatusPlanned.IsCompleted())
}

func Test_ParsePriority(t *testing.T) {
	high, err := roadmap.ParsePriority("HIGH")
	require.NoError(t, err)
	assert.True(t, high.IsHigh())

	medium, err := roadmap.ParsePriority("medium")
	require.NoError(t, err)
	assert.True(t, medium.IsMedium())

	low, err := roadmap.ParsePriority(" low")
	require.NoError(t, err)
	assert.True(t, low.IsLow())

	_, err = roadmap.ParsePriority("urgent")
	assert.ErrorIs(t, err, roadmap.ErrUnknownEnumValue)
}

func Test_Priority_Rank(t *testing.T) {
	assert.Equal(t, 0, roadmap.PriorityHigh.Rank())
	assert.Equal(t, 1, roadmap.PriorityMedium.Rank())
	assert.Equal(t, 2, roadmap.PriorityLow.Rank())
	assert.Equal(t, 3, roadmap.Priority{}.Rank())
}

func Test_ParseCategory(t *testing.T) {
	testCases := map[string]roadmap.Category{
		"feature":        roadmap.CategoryFeature,
		"Enhancement":    roadmap.CategoryEnhancement,
		"tech-debt":      roadmap.CategoryTechDebt,
		"tech_debt":      roadmap.CategoryTechDebt,
		"TechDebt":       roadmap.CategoryTechDebt,
		"bug fix":        roadmap.CategoryBugFix,
		"research":       roadmap.CategoryResearch,
		"infrastructure": roadmap.CategoryInfrastructure,
	}

	for input, expected := range testCases {
		t.Run(input, func(t *testing.T) {
			category, err := roadmap.ParseCategory(input)

			require.NoError(t, err)
			assert.Equal(t, expected, category)
		})
	}

	_, err := roadmap.ParseCategory("marketing")
	assert.ErrorIs(t, err, roadmap.ErrUnknownEnumValue)
}

func Test_Category_Classifiers(t *testing.T) {
	assert.True(t, roadmap.CategoryTechDebt.IsTechDebt())
	assert.True(t, roadmap.CategoryFeature.IsFeature())
	assert.True(t, roadmap.CategoryBugFix.IsBugFix())
	assert.False(t, roadmap.CategoryResearch.IsInfrastructure())
}
