package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-match-workers/internal/models"
)

func filterFixture() []models.RankedCandidate {
	return []models.RankedCandidate{
		{Username: "salon_a", Role: models.RoleExpert, Gender: "female", AgeGroup: "40s", FusedScore: 0.95},
		{Username: "salon_b", Role: models.RoleExpert, Gender: "male", AgeGroup: "30s", FusedScore: 0.90},
		{Username: "trend_a", Role: models.RoleTrendsetter, Gender: "female", AgeGroup: "20s", FusedScore: 0.85},
		{Username: "trend_b", Role: models.RoleTrendsetter, Gender: "female", AgeGroup: "40s", FusedScore: 0.80},
		{Username: "trend_c", Role: models.RoleTrendsetter, Gender: "male", AgeGroup: "20s", FusedScore: 0.75},
		{Username: "trend_d", Role: models.RoleTrendsetter, Gender: "", AgeGroup: "", FusedScore: 0.70},
	}
}

func TestExpertNeverRejectedForAge(t *testing.T) {
	opts := FilterOptions{Age: &models.AgeRange{Min: 20, Max: 29}}

	// Both experts are outside the target ages; the permissive policy keeps
	// them anyway.
	out := FilterRole(filterFixture(), models.RoleExpert, opts, 10)
	assert.Len(t, out, 2)
}

func TestTrendsetterStrictPolicy(t *testing.T) {
	opts := FilterOptions{
		Gender: "female",
		Age:    &models.AgeRange{Min: 20, Max: 29},
	}

	out := FilterRole(filterFixture(), models.RoleTrendsetter, opts, 10)

	// trend_b fails the age gate, trend_c the gender gate; trend_d has no
	// recorded gender or age and passes fail-open.
	require.Len(t, out, 2)
	assert.Equal(t, "trend_a", out[0].Username)
	assert.Equal(t, "trend_d", out[1].Username)
}

func TestFilterTruncatesAfterFiltering(t *testing.T) {
	opts := FilterOptions{Gender: "female"}

	out := FilterRole(filterFixture(), models.RoleTrendsetter, opts, 1)

	// trend_a survives filtering and takes the single slot; the rejected
	// trend_c never counted against the limit.
	require.Len(t, out, 1)
	assert.Equal(t, "trend_a", out[0].Username)
}

func TestFilterNeverExceedsRequestedCount(t *testing.T) {
	out := FilterRole(filterFixture(), models.RoleTrendsetter, FilterOptions{}, 2)
	assert.Len(t, out, 2)

	out = FilterRole(filterFixture(), models.RoleExpert, FilterOptions{}, 0)
	assert.Empty(t, out)
}

func TestSelectDiverseBackfill(t *testing.T) {
	// Only two trendsetters exist but three are requested: the shortfall is
	// backfilled by the best remaining expert.
	counts := RoleCounts{Expert: 1, Trendsetter: 3}
	candidates := []models.RankedCandidate{
		{Username: "salon_a", Role: models.RoleExpert, FusedScore: 0.95},
		{Username: "salon_b", Role: models.RoleExpert, FusedScore: 0.90},
		{Username: "trend_a", Role: models.RoleTrendsetter, FusedScore: 0.85},
		{Username: "trend_b", Role: models.RoleTrendsetter, FusedScore: 0.80},
	}

	out := SelectDiverse(candidates, counts, FilterOptions{})
	require.Len(t, out, 4)
	assert.Equal(t, "salon_a", out[0].Username)
	assert.Equal(t, "salon_b", out[1].Username)
	assert.Equal(t, "trend_a", out[2].Username)
	assert.Equal(t, "trend_b", out[3].Username)
}

func TestSelectDiverseRespectsCounts(t *testing.T) {
	counts := RoleCounts{Expert: 1, Trendsetter: 2}
	out := SelectDiverse(filterFixture(), counts, FilterOptions{})

	require.Len(t, out, 3)
	experts := 0
	for _, c := range out {
		if c.Role == models.RoleExpert {
			experts++
		}
	}
	assert.Equal(t, 1, experts)
	// Output stays sorted by fused score.
	assert.Equal(t, "salon_a", out[0].Username)
}

func TestSplitForApproach(t *testing.T) {
	assert.Equal(t, RoleCounts{Expert: 3, Trendsetter: 2}, SplitForApproach(5, models.ApproachProfessional))
	assert.Equal(t, RoleCounts{Expert: 3, Trendsetter: 2}, SplitForApproach(5, models.ApproachExpertOriented))
	assert.Equal(t, RoleCounts{Expert: 2, Trendsetter: 3}, SplitForApproach(5, models.ApproachConsumer))
	assert.Equal(t, RoleCounts{}, SplitForApproach(0, models.ApproachConsumer))
}

func TestAgeGroupMidpoint(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"20s", 25, true},
		{"20대", 25, true},
		{"34", 34, true},
		{"40s", 45, true},
		{"", 0, false},
		{"unknown", 0, false},
	}
	for _, tt := range tests {
		got, ok := ageGroupMidpoint(tt.label)
		assert.Equal(t, tt.ok, ok, tt.label)
		assert.Equal(t, tt.want, got, tt.label)
	}
}
