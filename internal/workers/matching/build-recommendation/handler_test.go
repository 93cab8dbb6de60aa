package buildrecommendation

import (
	"context"
	"strings"
	"testing"
	"time"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl.WithFields(map[string]interface{}{"error": err})
}

func setupHandler(t *testing.T) *Handler {
	return NewHandler(createTestConfig(), &testLogger{t: t})
}

func selectedCandidates() []models.RankedCandidate {
	return []models.RankedCandidate{
		{Username: "salon_pro", Role: models.RoleExpert, Followers: 45000, Similarity: 0.91, Authenticity: 88, FusedScore: 0.93, MatchPercent: 92},
		{Username: "daily_look", Role: models.RoleTrendsetter, Followers: 120000, Similarity: 0.84, Authenticity: 72, FusedScore: 0.81, MatchPercent: 78},
		{Username: "home_care", Role: models.RoleTrendsetter, Followers: 8000, Similarity: 0.61, Authenticity: 65, FusedScore: 0.58, MatchPercent: 62},
	}
}

func TestExecute_BuildsRows(t *testing.T) {
	h := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Candidates: selectedCandidates(),
		Brief:      &models.CampaignBrief{BrandName: "글로우랩"},
	})
	require.NoError(t, err)

	require.Len(t, output.Recommendations, 3)
	assert.Equal(t, 3, output.Count)
	assert.Equal(t, "글로우랩", output.BrandName)

	first := output.Recommendations[0]
	assert.Equal(t, 1, first.Rank)
	assert.Equal(t, "salon_pro", first.Username)
	assert.Equal(t, models.VerdictTrusted, first.Verdict)
	assert.Contains(t, first.Reason, "92%")
	assert.Equal(t, 0.91, first.Details["similarity"])

	assert.Equal(t, models.VerdictCaution, output.Recommendations[1].Verdict)
	assert.Equal(t, 2, output.Recommendations[1].Rank)
}

func TestExecute_ReasonDeterministic(t *testing.T) {
	h := setupHandler(t)
	input := &Input{Candidates: selectedCandidates()}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	for i := range first.Recommendations {
		assert.Equal(t, first.Recommendations[i].Reason, second.Recommendations[i].Reason)
	}
}

func TestExecute_ApproachClause(t *testing.T) {
	h := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Candidates: selectedCandidates()[:1],
		Brief:      &models.CampaignBrief{MarketingApproach: models.ApproachProfessional},
	})
	require.NoError(t, err)
	assert.Contains(t, output.Recommendations[0].Reason, "전문가 대상")
}

func TestExecute_EmptyCandidates(t *testing.T) {
	h := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Empty(t, output.Recommendations)
	assert.Equal(t, 0, output.Count)
}

func TestMatchTier(t *testing.T) {
	assert.Equal(t, tierHigh, matchTier(85))
	assert.Equal(t, tierSolid, matchTier(84.9))
	assert.Equal(t, tierSolid, matchTier(70))
	assert.Equal(t, tierFit, matchTier(69.9))
}

func TestReasonForUnknownRoleFallsBack(t *testing.T) {
	reason := reasonFor(models.RankedCandidate{Username: "x", Role: "mystery", MatchPercent: 90}, models.ApproachConsumer)
	assert.NotEmpty(t, reason)
	assert.False(t, strings.Contains(reason, "%!"))
}
