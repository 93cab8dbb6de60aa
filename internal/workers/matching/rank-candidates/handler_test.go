package rankcandidates

import (
	"context"
	"testing"
	"time"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/ranking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:                5 * time.Second,
		DefaultMinAuthenticity: 60,
		DefaultTopK:            20,
	}
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
	return NewHandler(createTestConfig(), ranking.DefaultConfig(), &testLogger{t: t})
}

func testCandidates() []ranking.Candidate {
	return []ranking.Candidate{
		{Username: "salon_pro", Similarity: 0.91, Authenticity: 88},
		{Username: "daily_look", Similarity: 0.85, Authenticity: 72},
		{Username: "bot_farm", Similarity: 0.97, Authenticity: 41},
		{Username: "home_care", Similarity: 0.64, Authenticity: 93},
	}
}

func TestExecute_FiltersBelowThresholdBeforeFusion(t *testing.T) {
	h := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{Candidates: testCandidates()})
	require.NoError(t, err)

	assert.Equal(t, 4, output.Total)
	assert.Equal(t, 1, output.Filtered)
	require.Len(t, output.Ranked, 3)
	for _, r := range output.Ranked {
		assert.NotEqual(t, "bot_farm", r.Username)
		assert.GreaterOrEqual(t, r.Authenticity, 60.0)
	}
	// salon_pro holds rank 1 once the low-trust hit is gone.
	assert.Equal(t, "salon_pro", output.Ranked[0].Username)
	assert.Equal(t, 1, output.Ranked[0].Rank)
}

func TestExecute_TopKTruncation(t *testing.T) {
	h := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Candidates: testCandidates(),
		TopK:       2,
	})
	require.NoError(t, err)
	assert.Len(t, output.Ranked, 2)
}

func TestExecute_MinAuthenticityOverride(t *testing.T) {
	h := setupHandler(t)
	min := 90.0

	output, err := h.Execute(context.Background(), &Input{
		Candidates:      testCandidates(),
		MinAuthenticity: &min,
	})
	require.NoError(t, err)
	require.Len(t, output.Ranked, 1)
	assert.Equal(t, "home_care", output.Ranked[0].Username)
}

func TestExecute_ModeOverride(t *testing.T) {
	h := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Candidates: testCandidates(),
		Mode:       "simple",
	})
	require.NoError(t, err)
	assert.Equal(t, "simple", output.Mode)
	for _, r := range output.Ranked {
		assert.GreaterOrEqual(t, r.MatchPercent, 65.0)
		assert.LessOrEqual(t, r.MatchPercent, 98.0)
	}
}

func TestExecute_RejectsOutOfRangeSimilarity(t *testing.T) {
	h := setupHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		Candidates: []ranking.Candidate{
			{Username: "broken", Similarity: 1.4, Authenticity: 80},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestExecute_EmptyCandidates(t *testing.T) {
	h := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Empty(t, output.Ranked)
	assert.Equal(t, "hybrid", output.Mode)
}
