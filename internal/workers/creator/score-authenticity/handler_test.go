package scoreauthenticity

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/fis"
	"creator-match-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		CacheTTL: 10 * time.Minute,
		Timeout:  5 * time.Second,
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

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	calc := fis.NewCalculator(fis.DefaultConfig())
	return NewHandler(createTestConfig(), calc, db, rdb, newTestLogger(t)), mock, mr
}

func createTestProfile() *models.CreatorProfile {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]models.EngagementSample, 6)
	for i := range posts {
		views := 9000 + 500*(i%3)
		posts[i] = models.EngagementSample{
			Views:     views,
			Likes:     views / 20,
			Comments:  views / 100,
			Timestamp: base.Add(-time.Duration(i) * 96 * time.Hour),
			Caption:   "포스트 내용 " + string(rune('a'+i)),
		}
	}
	return &models.CreatorProfile{
		Username:          "beauty_daily",
		Bio:               "뷰티 크리에이터",
		Followers:         30000,
		RecentPosts:       posts,
		AudienceCountries: map[string]float64{"KR": 0.72, "US": 0.28},
	}
}

func TestExecute_WithInlineProfile(t *testing.T) {
	h, _, _ := setupHandler(t)

	output, err := h.Execute(context.Background(), &Input{Profile: createTestProfile()})
	require.NoError(t, err)

	assert.Equal(t, "beauty_daily", output.Username)
	assert.GreaterOrEqual(t, output.Score, 0.0)
	assert.LessOrEqual(t, output.Score, 100.0)
	assert.Len(t, output.Breakdown, 6)
	assert.False(t, output.CacheHit)
}

func TestExecute_CachesByFingerprint(t *testing.T) {
	h, _, _ := setupHandler(t)
	profile := createTestProfile()

	first, err := h.Execute(context.Background(), &Input{Profile: profile})
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := h.Execute(context.Background(), &Input{Profile: profile})
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Verdict, second.Verdict)
}

func TestExecute_ProfileEditInvalidatesCacheKey(t *testing.T) {
	h, _, _ := setupHandler(t)
	profile := createTestProfile()

	_, err := h.Execute(context.Background(), &Input{Profile: profile})
	require.NoError(t, err)

	// Any content edit produces a new fingerprint, so the stale entry is
	// never served.
	edited := *profile
	edited.Bio = profile.Bio + " 업데이트"
	output, err := h.Execute(context.Background(), &Input{Profile: &edited})
	require.NoError(t, err)
	assert.False(t, output.CacheHit)
}

func TestExecute_RejectsMalformedProfile(t *testing.T) {
	h, _, _ := setupHandler(t)

	profile := createTestProfile()
	profile.RecentPosts[0].Likes = -5

	_, err := h.Execute(context.Background(), &Input{Profile: profile})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed profile")
}

func TestExecute_LoadsProfileFromStore(t *testing.T) {
	h, mock, _ := setupHandler(t)

	posts, _ := json.Marshal([]models.EngagementSample{})
	countries, _ := json.Marshal(map[string]float64{"KR": 1.0})
	rows := sqlmock.NewRows([]string{"bio", "followers", "recent_posts", "audience_countries", "gender", "age_group"}).
		AddRow("살롱 원장", 12000, posts, countries, "female", "30s")
	mock.ExpectQuery("SELECT bio, followers").WithArgs("stored_user").WillReturnRows(rows)

	output, err := h.Execute(context.Background(), &Input{Username: "stored_user"})
	require.NoError(t, err)
	assert.Equal(t, "stored_user", output.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_MissingInput(t *testing.T) {
	h, _, _ := setupHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	assert.Error(t, err)
}
