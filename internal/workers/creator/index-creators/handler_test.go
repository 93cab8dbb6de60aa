package indexcreators

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"creator-match-workers/internal/clients/embedding"
	"creator-match-workers/internal/common/config"
	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/common/observability"
	"creator-match-workers/internal/fis"
	"creator-match-workers/internal/models"
	"creator-match-workers/internal/roles"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{
		Timeout:     30 * time.Second,
		Index:       "creators",
		Concurrency: 2,
		CacheTTL:    10 * time.Minute,
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

// stubESTransport acknowledges every index request.
type stubESTransport struct{}

func (stubESTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: http.StatusCreated,
		Header: http.Header{
			"X-Elastic-Product": []string{"Elasticsearch"},
			"Content-Type":      []string{"application/json"},
		},
		Body: io.NopCloser(strings.NewReader(`{"result": "created"}`)),
	}, nil
}

func startEmbeddingServer(t *testing.T) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": [{"index": 0, "embedding": [0.1, 0.2, 0.3]}]}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func setupHandler(t *testing.T) (*Handler, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://stub:9200"},
		Transport: stubESTransport{},
	})
	require.NoError(t, err)

	embedder := embedding.NewClient(config.EmbeddingConfig{
		BaseURL: startEmbeddingServer(t).URL,
		Model:   "text-embedding-3-small",
		Timeout: 5000,
	}, &testLogger{t: t})

	h := NewHandler(
		createTestConfig(),
		fis.NewCalculator(fis.DefaultConfig()),
		roles.NewClassifier(),
		embedder,
		db,
		esClient,
		rdb,
		&observability.Observability{},
		&testLogger{t: t},
	)
	return h, mock, mr
}

func creatorBatch() []models.CreatorProfile {
	base := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	makeProfile := func(username, bio string) models.CreatorProfile {
		posts := make([]models.EngagementSample, 5)
		for i := range posts {
			posts[i] = models.EngagementSample{
				Views:     10000 + 700*i,
				Likes:     500 + 30*i,
				Comments:  90 + 5*i,
				Timestamp: base.Add(-time.Duration(i) * 72 * time.Hour),
				Caption:   bio + " 콘텐츠 " + string(rune('a'+i)),
			}
		}
		return models.CreatorProfile{
			Username:          username,
			Bio:               bio,
			Followers:         25000,
			RecentPosts:       posts,
			AudienceCountries: map[string]float64{"KR": 0.8, "JP": 0.2},
		}
	}
	return []models.CreatorProfile{
		makeProfile("salon_master", "강남 살롱 원장"),
		makeProfile("daily_beauty", "데일리룩 추천 꿀팁"),
	}
}

func TestExecute_IndexesBatch(t *testing.T) {
	h, mock, mr := setupHandler(t)
	mock.ExpectExec("INSERT INTO creator_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO creator_profiles").WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := h.Execute(context.Background(), &Input{Creators: creatorBatch()})
	require.NoError(t, err)

	assert.NotEmpty(t, output.BatchID)
	assert.Equal(t, 2, output.Total)
	assert.Equal(t, 2, output.Indexed)
	assert.Empty(t, output.Failed)
	require.NoError(t, mock.ExpectationsWereMet())

	// Both cache families are primed per creator.
	keys := mr.Keys()
	scoreKeys, roleKeys := 0, 0
	for _, k := range keys {
		if strings.HasPrefix(k, "fis:score:") {
			scoreKeys++
		}
		if strings.HasPrefix(k, "roles:classification:") {
			roleKeys++
		}
	}
	assert.Equal(t, 2, scoreKeys)
	assert.Equal(t, 2, roleKeys)
}

func TestExecute_IsolatesFailures(t *testing.T) {
	h, mock, _ := setupHandler(t)
	mock.ExpectExec("INSERT INTO creator_profiles").WillReturnResult(sqlmock.NewResult(0, 1))

	batch := creatorBatch()[:1]
	batch = append(batch, models.CreatorProfile{Username: "broken", Followers: -10})

	output, err := h.Execute(context.Background(), &Input{Creators: batch})
	require.NoError(t, err)

	assert.Equal(t, 2, output.Total)
	assert.Equal(t, 1, output.Indexed)
	require.Len(t, output.Failed, 1)
	assert.Equal(t, "broken", output.Failed[0].Username)
	assert.Contains(t, output.Failed[0].Error, "malformed profile")
}

func TestExecute_PreservesBatchID(t *testing.T) {
	h, mock, _ := setupHandler(t)
	mock.ExpectExec("INSERT INTO creator_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO creator_profiles").WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := h.Execute(context.Background(), &Input{
		BatchID:  "batch-2026-06-01",
		Creators: creatorBatch(),
	})
	require.NoError(t, err)
	assert.Equal(t, "batch-2026-06-01", output.BatchID)
}

func TestExecute_EmptyBatch(t *testing.T) {
	h, _, _ := setupHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	require.Error(t, err)
}

func TestExecute_PrimedScoreCacheDecodes(t *testing.T) {
	h, mock, mr := setupHandler(t)
	mock.ExpectExec("INSERT INTO creator_profiles").WillReturnResult(sqlmock.NewResult(0, 1))

	profile := creatorBatch()[0]
	_, err := h.Execute(context.Background(), &Input{Creators: []models.CreatorProfile{profile}})
	require.NoError(t, err)

	want := h.calc.Score(profile)

	// The primed entry must decode as the score worker's cached type.
	raw, err := mr.Get("fis:score:" + profile.Fingerprint())
	require.NoError(t, err)
	var cached models.AuthenticityResult
	require.NoError(t, json.Unmarshal([]byte(raw), &cached))
	assert.Equal(t, want.Score, cached.Score)
	assert.Equal(t, want.Verdict, cached.Verdict)
	assert.NotZero(t, cached.Score)
}
