package scoreauthenticity

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/common/metrics"
	"creator-match-workers/internal/common/validation"
	"creator-match-workers/internal/fis"
	"creator-match-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "score-authenticity"

	cacheKeyPrefix = "fis:score:"
)

type Handler struct {
	config *Config
	calc   *fis.Calculator
	db     *sql.DB
	redis  *redis.Client
	logger logger.Logger
}

func NewHandler(config *Config, calc *fis.Calculator, db *sql.DB, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		calc:   calc,
		db:     db,
		redis:  redisClient,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "SCORING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.Profile
	if profile == nil {
		if input.Username == "" {
			return nil, fmt.Errorf("either profile or username is required")
		}
		loaded, err := h.getProfile(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		profile = loaded
	}

	if result := validation.ValidateProfile(profile); !result.Valid {
		return nil, fmt.Errorf("malformed profile: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	fingerprint := profile.Fingerprint()
	if cached, ok := h.getCached(ctx, fingerprint); ok {
		metrics.ScoreCacheRequests.WithLabelValues("hit").Inc()
		return &Output{
			Username:  profile.Username,
			Score:     cached.Score,
			Verdict:   cached.Verdict,
			Breakdown: cached.Breakdown,
			CacheHit:  true,
		}, nil
	}
	metrics.ScoreCacheRequests.WithLabelValues("miss").Inc()

	result := h.calc.Score(*profile)
	h.putCached(ctx, fingerprint, result)

	metrics.CreatorsScored.WithLabelValues(string(result.Verdict)).Inc()
	metrics.AuthenticityScore.Observe(result.Score)

	h.logger.Info("authenticity scored", map[string]interface{}{
		"username": profile.Username,
		"score":    result.Score,
		"verdict":  string(result.Verdict),
	})

	return &Output{
		Username:  profile.Username,
		Score:     result.Score,
		Verdict:   result.Verdict,
		Breakdown: result.Breakdown,
	}, nil
}

func (h *Handler) getProfile(ctx context.Context, username string) (*models.CreatorProfile, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT bio, followers, recent_posts, audience_countries, gender, age_group
		FROM creator_profiles WHERE username = $1`, username)

	var profile models.CreatorProfile
	var posts, countries []byte
	var gender, ageGroup sql.NullString
	err := row.Scan(&profile.Bio, &profile.Followers, &posts, &countries, &gender, &ageGroup)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", username, err)
	}
	profile.Username = username
	profile.Gender = gender.String
	profile.AgeGroup = ageGroup.String

	if err := json.Unmarshal(posts, &profile.RecentPosts); err != nil {
		profile.RecentPosts = nil
	}
	if err := json.Unmarshal(countries, &profile.AudienceCountries); err != nil {
		profile.AudienceCountries = nil
	}
	return &profile, nil
}

func (h *Handler) getCached(ctx context.Context, fingerprint string) (*models.AuthenticityResult, bool) {
	val, err := h.redis.Get(ctx, cacheKeyPrefix+fingerprint).Result()
	if err != nil {
		return nil, false
	}
	var result models.AuthenticityResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (h *Handler) putCached(ctx context.Context, fingerprint string, result models.AuthenticityResult) {
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	h.redis.Set(ctx, cacheKeyPrefix+fingerprint, data, h.config.CacheTTL)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
