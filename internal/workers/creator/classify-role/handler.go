package classifyrole

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/common/metrics"
	"creator-match-workers/internal/common/validation"
	"creator-match-workers/internal/roles"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "classify-role"

	cacheKeyPrefix = "roles:classification:"
)

type Handler struct {
	config     *Config
	classifier *roles.Classifier
	redis      *redis.Client
	logger     logger.Logger
}

func NewHandler(config *Config, classifier *roles.Classifier, redisClient *redis.Client, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		classifier: classifier,
		redis:      redisClient,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, "CLASSIFICATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	profile := input.Profile
	if result := validation.ValidateProfile(&profile); !result.Valid {
		return nil, fmt.Errorf("malformed profile: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	fingerprint := profile.Fingerprint()
	if cached, ok := h.getCached(ctx, fingerprint); ok {
		metrics.ScoreCacheRequests.WithLabelValues("hit").Inc()
		cached.CacheHit = true
		return cached, nil
	}
	metrics.ScoreCacheRequests.WithLabelValues("miss").Inc()

	classification := h.classifier.Classify(profile)
	output := &Output{
		Username:       profile.Username,
		Role:           classification.Role,
		Confidence:     classification.Confidence,
		RoleVector:     classification.RoleVector,
		ExpertKeywords: classification.ExpertKeywords,
		TrendKeywords:  classification.TrendKeywords,
	}
	h.putCached(ctx, fingerprint, output)

	h.logger.Info("creator classified", map[string]interface{}{
		"username":   profile.Username,
		"role":       string(classification.Role),
		"confidence": classification.Confidence,
	})

	return output, nil
}

func (h *Handler) getCached(ctx context.Context, fingerprint string) (*Output, bool) {
	val, err := h.redis.Get(ctx, cacheKeyPrefix+fingerprint).Result()
	if err != nil {
		return nil, false
	}
	var output Output
	if err := json.Unmarshal([]byte(val), &output); err != nil {
		return nil, false
	}
	return &output, true
}

func (h *Handler) putCached(ctx context.Context, fingerprint string, output *Output) {
	data, err := json.Marshal(output)
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
