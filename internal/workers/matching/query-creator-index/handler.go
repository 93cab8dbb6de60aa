package querycreatorindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"creator-match-workers/internal/clients/embedding"
	apperrors "creator-match-workers/internal/common/errors"
	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/models"
	"creator-match-workers/internal/ranking"
	"creator-match-workers/internal/workers/matching/query-creator-index/queries"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const TaskType = "query-creator-index"

type Handler struct {
	config   *Config
	client   *elasticsearch.Client
	embedder *embedding.Client
	errors   *apperrors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, embedder *embedding.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		client:   client,
		embedder: embedder,
		errors:   apperrors.NewErrorHandler(scoped),
		logger:   scoped,
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
		// ctx may already be past its deadline here.
		h.errors.HandleJobError(context.Background(), client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	vector := input.Embedding
	if len(vector) == 0 {
		if input.QueryText == "" {
			return nil, errors.New("either queryText or embedding is required")
		}
		embedded, err := h.embedder.Embed(ctx, input.QueryText)
		if err != nil {
			return nil, err
		}
		vector = embedded
	}

	topN := input.TopN
	if topN <= 0 {
		topN = h.config.DefaultTopN
	}
	minAuth := h.config.DefaultMinAuthenticity
	if input.MinAuthenticity != nil {
		minAuth = *input.MinAuthenticity
	}

	// Overfetch so downstream role filtering cannot starve the list.
	result, err := queries.Execute(ctx, h.client, queries.KNNQuery{
		Index:           h.config.Index,
		Vector:          vector,
		K:               topN * ranking.OverfetchFactor,
		MinAuthenticity: minAuth,
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, apperrors.NewSearchTimeoutError(h.config.Index)
		}
		return nil, apperrors.NewVectorSearchFailedError(err)
	}

	candidates := make([]ranking.Candidate, 0, len(result.Hits))
	for _, hit := range result.Hits {
		candidates = append(candidates, ranking.Candidate{
			Username:     hit.Username,
			Similarity:   hit.Score,
			Authenticity: hit.Authenticity,
			Role:         normalizeRole(hit.Role),
			Gender:       hit.Gender,
			AgeGroup:     hit.AgeGroup,
			Followers:    hit.Followers,
		})
	}

	h.logger.Info("creator index queried", map[string]interface{}{
		"hits":      len(candidates),
		"totalHits": result.TotalHits,
		"took":      result.Took,
	})

	return &Output{
		Candidates: candidates,
		TotalHits:  result.TotalHits,
		Took:       result.Took,
	}, nil
}

// normalizeRole canonicalizes role strings coming out of the index; documents
// written before the capitalized constants carry lowercase values.
func normalizeRole(raw string) models.Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "expert":
		return models.RoleExpert
	case "trendsetter":
		return models.RoleTrendsetter
	default:
		return models.Role(raw)
	}
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
