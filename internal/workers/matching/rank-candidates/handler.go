package rankcandidates

import (
	"context"
	"encoding/json"
	"fmt"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/common/validation"
	"creator-match-workers/internal/models"
	"creator-match-workers/internal/ranking"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "rank-candidates"

type Handler struct {
	config     *Config
	rankingCfg ranking.Config
	logger     logger.Logger
}

func NewHandler(config *Config, rankingCfg ranking.Config, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		rankingCfg: rankingCfg,
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
		h.failJob(client, job, "RANKING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if len(input.Candidates) == 0 {
		return &Output{Ranked: []models.RankedCandidate{}, Mode: string(h.mode(input))}, nil
	}

	for _, c := range input.Candidates {
		if result := validation.ValidateSimilarity(c.Similarity); !result.Valid {
			return nil, fmt.Errorf("candidate %q: %s", c.Username, result.Errors[0].Message)
		}
	}

	cfg := h.rankingCfg
	cfg.Mode = h.mode(input)

	minAuth := h.config.DefaultMinAuthenticity
	if input.MinAuthenticity != nil {
		minAuth = *input.MinAuthenticity
	}
	topK := input.TopK
	if topK <= 0 {
		topK = h.config.DefaultTopK
	}

	ranked := ranking.NewRanker(cfg).Rank(input.Candidates, minAuth, topK)

	h.logger.Info("candidates ranked", map[string]interface{}{
		"total":   len(input.Candidates),
		"ranked":  len(ranked),
		"minAuth": minAuth,
		"mode":    string(cfg.Mode),
	})

	return &Output{
		Ranked:   ranked,
		Total:    len(input.Candidates),
		Filtered: len(input.Candidates) - len(ranked),
		Mode:     string(cfg.Mode),
	}, nil
}

func (h *Handler) mode(input *Input) ranking.Mode {
	switch input.Mode {
	case string(ranking.ModeSimple):
		return ranking.ModeSimple
	case string(ranking.ModeHybrid):
		return ranking.ModeHybrid
	default:
		return h.rankingCfg.Mode
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
