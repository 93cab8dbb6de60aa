package filterbyrole

import (
	"context"
	"encoding/json"
	"fmt"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/models"
	"creator-match-workers/internal/ranking"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "filter-by-role"

type Handler struct {
	config *Config
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
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
		h.failJob(client, job, "FILTERING_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	opts := ranking.FilterOptions{}
	approach := models.ApproachConsumer
	if input.Brief != nil {
		opts.Gender = input.Brief.TargetGender
		opts.Age = input.Brief.TargetAge
		if input.Brief.MarketingApproach != "" {
			approach = input.Brief.MarketingApproach
		}
	}

	var counts ranking.RoleCounts
	if input.Counts != nil {
		counts = *input.Counts
	} else {
		total := input.Total
		if total <= 0 {
			total = h.config.DefaultTotal
		}
		counts = ranking.SplitForApproach(total, approach)
	}

	selected := ranking.SelectDiverse(input.Candidates, counts, opts)

	h.logger.Info("candidates filtered", map[string]interface{}{
		"candidates":  len(input.Candidates),
		"selected":    len(selected),
		"expert":      counts.Expert,
		"trendsetter": counts.Trendsetter,
	})

	return &Output{
		Selected: selected,
		Counts:   counts,
		Rejected: len(input.Candidates) - len(selected),
	}, nil
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
