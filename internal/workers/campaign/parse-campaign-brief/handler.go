package parsecampaignbrief

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"creator-match-workers/internal/campaign"
	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "parse-campaign-brief"

type Handler struct {
	config *Config
	parser *campaign.Parser
	logger logger.Logger
}

func NewHandler(config *Config, parser *campaign.Parser, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		parser: parser,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var variables map[string]interface{}
	if err := json.Unmarshal([]byte(job.Variables), &variables); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	if result := validation.ValidateInput(variables, GetInputSchema()); !result.Valid {
		h.failJob(client, job, "VALIDATION_FAILED", strings.Join(result.GetErrorMessages(), "; "))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "BRIEF_PARSE_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, fmt.Errorf("description is empty")
	}

	brief := h.parser.Parse(input.Description)
	brief.BrandName = input.BrandName
	if input.ProductType != "" {
		brief.ProductType = input.ProductType
	}

	h.logger.Info("brief parsed", map[string]interface{}{
		"brand":    brief.BrandName,
		"approach": string(brief.MarketingApproach),
		"gender":   brief.TargetGender,
		"keywords": len(brief.Keywords),
	})

	return &Output{Brief: brief}, nil
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
