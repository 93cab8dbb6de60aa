package buildrecommendation

import (
	"context"
	"encoding/json"
	"fmt"

	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/models"
	"creator-match-workers/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/xeipuuv/gojsonschema"
)

const TaskType = "build-recommendation"

type Handler struct {
	config       *Config
	outputSchema map[string]interface{}
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	h := &Handler{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
	if config.RegistryPath != "" {
		reg, err := registry.LoadRegistry(config.RegistryPath)
		if err != nil {
			h.logger.Warn("activity registry unavailable, schema validation disabled", map[string]interface{}{
				"path":  config.RegistryPath,
				"error": err.Error(),
			})
		} else if activity := reg.FindByTaskType(TaskType); activity != nil {
			h.outputSchema = activity.OutputSchema
		}
	}
	return h
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
		h.failJob(client, job, "RESPONSE_VALIDATION_FAILED", err.Error())
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	approach := models.ApproachConsumer
	brandName := ""
	if input.Brief != nil {
		if input.Brief.MarketingApproach != "" {
			approach = input.Brief.MarketingApproach
		}
		brandName = input.Brief.BrandName
	}

	recommendations := make([]models.Recommendation, 0, len(input.Candidates))
	for i, c := range input.Candidates {
		recommendations = append(recommendations, models.Recommendation{
			Rank:         i + 1,
			Username:     c.Username,
			Followers:    c.Followers,
			Role:         c.Role,
			MatchPercent: c.MatchPercent,
			Authenticity: c.Authenticity,
			Verdict:      models.VerdictFor(c.Authenticity),
			Reason:       reasonFor(c, approach),
			Details: map[string]interface{}{
				"similarity": c.Similarity,
				"fusedScore": c.FusedScore,
			},
		})
	}

	output := &Output{
		Recommendations: recommendations,
		Count:           len(recommendations),
		BrandName:       brandName,
	}

	if err := h.validateOutput(output); err != nil {
		return nil, err
	}

	h.logger.Info("recommendations built", map[string]interface{}{
		"count":    output.Count,
		"approach": string(approach),
	})

	return output, nil
}

// validateOutput checks the response against the registry schema when one is
// loaded. The round trip through JSON keeps the validated document identical
// to what completeJob will serialize.
func (h *Handler) validateOutput(output *Output) error {
	if h.outputSchema == nil {
		return nil
	}

	data, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal output: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(h.outputSchema)
	documentLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("response validation failed: %v", errs)
	}
	return nil
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
