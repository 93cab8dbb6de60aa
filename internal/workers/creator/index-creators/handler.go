package indexcreators

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"creator-match-workers/internal/clients/embedding"
	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/common/metrics"
	"creator-match-workers/internal/common/observability"
	"creator-match-workers/internal/common/validation"
	"creator-match-workers/internal/fis"
	"creator-match-workers/internal/models"
	"creator-match-workers/internal/roles"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const TaskType = "index-creators"

const upsertProfileSQL = `
INSERT INTO creator_profiles (
	username, bio, followers, recent_posts, audience_countries,
	gender, age_group, authenticity_score, verdict, role, role_confidence, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
ON CONFLICT (username) DO UPDATE SET
	bio = EXCLUDED.bio,
	followers = EXCLUDED.followers,
	recent_posts = EXCLUDED.recent_posts,
	audience_countries = EXCLUDED.audience_countries,
	gender = EXCLUDED.gender,
	age_group = EXCLUDED.age_group,
	authenticity_score = EXCLUDED.authenticity_score,
	verdict = EXCLUDED.verdict,
	role = EXCLUDED.role,
	role_confidence = EXCLUDED.role_confidence,
	updated_at = NOW()`

type Handler struct {
	config     *Config
	calc       *fis.Calculator
	classifier *roles.Classifier
	embedder   *embedding.Client
	db         *sql.DB
	es         *elasticsearch.Client
	redis      *redis.Client
	obs        *observability.Observability
	logger     logger.Logger
}

func NewHandler(
	config *Config,
	calc *fis.Calculator,
	classifier *roles.Classifier,
	embedder *embedding.Client,
	db *sql.DB,
	es *elasticsearch.Client,
	redisClient *redis.Client,
	obs *observability.Observability,
	log logger.Logger,
) *Handler {
	return &Handler{
		config:     config,
		calc:       calc,
		classifier: classifier,
		embedder:   embedder,
		db:         db,
		es:         es,
		redis:      redisClient,
		obs:        obs,
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

	started := time.Now()
	output, err := h.execute(ctx, &input)
	if err != nil {
		h.obs.RecordJobProcessed(ctx, "failed")
		h.obs.RecordJobDuration(ctx, time.Since(started), "failed")
		h.failJob(client, job, "INDEXING_FAILED", err.Error())
		return
	}
	h.obs.RecordJobProcessed(ctx, "success")
	h.obs.RecordJobDuration(ctx, time.Since(started), "success")

	h.completeJob(client, job, output)
}

// execute processes the batch through a bounded worker pool. One creator
// failing never aborts the batch; failures come back in the output.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if len(input.Creators) == 0 {
		return nil, fmt.Errorf("creators list is empty")
	}

	batchID := input.BatchID
	if batchID == "" {
		batchID = uuid.New().String()
	}

	concurrency := h.config.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		failures []IndexFailure
		indexed  int
	)
	sem := make(chan struct{}, concurrency)

	for i := range input.Creators {
		profile := input.Creators[i]
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			err := h.indexCreator(ctx, &profile)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				metrics.CreatorsIndexed.WithLabelValues("failed").Inc()
				failures = append(failures, IndexFailure{
					Username: profile.Username,
					Error:    err.Error(),
				})
				return
			}
			metrics.CreatorsIndexed.WithLabelValues("success").Inc()
			indexed++
		}()
	}
	wg.Wait()

	h.obs.RecordCreatorsIndexed(ctx, indexed, "success")
	if len(failures) > 0 {
		h.obs.RecordCreatorsIndexed(ctx, len(failures), "failed")
	}

	h.logger.Info("batch indexed", map[string]interface{}{
		"batchId": batchID,
		"total":   len(input.Creators),
		"indexed": indexed,
		"failed":  len(failures),
	})

	return &Output{
		BatchID: batchID,
		Total:   len(input.Creators),
		Indexed: indexed,
		Failed:  failures,
	}, nil
}

func (h *Handler) indexCreator(ctx context.Context, profile *models.CreatorProfile) error {
	if result := validation.ValidateProfile(profile); !result.Valid {
		return fmt.Errorf("malformed profile: %s", strings.Join(result.GetErrorMessages(), "; "))
	}

	authenticity := h.calc.Score(*profile)
	classification := h.classifier.Classify(*profile)

	vector, err := h.embedder.Embed(ctx, profile.AllCaptions())
	if err != nil {
		return fmt.Errorf("embed %q: %w", profile.Username, err)
	}

	if err := h.storeProfile(ctx, profile, authenticity, classification); err != nil {
		return fmt.Errorf("store %q: %w", profile.Username, err)
	}

	doc := creatorDocument{
		Username:     profile.Username,
		Bio:          profile.Bio,
		Authenticity: authenticity.Score,
		Verdict:      string(authenticity.Verdict),
		Role:         classification.Role,
		RoleVector:   classification.RoleVector,
		Gender:       profile.Gender,
		AgeGroup:     profile.AgeGroup,
		Followers:    profile.Followers,
		Embedding:    vector,
		IndexedAt:    time.Now().UTC(),
	}
	if err := h.indexDocument(ctx, doc); err != nil {
		return fmt.Errorf("index %q: %w", profile.Username, err)
	}

	h.primeCaches(ctx, profile, authenticity, classification)
	return nil
}

func (h *Handler) storeProfile(ctx context.Context, profile *models.CreatorProfile, authenticity models.AuthenticityResult, classification roles.Classification) error {
	posts, err := json.Marshal(profile.RecentPosts)
	if err != nil {
		return err
	}
	countries, err := json.Marshal(profile.AudienceCountries)
	if err != nil {
		return err
	}

	_, err = h.db.ExecContext(ctx, upsertProfileSQL,
		profile.Username,
		profile.Bio,
		profile.Followers,
		posts,
		countries,
		profile.Gender,
		profile.AgeGroup,
		authenticity.Score,
		string(authenticity.Verdict),
		string(classification.Role),
		classification.Confidence,
	)
	return err
}

func (h *Handler) indexDocument(ctx context.Context, doc creatorDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      h.config.Index,
		DocumentID: doc.Username,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, h.es)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index response: %s", res.Status())
	}
	return nil
}

// primeCaches writes the score and classification caches under the current
// fingerprint, so the scoring workers hit warm entries for freshly indexed
// profiles. Cache writes are best-effort.
func (h *Handler) primeCaches(ctx context.Context, profile *models.CreatorProfile, authenticity models.AuthenticityResult, classification roles.Classification) {
	fingerprint := profile.Fingerprint()

	// Entries must decode as what the scoring workers cache themselves,
	// otherwise a warm read hands back zero values.
	scoreEntry, err := json.Marshal(authenticity)
	if err == nil {
		h.redis.Set(ctx, "fis:score:"+fingerprint, scoreEntry, h.config.CacheTTL)
	}

	roleEntry, err := json.Marshal(map[string]interface{}{
		"username":       profile.Username,
		"role":           classification.Role,
		"confidence":     classification.Confidence,
		"roleVector":     classification.RoleVector,
		"expertKeywords": classification.ExpertKeywords,
		"trendKeywords":  classification.TrendKeywords,
	})
	if err == nil {
		h.redis.Set(ctx, "roles:classification:"+fingerprint, roleEntry, h.config.CacheTTL)
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
