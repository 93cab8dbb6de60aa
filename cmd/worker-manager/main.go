package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"creator-match-workers/internal/campaign"
	"creator-match-workers/internal/clients/embedding"
	"creator-match-workers/internal/common/camunda"
	"creator-match-workers/internal/common/config"
	"creator-match-workers/internal/common/database"
	"creator-match-workers/internal/common/logger"
	"creator-match-workers/internal/common/observability"
	"creator-match-workers/internal/fis"
	"creator-match-workers/internal/ranking"
	"creator-match-workers/internal/roles"

	// Campaign Workers (1)
	pcb "creator-match-workers/internal/workers/campaign/parse-campaign-brief"

	// Creator Workers (3)
	cr "creator-match-workers/internal/workers/creator/classify-role"
	ic "creator-match-workers/internal/workers/creator/index-creators"
	sa "creator-match-workers/internal/workers/creator/score-authenticity"

	// Matching Workers (4)
	br "creator-match-workers/internal/workers/matching/build-recommendation"
	fbr "creator-match-workers/internal/workers/matching/filter-by-role"
	qci "creator-match-workers/internal/workers/matching/query-creator-index"
	rc "creator-match-workers/internal/workers/matching/rank-candidates"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	defer camundaClient.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Shared domain components ---
	fisCfg := fis.DefaultConfig()
	if cfg.Scoring.TargetCountry != "" {
		fisCfg.Locale.Country = cfg.Scoring.TargetCountry
	}
	if cfg.Scoring.TargetAudienceRatio > 0 {
		fisCfg.Locale.TargetAudienceRatio = cfg.Scoring.TargetAudienceRatio
	}
	calculator := fis.NewCalculator(fisCfg)
	classifier := roles.NewClassifier()
	briefParser := campaign.NewParser()
	embedder := embedding.NewClient(cfg.Embedding, log)

	rankingCfg := ranking.Config{
		Mode:               ranking.Mode(cfg.Ranking.Mode),
		SimilarityWeight:   cfg.Ranking.SimilarityWeight,
		AuthenticityWeight: cfg.Ranking.AuthenticityWeight,
		RRFWeight:          cfg.Ranking.RRFWeight,
		RRFConstant:        cfg.Ranking.RRFConstant,
		Temperature:        cfg.Ranking.Temperature,
	}

	cacheTTL := 12 * time.Hour
	if cfg.Database.Redis.ScoreTTL > 0 {
		cacheTTL = time.Duration(cfg.Database.Redis.ScoreTTL) * time.Second
	}

	zapLog.Info("Domain components initialized")

	// --- Register Workers ---

	// --- 1. Creator Workers (3) ---
	if cfg.Workers[sa.TaskType].Enabled {
		handler := sa.NewHandler(
			&sa.Config{
				CacheTTL: cacheTTL,
				Timeout:  time.Duration(cfg.Workers[sa.TaskType].Timeout) * time.Millisecond,
			},
			calculator, pg.DB, redis.Client, log,
		)
		startWorker(zeebeClient, sa.TaskType, cfg.Workers[sa.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[cr.TaskType].Enabled {
		handler := cr.NewHandler(
			&cr.Config{
				CacheTTL: cacheTTL,
				Timeout:  time.Duration(cfg.Workers[cr.TaskType].Timeout) * time.Millisecond,
			},
			classifier, redis.Client, log,
		)
		startWorker(zeebeClient, cr.TaskType, cfg.Workers[cr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[ic.TaskType].Enabled {
		handler := ic.NewHandler(
			&ic.Config{
				Timeout:     time.Duration(cfg.Workers[ic.TaskType].Timeout) * time.Millisecond,
				Index:       cfg.Database.Elasticsearch.CreatorIndex,
				Concurrency: cfg.Embedding.Concurrency,
				CacheTTL:    cacheTTL,
			},
			calculator, classifier, embedder, pg.DB, esClient.Client, redis.Client, obs, log,
		)
		startWorker(zeebeClient, ic.TaskType, cfg.Workers[ic.TaskType], handler.Handle, zapLog)
	}

	// --- 2. Campaign Workers (1) ---
	if cfg.Workers[pcb.TaskType].Enabled {
		handler := pcb.NewHandler(
			&pcb.Config{
				Timeout: time.Duration(cfg.Workers[pcb.TaskType].Timeout) * time.Millisecond,
			},
			briefParser, log,
		)
		startWorker(zeebeClient, pcb.TaskType, cfg.Workers[pcb.TaskType], handler.Handle, zapLog)
	}

	// --- 3. Matching Workers (4) ---
	if cfg.Workers[qci.TaskType].Enabled {
		handler := qci.NewHandler(
			&qci.Config{
				Timeout:                time.Duration(cfg.Workers[qci.TaskType].Timeout) * time.Millisecond,
				Index:                  cfg.Database.Elasticsearch.CreatorIndex,
				DefaultTopN:            20,
				DefaultMinAuthenticity: cfg.Scoring.MinAuthenticity,
			},
			esClient.Client, embedder, log,
		)
		startWorker(zeebeClient, qci.TaskType, cfg.Workers[qci.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[rc.TaskType].Enabled {
		handler := rc.NewHandler(
			&rc.Config{
				Timeout:                time.Duration(cfg.Workers[rc.TaskType].Timeout) * time.Millisecond,
				DefaultMinAuthenticity: cfg.Scoring.MinAuthenticity,
				DefaultTopK:            20,
			},
			rankingCfg, log,
		)
		startWorker(zeebeClient, rc.TaskType, cfg.Workers[rc.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[fbr.TaskType].Enabled {
		handler := fbr.NewHandler(
			&fbr.Config{
				Timeout:      time.Duration(cfg.Workers[fbr.TaskType].Timeout) * time.Millisecond,
				DefaultTotal: 10,
			},
			log,
		)
		startWorker(zeebeClient, fbr.TaskType, cfg.Workers[fbr.TaskType], handler.Handle, zapLog)
	}

	if cfg.Workers[br.TaskType].Enabled {
		handler := br.NewHandler(
			&br.Config{
				Timeout:      time.Duration(cfg.Workers[br.TaskType].Timeout) * time.Millisecond,
				RegistryPath: cfg.Registry.Path,
			},
			log,
		)
		startWorker(zeebeClient, br.TaskType, cfg.Workers[br.TaskType], handler.Handle, zapLog)
	}

	zapLog.Info("All 8 workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_ = shutdownCtx

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client zbc.Client, taskType string, wcfg config.WorkerConfig, handlerFunc func(worker.JobClient, entities.Job), log *zap.Logger) {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return
	}

	client.NewJobWorker().
		JobType(taskType).
		Handler(handlerFunc).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(time.Duration(wcfg.Timeout) * time.Millisecond).
		Open()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
}
