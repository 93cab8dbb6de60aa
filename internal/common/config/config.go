package config

import "fmt"

type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Database  DatabaseConfig          `mapstructure:"database"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Scoring   ScoringConfig           `mapstructure:"scoring"`
	Ranking   RankingConfig           `mapstructure:"ranking"`
	Embedding EmbeddingConfig         `mapstructure:"embedding"`
	Registry  RegistryConfig          `mapstructure:"registry"`
	Logging   LoggingConfig           `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	// CreatorIndex holds creator documents with their embedding vectors.
	CreatorIndex string `mapstructure:"creator_index"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// ScoreTTL bounds how long cached scoring/classification results live,
	// in seconds. 0 means no expiry.
	ScoreTTL int `mapstructure:"score_ttl"`
}

type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// ScoringConfig tunes the authenticity scorer.
type ScoringConfig struct {
	// TargetCountry and TargetAudienceRatio configure the market signal of
	// the geographic-consistency indicator.
	TargetCountry       string  `mapstructure:"target_country"`
	TargetAudienceRatio float64 `mapstructure:"target_audience_ratio"`
	// MinAuthenticity is the default retrieval cut when a query does not
	// supply one.
	MinAuthenticity float64 `mapstructure:"min_authenticity"`
}

// RankingConfig selects the fusion mode and coefficients.
type RankingConfig struct {
	Mode               string  `mapstructure:"mode"` // "simple" or "hybrid"
	SimilarityWeight   float64 `mapstructure:"similarity_weight"`
	AuthenticityWeight float64 `mapstructure:"authenticity_weight"`
	RRFWeight          float64 `mapstructure:"rrf_weight"`
	RRFConstant        float64 `mapstructure:"rrf_constant"`
	Temperature        float64 `mapstructure:"temperature"`
}

// EmbeddingConfig points at the hosted embedding service.
type EmbeddingConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	APIKey     string `mapstructure:"api_key"`
	Model      string `mapstructure:"model"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
	Dimensions int    `mapstructure:"dimensions"`
	// Concurrency bounds the batch-indexing worker pool, sized to the
	// embedding service's rate limit.
	Concurrency int `mapstructure:"concurrency"`
}

type RegistryConfig struct {
	Path string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
