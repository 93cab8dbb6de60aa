package indexcreators

import "time"

type Config struct {
	Timeout time.Duration

	// Index is the Elasticsearch index creator documents land in.
	Index string

	// Concurrency bounds the per-batch worker pool.
	Concurrency int

	// CacheTTL applies to the score and classification caches primed
	// during indexing.
	CacheTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     120 * time.Second,
		Index:       "creators",
		Concurrency: 4,
		CacheTTL:    12 * time.Hour,
	}
}
