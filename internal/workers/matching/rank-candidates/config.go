package rankcandidates

import "time"

type Config struct {
	Timeout time.Duration

	// DefaultMinAuthenticity applies when the job does not carry its own
	// threshold.
	DefaultMinAuthenticity float64

	// DefaultTopK bounds the result list when the job omits topK.
	DefaultTopK int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                5 * time.Second,
		DefaultMinAuthenticity: 60,
		DefaultTopK:            20,
	}
}
