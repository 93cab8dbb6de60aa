package scoreauthenticity

import "time"

type Config struct {
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: 12 * time.Hour,
		Timeout:  10 * time.Second,
	}
}
