package filterbyrole

import "time"

type Config struct {
	Timeout time.Duration

	// DefaultTotal is the mixed-list size when the job requests neither
	// explicit per-role counts nor a total.
	DefaultTotal int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		DefaultTotal: 10,
	}
}
