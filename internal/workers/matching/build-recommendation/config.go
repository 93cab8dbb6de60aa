package buildrecommendation

import "time"

type Config struct {
	Timeout time.Duration

	// RegistryPath locates the activity registry carrying the response
	// schema this worker validates against. Empty disables validation.
	RegistryPath string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      5 * time.Second,
		RegistryPath: "configs/activity-registry.json",
	}
}
