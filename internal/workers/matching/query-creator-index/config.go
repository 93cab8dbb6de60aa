package querycreatorindex

import "time"

type Config struct {
	Timeout time.Duration

	// Index is the Elasticsearch index holding creator documents.
	Index string

	DefaultTopN            int
	DefaultMinAuthenticity float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:                15 * time.Second,
		Index:                  "creators",
		DefaultTopN:            20,
		DefaultMinAuthenticity: 60,
	}
}
