package rankcandidates

import (
	"creator-match-workers/internal/models"
	"creator-match-workers/internal/ranking"
)

type Input struct {
	Candidates []ranking.Candidate `json:"candidates"`

	// MinAuthenticity overrides the configured threshold when present.
	MinAuthenticity *float64 `json:"minAuthenticity,omitempty"`

	TopK int `json:"topK,omitempty"`

	// Mode optionally forces "simple" or "hybrid" for this job.
	Mode string `json:"mode,omitempty"`
}

type Output struct {
	Ranked   []models.RankedCandidate `json:"ranked"`
	Total    int                      `json:"total"`
	Filtered int                      `json:"filtered"`
	Mode     string                   `json:"mode"`
}
