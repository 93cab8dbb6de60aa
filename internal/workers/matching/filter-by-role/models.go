package filterbyrole

import (
	"creator-match-workers/internal/models"
	"creator-match-workers/internal/ranking"
)

type Input struct {
	Candidates []models.RankedCandidate `json:"candidates"`

	// Brief supplies the audience constraints and, when Counts is absent,
	// the marketing approach driving the per-role split.
	Brief *models.CampaignBrief `json:"brief,omitempty"`

	// Counts, when present, overrides the approach-derived split.
	Counts *ranking.RoleCounts `json:"counts,omitempty"`

	// Total sizes the approach-derived split. Ignored when Counts is set.
	Total int `json:"total,omitempty"`
}

type Output struct {
	Selected []models.RankedCandidate `json:"selected"`
	Counts   ranking.RoleCounts       `json:"counts"`
	Rejected int                      `json:"rejected"`
}
