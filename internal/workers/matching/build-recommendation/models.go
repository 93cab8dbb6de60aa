package buildrecommendation

import "creator-match-workers/internal/models"

type Input struct {
	Candidates []models.RankedCandidate `json:"candidates"`
	Brief      *models.CampaignBrief    `json:"brief,omitempty"`
}

type Output struct {
	Recommendations []models.Recommendation `json:"recommendations"`
	Count           int                     `json:"count"`
	BrandName       string                  `json:"brandName,omitempty"`
}
