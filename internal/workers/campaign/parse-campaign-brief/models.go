package parsecampaignbrief

import "creator-match-workers/internal/models"

type Input struct {
	BrandName   string `json:"brandName,omitempty"`
	ProductType string `json:"productType,omitempty"`
	Description string `json:"description"`
}

type Output struct {
	Brief models.CampaignBrief `json:"brief"`
}
