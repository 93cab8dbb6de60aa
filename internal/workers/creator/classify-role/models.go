package classifyrole

import "creator-match-workers/internal/models"

type Input struct {
	Profile models.CreatorProfile `json:"profile"`
}

type Output struct {
	Username       string      `json:"username"`
	Role           models.Role `json:"role"`
	Confidence     float64     `json:"confidence"`
	RoleVector     [2]float64  `json:"roleVector"`
	ExpertKeywords []string    `json:"expertKeywords,omitempty"`
	TrendKeywords  []string    `json:"trendKeywords,omitempty"`
	CacheHit       bool        `json:"cacheHit"`
}
