package scoreauthenticity

import "creator-match-workers/internal/models"

type Input struct {
	// Username triggers a profile-store lookup when Profile is not inlined.
	Username string                 `json:"username"`
	Profile  *models.CreatorProfile `json:"profile,omitempty"`
}

type Output struct {
	Username  string             `json:"username"`
	Score     float64            `json:"authenticityScore"`
	Verdict   models.Verdict     `json:"verdict"`
	Breakdown map[string]float64 `json:"breakdown"`
	CacheHit  bool               `json:"cacheHit"`
}
