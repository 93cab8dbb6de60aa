package roles

import "creator-match-workers/internal/models"

// Strategy fixes the (professional, lifestyle) signal ordering for one role.
// The two roles use the same two-signal extraction with reversed weighting,
// so downstream consumers never branch on the role themselves.
type Strategy interface {
	Role() models.Role
	// SignalVector maps a confidence in [0,1] to the (expert, trendsetter)
	// affinity pair embedded alongside the creator document.
	SignalVector(confidence float64) [2]float64
}

type expertStrategy struct{}

func (expertStrategy) Role() models.Role { return models.RoleExpert }

func (expertStrategy) SignalVector(confidence float64) [2]float64 {
	return [2]float64{confidence, 1 - confidence}
}

type trendsetterStrategy struct{}

func (trendsetterStrategy) Role() models.Role { return models.RoleTrendsetter }

func (trendsetterStrategy) SignalVector(confidence float64) [2]float64 {
	return [2]float64{1 - confidence, confidence}
}

// StrategyFor returns the strategy variant for a role. Unknown roles fall
// back to the Trendsetter strategy, matching the classifier's default lean.
func StrategyFor(role models.Role) Strategy {
	if role == models.RoleExpert {
		return expertStrategy{}
	}
	return trendsetterStrategy{}
}
