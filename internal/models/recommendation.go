package models

// RankedCandidate is a query-scoped ranking row. Similarity, Authenticity and
// Rank are the raw inputs kept for explainability; Authenticity is the value
// snapshotted into the index at indexing time, not a live profile reference.
type RankedCandidate struct {
	Username     string  `json:"username"`
	Similarity   float64 `json:"similarity"`
	Authenticity float64 `json:"authenticity"`
	Role         Role    `json:"role"`
	Gender       string  `json:"gender,omitempty"`
	AgeGroup     string  `json:"ageGroup,omitempty"`
	Followers    int     `json:"followers,omitempty"`
	Rank         int     `json:"rank"`
	FusedScore   float64 `json:"fusedScore"`
	MatchPercent float64 `json:"matchPercent"`
}

// Recommendation is one row of the final response shown to a marketing user.
type Recommendation struct {
	Rank         int                    `json:"rank"`
	Username     string                 `json:"username"`
	Followers    int                    `json:"followers"`
	Role         Role                   `json:"type"`
	MatchPercent float64                `json:"matchScore"`
	Authenticity float64                `json:"authenticityScore"`
	Verdict      Verdict                `json:"verdict"`
	Reason       string                 `json:"reason"`
	Details      map[string]interface{} `json:"details,omitempty"`
}
