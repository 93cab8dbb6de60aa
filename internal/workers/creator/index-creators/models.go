package indexcreators

import (
	"time"

	"creator-match-workers/internal/models"
)

type Input struct {
	// BatchID is assigned when absent so retries stay traceable.
	BatchID  string                  `json:"batchId,omitempty"`
	Creators []models.CreatorProfile `json:"creators"`
}

// IndexFailure records one creator that could not be indexed. The rest of
// the batch proceeds.
type IndexFailure struct {
	Username string `json:"username"`
	Error    string `json:"error"`
}

type Output struct {
	BatchID string         `json:"batchId"`
	Total   int            `json:"total"`
	Indexed int            `json:"indexed"`
	Failed  []IndexFailure `json:"failed,omitempty"`
}

// creatorDocument is the Elasticsearch document shape. The embedding is
// write-only; queries project it away.
type creatorDocument struct {
	Username     string      `json:"username"`
	Bio          string      `json:"bio,omitempty"`
	Authenticity float64     `json:"authenticity"`
	Verdict      string      `json:"verdict"`
	Role         models.Role `json:"role"`
	RoleVector   [2]float64  `json:"roleVector"`
	Gender       string      `json:"gender,omitempty"`
	AgeGroup     string      `json:"ageGroup,omitempty"`
	Followers    int         `json:"followers"`
	Embedding    []float64   `json:"embedding"`
	IndexedAt    time.Time   `json:"indexedAt"`
}
