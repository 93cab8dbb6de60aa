package querycreatorindex

import "creator-match-workers/internal/ranking"

type Input struct {
	// QueryText is embedded before the search. Ignored when Embedding is
	// supplied directly.
	QueryText string    `json:"queryText,omitempty"`
	Embedding []float64 `json:"embedding,omitempty"`

	TopN            int      `json:"topN,omitempty"`
	MinAuthenticity *float64 `json:"minAuthenticity,omitempty"`
}

type Output struct {
	Candidates []ranking.Candidate `json:"candidates"`
	TotalHits  int64               `json:"totalHits"`
	Took       int64               `json:"took"`
}
