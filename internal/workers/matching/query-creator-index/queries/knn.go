package queries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex  = errors.New("index name is required")
	ErrMissingVector = errors.New("query vector is required")
)

// sourceFields is the candidate projection pulled from each hit. The
// embedding itself stays out of the response.
var sourceFields = []string{"username", "authenticity", "role", "gender", "ageGroup", "followers"}

// KNNQuery describes one approximate nearest-neighbour search over the
// creator index.
type KNNQuery struct {
	Index           string
	Vector          []float64
	K               int
	NumCandidates   int
	MinAuthenticity float64
}

// BuildKNNSearch assembles the kNN search request. The authenticity floor
// rides inside the kNN filter so Elasticsearch prunes low-trust creators
// before scoring neighbours.
func BuildKNNSearch(q KNNQuery) (*esapi.SearchRequest, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}
	if len(q.Vector) == 0 {
		return nil, ErrMissingVector
	}
	if q.K <= 0 {
		q.K = 10
	}
	if q.NumCandidates < q.K {
		q.NumCandidates = q.K * 10
	}

	knn := map[string]interface{}{
		"field":          "embedding",
		"query_vector":   q.Vector,
		"k":              q.K,
		"num_candidates": q.NumCandidates,
	}
	if q.MinAuthenticity > 0 {
		knn["filter"] = map[string]interface{}{
			"range": map[string]interface{}{
				"authenticity": map[string]interface{}{"gte": q.MinAuthenticity},
			},
		}
	}

	body, err := json.Marshal(map[string]interface{}{
		"knn":     knn,
		"_source": sourceFields,
	})
	if err != nil {
		return nil, err
	}

	return &esapi.SearchRequest{
		Index: []string{q.Index},
		Body:  bytes.NewReader(body),
	}, nil
}

// Hit is one scored creator document.
type Hit struct {
	Username     string  `json:"username"`
	Authenticity float64 `json:"authenticity"`
	Role         string  `json:"role"`
	Gender       string  `json:"gender"`
	AgeGroup     string  `json:"ageGroup"`
	Followers    int     `json:"followers"`
	Score        float64 `json:"-"`
}

// SearchResult is the decoded kNN response.
type SearchResult struct {
	Hits      []Hit
	TotalHits int64
	Took      int64
}

// Execute runs the search and decodes the hit list in score order.
func Execute(ctx context.Context, esClient *elasticsearch.Client, q KNNQuery) (*SearchResult, error) {
	req, err := BuildKNNSearch(q)
	if err != nil {
		return nil, err
	}

	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("knn search failed: %s", res.String())
	}

	var decoded struct {
		Took int64 `json:"took"`
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Score  float64 `json:"_score"`
				Source Hit     `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(decoded.Hits.Hits))
	for _, h := range decoded.Hits.Hits {
		hit := h.Source
		hit.Score = h.Score
		hits = append(hits, hit)
	}

	return &SearchResult{
		Hits:      hits,
		TotalHits: decoded.Hits.Total.Value,
		Took:      decoded.Took,
	}, nil
}
