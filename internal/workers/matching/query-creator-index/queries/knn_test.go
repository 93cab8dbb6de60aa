package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, r io.Reader) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestBuildKNNSearch(t *testing.T) {
	req, err := BuildKNNSearch(KNNQuery{
		Index:           "creators",
		Vector:          []float64{0.1, 0.2, 0.3},
		K:               30,
		MinAuthenticity: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"creators"}, req.Index)

	body := decodeBody(t, req.Body)
	knn := body["knn"].(map[string]interface{})
	assert.Equal(t, "embedding", knn["field"])
	assert.Equal(t, float64(30), knn["k"])
	assert.Equal(t, float64(300), knn["num_candidates"])

	filter := knn["filter"].(map[string]interface{})
	rng := filter["range"].(map[string]interface{})["authenticity"].(map[string]interface{})
	assert.Equal(t, float64(60), rng["gte"])

	source := body["_source"].([]interface{})
	assert.Contains(t, source, "username")
	assert.NotContains(t, source, "embedding")
}

func TestBuildKNNSearchNoFilterWithoutFloor(t *testing.T) {
	req, err := BuildKNNSearch(KNNQuery{
		Index:  "creators",
		Vector: []float64{0.5},
	})
	require.NoError(t, err)

	body := decodeBody(t, req.Body)
	knn := body["knn"].(map[string]interface{})
	assert.NotContains(t, knn, "filter")
	// Defaults kick in when k is omitted.
	assert.Equal(t, float64(10), knn["k"])
}

func TestBuildKNNSearchValidation(t *testing.T) {
	_, err := BuildKNNSearch(KNNQuery{Vector: []float64{0.1}})
	assert.ErrorIs(t, err, ErrMissingIndex)

	_, err = BuildKNNSearch(KNNQuery{Index: "creators"})
	assert.ErrorIs(t, err, ErrMissingVector)
}
