package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"creator-match-workers/internal/common/config"
	apperrors "creator-match-workers/internal/common/errors"
	"creator-match-workers/internal/common/http"
	"creator-match-workers/internal/common/logger"
)

// Client calls the hosted embedding service. The scoring/ranking core never
// touches this; only indexing and query workers do.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
	logger  logger.Logger
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

func NewClient(cfg config.EmbeddingConfig, log logger.Logger) *Client {
	return &Client{
		http:    http.NewClient(config.GetDuration(cfg.Timeout)),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		logger:  log,
	}
}

// Embed returns the embedding vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch embeds several texts in one call, preserving input order. It
// retries transient failures twice with backoff before giving up.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, apperrors.NewEmbeddingFailedError(fmt.Errorf("no texts to embed"))
	}

	payload, err := json.Marshal(embeddingRequest{Model: c.model, Input: texts})
	if err != nil {
		return nil, apperrors.NewEmbeddingFailedError(err)
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * time.Second):
			case <-ctx.Done():
				return nil, apperrors.NewEmbeddingTimeoutError()
			}
		}

		vectors, err := c.doRequest(ctx, payload, len(texts))
		if err == nil {
			return vectors, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, apperrors.NewEmbeddingTimeoutError()
		}
		c.logger.Warn("Embedding request failed, retrying", map[string]interface{}{
			"attempt": attempt + 1,
			"error":   err.Error(),
		})
	}

	return nil, apperrors.NewEmbeddingFailedError(lastErr)
}

func (c *Client) doRequest(ctx context.Context, payload []byte, want int) ([][]float64, error) {
	req, err := nethttp.NewRequest(nethttp.MethodPost, c.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.DoWithContext(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != nethttp.StatusOK {
		return nil, fmt.Errorf("embedding service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed embeddingResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("invalid embedding response: %w", err)
	}
	if len(parsed.Data) != want {
		return nil, fmt.Errorf("embedding response has %d vectors, expected %d", len(parsed.Data), want)
	}

	vectors := make([][]float64, want)
	for _, d := range parsed.Data {
		if d.Index < 0 || d.Index >= want {
			return nil, fmt.Errorf("embedding response index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
