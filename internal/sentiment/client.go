// Package sentiment wraps the external classifier service. The adapter
// absorbs every failure mode of the remote call: callers always get a
// usable Sentiment value and the write path never fails on classifier
// health.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"feedback-hub/internal/models"

	"go.uber.org/zap"
)

// Classifier labels text. Implementations must not return errors; when
// classification cannot be completed they return the unknown sentinel.
type Classifier interface {
	Classify(ctx context.Context, text string) models.Sentiment
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewClient(baseURL string, logger *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: baseURL,
		// One bounded attempt per classification; a slow analyzer costs
		// request latency, never request success.
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Classify posts the text to the analyzer and returns its label and score.
// Network errors, non-2xx responses, and malformed bodies all downgrade to
// the unknown sentinel.
func (c *Client) Classify(ctx context.Context, text string) models.Sentiment {
	body, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		c.logger.Warnf("sentiment request encode failed: %v", err)
		return models.UnknownSentiment()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		c.logger.Warnf("sentiment request build failed: %v", err)
		return models.UnknownSentiment()
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warnf("sentiment service unreachable: %v", err)
		return models.UnknownSentiment()
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warnf("sentiment service returned status %d", resp.StatusCode)
		return models.UnknownSentiment()
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		c.logger.Warnf("sentiment response decode failed: %v", err)
		return models.UnknownSentiment()
	}

	if !classifierLabel(result.Label) || result.Score < 0 || result.Score > 1 {
		c.logger.Warnf("sentiment response out of contract: label=%q score=%v", result.Label, result.Score)
		return models.UnknownSentiment()
	}

	return models.Sentiment{Label: result.Label, Score: result.Score}
}

// classifierLabel accepts only what the analyzer is allowed to produce;
// "unknown" is reserved for the sentinel.
func classifierLabel(label string) bool {
	switch label {
	case models.LabelPositive, models.LabelNeutral, models.LabelNegative:
		return true
	}
	return false
}
