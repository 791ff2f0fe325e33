// Package ads wraps the external ads/spam detection capability. The
// model itself lives behind an HTTP service; this package only carries
// the one boolean signal into the rule engine.
package ads

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Detector decides whether a text is a paid promotional/classified post.
type Detector interface {
	PredictIsAd(ctx context.Context, text string) (bool, error)
}

// HTTPDetector calls a remote ads prediction endpoint.
type HTTPDetector struct {
	baseURL string
	client  *http.Client
}

func NewHTTPDetector(baseURL string) *HTTPDetector {
	return &HTTPDetector{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type predictRequest struct {
	Text string `json:"text"`
}

type predictResponse struct {
	IsAd bool `json:"is_ad"`
}

func (d *HTTPDetector) PredictIsAd(ctx context.Context, text string) (bool, error) {
	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return false, fmt.Errorf("marshal ads request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build ads request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("call ads detector: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("ads detector returned status %d", resp.StatusCode)
	}
	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("decode ads response: %w", err)
	}
	return out.IsAd, nil
}

// NoopDetector never flags anything; used when no ads service is
// configured.
type NoopDetector struct{}

func (NoopDetector) PredictIsAd(ctx context.Context, text string) (bool, error) {
	return false, nil
}
