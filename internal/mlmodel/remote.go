package mlmodel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/uniguide/internal/features"
)

// ConfidenceScale names how an inference service reports confidence.
type ConfidenceScale string

const (
	// ScaleAuto reads values up to 1 as fractions and larger ones as
	// percentages. Small percentages such as 0.8% are misread under it.
	ScaleAuto     ConfidenceScale = "auto"
	ScaleFraction ConfidenceScale = "fraction"
	ScalePercent  ConfidenceScale = "percent"
)

// ParseConfidenceScale accepts "auto", "fraction" or "percent". The empty
// string means auto.
func ParseConfidenceScale(s string) (ConfidenceScale, error) {
	switch v := ConfidenceScale(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ScaleAuto, nil
	case ScaleAuto, ScaleFraction, ScalePercent:
		return v, nil
	}
	return "", fmt.Errorf("unknown confidence scale %q", s)
}

// RemoteClassifier asks an external inference service for predictions.
// The service receives POST {baseURL}/predict with the feature vector and
// answers with a label and its confidence. A "scale" field in the answer
// overrides the configured scale for that answer.
type RemoteClassifier struct {
	client  *http.Client
	baseURL string
	scale   ConfidenceScale
}

// RemoteOption configures a RemoteClassifier.
type RemoteOption func(*RemoteClassifier)

// WithConfidenceScale fixes the scale the service reports confidence on.
func WithConfidenceScale(scale ConfidenceScale) RemoteOption {
	return func(c *RemoteClassifier) {
		if scale != "" {
			c.scale = scale
		}
	}
}

// NewRemoteClassifier returns a client for the inference service at baseURL.
func NewRemoteClassifier(baseURL string, timeout time.Duration, opts ...RemoteOption) *RemoteClassifier {
	c := &RemoteClassifier{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		scale:   ScaleAuto,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Scale reports the configured confidence scale.
func (c *RemoteClassifier) Scale() ConfidenceScale { return c.scale }

type remoteRequest struct {
	FeatureNames []string  `json:"feature_names"`
	Features     []float64 `json:"features"`
}

type remoteResponse struct {
	Label      string          `json:"label"`
	Confidence float64         `json:"confidence"`
	Scale      ConfidenceScale `json:"scale,omitempty"`
}

func (c *RemoteClassifier) Name() string { return "remote:" + c.baseURL }

func (c *RemoteClassifier) Predict(ctx context.Context, v features.Vector) (Prediction, error) {
	body, err := json.Marshal(remoteRequest{
		FeatureNames: features.Names[:],
		Features:     v.Slice(),
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return Prediction{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Prediction{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Prediction{}, fmt.Errorf("inference service returned %s", resp.Status)
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Prediction{}, fmt.Errorf("decode response: %w", err)
	}
	if out.Label == "" {
		return Prediction{}, fmt.Errorf("inference service returned no label")
	}

	scale := c.scale
	if out.Scale != "" {
		if scale, err = ParseConfidenceScale(string(out.Scale)); err != nil {
			return Prediction{}, fmt.Errorf("inference service: %w", err)
		}
	}
	p, err := probability(out.Confidence, scale)
	if err != nil {
		return Prediction{}, err
	}
	return Prediction{Label: out.Label, Probability: p}, nil
}

// probability converts a confidence on the given scale to a fraction.
// Under ScaleAuto, 1.0 is read as a fraction.
func probability(v float64, scale ConfidenceScale) (float64, error) {
	limit := 100.0
	if scale == ScaleFraction {
		limit = 1
	}
	if v < 0 || v > limit {
		return 0, fmt.Errorf("confidence %g out of range for %s scale", v, scale)
	}
	switch {
	case scale == ScalePercent:
		return v / 100, nil
	case scale == ScaleAuto && v > 1:
		return v / 100, nil
	}
	return v, nil
}
