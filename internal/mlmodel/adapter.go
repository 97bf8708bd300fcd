package mlmodel

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/abhisek/uniguide/internal/features"
)

// UnavailableLabel is how an unavailable estimate is shown to users.
const UnavailableLabel = "Unavailable"

// EstimateStatus tells a real estimate apart from an unavailable one.
type EstimateStatus string

const (
	EstimateAvailable   EstimateStatus = "available"
	EstimateUnavailable EstimateStatus = "unavailable"
)

// Estimate is the normalized model output. Confidence is a percentage in
// [0, 100] rounded to two decimals. Label and Confidence are only meaningful
// when Status is EstimateAvailable.
type Estimate struct {
	Status     EstimateStatus `json:"status"`
	Label      string         `json:"label,omitempty"`
	Confidence float64        `json:"confidence,omitempty"`
	Model      string         `json:"model,omitempty"`
	Reason     string         `json:"reason,omitempty"`
}

// Unavailable returns an estimate that carries only the reason.
func Unavailable(reason string) Estimate {
	return Estimate{Status: EstimateUnavailable, Reason: reason}
}

// Available reports whether the estimate holds a real prediction.
func (e Estimate) Available() bool {
	return e.Status == EstimateAvailable
}

// RiskLevel returns the label, or UnavailableLabel.
func (e Estimate) RiskLevel() string {
	if !e.Available() {
		return UnavailableLabel
	}
	return e.Label
}

// Adapter runs the classifier and normalizes its output. It never fails:
// every problem becomes an unavailable estimate.
type Adapter struct {
	src    Source
	logger *slog.Logger
}

// NewAdapter returns an adapter over src. A nil logger discards logs.
func NewAdapter(src Source, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{src: src, logger: logger}
}

// Estimate predicts a risk label for v.
func (a *Adapter) Estimate(ctx context.Context, v features.Vector) (est Estimate) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Warn("model inference panicked", "panic", fmt.Sprint(r))
			est = Unavailable("inference failed")
		}
	}()

	if a == nil || a.src == nil {
		return Unavailable(ErrModelUnavailable.Error())
	}

	clf, err := a.src.Load()
	if err != nil || clf == nil {
		a.logger.Warn("model not loaded", "error", err)
		return Unavailable(ErrModelUnavailable.Error())
	}

	p, err := clf.Predict(ctx, v)
	if err != nil {
		a.logger.Warn("model inference failed", "model", clf.Name(), "error", err)
		return Unavailable("inference failed")
	}
	if p.Label == "" || math.IsNaN(p.Probability) || p.Probability < 0 || p.Probability > 1 {
		a.logger.Warn("model returned malformed prediction", "model", clf.Name(), "label", p.Label, "probability", p.Probability)
		return Unavailable("inference failed")
	}

	return Estimate{
		Status:     EstimateAvailable,
		Label:      p.Label,
		Confidence: math.Round(p.Probability*100*100) / 100,
		Model:      clf.Name(),
	}
}
