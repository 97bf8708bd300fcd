// Package mlmodel loads the pre-trained academic risk classifier and turns
// its output into a normalized estimate that sits beside the rule-based
// result.
package mlmodel

import (
	"context"
	"errors"

	"github.com/abhisek/uniguide/internal/features"
)

// ErrModelUnavailable is returned when no classifier could be loaded.
var ErrModelUnavailable = errors.New("model unavailable")

// Prediction is a raw classifier output.
type Prediction struct {
	Label       string
	Probability float64 // probability of Label, 0.0–1.0
}

// Classifier predicts a risk label from a feature vector.
// Implementations must be safe for concurrent use.
type Classifier interface {
	Name() string
	Predict(ctx context.Context, v features.Vector) (Prediction, error)
}
