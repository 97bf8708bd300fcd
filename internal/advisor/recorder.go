package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abhisek/uniguide/internal/store"
)

type eventRecorder struct {
	repo store.EventRepo
}

// EventRecorder returns a Recorder that appends every analysis to repo.
func EventRecorder(repo store.EventRepo) Recorder {
	return &eventRecorder{repo: repo}
}

func (r *eventRecorder) Record(ctx context.Context, resp *Response, elapsed time.Duration) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	_, err = r.repo.Append(ctx, store.AssessmentEventData{
		RequestID:    resp.RequestID,
		Status:       resp.Status,
		Tier:         resp.RiskTier.String(),
		BaseTier:     resp.BaseTier.String(),
		CGPA:         resp.CGPA,
		Level:        resp.Level,
		Department:   resp.Department,
		Trend:        string(resp.TrendClassification),
		MLStatus:     string(resp.ML.Status),
		MLLabel:      resp.MLRiskLevel,
		MLConfidence: resp.MLConfidence.Value,
		LatencyMs:    elapsed.Milliseconds(),
		ErrorMessage: resp.Error,
		Payload:      payload,
	})
	return err
}

// DecodePayload restores the Response stored with an audit event.
func DecodePayload(ev *store.AssessmentEvent) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(ev.Payload, &resp); err != nil {
		return nil, fmt.Errorf("decode event %s: %w", ev.RequestID, err)
	}
	return &resp, nil
}
