package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when an event lookup matches nothing.
var ErrNotFound = errors.New("event not found")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Tier   string    // exact tier name, empty for all
}

// AssessmentEventData captures one completed analysis.
type AssessmentEventData struct {
	RequestID    string
	Status       int
	Tier         string
	BaseTier     string
	CGPA         float64
	Level        int
	Department   string
	Trend        string
	MLStatus     string
	MLLabel      string
	MLConfidence float64
	LatencyMs    int64
	ErrorMessage string
	Payload      []byte
}

// AssessmentEvent is a stored AssessmentEventData.
type AssessmentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AssessmentEventData
}

// TierCount is the number of events that ended in one tier.
type TierCount struct {
	Tier  string
	Count int
}

// EventRepo provides append and query access to assessment events.
type EventRepo interface {
	// Append records an analysis and returns it with sequence and timestamp set.
	Append(ctx context.Context, data AssessmentEventData) (*AssessmentEvent, error)

	// List returns events newest first.
	List(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error)

	// Get looks up an event by request ID. Returns ErrNotFound when absent.
	Get(ctx context.Context, requestID string) (*AssessmentEvent, error)

	// TierCounts groups matching events by final tier, most frequent first.
	TierCounts(ctx context.Context, opts QueryOpts) ([]TierCount, error)

	// Reset deletes every event and returns how many were removed.
	Reset(ctx context.Context) (int64, error)
}
