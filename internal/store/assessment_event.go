package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builders and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var eventColumns = []string{
	colID, colSequence, colTimestamp, colRequestID, colStatus, colTier,
	colBaseTier, colCGPA, colLevel, colDepartment, colTrend, colMLStatus,
	colMLLabel, colMLConfidence, colLatencyMs, colError, colPayload,
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) Append(ctx context.Context, data AssessmentEventData) (*AssessmentEvent, error) {
	if data.RequestID == "" {
		return nil, errors.New("append assessment event: empty request id")
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	ev := &AssessmentEvent{
		Sequence:            seqNum,
		Timestamp:           time.Now().UTC(),
		AssessmentEventData: data,
	}
	query, args := builder().Insert(assessmentEventsTable).
		Columns(eventColumns[1:]...).
		Values(
			ev.Sequence, ev.Timestamp, data.RequestID, data.Status, data.Tier,
			data.BaseTier, data.CGPA, data.Level, data.Department, data.Trend,
			data.MLStatus, data.MLLabel, data.MLConfidence, data.LatencyMs,
			data.ErrorMessage, data.Payload,
		).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("save assessment event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("save assessment event: %w", err)
	}
	ev.ID = int(id)
	return ev, nil
}

func (r *eventRepo) List(ctx context.Context, opts QueryOpts) ([]AssessmentEvent, error) {
	sel := builder().Select(eventColumns...).
		From(builder().Table(assessmentEventsTable)).
		OrderBy(entsql.Desc(colSequence))
	applyOpts(sel, opts)
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query assessment events: %w", err)
	}
	defer rows.Close()

	var events []AssessmentEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func (r *eventRepo) Get(ctx context.Context, requestID string) (*AssessmentEvent, error) {
	query, args := builder().Select(eventColumns...).
		From(builder().Table(assessmentEventsTable)).
		Where(entsql.EQ(colRequestID, requestID)).
		Limit(1).
		Query()

	ev, err := scanEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, requestID)
	}
	return ev, err
}

func (r *eventRepo) TierCounts(ctx context.Context, opts QueryOpts) ([]TierCount, error) {
	sel := builder().Select(colTier, entsql.As(entsql.Count("*"), "n")).
		From(builder().Table(assessmentEventsTable)).
		GroupBy(colTier).
		OrderBy(entsql.Desc("n"), colTier)
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count tiers: %w", err)
	}
	defer rows.Close()

	var counts []TierCount
	for rows.Next() {
		var tc TierCount
		if err := rows.Scan(&tc.Tier, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan tier count: %w", err)
		}
		counts = append(counts, tc)
	}
	return counts, rows.Err()
}

func (r *eventRepo) Reset(ctx context.Context) (int64, error) {
	query, args := builder().Delete(assessmentEventsTable).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset assessment events: %w", err)
	}
	return res.RowsAffected()
}

func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE(colTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE(colTimestamp, opts.To.UTC()))
	}
	if opts.Tier != "" {
		preds = append(preds, entsql.EQ(colTier, opts.Tier))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*AssessmentEvent, error) {
	var ev AssessmentEvent
	err := row.Scan(
		&ev.ID, &ev.Sequence, &ev.Timestamp, &ev.RequestID, &ev.Status, &ev.Tier,
		&ev.BaseTier, &ev.CGPA, &ev.Level, &ev.Department, &ev.Trend, &ev.MLStatus,
		&ev.MLLabel, &ev.MLConfidence, &ev.LatencyMs, &ev.ErrorMessage, &ev.Payload,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment event: %w", err)
	}
	return &ev, nil
}
