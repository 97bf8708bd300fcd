// Package advisor runs one analysis end to end: validation, the rule engine
// and the learned model, merged into a single Response.
package advisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/uniguide/internal/features"
	"github.com/abhisek/uniguide/internal/mlmodel"
	"github.com/abhisek/uniguide/internal/record"
	"github.com/abhisek/uniguide/internal/risk"
)

// Recorder persists a finished analysis. Failures are logged, never returned
// to the caller.
type Recorder interface {
	Record(ctx context.Context, resp *Response, elapsed time.Duration) error
}

// Observer receives per-analysis measurements.
type Observer interface {
	ObserveAssessment(status int, tier string, d time.Duration)
	ObserveEstimate(status, label string, agrees bool)
	RecordError()
}

// Service is safe for concurrent use.
type Service struct {
	adapter  *mlmodel.Adapter
	recorder Recorder
	observer Observer
	logger   *slog.Logger
	newID    func() string
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder persists every finished analysis through r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithObserver reports per-analysis measurements to o.
func WithObserver(o Observer) Option {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the logger. A nil logger keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Service. A nil adapter means every estimate is unavailable.
func New(adapter *mlmodel.Adapter, opts ...Option) *Service {
	s := &Service{
		adapter: adapter,
		logger:  slog.New(slog.DiscardHandler),
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Analyze validates raw and, if it passes, runs the rule engine and the
// model concurrently. It always returns a Response; Status tells success
// (200), a rejected record (400) and an internal failure (500) apart.
func (s *Service) Analyze(ctx context.Context, raw record.RawRecord) *Response {
	start := time.Now()
	id := s.newID()
	log := s.logger.With("request_id", id)

	var (
		a   *risk.Assessment
		est mlmodel.Estimate
	)

	rec, err := record.Validate(raw)
	if err != nil {
		log.Info("record rejected", "error", err)
		a = risk.Rejected(err)
		est = mlmodel.Unavailable("record rejected")
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			a = risk.Evaluate(rec)
			return nil
		})
		g.Go(func() error {
			est = s.estimate(gctx, features.FromRecord(rec))
			return nil
		})
		_ = g.Wait()
	}

	resp := merge(id, a, est)
	resp.CGPA = raw.CGPA
	resp.Level = raw.Level
	resp.Department = raw.Department
	s.finish(ctx, log, resp, est, time.Since(start))
	return resp
}

// Reject returns the 400 Response for input that never became a record,
// such as a body that is not JSON at all.
func (s *Service) Reject(ctx context.Context, err error) *Response {
	return s.terminal(ctx, risk.Rejected(err), "record rejected")
}

// Fail returns the 500 Response for input that could not be turned into a
// record, such as a course entry of the wrong shape.
func (s *Service) Fail(ctx context.Context, err error) *Response {
	return s.terminal(ctx, risk.Failed(err), "analysis failed")
}

func (s *Service) terminal(ctx context.Context, a *risk.Assessment, reason string) *Response {
	start := time.Now()
	id := s.newID()
	log := s.logger.With("request_id", id)
	if a.Status < 500 {
		log.Info("record rejected", "error", a.Error)
	}
	est := mlmodel.Unavailable(reason)
	resp := merge(id, a, est)
	s.finish(ctx, log, resp, est, time.Since(start))
	return resp
}

func (s *Service) finish(ctx context.Context, log *slog.Logger, resp *Response, est mlmodel.Estimate, elapsed time.Duration) {
	if resp.Status >= 500 {
		log.Error("analysis failed", "error", resp.Error)
	}
	if !est.Available() {
		log.Debug("model estimate unavailable", "reason", est.Reason)
	}
	log.Debug("analysis complete",
		"status", resp.Status,
		"tier", resp.RiskTier.String(),
		"ml", resp.MLRiskLevel,
		"elapsed", elapsed)

	if s.observer != nil {
		s.observer.ObserveAssessment(resp.Status, resp.RiskTier.String(), elapsed)
		s.observer.ObserveEstimate(string(est.Status), est.RiskLevel(), resp.MLAgrees)
	}
	s.record(ctx, log, resp, elapsed)
}

func (s *Service) estimate(ctx context.Context, v features.Vector) mlmodel.Estimate {
	if s.adapter == nil {
		return mlmodel.Unavailable("no model configured")
	}
	return s.adapter.Estimate(ctx, v)
}

func (s *Service) record(ctx context.Context, log *slog.Logger, resp *Response, elapsed time.Duration) {
	if s.recorder == nil {
		return
	}
	// The analysis is already complete; don't lose the audit row because
	// the caller went away.
	ctx = context.WithoutCancel(ctx)
	if err := s.recorder.Record(ctx, resp, elapsed); err != nil {
		log.Warn("failed to record assessment event", "error", err)
		if s.observer != nil {
			s.observer.RecordError()
		}
	}
}
