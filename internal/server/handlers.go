package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/abhisek/uniguide/internal/advisor"
	"github.com/abhisek/uniguide/internal/mlmodel"
	"github.com/abhisek/uniguide/internal/record"
	"github.com/abhisek/uniguide/internal/store"
)

const defaultListLimit = 50

type errorBody struct {
	Error string `json:"error"`
}

// EventSummary is one row of the assessment history.
type EventSummary struct {
	RequestID    string  `json:"requestId"`
	Sequence     int64   `json:"sequence"`
	Timestamp    string  `json:"timestamp"`
	Status       int     `json:"status"`
	RiskTier     string  `json:"riskTier"`
	BaseTier     string  `json:"baseTier"`
	CGPA         float64 `json:"cgpa"`
	Level        int     `json:"level,omitempty"`
	Trend        string  `json:"trendClassification"`
	MLRiskLevel  string  `json:"mlRiskLevel"`
	MLConfidence float64 `json:"mlConfidence,omitempty"`
	LatencyMs    int64   `json:"latencyMs"`
}

func summarize(ev store.AssessmentEvent) EventSummary {
	return EventSummary{
		RequestID:    ev.RequestID,
		Sequence:     ev.Sequence,
		Timestamp:    ev.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
		Status:       ev.Status,
		RiskTier:     ev.Tier,
		BaseTier:     ev.BaseTier,
		CGPA:         ev.CGPA,
		Level:        ev.Level,
		Trend:        ev.Trend,
		MLRiskLevel:  ev.MLLabel,
		MLConfidence: ev.MLConfidence,
		LatencyMs:    ev.LatencyMs,
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createAssessment(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err == nil && !json.Valid(body) {
		err = errors.New("request body is not valid JSON")
	}
	if err != nil {
		resp := s.deps.Advisor.Reject(r.Context(), fmt.Errorf("invalid record: %w", err))
		writeJSON(w, resp.Status, resp)
		return
	}

	// Well-formed JSON that doesn't fit the record shape fails the analysis
	// rather than rejecting the record.
	var raw record.RawRecord
	if err := json.Unmarshal(body, &raw); err != nil {
		resp := s.deps.Advisor.Fail(r.Context(), err)
		writeJSON(w, resp.Status, resp)
		return
	}

	resp := s.deps.Advisor.Analyze(r.Context(), raw)
	writeJSON(w, resp.Status, resp)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	if s.deps.Events == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment history is disabled")
		return
	}

	opts := store.QueryOpts{Limit: defaultListLimit, Tier: r.URL.Query().Get("tier")}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}
	if v := r.URL.Query().Get("before"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "before must be a sequence number")
			return
		}
		opts.Before = n
	}

	events, err := s.deps.Events.List(r.Context(), opts)
	if err != nil {
		s.log.Error("list assessments", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list assessments")
		return
	}
	out := make([]EventSummary, 0, len(events))
	for _, ev := range events {
		out = append(out, summarize(ev))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	if s.deps.Events == nil {
		writeError(w, http.StatusServiceUnavailable, "assessment history is disabled")
		return
	}

	id := mux.Vars(r)["id"]
	ev, err := s.deps.Events.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "assessment not found")
		return
	}
	if err != nil {
		s.log.Error("get assessment", "request_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load assessment")
		return
	}

	resp, err := advisor.DecodePayload(ev)
	if err != nil {
		// Events written without a payload still have their summary.
		writeJSON(w, http.StatusOK, summarize(*ev))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) modelInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, mlmodel.Describe(s.deps.Model))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
