package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/abhisek/uniguide/internal/history"
	"github.com/abhisek/uniguide/internal/mlmodel"
	"github.com/abhisek/uniguide/internal/risk"
	"github.com/abhisek/uniguide/internal/trend"
)

// Response merges the rule-based assessment with the model estimate. It is
// what the HTTP API returns and what the audit log stores.
type Response struct {
	RequestID string `json:"requestId"`
	Status    int    `json:"status"`

	CGPA       float64 `json:"cgpa"`
	Level      int     `json:"level,omitempty"`
	Department string  `json:"department,omitempty"`

	RiskTier            risk.Tier       `json:"riskTier"`
	BaseTier            risk.Tier       `json:"baseTier"`
	CGPAStatus          string          `json:"cgpaStatus"`
	TrendClassification trend.Direction `json:"trendClassification"`
	TrendDescription    string          `json:"trendDescription"`
	TrendDelta          float64         `json:"trendDelta"`
	Cautions            []string        `json:"cautions"`
	Suggestions         []string        `json:"suggestions"`
	Explanation         string          `json:"explanation"`
	Error               string          `json:"error,omitempty"`
	Counts              CourseCounts    `json:"counts"`

	MLRiskLevel  string           `json:"mlRiskLevel"`
	MLConfidence Confidence       `json:"mlConfidence"`
	ML           mlmodel.Estimate `json:"ml"`
	RuleBand     risk.Band        `json:"ruleBand"`
	MLAgrees     bool             `json:"mlAgrees"`
}

// CourseCounts is the JSON view of history.Counts.
type CourseCounts struct {
	PoorGrades      int                  `json:"poorGrades"`
	SevereGrades    int                  `json:"severeGrades"`
	Repeated        int                  `json:"repeated"`
	RepeatedCourses []string             `json:"repeatedCourses"`
	Status          history.StatusCounts `json:"status"`
}

// OK reports whether the record was analyzed.
func (r *Response) OK() bool {
	return r.Status == 200
}

func merge(id string, a *risk.Assessment, est mlmodel.Estimate) *Response {
	repeated := a.Counts.RepeatedCourses
	if repeated == nil {
		repeated = []string{}
	}
	resp := &Response{
		RequestID:           id,
		Status:              a.Status,
		RiskTier:            a.Tier,
		BaseTier:            a.BaseTier,
		CGPAStatus:          a.CGPAStatus,
		TrendClassification: a.Trend.Direction,
		TrendDescription:    a.Trend.Description,
		TrendDelta:          a.Trend.Delta,
		Cautions:            a.Cautions,
		Suggestions:         a.Suggestions,
		Explanation:         a.Explanation,
		Error:               a.Error,
		Counts: CourseCounts{
			PoorGrades:      a.Counts.Poor,
			SevereGrades:    a.Counts.Severe,
			Repeated:        a.Counts.Repeated,
			RepeatedCourses: repeated,
			Status:          a.Counts.Status,
		},
		MLRiskLevel: est.RiskLevel(),
		ML:          est,
		RuleBand:    a.Tier.Band(),
	}
	if est.Available() {
		resp.MLConfidence = Confidence{Value: est.Confidence, Valid: true}
		resp.MLAgrees = a.OK() && est.Label == string(resp.RuleBand)
	}
	return resp
}

// Confidence is a model confidence percentage. It encodes as a JSON number,
// or as the string "Unavailable" when there is no estimate.
type Confidence struct {
	Value float64
	Valid bool
}

func (c Confidence) String() string {
	if !c.Valid {
		return mlmodel.UnavailableLabel
	}
	return fmt.Sprintf("%.2f%%", c.Value)
}

func (c Confidence) MarshalJSON() ([]byte, error) {
	if !c.Valid || math.IsNaN(c.Value) || math.IsInf(c.Value, 0) {
		return json.Marshal(mlmodel.UnavailableLabel)
	}
	return json.Marshal(c.Value)
}

func (c *Confidence) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if (len(data) > 0 && data[0] == '"') || bytes.Equal(data, []byte("null")) {
		*c = Confidence{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode confidence: %w", err)
	}
	*c = Confidence{Value: v, Valid: true}
	return nil
}
