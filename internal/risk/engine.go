package risk

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/abhisek/uniguide/internal/history"
	"github.com/abhisek/uniguide/internal/record"
	"github.com/abhisek/uniguide/internal/trend"
)

// Assessment is the rule-based result for one record. It is built fresh per
// request and never mutated after Evaluate returns.
type Assessment struct {
	// Status is 200 on success, 400 for a rejected record and 500 when
	// analysis failed.
	Status int

	BaseTier    Tier // from the metric alone
	Tier        Tier // after escalation
	CGPAStatus  string
	Trend       trend.Analysis
	Counts      history.Counts
	Cautions    []string
	Suggestions []string
	Explanation string
	Error       string
}

// OK reports whether the record was analyzed.
func (a *Assessment) OK() bool {
	return a.Status == http.StatusOK
}

// Rejected is the result for a record that failed validation.
func Rejected(err error) *Assessment {
	a := terminal(http.StatusBadRequest, err.Error())
	a.Explanation = rejectedExplanation
	return a
}

// Failed is the result for a record whose analysis hit an internal error.
func Failed(err error) *Assessment {
	a := terminal(http.StatusInternalServerError, fmt.Sprintf("Analysis failed: %v", err))
	a.Explanation = failedExplanation
	return a
}

func terminal(status int, msg string) *Assessment {
	return &Assessment{
		Status:      status,
		BaseTier:    Unknown,
		Tier:        Unknown,
		CGPAStatus:  Unknown.CGPAStatus(),
		Trend:       trend.Analysis{Direction: trend.Unknown},
		Cautions:    []string{},
		Suggestions: []string{},
		Error:       msg,
	}
}

// Escalate applies the severity counts to the base tier. Three or more
// severe grades, or two or more retakes, force High Risk. Otherwise three or
// more poor grades, or any retake, raise Good and Moderate by one tier.
// The result is never better than base.
func Escalate(base Tier, c history.Counts) Tier {
	if base == Unknown || base == Excellent {
		return base
	}
	switch {
	case c.Severe >= 3 || c.Repeated >= 2:
		return HighRisk
	case c.Poor >= 3 || c.Repeated >= 1:
		return Worse(base, base.stepUp())
	}
	return base
}

// Evaluate runs the rule engine. It never panics: internal failures become
// an Unknown-tier result with status 500.
func Evaluate(rec *record.AcademicRecord) (a *Assessment) {
	defer func() {
		if r := recover(); r != nil {
			a = Failed(fmt.Errorf("%v", r))
		}
	}()

	if rec == nil {
		return Failed(errors.New("no record"))
	}

	_, counts, err := history.Analyze(rec.PastCourses, rec.CurrentCourses)
	if err != nil {
		return Failed(err)
	}

	base := BaseTier(rec.CGPA)
	a = &Assessment{
		Status:      http.StatusOK,
		BaseTier:    base,
		Tier:        base,
		CGPAStatus:  base.CGPAStatus(),
		Trend:       trend.Classify(rec.CGPA, rec.Trend),
		Counts:      counts,
		Cautions:    []string{},
		Suggestions: []string{},
	}

	// Excellent students get no cautions.
	if base == Excellent {
		a.suggest(excellentSuggestion)
		a.Explanation = excellentExplanation
		return a
	}

	a.Tier = Escalate(base, counts)
	for _, r := range defaultRules {
		r(a)
	}
	a.Explanation = defaultExplanation
	return a
}

func (a *Assessment) caution(msgs ...string) {
	a.Cautions = append(a.Cautions, msgs...)
}

func (a *Assessment) suggest(msgs ...string) {
	a.Suggestions = append(a.Suggestions, msgs...)
}
