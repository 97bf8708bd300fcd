package record

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Bounds enforced on every record.
const (
	MinMetric  = 0.0
	MaxMetric  = 5.0
	MinCourses = 6
	MaxCourses = 9
)

// Constraint names the rule a rejected record violated.
type Constraint string

const (
	ConstraintMetricRange        Constraint = "metric-range"
	ConstraintPastCourseCount    Constraint = "past-course-count"
	ConstraintCurrentCourseCount Constraint = "current-course-count"
	ConstraintLevel              Constraint = "level"
)

// ValidationError describes why a record was rejected.
type ValidationError struct {
	Constraint Constraint
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = validator.New()

type check struct {
	constraint Constraint
	tag        string
	message    string
	value      func(RawRecord) any
}

// checks run in order; the first failure is reported.
var checks = []check{
	{
		constraint: ConstraintMetricRange,
		tag:        fmt.Sprintf("gte=%g,lte=%g", MinMetric, MaxMetric),
		message:    "GPA/CGPA must be between 0.00 and 5.00",
		value:      func(r RawRecord) any { return r.CGPA },
	},
	{
		constraint: ConstraintPastCourseCount,
		tag:        fmt.Sprintf("min=%d,max=%d", MinCourses, MaxCourses),
		message:    fmt.Sprintf("Past courses must be between %d and %d", MinCourses, MaxCourses),
		value:      func(r RawRecord) any { return r.PastCourses },
	},
	{
		constraint: ConstraintCurrentCourseCount,
		tag:        fmt.Sprintf("min=%d,max=%d", MinCourses, MaxCourses),
		message:    fmt.Sprintf("Current courses must be between %d and %d", MinCourses, MaxCourses),
		value:      func(r RawRecord) any { return r.CurrentCourses },
	},
	{
		constraint: ConstraintLevel,
		tag:        "oneof=100 200 300 400 500",
		message:    "Level must be one of 100, 200, 300, 400 or 500",
		value:      func(r RawRecord) any { return r.Level },
	},
}

// Validate checks raw against the structural constraints and returns the
// validated record. The returned error is always a *ValidationError.
func Validate(raw RawRecord) (*AcademicRecord, error) {
	for _, c := range checks {
		if err := validate.Var(c.value(raw), c.tag); err != nil {
			return nil, &ValidationError{Constraint: c.constraint, Message: c.message}
		}
	}

	return &AcademicRecord{
		CGPA:           raw.CGPA,
		Level:          raw.Level,
		Department:     raw.Department,
		Trend:          raw.Trend.Values(),
		PastCourses:    append([]PastCourse(nil), raw.PastCourses...),
		CurrentCourses: append([]CurrentCourse(nil), raw.CurrentCourses...),
	}, nil
}
