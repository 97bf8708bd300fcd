// Package record defines the academic record accepted by the analysis
// pipeline and the validation that gates it.
package record

import (
	"strings"

	"github.com/abhisek/uniguide/internal/trend"
)

// Grade is a final letter grade for a completed course.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
)

// ParseGrade normalizes s to one of the six recognized letters.
func ParseGrade(s string) (Grade, bool) {
	switch g := Grade(strings.ToUpper(strings.TrimSpace(s))); g {
	case GradeA, GradeB, GradeC, GradeD, GradeE, GradeF:
		return g, true
	}
	return "", false
}

// Poor reports whether g is D, E or F.
func (g Grade) Poor() bool {
	return g == GradeD || g.Severe()
}

// Severe reports whether g is E or F.
func (g Grade) Severe() bool {
	return g == GradeE || g == GradeF
}

// Status is the enrollment state of an in-progress course.
type Status string

const (
	StatusRegistered  Status = "Registered"
	StatusInProgress  Status = "In Progress"
	StatusCarriedOver Status = "Re-enrolled"
	StatusUnknown     Status = ""
)

// ParseStatus maps the spellings accepted from forms and files onto a Status.
// Unrecognized values map to StatusUnknown.
func ParseStatus(s string) Status {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(key)
	switch key {
	case "registered":
		return StatusRegistered
	case "inprogress":
		return StatusInProgress
	case "reenrolled", "carriedover":
		return StatusCarriedOver
	}
	return StatusUnknown
}

// Levels are the academic progression stages offered on the intake form.
var Levels = []int{100, 200, 300, 400, 500}

// PastCourse is a completed course and its final grade as supplied.
type PastCourse struct {
	Course string `json:"course" yaml:"course"`
	Grade  string `json:"grade" yaml:"grade"`
}

// CurrentCourse is a course the student is enrolled in this term.
type CurrentCourse struct {
	Course string `json:"course" yaml:"course"`
	Status string `json:"status" yaml:"status"`
}

// RawRecord is an unvalidated record as received from a form, file or API.
type RawRecord struct {
	CGPA           float64         `json:"cgpa" yaml:"cgpa"`
	Level          int             `json:"level,omitempty" yaml:"level,omitempty"`
	Department     string          `json:"department,omitempty" yaml:"department,omitempty"`
	Trend          trend.Input     `json:"cgpaTrend" yaml:"cgpa_trend"`
	PastCourses    []PastCourse    `json:"pastCourses" yaml:"past_courses"`
	CurrentCourses []CurrentCourse `json:"currentCourses" yaml:"current_courses"`
}

// AcademicRecord is a validated record. The trend has already been reduced
// to its canonical sample sequence; consumers never look at the raw input.
type AcademicRecord struct {
	CGPA           float64
	Level          int
	Department     string
	Trend          []float64
	PastCourses    []PastCourse
	CurrentCourses []CurrentCourse
}

// TotalCourses is the number of past plus current courses.
func (r *AcademicRecord) TotalCourses() int {
	return len(r.PastCourses) + len(r.CurrentCourses)
}
