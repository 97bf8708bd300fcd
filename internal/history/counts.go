package history

import (
	"fmt"
	"strings"

	"github.com/abhisek/uniguide/internal/record"
)

// StatusCounts tallies current courses by enrollment status.
type StatusCounts struct {
	Registered  int `json:"registered"`
	InProgress  int `json:"inProgress"`
	CarriedOver int `json:"carriedOver"`
	Unknown     int `json:"unknown,omitempty"`
}

// Counts are the per-request grade and retake signals.
type Counts struct {
	Poor     int // past entries graded D, E or F
	Severe   int // past entries graded E or F
	Repeated int // current courses that look like retakes

	// RepeatedCourses lists retaken course identifiers (trimmed, original
	// casing) in current-course order.
	RepeatedCourses []string
	Status          StatusCounts
}

// DOnly is the number of poor grades that are not severe.
func (c Counts) DOnly() int {
	return c.Poor - c.Severe
}

// Analyze builds the grade index and derives the counts for one record.
//
// A current course counts as repeated when its identifier matches a past
// course graded D, E or F, or when it is explicitly re-enrolled. Either
// condition is enough.
func Analyze(past []record.PastCourse, current []record.CurrentCourse) (*Index, Counts, error) {
	ix, err := Build(past)
	if err != nil {
		return nil, Counts{}, err
	}

	var c Counts
	for _, p := range past {
		g, ok := record.ParseGrade(p.Grade)
		if !ok {
			continue
		}
		if g.Poor() {
			c.Poor++
		}
		if g.Severe() {
			c.Severe++
		}
	}

	for i, cur := range current {
		id := strings.TrimSpace(cur.Course)
		if id == "" {
			return nil, Counts{}, fmt.Errorf("current course %d: empty course identifier", i+1)
		}

		status := record.ParseStatus(cur.Status)
		switch status {
		case record.StatusRegistered:
			c.Status.Registered++
		case record.StatusInProgress:
			c.Status.InProgress++
		case record.StatusCarriedOver:
			c.Status.CarriedOver++
		default:
			c.Status.Unknown++
		}

		g, seen := ix.Grade(id)
		if (seen && g.Poor()) || status == record.StatusCarriedOver {
			c.Repeated++
			c.RepeatedCourses = append(c.RepeatedCourses, id)
		}
	}
	return ix, c, nil
}
