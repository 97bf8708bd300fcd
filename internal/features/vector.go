// Package features reduces a validated record to the numeric vector the
// learned risk model was fitted on.
package features

import (
	"github.com/abhisek/uniguide/internal/record"
	"github.com/abhisek/uniguide/internal/trend"
)

// Size is the number of features. The order below is part of the model
// contract and must match the artifact's feature names.
const Size = 4

const (
	IndexCGPA = iota
	IndexLevel
	IndexTotalCourses
	IndexTrendDelta
)

// Names lists the feature names in vector order.
var Names = [Size]string{"gpa_cgpa", "level", "total_courses", "trend_delta"}

// Vector is [cgpa, level, totalCourses, trendDelta].
type Vector [Size]float64

// FromRecord builds the feature vector. The trend delta is last - prev and
// falls back to 0 when fewer than two samples exist.
func FromRecord(rec *record.AcademicRecord) Vector {
	return Vector{
		IndexCGPA:         rec.CGPA,
		IndexLevel:        float64(rec.Level),
		IndexTotalCourses: float64(rec.TotalCourses()),
		IndexTrendDelta:   trend.Delta(rec.Trend),
	}
}

// Slice returns the vector as a slice, for encoders that need one.
func (v Vector) Slice() []float64 {
	return v[:]
}
