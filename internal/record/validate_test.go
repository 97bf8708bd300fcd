package record

import (
	"errors"
	"fmt"
	"testing"

	"github.com/abhisek/uniguide/internal/trend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pastCourses(n int) []PastCourse {
	out := make([]PastCourse, n)
	for i := range out {
		out[i] = PastCourse{Course: fmt.Sprintf("CSC10%d", i+1), Grade: "B"}
	}
	return out
}

func currentCourses(n int) []CurrentCourse {
	out := make([]CurrentCourse, n)
	for i := range out {
		out[i] = CurrentCourse{Course: fmt.Sprintf("CSC20%d", i+1), Status: "Registered"}
	}
	return out
}

func validRaw() RawRecord {
	return RawRecord{
		CGPA:           3.2,
		Level:          300,
		Department:     "Computer Science",
		Trend:          trend.Text("3.1, 3.45, 2.98"),
		PastCourses:    pastCourses(6),
		CurrentCourses: currentCourses(6),
	}
}

func constraintOf(t *testing.T, err error) Constraint {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "want *ValidationError, got %T", err)
	return verr.Constraint
}

func TestValidate_Accepts(t *testing.T) {
	rec, err := Validate(validRaw())
	require.NoError(t, err)
	assert.Equal(t, 3.2, rec.CGPA)
	assert.Equal(t, []float64{3.1, 3.45, 2.98}, rec.Trend)
	assert.Equal(t, 12, rec.TotalCourses())
}

func TestValidate_MetricRange(t *testing.T) {
	tests := []struct {
		cgpa float64
		ok   bool
	}{
		{-0.01, false},
		{0, true},
		{5.0, true},
		{5.01, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.cgpa), func(t *testing.T) {
			raw := validRaw()
			raw.CGPA = tt.cgpa
			_, err := Validate(raw)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, ConstraintMetricRange, constraintOf(t, err))
			assert.Equal(t, "GPA/CGPA must be between 0.00 and 5.00", err.Error())
		})
	}
}

func TestValidate_CourseCountBounds(t *testing.T) {
	for _, n := range []int{0, 5, 6, 9, 10} {
		ok := n >= MinCourses && n <= MaxCourses

		t.Run(fmt.Sprintf("past=%d", n), func(t *testing.T) {
			raw := validRaw()
			raw.PastCourses = pastCourses(n)
			_, err := Validate(raw)
			if ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, ConstraintPastCourseCount, constraintOf(t, err))
		})

		t.Run(fmt.Sprintf("current=%d", n), func(t *testing.T) {
			raw := validRaw()
			raw.CurrentCourses = currentCourses(n)
			_, err := Validate(raw)
			if ok {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, ConstraintCurrentCourseCount, constraintOf(t, err))
		})
	}
}

func TestValidate_MetricCheckedFirst(t *testing.T) {
	raw := validRaw()
	raw.CGPA = 7
	raw.PastCourses = pastCourses(2)
	raw.CurrentCourses = currentCourses(12)
	_, err := Validate(raw)
	assert.Equal(t, ConstraintMetricRange, constraintOf(t, err))

	raw.CGPA = 3
	_, err = Validate(raw)
	assert.Equal(t, ConstraintPastCourseCount, constraintOf(t, err))
}

func TestValidate_Level(t *testing.T) {
	raw := validRaw()
	for _, level := range []int{0, 150, 600} {
		raw.Level = level
		_, err := Validate(raw)
		assert.Equal(t, ConstraintLevel, constraintOf(t, err), "level %d", level)
	}

	raw.Level = 500
	_, err := Validate(raw)
	assert.NoError(t, err)
}

func TestValidate_CopiesCourses(t *testing.T) {
	raw := validRaw()
	rec, err := Validate(raw)
	require.NoError(t, err)
	raw.PastCourses[0].Grade = "F"
	assert.Equal(t, "B", rec.PastCourses[0].Grade)
}

func TestParseGrade(t *testing.T) {
	g, ok := ParseGrade(" d ")
	assert.True(t, ok)
	assert.Equal(t, GradeD, g)
	assert.True(t, g.Poor())
	assert.False(t, g.Severe())

	_, ok = ParseGrade("G")
	assert.False(t, ok)

	assert.True(t, GradeF.Severe())
	assert.True(t, GradeE.Poor())
	assert.False(t, GradeC.Poor())
}

func TestParseStatus(t *testing.T) {
	tests := map[string]Status{
		"Registered":   StatusRegistered,
		"in progress":  StatusInProgress,
		"InProgress":   StatusInProgress,
		"Re-enrolled":  StatusCarriedOver,
		"carried over": StatusCarriedOver,
		"CarriedOver":  StatusCarriedOver,
		"dropped":      StatusUnknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseStatus(in), in)
	}
}
