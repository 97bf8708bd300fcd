// Package trend parses metric trend samples and classifies their direction.
package trend

// Direction classifies the movement between the last two trend samples.
type Direction string

const (
	Stable           Direction = "Stable"
	Improving        Direction = "Improving"
	Declining        Direction = "Declining"
	InsufficientData Direction = "InsufficientData"

	// Unknown is reported when no analysis ran, such as for a rejected or
	// failed record.
	Unknown Direction = "Unknown"
)

const (
	// SignificantChange is the sample-to-sample delta above which a move is
	// reported as significant. It only affects the description.
	SignificantChange = 0.3

	// ExcellenceCeiling is the metric at or above which the trend is always
	// reported as Stable.
	ExcellenceCeiling = 4.50
)

// Analysis is the classified trend for one record.
type Analysis struct {
	Direction   Direction
	Delta       float64 // last - prev; 0 when fewer than 2 samples
	Significant bool
	Description string
}

// Classify derives the trend direction from the last two samples.
// The current metric participates only through the excellence ceiling.
func Classify(metric float64, samples []float64) Analysis {
	if len(samples) < 2 {
		return Analysis{
			Direction:   InsufficientData,
			Description: "Not enough trend data available",
		}
	}

	last := samples[len(samples)-1]
	prev := samples[len(samples)-2]
	a := Analysis{Delta: last - prev}

	switch {
	case metric >= ExcellenceCeiling:
		a.Direction = Stable
		a.Description = "Maintaining excellent performance"
	case last > prev:
		a.Direction = Improving
		a.Significant = last-prev > SignificantChange
		if a.Significant {
			a.Description = "CGPA is improving significantly - keep up the good work!"
		} else {
			a.Description = "CGPA is improving steadily"
		}
	case last < prev:
		a.Direction = Declining
		a.Significant = prev-last > SignificantChange
		if a.Significant {
			a.Description = "WARNING: CGPA is declining significantly"
		} else {
			a.Description = "CGPA is declining - needs attention"
		}
	default:
		a.Direction = Stable
		a.Description = "CGPA trend is stable"
	}
	return a
}

// Delta returns last - prev for the sample sequence, or 0 when there are
// fewer than two samples.
func Delta(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	return samples[len(samples)-1] - samples[len(samples)-2]
}
