// Package risk implements the deterministic rule engine that maps a validated
// academic record to a risk tier and ordered advisory messages.
package risk

import (
	"fmt"
	"strings"
)

// Tier is the risk classification. Higher values are worse; Unknown marks a
// record that could not be analyzed.
type Tier int

const (
	Unknown Tier = iota
	Excellent
	Good
	Moderate
	AtRisk
	HighRisk
)

// Metric thresholds. Each is the inclusive lower bound of its tier.
const (
	ExcellentFloor = 4.50
	GoodFloor      = 3.50
	ModerateFloor  = 2.50
	AtRiskFloor    = 2.00
)

var tierNames = map[Tier]string{
	Unknown:   "Unknown",
	Excellent: "Excellent",
	Good:      "Good",
	Moderate:  "Moderate",
	AtRisk:    "At Risk",
	HighRisk:  "High Risk",
}

func (t Tier) String() string {
	if s, ok := tierNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tier(%d)", int(t))
}

// ParseTier accepts the display names and their compact forms ("AtRisk").
func ParseTier(s string) (Tier, error) {
	key := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for t, name := range tierNames {
		if strings.ToLower(strings.ReplaceAll(name, " ", "")) == key {
			return t, nil
		}
	}
	return Unknown, fmt.Errorf("unknown risk tier %q", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// BaseTier maps the current metric onto a tier using the banded thresholds.
func BaseTier(metric float64) Tier {
	switch {
	case metric >= ExcellentFloor:
		return Excellent
	case metric >= GoodFloor:
		return Good
	case metric >= ModerateFloor:
		return Moderate
	case metric >= AtRiskFloor:
		return AtRisk
	default:
		return HighRisk
	}
}

// Worse returns whichever of a and b carries more risk.
func Worse(a, b Tier) Tier {
	if b > a {
		return b
	}
	return a
}

// stepUp escalates Good and Moderate by one tier. Other tiers are unchanged.
func (t Tier) stepUp() Tier {
	switch t {
	case Good:
		return Moderate
	case Moderate:
		return AtRisk
	}
	return t
}

// CGPAStatus is the human label for a metric-derived tier.
func (t Tier) CGPAStatus() string {
	switch t {
	case Excellent:
		return "Outstanding performance"
	case Good:
		return "Above average performance"
	case Moderate:
		return "Average performance - room for improvement"
	case AtRisk:
		return "Below average - needs attention"
	case HighRisk:
		return "Critical - immediate intervention needed"
	}
	return "Unknown"
}

// Band is the collapsed three-level view used by the learned model's labels.
type Band string

const (
	BandLow     Band = "Low"
	BandMedium  Band = "Medium"
	BandHigh    Band = "High"
	BandUnknown Band = "Unknown"
)

// Band collapses the tier: Excellent and Good are Low, Moderate is Medium,
// At Risk and High Risk are High.
func (t Tier) Band() Band {
	switch t {
	case Excellent, Good:
		return BandLow
	case Moderate:
		return BandMedium
	case AtRisk, HighRisk:
		return BandHigh
	}
	return BandUnknown
}
