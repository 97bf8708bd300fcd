package risk

import "github.com/abhisek/uniguide/internal/trend"

// rule appends advisory messages for an already-tiered assessment.
// Rules may add messages but never change the tier.
type rule func(a *Assessment)

// defaultRules run in this order; message order follows it.
var defaultRules = []rule{
	atRiskTrendRule,
	moderateDeclineRule,
	atRiskRule,
	highRiskRule,
	gradeCountRule,
	repeatRule,
	encouragementRule,
}

func atRiskTrendRule(a *Assessment) {
	if a.Tier != AtRisk && a.Tier != HighRisk {
		return
	}
	if a.Trend.Direction == trend.Declining {
		a.caution(a.Trend.Description)
	}
	if n := a.Counts.Status.CarriedOver; n > 0 {
		a.caution(carriedOverCaution(n))
	}
}

func moderateDeclineRule(a *Assessment) {
	if a.Tier == Moderate && a.Trend.Direction == trend.Declining {
		a.caution(moderateDeclineCaution)
		a.suggest(moderateDeclineSuggestion)
	}
}

func atRiskRule(a *Assessment) {
	if a.Tier == AtRisk {
		a.caution(atRiskCaution)
		a.suggest(atRiskSuggestions...)
	}
}

func highRiskRule(a *Assessment) {
	if a.Tier == HighRisk {
		a.caution(highRiskCaution)
		a.suggest(highRiskSuggestions...)
	}
}

func gradeCountRule(a *Assessment) {
	if n := a.Counts.Severe; n > 0 {
		a.caution(severeCaution(n))
	}
	if n := a.Counts.DOnly(); n > 0 {
		a.caution(dOnlyCaution(n))
	}
}

func repeatRule(a *Assessment) {
	if a.Counts.Repeated > 0 {
		a.caution(repeatCaution(a.Counts.Repeated, a.Counts.RepeatedCourses))
		a.suggest(repeatSuggestion)
	}
}

func encouragementRule(a *Assessment) {
	switch a.Tier {
	case Good:
		a.suggest(goodSuggestions...)
	case Moderate:
		a.suggest(moderateSuggestions...)
	}
}
