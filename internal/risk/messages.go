package risk

import (
	"fmt"
	"strings"
)

// maxNamedRepeats caps how many retaken courses the repeat caution names.
const maxNamedRepeats = 3

const (
	excellentSuggestion = "Outstanding academic performance. You are doing excellently well - maintain consistency, " +
		"discipline, and healthy study habits."
	excellentExplanation = "Student demonstrates excellent academic performance based on GPA/CGPA and sustained results."

	defaultExplanation = "This analysis considers GPA/CGPA level, CGPA trend progression, " +
		"course load constraints, past course grades, and standard university advising principles."

	failedExplanation   = "Unable to analyze data due to an error"
	rejectedExplanation = "The record was rejected before analysis"

	moderateDeclineCaution    = "Your academic performance shows signs of decline."
	moderateDeclineSuggestion = "Increase study time, review weak subjects, and seek academic support early."

	atRiskCaution   = "Academic performance needs attention."
	highRiskCaution = "CRITICAL: High academic risk detected."

	repeatSuggestion = "Give retaken courses top priority: attend every class and seek help from lecturers early."
)

var atRiskSuggestions = []string{
	"Schedule a meeting with your academic advisor",
	"Join study groups for challenging courses",
	"Utilize office hours with professors",
	"Review time management and study strategies",
}

var highRiskSuggestions = []string{
	"URGENT: Meet with your academic advisor this week",
	"Consider academic probation support services",
	"Reduce course load where possible, focus on core courses",
	"Develop a detailed study schedule with achievable goals",
	"Explore tutoring resources available in your department",
}

var goodSuggestions = []string{
	"Maintain your current study habits",
	"Consider taking on leadership roles in student organizations",
	"Explore research opportunities or advanced courses",
}

var moderateSuggestions = []string{
	"Focus on improving grades in core courses",
	"Participate actively in class discussions",
	"Form study groups with high-performing peers",
	"Maintain a balanced study routine and prioritize core departmental courses",
}

// AtRiskSuggestions returns the fixed advisory list for the At Risk tier.
func AtRiskSuggestions() []string { return append([]string(nil), atRiskSuggestions...) }

// HighRiskSuggestions returns the fixed advisory list for the High Risk tier.
func HighRiskSuggestions() []string { return append([]string(nil), highRiskSuggestions...) }

func carriedOverCaution(n int) string {
	return fmt.Sprintf("You have %d carried over course(s). Prioritize these to avoid accumulation.", n)
}

func severeCaution(n int) string {
	return fmt.Sprintf("You have %d course(s) graded E or F. These weigh heavily on your CGPA.", n)
}

func dOnlyCaution(n int) string {
	return fmt.Sprintf("You have %d course(s) graded D. Strengthening these areas will lift your CGPA.", n)
}

func repeatCaution(total int, ids []string) string {
	named := ids
	if len(named) > maxNamedRepeats {
		named = named[:maxNamedRepeats]
	}
	return fmt.Sprintf("You are retaking %d course(s): %s.", total, strings.Join(named, ", "))
}
