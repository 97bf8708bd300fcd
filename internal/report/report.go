// Package report renders an analysis for a terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/uniguide/internal/advisor"
	"github.com/abhisek/uniguide/internal/ui/theme"
)

// Render writes resp to w using s. Colors are downsampled to what w
// supports.
func Render(w io.Writer, resp *advisor.Response, s theme.Styles) error {
	_, err := lipgloss.Fprintln(w, s.Card.Render(build(resp, s)))
	return err
}

func build(resp *advisor.Response, s theme.Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Academic Risk Assessment"))
	if resp.RequestID != "" {
		b.WriteString("  " + s.Hint.Render(resp.RequestID))
	}
	b.WriteString("\n\n")

	if !resp.OK() {
		b.WriteString(row(s, "Error", s.Caution.Render(resp.Error)))
		b.WriteString("\n" + s.Hint.Render(resp.Explanation))
		return b.String()
	}

	tier := s.Tier(resp.RiskTier).Render(resp.RiskTier.String())
	if resp.BaseTier != resp.RiskTier {
		tier += s.Hint.Render(fmt.Sprintf(" (from %s)", resp.BaseTier))
	}
	b.WriteString(row(s, "Risk tier", tier))
	b.WriteString(row(s, "CGPA", fmt.Sprintf("%.2f  %s", resp.CGPA, resp.CGPAStatus)))
	b.WriteString(row(s, "Trend", fmt.Sprintf("%s  %s", resp.TrendClassification, resp.TrendDescription)))
	b.WriteString(row(s, "Grades", gradeLine(resp.Counts)))
	b.WriteString(row(s, "Enrollment", statusLine(resp.Counts)))
	b.WriteString(row(s, "Model estimate", mlLine(resp)))

	if len(resp.Cautions) > 0 {
		b.WriteString(s.Section.Render("Cautions") + "\n")
		for _, c := range resp.Cautions {
			b.WriteString("  " + s.Caution.Render("! "+c) + "\n")
		}
	}
	if len(resp.Suggestions) > 0 {
		b.WriteString(s.Section.Render("Suggestions") + "\n")
		for _, sg := range resp.Suggestions {
			b.WriteString("  " + s.Body.Render("- "+sg) + "\n")
		}
	}
	b.WriteString("\n" + s.Hint.Render(resp.Explanation))
	return b.String()
}

func row(s theme.Styles, label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.Label.Render(label), s.Body.Render(value)) + "\n"
}

func gradeLine(c advisor.CourseCounts) string {
	line := fmt.Sprintf("%d poor, %d severe, %d repeated", c.PoorGrades, c.SevereGrades, c.Repeated)
	if len(c.RepeatedCourses) > 0 {
		line += " (" + strings.Join(c.RepeatedCourses, ", ") + ")"
	}
	return line
}

func statusLine(c advisor.CourseCounts) string {
	line := fmt.Sprintf("%d registered, %d in progress, %d carried over",
		c.Status.Registered, c.Status.InProgress, c.Status.CarriedOver)
	if c.Status.Unknown > 0 {
		line += fmt.Sprintf(", %d unrecognized", c.Status.Unknown)
	}
	return line
}

func mlLine(resp *advisor.Response) string {
	if !resp.MLConfidence.Valid {
		return resp.MLRiskLevel
	}
	verdict := "differs from rules"
	if resp.MLAgrees {
		verdict = "agrees with rules"
	}
	return fmt.Sprintf("%s (%s), %s", resp.MLRiskLevel, resp.MLConfidence, verdict)
}
