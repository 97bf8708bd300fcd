package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/uniguide/internal/risk"
)

// Color palette
var (
	Primary = lipgloss.Color("#8B5CF6") // Vivid Purple
	Text    = lipgloss.Color("#F8FAFC") // White
	TextDim = lipgloss.Color("#94A3B8") // Slate
	Border  = lipgloss.Color("#334155") // Slate

	TierExcellent = lipgloss.Color("#22C55E") // Green
	TierGood      = lipgloss.Color("#14B8A6") // Teal
	TierModerate  = lipgloss.Color("#EAB308") // Amber
	TierAtRisk    = lipgloss.Color("#F97316") // Orange
	TierHighRisk  = lipgloss.Color("#F43F5E") // Rose
)

// TierColor returns the accent color for a risk tier.
func TierColor(t risk.Tier) color.Color {
	switch t {
	case risk.Excellent:
		return TierExcellent
	case risk.Good:
		return TierGood
	case risk.Moderate:
		return TierModerate
	case risk.AtRisk:
		return TierAtRisk
	case risk.HighRisk:
		return TierHighRisk
	}
	return TextDim
}

// Styles is the set of styles a report is drawn with.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Label   lipgloss.Style
	Body    lipgloss.Style
	Hint    lipgloss.Style
	Caution lipgloss.Style
	Card    lipgloss.Style

	styled bool
}

// Default returns the colored styles.
func Default() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary),
		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			MarginTop(1),
		Label: lipgloss.NewStyle().
			Foreground(TextDim).
			Width(16),
		Body: lipgloss.NewStyle().
			Foreground(Text),
		Hint: lipgloss.NewStyle().
			Foreground(TextDim).
			Italic(true),
		Caution: lipgloss.NewStyle().
			Foreground(TierAtRisk),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2),
		styled: true,
	}
}

// Plain returns styles that only lay text out: no color, no border.
func Plain() Styles {
	return Styles{
		Title:   lipgloss.NewStyle(),
		Section: lipgloss.NewStyle().MarginTop(1),
		Label:   lipgloss.NewStyle().Width(16),
		Body:    lipgloss.NewStyle(),
		Hint:    lipgloss.NewStyle(),
		Caution: lipgloss.NewStyle(),
		Card:    lipgloss.NewStyle(),
	}
}

// Tier returns the badge style for t.
func (s Styles) Tier(t risk.Tier) lipgloss.Style {
	if !s.styled {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(TierColor(t))
}
