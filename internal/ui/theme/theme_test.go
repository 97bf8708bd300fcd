package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/uniguide/internal/risk"
)

func TestTierColor(t *testing.T) {
	assert.Equal(t, TierHighRisk, TierColor(risk.HighRisk))
	assert.Equal(t, TierExcellent, TierColor(risk.Excellent))
	assert.Equal(t, TextDim, TierColor(risk.Unknown))
}

func TestPlainRendersVerbatim(t *testing.T) {
	s := Plain()
	assert.Equal(t, "High Risk", s.Tier(risk.HighRisk).Render("High Risk"))
	assert.Equal(t, "title", s.Title.Render("title"))
}
