package outwriter

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/schema"
)

// decisionColors maps each decision to an ANSI 256 palette index.
var decisionColors = map[schema.Decision]lipgloss.Color{
	schema.GoDecision:     lipgloss.Color("10"),
	schema.ReviewDecision: lipgloss.Color("11"),
	schema.NoGoDecision:   lipgloss.Color("9"),
}

// renderDecisionBanner returns the summary line for a decision, boxed when colors are enabled.
func renderDecisionBanner(decision schema.Decision, total string, cfg *contract.Config) string {
	text := fmt.Sprintf("Decision: %s  (Total Score: %s / 10)", decision.Label(), total)
	if !cfg.UseColors {
		return text
	}

	color, ok := decisionColors[decision]
	if !ok {
		color = decisionColors[schema.NoGoDecision]
	}
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(color).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	return style.Render(text)
}
