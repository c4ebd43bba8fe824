package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediacontroller/internal/ui/styles"
)

const (
	playSymbol   = "▶"
	pauseSymbol  = "⏸"
	stopSymbol   = "■"
	failedSymbol = "✗"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border)
}

func titleStyle() lipgloss.Style        { return styles.T().S().Title }
func statusStyle() lipgloss.Style       { return styles.T().S().Playing }
func bufferingStyle() lipgloss.Style    { return styles.T().S().Warning }
func errorStyle() lipgloss.Style        { return styles.T().S().Error }
func progressTimeStyle() lipgloss.Style { return styles.T().S().Muted }
func progressBarFilled() lipgloss.Style { return lipgloss.NewStyle().Foreground(styles.T().Primary) }
func progressBarEmpty() lipgloss.Style  { return styles.T().S().Subtle }
