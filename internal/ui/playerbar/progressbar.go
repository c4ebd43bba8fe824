package playerbar

import (
	"strings"
	"time"
)

const (
	filledBlock = "━"
	emptyBlock  = "─"
)

// RenderProgressBar renders the position within the media.
// Format: 1:23  ━━━━━─────  4:56
// With an unknown duration only the position is shown.
func RenderProgressBar(position, duration time.Duration, known bool, width int) string {
	posStr := FormatDuration(position)
	if !known {
		return progressTimeStyle().Render(posStr + " / --:--")
	}
	durStr := FormatDuration(duration)

	barWidth := width - len(posStr) - len(durStr) - 4
	if barWidth < 3 {
		// Too narrow for bar, just show times
		return progressTimeStyle().Render(posStr + " / " + durStr)
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := max(min(int(float64(barWidth)*ratio), barWidth), 0)

	return progressTimeStyle().Render(posStr) + "  " +
		progressBarFilled().Render(strings.Repeat(filledBlock, filled)) +
		progressBarEmpty().Render(strings.Repeat(emptyBlock, barWidth-filled)) +
		"  " + progressTimeStyle().Render(durStr)
}
