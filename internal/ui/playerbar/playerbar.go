// Package playerbar renders the controller state as a bordered status box.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediacontroller/internal/errmsg"
	"github.com/llehouerou/mediacontroller/internal/playback"
	"github.com/llehouerou/mediacontroller/internal/ui/render"
)

// Height is the rendered height without and with an error line.
const (
	Height          = 4 // 2 content rows + 2 border rows
	HeightWithError = 5
)

// State holds everything needed to render the player bar.
type State struct {
	Status        playback.State
	Buffering     playback.BufferingState
	Title         string
	URL           string
	Position      time.Duration
	Duration      time.Duration
	DurationKnown bool
	Err           error
}

// NewState builds a State from a controller snapshot. position is the
// latest known position; it is ignored unless playing or paused.
func NewState(snap playback.Snapshot, title string, position time.Duration) State {
	s := State{
		Status:        snap.State,
		Buffering:     snap.Buffering,
		Title:         title,
		URL:           snap.Media.URL,
		Duration:      snap.Media.Duration,
		DurationKnown: snap.Media.DurationKnown,
		Err:           snap.Media.Err,
	}
	if snap.State.IsActive() {
		s.Position = position
	}
	return s
}

// Render returns the player bar string for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 10) // border and padding

	status := statusSymbol(s.Status)
	var marker string
	if s.Buffering == playback.BufferingBuffering {
		marker = bufferingStyle().Render("buffering")
	}

	title := s.Title
	if title == "" {
		title = s.URL
	}
	if title == "" {
		title = "No media"
	}

	// status + space, and room for the marker
	available := innerWidth - lipgloss.Width(status) - 1
	if marker != "" {
		available -= lipgloss.Width(marker) + 1
	}
	title = render.Truncate(title, max(available, 1))

	first := statusStyle().Render(status) + " " + titleStyle().Render(title)
	if marker != "" {
		first = render.Row(first, marker, innerWidth)
	}

	lines := []string{
		first,
		RenderProgressBar(s.Position, s.Duration, s.DurationKnown, innerWidth),
	}
	if s.Status == playback.StateFailed && s.Err != nil {
		lines = append(lines, errorStyle().Render(render.Truncate(errmsg.FormatPlayback(s.Err), innerWidth)))
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(strings.Join(lines, "\n"))
}

func statusSymbol(s playback.State) string {
	switch s {
	case playback.StatePlaying:
		return playSymbol
	case playback.StatePaused:
		return pauseSymbol
	case playback.StateFailed:
		return failedSymbol
	case playback.StateStopped:
		return stopSymbol
	}
	return stopSymbol
}

// FormatDuration formats d as m:ss.
func FormatDuration(d time.Duration) string {
	d = max(d, 0)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}
