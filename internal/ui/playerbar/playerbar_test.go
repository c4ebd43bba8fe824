package playerbar

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/mediacontroller/internal/playback"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{59 * time.Second, "0:59"},
		{61 * time.Second, "1:01"},
		{75 * time.Minute, "75:00"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestNewState(t *testing.T) {
	snap := playback.Snapshot{
		State:     playback.StatePaused,
		Buffering: playback.BufferingReady,
		Media: playback.MediaReference{
			URL:           "/a.mp3",
			Duration:      time.Minute,
			DurationKnown: true,
		},
	}
	s := NewState(snap, "Song", 10*time.Second)
	if s.Status != playback.StatePaused || s.Title != "Song" || s.URL != "/a.mp3" {
		t.Errorf("NewState() = %+v", s)
	}
	if s.Position != 10*time.Second {
		t.Errorf("Position = %v, want 10s while paused", s.Position)
	}

	snap.State = playback.StateStopped
	if s := NewState(snap, "Song", 10*time.Second); s.Position != 0 {
		t.Errorf("Position = %v, want 0 while stopped", s.Position)
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		contains []string
		absent   []string
	}{
		{
			name: "playing",
			state: State{
				Status: playback.StatePlaying, Title: "Artist - Song",
				Position: 83 * time.Second, Duration: 4 * time.Minute, DurationKnown: true,
			},
			contains: []string{playSymbol, "Artist - Song", "1:23", "4:00", filledBlock},
			absent:   []string{"buffering"},
		},
		{
			name:     "paused",
			state:    State{Status: playback.StatePaused, Title: "Song", DurationKnown: true, Duration: time.Minute},
			contains: []string{pauseSymbol, "Song"},
		},
		{
			name:     "buffering",
			state:    State{Status: playback.StatePlaying, Buffering: playback.BufferingBuffering, Title: "Song"},
			contains: []string{"buffering"},
		},
		{
			name:     "unknown duration",
			state:    State{Status: playback.StatePlaying, Title: "Live", Position: 5 * time.Second},
			contains: []string{"0:05 / --:--"},
		},
		{
			name:     "url when untitled",
			state:    State{Status: playback.StateStopped, URL: "https://example.com/a.ogg"},
			contains: []string{stopSymbol, "https://example.com/a.ogg"},
		},
		{
			name:     "no media",
			state:    State{},
			contains: []string{"No media"},
		},
		{
			name: "failed",
			state: State{
				Status: playback.StateFailed, URL: "/gone.mp3",
				Err: &playback.InitializationError{Op: "load", URL: "/gone.mp3", Err: errors.New("no such file")},
			},
			contains: []string{failedSymbol, "Failed to load media '/gone.mp3': no such file"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(tt.state, 100)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("Render() missing %q in:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.absent {
				if strings.Contains(out, unwanted) {
					t.Errorf("Render() contains %q in:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestRender_Height(t *testing.T) {
	ok := Render(State{Status: playback.StatePlaying, Title: "x"}, 60)
	if got := lipgloss.Height(ok); got != Height {
		t.Errorf("height = %d, want %d", got, Height)
	}

	failed := Render(State{Status: playback.StateFailed, Err: errors.New("boom")}, 60)
	if got := lipgloss.Height(failed); got != HeightWithError {
		t.Errorf("height with error = %d, want %d", got, HeightWithError)
	}
}

func TestRender_TruncatesToWidth(t *testing.T) {
	long := strings.Repeat("very long title ", 20)
	out := Render(State{Status: playback.StatePlaying, Title: long, Buffering: playback.BufferingBuffering}, 50)

	for i, line := range strings.Split(out, "\n") {
		if w := lipgloss.Width(line); w > 50 {
			t.Errorf("line %d width = %d, want <= 50", i, w)
		}
	}
	if !strings.Contains(out, "...") {
		t.Error("long title should be truncated with an ellipsis")
	}
	if !strings.Contains(out, "buffering") {
		t.Error("buffering marker should survive truncation")
	}
}

func TestRenderProgressBar(t *testing.T) {
	bar := RenderProgressBar(30*time.Second, time.Minute, true, 30)
	if !strings.Contains(bar, "0:30") || !strings.Contains(bar, "1:00") {
		t.Errorf("bar = %q, want both times", bar)
	}
	if got := lipgloss.Width(bar); got != 30 {
		t.Errorf("bar width = %d, want 30", got)
	}
	filled := strings.Count(bar, filledBlock)
	empty := strings.Count(bar, emptyBlock)
	if filled != empty {
		t.Errorf("half-way bar has %d filled and %d empty cells", filled, empty)
	}

	narrow := RenderProgressBar(30*time.Second, time.Minute, true, 8)
	if !strings.Contains(narrow, "0:30 / 1:00") {
		t.Errorf("narrow bar = %q, want times only", narrow)
	}
}
