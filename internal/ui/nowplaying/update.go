package nowplaying

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mediacontroller/internal/keymap"
	"github.com/llehouerou/mediacontroller/internal/playback"
)

// Update handles key presses and controller events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case StateChangedMsg:
		if msg.Current == playback.StatePlaying {
			m.finished = false
		}
		if !msg.Current.IsActive() {
			m.position = 0
		}
		return m, WatchEvents(m.sub)

	case ProgressMsg:
		m.position = msg.Position
		return m, WatchEvents(m.sub)

	case DurationMsg:
		// prepared: the data source can now name the media
		m.title = m.c.MediaTitle()
		return m, WatchEvents(m.sub)

	case FinishedMsg:
		m.finished = true
		return m, WatchEvents(m.sub)

	case BufferingChangedMsg, ErrorMsg:
		return m, WatchEvents(m.sub)

	case ClosedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.resolver.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionPlayPause:
		if m.c.State().CanPause() {
			m.c.Pause()
		} else {
			m.c.PlayFromCurrentTime()
		}
	case keymap.ActionPlayFromBeginning:
		m.c.PlayFromBeginning()
	case keymap.ActionRewind:
		m.c.PlayFromCurrentTimeWithRewindOffset(m.rewind)
	case keymap.ActionStop:
		m.c.Stop()
	case keymap.ActionSeekForward:
		m.seek(seekStep)
	case keymap.ActionSeekBack:
		m.seek(-seekStep)
	case keymap.ActionVolumeUp:
		m.adjustVolume(volumeStep)
	case keymap.ActionVolumeDown:
		m.adjustVolume(-volumeStep)
	case keymap.ActionMute:
		if m.mixer != nil {
			m.mixer.SetMuted(!m.mixer.Muted())
		}
	}
	return m, nil
}

func (m Model) adjustVolume(delta float64) {
	if m.mixer == nil {
		return
	}
	m.mixer.SetVolume(m.mixer.Volume() + delta)
}

// seek only applies while playing; PlayFrom would otherwise start playback.
func (m Model) seek(delta time.Duration) {
	if m.c.State() != playback.StatePlaying {
		return
	}
	m.c.PlayFrom(max(m.c.Position()+delta, 0))
}
