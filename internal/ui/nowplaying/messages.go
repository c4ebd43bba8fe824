package nowplaying

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mediacontroller/internal/playback"
)

// StateChangedMsg is sent when the playback state changes.
type StateChangedMsg playback.StateChange

// BufferingChangedMsg is sent when the buffering state changes.
type BufferingChangedMsg playback.BufferingChange

// ProgressMsg carries a progress tick.
type ProgressMsg playback.ProgressEvent

// DurationMsg is sent once the media is prepared.
type DurationMsg time.Duration

// ErrorMsg is sent when the controller fails.
type ErrorMsg playback.ErrorEvent

// FinishedMsg is sent when the media played to its end.
type FinishedMsg playback.FinishedEvent

// ClosedMsg is sent once the controller has been closed.
type ClosedMsg struct{}

// WatchEvents returns a command that waits for the next subscription event
// and converts it to a tea.Msg.
func WatchEvents(sub *playback.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.BufferingChanged:
			return BufferingChangedMsg(e)
		case e := <-sub.Progress:
			return ProgressMsg(e)
		case d := <-sub.DurationFetched:
			return DurationMsg(d)
		case e := <-sub.Error:
			return ErrorMsg(e)
		case e := <-sub.Finished:
			return FinishedMsg(e)
		case <-sub.Done:
			return ClosedMsg{}
		}
	}
}
