// internal/playback/state.go
package playback

import "github.com/llehouerou/mediacontroller/internal/player"

// State represents the playback state.
//
//	Stopped --play*--> Playing --pause--> Paused --play*--> Playing
//	Playing/Paused --stop--> Stopped      Playing --EOF--> Stopped
//	any --failure--> Failed --UpdateWithMediaURL--> Stopped
type State int

const (
	StateStopped State = iota
	StatePlaying
	StatePaused
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (playing or paused).
func (s State) IsActive() bool {
	return s == StatePlaying || s == StatePaused
}

// CanPause returns true if Pause has an effect in this state.
func (s State) CanPause() bool {
	return s == StatePlaying
}

// CanResume returns true if a play command has an effect in this state.
func (s State) CanResume() bool {
	return s == StateStopped || s == StatePaused
}

// BufferingState reports whether enough media is available to play.
// It is independent of State.
type BufferingState int

const (
	BufferingUnknown BufferingState = iota
	BufferingReady
	BufferingBuffering
)

// String returns the buffering state name.
func (b BufferingState) String() string {
	switch b {
	case BufferingUnknown:
		return "Unknown"
	case BufferingReady:
		return "Ready"
	case BufferingBuffering:
		return "Buffering"
	default:
		return "Invalid"
	}
}

func bufferingFromPlayer(b player.Buffering) BufferingState {
	switch b {
	case player.BufferingReady:
		return BufferingReady
	case player.BufferingBuffering:
		return BufferingBuffering
	default:
		return BufferingUnknown
	}
}
