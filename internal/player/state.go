// internal/player/state.go
package player

// State is the transport state of the concrete backend.
//
//	┌──────────┐   load    ┌──────────┐      play       ┌──────────┐
//	│   Idle   │ ─────────▶│  Stopped │ ───────────────▶│  Playing │
//	└──────────┘           └──────────┘                 └──────────┘
//	                            ▲                           │  ▲
//	                            │ stop / end         pause  │  │ play
//	                            │                           ▼  │
//	                            │                       ┌──────────┐
//	                            └───────────────────────│  Paused  │
//	                                       stop         └──────────┘
//
// Stop keeps the media loaded and rewinds it; only a new Load or Close
// releases the decoded stream and returns to Idle.
//
// No-op transitions (handled gracefully):
//   - Idle    → anything but Load
//   - Stopped → Paused
//   - Paused  → Paused
type State int

const (
	Idle State = iota
	Stopped
	Playing
	Paused
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsLoaded returns true if media is attached to the backend.
func (s State) IsLoaded() bool {
	return s != Idle
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanPlay returns true if the state allows starting or resuming output.
func (s State) CanPlay() bool {
	return s == Stopped || s == Paused
}
