package playback

import "time"

// StateChange is emitted when playback state changes.
type StateChange struct {
	Previous State
	Current  State
}

// BufferingChange is emitted when the buffering state changes.
type BufferingChange struct {
	Previous BufferingState
	Current  BufferingState
}

// ProgressEvent is emitted on every accepted progress tick.
type ProgressEvent struct {
	Position time.Duration
	Duration time.Duration
}

// ErrorEvent is emitted when a controller enters StateFailed.
// Err is an *InitializationError or a *PlaybackError.
type ErrorEvent struct {
	URL string
	Err error
}

// FinishedEvent is emitted when media plays to its end.
//
// Emitted on the controller's own Subscription and, for every controller in
// the process, on the finished broadcast (see SubscribeFinished).
type FinishedEvent struct {
	ControllerID uint64
	URL          string
	Title        string
}
