// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause         Action = "play_pause"
	ActionPlayFromBeginning Action = "play_from_beginning" // b
	ActionRewind            Action = "rewind"              // r - resume minus rewind offset
	ActionStop              Action = "stop"
	ActionSeekForward       Action = "seek_forward"
	ActionSeekBack          Action = "seek_back"

	// Output actions
	ActionVolumeUp   Action = "volume_up"
	ActionVolumeDown Action = "volume_down"
	ActionMute       Action = "mute"
)
