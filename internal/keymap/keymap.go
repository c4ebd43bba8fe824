package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding contexts. Output bindings only make sense with a mixer.
const (
	ContextGlobal   = "global"
	ContextPlayback = "playback"
	ContextOutput   = "output"
)

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string
}

// Bindings contains all key bindings.
var Bindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionHelp, []string{"?"}, "Toggle help", ContextGlobal},

	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionPlayFromBeginning, []string{"b"}, "Play from beginning", ContextPlayback},
	{ActionRewind, []string{"r"}, "Resume with rewind", ContextPlayback},
	{ActionStop, []string{"s"}, "Stop", ContextPlayback},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", ContextPlayback},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", ContextPlayback},

	{ActionVolumeUp, []string{"+", "="}, "Volume up", ContextOutput},
	{ActionVolumeDown, []string{"-"}, "Volume down", ContextOutput},
	{ActionMute, []string{"m"}, "Mute", ContextOutput},
}

// HelpKeys converts bindings to bubbles key bindings for the help view.
func HelpKeys(bindings []Binding) []key.Binding {
	result := make([]key.Binding, 0, len(bindings))
	for _, b := range bindings {
		result = append(result, key.NewBinding(
			key.WithKeys(b.Keys...),
			key.WithHelp(DisplayKey(b.Keys[0]), b.Description),
		))
	}
	return result
}

// DisplayKey returns the printable name of a key string.
func DisplayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
