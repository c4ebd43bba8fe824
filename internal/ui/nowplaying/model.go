// Package nowplaying is the bubbletea view of a single playback controller.
package nowplaying

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/mediacontroller/internal/keymap"
	"github.com/llehouerou/mediacontroller/internal/playback"
	"github.com/llehouerou/mediacontroller/internal/player"
)

const (
	defaultWidth = 80
	seekStep     = 5 * time.Second
	volumeStep   = 0.05
)

// Model renders the controller state and maps keys to controller commands.
type Model struct {
	c        *playback.Controller
	mixer    player.Mixer // nil when the backend has no output control
	sub      *playback.Subscription
	resolver *keymap.Resolver
	help     help.Model

	rewind   time.Duration
	position time.Duration
	title    string
	finished bool
	showHelp bool
	width    int
}

// New creates a model for c. rewind is the offset used by the rewind key.
// The subscription is owned by the model's controller and closes with it.
func New(c *playback.Controller, mixer player.Mixer, rewind time.Duration) Model {
	contexts := []string{keymap.ContextGlobal, keymap.ContextPlayback}
	if mixer != nil {
		contexts = append(contexts, keymap.ContextOutput)
	}
	return Model{
		c:        c,
		mixer:    mixer,
		sub:      c.Subscribe(),
		resolver: keymap.NewResolver(keymap.Bindings, contexts...),
		help:     help.New(),
		rewind:   rewind,
		title:    c.MediaTitle(),
		width:    defaultWidth,
	}
}

// Init starts listening for controller events.
func (m Model) Init() tea.Cmd {
	return WatchEvents(m.sub)
}

// Position returns the last position reported while playing or paused.
func (m Model) Position() time.Duration {
	return m.position
}
