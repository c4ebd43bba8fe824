package nowplaying

import (
	"fmt"
	"strings"

	"github.com/llehouerou/mediacontroller/internal/keymap"
	"github.com/llehouerou/mediacontroller/internal/ui/playerbar"
	"github.com/llehouerou/mediacontroller/internal/ui/styles"
)

// View renders the player bar with a help line underneath.
func (m Model) View() string {
	state := playerbar.NewState(m.c.Snapshot(), m.title, m.position)

	var b strings.Builder
	b.WriteString(playerbar.Render(state, m.width))
	b.WriteString("\n")

	if m.finished {
		b.WriteString(styles.T().S().Muted.Render(m.finishedHint()))
		b.WriteString("\n")
	}

	if m.mixer != nil {
		b.WriteString(styles.T().S().Muted.Render(volumeLabel(m.mixer.Volume(), m.mixer.Muted())))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.help.ShortHelpView(m.resolver.Help()))
	} else {
		b.WriteString(styles.T().S().Subtle.Render("? help  q quit"))
	}
	return b.String()
}

func volumeLabel(level float64, muted bool) string {
	if muted {
		return "vol muted"
	}
	return fmt.Sprintf("vol %3d%%", int(level*100+0.5))
}

func (m Model) finishedHint() string {
	keys := m.resolver.KeysFor(keymap.ActionPlayFromBeginning)
	if len(keys) == 0 {
		return "Finished."
	}
	return "Finished. Press " + keymap.DisplayKey(keys[0]) + " to play again."
}
