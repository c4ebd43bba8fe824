package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/mediacontroller/internal/errmsg"
	"github.com/llehouerou/mediacontroller/internal/state"
	"github.com/llehouerou/mediacontroller/internal/ui/playerbar"
	"github.com/llehouerou/mediacontroller/internal/ui/render"
	"github.com/llehouerou/mediacontroller/internal/ui/styles"
)

const titleWidth = 40

var flagLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently played media",
	Args:  cobra.NoArgs,
	RunE:  historyRun,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Maximum number of entries")
}

func historyRun(_ *cobra.Command, _ []string) error {
	hc := cfg.GetHistoryConfig()
	m, err := state.Open(hc.DBPath, hc.SaveInterval, zerolog.Nop())
	if err != nil {
		return &opError{op: errmsg.OpHistoryOpen, err: err}
	}
	defer m.Close()

	entries, err := m.Recent(flagLimit)
	if err != nil {
		return &opError{op: errmsg.OpHistoryList, err: err}
	}
	if len(entries) == 0 {
		fmt.Println("No playback history yet.")
		return nil
	}

	fmt.Println(historyTable(entries))
	return nil
}

// historyTable renders entries as a bordered table.
func historyTable(entries []state.Entry) string {
	theme := styles.T()
	s := theme.S()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers("Title", "Position", "Plays", "Last played").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Title.Padding(0, 1)
			}
			if entries[row].Finished {
				return s.Muted.Padding(0, 1)
			}
			return s.Base.Padding(0, 1)
		})

	for _, e := range entries {
		t.Row(
			render.Truncate(entryTitle(e), titleWidth),
			entryProgress(e),
			strconv.Itoa(e.PlayCount),
			humanize.Time(e.UpdatedAt),
		)
	}
	return t.Render()
}

func entryTitle(e state.Entry) string {
	if e.Title != "" {
		return render.Sanitize(e.Title)
	}
	return render.Sanitize(e.URL)
}

func entryProgress(e state.Entry) string {
	switch {
	case e.Finished:
		return "finished"
	case e.Duration > 0:
		return playerbar.FormatDuration(e.Position) + " / " + playerbar.FormatDuration(e.Duration)
	default:
		return playerbar.FormatDuration(e.Position)
	}
}
