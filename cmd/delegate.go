package cmd

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediacontroller/internal/errmsg"
	"github.com/llehouerou/mediacontroller/internal/playback"
	"github.com/llehouerou/mediacontroller/internal/state"
	"github.com/llehouerou/mediacontroller/internal/ui/playerbar"
)

// historyStore is the subset of state.Manager the delegate records into.
type historyStore interface {
	RecordStart(url, title string) error
	SavePosition(e state.Entry)
	MarkFinished(url string) error
}

// appDelegate fans controller callbacks out to the log, the playback
// history and, without the TUI, a line printer on stdout.
type appDelegate struct {
	playback.BaseDelegate

	c       *playback.Controller
	log     zerolog.Logger
	history historyStore // nil when history is disabled
	out     io.Writer    // nil in TUI mode

	mu      sync.Mutex
	started bool // RecordStart done for the current load

	doneOnce sync.Once
	done     chan struct{}
}

func newAppDelegate(c *playback.Controller, history historyStore, out io.Writer, log zerolog.Logger) *appDelegate {
	return &appDelegate{
		c:       c,
		log:     log,
		history: history,
		out:     out,
		done:    make(chan struct{}),
	}
}

// Done is closed when the media finished or failed.
func (d *appDelegate) Done() <-chan struct{} {
	return d.done
}

func (d *appDelegate) finish() {
	d.doneOnce.Do(func() { close(d.done) })
}

func (d *appDelegate) printf(format string, args ...any) {
	if d.out != nil {
		fmt.Fprintf(d.out, format, args...)
	}
}

// DidHandleInitializationError receives every failure, initialization or not.
func (d *appDelegate) DidHandleInitializationError(c *playback.Controller, err error) {
	d.log.Error().Str("Method", "DidHandleInitializationError").Str("URL", c.MediaURL()).Err(err).Msg("media failed")
	d.printf("\n%s\n", errmsg.FormatPlayback(err))
	d.finish()
}

func (d *appDelegate) DidFetchItemDuration(c *playback.Controller, duration time.Duration) {
	d.log.Info().Str("Method", "DidFetchItemDuration").Str("URL", c.MediaURL()).Dur("Duration", duration).Msg("media ready")
	title := c.MediaTitle()
	if duration > 0 {
		d.printf("%s [%s]\n", title, playerbar.FormatDuration(duration))
	} else {
		d.printf("%s [live]\n", title)
	}
}

func (d *appDelegate) DidChangePlaybackState(c *playback.Controller) {
	s := c.State()
	d.log.Debug().Str("Method", "DidChangePlaybackState").Stringer("State", s).Msg("state changed")

	switch s {
	case playback.StatePlaying:
		d.recordStart(c)
	case playback.StatePaused, playback.StateStopped:
		d.printf("\n%s\n", s)
	}
}

func (d *appDelegate) DidChangeBufferingState(c *playback.Controller) {
	b := c.BufferingState()
	d.log.Debug().Str("Method", "DidChangeBufferingState").Stringer("Buffering", b).Msg("buffering changed")
	if b == playback.BufferingBuffering {
		d.printf("buffering...\n")
	}
}

func (d *appDelegate) DidBeginPlayingFromBeginning(c *playback.Controller) {
	d.log.Debug().Str("Method", "DidBeginPlayingFromBeginning").Str("URL", c.MediaURL()).Msg("playing from beginning")
}

func (d *appDelegate) DidUpdateProgress(position, duration time.Duration) {
	if d.history != nil {
		d.history.SavePosition(state.Entry{
			URL:      d.c.MediaURL(),
			Title:    d.c.MediaTitle(),
			Position: position,
			Duration: duration,
		})
	}
	if duration > 0 {
		d.printf("\r%s / %s ", playerbar.FormatDuration(position), playerbar.FormatDuration(duration))
	} else {
		d.printf("\r%s ", playerbar.FormatDuration(position))
	}
}

func (d *appDelegate) DidFinishPlaying(c *playback.Controller) {
	url := c.MediaURL()
	d.log.Info().Str("Method", "DidFinishPlaying").Str("URL", url).Msg("media finished")
	if d.history != nil {
		if err := d.history.MarkFinished(url); err != nil {
			d.log.Warn().Str("Method", "DidFinishPlaying").Str("URL", url).Err(err).Msg("history update failed")
		}
	}
	d.printf("\nFinished\n")
	d.finish()
}

func (d *appDelegate) recordStart(c *playback.Controller) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	if d.history == nil {
		return
	}
	if err := d.history.RecordStart(c.MediaURL(), c.MediaTitle()); err != nil {
		d.log.Warn().Str("Method", "RecordStart").Str("URL", c.MediaURL()).Err(err).Msg("history update failed")
	}
}
