package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/mediacontroller/internal/errmsg"
	"github.com/llehouerou/mediacontroller/internal/mpris"
	"github.com/llehouerou/mediacontroller/internal/notify"
	"github.com/llehouerou/mediacontroller/internal/playback"
	"github.com/llehouerou/mediacontroller/internal/player"
	"github.com/llehouerou/mediacontroller/internal/state"
	"github.com/llehouerou/mediacontroller/internal/stderr"
	"github.com/llehouerou/mediacontroller/internal/tags"
	"github.com/llehouerou/mediacontroller/internal/ui/nowplaying"
)

const (
	// closeTimeout bounds how long shutdown waits for the controller.
	closeTimeout = 3 * time.Second
	// notifyDrainTimeout bounds how long shutdown waits for queued
	// desktop notifications.
	notifyDrainTimeout = 2 * time.Second
)

var (
	flagTUI    bool
	flagResume bool
	flagRewind time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play <url>",
	Short: "Play a local file or an http(s) URL",
	Args:  cobra.ExactArgs(1),
	RunE:  playRun,
}

func init() {
	playCmd.Flags().BoolVarP(&flagTUI, "tui", "t", false, "Interactive terminal UI")
	playCmd.Flags().BoolVarP(&flagResume, "resume", "r", false, "Resume from the saved position")
	playCmd.Flags().DurationVar(&flagRewind, "rewind", -1, "Rewind offset when resuming (default from config)")
}

// session holds everything built around one controller.
type session struct {
	log      zerolog.Logger
	backend  *player.Player
	c        *playback.Controller
	delegate *appDelegate
	history  *state.Manager // nil when disabled or unavailable
	rewind   time.Duration
}

func playRun(cmd *cobra.Command, args []string) error {
	url := args[0]

	log, logCloser, err := newLogger(cfg.LogLevel, cfg.LogFile, flagTUI)
	if err != nil {
		return &opError{op: errmsg.OpLoggerOpen, err: err}
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	if flagTUI {
		capture, err := stderr.Start(log)
		if err != nil {
			log.Warn().Err(err).Msg("stderr capture unavailable")
		}
		defer capture.Stop()
	}

	s := newSession(log, !flagTUI)
	defer s.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.NotifyEnabled() {
		n, err := notify.New()
		if err != nil {
			log.Warn().Err(err).Msg("desktop notifications unavailable")
		} else {
			defer watchFinished(n, playback.SubscribeFinished(), log)()
		}
	}

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(s.c, s.backend, log)
		if err != nil {
			log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer adapter.Close()
		}
	}

	s.start(url, flagResume)

	if flagTUI {
		p := tea.NewProgram(nowplaying.New(s.c, s.backend, s.rewind), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return &opError{op: errmsg.OpInitialize, err: errors.Wrap(err, "run terminal ui")}
		}
		return nil
	}

	select {
	case <-s.delegate.Done():
	case <-ctx.Done():
		log.Info().Msg("interrupted")
	}
	return nil
}

// watchFinished sends a desktop notification for every finished media on
// sub. The returned drain closes sub and waits, bounded, until the
// notifications already queued have been sent.
func watchFinished(n notify.Notifier, sub *playback.FinishedSubscription, log zerolog.Logger) (drain func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		notify.Watch(ctx, n, sub, log)
	}()

	return func() {
		sub.Close()
		timer := time.NewTimer(notifyDrainTimeout)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			log.Warn().Msg("pending desktop notifications dropped")
		}
		cancel()
	}
}

func newSession(log zerolog.Logger, printing bool) *session {
	pc := cfg.GetPlaybackConfig()
	hc := cfg.GetHTTPConfig()

	s := &session{
		log:    log,
		rewind: pc.RewindOffset,
	}
	if flagRewind >= 0 {
		s.rewind = flagRewind
	}

	s.backend = player.New(player.Config{
		ProgressInterval: pc.ProgressInterval,
		HTTPRetryMax:     *hc.RetryMax,
		HTTPTimeout:      hc.Timeout,
		Volume:           pc.Volume,
	}, log.With().Str("Component", "player").Logger())

	s.c = playback.New(s.backend, playback.WithLogger(log.With().Str("Component", "playback").Logger()))
	s.c.SetDataSource(playback.StrongDataSource(tags.NewSource(log)))

	if cfg.HistoryEnabled() {
		hist := cfg.GetHistoryConfig()
		m, err := state.Open(hist.DBPath, hist.SaveInterval, log.With().Str("Component", "history").Logger())
		if err != nil {
			log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpHistoryOpen, err))
		} else {
			s.history = m
		}
	}

	var out io.Writer
	if printing {
		out = os.Stdout
	}
	// a nil *state.Manager must not become a non-nil interface
	var store historyStore
	if s.history != nil {
		store = s.history
	}
	s.delegate = newAppDelegate(s.c, store, out, log)
	s.c.SetDelegate(playback.StrongDelegate(s.delegate))
	return s
}

// start loads url and plays it, from the saved position when resuming.
// Play commands issued before the media is ready run once it is.
func (s *session) start(url string, resume bool) {
	s.c.UpdateWithMediaURL(url)

	if resume && s.history != nil {
		entry, err := s.history.Get(url)
		if err != nil {
			s.log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpHistoryResume, err))
		}
		if entry != nil && entry.Resumable() {
			s.log.Info().Str("URL", url).Dur("Position", entry.Position).Msg("resuming")
			s.c.PlayFrom(max(entry.Position-s.rewind, 0))
			return
		}
	}
	s.c.PlayFromBeginning()
}

// close saves the final position and tears everything down.
func (s *session) close() {
	if s.history != nil && s.c.State().IsActive() {
		s.history.SavePosition(state.Entry{
			URL:      s.c.MediaURL(),
			Title:    s.c.MediaTitle(),
			Position: s.c.Position(),
			Duration: s.c.Duration(),
		})
	}

	_ = s.c.Close()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	select {
	case <-s.c.Done():
	case <-ctx.Done():
		s.log.Warn().Msg("controller did not shut down in time")
	}

	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.log.Warn().Err(err).Msg("closing history failed")
		}
	}
}
