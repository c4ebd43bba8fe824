package cmd

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// newLogger builds the process logger. Console output goes to stderr in a
// human-readable form; a log file gets JSON lines. The TUI owns the
// terminal, so in TUI mode logs always go to a file.
func newLogger(level zerolog.Level, logFile string, tui bool) (zerolog.Logger, io.Closer, error) {
	if logFile == "" && tui {
		path, err := xdg.StateFile(filepath.Join("mediactl", "mediactl.log"))
		if err != nil {
			return zerolog.Nop(), nil, errors.Wrap(err, "resolve log file")
		}
		logFile = path
	}

	if logFile == "" {
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "create log directory")
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, errors.Wrap(err, "open log file")
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
}
