package playback

import (
	"errors"
	"fmt"

	"github.com/llehouerou/mediacontroller/internal/player"
)

var (
	// ErrInvalidURL is wrapped by the InitializationError reported for a
	// locator that cannot be opened.
	ErrInvalidURL = errors.New("invalid media url")

	// ErrUnsupportedFormat is reported when the backend cannot decode the media.
	ErrUnsupportedFormat = player.ErrUnsupportedFormat
)

// InitializationError reports that media could not be prepared or that
// playback could not be started from the beginning.
type InitializationError struct {
	Op  string
	URL string
	Err error
}

func (e *InitializationError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *InitializationError) Unwrap() error { return e.Err }

// PlaybackError reports a failure while media was already prepared.
type PlaybackError struct {
	Op  string
	URL string
	Err error
}

func (e *PlaybackError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *PlaybackError) Unwrap() error { return e.Err }

// Operation names carried by the typed errors.
const (
	opLoad              = "load"
	opPlayFromBeginning = "play from beginning"
	opResume            = "resume"
	opPlayFrom          = "play from position"
	opPlayback          = "playback"
	opPause             = "pause"
	opStop              = "stop"
)
