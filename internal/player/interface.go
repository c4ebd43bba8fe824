// internal/player/interface.go
package player

import (
	"errors"
	"time"
)

// ErrUnsupportedFormat is reported through Events.PrepareFailed when the
// media container is not one the backend can decode.
var ErrUnsupportedFormat = errors.New("unsupported media format")

// ErrNotLoaded is returned by transport commands issued before a load completed.
var ErrNotLoaded = errors.New("no media loaded")

// ErrClosed is reported by Load once the backend has been closed.
var ErrClosed = errors.New("backend closed")

// Interface defines the media backend contract driven by the playback controller.
//
// Load is asynchronous: the outcome is reported on the Events sink passed
// with the call. A later Load supersedes the earlier one; the backend may
// still deliver events on the old sink, which the caller is expected to ignore.
type Interface interface {
	Load(url string, ev Events)
	Seek(position time.Duration) error
	Play() error
	Pause() error
	Stop() error
	Position() time.Duration
	Close() error
}

// Events receives the outcome of a Load and everything that happens to
// the loaded media afterwards. Methods may be called from any goroutine.
type Events interface {
	// Prepared reports the media is ready. known is false when the
	// backend cannot determine the duration (live streams).
	Prepared(duration time.Duration, known bool)
	PrepareFailed(err error)
	BufferingChanged(b Buffering)
	Progress(position, duration time.Duration)
	Finished()
	// Failed reports an error during an active session.
	Failed(err error)
}

// Mixer controls the output level independently of the loaded media.
type Mixer interface {
	Volume() float64
	SetVolume(level float64)
	Muted() bool
	SetMuted(muted bool)
}

// Buffering reports data availability for the loaded media.
type Buffering int

const (
	BufferingUnknown Buffering = iota
	BufferingReady
	BufferingBuffering
)

// String returns the buffering state name.
func (b Buffering) String() string {
	switch b {
	case BufferingUnknown:
		return "Unknown"
	case BufferingReady:
		return "Ready"
	case BufferingBuffering:
		return "Buffering"
	default:
		return "Invalid"
	}
}

// Verify Player implements Interface and Mixer at compile time.
var (
	_ Interface = (*Player)(nil)
	_ Mixer     = (*Player)(nil)
)
