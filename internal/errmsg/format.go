// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/mediacontroller/internal/playback"
)

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Startup
	OpConfigLoad  Op = "load configuration"
	OpLoggerOpen  Op = "open log file"
	OpHistoryOpen Op = "open playback history"
	OpMPRISStart  Op = "start media controls"
	OpInitialize  Op = "initialize application"

	// Playback operations
	OpMediaLoad Op = "load media"
	OpPlayback  Op = "play media"

	// History
	OpHistoryList   Op = "list playback history"
	OpHistoryResume Op = "read resume position"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// FormatPlayback formats a controller error, naming the media it concerns.
// Initialization failures read as load errors, everything else as
// playback errors.
func FormatPlayback(err error) string {
	var initErr *playback.InitializationError
	if errors.As(err, &initErr) {
		return FormatWith(OpMediaLoad, initErr.URL, initErr.Err)
	}
	var playErr *playback.PlaybackError
	if errors.As(err, &playErr) {
		return FormatWith(OpPlayback, playErr.URL, playErr.Err)
	}
	return Format(OpPlayback, err)
}
