//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/llehouerou/mediacontroller/internal/playback"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpMediaLoad,
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with operation",
			op:       OpConfigLoad,
			err:      errors.New("file not found"),
			expected: "Failed to load configuration: file not found",
		},
		{
			name:     "history operation",
			op:       OpHistoryOpen,
			err:      errors.New("database is locked"),
			expected: "Failed to open playback history: database is locked",
		},
		{
			name:     "playback operation",
			op:       OpPlayback,
			err:      errors.New("no audio device"),
			expected: "Failed to play media: no audio device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpMediaLoad,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpMediaLoad,
			context:  "song.mp3",
			err:      errors.New("permission denied"),
			expected: "Failed to load media 'song.mp3': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpMediaLoad,
			context:  "",
			err:      errors.New("permission denied"),
			expected: "Failed to load media: permission denied",
		},
		{
			name:     "config with path context",
			op:       OpConfigLoad,
			context:  "/etc/mediactl.toml",
			err:      errors.New("invalid toml"),
			expected: "Failed to load configuration '/etc/mediactl.toml': invalid toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatPlayback(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
		{
			name:     "initialization error",
			err:      &playback.InitializationError{Op: "load", URL: "http://x/a.mp3", Err: cause},
			expected: "Failed to load media 'http://x/a.mp3': connection refused",
		},
		{
			name:     "wrapped playback error",
			err:      fmt.Errorf("session: %w", &playback.PlaybackError{Op: "playback", URL: "/a.mp3", Err: cause}),
			expected: "Failed to play media '/a.mp3': connection refused",
		},
		{
			name:     "plain error",
			err:      cause,
			expected: "Failed to play media: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPlayback(tt.err); got != tt.expected {
				t.Errorf("FormatPlayback(%v) = %q, want %q", tt.err, got, tt.expected)
			}
		})
	}
}

func TestOpConstants(t *testing.T) {
	ops := []Op{
		OpConfigLoad, OpLoggerOpen, OpHistoryOpen, OpMPRISStart, OpInitialize,
		OpMediaLoad, OpPlayback,
		OpHistoryList, OpHistoryResume,
	}

	testErr := errors.New("test error")

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			if op == "" {
				t.Error("Op constant should not be empty")
			}

			expected := "Failed to " + string(op) + ": test error"
			if result := Format(op, testErr); result != expected {
				t.Errorf("Format = %q, want %q", result, expected)
			}
		})
	}
}
