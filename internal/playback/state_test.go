// internal/playback/state_test.go
package playback

import (
	"testing"

	"github.com/llehouerou/mediacontroller/internal/player"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStopped, "Stopped"},
		{StatePlaying, "Playing"},
		{StatePaused, "Paused"},
		{StateFailed, "Failed"},
		{State(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state     State
		active    bool
		canPause  bool
		canResume bool
	}{
		{StateStopped, false, false, true},
		{StatePlaying, true, true, false},
		{StatePaused, true, false, true},
		{StateFailed, false, false, false},
	}
	for _, tt := range tests {
		if got := tt.state.IsActive(); got != tt.active {
			t.Errorf("%v.IsActive() = %v, want %v", tt.state, got, tt.active)
		}
		if got := tt.state.CanPause(); got != tt.canPause {
			t.Errorf("%v.CanPause() = %v, want %v", tt.state, got, tt.canPause)
		}
		if got := tt.state.CanResume(); got != tt.canResume {
			t.Errorf("%v.CanResume() = %v, want %v", tt.state, got, tt.canResume)
		}
	}
}

func TestBufferingState_String(t *testing.T) {
	tests := []struct {
		b    BufferingState
		want string
	}{
		{BufferingUnknown, "Unknown"},
		{BufferingReady, "Ready"},
		{BufferingBuffering, "Buffering"},
		{BufferingState(99), "Invalid"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.b, got, tt.want)
		}
	}
}

func TestBufferingFromPlayer(t *testing.T) {
	tests := []struct {
		in   player.Buffering
		want BufferingState
	}{
		{player.BufferingUnknown, BufferingUnknown},
		{player.BufferingReady, BufferingReady},
		{player.BufferingBuffering, BufferingBuffering},
		{player.Buffering(42), BufferingUnknown},
	}
	for _, tt := range tests {
		if got := bufferingFromPlayer(tt.in); got != tt.want {
			t.Errorf("bufferingFromPlayer(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
