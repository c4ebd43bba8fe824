// internal/player/mock.go
package player

import (
	"sync"
	"time"
)

// Mock is a test double for the media backend. It records every command
// and keeps each Events sink it was handed so tests can fire backend
// callbacks, including ones belonging to superseded loads.
type Mock struct {
	mu sync.Mutex

	state      State
	position   time.Duration
	playErr    error
	seekErr    error
	loads      []string
	sinks      []Events
	seekCalls  []time.Duration
	playCalls  int
	pauseCalls int
	stopCalls  int
	closed     bool
}

// NewMock creates a new mock backend for testing.
func NewMock() *Mock {
	return &Mock{state: Idle}
}

func (m *Mock) Load(url string, ev Events) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads = append(m.loads, url)
	m.sinks = append(m.sinks, ev)
	m.state = Stopped
	m.position = 0
}

func (m *Mock) Seek(position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, position)
	if m.seekErr != nil {
		return m.seekErr
	}
	m.position = position
	return nil
}

func (m *Mock) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	if m.playErr != nil {
		return m.playErr
	}
	m.state = Playing
	return nil
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	if m.state == Playing {
		m.state = Paused
	}
	return nil
}

func (m *Mock) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopCalls++
	if m.state.IsLoaded() {
		m.state = Stopped
	}
	m.position = 0
	return nil
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.state = Idle
	return nil
}

// Test helpers

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

func (m *Mock) SetPlayError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErr = err
}

func (m *Mock) SetSeekError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekErr = err
}

func (m *Mock) Loads() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.loads...)
}

// Events returns the sink handed to the i-th Load call.
func (m *Mock) Events(i int) Events {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.sinks) {
		return nil
	}
	return m.sinks[i]
}

// LastEvents returns the sink of the most recent Load call.
func (m *Mock) LastEvents() Events {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sinks) == 0 {
		return nil
	}
	return m.sinks[len(m.sinks)-1]
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) PlayCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playCalls
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopCalls
}

func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
