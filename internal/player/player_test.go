package player

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventTimeout = 2 * time.Second

// fakeOutput mixes attached streamers only when pull is called, standing in
// for the speaker's audio goroutine.
type fakeOutput struct {
	mu        sync.Mutex
	streamers []beep.Streamer
	initErr   error
}

func (o *fakeOutput) Init() error                 { return o.initErr }
func (o *fakeOutput) SampleRate() beep.SampleRate { return speakerRate }
func (o *fakeOutput) Lock()                       { o.mu.Lock() }
func (o *fakeOutput) Unlock()                     { o.mu.Unlock() }

func (o *fakeOutput) Play(s beep.Streamer) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamers = append(o.streamers, s)
}

func (o *fakeOutput) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.streamers = nil
}

// pull streams n samples from every attached streamer and drops the drained ones.
func (o *fakeOutput) pull(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	buf := make([][2]float64, n)
	kept := o.streamers[:0]
	for _, s := range o.streamers {
		if _, ok := s.Stream(buf); ok {
			kept = append(kept, s)
		}
	}
	o.streamers = kept
}

type eventLog struct {
	prepared      chan time.Duration
	prepareFailed chan error
	progress      chan time.Duration
	finished      chan struct{}
	failed        chan error
}

func newEventLog() *eventLog {
	return &eventLog{
		prepared:      make(chan time.Duration, 4),
		prepareFailed: make(chan error, 4),
		progress:      make(chan time.Duration, 64),
		finished:      make(chan struct{}, 4),
		failed:        make(chan error, 4),
	}
}

func (l *eventLog) Prepared(d time.Duration, _ bool) { l.prepared <- d }
func (l *eventLog) PrepareFailed(err error)          { l.prepareFailed <- err }
func (l *eventLog) BufferingChanged(Buffering)       {}
func (l *eventLog) Finished()                        { l.finished <- struct{}{} }
func (l *eventLog) Failed(err error)                 { l.failed <- err }

func (l *eventLog) Progress(position, _ time.Duration) {
	select {
	case l.progress <- position:
	default:
	}
}

func receive[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(eventTimeout):
		t.Fatalf("no %s event", what)
		var zero T
		return zero
	}
}

func assertNoEvent[T any](t *testing.T, ch chan T, what string) {
	t.Helper()
	select {
	case <-ch:
		t.Errorf("unexpected %s event", what)
	case <-time.After(50 * time.Millisecond):
	}
}

// writeWAV writes d of silence as a 44.1kHz stereo WAV file.
func writeWAV(t *testing.T, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: speakerRate, NumChannels: 2, Precision: 2}
	require.NoError(t, wav.Encode(f, generators.Silence(format.SampleRate.N(d)), format))
	require.NoError(t, f.Close())
	return path
}

func newTestPlayer(t *testing.T, out *fakeOutput) *Player {
	t.Helper()
	p := newPlayer(Config{ProgressInterval: 5 * time.Millisecond}, out, zerolog.Nop())
	t.Cleanup(func() { _ = p.Close() })
	return p
}

// failingStream plays n samples of silence and then reports err.
type failingStream struct {
	n, pos int
	err    error
}

func (s *failingStream) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	k := min(len(samples), s.n-s.pos)
	clear(samples[:k])
	s.pos += k
	return k, true
}

func (s *failingStream) Err() error       { return s.err }
func (s *failingStream) Len() int         { return s.n }
func (s *failingStream) Position() int    { return s.pos }
func (s *failingStream) Seek(p int) error { s.pos = p; return nil }
func (s *failingStream) Close() error     { return nil }

func TestPlayer_PlaysWAVToEnd(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out)
	ev := newEventLog()

	p.Load(writeWAV(t, 100*time.Millisecond), ev)
	assert.Equal(t, 100*time.Millisecond, receive(t, ev.prepared, "Prepared"))
	assert.Equal(t, Stopped, p.State())

	require.NoError(t, p.Play())
	assert.Equal(t, Playing, p.State())
	receive(t, ev.progress, "Progress")

	out.pull(speakerRate.N(200 * time.Millisecond))
	receive(t, ev.finished, "Finished")

	assert.Equal(t, Stopped, p.State())
	assert.Equal(t, time.Duration(0), p.Position(), "end of stream rewinds")
	assertNoEvent(t, ev.failed, "Failed")
}

func TestPlayer_ProgressAdvances(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out)
	ev := newEventLog()

	p.Load(writeWAV(t, time.Second), ev)
	receive(t, ev.prepared, "Prepared")
	require.NoError(t, p.Play())

	out.pull(speakerRate.N(500 * time.Millisecond))
	// drop ticks sent before the pull
	deadline := time.After(eventTimeout)
	for {
		select {
		case pos := <-ev.progress:
			if pos == 500*time.Millisecond {
				return
			}
		case <-deadline:
			t.Fatal("no Progress at 500ms")
		}
	}
}

func TestPlayer_PauseStopsProgress(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out)
	ev := newEventLog()

	p.Load(writeWAV(t, time.Second), ev)
	receive(t, ev.prepared, "Prepared")
	require.NoError(t, p.Play())
	receive(t, ev.progress, "Progress")

	require.NoError(t, p.Pause())
	assert.Equal(t, Paused, p.State())
	// a tick already in flight may land
	time.Sleep(20 * time.Millisecond)
	for len(ev.progress) > 0 {
		<-ev.progress
	}
	assertNoEvent(t, ev.progress, "Progress")
}

func TestPlayer_StreamErrorReportsFailed(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out)
	ev := newEventLog()
	decodeErr := errors.New("corrupt frame")

	format := beep.Format{SampleRate: speakerRate, NumChannels: 2, Precision: 2}
	p.attach(0, &failingStream{n: 100, err: decodeErr}, format, ev)
	receive(t, ev.prepared, "Prepared")

	require.NoError(t, p.Play())
	out.pull(200)

	assert.ErrorIs(t, receive(t, ev.failed, "Failed"), decodeErr)
	assertNoEvent(t, ev.finished, "Finished")
	assert.Equal(t, Stopped, p.State())
}

func TestPlayer_OutputInitFailure(t *testing.T) {
	initErr := errors.New("no audio device")
	p := newTestPlayer(t, &fakeOutput{initErr: initErr})
	ev := newEventLog()

	p.Load(writeWAV(t, 100*time.Millisecond), ev)

	assert.ErrorIs(t, receive(t, ev.prepareFailed, "PrepareFailed"), initErr)
	assert.Equal(t, Idle, p.State())
}

func TestPlayer_SupersededAttachIgnored(t *testing.T) {
	p := newTestPlayer(t, &fakeOutput{})
	ev := newEventLog()
	stream := &failingStream{n: 100}

	p.attach(1, stream, beep.Format{SampleRate: speakerRate, NumChannels: 2, Precision: 2}, ev)

	assertNoEvent(t, ev.prepared, "Prepared")
	assert.Equal(t, Idle, p.State())
}

func TestPlayer_StaleEndIgnored(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out)
	first, second := newEventLog(), newEventLog()
	path := writeWAV(t, time.Second)

	p.Load(path, first)
	receive(t, first.prepared, "Prepared")
	require.NoError(t, p.Play())
	staleSeq := p.seq

	p.Load(path, second)
	receive(t, second.prepared, "Prepared")
	require.NoError(t, p.Play())

	p.handleEnd(staleSeq)

	assert.Equal(t, Playing, p.State())
	assertNoEvent(t, first.finished, "Finished")
	assertNoEvent(t, second.finished, "Finished")
}

func TestPlayer_StaleProgressLoopExits(t *testing.T) {
	out := &fakeOutput{}
	p := newTestPlayer(t, out)
	ev, stale := newEventLog(), newEventLog()

	p.Load(writeWAV(t, time.Second), ev)
	receive(t, ev.prepared, "Prepared")
	require.NoError(t, p.Play())

	done := make(chan struct{})
	go func() {
		p.progressLoop(p.seq-1, stale, make(chan struct{}))
		close(done)
	}()

	receive(t, done, "loop exit")
	assert.Empty(t, stale.progress)
}
