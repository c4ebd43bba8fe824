// internal/playback/controller.go
package playback

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediacontroller/internal/player"
)

var nextControllerID atomic.Uint64

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithBroadcaster publishes end-of-media events on b instead of the
// process-wide hub.
func WithBroadcaster(b *Broadcaster) Option {
	return func(c *Controller) { c.broadcast = b }
}

type playKind int

const (
	playFromBeginning playKind = iota
	playRewind
	playFromPosition
)

type playIntent struct {
	kind     playKind
	offset   time.Duration
	position time.Duration
}

// Controller drives one media backend and reports its lifecycle to a
// delegate. Commands never block and never return errors: they are queued
// on the controller's executor and their outcome is delivered through the
// Delegate and Subscriptions. Queries may be called from any goroutine.
type Controller struct {
	id        uint64
	backend   player.Interface
	log       zerolog.Logger
	broadcast *Broadcaster
	exec      *executor
	done      chan struct{}
	closeOnce sync.Once

	// snapshot read by queries; written only on the executor
	mu        sync.RWMutex
	state     State
	buffering BufferingState
	media     MediaReference

	refMu      sync.RWMutex
	delegate   DelegateRef
	dataSource DataSourceRef

	subsMu sync.RWMutex
	subs   []*Subscription
	closed bool

	// executor-only
	gen          uint64
	ready        bool
	pending      *playIntent
	progressSeen bool
	lastProgress time.Duration
}

// New creates a controller over backend. The controller owns the backend
// and closes it on Close.
func New(backend player.Interface, opts ...Option) *Controller {
	c := &Controller{
		id:        nextControllerID.Add(1),
		backend:   backend,
		log:       zerolog.Nop(),
		broadcast: defaultBroadcaster,
		done:      make(chan struct{}),
		state:     StateStopped,
		buffering: BufferingUnknown,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.exec = newExecutor()
	return c
}

// ID identifies the controller in FinishedEvents.
func (c *Controller) ID() uint64 { return c.id }

// SetDelegate registers the delegate. Pass nil to unregister.
func (c *Controller) SetDelegate(ref DelegateRef) {
	c.refMu.Lock()
	c.delegate = ref
	c.refMu.Unlock()
}

// SetDataSource registers the data source. Pass nil to unregister.
func (c *Controller) SetDataSource(ref DataSourceRef) {
	c.refMu.Lock()
	c.dataSource = ref
	c.refMu.Unlock()
}

// DataSource returns the registered data source, or nil if none is
// registered or it has been collected.
func (c *Controller) DataSource() DataSource {
	c.refMu.RLock()
	ref := c.dataSource
	c.refMu.RUnlock()
	if ref == nil {
		return nil
	}
	ds, ok := ref()
	if !ok {
		return nil
	}
	return ds
}

// MediaTitle asks the data source for the current title. It returns ""
// without a data source.
func (c *Controller) MediaTitle() string {
	ds := c.DataSource()
	if ds == nil {
		return ""
	}
	return ds.MediaTitle(c)
}

func (c *Controller) currentDelegate() Delegate {
	c.refMu.RLock()
	ref := c.delegate
	c.refMu.RUnlock()
	if ref == nil {
		return nil
	}
	d, ok := ref()
	if !ok {
		return nil
	}
	return d
}

// Subscribe creates a new event subscription. Its Done channel is closed
// when the controller is closed.
func (c *Controller) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.closed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

func (c *Controller) eachSub(fn func(*Subscription)) {
	c.subsMu.RLock()
	defer c.subsMu.RUnlock()
	for _, sub := range c.subs {
		fn(sub)
	}
}

// Queries

// State returns the playback state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// BufferingState returns the buffering state.
func (c *Controller) BufferingState() BufferingState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.buffering
}

// MediaURL returns the current locator, or "" before the first load.
func (c *Controller) MediaURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.media.URL
}

// Err returns the failure reason. It is non-nil exactly in StateFailed.
func (c *Controller) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.media.Err
}

// Media returns a copy of the current media reference.
func (c *Controller) Media() MediaReference {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.media
}

// Duration returns the media duration, or 0 while unknown.
func (c *Controller) Duration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.media.DurationKnown {
		return 0
	}
	return c.media.Duration
}

// Position returns the backend position.
func (c *Controller) Position() time.Duration {
	select {
	case <-c.done:
		return 0
	default:
	}
	return c.backend.Position()
}

// Snapshot is a consistent view of the observable controller state.
type Snapshot struct {
	State     State
	Buffering BufferingState
	Media     MediaReference
}

// Snapshot returns state, buffering and media read together.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{State: c.state, Buffering: c.buffering, Media: c.media}
}

// Commands

// UpdateWithMediaURL replaces the media and starts preparing it. Any
// in-flight work for the previous media is superseded.
func (c *Controller) UpdateWithMediaURL(url string) {
	c.submit("UpdateWithMediaURL", func() { c.load(url) })
}

// PlayFromBeginning seeks to the start and plays.
func (c *Controller) PlayFromBeginning() {
	c.submit("PlayFromBeginning", func() { c.play(playIntent{kind: playFromBeginning}) })
}

// PlayFromCurrentTime resumes at the current position.
func (c *Controller) PlayFromCurrentTime() {
	c.PlayFromCurrentTimeWithRewindOffset(0)
}

// PlayFromCurrentTimeWithRewindOffset resumes offset before the current
// position, never before the start.
func (c *Controller) PlayFromCurrentTimeWithRewindOffset(offset time.Duration) {
	c.submit("PlayFromCurrentTimeWithRewindOffset", func() {
		c.play(playIntent{kind: playRewind, offset: offset})
	})
}

// PlayFrom plays from position, clamped to the media bounds.
func (c *Controller) PlayFrom(position time.Duration) {
	c.submit("PlayFrom", func() {
		c.play(playIntent{kind: playFromPosition, position: position})
	})
}

// Pause pauses playback. It has no effect unless playing.
func (c *Controller) Pause() {
	c.submit("Pause", c.pause)
}

// Stop stops playback and rewinds. It has no effect unless playing or paused.
func (c *Controller) Stop() {
	c.submit("Stop", c.stop)
}

// Close stops the backend, closes it and all subscriptions, and stops the
// executor. Commands queued before Close still run; later ones are ignored.
// Close does not wait; Done is closed once teardown completes.
func (c *Controller) Close() error {
	c.closeOnce.Do(func() {
		c.exec.shutdown(c.teardown)
	})
	return nil
}

// Done is closed after Close has finished tearing the controller down.
func (c *Controller) Done() <-chan struct{} {
	return c.done
}

func (c *Controller) submit(method string, job func()) {
	if !c.exec.submit(job) {
		c.log.Debug().Str("Method", method).Uint64("Controller", c.id).Msg("command after close ignored")
	}
}

func (c *Controller) teardown() {
	c.gen++
	c.pending = nil
	if err := c.backend.Stop(); err != nil {
		c.log.Debug().Str("Method", "Close").Err(err).Msg("backend stop failed")
	}
	if err := c.backend.Close(); err != nil {
		c.log.Warn().Str("Method", "Close").Err(err).Msg("backend close failed")
	}

	c.subsMu.Lock()
	c.closed = true
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsMu.Unlock()

	close(c.done)
}

// Executor-side implementation

func (c *Controller) load(url string) {
	c.gen++
	c.ready = false
	c.pending = nil
	c.resetProgress()
	gen := c.gen

	c.log.Debug().Str("Method", "UpdateWithMediaURL").Str("URL", url).Uint64("Generation", gen).Msg("loading media")

	prevState, prevBuffering := c.state, c.buffering
	c.mu.Lock()
	c.media = MediaReference{URL: url}
	c.state = StateStopped
	c.buffering = BufferingUnknown
	c.mu.Unlock()
	c.notifyState(prevState)
	c.notifyBuffering(prevBuffering)

	if _, err := player.ParseLocator(url); err != nil {
		c.fail(&InitializationError{Op: opLoad, URL: url, Err: fmt.Errorf("%w: %w", ErrInvalidURL, err)})
		return
	}
	c.backend.Load(url, &loadEvents{c: c, gen: gen})
}

func (c *Controller) play(intent playIntent) {
	if !c.media.Loaded() || c.state == StateFailed {
		c.log.Debug().Str("Method", "play").Stringer("State", c.state).Msg("no playable media, ignoring")
		return
	}
	if !c.ready {
		c.log.Debug().Str("Method", "play").Str("URL", c.media.URL).Msg("media not ready, deferring play")
		c.pending = &intent
		return
	}
	c.startPlayback(intent)
}

func (c *Controller) startPlayback(intent playIntent) {
	c.resetProgress()

	var target time.Duration
	switch intent.kind {
	case playFromBeginning:
		target = 0
	case playRewind:
		current := max(c.backend.Position(), 0)
		offset := min(max(intent.offset, 0), current)
		target = current - offset
	case playFromPosition:
		target = max(intent.position, 0)
		if c.media.DurationKnown {
			target = min(target, c.media.Duration)
		}
	}

	if err := c.backend.Seek(target); err != nil {
		c.fail(c.playError(intent, err))
		return
	}
	if err := c.backend.Play(); err != nil {
		c.fail(c.playError(intent, err))
		return
	}

	c.log.Debug().Str("Method", "play").Str("URL", c.media.URL).Dur("Target", target).Msg("playing")
	prev := c.setState(StatePlaying)
	if intent.kind == playFromBeginning {
		if d := c.currentDelegate(); d != nil {
			d.DidBeginPlayingFromBeginning(c)
		}
	}
	c.notifyState(prev)
}

func (c *Controller) playError(intent playIntent, err error) error {
	switch intent.kind {
	case playFromBeginning:
		return &InitializationError{Op: opPlayFromBeginning, URL: c.media.URL, Err: err}
	case playFromPosition:
		return &PlaybackError{Op: opPlayFrom, URL: c.media.URL, Err: err}
	default:
		return &PlaybackError{Op: opResume, URL: c.media.URL, Err: err}
	}
}

func (c *Controller) pause() {
	c.pending = nil
	if !c.state.CanPause() {
		return
	}
	if err := c.backend.Pause(); err != nil {
		c.fail(&PlaybackError{Op: opPause, URL: c.media.URL, Err: err})
		return
	}
	c.notifyState(c.setState(StatePaused))
}

func (c *Controller) stop() {
	c.pending = nil
	if !c.state.IsActive() {
		return
	}
	if err := c.backend.Stop(); err != nil {
		c.fail(&PlaybackError{Op: opStop, URL: c.media.URL, Err: err})
		return
	}
	c.resetProgress()
	c.notifyState(c.setState(StateStopped))
}

// fail moves to StateFailed with err and reports it.
func (c *Controller) fail(err error) {
	c.pending = nil
	c.resetProgress()
	if c.state.IsActive() {
		if stopErr := c.backend.Stop(); stopErr != nil {
			c.log.Debug().Str("Method", "fail").Err(stopErr).Msg("backend stop failed")
		}
	}

	c.log.Warn().Str("Method", "fail").Str("URL", c.media.URL).Err(err).Msg("playback failed")

	prev := c.state
	c.mu.Lock()
	c.state = StateFailed
	c.media.Err = err
	c.mu.Unlock()

	c.notifyState(prev)
	if d := c.currentDelegate(); d != nil {
		d.DidHandleInitializationError(c, err)
	}
	ev := ErrorEvent{URL: c.media.URL, Err: err}
	c.eachSub(func(s *Subscription) { s.sendError(ev) })
}

// setState records next and returns the previous state.
func (c *Controller) setState(next State) State {
	prev := c.state
	if prev != next {
		c.mu.Lock()
		c.state = next
		c.mu.Unlock()
	}
	return prev
}

// notifyState reports a change from prev to the current state, if any.
func (c *Controller) notifyState(prev State) {
	if prev == c.state {
		return
	}
	if d := c.currentDelegate(); d != nil {
		d.DidChangePlaybackState(c)
	}
	ev := StateChange{Previous: prev, Current: c.state}
	c.eachSub(func(s *Subscription) { s.sendState(ev) })
}

func (c *Controller) notifyBuffering(prev BufferingState) {
	if prev == c.buffering {
		return
	}
	if d := c.currentDelegate(); d != nil {
		d.DidChangeBufferingState(c)
	}
	ev := BufferingChange{Previous: prev, Current: c.buffering}
	c.eachSub(func(s *Subscription) { s.sendBuffering(ev) })
}

func (c *Controller) resetProgress() {
	c.progressSeen = false
	c.lastProgress = 0
}

// stale reports whether an event belongs to a superseded load.
func (c *Controller) stale(gen uint64, event string) bool {
	if gen == c.gen {
		return false
	}
	c.log.Debug().Str("Method", event).Uint64("Generation", gen).Uint64("Current", c.gen).Msg("discarding superseded callback")
	return true
}

func (c *Controller) onPrepared(gen uint64, duration time.Duration, known bool) {
	if c.stale(gen, "Prepared") || c.ready || c.state == StateFailed {
		return
	}
	c.ready = true

	if known {
		c.mu.Lock()
		c.media.Duration = duration
		c.media.DurationKnown = true
		c.mu.Unlock()
	} else {
		duration = 0
	}

	if d := c.currentDelegate(); d != nil {
		d.DidFetchItemDuration(c, duration)
	}
	c.eachSub(func(s *Subscription) { s.sendDuration(duration) })

	if c.pending != nil {
		intent := *c.pending
		c.pending = nil
		c.startPlayback(intent)
	}
}

func (c *Controller) onPrepareFailed(gen uint64, err error) {
	if c.stale(gen, "PrepareFailed") || c.state == StateFailed {
		return
	}
	c.fail(&InitializationError{Op: opLoad, URL: c.media.URL, Err: err})
}

func (c *Controller) onBufferingChanged(gen uint64, b player.Buffering) {
	if c.stale(gen, "BufferingChanged") {
		return
	}
	next := bufferingFromPlayer(b)
	prev := c.buffering
	if prev == next {
		return
	}
	c.mu.Lock()
	c.buffering = next
	c.mu.Unlock()
	c.notifyBuffering(prev)
}

func (c *Controller) onProgress(gen uint64, position, duration time.Duration) {
	if c.stale(gen, "Progress") || c.state != StatePlaying {
		return
	}
	if c.progressSeen && position < c.lastProgress {
		return
	}
	c.progressSeen = true
	c.lastProgress = position

	if duration > 0 && !c.media.DurationKnown {
		c.mu.Lock()
		c.media.Duration = duration
		c.media.DurationKnown = true
		c.mu.Unlock()
	}

	if d := c.currentDelegate(); d != nil {
		d.DidUpdateProgress(position, duration)
	}
	ev := ProgressEvent{Position: position, Duration: duration}
	c.eachSub(func(s *Subscription) { s.sendProgress(ev) })
}

func (c *Controller) onFinished(gen uint64) {
	if c.stale(gen, "Finished") || !c.state.IsActive() {
		return
	}
	c.resetProgress()
	c.notifyState(c.setState(StateStopped))

	// Listeners see the event before the delegate, which may end the process.
	ev := FinishedEvent{ControllerID: c.id, URL: c.media.URL, Title: c.MediaTitle()}
	c.eachSub(func(s *Subscription) { s.sendFinished(ev) })
	c.broadcast.Publish(ev)

	if d := c.currentDelegate(); d != nil {
		d.DidFinishPlaying(c)
	}
}

func (c *Controller) onFailed(gen uint64, err error) {
	if c.stale(gen, "Failed") || c.state == StateFailed {
		return
	}
	c.fail(&PlaybackError{Op: opPlayback, URL: c.media.URL, Err: err})
}
