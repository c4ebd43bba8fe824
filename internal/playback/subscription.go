package playback

import "time"

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StateChanged     <-chan StateChange
	BufferingChanged <-chan BufferingChange
	Progress         <-chan ProgressEvent
	DurationFetched  <-chan time.Duration
	Error            <-chan ErrorEvent
	Finished         <-chan FinishedEvent
	Done             <-chan struct{}

	// Internal write channels
	stateCh     chan StateChange
	bufferingCh chan BufferingChange
	progressCh  chan ProgressEvent
	durationCh  chan time.Duration
	errorCh     chan ErrorEvent
	finishedCh  chan FinishedEvent
	doneCh      chan struct{}
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		stateCh:     make(chan StateChange, eventBufferSize),
		bufferingCh: make(chan BufferingChange, eventBufferSize),
		progressCh:  make(chan ProgressEvent, eventBufferSize),
		durationCh:  make(chan time.Duration, eventBufferSize),
		errorCh:     make(chan ErrorEvent, eventBufferSize),
		finishedCh:  make(chan FinishedEvent, eventBufferSize),
		doneCh:      make(chan struct{}),
	}
	s.StateChanged = s.stateCh
	s.BufferingChanged = s.bufferingCh
	s.Progress = s.progressCh
	s.DurationFetched = s.durationCh
	s.Error = s.errorCh
	s.Finished = s.finishedCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// sendState sends a state change event (non-blocking).
func (s *Subscription) sendState(e StateChange) {
	select {
	case s.stateCh <- e:
	default:
		// Drop if buffer full
	}
}

func (s *Subscription) sendBuffering(e BufferingChange) {
	select {
	case s.bufferingCh <- e:
	default:
	}
}

func (s *Subscription) sendProgress(e ProgressEvent) {
	select {
	case s.progressCh <- e:
	default:
	}
}

func (s *Subscription) sendDuration(d time.Duration) {
	select {
	case s.durationCh <- d:
	default:
	}
}

func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}

func (s *Subscription) sendFinished(e FinishedEvent) {
	select {
	case s.finishedCh <- e:
	default:
	}
}
