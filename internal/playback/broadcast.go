package playback

import "sync"

// Broadcaster fans FinishedEvents out to every FinishedSubscription.
// Sends never block; a subscriber that falls behind loses events.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[*FinishedSubscription]struct{}
}

// NewBroadcaster creates an empty hub.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*FinishedSubscription]struct{})}
}

var defaultBroadcaster = NewBroadcaster()

// SubscribeFinished subscribes to end-of-media events of every controller
// created without WithBroadcaster.
func SubscribeFinished() *FinishedSubscription {
	return defaultBroadcaster.Subscribe()
}

// FinishedSubscription receives FinishedEvents until closed.
type FinishedSubscription struct {
	Events <-chan FinishedEvent

	ch   chan FinishedEvent
	hub  *Broadcaster
	once sync.Once
}

// Subscribe registers a new subscriber.
func (b *Broadcaster) Subscribe() *FinishedSubscription {
	s := &FinishedSubscription{
		ch:  make(chan FinishedEvent, eventBufferSize),
		hub: b,
	}
	s.Events = s.ch

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Publish delivers e to all current subscribers.
func (b *Broadcaster) Publish(e FinishedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs {
		select {
		case s.ch <- e:
		default:
		}
	}
}

// Close unregisters the subscription and closes Events. Idempotent.
func (s *FinishedSubscription) Close() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s)
		s.hub.mu.Unlock()
		close(s.ch)
	})
}
