package notify

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediacontroller/internal/playback"
)

func TestUrgencyValues(t *testing.T) {
	// Verify urgency constants match D-Bus spec
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestNotificationZeroValue(t *testing.T) {
	var n Notification
	if n.Urgency != UrgencyLow {
		t.Errorf("zero value Urgency = %d, want UrgencyLow (0)", n.Urgency)
	}
	if n.Timeout != 0 {
		t.Error("zero value Timeout should be 0 (never expire)")
	}
	if n.ReplacesID != 0 {
		t.Error("zero value ReplacesID should be 0 (new notification)")
	}
}

type fakeNotifier struct {
	mu     sync.Mutex
	sent   []Notification
	err    error
	nextID uint32
}

func (f *fakeNotifier) Notify(n Notification) (uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	return f.nextID, nil
}


func (f *fakeNotifier) notifications() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Notification(nil), f.sent...)
}

func runWatch(t *testing.T, n Notifier, events ...playback.FinishedEvent) {
	t.Helper()
	hub := playback.NewBroadcaster()
	sub := hub.Subscribe()

	done := make(chan struct{})
	go func() {
		Watch(context.Background(), n, sub, zerolog.Nop())
		close(done)
	}()

	for _, e := range events {
		hub.Publish(e)
	}
	// wait until Watch drained the buffer before closing
	for len(sub.Events) > 0 {
		runtime.Gosched()
	}
	sub.Close()
	<-done
}

func TestFinishedNotification(t *testing.T) {
	tests := []struct {
		name  string
		event playback.FinishedEvent
		body  string
	}{
		{"title", playback.FinishedEvent{URL: "/a.mp3", Title: "Artist - Song"}, "Artist - Song"},
		{"url fallback", playback.FinishedEvent{URL: "/a.mp3"}, "/a.mp3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := FinishedNotification(tt.event)
			if n.Title != "Finished playing" {
				t.Errorf("Title = %q, want Finished playing", n.Title)
			}
			if n.Body != tt.body {
				t.Errorf("Body = %q, want %q", n.Body, tt.body)
			}
			if n.ReplacesID != 0 {
				t.Errorf("ReplacesID = %d, want 0", n.ReplacesID)
			}
		})
	}
}

func TestWatch_ReplacesPrevious(t *testing.T) {
	n := &fakeNotifier{}
	runWatch(t, n,
		playback.FinishedEvent{URL: "/1.mp3", Title: "One"},
		playback.FinishedEvent{URL: "/2.mp3", Title: "Two"},
	)

	sent := n.notifications()
	if len(sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(sent))
	}
	if sent[0].Body != "One" || sent[0].ReplacesID != 0 {
		t.Errorf("first = %+v, want body One replacing nothing", sent[0])
	}
	if sent[1].Body != "Two" || sent[1].ReplacesID != 1 {
		t.Errorf("second = %+v, want body Two replacing id 1", sent[1])
	}
}

func TestWatch_ErrorsDoNotStop(t *testing.T) {
	n := &fakeNotifier{err: errors.New("bus gone")}
	runWatch(t, n,
		playback.FinishedEvent{URL: "/1.mp3"},
		playback.FinishedEvent{URL: "/2.mp3"},
	)

	sent := n.notifications()
	if len(sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(sent))
	}
	if sent[1].ReplacesID != 0 {
		t.Errorf("ReplacesID = %d, want 0 after failed sends", sent[1].ReplacesID)
	}
}

func TestWatch_StopsOnContext(t *testing.T) {
	hub := playback.NewBroadcaster()
	sub := hub.Subscribe()
	defer sub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Watch(ctx, &fakeNotifier{}, sub, zerolog.Nop())
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
