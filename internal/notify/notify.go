// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/llehouerou/mediacontroller/internal/playback"
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications. Notify returns the notification id,
// or 0 with a nil error when notifications are unavailable.
type Notifier interface {
	Notify(n Notification) (uint32, error)
}

// finishedTimeout is how long end-of-media notifications stay visible.
const finishedTimeout = 5000

// FinishedNotification builds the notification shown when e's media ends.
func FinishedNotification(e playback.FinishedEvent) Notification {
	title := e.Title
	if title == "" {
		title = e.URL
	}
	return Notification{
		Title:   "Finished playing",
		Body:    title,
		Icon:    "media-playback-stop",
		Timeout: finishedTimeout,
		Urgency: UrgencyLow,
	}
}

// Watch sends a notification for every event on sub until ctx is done or
// the subscription is closed. Events queued before the subscription was
// closed are still sent. Each notification replaces the previous one.
func Watch(ctx context.Context, n Notifier, sub *playback.FinishedSubscription, log zerolog.Logger) {
	var lastID uint32
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-sub.Events:
			if !ok {
				return
			}
			notif := FinishedNotification(e)
			notif.ReplacesID = lastID
			id, err := n.Notify(notif)
			if err != nil {
				log.Warn().Str("Method", "Watch").Str("URL", e.URL).Err(err).Msg("desktop notification failed")
				continue
			}
			if id != 0 {
				lastID = id
			}
		}
	}
}
