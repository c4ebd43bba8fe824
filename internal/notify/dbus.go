//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
)

const (
	notificationsName   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsNotify = notificationsName + ".Notify"

	appName = "mediactl"
)

// busNotifier talks to the notification server on the session bus.
type busNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without a session bus notifications are
// silently dropped.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return noopNotifier{}, nil //nolint:nilerr // no session bus, notifications are disabled
	}
	return &busNotifier{obj: conn.Object(notificationsName, notificationsPath)}, nil
}

// Notify calls Notify(app_name, replaces_id, app_icon, summary, body,
// actions, hints, expire_timeout) and returns the server's id.
func (b *busNotifier) Notify(n Notification) (uint32, error) {
	var id uint32
	err := b.obj.Call(notificationsNotify, 0,
		appName, n.ReplacesID, n.Icon, n.Title, n.Body,
		[]string{}, hints(n), n.Timeout,
	).Store(&id)
	return id, err
}

// hints maps n onto the standard hint keys. Notifications that expire on
// their own are marked transient so they stay out of the server history.
func hints(n Notification) map[string]dbus.Variant {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
	}
	if n.Timeout > 0 {
		h["transient"] = dbus.MakeVariant(true)
	}
	return h
}

type noopNotifier struct{}

func (noopNotifier) Notify(Notification) (uint32, error) { return 0, nil }
