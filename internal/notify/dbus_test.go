//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestHints(t *testing.T) {
	h := hints(Notification{Urgency: UrgencyCritical})
	if got := h["urgency"].Value(); got != byte(UrgencyCritical) {
		t.Errorf("urgency hint = %v, want %d", got, UrgencyCritical)
	}
	if got := h["desktop-entry"].Value(); got != appName {
		t.Errorf("desktop-entry hint = %v, want %s", got, appName)
	}
	if _, ok := h["transient"]; ok {
		t.Error("persistent notification should not be transient")
	}

	h = hints(Notification{Timeout: finishedTimeout})
	if got, ok := h["transient"]; !ok || got != dbus.MakeVariant(true) {
		t.Errorf("transient hint = %v, want true", got)
	}
}

func TestNotifyReplacesExisting(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	notifier, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	id1, err := notifier.Notify(Notification{
		Title:   "mediactl test",
		Body:    "Episode 1",
		Timeout: 1000,
	})
	if err != nil {
		t.Fatalf("first Notify() error: %v", err)
	}
	if id1 == 0 {
		t.Fatal("Notify() returned id=0, expected non-zero")
	}

	id2, err := notifier.Notify(Notification{
		Title:      "mediactl test",
		Body:       "Episode 2",
		Timeout:    1000,
		ReplacesID: id1,
	})
	if err != nil {
		t.Fatalf("second Notify() error: %v", err)
	}
	if id2 != id1 {
		t.Errorf("replacing notification got id=%d, want id=%d", id2, id1)
	}
}
