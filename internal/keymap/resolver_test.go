//nolint:goconst // test cases intentionally repeat strings for readability
package keymap

import (
	"slices"
	"testing"
)

var testBindings = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", ContextGlobal},
	{ActionPlayPause, []string{" "}, "Play/pause", ContextPlayback},
	{ActionSeekBack, []string{"left", "h"}, "Seek back", ContextPlayback},
	{ActionStop, []string{"s"}, "Stop", ContextPlayback},
	{ActionMute, []string{"m"}, "Mute", ContextOutput},
}

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(testBindings)

	tests := []struct {
		key      string
		expected Action
	}{
		{"q", ActionQuit},
		{"ctrl+c", ActionQuit},
		{" ", ActionPlayPause},
		{"left", ActionSeekBack},
		{"h", ActionSeekBack},
		{"s", ActionStop},
		{"m", ActionMute},
		{"unknown", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if result := r.Resolve(tt.key); result != tt.expected {
				t.Errorf("Resolve(%q) = %q, want %q", tt.key, result, tt.expected)
			}
		})
	}
}

func TestResolver_Contexts(t *testing.T) {
	r := NewResolver(testBindings, ContextGlobal, ContextPlayback)

	if action := r.Resolve("m"); action != "" {
		t.Errorf("Resolve(m) = %q, want disabled output binding", action)
	}
	if action := r.Resolve(" "); action != ActionPlayPause {
		t.Errorf("Resolve(space) = %q, want %q", action, ActionPlayPause)
	}
	if keys := r.KeysFor(ActionMute); keys != nil {
		t.Errorf("KeysFor(ActionMute) = %v, want nil", keys)
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver(testBindings)

	tests := []struct {
		action   Action
		expected []string
	}{
		{ActionQuit, []string{"q", "ctrl+c"}},
		{ActionPlayPause, []string{" "}},
		{ActionSeekBack, []string{"left", "h"}},
		{ActionRewind, nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			if got := r.KeysFor(tt.action); !slices.Equal(got, tt.expected) {
				t.Errorf("KeysFor(%q) = %v, want %v", tt.action, got, tt.expected)
			}
		})
	}
}

func TestResolver_FirstBindingWins(t *testing.T) {
	r := NewResolver([]Binding{
		{ActionStop, []string{"s", "x"}, "Stop", ContextPlayback},
		{ActionStop, []string{"s"}, "Stop again", ContextPlayback},
		{ActionMute, []string{"x"}, "Mute", ContextOutput},
	})

	if action := r.Resolve("x"); action != ActionStop {
		t.Errorf("Resolve(x) = %q, want %q", action, ActionStop)
	}
	if keys := r.KeysFor(ActionStop); !slices.Equal(keys, []string{"s", "x"}) {
		t.Errorf("KeysFor(ActionStop) = %v, want [s x]", keys)
	}
	if keys := r.KeysFor(ActionMute); keys != nil {
		t.Errorf("KeysFor(ActionMute) = %v, want nil for a shadowed key", keys)
	}
}

func TestResolver_Help(t *testing.T) {
	r := NewResolver(Bindings, ContextGlobal, ContextPlayback)
	help := r.Help()

	if len(help) != 8 {
		t.Fatalf("len(Help()) = %d, want 8", len(help))
	}
	if got := help[0].Help().Key; got != "space" {
		t.Errorf("first help key = %q, want space", got)
	}
	last := help[len(help)-1].Help()
	if last.Desc != "Toggle help" {
		t.Errorf("last help entry = %q, want the global Toggle help", last.Desc)
	}
	for _, b := range help {
		if b.Help().Desc == "Mute" {
			t.Error("output bindings should be left out")
		}
	}
}

func TestResolver_EmptyBindings(t *testing.T) {
	r := NewResolver(nil)

	if action := r.Resolve("q"); action != "" {
		t.Errorf("Resolve on empty resolver should return empty, got %q", action)
	}
	if keys := r.KeysFor(ActionQuit); keys != nil {
		t.Errorf("KeysFor on empty resolver should return nil, got %v", keys)
	}
	if help := r.Help(); len(help) != 0 {
		t.Errorf("Help() = %d entries, want 0", len(help))
	}
}
