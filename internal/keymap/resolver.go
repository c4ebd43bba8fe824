package keymap

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
)

// Resolver maps key strings to the actions of its enabled contexts.
type Resolver struct {
	bindings []Binding
	actions  map[string]Action
}

// NewResolver creates a resolver over the bindings whose context is listed.
// With no contexts every binding is enabled. A key bound twice keeps its
// first action.
func NewResolver(bindings []Binding, contexts ...string) *Resolver {
	r := &Resolver{actions: make(map[string]Action)}
	for _, b := range bindings {
		if len(contexts) > 0 && !slices.Contains(contexts, b.Context) {
			continue
		}
		r.bindings = append(r.bindings, b)
		for _, k := range b.Keys {
			if _, taken := r.actions[k]; !taken {
				r.actions[k] = b.Action
			}
		}
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.actions[key]
}

// KeysFor returns the keys that resolve to action, in binding order.
func (r *Resolver) KeysFor(action Action) []string {
	var keys []string
	for _, b := range r.bindings {
		if b.Action != action {
			continue
		}
		for _, k := range b.Keys {
			if r.actions[k] == action && !slices.Contains(keys, k) {
				keys = append(keys, k)
			}
		}
	}
	return keys
}

// Help returns the enabled bindings for the help view, global ones last.
func (r *Resolver) Help() []key.Binding {
	ordered := slices.Clone(r.bindings)
	slices.SortStableFunc(ordered, func(a, b Binding) int {
		return globalRank(a) - globalRank(b)
	})
	return HelpKeys(ordered)
}

func globalRank(b Binding) int {
	if b.Context == ContextGlobal {
		return 1
	}
	return 0
}
