package input

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultKeys maps actions to key names.
var DefaultKeys = map[string]string{
	string(ActionSnapshot):   "s",
	string(ActionPause):      "space",
	string(ActionFullscreen): "f",
	string(ActionQuit):       "escape",
}

// Bindings resolves host key names to actions.
// Key names are compared case-insensitively, so "Escape" from SDL
// and "escape" from the config are the same key.
type Bindings struct {
	keys map[string]Action
}

// NewBindings builds bindings from an action -> key name map.
// Actions missing from conf keep their default key.
func NewBindings(conf map[string]string) (*Bindings, error) {
	merged := make(map[string]string, len(DefaultKeys))
	for a, k := range DefaultKeys {
		merged[a] = k
	}
	for a, k := range conf {
		a = strings.ToLower(strings.TrimSpace(a))
		if !Action(a).Valid() {
			return nil, fmt.Errorf("input: unknown action %q", a)
		}
		merged[a] = k
	}

	// sorted so that duplicate errors are stable
	names := make([]string, 0, len(merged))
	for a := range merged {
		names = append(names, a)
	}
	sort.Strings(names)

	b := &Bindings{keys: make(map[string]Action, len(merged))}
	for _, a := range names {
		key := normalize(merged[a])
		if key == "" {
			continue
		}
		if prev, ok := b.keys[key]; ok {
			return nil, fmt.Errorf("input: key %q bound to both %s and %s", key, prev, a)
		}
		b.keys[key] = Action(a)
	}
	return b, nil
}

// Lookup returns the action bound to the key, or ActionNone.
func (b *Bindings) Lookup(key string) Action {
	if b == nil {
		return ActionNone
	}
	return b.keys[normalize(key)]
}

// Keys returns the bound key names.
func (b *Bindings) Keys() []string {
	out := make([]string, 0, len(b.keys))
	for k := range b.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// normalize maps a key name to its canonical lower-case form. A bare
// space is the space key, it must be matched before trimming.
func normalize(key string) string {
	if key != "" && strings.TrimSpace(key) == "" && strings.Contains(key, " ") {
		return "space"
	}
	key = strings.ToLower(strings.TrimSpace(key))
	switch key {
	case "esc":
		return "escape"
	case "return":
		return "enter"
	}
	return key
}
