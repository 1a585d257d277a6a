package input

// Action is a viewer command triggered by a key.
type Action string

const (
	ActionNone       Action = ""
	ActionSnapshot   Action = "snapshot"
	ActionPause      Action = "pause"
	ActionFullscreen Action = "fullscreen"
	ActionQuit       Action = "quit"
)

var actions = []Action{ActionSnapshot, ActionPause, ActionFullscreen, ActionQuit}

// Actions lists every bindable action.
func Actions() []Action { return append([]Action(nil), actions...) }

func (a Action) Valid() bool {
	for _, x := range actions {
		if a == x {
			return true
		}
	}
	return false
}

// Event is a key press resolved to an action.
type Event struct {
	Action Action `json:"action"`
	Key    string `json:"key"`
}

// Handler receives events from a display host.
type Handler func(Event)

// Resolve turns a host key name into an Event. ok is false for unbound keys.
func (b *Bindings) Resolve(key string) (e Event, ok bool) {
	a := b.Lookup(key)
	if a == ActionNone {
		return Event{}, false
	}
	return Event{Action: a, Key: normalize(key)}, true
}
