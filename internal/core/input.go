package core

// Action is a semantic game command, abstracted from physical key presses.
type Action int

const (
	ActionNone     Action = iota
	ActionLeft            // shift the piece one column left
	ActionRight           // shift the piece one column right
	ActionRotate          // turn the piece
	ActionDrop            // fast forward while held
	ActionMulligan        // regenerate the preview
	ActionPause           // pause or resume
	ActionRestart         // new game after game over
	ActionQuit            // leave the game
)

// Actions lists every bindable action in display order.
func Actions() []Action {
	return []Action{
		ActionLeft,
		ActionRight,
		ActionRotate,
		ActionDrop,
		ActionMulligan,
		ActionPause,
		ActionRestart,
		ActionQuit,
	}
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRotate:
		return "Rotate"
	case ActionDrop:
		return "Drop"
	case ActionMulligan:
		return "Mulligan"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Key returns the identifier used for the action in controls files.
func (a Action) Key() string {
	switch a {
	case ActionLeft:
		return "move_left"
	case ActionRight:
		return "move_right"
	case ActionRotate:
		return "rotate"
	case ActionDrop:
		return "drop"
	case ActionMulligan:
		return "mulligan"
	case ActionPause:
		return "pause"
	case ActionRestart:
		return "restart"
	case ActionQuit:
		return "quit"
	default:
		return ""
	}
}

// ParseAction converts a controls file identifier to an Action.
func ParseAction(key string) (Action, bool) {
	for _, a := range Actions() {
		if a.Key() == key {
			return a, true
		}
	}
	return ActionNone, false
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone returns a frame with its own copy of the actions, safe to keep
// after the platform clears the original.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for a, on := range f.Actions {
		clone.Actions[a] = on
	}
	return clone
}
