package core

// Action is a semantic input, decoupled from the physical key that caused it.
type Action uint8

const (
	ActionNone     Action = iota
	ActionUp              // slide tiles up
	ActionDown            // slide tiles down
	ActionLeft            // slide tiles left
	ActionRight           // slide tiles right
	ActionConfirm         // confirm a menu entry
	ActionBack            // leave the game for the menu
	ActionRestart         // start a new board
	ActionContinue        // keep playing after a win
	ActionQuit            // exit the program or session
	ActionPause           // toggle pause

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Confirm",
	"Back", "Restart", "Continue", "Quit", "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// IsMove reports whether a is one of the four slide directions.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionRight
}

// InputFrame is the set of actions collected between two ticks.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint16
}

// NewInputFrame returns an empty frame, optionally pre-filled with actions.
func NewInputFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// Set marks an action as triggered for this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone || a >= actionCount {
		return
	}
	f.bits |= 1 << a
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionUp; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}
