package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wave-arena/internal/core"
)

// DefaultHoldWindow is how long a key press keeps a movement or fire action
// held. Terminals report presses and auto-repeats but never releases.
const DefaultHoldWindow = 120 * time.Millisecond

// held lists the actions that stay active between key repeats. Every other
// action fires once on the next tick.
var held = map[core.Action]bool{
	core.ActionUp:    true,
	core.ActionDown:  true,
	core.ActionLeft:  true,
	core.ActionRight: true,
	core.ActionFire:  true,
}

// KeyMapper translates Bubble Tea key and mouse messages into input frames.
type KeyMapper struct {
	hold      time.Duration
	lastSeen  map[core.Action]time.Time
	once      map[core.Action]bool
	mouseDown bool
	pointer   core.Pointer
}

// NewKeyMapper creates a key mapper. A non-positive hold uses
// DefaultHoldWindow.
func NewKeyMapper(hold time.Duration) *KeyMapper {
	if hold <= 0 {
		hold = DefaultHoldWindow
	}
	return &KeyMapper{
		hold:     hold,
		lastSeen: make(map[core.Action]time.Time),
		once:     make(map[core.Action]bool),
	}
}

// MapKey translates a key message to an action and whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ", "f":
		return core.ActionFire, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "f3", "`":
		return core.ActionDebug, false
	}
	return core.ActionNone, false
}

// Press records a key press at now. It returns true for a quit request.
func (km *KeyMapper) Press(msg tea.KeyMsg, now time.Time) bool {
	action, isQuit := km.MapKey(msg)
	switch {
	case isQuit:
		return true
	case action == core.ActionNone:
	case held[action]:
		km.lastSeen[action] = now
	default:
		km.once[action] = true
	}
	return false
}

// Mouse records pointer motion and the left button state.
func (km *KeyMapper) Mouse(msg tea.MouseMsg) {
	km.pointer = core.Pointer{X: msg.X, Y: msg.Y, Valid: true}
	if msg.Button != tea.MouseButtonLeft {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		km.mouseDown = true
	case tea.MouseActionRelease:
		km.mouseDown = false
	}
}

// Fill writes the actions active at now into frame and consumes one-shot
// actions.
func (km *KeyMapper) Fill(frame *core.InputFrame, now time.Time) {
	frame.Clear()
	for a, t := range km.lastSeen {
		if now.Sub(t) <= km.hold {
			frame.Set(a)
		} else {
			delete(km.lastSeen, a)
		}
	}
	for a := range km.once {
		frame.Set(a)
	}
	clear(km.once)
	if km.mouseDown {
		frame.Set(core.ActionFire)
	}
	if km.pointer.Valid {
		frame.SetPointer(km.pointer.X, km.pointer.Y)
	}
}

// Release drops every held action, e.g. when the window loses focus.
func (km *KeyMapper) Release() {
	clear(km.lastSeen)
	clear(km.once)
	km.mouseDown = false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}
