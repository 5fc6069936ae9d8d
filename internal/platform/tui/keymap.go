package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-dario/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// gameKeys are the in-game bindings.
var gameKeys = map[string]core.Action{
	"left":  core.ActionLeft,
	"a":     core.ActionLeft,
	"right": core.ActionRight,
	"d":     core.ActionRight,
	"down":  core.ActionDown,
	"s":     core.ActionDown,
	"up":    core.ActionDrop,
	"w":     core.ActionDrop,
	" ":     core.ActionDrop,
	"space": core.ActionDrop,
	"x":     core.ActionRotateCW,
	"k":     core.ActionRotateCW,
	"z":     core.ActionRotateCCW,
	"j":     core.ActionRotateCCW,
	"p":     core.ActionPause,
	"esc":   core.ActionPause,
	"r":     core.ActionRestart,
	"b":     core.ActionBack,
	"enter": core.ActionConfirm,
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}
	if a, ok := gameKeys[msg.String()]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame sets the mapped action on frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a menu or scoreboard action derived from a key.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
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
	case "enter", " ", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
