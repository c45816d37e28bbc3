package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/survivalist/internal/core"
	"github.com/vovakirdan/survivalist/internal/input"
)

// KeyMapper translates Bubble Tea key messages to game actions using the
// configured bindings. Arrow keys steer as well.
type KeyMapper struct {
	keys *input.KeyMap
}

// NewKeyMapper creates a key mapper over the given bindings.
func NewKeyMapper(keys *input.KeyMap) *KeyMapper {
	if keys == nil {
		keys = input.DefaultKeyMap()
	}
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (core.Action, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return core.ActionUp, true
	case tea.KeyDown:
		return core.ActionDown, true
	case tea.KeyLeft:
		return core.ActionLeft, true
	case tea.KeyRight:
		return core.ActionRight, true
	}
	return km.keys.LookupString(msg.String())
}
