package input

import (
	"github.com/vovakirdan/survivalist/internal/config"
	"github.com/vovakirdan/survivalist/internal/core"
)

// KeyCtrlC is the byte a raw-mode terminal delivers for Ctrl+C.
const KeyCtrlC rune = 3

// KeyMap translates runes read from the terminal into game actions.
type KeyMap struct {
	bindings map[rune]core.Action
}

// NewKeyMap builds a key map from configured bindings. Ctrl+C always exits.
func NewKeyMap(keys config.KeyConfig) *KeyMap {
	km := &KeyMap{bindings: make(map[rune]core.Action)}
	for i, b := range keys.Bindings() {
		for _, r := range b {
			km.bindings[r] = core.Actions[i]
			break
		}
	}
	km.bindings[KeyCtrlC] = core.ActionExit
	return km
}

// DefaultKeyMap returns the key map for the default bindings.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap(config.DefaultConfig().Keys)
}

// Lookup returns the action bound to r.
func (km *KeyMap) Lookup(r rune) (core.Action, bool) {
	a, ok := km.bindings[r]
	return a, ok
}

// LookupString maps a single-character key name, as reported by Bubble
// Tea, to an action. Named keys such as "ctrl+c" and "space" are
// translated first.
func (km *KeyMap) LookupString(key string) (core.Action, bool) {
	switch key {
	case "ctrl+c":
		return km.Lookup(KeyCtrlC)
	case "space":
		return km.Lookup(' ')
	}
	runes := []rune(key)
	if len(runes) != 1 {
		return core.ActionNone, false
	}
	return km.Lookup(runes[0])
}
