// Package input connects raw key reads to the simulation. A Bridge goroutine
// writes recognised actions into a Signals set which the game loop drains
// once per tick.
package input

import (
	"sync/atomic"

	"github.com/vovakirdan/survivalist/internal/core"
)

// Signals is a set of one-shot action flags shared between one writer (the
// Bridge) and one reader (the tick loop). Each flag is an independent atomic
// boolean; there is no lock across the set, so a press can be lost if the
// writer clears it before the reader looks.
type Signals struct {
	flags [core.ActionPause + 1]atomic.Bool
}

// NewSignals returns an empty signal set.
func NewSignals() *Signals {
	return &Signals{}
}

// Set raises the flag for a.
func (s *Signals) Set(a core.Action) {
	if valid(a) {
		s.flags[a].Store(true)
	}
}

// Clear lowers every flag.
func (s *Signals) Clear() {
	for i := range s.flags {
		s.flags[i].Store(false)
	}
}

// Consume lowers every flag and returns the ones that were raised.
func (s *Signals) Consume() core.InputFrame {
	frame := core.NewInputFrame()
	for _, a := range core.Actions {
		if s.flags[a].Swap(false) {
			frame.Set(a)
		}
	}
	return frame
}

// pending reports whether the flag for a is raised without consuming it.
func (s *Signals) pending(a core.Action) bool {
	return valid(a) && s.flags[a].Load()
}

func valid(a core.Action) bool {
	return a > core.ActionNone && a <= core.ActionPause
}
