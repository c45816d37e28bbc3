// Package term abstracts the player's terminal: raw key capture, size
// queries and drawing a core.Screen. Two backends exist, a plain ANSI one
// over golang.org/x/term and one over tcell.
package term

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/survivalist/internal/core"
	"github.com/vovakirdan/survivalist/internal/input"
)

// Backend names a terminal implementation.
type Backend string

const (
	BackendANSI  Backend = "ansi"
	BackendTcell Backend = "tcell"
)

// Terminal is the capability the game loop needs from the player's
// terminal. ReadKey is called from the input bridge goroutine; every other
// method belongs to the game loop.
type Terminal interface {
	input.KeyReader

	// Open switches the terminal into raw, cursor-hidden mode.
	Open() error
	// Close restores the terminal. It is safe to call more than once.
	Close() error
	// Size returns the terminal dimensions in columns and lines.
	Size() (int, int, error)
	// Clear blanks the terminal.
	Clear() error
	// Draw paints the screen buffer from the top-left corner.
	Draw(s *core.Screen) error
}

// ParseBackend converts a flag value to a backend. Empty selects the
// platform default.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(s); b {
	case "":
		return DefaultBackend, nil
	case BackendANSI, BackendTcell:
		return b, nil
	default:
		return "", fmt.Errorf("term: unknown backend %q (want ansi or tcell)", s)
	}
}

// New returns an unopened terminal for the given backend.
func New(backend Backend, logger *log.Logger) (Terminal, error) {
	if backend == "" {
		backend = DefaultBackend
	}
	switch backend {
	case BackendANSI:
		return NewANSI(logger), nil
	case BackendTcell:
		return NewTcell(logger), nil
	default:
		return nil, fmt.Errorf("term: unknown backend %q", backend)
	}
}
