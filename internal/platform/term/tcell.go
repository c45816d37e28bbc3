package term

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/survivalist/internal/core"
	"github.com/vovakirdan/survivalist/internal/input"
)

// Tcell drives the terminal through a tcell.Screen.
type Tcell struct {
	screen tcell.Screen
	logger *log.Logger
	events chan tcell.Event

	closeOnce sync.Once
	done      chan struct{}
}

// NewTcell returns a tcell terminal. The screen is created on Open.
func NewTcell(logger *log.Logger) *Tcell {
	return newTcell(nil, logger)
}

// newTcell wraps an existing screen, such as a simulation screen.
func newTcell(screen tcell.Screen, logger *log.Logger) *Tcell {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Tcell{
		screen: screen,
		logger: logger,
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
	}
}

// Open initialises the screen and starts the event poller.
func (t *Tcell) Open() error {
	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("term: create tcell screen: %w", err)
		}
		t.screen = screen
	}
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("term: init tcell screen: %w", err)
	}
	t.screen.HideCursor()
	t.screen.Clear()

	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			select {
			case t.events <- ev:
			case <-t.done:
				return
			}
		}
	}()
	return nil
}

// Close finalises the screen, which restores the terminal.
func (t *Tcell) Close() error {
	t.closeOnce.Do(func() {
		close(t.done)
		if t.screen != nil {
			t.screen.Fini()
		}
	})
	return nil
}

// Size returns the screen size.
func (t *Tcell) Size() (int, int, error) {
	w, h := t.screen.Size()
	return w, h, nil
}

// Clear blanks the screen.
func (t *Tcell) Clear() error {
	t.screen.Clear()
	t.screen.Show()
	return nil
}

// Draw copies every cell into the tcell back buffer and shows it.
func (t *Tcell) Draw(s *core.Screen) error {
	for y := range s.Height() {
		for x := range s.Width() {
			cell := s.GetCell(x, y)
			t.screen.SetContent(x, y, cell.Rune, nil, tcellStyle(cell.Color))
		}
	}
	t.screen.Show()
	return nil
}

// ReadKey waits for the next rune key. Ctrl+C is reported as rune 3 and a
// resize triggers a full redraw on the next Show.
func (t *Tcell) ReadKey(ctx context.Context) (rune, error) {
	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-t.done:
			return 0, input.ErrClosed
		case ev, ok := <-t.events:
			if !ok {
				return 0, input.ErrClosed
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyRune:
					return ev.Rune(), nil
				case tcell.KeyCtrlC:
					return input.KeyCtrlC, nil
				}
			case *tcell.EventResize:
				w, h := ev.Size()
				t.logger.Debug("terminal resized", "width", w, "height", h)
				t.screen.Sync()
			}
		}
	}
}

func tcellStyle(c core.Color) tcell.Style {
	idx := c.ANSI()
	if idx < 0 {
		return tcell.StyleDefault
	}
	return tcell.StyleDefault.Foreground(tcell.PaletteColor(idx))
}
