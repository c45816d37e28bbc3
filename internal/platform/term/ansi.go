package term

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/muesli/cancelreader"
	"golang.org/x/term"

	"github.com/vovakirdan/survivalist/internal/core"
	"github.com/vovakirdan/survivalist/internal/input"
)

// Escape sequences used by the ANSI backend.
const (
	seqHideCursor  = "\x1b[?25l"
	seqShowCursor  = "\x1b[?25h"
	seqClearScreen = "\x1b[2J"
	seqHome        = "\x1b[H"
	seqReset       = "\x1b[0m"
)

// ANSI drives a terminal with escape sequences, putting stdin into raw mode
// through golang.org/x/term.
type ANSI struct {
	in     io.Reader
	cr     cancelreader.CancelReader
	out    io.Writer
	fd     int
	logger *log.Logger

	oldState *term.State
	keys     chan keyRead
	done     chan struct{}
	loopDone chan struct{}

	startOnce sync.Once
	closeOnce sync.Once
}

// keyRead is one result of reading the input stream.
type keyRead struct {
	r   rune
	err error
}

// NewANSI returns an ANSI terminal on stdin and stdout.
func NewANSI(logger *log.Logger) *ANSI {
	return newANSI(os.Stdin, os.Stdout, int(os.Stdin.Fd()), logger)
}

// newANSI builds an ANSI terminal on arbitrary streams. Raw mode is only
// attempted when fd is a terminal. Input is wrapped in a cancel reader so
// Close can release a pending read; streams that cannot be polled are read
// directly.
func newANSI(in io.Reader, out io.Writer, fd int, logger *log.Logger) *ANSI {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &ANSI{
		in:       in,
		out:      out,
		fd:       fd,
		logger:   logger,
		keys:     make(chan keyRead, 16),
		done:     make(chan struct{}),
		loopDone: make(chan struct{}),
	}
	cr, err := cancelreader.NewReader(in)
	if err != nil {
		logger.Debug("input is not cancelable", "error", err)
		return t
	}
	t.cr = cr
	t.in = cr
	return t
}

// Open enters raw mode, hides the cursor and clears the screen.
func (t *ANSI) Open() error {
	if t.fd >= 0 && term.IsTerminal(t.fd) {
		state, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("term: enable raw mode: %w", err)
		}
		t.oldState = state
		t.logger.Debug("raw mode enabled", "fd", t.fd)
	}
	if _, err := io.WriteString(t.out, seqHideCursor+seqClearScreen+seqHome); err != nil {
		t.restore()
		return fmt.Errorf("term: write: %w", err)
	}
	return nil
}

// Close restores the terminal state and shows the cursor again.
func (t *ANSI) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		t.stopReader()
		_, err = io.WriteString(t.out, seqReset+seqShowCursor+"\r\n")
		if rerr := t.restore(); rerr != nil && err == nil {
			err = rerr
		}
	})
	return err
}

// stopReader cancels a pending read and waits for the reader goroutine, so
// the next owner of the input stream gets every byte written after Close.
func (t *ANSI) stopReader() {
	t.startOnce.Do(func() { close(t.loopDone) })
	if t.cr == nil {
		return
	}
	if t.cr.Cancel() {
		<-t.loopDone
		if err := t.cr.Close(); err != nil {
			t.logger.Debug("close input reader", "error", err)
		}
	}
}

func (t *ANSI) restore() error {
	if t.oldState == nil {
		return nil
	}
	state := t.oldState
	t.oldState = nil
	if err := term.Restore(t.fd, state); err != nil {
		return fmt.Errorf("term: restore: %w", err)
	}
	return nil
}

// Size returns the terminal size, falling back to 80x24 when stdin is not
// a terminal.
func (t *ANSI) Size() (int, int, error) {
	if t.fd < 0 || !term.IsTerminal(t.fd) {
		return 80, 24, nil
	}
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return 0, 0, fmt.Errorf("term: get size: %w", err)
	}
	return w, h, nil
}

// Clear blanks the terminal and homes the cursor.
func (t *ANSI) Clear() error {
	_, err := io.WriteString(t.out, seqClearScreen+seqHome)
	return err
}

// Draw repaints from the home position. Raw mode disables output newline
// translation, so rows end in CR LF.
func (t *ANSI) Draw(s *core.Screen) error {
	var sb strings.Builder
	sb.WriteString(seqHome)
	sb.WriteString(RenderScreen(s, "\r\n"))
	_, err := io.WriteString(t.out, sb.String())
	return err
}

// ReadKey returns the next rune typed. The first call starts a reader
// goroutine that owns the input stream for the terminal's lifetime.
func (t *ANSI) ReadKey(ctx context.Context) (rune, error) {
	t.startOnce.Do(func() { go t.readLoop() })

	select {
	case k := <-t.keys:
		return k.r, k.err
	case <-t.done:
		return 0, input.ErrClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// readLoop decodes runes from the input stream until it fails or Close
// cancels it.
func (t *ANSI) readLoop() {
	defer close(t.loopDone)
	br := bufio.NewReader(t.in)
	for {
		r, _, err := br.ReadRune()
		if errors.Is(err, cancelreader.ErrCanceled) {
			return
		}
		select {
		case t.keys <- keyRead{r: r, err: err}:
		case <-t.done:
			return
		}
		if err != nil {
			return
		}
	}
}
