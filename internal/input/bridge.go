package input

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// ErrClosed is returned by a KeyReader whose terminal has been closed.
var ErrClosed = errors.New("input: key reader closed")

// KeyReader delivers raw key presses. ReadKey blocks until a key arrives or
// ctx is cancelled.
type KeyReader interface {
	ReadKey(ctx context.Context) (rune, error)
}

// Bridge samples a KeyReader in the background and raises the matching
// signals. After every recognised key it waits one sampling interval and
// then clears the whole set, whether or not the tick loop has read it.
type Bridge struct {
	reader   KeyReader
	keys     *KeyMap
	signals  *Signals
	interval time.Duration
	logger   *log.Logger

	running atomic.Bool
	done    chan struct{}
}

// NewBridge creates a bridge writing into signals. interval is normally the
// tick duration.
func NewBridge(reader KeyReader, keys *KeyMap, signals *Signals, interval time.Duration, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bridge{
		reader:   reader,
		keys:     keys,
		signals:  signals,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start launches the sampling goroutine. It must be called at most once.
func (b *Bridge) Start(ctx context.Context) {
	b.running.Store(true)
	go b.loop(ctx)
}

// Stop asks the goroutine to exit. It returns immediately; the loop notices
// on its next iteration, or as soon as ctx is cancelled. Wait on Done for
// the goroutine to finish.
func (b *Bridge) Stop() {
	b.running.Store(false)
}

// Done is closed once the sampling goroutine has returned.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

func (b *Bridge) loop(ctx context.Context) {
	defer close(b.done)
	defer b.running.Store(false)

	for b.running.Load() {
		r, err := b.reader.ReadKey(ctx)
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, io.EOF) && !errors.Is(err, ErrClosed) {
				b.logger.Error("key read failed", "error", err)
			}
			return
		}

		action, ok := b.keys.Lookup(r)
		if !ok {
			continue
		}
		b.signals.Set(action)
		b.logger.Debug("key", "rune", r, "action", action)

		select {
		case <-ctx.Done():
			return
		case <-time.After(b.interval):
		}
		b.signals.Clear()
	}
}
