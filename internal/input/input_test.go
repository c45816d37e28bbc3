package input

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/survivalist/internal/config"
	"github.com/vovakirdan/survivalist/internal/core"
)

// scriptedReader returns queued keys, then blocks until ctx is cancelled.
type scriptedReader struct {
	keys chan rune
}

func newScriptedReader(keys ...rune) *scriptedReader {
	r := &scriptedReader{keys: make(chan rune, len(keys)+8)}
	for _, k := range keys {
		r.keys <- k
	}
	return r
}

func (r *scriptedReader) ReadKey(ctx context.Context) (rune, error) {
	select {
	case k := <-r.keys:
		return k, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

type failingReader struct{}

func (failingReader) ReadKey(context.Context) (rune, error) {
	return 0, errors.New("tty gone")
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSignalsConsume(t *testing.T) {
	s := NewSignals()
	s.Set(core.ActionUp)
	s.Set(core.ActionRestart)

	if !s.pending(core.ActionUp) {
		t.Error("Pending(Up) = false, expected true")
	}

	frame := s.Consume()
	if !frame.Has(core.ActionUp) || !frame.Has(core.ActionRestart) {
		t.Errorf("Consume() = %v, expected Up and Restart", frame.Actions)
	}
	if frame.Has(core.ActionDown) {
		t.Error("Consume() reported Down, which was never set")
	}

	if again := s.Consume(); !again.Empty() {
		t.Errorf("second Consume() = %v, expected empty", again.Actions)
	}
}

func TestSignalsClear(t *testing.T) {
	s := NewSignals()
	for _, a := range core.Actions {
		s.Set(a)
	}
	s.Clear()
	for _, a := range core.Actions {
		if s.pending(a) {
			t.Errorf("Pending(%v) = true after Clear", a)
		}
	}
}

func TestSignalsIgnoreInvalid(t *testing.T) {
	s := NewSignals()
	s.Set(core.ActionNone)
	s.Set(core.Action(99))
	if !s.Consume().Empty() {
		t.Error("invalid actions should not be recorded")
	}
}

func TestKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  rune
		want core.Action
		ok   bool
	}{
		{'w', core.ActionUp, true},
		{'s', core.ActionDown, true},
		{'a', core.ActionLeft, true},
		{'d', core.ActionRight, true},
		{'r', core.ActionRestart, true},
		{'p', core.ActionExit, true},
		{' ', core.ActionPause, true},
		{KeyCtrlC, core.ActionExit, true},
		{'W', core.ActionNone, false},
		{'x', core.ActionNone, false},
	}
	for _, tt := range tests {
		got, ok := km.Lookup(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%q) = %v, %v, expected %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKeyMapCustomBindings(t *testing.T) {
	keys := config.DefaultConfig().Keys
	keys.Up = "k"
	keys.Exit = "q"
	km := NewKeyMap(keys)

	if a, _ := km.Lookup('k'); a != core.ActionUp {
		t.Errorf("Lookup('k') = %v, expected Up", a)
	}
	if _, ok := km.Lookup('w'); ok {
		t.Error("'w' should no longer be bound")
	}
	if a, _ := km.LookupString("q"); a != core.ActionExit {
		t.Errorf("LookupString(q) = %v, expected Exit", a)
	}
	if a, _ := km.LookupString("ctrl+c"); a != core.ActionExit {
		t.Errorf("LookupString(ctrl+c) = %v, expected Exit", a)
	}
	if a, _ := km.LookupString("space"); a != core.ActionPause {
		t.Errorf("LookupString(space) = %v, expected Pause", a)
	}
	if _, ok := km.LookupString("enter"); ok {
		t.Error("LookupString(enter) should not be bound")
	}
}

func TestBridgeSetsAndClears(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := NewSignals()
	b := NewBridge(newScriptedReader('w'), DefaultKeyMap(), signals, 20*time.Millisecond, nil)
	b.Start(ctx)

	waitFor(t, "up signal", func() bool { return signals.pending(core.ActionUp) })
	waitFor(t, "unconditional clear", func() bool { return !signals.pending(core.ActionUp) })

	cancel()
	select {
	case <-b.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop after cancel")
	}
}

func TestBridgeLostPressAfterClear(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := NewSignals()
	b := NewBridge(newScriptedReader('w'), DefaultKeyMap(), signals, 10*time.Millisecond, nil)
	b.Start(ctx)

	waitFor(t, "up signal", func() bool { return signals.pending(core.ActionUp) })
	waitFor(t, "clear", func() bool { return !signals.pending(core.ActionUp) })

	// A tick reading after the clear sees nothing; the press is lost
	frame := signals.Consume()
	if frame.Has(core.ActionUp) {
		t.Error("Consume() saw Up after the bridge cleared it")
	}
}

func TestBridgeIgnoresUnboundKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := NewSignals()
	b := NewBridge(newScriptedReader('x', 'z', 'd'), DefaultKeyMap(), signals, time.Second, nil)
	b.Start(ctx)

	waitFor(t, "right signal", func() bool { return signals.pending(core.ActionRight) })
	frame := signals.Consume()
	if !frame.Has(core.ActionRight) {
		t.Errorf("Consume() = %v, expected Right", frame.Actions)
	}
	for _, a := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft} {
		if frame.Has(a) {
			t.Errorf("Consume() reported %v from an unbound key", a)
		}
	}
}

func TestBridgeStopsOnReadError(t *testing.T) {
	b := NewBridge(failingReader{}, DefaultKeyMap(), NewSignals(), time.Millisecond, nil)
	b.Start(context.Background())

	select {
	case <-b.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not exit on read error")
	}
	if b.running.Load() {
		t.Error("running = true after the loop exited")
	}
}

func TestBridgeCooperativeStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := newScriptedReader()
	b := NewBridge(reader, DefaultKeyMap(), NewSignals(), time.Millisecond, nil)
	b.Start(ctx)
	b.Stop()

	// The loop only notices Stop after its blocking read returns
	reader.keys <- 'x'
	select {
	case <-b.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not exit after Stop")
	}
}
