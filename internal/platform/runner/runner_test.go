package runner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/survivalist/internal/config"
	"github.com/vovakirdan/survivalist/internal/core"
	"github.com/vovakirdan/survivalist/internal/games/survivalist"
	"github.com/vovakirdan/survivalist/internal/highscore"
	"github.com/vovakirdan/survivalist/internal/input"
	"github.com/vovakirdan/survivalist/internal/storage"
)

// fakeTerminal records frames and presses a key once a frame satisfies
// pressWhen. The key is pressed again on every later frame, the way a
// player keeps hitting a key until the game reacts.
type fakeTerminal struct {
	width, height int
	keys          chan rune

	mu        sync.Mutex
	pressWhen func(frame string) bool
	press     rune
	frames    int
	clears    int
	last      string
	opened    bool
	closed    bool
	done      chan struct{}
	closeOnce sync.Once
}

func newFakeTerminal(w, h int) *fakeTerminal {
	return &fakeTerminal{
		width:  w,
		height: h,
		keys:   make(chan rune, 64),
		done:   make(chan struct{}),
	}
}

func (f *fakeTerminal) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.opened = true
	return nil
}

func (f *fakeTerminal) Close() error {
	f.closeOnce.Do(func() {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		close(f.done)
	})
	return nil
}

func (f *fakeTerminal) Size() (int, int, error) { return f.width, f.height, nil }

func (f *fakeTerminal) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return nil
}

func (f *fakeTerminal) Draw(s *core.Screen) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames++
	f.last = s.String()
	if f.pressWhen != nil && f.pressWhen(f.last) {
		select {
		case f.keys <- f.press:
		default:
		}
	}
	return nil
}

func (f *fakeTerminal) ReadKey(ctx context.Context) (rune, error) {
	select {
	case r := <-f.keys:
		return r, nil
	case <-f.done:
		return 0, input.ErrClosed
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

type memoryRecorder struct {
	mu   sync.Mutex
	runs []storage.Run
}

func (m *memoryRecorder) SaveRun(run storage.Run) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, run)
	return int64(len(m.runs)), nil
}

func (m *memoryRecorder) has(reason string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, run := range m.runs {
		if run.EndReason == reason {
			return true
		}
	}
	return false
}

type failingRecorder struct{}

func (failingRecorder) SaveRun(storage.Run) (int64, error) {
	return 0, errors.New("disk full")
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.TickRate = 200
	cfg.GameOverDelay = 0
	return cfg
}

func openHighScore(t *testing.T) *highscore.File {
	t.Helper()
	hs, err := highscore.Open(filepath.Join(t.TempDir(), "data.game"))
	if err != nil {
		t.Fatalf("highscore.Open() error = %v", err)
	}
	return hs
}

// scored matches a frame whose banner shows a non-zero score.
func scored(frame string) bool {
	return strings.Contains(frame, "| Score: ") && !strings.Contains(frame, "| Score: 0 |")
}

func runWithTimeout(t *testing.T, r *Runner) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := r.Run(ctx)
	if ctx.Err() != nil {
		t.Fatal("Run() did not return before the timeout")
	}
	return err
}

func TestNewValidatesOptions(t *testing.T) {
	if _, err := New(Options{Config: testConfig(), HighScore: openHighScore(t)}); err == nil {
		t.Error("New() without a terminal should fail")
	}
	if _, err := New(Options{Config: testConfig(), Terminal: newFakeTerminal(80, 24)}); err == nil {
		t.Error("New() without a high score file should fail")
	}
	bad := testConfig()
	bad.TickRate = 0
	if _, err := New(Options{Config: bad, Terminal: newFakeTerminal(80, 24), HighScore: openHighScore(t)}); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() with bad config = %v, expected ErrInvalid", err)
	}
}

func TestRunExitPersistsScore(t *testing.T) {
	term := newFakeTerminal(80, 20)
	term.pressWhen = scored
	term.press = 'p'

	hs := openHighScore(t)
	rec := &memoryRecorder{}
	r, err := New(Options{
		Config:    testConfig(),
		Seed:      7,
		Terminal:  term,
		HighScore: hs,
		Recorder:  rec,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := runWithTimeout(t, r); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !term.opened || !term.closed {
		t.Errorf("terminal opened=%v closed=%v, expected both", term.opened, term.closed)
	}
	if hs.Best() <= 0 {
		t.Errorf("Best() = %d, expected the exit score to be saved", hs.Best())
	}

	data, err := os.ReadFile(hs.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.TrimSpace(string(data)) == "0" {
		t.Error("high score file still holds 0 after a scoring exit")
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.runs) == 0 {
		t.Fatal("no run recorded")
	}
	best := 0
	for _, run := range rec.runs {
		best = max(best, run.Score)
		if run.Difficulty != string(config.DifficultyNormal) {
			t.Errorf("Difficulty = %q, expected normal", run.Difficulty)
		}
	}
	if best != hs.Best() {
		t.Errorf("best recorded run = %d, expected %d", best, hs.Best())
	}
}

func TestRunRestartStartsNewSession(t *testing.T) {
	term := newFakeTerminal(80, 20)
	term.pressWhen = scored
	term.press = 'r'

	hs := openHighScore(t)
	rec := &memoryRecorder{}
	r, err := New(Options{Config: testConfig(), Seed: 3, Terminal: term, HighScore: hs, Recorder: rec})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for !rec.has(storage.EndRestart) {
		if time.Now().After(deadline) {
			t.Fatal("no restart recorded")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run() error = %v after cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	if hs.Best() <= 0 {
		t.Errorf("Best() = %d, expected restart to persist the score", hs.Best())
	}
	term.mu.Lock()
	clears := term.clears
	term.mu.Unlock()
	if clears < 2 {
		t.Errorf("clears = %d, expected a fresh screen per session", clears)
	}
}

func TestRunTooSmall(t *testing.T) {
	term := newFakeTerminal(20, 10)
	r, err := New(Options{Config: testConfig(), Terminal: term, HighScore: openHighScore(t)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = runWithTimeout(t, r)
	if !errors.Is(err, survivalist.ErrScreenTooSmall) {
		t.Errorf("Run() = %v, expected ErrScreenTooSmall", err)
	}
	if !term.closed {
		t.Error("terminal not restored after a failed start")
	}
}

func TestRunHighScoreWriteFailure(t *testing.T) {
	term := newFakeTerminal(80, 20)
	term.pressWhen = scored
	term.press = 'p'

	dir := t.TempDir()
	path := filepath.Join(dir, "data.game")
	hs, err := highscore.Open(path)
	if err != nil {
		t.Fatalf("highscore.Open() error = %v", err)
	}
	// A directory in place of the file makes the rewrite fail
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}

	r, err := New(Options{Config: testConfig(), Seed: 11, Terminal: term, HighScore: hs, Recorder: failingRecorder{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := runWithTimeout(t, r); err == nil {
		t.Error("Run() error = nil, expected the high score write failure")
	}
}

func TestRunRecorderFailureIsNotFatal(t *testing.T) {
	term := newFakeTerminal(80, 20)
	term.pressWhen = scored
	term.press = 'p'

	r, err := New(Options{Config: testConfig(), Seed: 5, Terminal: term, HighScore: openHighScore(t), Recorder: failingRecorder{}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := runWithTimeout(t, r); err != nil {
		t.Errorf("Run() error = %v, expected run history failures to be ignored", err)
	}
}

func TestSleepCtx(t *testing.T) {
	if !sleepCtx(context.Background(), time.Millisecond) {
		t.Error("sleepCtx() = false, expected completion")
	}
	if !sleepCtx(context.Background(), -time.Second) {
		t.Error("sleepCtx() with negative duration should return immediately")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if sleepCtx(ctx, time.Hour) {
		t.Error("sleepCtx() = true on a cancelled context")
	}
}
