// Package runner owns the fixed-tick game loop for a local terminal. It
// drains the input signals once per tick, advances the session, draws the
// frame and handles restart, exit and game over.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/survivalist/internal/config"
	"github.com/vovakirdan/survivalist/internal/core"
	"github.com/vovakirdan/survivalist/internal/games/survivalist"
	"github.com/vovakirdan/survivalist/internal/highscore"
	"github.com/vovakirdan/survivalist/internal/input"
	"github.com/vovakirdan/survivalist/internal/platform/term"
	"github.com/vovakirdan/survivalist/internal/sound"
	"github.com/vovakirdan/survivalist/internal/storage"
)

// RunRecorder stores finished runs. *storage.Store implements it.
type RunRecorder interface {
	SaveRun(run storage.Run) (int64, error)
}

// Options configures a Runner.
type Options struct {
	Config     config.Config
	Difficulty config.DifficultyPreset
	Seed       int64 // 0 picks a time-based seed per session

	Terminal  term.Terminal
	HighScore *highscore.File
	Recorder  RunRecorder  // optional
	Sound     sound.Player // optional
	Logger    *log.Logger  // optional
}

// Runner drives sessions on a terminal until the player exits.
type Runner struct {
	cfg        config.Config
	settings   survivalist.Settings
	difficulty config.DifficultyPreset
	seed       int64
	sessions   int64

	term     term.Terminal
	hs       *highscore.File
	recorder RunRecorder
	sound    sound.Player
	logger   *log.Logger

	tickDuration time.Duration
}

// New validates options and returns a runner.
func New(opts Options) (*Runner, error) {
	if opts.Terminal == nil {
		return nil, errors.New("runner: terminal is required")
	}
	if opts.HighScore == nil {
		return nil, errors.New("runner: high score file is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}

	r := &Runner{
		cfg:          opts.Config,
		settings:     survivalist.FromConfig(opts.Config),
		difficulty:   opts.Difficulty,
		seed:         opts.Seed,
		term:         opts.Terminal,
		hs:           opts.HighScore,
		recorder:     opts.Recorder,
		sound:        opts.Sound,
		logger:       opts.Logger,
		tickDuration: time.Second / time.Duration(opts.Config.TickRate),
	}
	if r.difficulty == "" {
		r.difficulty = config.DifficultyNormal
	}
	if r.sound == nil {
		r.sound = sound.Nop{}
	}
	if r.logger == nil {
		r.logger = log.New(io.Discard)
	}
	return r, nil
}

// Run plays until the exit action or ctx cancellation. The terminal is
// restored on every return path. The only errors returned are terminal
// failures, a playfield too small to play in, and high score write
// failures.
func (r *Runner) Run(ctx context.Context) (err error) {
	if err := r.term.Open(); err != nil {
		return err
	}
	defer func() {
		if cerr := r.term.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	bridgeCtx, cancelBridge := context.WithCancel(ctx)
	defer cancelBridge()

	signals := input.NewSignals()
	bridge := input.NewBridge(r.term, input.NewKeyMap(r.cfg.Keys), signals, r.tickDuration, r.logger)
	bridge.Start(bridgeCtx)
	defer bridge.Stop()

	session, screen, err := r.newSession()
	if err != nil {
		return err
	}
	r.logger.Info("game started", "difficulty", r.difficulty, "columns", session.Bounds().Columns, "lines", session.Bounds().Lines)

	for {
		start := time.Now()

		if ctx.Err() != nil {
			return r.finish(session, storage.EndExit)
		}

		frame := signals.Consume()
		if frame.Has(core.ActionExit) {
			return r.finish(session, storage.EndExit)
		}
		if frame.Has(core.ActionRestart) {
			if err := r.finish(session, storage.EndRestart); err != nil {
				return err
			}
			if session, screen, err = r.newSession(); err != nil {
				return err
			}
			continue
		}

		res := session.Tick(frame)
		r.playCues(res.Events)

		session.Render(screen)
		if err := r.term.Draw(screen); err != nil {
			return fmt.Errorf("runner: draw: %w", err)
		}

		if res.Events.Collided {
			r.logger.Info("game over", "score", res.State.Score, "enemies", session.EnemyTarget())
			if !sleepCtx(ctx, r.cfg.GameOverDelay) {
				return r.finish(session, storage.EndCollision)
			}
			if err := r.finish(session, storage.EndCollision); err != nil {
				return err
			}
			if session, screen, err = r.newSession(); err != nil {
				return err
			}
			continue
		}

		// Late ticks are not caught up
		if wait := r.tickDuration - time.Since(start); wait > 0 {
			sleepCtx(ctx, wait)
		}
	}
}

// newSession queries the terminal size and builds a fresh session with a
// screen buffer to match.
func (r *Runner) newSession() (*survivalist.Session, *core.Screen, error) {
	w, h, err := r.term.Size()
	if err != nil {
		return nil, nil, err
	}
	bounds := survivalist.PlayfieldFor(w, h)

	seed := r.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += r.sessions
	}
	r.sessions++

	rt := core.RuntimeConfig{
		ScreenW:  bounds.Columns,
		ScreenH:  bounds.Lines,
		TickRate: r.cfg.TickRate,
		Seed:     seed,
	}
	session, err := survivalist.NewSession(r.settings, rt, r.hs.Best())
	if err != nil {
		return nil, nil, fmt.Errorf("runner: terminal %dx%d: %w", w, h, err)
	}

	if err := r.term.Clear(); err != nil {
		return nil, nil, fmt.Errorf("runner: clear: %w", err)
	}
	return session, core.NewScreen(survivalist.ScreenSize(bounds)), nil
}

// finish persists the high score and records the run. A high score write
// failure is returned; run history is best-effort.
func (r *Runner) finish(session *survivalist.Session, reason string) error {
	score := session.Score()
	if err := r.hs.Record(score); err != nil {
		return err
	}

	if r.recorder != nil && (score > 0 || reason == storage.EndCollision) {
		run := storage.Run{
			Difficulty: string(r.difficulty),
			Score:      score,
			Enemies:    session.EnemyTarget(),
			Ticks:      session.Ticks(),
			Milestones: session.MilestonesFired(),
			EndReason:  reason,
		}
		if _, err := r.recorder.SaveRun(run); err != nil {
			r.logger.Warn("run not recorded", "error", err)
		}
	}
	r.logger.Debug("session finished", "reason", reason, "score", score, "best", r.hs.Best())
	return nil
}

func (r *Runner) playCues(ev survivalist.Events) {
	switch {
	case ev.Collided:
		r.sound.Play(sound.CueGameOver)
	case ev.Milestone != nil:
		r.sound.Play(sound.CueMilestone)
	case ev.Bounces > 0:
		r.sound.Play(sound.CueBounce)
	}
}

// sleepCtx waits for d and reports whether it completed before ctx ended.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
