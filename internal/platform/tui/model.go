package tui

import (
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/survivalist/internal/config"
	"github.com/vovakirdan/survivalist/internal/core"
	"github.com/vovakirdan/survivalist/internal/games/survivalist"
	"github.com/vovakirdan/survivalist/internal/highscore"
	"github.com/vovakirdan/survivalist/internal/input"
	"github.com/vovakirdan/survivalist/internal/platform/term"
	"github.com/vovakirdan/survivalist/internal/storage"
)

// RunRecorder stores finished runs. *storage.Store implements it.
type RunRecorder interface {
	SaveRun(run storage.Run) (int64, error)
}

// GameOptions configures a GameModel.
type GameOptions struct {
	Config     config.Config
	Difficulty config.DifficultyPreset
	Seed       int64 // 0 picks a time-based seed per session

	// Width and Height are the initial terminal size. A WindowSizeMsg
	// replaces them.
	Width, Height int

	// Best is the high score shown when HighScore is nil.
	Best      int
	HighScore *highscore.File // optional, written when a session ends
	Recorder  RunRecorder     // optional
	Logger    *log.Logger     // optional
}

// GameModel is the Bubble Tea model that plays survivalist sessions.
// Key messages raise input signals which the next tick consumes, so a
// press behaves the same as on the raw terminal loop.
type GameModel struct {
	cfg        config.Config
	settings   survivalist.Settings
	difficulty config.DifficultyPreset
	seed       int64
	sessions   int64

	keys     *KeyMapper
	signals  *input.Signals
	hs       *highscore.File
	recorder RunRecorder
	logger   *log.Logger

	width, height int
	best          int

	session  *survivalist.Session
	screen   *core.Screen
	finished bool      // current session already recorded
	overAt   time.Time // tick time of the collision, zero while playing
	startErr error     // last session start failure
	err      error     // fatal error, returned by Err
	quitting bool
}

// NewGameModel creates a game model and starts its first session. A
// terminal too small to play in is reported in the view until a resize
// makes room.
func NewGameModel(opts GameOptions) *GameModel {
	m := &GameModel{
		cfg:        opts.Config,
		settings:   survivalist.FromConfig(opts.Config),
		difficulty: opts.Difficulty,
		seed:       opts.Seed,
		keys:       NewKeyMapper(input.NewKeyMap(opts.Config.Keys)),
		signals:    input.NewSignals(),
		hs:         opts.HighScore,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
		width:      opts.Width,
		height:     opts.Height,
		best:       opts.Best,
	}
	if m.difficulty == "" {
		m.difficulty = config.DifficultyNormal
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.hs != nil {
		m.best = max(m.best, m.hs.Best())
	}
	m.startSession()
	return m
}

// Init starts the tick loop.
func (m *GameModel) Init() tea.Cmd {
	return tickCmd(m.cfg.TickRate)
}

// Update handles messages and updates the model state.
func (m *GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.session == nil {
			m.startSession()
		}
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// handleKey raises the bound action. Exit is acted on at once; everything
// else waits for the next tick.
func (m *GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, ok := m.keys.MapKey(msg)
	if !ok {
		return m, nil
	}
	if action == core.ActionExit {
		m.quit(storage.EndExit)
		return m, tea.Quit
	}
	m.signals.Set(action)
	return m, nil
}

// handleTick advances the session by one step, or starts the next one once
// the game over delay has passed.
func (m *GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	if m.session == nil {
		m.signals.Clear()
		return m, tickCmd(m.cfg.TickRate)
	}

	frame := m.signals.Consume()
	if frame.Has(core.ActionRestart) {
		if !m.finish(storage.EndRestart) {
			return m, tea.Quit
		}
		m.startSession()
		return m, tickCmd(m.cfg.TickRate)
	}

	if !m.overAt.IsZero() {
		if now.Sub(m.overAt) >= m.cfg.GameOverDelay {
			if !m.finish(storage.EndCollision) {
				return m, tea.Quit
			}
			m.startSession()
		}
		return m, tickCmd(m.cfg.TickRate)
	}

	res := m.session.Tick(frame)
	if res.Events.Collided {
		m.logger.Info("game over", "score", res.State.Score, "enemies", m.session.EnemyTarget())
		m.overAt = now
	}
	return m, tickCmd(m.cfg.TickRate)
}

// startSession builds a session for the current terminal size.
func (m *GameModel) startSession() {
	seed := m.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	} else {
		seed += m.sessions
	}
	m.sessions++

	bounds := survivalist.PlayfieldFor(m.width, m.height)
	rt := core.RuntimeConfig{
		ScreenW:  bounds.Columns,
		ScreenH:  bounds.Lines,
		TickRate: m.cfg.TickRate,
		Seed:     seed,
	}
	session, err := survivalist.NewSession(m.settings, rt, m.best)
	if err != nil {
		m.session, m.screen, m.startErr = nil, nil, err
		m.logger.Debug("session not started", "width", m.width, "height", m.height, "error", err)
		return
	}

	m.session = session
	m.screen = core.NewScreen(survivalist.ScreenSize(bounds))
	m.finished = false
	m.overAt = time.Time{}
	m.startErr = nil
	m.signals.Clear()
}

// finish records the current session once. It reports false when the high
// score could not be written, which ends the program.
func (m *GameModel) finish(reason string) bool {
	if m.session == nil || m.finished {
		return true
	}
	m.finished = true

	score := m.session.Score()
	m.best = max(m.best, score)
	if m.hs != nil {
		if err := m.hs.Record(score); err != nil {
			m.err = err
			m.quitting = true
			return false
		}
	}

	if m.recorder != nil && (score > 0 || reason == storage.EndCollision) {
		run := storage.Run{
			Difficulty: string(m.difficulty),
			Score:      score,
			Enemies:    m.session.EnemyTarget(),
			Ticks:      m.session.Ticks(),
			Milestones: m.session.MilestonesFired(),
			EndReason:  reason,
		}
		if _, err := m.recorder.SaveRun(run); err != nil {
			m.logger.Warn("run not recorded", "error", err)
		}
	}
	return true
}

// quit records the session and stops the model.
func (m *GameModel) quit(reason string) {
	if m.session != nil && m.session.State().GameOver {
		reason = storage.EndCollision
	}
	m.finish(reason)
	m.quitting = true
}

// Err returns the error that stopped the model, if any.
func (m *GameModel) Err() error {
	return m.err
}

// Best returns the highest score seen by this model.
func (m *GameModel) Best() int {
	return m.best
}

// Session returns the session being played, nil while the terminal is too small.
func (m *GameModel) Session() *survivalist.Session {
	return m.session
}

// View renders the current state to a string for display.
func (m *GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.session == nil {
		return fmt.Sprintf("Terminal too small (%dx%d).\n%v\nResize to play, %s to quit.\n",
			m.width, m.height, m.startErr, m.cfg.Keys.Exit)
	}
	m.session.Render(m.screen)
	return term.RenderScreen(m.screen, "\n")
}

// RunGame plays on the local terminal through Bubble Tea.
func RunGame(opts GameOptions) error {
	model := NewGameModel(opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return model.Err()
}
