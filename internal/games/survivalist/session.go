// Package survivalist implements the bouncing-rectangle survival game.
// The player rectangle bounces around the playfield, every wall bounce scores
// a point, and each milestone adds another bouncing enemy to avoid.
package survivalist

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/survivalist/internal/core"
)

// ErrScreenTooSmall is returned when the playfield cannot hold the largest entity.
var ErrScreenTooSmall = errors.New("survivalist: playfield smaller than the largest entity")

// ReservedLines is the number of terminal lines not used by the playfield:
// two rules, the milestone message, the banner and one spare line.
const ReservedLines = 5

// PlayfieldFor returns the playfield bounds for a terminal of the given size.
func PlayfieldFor(termW, termH int) core.Bounds {
	return core.Bounds{Columns: termW, Lines: termH - ReservedLines}
}

// Events reports what happened during one tick.
type Events struct {
	Bounces   int        // entities that hit a wall this tick
	Milestone *Milestone // milestone fired this tick, if any
	Collided  bool       // the player touched an enemy this tick
}

// StepResult is returned by Session.Tick after each simulation tick.
type StepResult struct {
	State  core.GameState
	Events Events
}

// Session owns all simulation state for one game. It is created at start and
// replaced wholesale on restart.
type Session struct {
	settings Settings
	runtime  core.RuntimeConfig
	bounds   core.Bounds
	rng      *rand.Rand

	player      *Entity
	enemies     []*Entity
	score       int
	best        int // stored high score at session start
	enemyTarget int
	tracker     *Tracker

	tick     uint64
	gameOver bool
	paused   bool
}

// NewSession builds a fresh session: the player centred on the playfield and
// the initial enemies spawned near the left edge. best is the stored high score.
func NewSession(settings Settings, rt core.RuntimeConfig, best int) (*Session, error) {
	bounds := rt.Bounds()
	need := core.Max(settings.Enemy.MaxSize, settings.Player.MaxSize)
	if bounds.Columns < need || bounds.Lines < need {
		return nil, fmt.Errorf("%w: %dx%d, need %dx%d", ErrScreenTooSmall, bounds.Columns, bounds.Lines, need, need)
	}

	tracker, err := NewTracker(settings.Milestones, settings.Intro)
	if err != nil {
		return nil, err
	}

	s := &Session{
		settings:    settings,
		runtime:     rt,
		bounds:      bounds,
		rng:         rand.New(rand.NewSource(rt.Seed)),
		best:        best,
		enemyTarget: settings.InitialEnemies,
		tracker:     tracker,
	}

	s.player = NewPlayer(s.rng, settings.Player, bounds)
	for range settings.InitialEnemies {
		s.enemies = append(s.enemies, NewEnemy(s.rng, settings.Enemy, settings.InitialSpeed, bounds.Lines))
	}
	return s, nil
}

// Tick advances the simulation by one step: steer the player, integrate all
// entities, resolve wall bounces, test collisions and evaluate milestones.
// Restart and exit are handled by the caller.
func (s *Session) Tick(in core.InputFrame) StepResult {
	var ev Events
	if s.gameOver {
		return s.result(ev)
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return s.result(ev)
	}

	s.tick++

	s.player.ForceDirection(in)

	s.player.Integrate()
	for _, e := range s.enemies {
		e.Integrate()
	}

	// One point per bouncing entity, however many axes it hit
	if s.player.ResolveWallBounce(s.bounds) {
		s.score++
		ev.Bounces++
	}
	for _, e := range s.enemies {
		if e.ResolveWallBounce(s.bounds) {
			s.score++
			ev.Bounces++
		}
	}

	if s.collides() {
		s.gameOver = true
		ev.Collided = true
	}

	if m := s.tracker.Evaluate(s.score); m != nil {
		ev.Milestone = m
		s.addEnemy()
	}

	return s.result(ev)
}

// collides reports whether the player overlaps any enemy.
func (s *Session) collides() bool {
	for _, e := range s.enemies {
		if s.player.Overlaps(e) {
			return true
		}
	}
	return false
}

// addEnemy raises the enemy target and spawns one faster enemy.
func (s *Session) addEnemy() {
	s.enemyTarget++
	s.enemies = append(s.enemies, NewEnemy(s.rng, s.settings.Enemy, s.settings.MilestoneSpeed, s.bounds.Lines))
}

func (s *Session) result(ev Events) StepResult {
	return StepResult{State: s.State(), Events: ev}
}

// State returns the current game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// Score returns the current score.
func (s *Session) Score() int {
	return s.score
}

// Best returns the high score to display: the stored one or the current
// score, whichever is larger.
func (s *Session) Best() int {
	return core.Max(s.best, s.score)
}

// Ticks returns the number of simulated (unpaused) ticks.
func (s *Session) Ticks() uint64 {
	return s.tick
}

// EnemyTarget returns the number of enemies the session should hold.
func (s *Session) EnemyTarget() int {
	return s.enemyTarget
}

// MilestonesFired returns how many milestones fired this session.
func (s *Session) MilestonesFired() int {
	return s.tracker.Fired()
}

// Bounds returns the playfield size.
func (s *Session) Bounds() core.Bounds {
	return s.bounds
}
