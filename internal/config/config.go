// Package config provides YAML-based game configuration loading and
// difficulty presets for the survivalist game.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config contains all configuration for the game.
type Config struct {
	TickRate      int             `yaml:"tick_rate"`       // ticks per second
	GameOverDelay time.Duration   `yaml:"game_over_delay"` // how long a collision stays on screen
	Sound         bool            `yaml:"sound"`
	Player        PlayerConfig    `yaml:"player"`
	Enemy         EnemyConfig     `yaml:"enemy"`
	Milestones    MilestoneConfig `yaml:"milestones"`
	Keys          KeyConfig       `yaml:"keys"`
	Storage       StorageConfig   `yaml:"storage"`
}

// PlayerConfig defines player size and motion.
type PlayerConfig struct {
	MinSize    int     `yaml:"min_size"`
	MaxSize    int     `yaml:"max_size"`
	StartSpeed float64 `yaml:"start_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	SpeedStep  float64 `yaml:"speed_step"`
	Glyph      string  `yaml:"glyph"`
}

// EnemyConfig defines enemy spawning and motion.
type EnemyConfig struct {
	MinSize        int        `yaml:"min_size"`
	MaxSize        int        `yaml:"max_size"`
	SpawnMaxX      int        `yaml:"spawn_max_x"`
	Palette        string     `yaml:"palette"`
	MaxSpeed       float64    `yaml:"max_speed"`
	SpeedStep      float64    `yaml:"speed_step"`
	InitialCount   int        `yaml:"initial_count"`
	InitialSpeed   SpeedRange `yaml:"initial_speed"`
	MilestoneSpeed SpeedRange `yaml:"milestone_speed"`
}

// SpeedRange is an inclusive speed magnitude interval.
type SpeedRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// MilestoneConfig defines the intro text and the threshold table.
type MilestoneConfig struct {
	Intro string           `yaml:"intro"`
	Table []MilestoneEntry `yaml:"table"`
}

// MilestoneEntry is one score threshold and its flavour message.
type MilestoneEntry struct {
	Threshold int    `yaml:"threshold"`
	Message   string `yaml:"message"`
}

// KeyConfig binds single characters to actions. Bindings are case-sensitive.
type KeyConfig struct {
	Up      string `yaml:"up"`
	Down    string `yaml:"down"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Restart string `yaml:"restart"`
	Exit    string `yaml:"exit"`
	Pause   string `yaml:"pause"`
}

// StorageConfig defines where scores are persisted.
type StorageConfig struct {
	HighScoreFile string `yaml:"highscore_file"`
	Database      string `yaml:"database"`
}

// Validate checks the config for values the game cannot run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if c.GameOverDelay < 0 {
		return fmt.Errorf("%w: game_over_delay must not be negative", ErrInvalid)
	}
	if err := checkSizes("player", c.Player.MinSize, c.Player.MaxSize); err != nil {
		return err
	}
	if err := checkSizes("enemy", c.Enemy.MinSize, c.Enemy.MaxSize); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.Player.Glyph) != 1 {
		return fmt.Errorf("%w: player.glyph must be one character, got %q", ErrInvalid, c.Player.Glyph)
	}
	if c.Enemy.Palette == "" {
		return fmt.Errorf("%w: enemy.palette must not be empty", ErrInvalid)
	}
	if c.Enemy.SpawnMaxX < 0 {
		return fmt.Errorf("%w: enemy.spawn_max_x must not be negative", ErrInvalid)
	}
	if c.Enemy.InitialCount < 0 {
		return fmt.Errorf("%w: enemy.initial_count must not be negative", ErrInvalid)
	}
	for name, r := range map[string]SpeedRange{
		"enemy.initial_speed":   c.Enemy.InitialSpeed,
		"enemy.milestone_speed": c.Enemy.MilestoneSpeed,
	} {
		if r.Min < 0 || r.Min > r.Max {
			return fmt.Errorf("%w: %s must satisfy 0 <= min <= max, got [%g, %g]", ErrInvalid, name, r.Min, r.Max)
		}
	}
	if len(c.Milestones.Table) < 2 {
		return fmt.Errorf("%w: milestones.table needs at least 2 entries", ErrInvalid)
	}
	for i := 1; i < len(c.Milestones.Table); i++ {
		prev, cur := c.Milestones.Table[i-1], c.Milestones.Table[i]
		if cur.Threshold <= prev.Threshold {
			return fmt.Errorf("%w: milestone thresholds must be strictly increasing (%d after %d)",
				ErrInvalid, cur.Threshold, prev.Threshold)
		}
	}
	return c.Keys.validate()
}

func checkSizes(name string, lo, hi int) error {
	if lo < 1 || hi < lo {
		return fmt.Errorf("%w: %s size range must satisfy 1 <= min <= max, got [%d, %d]", ErrInvalid, name, lo, hi)
	}
	return nil
}

// Bindings returns the key bindings in a fixed order: up, down, left,
// right, restart, exit, pause.
func (k KeyConfig) Bindings() []string {
	return []string{k.Up, k.Down, k.Left, k.Right, k.Restart, k.Exit, k.Pause}
}

func (k KeyConfig) validate() error {
	seen := make(map[string]bool)
	for _, b := range k.Bindings() {
		if utf8.RuneCountInString(b) != 1 {
			return fmt.Errorf("%w: key bindings must be single characters, got %q", ErrInvalid, b)
		}
		if seen[b] {
			return fmt.Errorf("%w: key %q bound twice", ErrInvalid, b)
		}
		seen[b] = true
	}
	return nil
}
