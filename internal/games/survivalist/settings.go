package survivalist

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/survivalist/internal/config"
)

// Settings holds everything a Session needs besides the runtime config.
type Settings struct {
	Player         PlayerSpec
	Enemy          EnemySpec
	InitialEnemies int
	InitialSpeed   Range
	MilestoneSpeed Range
	Milestones     []Milestone
	Intro          string
}

// FromConfig converts a loaded configuration into session settings.
func FromConfig(cfg config.Config) Settings {
	milestones := make([]Milestone, len(cfg.Milestones.Table))
	for i, m := range cfg.Milestones.Table {
		milestones[i] = Milestone{Threshold: m.Threshold, Message: m.Message}
	}

	glyph := 'X'
	if r := []rune(cfg.Player.Glyph); len(r) > 0 {
		glyph = r[0]
	}

	return Settings{
		Player: PlayerSpec{
			MinSize:    cfg.Player.MinSize,
			MaxSize:    cfg.Player.MaxSize,
			StartSpeed: cfg.Player.StartSpeed,
			Glyph:      glyph,
			Cap: Capability{
				MaxSpeed:      cfg.Player.MaxSpeed,
				SpeedStep:     cfg.Player.SpeedStep,
				VerticalSlack: 1,
			},
		},
		Enemy: EnemySpec{
			MinSize:   cfg.Enemy.MinSize,
			MaxSize:   cfg.Enemy.MaxSize,
			SpawnMaxX: cfg.Enemy.SpawnMaxX,
			Palette:   []rune(cfg.Enemy.Palette),
			Cap: Capability{
				MaxSpeed:      cfg.Enemy.MaxSpeed,
				SpeedStep:     cfg.Enemy.SpeedStep,
				VerticalSlack: 0,
			},
		},
		InitialEnemies: cfg.Enemy.InitialCount,
		InitialSpeed:   Range(cfg.Enemy.InitialSpeed),
		MilestoneSpeed: Range(cfg.Enemy.MilestoneSpeed),
		Milestones:     milestones,
		Intro:          introMessage(cfg),
	}
}

// DefaultSettings returns settings built from the default configuration.
func DefaultSettings() Settings {
	return FromConfig(config.DefaultConfig())
}

// introMessage appends the key summary and first threshold to the intro text.
func introMessage(cfg config.Config) string {
	k := cfg.Keys
	keys := fmt.Sprintf("%s %s %s %s / %s / %s", k.Up, k.Down, k.Left, k.Right, k.Restart, k.Exit)
	msg := strings.TrimSpace(cfg.Milestones.Intro) + " (keys: " + keys + ")"
	if len(cfg.Milestones.Table) > 0 {
		msg += fmt.Sprintf(" Milestone at %d", cfg.Milestones.Table[0].Threshold)
	}
	return msg
}
