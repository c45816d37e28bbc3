package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal, hard or fixed)", ErrInvalid, s)
	}
}

// IsFixedPreset returns true if the preset freezes speed scaling.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal keeps the loaded values. Fixed keeps every entity at its spawn
// speed; milestones still add enemies.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Player.SpeedStep = 0
		cfg.Enemy.SpeedStep = 0
		return
	}

	switch preset {
	case DifficultyEasy:
		cfg.Enemy.InitialCount = 1
		cfg.Enemy.InitialSpeed = scale(cfg.Enemy.InitialSpeed, 0.75)
		cfg.Enemy.MilestoneSpeed = scale(cfg.Enemy.MilestoneSpeed, 0.75)
	case DifficultyHard:
		cfg.Enemy.InitialCount = max(cfg.Enemy.InitialCount, 3)
		cfg.Enemy.InitialSpeed = scale(cfg.Enemy.InitialSpeed, 1.25)
		cfg.Enemy.MilestoneSpeed = scale(cfg.Enemy.MilestoneSpeed, 1.25)
	}
}

func scale(r SpeedRange, f float64) SpeedRange {
	return SpeedRange{Min: r.Min * f, Max: r.Max * f}
}
