package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/survivalist.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration. It mirrors the embedded
// defaults/survivalist.yaml.
func DefaultConfig() Config {
	return Config{
		TickRate:      15,
		GameOverDelay: 1200 * time.Millisecond,
		Sound:         false,
		Player: PlayerConfig{
			MinSize:    2,
			MaxSize:    3,
			StartSpeed: 0.7,
			MaxSpeed:   1.3,
			SpeedStep:  0.026,
			Glyph:      "X",
		},
		Enemy: EnemyConfig{
			MinSize:        1,
			MaxSize:        7,
			SpawnMaxX:      5,
			Palette:        `:./\-|`,
			MaxSpeed:       0.85,
			SpeedStep:      0.017,
			InitialCount:   1,
			InitialSpeed:   SpeedRange{Min: 0.2, Max: 0.5},
			MilestoneSpeed: SpeedRange{Min: 0.5, Max: 0.7},
		},
		Milestones: MilestoneConfig{
			Intro: "Hit the wall, avoid the object(s)!",
			Table: []MilestoneEntry{
				{5, "One more enemy at each milestone."},
				{15, "Each time they hit the wall, they become faster! (up to a max)."},
				{30, "They enter from the left side."},
				{50, "Yes, you can hold the keys. But more score -> more enemies!"},
				{100, "Bigger screen -> better survival chance!"},
				{150, "Do you know about the first version of Tetris?"},
				{250, "Can you make it a 4-digit? But first half of it."},
				{500, "The thing is starting to happen!"},
				{750, "Almost impossible!"},
				{1000, "Nice, you did it! How far can you get?"},
				{1500, "I'm running out of sentences at this point."},
				{2500, "Just kidding! Keep going, dude!"},
				{5000, "Alright, wana lose now?"},
				{7500, "Nice dodges, little shape!"},
				{10000, "It's getting interesting, isn't it?"},
				{15000, "Keep avoiding them, little one!"},
				{25000, "A determined one. I like it."},
				{50000, "You're almost getting there."},
				{75000, "Wow, look how far you've come!"},
				{100000, "This is getting out of control."},
				{250000, "Are you sure you're not cheating?"},
				{500000, "It's absolutely ridiculous. Anyway,"},
				{1000000, "Are you f***ing kidding me? Stop it."},
				{1000000000, "Sh*t. Just stop it. seriously. Have mercy on your computer."},
			},
		},
		Keys: KeyConfig{
			Up:      "w",
			Down:    "s",
			Left:    "a",
			Right:   "d",
			Restart: "r",
			Exit:    "p",
			Pause:   " ",
		},
		Storage: StorageConfig{
			HighScoreFile: "~/.survivalist/data.game",
			Database:      "~/.survivalist/runs.db",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
