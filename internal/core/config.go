package core

// RuntimeConfig contains configuration passed to a session at initialization.
// The session uses this to size the playfield and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Playfield width in characters
	ScreenH  int   // Playfield height in characters (status lines excluded)
	TickRate int   // Simulation ticks per second (default 15)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  19,
		TickRate: 15,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Bounds returns the playfield bounds described by the config.
func (c RuntimeConfig) Bounds() Bounds {
	return Bounds{Columns: c.ScreenW, Lines: c.ScreenH}
}

// GameState represents the current state of a session.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the session has ended
	Paused   bool // Whether the session is paused
}
