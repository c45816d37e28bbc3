// Package sound plays short synthesized cues for game events.
package sound

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Cue identifies a game event with a sound.
type Cue int

const (
	CueBounce Cue = iota
	CueMilestone
	CueGameOver
)

// String returns the cue name used in logs.
func (c Cue) String() string {
	switch c {
	case CueBounce:
		return "bounce"
	case CueMilestone:
		return "milestone"
	case CueGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Player plays cues. Implementations must not block the caller.
type Player interface {
	Play(c Cue)
	Close()
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(Cue) {}
func (Nop) Close()   {}

// Manager mixes cues onto the system speaker.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// New returns a speaker-backed Player when enabled, falling back to Nop if
// the audio device cannot be opened.
func New(enabled bool, logger *log.Logger) Player {
	if !enabled {
		return Nop{}
	}
	m := &Manager{mixer: &beep.Mixer{}}
	if err := m.init(); err != nil {
		if logger != nil {
			logger.Warn("sound disabled", "error", err)
		}
		return Nop{}
	}
	return m
}

func (m *Manager) init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Play queues the cue on the mixer.
func (m *Manager) Play(c Cue) {
	s := Streamer(c)
	if s == nil {
		return
	}
	// The mixer is read by the speaker goroutine
	speaker.Lock()
	defer speaker.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		m.mixer.Add(s)
	}
}

// Close silences all cues.
func (m *Manager) Close() {
	speaker.Lock()
	m.mu.Lock()
	m.mixer.Clear()
	m.initialized = false
	m.mu.Unlock()
	speaker.Unlock()
	speaker.Clear()
}

// Streamer returns the finite stream for a cue, or nil for unknown cues.
func Streamer(c Cue) beep.Streamer {
	switch c {
	case CueBounce:
		return newTone(880, 25*time.Millisecond, 0.15)
	case CueMilestone:
		return beep.Seq(
			newTone(660, 80*time.Millisecond, 0.25),
			newTone(990, 120*time.Millisecond, 0.25),
		)
	case CueGameOver:
		return beep.Seq(
			newTone(330, 150*time.Millisecond, 0.3),
			beep.Silence(sampleRate.N(40*time.Millisecond)),
			newTone(220, 300*time.Millisecond, 0.3),
		)
	default:
		return nil
	}
}

// tone is a sine wave with a linear fade out.
type tone struct {
	freq     float64
	volume   float64
	phase    float64
	position int
	duration int
}

func newTone(freq float64, d time.Duration, volume float64) beep.Streamer {
	return &tone{freq: freq, volume: volume, duration: sampleRate.N(d)}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.duration {
			return i, i > 0
		}
		fade := 1 - float64(t.position)/float64(t.duration)
		v := t.volume * fade * math.Sin(2*math.Pi*t.phase)
		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(sampleRate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }
