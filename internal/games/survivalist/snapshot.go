package survivalist

import (
	"fmt"

	"github.com/vovakirdan/survivalist/internal/core"
)

// Visual characters for the status area
const (
	RuleChar = '-'
	Title    = "Survivalist Rect!"
)

// EntityView is a read-only copy of an entity for rendering.
type EntityView struct {
	X, Y   float64
	Width  int
	Height int
	Glyphs [][]rune
	Color  core.Color
}

// Snapshot contains the complete visible state of a session.
type Snapshot struct {
	Tick        uint64
	Columns     int
	Lines       int
	Player      EntityView
	Enemies     []EntityView
	Score       int
	Best        int
	EnemyTarget int
	Message     string
	GameOver    bool
	Paused      bool
}

// Snapshot returns a deep copy of the state the renderer needs.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:        s.tick,
		Columns:     s.bounds.Columns,
		Lines:       s.bounds.Lines,
		Player:      view(s.player),
		Enemies:     make([]EntityView, len(s.enemies)),
		Score:       s.score,
		Best:        s.Best(),
		EnemyTarget: s.enemyTarget,
		Message:     s.tracker.Message(),
		GameOver:    s.gameOver,
		Paused:      s.paused,
	}
	for i, e := range s.enemies {
		snap.Enemies[i] = view(e)
	}
	return snap
}

func view(e *Entity) EntityView {
	glyphs := make([][]rune, len(e.Glyphs))
	for i, row := range e.Glyphs {
		glyphs[i] = append([]rune(nil), row...)
	}
	return EntityView{
		X:      e.Pos.X,
		Y:      e.Pos.Y,
		Width:  e.Width,
		Height: e.Height,
		Glyphs: glyphs,
		Color:  e.Color,
	}
}

// Banner returns the score line shown under the milestone message.
func (snap Snapshot) Banner() string {
	line := fmt.Sprintf(" %s | High Score: %d | Score: %d | ", Title, snap.Best, snap.Score)
	if snap.GameOver {
		line += "Game Over!"
	}
	return line
}

// Render draws the current session into dst.
func (s *Session) Render(dst *core.Screen) {
	RenderSnapshot(s.Snapshot(), dst)
}

// RenderSnapshot draws a snapshot into dst. The playfield fills rows
// [0, Lines); below it come a rule, the milestone message, a rule and the
// banner. Enemies are drawn first and the player last so it stays on top.
func RenderSnapshot(snap Snapshot, dst *core.Screen) {
	dst.Clear()

	for _, e := range snap.Enemies {
		drawEntity(dst, e, snap.Lines)
	}
	drawEntity(dst, snap.Player, snap.Lines)

	y := snap.Lines
	dst.DrawHLine(0, y, dst.Width(), RuleChar)
	dst.DrawText(0, y+1, " "+snap.Message)
	dst.DrawHLine(0, y+2, dst.Width(), RuleChar)
	dst.DrawText(0, y+3, snap.Banner())

	if snap.Paused {
		drawCenteredMessage(dst, snap.Lines, "PAUSED", "Press pause again to resume")
	}
}

// drawEntity copies the glyph pattern onto the playfield, clipping anything
// outside rows [0, lines).
func drawEntity(dst *core.Screen, e EntityView, lines int) {
	ex, ey := core.Vector2{X: e.X, Y: e.Y}.Floor()
	for i := 0; i < e.Height; i++ {
		y := ey + i
		if y < 0 || y >= lines {
			continue
		}
		for j := 0; j < e.Width; j++ {
			dst.SetColored(ex+j, y, e.Glyphs[i][j], e.Color)
		}
	}
}

// drawCenteredMessage draws a message box in the centre of the playfield.
func drawCenteredMessage(dst *core.Screen, lines int, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (lines - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// ScreenSize returns the buffer size needed to render a playfield of b.
func ScreenSize(b core.Bounds) (int, int) {
	return b.Columns, b.Lines + ReservedLines - 1
}
