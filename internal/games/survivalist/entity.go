package survivalist

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/survivalist/internal/core"
)

// Capability describes how an entity moves and where it bounces.
// Players and enemies share one Entity type and differ only here.
type Capability struct {
	MaxSpeed  float64 // |velocity.x| at or above this stops SpeedUp
	SpeedStep float64 // magnitude added to each axis per bounce
	// VerticalSlack is subtracted from the bottom edge before testing the
	// floor: 1 for the player (same rule as the x axis), 0 for enemies.
	VerticalSlack int
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64
	Max float64
}

// Entity is a moving rectangle with a fixed glyph pattern.
type Entity struct {
	Pos    core.Vector2
	Vel    core.Vector2
	Width  int
	Height int
	Glyphs [][]rune // [Height][Width]
	Color  core.Color
	Cap    Capability
}

// NewEntity creates an entity filled with a single glyph.
func NewEntity(pos core.Vector2, width, height int, fill rune, color core.Color, vel core.Vector2, capability Capability) *Entity {
	glyphs := make([][]rune, height)
	for y := range glyphs {
		glyphs[y] = make([]rune, width)
		for x := range glyphs[y] {
			glyphs[y][x] = fill
		}
	}
	return &Entity{
		Pos:    pos,
		Vel:    vel,
		Width:  width,
		Height: height,
		Glyphs: glyphs,
		Color:  color,
		Cap:    capability,
	}
}

// Integrate advances the position by one unit tick.
func (e *Entity) Integrate() {
	e.Pos = e.Pos.Add(e.Vel)
}

// ResolveWallBounce clamps the entity back inside bounds, reflecting the
// velocity on every axis that left the grid. When any axis was hit the
// entity speeds up once and true is returned.
func (e *Entity) ResolveWallBounce(b core.Bounds) bool {
	hit := false

	if e.Pos.X+float64(e.Width-1) >= float64(b.Columns) {
		e.Pos.X = float64(b.Columns - e.Width)
		e.Vel.X = -e.Vel.X
		hit = true
	} else if e.Pos.X < 0 {
		e.Pos.X = 0
		e.Vel.X = -e.Vel.X
		hit = true
	}

	if e.Pos.Y+float64(e.Height-e.Cap.VerticalSlack) >= float64(b.Lines) {
		e.Pos.Y = float64(b.Lines - e.Height)
		e.Vel.Y = -e.Vel.Y
		hit = true
	} else if e.Pos.Y < 0 {
		e.Pos.Y = 0
		e.Vel.Y = -e.Vel.Y
		hit = true
	}

	if hit {
		e.SpeedUp()
	}
	return hit
}

// SpeedUp grows both velocity magnitudes by SpeedStep while |vel.x| is
// below MaxSpeed. A zero component grows in the positive direction.
func (e *Entity) SpeedUp() {
	if math.Abs(e.Vel.X) >= e.Cap.MaxSpeed {
		return
	}
	e.Vel.X = grow(e.Vel.X, e.Cap.SpeedStep)
	e.Vel.Y = grow(e.Vel.Y, e.Cap.SpeedStep)
}

func grow(v, step float64) float64 {
	if v < 0 {
		return v - step
	}
	return v + step
}

// ForceDirection sets the sign of each velocity component from the
// directional actions in the frame. Magnitudes are kept. Down wins over up
// and right over left when both are present.
func (e *Entity) ForceDirection(in core.InputFrame) {
	if in.Has(core.ActionUp) {
		e.Vel.Y = -math.Abs(e.Vel.Y)
	}
	if in.Has(core.ActionDown) {
		e.Vel.Y = math.Abs(e.Vel.Y)
	}
	if in.Has(core.ActionLeft) {
		e.Vel.X = -math.Abs(e.Vel.X)
	}
	if in.Has(core.ActionRight) {
		e.Vel.X = math.Abs(e.Vel.X)
	}
}

// Footprint returns the occupied grid cells as a rectangle at the floored position.
func (e *Entity) Footprint() core.Rect {
	x, y := e.Pos.Floor()
	return core.NewRect(x, y, e.Width, e.Height)
}

// Overlaps reports whether any occupied cell of e coincides with one of o.
// Disjoint footprints are rejected before the cell pairs are compared.
func (e *Entity) Overlaps(o *Entity) bool {
	if !e.Footprint().Intersects(o.Footprint()) {
		return false
	}
	ex, ey := e.Pos.Floor()
	ox, oy := o.Pos.Floor()
	for i := 0; i < o.Width; i++ {
		for j := 0; j < o.Height; j++ {
			for w := 0; w < e.Width; w++ {
				for h := 0; h < e.Height; h++ {
					if ex+w == ox+i && ey+h == oy+j {
						return true
					}
				}
			}
		}
	}
	return false
}

// EnemySpec holds the spawn rules for enemies.
type EnemySpec struct {
	MinSize   int
	MaxSize   int
	SpawnMaxX int // x is drawn from [0, SpawnMaxX]
	Palette   []rune
	Cap       Capability
}

// PlayerSpec holds the spawn rules for the player.
type PlayerSpec struct {
	MinSize    int
	MaxSize    int
	StartSpeed float64
	Glyph      rune
	Cap        Capability
}

// NewEnemy spawns a random enemy near the left edge at a random height.
func NewEnemy(rng *rand.Rand, spec EnemySpec, speed Range, lines int) *Entity {
	width := randInt(rng, spec.MinSize, spec.MaxSize)
	height := randInt(rng, spec.MinSize, spec.MaxSize)

	palette := spec.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	fill := palette[rng.Intn(len(palette))]

	magnitude := speed.Min + rng.Float64()*(speed.Max-speed.Min)
	vel := core.Vector2{
		X: randSign(rng) * magnitude,
		Y: randSign(rng) * magnitude,
	}
	pos := core.Vector2{
		X: float64(randInt(rng, 0, spec.SpawnMaxX)),
		Y: float64(randInt(rng, 0, lines-1)),
	}
	return NewEntity(pos, width, height, fill, glyphColor(fill), vel, spec.Cap)
}

// NewPlayer spawns the player at the centre of the playfield.
func NewPlayer(rng *rand.Rand, spec PlayerSpec, b core.Bounds) *Entity {
	width := randInt(rng, spec.MinSize, spec.MaxSize)
	height := randInt(rng, spec.MinSize, spec.MaxSize)
	vel := core.Vector2{
		X: randSign(rng) * spec.StartSpeed,
		Y: randSign(rng) * spec.StartSpeed,
	}
	pos := core.Vector2{X: float64(b.Columns / 2), Y: float64(b.Lines / 2)}
	return NewEntity(pos, width, height, spec.Glyph, core.ColorBrightWhite, vel, spec.Cap)
}

// randInt returns a uniform integer in [lo, hi].
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func randSign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// DefaultPalette is the enemy fill set used when none is configured.
var DefaultPalette = []rune(`:./\-|`)

var glyphColors = map[rune]core.Color{
	':':  core.ColorCyan,
	'.':  core.ColorYellow,
	'/':  core.ColorMagenta,
	'\\': core.ColorGreen,
	'-':  core.ColorOrange,
	'|':  core.ColorBrightRed,
}

func glyphColor(r rune) core.Color {
	if c, ok := glyphColors[r]; ok {
		return c
	}
	return core.ColorGray
}
