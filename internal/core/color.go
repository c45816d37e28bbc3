package core

// Color represents a foreground color for a screen cell.
// Values map onto ANSI 256-color codes in the platform renderers.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// ANSI returns the 256-colour palette index for c, or -1 for the terminal default.
func (c Color) ANSI() int {
	switch c {
	case ColorDefault:
		return -1
	case ColorOrange:
		return 208
	case ColorGray:
		return 245
	}
	if c >= ColorBrightRed {
		return int(c-ColorBrightRed) + 9
	}
	return int(c)
}
