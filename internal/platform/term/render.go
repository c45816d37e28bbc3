package term

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/survivalist/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = buildStyles()

func buildStyles() map[core.Color]lipgloss.Style {
	styles := map[core.Color]lipgloss.Style{core.ColorDefault: lipgloss.NewStyle()}
	for c := core.ColorRed; c <= core.ColorGray; c++ {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(strconv.Itoa(c.ANSI())))
	}
	return styles
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color are grouped to minimize escape
// sequences. Rows are joined with sep.
func RenderScreen(s *core.Screen, sep string) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height()*len(sep))

	for y := range s.Height() {
		if y > 0 {
			sb.WriteString(sep)
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
