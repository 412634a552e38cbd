package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/little-wizard/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:    lipgloss.NewStyle(),
	core.ColorGround:     lipgloss.NewStyle().Foreground(lipgloss.Color("58")),
	core.ColorTree:       lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	core.ColorMarkedTree: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	core.ColorObstacle:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorPlayer:     lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ColorMarker:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorFalling:    lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorHUD:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorHUDValue:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorWarning:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
}

// cursorStyle highlights the keyboard cursor cell.
var cursorStyle = lipgloss.NewStyle().Reverse(true)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, -1, -1)
}

// renderScreen is RenderScreen with one cell drawn reversed.
func renderScreen(s *core.Screen, cx, cy int) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			if x == cx && y == cy {
				cell := s.GetCell(x, y)
				sb.WriteString(cursorStyle.Inherit(styleFor(cell.Color)).Render(string(cell.Rune)))
				x++
				continue
			}

			startColor := s.GetCell(x, y).Color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor || (x == cx && y == cy) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}
