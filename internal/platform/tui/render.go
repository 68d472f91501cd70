package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/slidelink/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
// A nil renderer uses the lipgloss default.
func RenderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[core.Style]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Style

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Style != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(r, styles, start).Render(run.String()))
		}
	}
	return sb.String()
}

func styleFor(r *lipgloss.Renderer, cache map[core.Style]lipgloss.Style, st core.Style) lipgloss.Style {
	if ls, ok := cache[st]; ok {
		return ls
	}
	ls := r.NewStyle()
	if st.FG != "" {
		ls = ls.Foreground(lipgloss.Color(st.FG))
	}
	if st.BG != "" {
		ls = ls.Background(lipgloss.Color(st.BG))
	}
	cache[st] = ls
	return ls
}
