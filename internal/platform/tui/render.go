package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bear-run/internal/core"
)

// styleCache maps colors to lipgloss styles. The palette blends
// continuously at dusk, so styles are built on first use.
type styleCache map[core.Color]lipgloss.Style

// maxCachedStyles bounds the cache across a long night ramp.
const maxCachedStyles = 4096

// Renderer converts Screen buffers to styled strings for one terminal.
type Renderer struct {
	lg     *lipgloss.Renderer
	styles styleCache
}

// NewRenderer creates a renderer for lg's color profile. A nil lg uses
// the local terminal.
func NewRenderer(lg *lipgloss.Renderer) *Renderer {
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	return &Renderer{lg: lg, styles: styleCache{}}
}

// style returns the foreground style for col.
func (r *Renderer) style(col core.Color) lipgloss.Style {
	if s, ok := r.styles[col]; ok {
		return s
	}
	s := r.lg.NewStyle()
	if col.Set {
		s = s.Foreground(lipgloss.Color(col.Hex()))
	}
	r.styles[col] = s
	return s
}

// NewStyle returns an unstyled style bound to this terminal.
func (r *Renderer) NewStyle() lipgloss.Style {
	return r.lg.NewStyle()
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (r *Renderer) Render(s *core.Screen) string {
	if len(r.styles) > maxCachedStyles {
		r.styles = styleCache{}
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(r.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
