package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal renders rows as coloured block characters, one column per cell.
type Terminal struct {
	styles []lipgloss.Style
	glyph  string
}

// NewTerminal builds a renderer for k states using the greyscale palette.
func NewTerminal(k int) *Terminal {
	palette := Palette(k)
	styles := make([]lipgloss.Style, len(palette))
	for i, c := range palette {
		hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
		styles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return &Terminal{styles: styles, glyph: "█"}
}

// Row renders a single row. Runs of equal cells share one styled segment.
func (t *Terminal) Row(row []uint8) string {
	if len(t.styles) == 0 || len(row) == 0 {
		return ""
	}
	last := len(t.styles) - 1
	var b strings.Builder
	for start := 0; start < len(row); {
		end := start + 1
		for end < len(row) && row[end] == row[start] {
			end++
		}
		style := t.styles[min(int(row[start]), last)]
		b.WriteString(style.Render(strings.Repeat(t.glyph, end-start)))
		start = end
	}
	return b.String()
}

// Grid renders rows separated by newlines.
func (t *Terminal) Grid(rows [][]uint8) string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = t.Row(row)
	}
	return strings.Join(lines, "\n")
}

// Status renders a dim one-line caption such as the time and run state.
func Status(format string, args ...any) string {
	return statusStyle.Render(fmt.Sprintf(format, args...))
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
