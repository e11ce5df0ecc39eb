package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphRows = 3

// glyphs draws the clock characters three rows tall with half blocks.
// Digits are 3 cells wide, the colon 1.
var glyphs = map[rune][glyphRows]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {"▄█ ", " █ ", "▀▀▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {"▄", " ", "▀"},
}

// renderBigTime draws a clock string such as "27:00" or "120:00" in large
// glyphs. It falls back to a single bold line when the glyphs would not fit
// in width.
func renderBigTime(clock string, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)

	var rows [glyphRows]strings.Builder
	for _, ch := range clock {
		glyph, ok := glyphs[ch]
		if !ok {
			continue
		}
		for i := range rows {
			if rows[i].Len() > 0 {
				rows[i].WriteString(" ")
			}
			rows[i].WriteString(glyph[i])
		}
	}

	if lipgloss.Width(rows[0].String()) > width-4 {
		return style.Render(clock)
	}

	lines := make([]string, glyphRows)
	for i := range rows {
		lines[i] = style.Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}
