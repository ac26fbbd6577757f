package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// canvas normalises s to exactly height lines, each padded or cut to width
// cells.
func canvas(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		lines[i] = fit(line, width)
	}
	return lines
}

// fit pads or truncates line to exactly width cells.
func fit(line string, width int) string {
	w := ansi.StringWidth(line)
	switch {
	case w > width:
		return ansi.Truncate(line, width, "")
	case w < width:
		return line + strings.Repeat(" ", width-w)
	default:
		return line
	}
}

// overlay draws block over bg with its top-left cell at (x, y). Parts of the
// block outside bg are clipped.
func overlay(bg []string, block string, x, y int) {
	if len(bg) == 0 {
		return
	}
	width := ansi.StringWidth(bg[0])

	for i, line := range strings.Split(block, "\n") {
		row := y + i
		if row < 0 || row >= len(bg) {
			continue
		}

		col := x
		if col < 0 {
			line = ansi.TruncateLeft(line, -col, "")
			col = 0
		}
		if col >= width {
			continue
		}
		lw := ansi.StringWidth(line)
		if col+lw > width {
			line = ansi.Truncate(line, width-col, "")
			lw = width - col
		}

		under := bg[row]
		left := ansi.Truncate(under, col, "")
		right := ansi.TruncateLeft(under, col+lw, "")
		bg[row] = left + line + right
	}
}
