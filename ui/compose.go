package ui

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// Wallpaper renders the desktop background at the given size.
func Wallpaper(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := DesktopStyle.Render(strings.Repeat(" ", cols))
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// PlaceOverlay pastes fg over bg with fg's top-left corner at cell (x, y).
// Both strings may contain ANSI styling; widths are measured in printable
// cells. Parts of fg outside bg are clipped.
func PlaceOverlay(x, y int, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")
	if x < 0 {
		for i := range fgLines {
			fgLines[i] = cutLeft(fgLines[i], -x)
		}
		x = 0
	}

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fi := i - y
		if fi < 0 || fi >= len(fgLines) {
			b.WriteString(bgLine)
			continue
		}
		fgLine := fgLines[fi]
		fgWidth := ansi.PrintableRuneWidth(fgLine)
		bgWidth := ansi.PrintableRuneWidth(bgLine)
		if x >= bgWidth || fgWidth == 0 {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			b.WriteString(left)
			pos = ansi.PrintableRuneWidth(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}
		b.WriteString(fgLine)
		pos += fgWidth
		if right := cutLeft(bgLine, pos); right != "" {
			b.WriteString(right)
		}
	}
	return b.String()
}

// cutLeft drops the first cutWidth printable cells of s, preserving any ANSI
// sequence that was active at the cut point.
func cutLeft(s string, cutWidth int) string {
	var (
		pos     int
		isAnsi  bool
		pending bytes.Buffer
		out     bytes.Buffer
	)
	for _, c := range s {
		var w int
		if c == ansi.Marker || isAnsi {
			isAnsi = true
			pending.WriteRune(c)
			if ansi.IsTerminator(c) {
				isAnsi = false
				if bytes.HasSuffix(pending.Bytes(), []byte("[0m")) {
					pending.Reset()
				}
			}
		} else {
			w = runewidth.RuneWidth(c)
		}
		if pos >= cutWidth {
			if out.Len() == 0 && pending.Len() > 0 {
				out.Write(pending.Bytes())
				pending.Reset()
			}
			out.WriteRune(c)
		}
		pos += w
	}
	return out.String()
}

// padLine pads or truncates a styled line to exactly width printable cells.
func padLine(line string, width int) string {
	w := ansi.PrintableRuneWidth(line)
	switch {
	case w > width:
		return truncate.String(line, uint(width))
	case w < width:
		return line + strings.Repeat(" ", width-w)
	}
	return line
}

// fitBlock pads or truncates a multi-line block to exactly width x height
// printable cells.
func fitBlock(block string, width, height int) string {
	lines := strings.Split(block, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i := range lines {
		lines[i] = padLine(lines[i], width)
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// Center places block in the middle of a cols x rows area, for modals.
func Center(cols, rows int, block string) (x, y int) {
	w, h := lipgloss.Size(block)
	x = (cols - w) / 2
	y = (rows - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
