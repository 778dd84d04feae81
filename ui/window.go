package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"xpdesk/wm"
)

// Region classifies where inside the window a cell lies, for routing pointer
// events.
type Region int

const (
	RegionNone Region = iota
	RegionTitleBar
	RegionMinimizeButton
	RegionMaximizeButton
	RegionCloseButton
	RegionContent
	RegionResize
)

// Title bar layout, in cells relative to the window's top-left corner.
// Row 0 is the border (a north resize zone), row 1 holds the title and the
// three buttons, row 2 is the divider.
const (
	titleRow     = 1
	dividerRow   = 2
	buttonStride = 2 // one glyph plus one gap
)

// Window renders one desktop window and answers hit tests against its chrome.
// It is the controller's render target: the controller pushes geometry and
// stacking through the wm.Surface methods and Window keeps the last values.
type Window struct {
	Title string

	rect wm.Rect
	z    int64
}

// ApplyRect implements wm.Surface.
func (w *Window) ApplyRect(r wm.Rect) { w.rect = r }

// SetStackOrder implements wm.Surface.
func (w *Window) SetStackOrder(z int64) { w.z = z }

// Rect returns the last applied pixel rect.
func (w *Window) Rect() wm.Rect { return w.rect }

// StackOrder returns the last applied stack order.
func (w *Window) StackOrder() int64 { return w.z }

// CellRect returns the window's geometry in cells.
func (w *Window) CellRect() (col, row, cols, rows int) {
	return CellRect(w.rect)
}

// compact windows (the minimized dock bar) have no chrome to hit or draw
func (w *Window) compact() bool {
	_, _, cols, rows := w.CellRect()
	return rows < 4 || cols < 10
}

// HitTest maps an absolute cell position to a window region. For resize
// regions the returned direction names the edge or corner being grabbed.
func (w *Window) HitTest(cellX, cellY int) (Region, wm.Direction) {
	col, row, cols, rows := w.CellRect()
	x, y := cellX-col, cellY-row
	if x < 0 || y < 0 || x >= cols || y >= rows {
		return RegionNone, 0
	}
	if w.compact() {
		return RegionTitleBar, 0
	}

	if x == 0 || y == 0 || x == cols-1 || y == rows-1 {
		var dir wm.Direction
		if y == 0 {
			dir |= wm.North
		}
		if y == rows-1 {
			dir |= wm.South
		}
		if x == 0 {
			dir |= wm.West
		}
		if x == cols-1 {
			dir |= wm.East
		}
		return RegionResize, dir
	}

	if y == titleRow {
		switch x {
		case cols - 2:
			return RegionCloseButton, 0
		case cols - 2 - buttonStride:
			return RegionMaximizeButton, 0
		case cols - 2 - 2*buttonStride:
			return RegionMinimizeButton, 0
		}
		return RegionTitleBar, 0
	}
	if y == dividerRow {
		return RegionTitleBar, 0
	}
	return RegionContent, 0
}

// View renders the window chrome around content at the window's current cell
// size. content is clipped and padded to the interior.
func (w *Window) View(content string, maximized bool) string {
	_, _, cols, rows := w.CellRect()
	if w.compact() {
		return w.dockView(cols, rows)
	}

	interiorW := cols - 2
	maxGlyph := GlyphMaximize
	if maximized {
		maxGlyph = GlyphRestore
	}
	buttons := GlyphMinimize + " " + maxGlyph + " " + GlyphClose
	title := runewidth.Truncate(" "+w.Title, interiorW-runewidth.StringWidth(buttons)-1, "…")
	gap := interiorW - runewidth.StringWidth(title) - runewidth.StringWidth(buttons)
	titleLine := TitleBarStyle.Render(padLine(title+strings.Repeat(" ", gap)+buttons, interiorW))

	divider := strings.Repeat("─", interiorW)
	body := fitBlock(content, interiorW, rows-4)

	return WindowBorderStyle.Render(titleLine + "\n" + divider + "\n" + body)
}

// dockView renders the minimized bar: title only, click anywhere to restore.
func (w *Window) dockView(cols, rows int) string {
	label := runewidth.Truncate(" "+w.Title+" ", cols, "…")
	lines := make([]string, rows)
	lines[0] = DockStyle.Render(padLine(label, cols))
	for i := 1; i < rows; i++ {
		lines[i] = DockStyle.Render(strings.Repeat(" ", cols))
	}
	return strings.Join(lines, "\n")
}
