package ui

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xpdesk/wm"
)

func TestScreenSize(t *testing.T) {
	w, h := Screen{Cols: 100, Rows: 40}.Size()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 640.0, h)
}

func TestPixelPointIsCellCenter(t *testing.T) {
	x, y := PixelPoint(10, 5)
	assert.Equal(t, 84.0, x)
	assert.Equal(t, 88.0, y)
}

func TestCellRectRounding(t *testing.T) {
	col, row, cols, rows := CellRect(wm.Rect{Left: 100, Top: 64, Width: 360, Height: 200})
	assert.Equal(t, 13, col, "100/8 rounds to 13")
	assert.Equal(t, 4, row)
	assert.Equal(t, 45, cols)
	assert.Equal(t, 13, rows, "200/16 rounds to 13")
}

func TestCellRectMinimumOneCell(t *testing.T) {
	_, _, cols, rows := CellRect(wm.Rect{Width: 1, Height: 1})
	assert.Equal(t, 1, cols)
	assert.Equal(t, 1, rows)
}

func newTestWindow() *Window {
	w := &Window{Title: "XP Pool"}
	// 20x10 cells at cell (4, 2).
	w.ApplyRect(wm.Rect{Left: 32, Top: 32, Width: 160, Height: 160})
	return w
}

func TestHitTestRegions(t *testing.T) {
	w := newTestWindow()

	tests := []struct {
		name   string
		x, y   int
		region Region
		dir    wm.Direction
	}{
		{name: "outside left", x: 3, y: 5, region: RegionNone},
		{name: "outside below", x: 10, y: 12, region: RegionNone},
		{name: "top edge", x: 10, y: 2, region: RegionResize, dir: wm.DirN},
		{name: "bottom edge", x: 10, y: 11, region: RegionResize, dir: wm.DirS},
		{name: "left edge", x: 4, y: 6, region: RegionResize, dir: wm.DirW},
		{name: "right edge", x: 23, y: 6, region: RegionResize, dir: wm.DirE},
		{name: "top-left corner", x: 4, y: 2, region: RegionResize, dir: wm.DirNW},
		{name: "top-right corner", x: 23, y: 2, region: RegionResize, dir: wm.DirNE},
		{name: "bottom-left corner", x: 4, y: 11, region: RegionResize, dir: wm.DirSW},
		{name: "bottom-right corner", x: 23, y: 11, region: RegionResize, dir: wm.DirSE},
		{name: "title bar", x: 8, y: 3, region: RegionTitleBar},
		{name: "divider row counts as title bar", x: 8, y: 4, region: RegionTitleBar},
		{name: "close button", x: 22, y: 3, region: RegionCloseButton},
		{name: "maximize button", x: 20, y: 3, region: RegionMaximizeButton},
		{name: "minimize button", x: 18, y: 3, region: RegionMinimizeButton},
		{name: "content", x: 10, y: 7, region: RegionContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, dir := w.HitTest(tt.x, tt.y)
			assert.Equal(t, tt.region, region)
			assert.Equal(t, tt.dir, dir)
		})
	}
}

func TestHitTestCompactWindow(t *testing.T) {
	w := &Window{Title: "XP Pool"}
	w.ApplyRect(wm.DockRect(1280, 800))

	col, row, cols, _ := w.CellRect()
	region, _ := w.HitTest(col+1, row)
	assert.Equal(t, RegionTitleBar, region, "every dock cell restores")
	region, _ = w.HitTest(col+cols, row)
	assert.Equal(t, RegionNone, region)
}

func TestViewShape(t *testing.T) {
	w := newTestWindow()
	out := w.View("hello", false)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 10, "view spans the window's cell height")
	for i, line := range lines {
		assert.Equal(t, 20, ansi.PrintableRuneWidth(line), "line %d", i)
	}
	assert.Contains(t, out, "XP Pool")
	assert.Contains(t, out, GlyphClose)
	assert.Contains(t, out, "hello")
}

func TestViewMaximizedShowsRestoreGlyph(t *testing.T) {
	w := newTestWindow()
	assert.Contains(t, w.View("", true), GlyphRestore)
	assert.NotContains(t, w.View("", true), GlyphMaximize)
}

func TestDockView(t *testing.T) {
	w := &Window{Title: "XP Pool"}
	w.ApplyRect(wm.DockRect(1280, 800))
	out := w.View("ignored", false)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, 45, ansi.PrintableRuneWidth(lines[0]))
	assert.Contains(t, out, "XP Pool")
	assert.NotContains(t, out, "ignored")
}

func TestStackOrderRoundTrip(t *testing.T) {
	w := &Window{}
	w.SetStackOrder(12)
	assert.Equal(t, int64(12), w.StackOrder())
}
