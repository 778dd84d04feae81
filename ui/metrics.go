package ui

import (
	"math"

	"xpdesk/wm"
)

// The window controller works in a virtual pixel space; the terminal works in
// cells. One cell maps to a fixed 8x16 pixel block, so pointer math stays in
// pixels and only rendering and hit testing convert.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Screen is the terminal surface seen as a pixel viewport.
type Screen struct {
	Cols int
	Rows int
}

// Size reports the viewport size in pixels.
func (s Screen) Size() (w, h float64) {
	return float64(s.Cols * CellWidth), float64(s.Rows * CellHeight)
}

// PixelPoint converts a cell position to the pixel at its center, which is
// what pointer events feed to the controller.
func PixelPoint(col, row int) (x, y float64) {
	return float64(col)*CellWidth + CellWidth/2, float64(row)*CellHeight + CellHeight/2
}

// CellRect converts a pixel rect to cell coordinates, rounding positions to
// the nearest cell and keeping at least one cell in each dimension.
func CellRect(r wm.Rect) (col, row, cols, rows int) {
	col = int(math.Round(r.Left / CellWidth))
	row = int(math.Round(r.Top / CellHeight))
	cols = int(math.Round(r.Width / CellWidth))
	rows = int(math.Round(r.Height / CellHeight))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return col, row, cols, rows
}
