package wm

// Rect is a window rectangle in pixels, relative to the viewport origin.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the absolute position of the right edge.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the absolute position of the bottom edge.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Viewport reports the current size of the coordinate space the window lives
// in. Implementations must return the live size on every call; the controller
// never caches it.
type Viewport interface {
	Size() (width, height float64)
}

// Geometry constants, in pixels.
const (
	// TitleBarHeight is the height of the window title bar.
	TitleBarHeight = 28

	minWidthFloor = 280
	minWidthCap   = 640
	minWidthFrac  = 0.90

	minHeightFloor = 220
	minHeightCap   = 520
	minHeightFrac  = 0.55

	dockWidth  = 360
	dockHeight = TitleBarHeight + 6
	dockMargin = 12

	initialTop        = 64
	initialWidthFrac  = 0.80
	initialWidthCap   = 1000
	initialHeightFrac = 0.60
	initialHeightCap  = 700
)

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MinWidth returns the minimum window width for a viewport of the given
// width. It is recomputed from the live viewport on every call because the
// viewport can change between calls.
func MinWidth(viewportWidth float64) float64 {
	return clampFloat(minWidthFrac*viewportWidth, minWidthFloor, minWidthCap)
}

// MinHeight returns the minimum window height for a viewport of the given
// height.
func MinHeight(viewportHeight float64) float64 {
	return clampFloat(minHeightFrac*viewportHeight, minHeightFloor, minHeightCap)
}

// DockRect returns the fixed rectangle used while minimized, anchored to the
// viewport bottom-left.
func DockRect(viewportWidth, viewportHeight float64) Rect {
	return Rect{
		Left:   dockMargin,
		Top:    viewportHeight - dockMargin - dockHeight,
		Width:  dockWidth,
		Height: dockHeight,
	}
}

// InitialRect returns the placement used when no saved rectangle exists:
// centered horizontally with a fixed top offset.
func InitialRect(viewportWidth, viewportHeight float64) Rect {
	w := clampFloat(initialWidthFrac*viewportWidth, MinWidth(viewportWidth), initialWidthCap)
	h := clampFloat(initialHeightFrac*viewportHeight, MinHeight(viewportHeight), initialHeightCap)
	return Rect{
		Left:   (viewportWidth - w) / 2,
		Top:    initialTop,
		Width:  w,
		Height: h,
	}
}
