package wm

// Surface is the rendering substrate the controller drives. The controller
// owns all geometry decisions; the surface just reflects them.
type Surface interface {
	// ApplyRect positions the surface at the given rectangle.
	ApplyRect(r Rect)
	// SetStackOrder sets the surface's stacking index. Higher is frontmost.
	SetStackOrder(z int64)
}

// GestureHost receives gesture-suppression toggles while an interaction is in
// progress. On a browser-like host this forces touch-action: none so pointer
// motion is not interpreted as scrolling or pinch-zoom; on hosts without
// native gestures it can be a no-op.
type GestureHost interface {
	SetGesturesSuppressed(suppressed bool)
}
