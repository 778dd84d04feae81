// Package wm implements the overlay window controller: a state machine over
// one rectangular surface with drag, edge/corner resize, maximize, minimize,
// restore, stacking order, and session persistence of the normal rectangle.
//
// The controller is substrate-independent: it drives a Surface and reads a
// Viewport, so it can be exercised directly in tests. It is single-threaded
// by contract; all methods must be called from the host's event loop.
package wm

import (
	"encoding/json"
	"math"
	"strconv"

	"xpdesk/log"
	"xpdesk/store"
)

// Session store keys.
const (
	keyRect = "xpwin:rect"
	keyMax  = "xpwin:isMax"
	keyMin  = "xpwin:isMin"
	keyZTop = "xpwin:zTop"
)

type sessionKind int

const (
	sessionDrag sessionKind = iota
	sessionResize
)

// session is the transient record of an in-progress drag or resize. At most
// one exists at a time, keyed by the pointer that started it.
type session struct {
	kind    sessionKind
	pointer PointerID
	startX  float64
	startY  float64
	start   Rect
	dir     Direction
}

// Controller is the window state machine. See the package comment.
type Controller struct {
	surface  Surface
	viewport Viewport
	store    store.Store
	gestures *Suppressor

	rect      Rect // rectangle currently applied to the surface
	normal    Rect // last rectangle while neither maximized nor minimized
	maximized bool
	minimized bool

	zTop int64
	sess *session
}

// New builds a controller bound to surface and viewport, restores any state
// persisted in st, and applies the resulting rectangle before returning.
// A corrupt or absent saved rectangle falls back to the computed initial
// placement.
func New(surface Surface, viewport Viewport, st store.Store, host GestureHost) *Controller {
	c := &Controller{
		surface:  surface,
		viewport: viewport,
		store:    st,
		gestures: NewSuppressor(host),
	}

	vw, vh := viewport.Size()
	c.normal = c.loadRect(vw, vh)
	c.maximized = c.loadFlag(keyMax)
	c.minimized = c.loadFlag(keyMin)
	if c.maximized && c.minimized {
		// Both flags set can only come from a corrupted store. Maximized wins.
		c.minimized = false
	}
	c.zTop = c.loadZTop()

	// Replay of persisted state: mode entry must not re-capture the normal
	// rectangle that was just loaded.
	switch {
	case c.maximized:
		c.applyRect(Rect{Left: 0, Top: 0, Width: vw, Height: vh})
	case c.minimized:
		c.setRect(DockRect(vw, vh))
	default:
		c.applyRect(c.normal)
	}
	surface.SetStackOrder(c.zTop)

	return c
}

func (c *Controller) loadRect(vw, vh float64) Rect {
	raw, ok := c.store.Get(keyRect)
	if !ok {
		return InitialRect(vw, vh)
	}
	var r Rect
	if err := json.Unmarshal([]byte(raw), &r); err != nil || r.Width <= 0 || r.Height <= 0 {
		log.WarningLog.Printf("ignoring unusable saved window rect %q: %v", raw, err)
		return InitialRect(vw, vh)
	}
	return r
}

func (c *Controller) loadFlag(key string) bool {
	v, _ := c.store.Get(key)
	return v == "1"
}

func (c *Controller) loadZTop() int64 {
	v, ok := c.store.Get(keyZTop)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.WarningLog.Printf("ignoring unusable saved stack counter %q", v)
		return 0
	}
	return n
}

// Rect returns the rectangle currently applied to the surface.
func (c *Controller) Rect() Rect { return c.rect }

// NormalRect returns the last normal-mode rectangle.
func (c *Controller) NormalRect() Rect { return c.normal }

// Maximized reports whether the window is maximized.
func (c *Controller) Maximized() bool { return c.maximized }

// Minimized reports whether the window is minimized to the dock.
func (c *Controller) Minimized() bool { return c.minimized }

// ZTop returns the current stacking counter.
func (c *Controller) ZTop() int64 { return c.zTop }

// Interacting reports whether a drag or resize session is active.
func (c *Controller) Interacting() bool { return c.sess != nil }

// Dragging reports whether the active session is a drag.
func (c *Controller) Dragging() bool {
	return c.sess != nil && c.sess.kind == sessionDrag
}

// setRect applies r to the surface verbatim.
func (c *Controller) setRect(r Rect) {
	c.rect = r
	c.surface.ApplyRect(r)
}

// applyRect applies r with width and height raised to the current
// viewport-derived minimums. Left and top are written verbatim. A saved
// rectangle narrower than today's minimum is widened here on restore, so a
// viewport shrink between sessions never leaves the window unusably small.
func (c *Controller) applyRect(r Rect) {
	vw, vh := c.viewport.Size()
	r.Width = math.Max(MinWidth(vw), r.Width)
	r.Height = math.Max(MinHeight(vh), r.Height)
	c.setRect(r)
}

// Raise promotes the window to the top of the stacking order and persists the
// counter. Call it for any press on the surface that does not start a drag or
// resize; BeginDrag and BeginResize raise on their own.
func (c *Controller) Raise() {
	c.zTop++
	c.surface.SetStackOrder(c.zTop)
	if err := c.store.Set(keyZTop, strconv.FormatInt(c.zTop, 10)); err != nil {
		log.WarningLog.Printf("failed to persist stack counter: %v", err)
	}
}

// BeginDrag starts a drag session from a primary press on the title bar.
// If the window is maximized it first pops out to the normal rectangle,
// positioned so the pointer keeps its fractional position within the window.
// Ignored while minimized (the dock is anchored) or while another session is
// active.
func (c *Controller) BeginDrag(p Pointer) {
	if !p.Primary || c.sess != nil || c.minimized {
		return
	}
	c.Raise()

	if c.maximized {
		vw, vh := c.viewport.Size()
		w := math.Max(MinWidth(vw), c.normal.Width)
		h := math.Max(MinHeight(vh), c.normal.Height)
		fx := 0.0
		if vw > 0 {
			fx = p.X / vw
		}
		fy := 0.0
		if vh > 0 {
			fy = clampFloat(p.Y/vh, 0, 1)
		}
		c.maximized = false
		c.setRect(Rect{
			Left:   p.X - fx*w,
			Top:    p.Y - fy*h,
			Width:  w,
			Height: h,
		})
		c.persistModes()
		log.InputTrace("drag pickup from maximized at (%.0f,%.0f)", p.X, p.Y)
	}

	c.sess = &session{
		kind:    sessionDrag,
		pointer: p.ID,
		startX:  p.X,
		startY:  p.Y,
		start:   c.rect,
	}
	c.gestures.Acquire()
}

// BeginResize starts a resize session from a primary press on one of the
// eight handles. Resizing is disabled entirely while maximized or minimized.
func (c *Controller) BeginResize(p Pointer, dir Direction) {
	if !p.Primary || c.sess != nil || c.maximized || c.minimized || dir == 0 {
		return
	}
	c.Raise()
	c.sess = &session{
		kind:    sessionResize,
		pointer: p.ID,
		startX:  p.X,
		startY:  p.Y,
		start:   c.rect,
		dir:     dir,
	}
	c.gestures.Acquire()
}

// PointerMove advances the active session. Samples from any pointer other
// than the one that started the session are ignored, which keeps the machine
// safe under multi-touch.
func (c *Controller) PointerMove(p Pointer) {
	if c.sess == nil || c.sess.pointer != p.ID {
		return
	}
	dx := p.X - c.sess.startX
	dy := p.Y - c.sess.startY

	if c.sess.kind == sessionDrag {
		// Raw deltas, no viewport clamping: the window may be dragged
		// partially or fully off-screen.
		c.setRect(Rect{
			Left:   c.sess.start.Left + dx,
			Top:    c.sess.start.Top + dy,
			Width:  c.rect.Width,
			Height: c.rect.Height,
		})
		return
	}

	c.setRect(c.resizedRect(dx, dy))
}

// resizedRect computes the session rectangle after a pointer delta. Edges
// move independently and corners compose both; the edge opposite the handle
// stays fixed, including when the minimum-size clamp engages.
func (c *Controller) resizedRect(dx, dy float64) Rect {
	vw, vh := c.viewport.Size()
	minW := MinWidth(vw)
	minH := MinHeight(vh)

	r := c.sess.start
	dir := c.sess.dir

	if dir.Has(East) {
		r.Width = math.Max(minW, c.sess.start.Width+dx)
	}
	if dir.Has(South) {
		r.Height = math.Max(minH, c.sess.start.Height+dy)
	}
	if dir.Has(West) {
		w := math.Max(minW, c.sess.start.Width-dx)
		r.Left = c.sess.start.Left + (c.sess.start.Width - w)
		r.Width = w
	}
	if dir.Has(North) {
		h := math.Max(minH, c.sess.start.Height-dy)
		r.Top = c.sess.start.Top + (c.sess.start.Height - h)
		r.Height = h
	}
	return r
}

// PointerUp completes the active session: the resulting rectangle becomes the
// new normal rectangle and is persisted, and gesture suppression is released.
func (c *Controller) PointerUp(p Pointer) {
	if c.sess == nil || c.sess.pointer != p.ID {
		return
	}
	c.sess = nil
	if !c.maximized && !c.minimized {
		c.normal = c.rect
	}
	c.persist()
	c.gestures.Release()
}

// PointerCancel tears the session down exactly like PointerUp; the last
// applied rectangle is what gets persisted.
func (c *Controller) PointerCancel(p Pointer) {
	c.PointerUp(p)
}

// Maximize fills the viewport. Entering from normal mode captures the current
// rectangle as the normal rectangle first.
func (c *Controller) Maximize() {
	if c.maximized {
		return
	}
	if !c.minimized {
		c.normal = c.rect
	}
	c.minimized = false
	c.maximized = true
	vw, vh := c.viewport.Size()
	c.applyRect(Rect{Left: 0, Top: 0, Width: vw, Height: vh})
	c.persist()
}

// Minimize snaps the window to the dock rectangle. Entering from normal mode
// captures the current rectangle as the normal rectangle first.
func (c *Controller) Minimize() {
	if c.minimized {
		return
	}
	if !c.maximized {
		c.normal = c.rect
	}
	c.maximized = false
	c.minimized = true
	vw, vh := c.viewport.Size()
	c.setRect(DockRect(vw, vh))
	c.persist()
}

// Restore re-applies the last normal rectangle. Calling it while already in
// normal mode is a no-op.
func (c *Controller) Restore() {
	if !c.maximized && !c.minimized {
		return
	}
	c.maximized = false
	c.minimized = false
	c.applyRect(c.normal)
	c.persist()
}

// ToggleMaximize is the maximize-button and title-bar-double-click action:
// it only ever moves between maximized and normal.
func (c *Controller) ToggleMaximize() {
	if c.maximized {
		c.Restore()
	} else {
		c.Maximize()
	}
}

// ToggleMinimize is the minimize-button action: it only ever moves between
// minimized and normal.
func (c *Controller) ToggleMinimize() {
	if c.minimized {
		c.Restore()
	} else {
		c.Minimize()
	}
}

// ViewportResized re-applies mode-dependent geometry after the viewport
// changed: maximized windows re-fill, minimized windows re-anchor to the new
// bottom-left. Normal-mode windows are left alone even if now off-screen.
func (c *Controller) ViewportResized() {
	vw, vh := c.viewport.Size()
	switch {
	case c.maximized:
		c.applyRect(Rect{Left: 0, Top: 0, Width: vw, Height: vh})
	case c.minimized:
		c.setRect(DockRect(vw, vh))
	}
	log.LayoutTrace("viewport resized to %.0fx%.0f", vw, vh)
}

// persist writes the normal rectangle and mode flags. Write failures degrade
// to in-memory state only; the session simply loses cross-reload persistence.
func (c *Controller) persist() {
	data, err := json.Marshal(c.normal)
	if err == nil {
		if err := c.store.Set(keyRect, string(data)); err != nil {
			log.WarningLog.Printf("failed to persist window rect: %v", err)
		}
	}
	c.persistModes()
}

func (c *Controller) persistModes() {
	if err := c.store.Set(keyMax, flagString(c.maximized)); err != nil {
		log.WarningLog.Printf("failed to persist maximized flag: %v", err)
	}
	if err := c.store.Set(keyMin, flagString(c.minimized)); err != nil {
		log.WarningLog.Printf("failed to persist minimized flag: %v", err)
	}
}

func flagString(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// ResetKeys removes all persisted window state from st. Used by the reset
// command.
func ResetKeys(st store.Store) error {
	for _, k := range []string{keyRect, keyMax, keyMin, keyZTop} {
		if err := st.Delete(k); err != nil {
			return err
		}
	}
	return nil
}
