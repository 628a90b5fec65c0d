// Package wnd implements window chrome behaviour: moving a window by its
// grip, resizing it from eight handle zones with an optional locked aspect
// ratio, and transient submenus dismissed by an outside click.
package wnd

import (
	"math"

	"github.com/idursun/wndkit/internal/ui/layout"
)

// EventKind identifies a chrome lifecycle event reported to the host.
type EventKind int

const (
	DragBegin EventKind = iota
	DragMove
	DragEnd
	ResizeBegin
	ResizeMove
	ResizeEnd
)

func (k EventKind) String() string {
	switch k {
	case DragBegin:
		return "DRAG_BEGIN"
	case DragMove:
		return "DRAG_MOVE"
	case DragEnd:
		return "DRAG_END"
	case ResizeBegin:
		return "RESIZE_BEGIN"
	case ResizeMove:
		return "RESIZE_MOVE"
	case ResizeEnd:
		return "RESIZE_END"
	}
	return "UNKNOWN"
}

// Position is the payload of DragMove.
type Position struct {
	X float64
	Y float64
}

// Size is the payload of ResizeMove and ResizeEnd.
type Size struct {
	Width  float64
	Height float64
}

// Event is reported through EventFunc. Position is set for DragMove, Size
// for ResizeMove and ResizeEnd; both are zero otherwise.
type Event struct {
	Kind     EventKind
	Position Position
	Size     Size
}

type EventFunc func(e Event)

// Viewport is the size of the container windows live in.
type Viewport struct {
	Width  float64
	Height float64
}

// BoundsFunc returns the current container size. Controllers call it on
// every event since the container may change during a gesture.
type BoundsFunc func() Viewport

// KeyState answers whether a key, identified by its code, is held.
type KeyState interface {
	IsKeyHeld(code string) bool
}

// Rect is a window rectangle in parent relative coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func RectFrom(r layout.Rectangle) Rect {
	return Rect{
		Left:   float64(r.Min.X),
		Top:    float64(r.Min.Y),
		Right:  float64(r.Max.X),
		Bottom: float64(r.Max.Y),
	}
}

func (r Rect) Width() float64 {
	return r.Right - r.Left
}

func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Cells rounds each edge to the nearest cell boundary, so an edge that did
// not move stays where it was.
func (r Rect) Cells() layout.Rectangle {
	l, t := int(math.Round(r.Left)), int(math.Round(r.Top))
	rt, b := int(math.Round(r.Right)), int(math.Round(r.Bottom))
	return layout.Rect(l, t, rt-l, b-t)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
