package wnd

import (
	"math"

	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/ui/pointer"
)

type dragSession struct {
	ofsX   float64
	ofsY   float64
	width  float64
	height float64
}

// at returns the element origin for a pointer at (x, y), kept inside vp.
func (s *dragSession) at(x, y float64, vp Viewport) Position {
	vw, vh := vp.limits()
	return Position{
		X: clamp(x+s.ofsX, 0, math.Max(math.Floor(vw-s.width), 0)),
		Y: clamp(y+s.ofsY, 0, math.Max(math.Floor(vh-s.height), 0)),
	}
}

type dragger struct {
	element *node.Node
	bounds  BoundsFunc
	onEvent EventFunc
	session *dragSession
}

// EnableDrag makes element movable by pressing grip. The element never
// leaves the viewport returned by bounds. The returned detach removes the
// grip listeners; a gesture already in progress runs to completion.
func EnableDrag(element, grip *node.Node, bounds BoundsFunc, onEvent EventFunc) (detach func()) {
	d := &dragger{element: element, bounds: bounds, onEvent: onEvent}
	removeDown := grip.AddListener(node.MouseDown, d.onPress)
	removeTouch := grip.AddListener(node.TouchStart, d.onPress)
	return func() {
		removeDown()
		removeTouch()
	}
}

func (d *dragger) emit(e Event) {
	if d.onEvent != nil {
		d.onEvent(e)
	}
}

func (d *dragger) viewport() Viewport {
	if d.bounds == nil {
		return Viewport{}
	}
	return d.bounds()
}

// onPress starts a gesture unless one is already running.
func (d *dragger) onPress(e *node.Event) {
	if !pointer.IsPrimaryPress(e) || d.session != nil {
		return
	}
	d.emit(Event{Kind: DragBegin})
	if e.Type == node.MouseDown {
		e.PreventDefault()
	}

	mx, my := pointer.PosIn(e, d.element)
	s := &dragSession{
		ofsX:   -float64(mx),
		ofsY:   -float64(my),
		width:  float64(d.element.Rect.Dx()),
		height: float64(d.element.Rect.Dy()),
	}
	parent := d.element.Parent()

	pointer.SetDragListener(d.element.Root(), pointer.DragListener{
		Move: func(e *node.Event) {
			x, y := pointer.PosIn(e, parent)
			pos := s.at(float64(x), float64(y), d.viewport())
			d.element.MoveTo(int(pos.X), int(pos.Y))
			d.emit(Event{Kind: DragMove, Position: pos})
		},
		Up: func(*node.Event) {
			defer func() { d.session = nil }()
			d.emit(Event{Kind: DragEnd})
		},
	})
	d.session = s
}
