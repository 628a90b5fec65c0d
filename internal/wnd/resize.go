package wnd

import (
	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/ui/pointer"
)

const (
	ResizeBoxClass = "resize-box"
	// ZResizeBox keeps handles above window content.
	ZResizeBox = 2000
)

// resizeSession holds the state of one resize gesture. Every move is
// computed from orig, never from the previously applied rectangle.
type resizeSession struct {
	handle   Handle
	opts     ResizeOptions
	orig     Rect
	original Size
	ofsX     float64
	ofsY     float64
	last     Rect
	hasLast  bool
	size     Size
}

func newResizeSession(h Handle, orig Rect, px, py float64, opts ResizeOptions) *resizeSession {
	return &resizeSession{
		handle:   h,
		opts:     opts,
		orig:     orig,
		original: Size{Width: orig.Width(), Height: orig.Height()},
		ofsX:     h.edgeX(orig) - px,
		ofsY:     h.edgeY(orig) - py,
		size:     opts.LogicalSize(orig),
	}
}

func (s *resizeSession) move(x, y float64, vp Viewport, aspect bool) Rect {
	s.last = PointerBox(s.handle, s.orig, x, y, s.ofsX, s.ofsY, vp)
	s.hasLast = true
	return ComputeResize(s.handle, s.last, s.original, aspect, vp, s.opts)
}

// replay recomputes the rectangle for the last pointer position, used when
// the aspect modifier changes without pointer movement.
func (s *resizeSession) replay(vp Viewport, aspect bool) Rect {
	box := s.orig
	if s.hasLast {
		box = s.last
	}
	return ComputeResize(s.handle, box, s.original, aspect, vp, s.opts)
}

type resizer struct {
	element *node.Node
	bounds  BoundsFunc
	onEvent EventFunc
	keys    KeyState
	opts    ResizeOptions
	session *resizeSession
}

// EnableResize attaches a hit box child to element for every active handle.
// Pressing one starts a resize gesture that follows the pointer until
// release. Holding either shift key locks the aspect ratio. The returned
// detach removes the hit boxes and their listeners.
func EnableResize(element *node.Node, bounds BoundsFunc, onEvent EventFunc, keys KeyState, opts ResizeOptions) (detach func()) {
	opts = opts.normalized()
	r := &resizer{
		element: element,
		bounds:  bounds,
		onEvent: onEvent,
		keys:    keys,
		opts:    opts,
	}
	var removers []func()
	for _, h := range Handles {
		if opts.CornerOnly && !h.IsCorner() {
			continue
		}
		box := &node.Node{
			Name:   "resize-" + h.Name(),
			Class:  ResizeBoxClass,
			Cursor: h.Cursor,
			Z:      ZResizeBox,
			Anchor: func(w, hh int) layout.Rectangle {
				return h.HitBox(w, hh, opts.HandleWidth)
			},
		}
		element.AppendChild(box)
		press := func(e *node.Event) { r.onPress(h, e) }
		removers = append(removers,
			box.AddListener(node.MouseDown, press),
			box.AddListener(node.TouchStart, press),
			box.Remove,
		)
	}
	return func() {
		for _, remove := range removers {
			remove()
		}
	}
}

func (r *resizer) viewport() Viewport {
	if r.bounds == nil {
		return Viewport{}
	}
	return r.bounds()
}

func (r *resizer) aspectLocked() bool {
	if r.keys == nil {
		return false
	}
	return r.keys.IsKeyHeld(pointer.ShiftLeft) || r.keys.IsKeyHeld(pointer.ShiftRight)
}

func (r *resizer) emit(e Event) {
	if r.onEvent != nil {
		r.onEvent(e)
	}
}

// onPress starts a gesture on handle h. Presses while a gesture of the
// element is running are ignored.
func (r *resizer) onPress(h Handle, e *node.Event) {
	if !pointer.IsPrimaryPress(e) || r.session != nil {
		return
	}
	e.StopPropagation()

	parent := r.element.Parent()
	orig := RectFrom(r.element.Rect)
	if parent != nil {
		orig = RectFrom(node.OffsetRect(parent, r.element))
	}
	px, py := pointer.PosIn(e, parent)
	s := newResizeSession(h, orig, float64(px), float64(py), r.opts)
	r.emit(Event{Kind: ResizeBegin})

	doc := r.element.Root()
	retrigger := func(*node.Event) {
		r.apply(s, s.replay(r.viewport(), r.aspectLocked()))
	}
	removeKeyUp := doc.AddListener(node.KeyUp, retrigger)
	removeKeyDown := doc.AddListener(node.KeyDown, retrigger)

	pointer.SetDragListener(doc, pointer.DragListener{
		Move: func(e *node.Event) {
			x, y := pointer.PosIn(e, parent)
			r.apply(s, s.move(float64(x), float64(y), r.viewport(), r.aspectLocked()))
		},
		Up: func(*node.Event) {
			defer func() {
				removeKeyUp()
				removeKeyDown()
				r.session = nil
			}()
			r.emit(Event{Kind: ResizeEnd, Size: s.size})
		},
	})
	r.session = s
}

func (r *resizer) apply(s *resizeSession, rect Rect) {
	r.element.SetRect(rect.Cells())
	s.size = r.opts.LogicalSize(rect)
	r.emit(Event{Kind: ResizeMove, Size: s.size})
}
