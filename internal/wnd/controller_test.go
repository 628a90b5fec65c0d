package wnd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/ui/pointer"
)

type recorder struct {
	events []Event
}

func (r *recorder) record(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	var kinds []EventKind
	for _, e := range r.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

func (r *recorder) last() Event {
	return r.events[len(r.events)-1]
}

func newDesktop(rect layout.Rectangle) (doc, win *node.Node) {
	doc = node.NewDocument(800, 600)
	win = node.New("window", rect)
	doc.AppendChild(win)
	return doc, win
}

func fixedBounds() Viewport {
	return desktop
}

func mouse(doc *node.Node, t node.EventType, x, y int) *node.Event {
	e := &node.Event{Type: t, X: x, Y: y, Button: node.ButtonPrimary}
	doc.Dispatch(e)
	return e
}

func touch(doc *node.Node, t node.EventType, id, x, y int) {
	doc.Dispatch(&node.Event{Type: t, Touches: []node.Touch{{ID: id, X: x, Y: y}}})
}

func assertNoGestureListeners(t *testing.T, doc *node.Node) {
	t.Helper()
	for _, typ := range []node.EventType{node.MouseMove, node.MouseUp, node.TouchMove, node.TouchEnd, node.KeyDown, node.KeyUp} {
		assert.Zero(t, doc.ListenerCount(typ), "%s listeners left", typ)
	}
}

func TestEnableResize_CreatesHandles(t *testing.T) {
	tests := []struct {
		name string
		opts ResizeOptions
		want int
	}{
		{"all handles", ResizeOptions{}, 8},
		{"corners only", ResizeOptions{CornerOnly: true}, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, win := newDesktop(layout.Rect(100, 100, 200, 162))
			detach := EnableResize(win, fixedBounds, nil, pointer.NewKeys(), tc.opts)

			var boxes []*node.Node
			for _, child := range win.Children() {
				if child.Class == ResizeBoxClass {
					boxes = append(boxes, child)
				}
			}
			require.Len(t, boxes, tc.want)
			for _, box := range boxes {
				assert.NotEmpty(t, box.Cursor)
				if tc.opts.CornerOnly {
					assert.Contains(t, []string{"right-bottom", "left-bottom", "right-top", "left-top"}, box.Name[len("resize-"):])
				}
			}

			detach()
			assert.Empty(t, win.Children())
		})
	}
}

func TestEnableResize_CornerWithAspectLock(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	keys := pointer.NewKeys()
	keys.Press(pointer.ShiftLeft)
	rec := &recorder{}
	EnableResize(win, fixedBounds, rec.record, keys, ResizeOptions{})

	mouse(doc, node.MouseDown, 300, 260)
	mouse(doc, node.MouseMove, 500, 298)

	assert.Equal(t, layout.Rect(100, 100, 400, 300), win.Rect)
	assert.InDelta(t, 400, rec.last().Size.Width, epsilon)
	assert.InDelta(t, 288, rec.last().Size.Height, epsilon)

	mouse(doc, node.MouseMove, 790, 298)
	assert.Equal(t, layout.Rect(100, 100, 667, 500), win.Rect)

	mouse(doc, node.MouseUp, 790, 298)
	assert.Equal(t, []EventKind{ResizeBegin, ResizeMove, ResizeMove, ResizeEnd}, rec.kinds())
	assert.InDelta(t, 488, rec.last().Size.Height, epsilon)
	assertNoGestureListeners(t, doc)
}

func TestEnableResize_AspectLockKeepsOppositeCornerCell(t *testing.T) {
	doc, win := newDesktop(layout.Rect(300, 300, 200, 162))
	keys := pointer.NewKeys()
	keys.Press(pointer.ShiftLeft)
	EnableResize(win, fixedBounds, nil, keys, ResizeOptions{})

	mouse(doc, node.MouseDown, 300, 300)
	mouse(doc, node.MouseMove, 102, 250)

	assert.Equal(t, layout.Rect(102, 164, 398, 298), win.Rect)
	assert.Equal(t, layout.Pos(500, 462), win.Rect.Max)
}

func TestEnableResize_IgnoresPressDuringGesture(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	rec := &recorder{}
	EnableResize(win, fixedBounds, rec.record, pointer.NewKeys(), ResizeOptions{})

	mouse(doc, node.MouseDown, 300, 260)
	mouse(doc, node.MouseMove, 320, 280)
	// the top-left handle of the grown window
	mouse(doc, node.MouseDown, 100, 100)
	mouse(doc, node.MouseMove, 340, 290)
	assert.Equal(t, layout.Rect(100, 100, 240, 192), win.Rect)

	mouse(doc, node.MouseUp, 340, 290)
	assert.Equal(t, []EventKind{ResizeBegin, ResizeMove, ResizeMove, ResizeEnd}, rec.kinds())
	assertNoGestureListeners(t, doc)

	mouse(doc, node.MouseDown, 100, 100)
	mouse(doc, node.MouseUp, 100, 100)
	assert.Equal(t, []EventKind{ResizeBegin, ResizeMove, ResizeMove, ResizeEnd, ResizeBegin, ResizeEnd}, rec.kinds())
}

func TestEnableResize_MinimumShiftsOppositeEdge(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 80, 72))
	rec := &recorder{}
	EnableResize(win, fixedBounds, rec.record, pointer.NewKeys(), ResizeOptions{})

	mouse(doc, node.MouseDown, 100, 130)
	mouse(doc, node.MouseMove, 120, 130)

	assert.Equal(t, layout.Rect(120, 100, 80, 72), win.Rect)
	assert.Equal(t, Size{Width: 80, Height: 60}, rec.last().Size)
}

func TestEnableResize_ModifierReplaysLastPointer(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	keys := pointer.NewKeys()
	rec := &recorder{}
	EnableResize(win, fixedBounds, rec.record, keys, ResizeOptions{})

	mouse(doc, node.MouseDown, 300, 260)
	mouse(doc, node.MouseMove, 500, 298)
	assert.Equal(t, layout.Rect(100, 100, 400, 200), win.Rect)

	keys.Press(pointer.ShiftRight)
	doc.Dispatch(&node.Event{Type: node.KeyDown, Code: pointer.ShiftRight})
	assert.Equal(t, layout.Rect(100, 100, 400, 300), win.Rect)

	keys.Release(pointer.ShiftRight)
	doc.Dispatch(&node.Event{Type: node.KeyUp, Code: pointer.ShiftRight})
	assert.Equal(t, layout.Rect(100, 100, 400, 200), win.Rect)

	mouse(doc, node.MouseUp, 500, 298)
	assertNoGestureListeners(t, doc)

	doc.Dispatch(&node.Event{Type: node.KeyDown, Code: pointer.ShiftLeft})
	assert.Equal(t, ResizeEnd, rec.last().Kind)
}

func TestEnableResize_ModifierBeforeFirstMove(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	keys := pointer.NewKeys()
	EnableResize(win, fixedBounds, nil, keys, ResizeOptions{})

	mouse(doc, node.MouseDown, 300, 260)
	keys.Press(pointer.ShiftLeft)
	doc.Dispatch(&node.Event{Type: node.KeyDown, Code: pointer.ShiftLeft})

	assert.Equal(t, layout.Rect(100, 100, 216, 162), win.Rect)
}

func TestEnableResize_BoundsQueriedPerMove(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	vp := desktop
	calls := 0
	bounds := func() Viewport {
		calls++
		return vp
	}
	EnableResize(win, bounds, nil, pointer.NewKeys(), ResizeOptions{})

	mouse(doc, node.MouseDown, 300, 260)
	mouse(doc, node.MouseMove, 350, 280)
	vp = Viewport{Width: 400, Height: 300}
	mouse(doc, node.MouseMove, 500, 298)

	assert.Equal(t, 2, calls)
	assert.Equal(t, layout.Rect(100, 100, 300, 200), win.Rect)
}

func TestEnableResize_PressStopsPropagation(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	rec := &recorder{}
	EnableResize(win, fixedBounds, rec.record, pointer.NewKeys(), ResizeOptions{})
	reached := 0
	doc.AddListener(node.MouseDown, func(*node.Event) { reached++ })

	mouse(doc, node.MouseDown, 300, 260)
	assert.Zero(t, reached)
	mouse(doc, node.MouseUp, 300, 260)

	mouse(doc, node.MouseDown, 150, 130)
	assert.Equal(t, 1, reached)
	assert.Equal(t, []EventKind{ResizeBegin, ResizeEnd}, rec.kinds())
}

func TestEnableResize_IgnoresNonPrimaryInput(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	rec := &recorder{}
	EnableResize(win, fixedBounds, rec.record, pointer.NewKeys(), ResizeOptions{})

	doc.Dispatch(&node.Event{Type: node.MouseDown, X: 300, Y: 260, Button: node.ButtonSecondary})
	touch(doc, node.TouchStart, 1, 300, 260)

	assert.Empty(t, rec.events)
	assertNoGestureListeners(t, doc)
}

func TestEnableResize_Touch(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	rec := &recorder{}
	EnableResize(win, fixedBounds, rec.record, pointer.NewKeys(), ResizeOptions{})

	touch(doc, node.TouchStart, 0, 300, 260)
	touch(doc, node.TouchMove, 0, 350, 300)
	touch(doc, node.TouchEnd, 0, 350, 300)

	assert.Equal(t, layout.Rect(100, 100, 250, 202), win.Rect)
	assert.Equal(t, []EventKind{ResizeBegin, ResizeMove, ResizeEnd}, rec.kinds())
}

func TestEnableResize_TeardownSurvivesPanickingCallback(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	onEvent := func(e Event) {
		if e.Kind == ResizeEnd {
			panic("boom")
		}
	}
	EnableResize(win, fixedBounds, onEvent, pointer.NewKeys(), ResizeOptions{})

	mouse(doc, node.MouseDown, 300, 260)
	assert.Panics(t, func() { mouse(doc, node.MouseUp, 300, 260) })
	assertNoGestureListeners(t, doc)
}

func TestEnableResize_Detach(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 162))
	rec := &recorder{}
	detach := EnableResize(win, fixedBounds, rec.record, pointer.NewKeys(), ResizeOptions{})

	detach()
	detach()
	mouse(doc, node.MouseDown, 300, 260)

	assert.Empty(t, rec.events)
}

func TestEnableDrag_MovesWithinViewport(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 100))
	grip := node.New("title", layout.Rect(0, 0, 200, 1))
	win.AppendChild(grip)
	rec := &recorder{}
	EnableDrag(win, grip, fixedBounds, rec.record)

	press := mouse(doc, node.MouseDown, 150, 100)
	assert.True(t, press.DefaultPrevented())

	mouse(doc, node.MouseMove, 400, 300)
	assert.Equal(t, layout.Rect(350, 300, 200, 100), win.Rect)
	assert.Equal(t, Position{X: 350, Y: 300}, rec.last().Position)

	mouse(doc, node.MouseMove, -100, -100)
	assert.Equal(t, layout.Pos(0, 0), win.Rect.Min)

	mouse(doc, node.MouseMove, 5000, 5000)
	assert.Equal(t, layout.Pos(600, 500), win.Rect.Min)

	mouse(doc, node.MouseUp, 5000, 5000)
	assert.Equal(t, []EventKind{DragBegin, DragMove, DragMove, DragMove, DragEnd}, rec.kinds())
	assertNoGestureListeners(t, doc)
}

func TestEnableDrag_IgnoresPressDuringGesture(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 100))
	rec := &recorder{}
	EnableDrag(win, win, fixedBounds, rec.record)

	mouse(doc, node.MouseDown, 150, 100)
	mouse(doc, node.MouseMove, 160, 110)
	mouse(doc, node.MouseDown, 250, 150)
	mouse(doc, node.MouseMove, 170, 120)
	assert.Equal(t, layout.Pos(120, 120), win.Rect.Min)

	mouse(doc, node.MouseUp, 170, 120)
	assert.Equal(t, []EventKind{DragBegin, DragMove, DragMove, DragEnd}, rec.kinds())

	mouse(doc, node.MouseDown, 170, 120)
	mouse(doc, node.MouseUp, 170, 120)
	assert.Equal(t, []EventKind{DragBegin, DragMove, DragMove, DragEnd, DragBegin, DragEnd}, rec.kinds())
	assertNoGestureListeners(t, doc)
}

func TestEnableDrag_ClampFollowsBounds(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 100))
	vp := desktop
	EnableDrag(win, win, func() Viewport { return vp }, nil)

	mouse(doc, node.MouseDown, 100, 100)
	vp = Viewport{Width: 500, Height: 400}
	mouse(doc, node.MouseMove, 700, 700)
	assert.Equal(t, layout.Pos(300, 300), win.Rect.Min)

	vp = Viewport{Width: 150, Height: 50}
	mouse(doc, node.MouseMove, 700, 700)
	assert.Equal(t, layout.Pos(0, 0), win.Rect.Min)
}

func TestEnableDrag_Touch(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 100))
	rec := &recorder{}
	EnableDrag(win, win, fixedBounds, rec.record)

	touch(doc, node.TouchStart, 1, 150, 100)
	assert.Empty(t, rec.events)

	touch(doc, node.TouchStart, 0, 150, 100)
	touch(doc, node.TouchMove, 0, 200, 150)
	touch(doc, node.TouchEnd, 0, 200, 150)

	assert.Equal(t, layout.Pos(150, 150), win.Rect.Min)
	assert.Equal(t, []EventKind{DragBegin, DragMove, DragEnd}, rec.kinds())
}

func TestEnableDrag_IgnoresOtherButtonsAndDetaches(t *testing.T) {
	doc, win := newDesktop(layout.Rect(100, 100, 200, 100))
	rec := &recorder{}
	detach := EnableDrag(win, win, fixedBounds, rec.record)

	doc.Dispatch(&node.Event{Type: node.MouseDown, X: 150, Y: 100, Button: node.ButtonAuxiliary})
	assert.Empty(t, rec.events)

	detach()
	mouse(doc, node.MouseDown, 150, 100)
	assert.Empty(t, rec.events)
	assertNoGestureListeners(t, doc)
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "DRAG_BEGIN", DragBegin.String())
	assert.Equal(t, "RESIZE_END", ResizeEnd.String())
	assert.Equal(t, "UNKNOWN", EventKind(42).String())
}
