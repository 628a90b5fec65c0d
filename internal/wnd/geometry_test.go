package wnd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/idursun/wndkit/internal/ui/layout"
)

const epsilon = 1e-6

var desktop = Viewport{Width: 800, Height: 600}

func handleNamed(name string) Handle {
	for _, h := range Handles {
		if h.Name() == name {
			return h
		}
	}
	panic("no handle " + name)
}

func assertRect(t *testing.T, want, got Rect) {
	t.Helper()
	assert.InDelta(t, want.Left, got.Left, epsilon, "left of %v", got)
	assert.InDelta(t, want.Top, got.Top, epsilon, "top of %v", got)
	assert.InDelta(t, want.Right, got.Right, epsilon, "right of %v", got)
	assert.InDelta(t, want.Bottom, got.Bottom, epsilon, "bottom of %v", got)
}

func sizeOf(r Rect) Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

func TestResizeOptions_Defaults(t *testing.T) {
	o := ResizeOptions{MinWidth: -1, AspectRatio: 0}.normalized()
	assert.Equal(t, ResizeOptions{
		MinWidth:       DefaultMinWidth,
		MinHeight:      DefaultMinHeight,
		HandleWidth:    DefaultHandleWidth,
		TitleBarHeight: DefaultTitleBarHeight,
		AspectRatio:    DefaultAspectRatio,
	}, o)

	assert.Equal(t, Size{Width: 80, Height: 72}, ResizeOptions{}.MinSize())
	assert.Equal(t, Size{Width: 200, Height: 150}, ResizeOptions{}.LogicalSize(Rect{0, 0, 200, 162}))
}

func TestHandle_HitBox(t *testing.T) {
	tests := []struct {
		handle string
		want   [4]int
	}{
		{"right-bottom", [4]int{193, 155, 8, 8}},
		{"left-top", [4]int{-1, -1, 8, 8}},
		{"center-top", [4]int{8, -4, 184, 8}},
		{"center-bottom", [4]int{8, 155, 184, 8}},
		{"left-center", [4]int{-1, 8, 8, 146}},
	}
	for _, tc := range tests {
		t.Run(tc.handle, func(t *testing.T) {
			r := handleNamed(tc.handle).HitBox(200, 162, 8)
			assert.Equal(t, tc.want, [4]int{r.Min.X, r.Min.Y, r.Dx(), r.Dy()})
		})
	}
}

func TestComputeResize_CornerAspectKeepsLargerRectangle(t *testing.T) {
	orig := Rect{100, 100, 300, 262}
	box := PointerBox(handleNamed("right-bottom"), orig, 500, 300, 0, 0, desktop)

	got := ComputeResize(handleNamed("right-bottom"), box, sizeOf(orig), true, desktop, ResizeOptions{})

	assertRect(t, Rect{100, 100, 500, 400}, got)
}

func TestComputeResize_CornerAspectShrinksIntoViewport(t *testing.T) {
	orig := Rect{100, 100, 300, 262}
	box := PointerBox(handleNamed("right-bottom"), orig, 790, 300, 0, 0, desktop)

	got := ComputeResize(handleNamed("right-bottom"), box, sizeOf(orig), true, desktop, ResizeOptions{})

	assert.Equal(t, 100.0, got.Left)
	assert.Equal(t, 100.0, got.Top)
	assert.InDelta(t, 600, got.Bottom, epsilon)
	assert.InDelta(t, 100+500*DefaultAspectRatio, got.Right, epsilon)
	assert.InDelta(t, DefaultAspectRatio, got.Width()/got.Height(), epsilon)
}

func TestComputeResize_CornerAspectPinsOppositeCorner(t *testing.T) {
	orig := Rect{300, 300, 500, 462}
	h := handleNamed("left-top")
	box := PointerBox(h, orig, 0, 250, 0, 0, desktop)

	got := ComputeResize(h, box, sizeOf(orig), true, desktop, ResizeOptions{})

	assert.Equal(t, 500.0, got.Right)
	assert.Equal(t, 462.0, got.Bottom)
	assert.InDelta(t, DefaultAspectRatio, got.Width()/got.Height(), epsilon)
	assert.GreaterOrEqual(t, got.Left, 0.0)
	assert.GreaterOrEqual(t, got.Top, 0.0)
}

func TestComputeResize_EdgeAspectExpandsAroundCenter(t *testing.T) {
	orig := Rect{100, 100, 300, 262}
	h := handleNamed("center-bottom")
	box := PointerBox(h, orig, 0, 400, 0, 0, desktop)

	got := ComputeResize(h, box, sizeOf(orig), true, desktop, ResizeOptions{})

	assertRect(t, Rect{0, 100, 400, 400}, got)
}

func TestComputeResize_EdgeAspectShrinksBackIntoViewport(t *testing.T) {
	orig := Rect{600, 300, 780, 435}
	h := handleNamed("center-top")
	box := PointerBox(h, orig, 0, 0, 0, 0, desktop)

	got := ComputeResize(h, box, sizeOf(orig), true, desktop, ResizeOptions{})

	assert.InDelta(t, 580, got.Left, epsilon)
	assert.InDelta(t, 800, got.Right, epsilon)
	assert.InDelta(t, 270, got.Top, epsilon)
	assert.InDelta(t, 435, got.Bottom, epsilon)
	assert.InDelta(t, DefaultAspectRatio, got.Width()/got.Height(), epsilon)
}

func TestComputeResize_SideEdgeAspectCompensatesLeftAnchor(t *testing.T) {
	orig := Rect{200, 450, 400, 600}
	h := handleNamed("left-center")
	box := PointerBox(h, orig, 0, 0, 0, 0, desktop)

	got := ComputeResize(h, box, sizeOf(orig), true, desktop, ResizeOptions{})

	assert.InDelta(t, 400, got.Right, epsilon)
	assert.InDelta(t, 600, got.Bottom, epsilon)
	assert.LessOrEqual(t, got.Bottom, desktop.Height)
	assert.InDelta(t, DefaultAspectRatio, got.Width()/got.Height(), epsilon)
}

func TestComputeResize_MinimumExtendsOppositeEdge(t *testing.T) {
	tests := []struct {
		handle string
		x, y   float64
		want   Rect
	}{
		{"left-center", 120, 0, Rect{120, 100, 200, 172}},
		{"right-center", 160, 0, Rect{80, 100, 160, 172}},
		{"center-top", 0, 150, Rect{100, 150, 180, 222}},
		{"center-bottom", 0, 130, Rect{100, 58, 180, 130}},
	}
	orig := Rect{100, 100, 180, 172}
	for _, tc := range tests {
		t.Run(tc.handle, func(t *testing.T) {
			h := handleNamed(tc.handle)
			box := PointerBox(h, orig, tc.x, tc.y, 0, 0, desktop)
			assert.Equal(t, tc.want, ComputeResize(h, box, sizeOf(orig), false, desktop, ResizeOptions{}))
		})
	}
}

func TestComputeResize_NonOwnedEdgesStay(t *testing.T) {
	orig := Rect{200, 150, 500, 400}
	pointers := [][2]float64{{0, 0}, {799, 599}, {250, 300}, {600, 120}, {-40, 900}}
	for _, h := range Handles {
		for _, p := range pointers {
			box := PointerBox(h, orig, p[0], p[1], 0, 0, desktop)
			got := ComputeResize(h, box, sizeOf(orig), false, desktop, ResizeOptions{MinWidth: 1, MinHeight: 1, TitleBarHeight: 1})
			if got.Width() <= 1 || got.Height() <= 2 {
				continue
			}
			if h.Horz != AnchorLeft {
				assert.Equal(t, orig.Left, got.Left, "%s left at %v", h.Name(), p)
			}
			if h.Horz != AnchorRight {
				assert.Equal(t, orig.Right, got.Right, "%s right at %v", h.Name(), p)
			}
			if h.Vert != AnchorTop {
				assert.Equal(t, orig.Top, got.Top, "%s top at %v", h.Name(), p)
			}
			if h.Vert != AnchorBottom {
				assert.Equal(t, orig.Bottom, got.Bottom, "%s bottom at %v", h.Name(), p)
			}
		}
	}
}

func TestComputeResize_AlwaysValid(t *testing.T) {
	origs := []Rect{{0, 0, 80, 72}, {100, 100, 300, 262}, {700, 500, 800, 600}, {0, 0, 800, 600}}
	pointers := [][2]float64{{-500, -500}, {0, 0}, {5000, 5000}, {400, 300}, {790, 10}, {10, 590}}
	for _, orig := range origs {
		for _, h := range Handles {
			for _, p := range pointers {
				for _, aspect := range []bool{false, true} {
					box := PointerBox(h, orig, p[0], p[1], 0, 0, desktop)
					got := ComputeResize(h, box, sizeOf(orig), aspect, desktop, ResizeOptions{})
					msg := []any{"%s from %v to %v aspect=%v: %v", h.Name(), orig, p, aspect, got}
					assert.GreaterOrEqual(t, got.Width(), 80.0-epsilon, msg...)
					assert.GreaterOrEqual(t, got.Height(), 72.0-epsilon, msg...)
					assert.GreaterOrEqual(t, got.Left, -epsilon, msg...)
					assert.GreaterOrEqual(t, got.Top, -epsilon, msg...)
					assert.LessOrEqual(t, got.Right, 800+epsilon, msg...)
					assert.LessOrEqual(t, got.Bottom, 600+epsilon, msg...)
				}
			}
		}
	}
}

func TestPointerBox_ClampsEdgeToViewport(t *testing.T) {
	orig := Rect{100, 100, 300, 262}
	got := PointerBox(handleNamed("right-bottom"), orig, 1000, -20, 3, 2, desktop)
	assert.Equal(t, Rect{100, 100, 800, 0}, got)
}

func TestResizeSession_ReplayMatchesLastMove(t *testing.T) {
	orig := Rect{100, 100, 300, 262}
	s := newResizeSession(handleNamed("right-bottom"), orig, 298, 260, ResizeOptions{}.normalized())
	assert.Equal(t, 2.0, s.ofsX)
	assert.Equal(t, 2.0, s.ofsY)

	assert.Equal(t, ComputeResize(s.handle, orig, s.original, false, desktop, s.opts), s.replay(desktop, false))

	moved := s.move(450, 330, desktop, false)
	assert.Equal(t, Rect{100, 100, 452, 332}, moved)
	assert.Equal(t, moved, s.replay(desktop, false))

	locked := s.move(450, 330, desktop, true)
	assert.Equal(t, locked, s.replay(desktop, true))
	assert.InDelta(t, DefaultAspectRatio, locked.Width()/locked.Height(), epsilon)
}

func TestRect_CellsRoundsEdges(t *testing.T) {
	r := Rect{Left: 102, Top: 163.5, Right: 500, Bottom: 462}
	assert.Equal(t, layout.Rect(102, 164, 398, 298), r.Cells())

	r = Rect{Left: 10.4, Top: 0.5, Right: 20.5, Bottom: 9.5}
	assert.Equal(t, layout.Rect(10, 1, 11, 9), r.Cells())
}
