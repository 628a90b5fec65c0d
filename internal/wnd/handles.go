package wnd

import "github.com/idursun/wndkit/internal/ui/layout"

// Anchor names the edge a handle grabs on one axis. AnchorCenter means the
// handle does not move that axis.
type Anchor int

const (
	AnchorCenter Anchor = iota
	AnchorLeft
	AnchorRight
	AnchorTop
	AnchorBottom
)

func (a Anchor) String() string {
	switch a {
	case AnchorLeft:
		return "left"
	case AnchorRight:
		return "right"
	case AnchorTop:
		return "top"
	case AnchorBottom:
		return "bottom"
	}
	return "center"
}

// Handle describes one resize zone.
type Handle struct {
	Horz   Anchor
	Vert   Anchor
	Cursor string
}

// Handles lists the zones in creation order: corners first, then edges.
var Handles = []Handle{
	{Horz: AnchorRight, Vert: AnchorBottom, Cursor: "nwse-resize"},
	{Horz: AnchorLeft, Vert: AnchorBottom, Cursor: "nesw-resize"},
	{Horz: AnchorRight, Vert: AnchorTop, Cursor: "nesw-resize"},
	{Horz: AnchorLeft, Vert: AnchorTop, Cursor: "nwse-resize"},
	{Horz: AnchorCenter, Vert: AnchorTop, Cursor: "ns-resize"},
	{Horz: AnchorCenter, Vert: AnchorBottom, Cursor: "ns-resize"},
	{Horz: AnchorLeft, Vert: AnchorCenter, Cursor: "ew-resize"},
	{Horz: AnchorRight, Vert: AnchorCenter, Cursor: "ew-resize"},
}

func (h Handle) IsCorner() bool {
	return h.Horz != AnchorCenter && h.Vert != AnchorCenter
}

// Name is a stable identifier such as "right-bottom" or "center-top".
func (h Handle) Name() string {
	return h.Horz.String() + "-" + h.Vert.String()
}

// HitBox places the handle relative to a window of the given size. Handles
// are w cells thick and overhang the window edge by one cell; the top edge
// zone overhangs by half its thickness so the title bar below it stays
// grabbable. Edge zones span the edge minus a handle width at each end.
func (h Handle) HitBox(width, height, w int) layout.Rectangle {
	var x, y, dx, dy int
	switch h.Horz {
	case AnchorLeft:
		x, dx = -1, w
	case AnchorRight:
		x, dx = width-w+1, w
	default:
		x, dx = w, width-2*w
	}
	switch h.Vert {
	case AnchorTop:
		y, dy = -1, w
		if h.Horz == AnchorCenter {
			y = -max(w/2, 1)
		}
	case AnchorBottom:
		y, dy = height-w+1, w
	default:
		y, dy = w, height-2*w
	}
	return layout.Rect(x, y, max(dx, 0), max(dy, 0))
}

func (h Handle) edgeX(r Rect) float64 {
	if h.Horz == AnchorLeft {
		return r.Left
	}
	return r.Right
}

func (h Handle) edgeY(r Rect) float64 {
	if h.Vert == AnchorTop {
		return r.Top
	}
	return r.Bottom
}
