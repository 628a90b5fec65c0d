package wnd

import "math"

const (
	DefaultMinWidth       = 80
	DefaultMinHeight      = 60
	DefaultHandleWidth    = 8
	DefaultTitleBarHeight = 12
	DefaultAspectRatio    = 4.0 / 3.0
)

// ResizeOptions configures EnableResize. Zero or negative values select the
// defaults.
type ResizeOptions struct {
	MinWidth float64
	// MinHeight excludes the title bar; TitleBarHeight is added to it.
	MinHeight      float64
	CornerOnly     bool
	HandleWidth    int
	TitleBarHeight float64
	AspectRatio    float64
}

func (o ResizeOptions) normalized() ResizeOptions {
	if o.MinWidth <= 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.MinHeight <= 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.HandleWidth <= 0 {
		o.HandleWidth = DefaultHandleWidth
	}
	if o.TitleBarHeight <= 0 {
		o.TitleBarHeight = DefaultTitleBarHeight
	}
	if o.AspectRatio <= 0 || math.IsNaN(o.AspectRatio) || math.IsInf(o.AspectRatio, 0) {
		o.AspectRatio = DefaultAspectRatio
	}
	return o
}

// MinSize returns the smallest outer size a window may have.
func (o ResizeOptions) MinSize() Size {
	o = o.normalized()
	return Size{Width: o.MinWidth, Height: o.MinHeight + o.TitleBarHeight}
}

// LogicalSize is the size reported to the host: the window width and the
// height below the title bar.
func (o ResizeOptions) LogicalSize(r Rect) Size {
	o = o.normalized()
	return Size{Width: r.Width(), Height: r.Height() - o.TitleBarHeight}
}

func (v Viewport) limits() (float64, float64) {
	w, h := v.Width, v.Height
	if w <= 0 {
		w = math.Inf(1)
	}
	if h <= 0 {
		h = math.Inf(1)
	}
	return w, h
}

// PointerBox moves the edges owned by h to the pointer position (x, y)
// shifted by the offsets recorded at press time. Each moved edge stays
// inside the viewport.
func PointerBox(h Handle, orig Rect, x, y, ofsX, ofsY float64, vp Viewport) Rect {
	vw, vh := vp.limits()
	box := orig
	switch h.Horz {
	case AnchorLeft:
		box.Left = clamp(x+ofsX, 0, vw)
	case AnchorRight:
		box.Right = clamp(x+ofsX, 0, vw)
	}
	switch h.Vert {
	case AnchorTop:
		box.Top = clamp(y+ofsY, 0, vh)
	case AnchorBottom:
		box.Bottom = clamp(y+ofsY, 0, vh)
	}
	return box
}

// ComputeResize turns a pointer derived box into the rectangle applied to
// the window. original is the window size at press time; it is the pivot of
// the symmetric expansion used by edge handles when the aspect ratio is
// locked. The result honours the minimum size and lies inside vp.
func ComputeResize(h Handle, box Rect, original Size, aspect bool, vp Viewport, opts ResizeOptions) Rect {
	opts = opts.normalized()
	if aspect {
		box = lockAspect(h, box, original, vp, opts.AspectRatio)
	}
	box = enforceMinimum(h, box, opts)
	return containIn(box, vp)
}

func lockAspect(h Handle, box Rect, original Size, vp Viewport, ratio float64) Rect {
	vw, vh := vp.limits()
	width, height := box.Width(), box.Height()
	switch {
	case h.Horz == AnchorCenter:
		// top or bottom edge: grow horizontally around the center
		width = height * ratio
		box.Left -= (width - original.Width) / 2
		diff := math.Max(-box.Left, box.Left+width-vw)
		if diff > 0 {
			box.Left += diff
			width -= 2 * diff
			height = width / ratio
			if h.Vert == AnchorTop {
				box.Top += 2 * diff / ratio
			}
		}
	case h.Vert == AnchorCenter:
		// left or right edge: grow vertically around the center
		height = width / ratio
		box.Top -= (height - original.Height) / 2
		diff := math.Max(-box.Top, box.Top+height-vh)
		if diff > 0 {
			box.Top += diff
			height -= 2 * diff
			width = height * ratio
			if h.Horz == AnchorLeft {
				box.Left += 2 * diff * ratio
			}
		}
	default:
		if height*ratio >= width {
			width = height * ratio
		} else {
			height = width / ratio
		}
		// the corner opposite the grabbed one is pinned
		maxWidth := vw - box.Left
		if h.Horz == AnchorLeft {
			maxWidth = box.Right
		}
		maxHeight := vh - box.Top
		if h.Vert == AnchorTop {
			maxHeight = box.Bottom
		}
		if width > maxWidth {
			width = maxWidth
			height = width / ratio
		}
		if height > maxHeight {
			height = maxHeight
			width = height * ratio
		}
		if h.Horz == AnchorLeft {
			box.Left = box.Right - width
		}
		if h.Vert == AnchorTop {
			box.Top = box.Bottom - height
		}
	}
	box.Right = box.Left + width
	box.Bottom = box.Top + height
	return box
}

// enforceMinimum grows an undersized box by moving the edge opposite the
// grabbed one, so the grabbed edge stays under the pointer. Axes the handle
// does not grab grow around their center.
func enforceMinimum(h Handle, box Rect, opts ResizeOptions) Rect {
	minSize := opts.MinSize()
	if box.Width() < minSize.Width {
		switch h.Horz {
		case AnchorLeft:
			box.Right = box.Left + minSize.Width
		case AnchorRight:
			box.Left = box.Right - minSize.Width
		default:
			center := (box.Left + box.Right) / 2
			box.Left = center - minSize.Width/2
			box.Right = center + minSize.Width/2
		}
	}
	if box.Height() < minSize.Height {
		switch h.Vert {
		case AnchorTop:
			box.Bottom = box.Top + minSize.Height
		case AnchorBottom:
			box.Top = box.Bottom - minSize.Height
		default:
			center := (box.Top + box.Bottom) / 2
			box.Top = center - minSize.Height/2
			box.Bottom = center + minSize.Height/2
		}
	}
	return box
}

// containIn shifts box back inside the viewport without resizing it. When
// the box is larger than the viewport it is aligned to the top-left.
func containIn(box Rect, vp Viewport) Rect {
	vw, vh := vp.limits()
	if over := box.Right - vw; over > 0 {
		box.Left -= over
		box.Right -= over
	}
	if box.Left < 0 {
		box.Right -= box.Left
		box.Left = 0
	}
	if over := box.Bottom - vh; over > 0 {
		box.Top -= over
		box.Bottom -= over
	}
	if box.Top < 0 {
		box.Bottom -= box.Top
		box.Top = 0
	}
	return box
}
