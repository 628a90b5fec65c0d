package render

import "github.com/idursun/wndkit/internal/ui/layout"

// Draw places pre-rendered content into a rectangle. Higher Z is drawn
// later.
type Draw struct {
	Rect    layout.Rectangle
	Content string
	Z       int
}
