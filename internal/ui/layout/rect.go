package layout

import uv "github.com/charmbracelet/ultraviolet"

// Rectangle is a cell rectangle; Min is inclusive and Max exclusive.
type Rectangle = uv.Rectangle

// Position is a cell coordinate.
type Position = uv.Position

// Rect returns a rectangle with the given origin and size.
func Rect(x, y, width, height int) Rectangle {
	return uv.Rect(x, y, width, height)
}

// Pos returns a position.
func Pos(x, y int) Position {
	return uv.Pos(x, y)
}

// Box wraps a rectangle handed to a component during layout.
type Box struct {
	R Rectangle
}

func NewBox(r Rectangle) Box {
	return Box{R: r}
}

// Inset shrinks the box by n cells on each side. The result never has a
// negative size.
func (b Box) Inset(n int) Box {
	r := b.R
	r.Min.X += n
	r.Min.Y += n
	r.Max.X -= n
	r.Max.Y -= n
	if r.Max.X < r.Min.X {
		r.Max.X = r.Min.X
	}
	if r.Max.Y < r.Min.Y {
		r.Max.Y = r.Min.Y
	}
	return Box{R: r}
}

// Translate moves a rectangle by dx, dy.
func Translate(r Rectangle, dx, dy int) Rectangle {
	return r.Add(uv.Pos(dx, dy))
}
