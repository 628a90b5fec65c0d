package node

import (
	"slices"
	"sort"

	"github.com/idursun/wndkit/internal/ui/layout"
)

// Node is an element of the retained tree. Rect is relative to the parent.
type Node struct {
	Name   string
	Class  string
	Cursor string
	Rect   layout.Rectangle
	Z      int
	Hidden bool
	// Paint renders the node content for its current size.
	Paint func(width, height int) string
	// Anchor recomputes Rect from the parent size whenever the parent is
	// resized or the node is attached.
	Anchor func(parentWidth, parentHeight int) layout.Rectangle

	parent    *Node
	children  []*Node
	listeners map[EventType][]*listenerEntry
}

type listenerEntry struct {
	fn      Listener
	removed bool
}

func New(name string, rect layout.Rectangle) *Node {
	return &Node{Name: name, Rect: rect}
}

// NewDocument creates the root node that stands for the whole screen.
func NewDocument(width, height int) *Node {
	return New("document", layout.Rect(0, 0, width, height))
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Root walks up to the topmost ancestor.
func (n *Node) Root() *Node {
	root := n
	for root.parent != nil {
		root = root.parent
	}
	return root
}

// Attached reports whether the node hangs below root.
func (n *Node) Attached(root *Node) bool {
	for cur := n; cur != nil; cur = cur.parent {
		if cur == root {
			return true
		}
	}
	return false
}

// Children returns the children in paint order: ascending Z, then
// insertion order.
func (n *Node) Children() []*Node {
	children := slices.Clone(n.children)
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Z < children[j].Z
	})
	return children
}

func (n *Node) AppendChild(child *Node) {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	if child.Anchor != nil {
		child.SetRect(child.Anchor(n.Rect.Dx(), n.Rect.Dy()))
	}
}

// RemoveChild detaches child. Removing a node that is not a child is a
// no-op.
func (n *Node) RemoveChild(child *Node) {
	idx := slices.Index(n.children, child)
	if idx < 0 {
		return
	}
	n.children = slices.Delete(n.children, idx, idx+1)
	child.parent = nil
}

// Remove detaches the node from its parent, if any.
func (n *Node) Remove() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// SetRect moves and resizes the node and re-anchors its children.
func (n *Node) SetRect(r layout.Rectangle) {
	resized := r.Dx() != n.Rect.Dx() || r.Dy() != n.Rect.Dy()
	n.Rect = r
	if !resized {
		return
	}
	for _, child := range n.children {
		if child.Anchor != nil {
			child.SetRect(child.Anchor(r.Dx(), r.Dy()))
		}
	}
}

// MoveTo changes the origin and keeps the size.
func (n *Node) MoveTo(x, y int) {
	n.SetRect(layout.Rect(x, y, n.Rect.Dx(), n.Rect.Dy()))
}

// AbsRect returns the rectangle in screen coordinates.
func (n *Node) AbsRect() layout.Rectangle {
	r := n.Rect
	for p := n.parent; p != nil; p = p.parent {
		r = layout.Translate(r, p.Rect.Min.X, p.Rect.Min.Y)
	}
	return r
}

// HitTest returns the topmost visible node containing the absolute point.
// Children are tested before their parent and may overhang it.
func (n *Node) HitTest(x, y int) *Node {
	origin := layout.Pos(0, 0)
	if n.parent != nil {
		origin = n.parent.AbsRect().Min
	}
	return n.hitTest(x, y, origin)
}

func (n *Node) hitTest(x, y int, origin layout.Position) *Node {
	if n.Hidden {
		return nil
	}
	abs := n.Rect.Add(origin)
	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := children[i].hitTest(x, y, abs.Min); hit != nil {
			return hit
		}
	}
	if layout.Pos(x, y).In(abs) {
		return n
	}
	return nil
}

// Walk visits the visible subtree in paint order together with the absolute
// rectangle of every node.
func (n *Node) Walk(fn func(n *Node, abs layout.Rectangle)) {
	origin := layout.Pos(0, 0)
	if n.parent != nil {
		origin = n.parent.AbsRect().Min
	}
	n.walk(origin, fn)
}

func (n *Node) walk(origin layout.Position, fn func(*Node, layout.Rectangle)) {
	if n.Hidden {
		return
	}
	abs := n.Rect.Add(origin)
	fn(n, abs)
	for _, child := range n.Children() {
		child.walk(abs.Min, fn)
	}
}

// Find returns the first descendant (or the node itself) with the name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// MaxChildZ returns the highest Z among the children, or 0.
func (n *Node) MaxChildZ() int {
	z := 0
	for _, child := range n.children {
		z = max(z, child.Z)
	}
	return z
}
