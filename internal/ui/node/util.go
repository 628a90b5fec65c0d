package node

import "github.com/idursun/wndkit/internal/ui/layout"

// OffsetRect returns the rectangle of target relative to parent, whatever
// the nesting between them.
func OffsetRect(parent, target *Node) layout.Rectangle {
	p := parent.AbsRect()
	return layout.Translate(target.AbsRect(), -p.Min.X, -p.Min.Y)
}

// CreateHorizontalSplitter fills parent with an upper band of upperHeight
// rows and a lower node taking the remaining space. Both follow parent when
// it is resized.
func CreateHorizontalSplitter(parent *Node, upperHeight int) (upper, lower *Node) {
	upper = &Node{
		Name:  parent.Name + ".upper",
		Class: "upper",
		Anchor: func(w, h int) layout.Rectangle {
			u, _ := layout.SplitHorizontal(layout.Rect(0, 0, w, h), upperHeight)
			return u
		},
	}
	lower = &Node{
		Name:  parent.Name + ".lower",
		Class: "lower",
		Anchor: func(w, h int) layout.Rectangle {
			_, l := layout.SplitHorizontal(layout.Rect(0, 0, w, h), upperHeight)
			return l
		},
	}
	parent.AppendChild(upper)
	parent.AppendChild(lower)
	return upper, lower
}
