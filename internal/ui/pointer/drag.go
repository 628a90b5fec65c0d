package pointer

import "github.com/idursun/wndkit/internal/ui/node"

// DragListener receives the rest of a gesture once a press has started it.
type DragListener struct {
	Move func(e *node.Event)
	Up   func(e *node.Event)
}

// SetDragListener subscribes l to the document move/up stream of one
// gesture. The subscription ends on the first up event, before Up runs, so a
// panicking Up cannot leave listeners behind. The returned cancel ends the
// subscription early without calling Up.
func SetDragListener(doc *node.Node, l DragListener) (cancel func()) {
	var removers []func()
	cancel = func() {
		for _, remove := range removers {
			remove()
		}
	}
	move := func(e *node.Event) {
		if l.Move != nil {
			l.Move(e)
		}
	}
	up := func(e *node.Event) {
		cancel()
		if l.Up != nil {
			l.Up(e)
		}
	}
	removers = append(removers,
		doc.AddListener(node.MouseMove, move),
		doc.AddListener(node.TouchMove, move),
		doc.AddListener(node.MouseUp, up),
		doc.AddListener(node.TouchEnd, up),
	)
	return cancel
}

// PosIn returns the pointer position of e relative to n.
func PosIn(e *node.Event, n *node.Node) (int, int) {
	x, y := e.Point()
	if n == nil {
		return x, y
	}
	origin := n.AbsRect().Min
	return x - origin.X, y - origin.Y
}

// IsPrimaryPress reports whether e may start a gesture: a primary button
// mouse press or a touch start whose first changed touch has identifier 0.
func IsPrimaryPress(e *node.Event) bool {
	switch e.Type {
	case node.MouseDown:
		return e.Button == node.ButtonPrimary
	case node.TouchStart:
		return len(e.Touches) > 0 && e.Touches[0].ID == 0
	default:
		return false
	}
}
