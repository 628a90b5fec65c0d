package render

import (
	"charm.land/lipgloss/v2"

	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
)

// DecorateFunc adds effects on top of a node that was just queued at z.
type DecorateFunc func(dl *DisplayContext, n *node.Node, abs layout.Rectangle, z int)

// PaintTree queues every visible node of root that has a Paint function.
// Nodes are layered in tree paint order from baseZ upwards and are made
// opaque first. decorate, when set, runs after each queued node so its
// effects sit under the nodes painted later. The next free Z is returned.
func PaintTree(dl *DisplayContext, root *node.Node, baseZ int, decorate DecorateFunc) int {
	z := baseZ
	blank := lipgloss.NewStyle()
	root.Walk(func(n *node.Node, abs layout.Rectangle) {
		if n.Paint == nil || abs.Dx() <= 0 || abs.Dy() <= 0 {
			return
		}
		dl.AddFill(abs, ' ', blank, z)
		dl.AddDraw(abs, n.Paint(abs.Dx(), abs.Dy()), z)
		if decorate != nil {
			decorate(dl, n, abs, z)
		}
		z++
	})
	return z
}
