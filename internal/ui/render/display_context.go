package render

import (
	"sort"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/idursun/wndkit/internal/ui/layout"
)

// DisplayContext collects the draws and effects of one frame. They are
// executed by Z, then in the order they were added.
type DisplayContext struct {
	draws        []drawOp
	effects      []effectOp
	orderCounter int
}

func NewDisplayContext() *DisplayContext {
	return &DisplayContext{
		draws:   make([]drawOp, 0, 32),
		effects: make([]effectOp, 0, 8),
	}
}

func (dl *DisplayContext) nextOrder() int {
	dl.orderCounter++
	return dl.orderCounter
}

// AddDraw queues rendered content for rect.
func (dl *DisplayContext) AddDraw(rect layout.Rectangle, content string, z int) {
	dl.draws = append(dl.draws, drawOp{
		Draw:  Draw{Rect: rect, Content: content, Z: z},
		order: dl.nextOrder(),
	})
}

// AddFill fills rect with ch. Used to make a node opaque before its
// content is drawn.
func (dl *DisplayContext) AddFill(rect layout.Rectangle, ch rune, style lipgloss.Style, z int) {
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}
	dl.AddEffect(FillEffect{
		Rect:  rect,
		Char:  ch,
		Style: lipglossToStyle(style),
		Z:     z,
	})
}

func (dl *DisplayContext) AddEffect(effect Effect) {
	dl.effects = append(dl.effects, effectOp{
		effect: effect,
		order:  dl.nextOrder(),
		z:      effect.GetZ(),
	})
}

func (dl *DisplayContext) AddReverse(rect layout.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: uv.AttrReverse, Z: z})
}

func (dl *DisplayContext) AddDim(rect layout.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: uv.AttrFaint, Z: z})
}

// AddHighlight gives the cells of rect without a background the background
// of style.
func (dl *DisplayContext) AddHighlight(rect layout.Rectangle, style lipgloss.Style, z int) {
	dl.AddEffect(BackgroundEffect{Rect: rect, Color: style.GetBackground(), Z: z})
}

// AddPaint sets the background of every cell in rect.
func (dl *DisplayContext) AddPaint(rect layout.Rectangle, style lipgloss.Style, z int) {
	dl.AddEffect(BackgroundEffect{Rect: rect, Color: style.GetBackground(), Force: true, Z: z})
}

// Clear empties the context so it can be reused for the next frame.
func (dl *DisplayContext) Clear() {
	dl.draws = dl.draws[:0]
	dl.effects = dl.effects[:0]
	dl.orderCounter = 0
}

// Render executes the queued operations on buf.
func (dl *DisplayContext) Render(buf uv.Screen) {
	if len(dl.draws) == 0 && len(dl.effects) == 0 {
		return
	}

	ops := make([]renderOp, 0, len(dl.draws)+len(dl.effects))
	for _, op := range dl.draws {
		ops = append(ops, renderOp{z: op.Z, order: op.order, draw: op.Draw, isDraw: true})
	}
	for _, op := range dl.effects {
		ops = append(ops, renderOp{z: op.z, order: op.order, effect: op.effect})
	}
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].z != ops[j].z {
			return ops[i].z < ops[j].z
		}
		return ops[i].order < ops[j].order
	})

	for _, op := range ops {
		if op.isDraw {
			uv.NewStyledString(op.draw.Content).Draw(buf, op.draw.Rect)
			continue
		}
		op.effect.Apply(buf)
	}
}

// RenderToString renders into a fresh buffer of the given size.
func (dl *DisplayContext) RenderToString(width, height int) string {
	buf := uv.NewScreenBuffer(width, height)
	dl.Render(buf)
	return buf.Render()
}

type drawOp struct {
	Draw
	order int
}

type effectOp struct {
	effect Effect
	order  int
	z      int
}

type renderOp struct {
	z      int
	order  int
	draw   Draw
	effect Effect
	isDraw bool
}
