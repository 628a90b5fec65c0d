// Package scenario replays scripted pointer gestures against a window with
// the drag and resize controllers attached, without a terminal.
package scenario

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idursun/wndkit/internal/ui/layout"
	"github.com/idursun/wndkit/internal/ui/node"
	"github.com/idursun/wndkit/internal/ui/pointer"
	"github.com/idursun/wndkit/internal/wnd"
)

//go:embed builtin/*.yml
var builtinFS embed.FS

// GripTarget presses the title bar instead of a resize handle.
const GripTarget = "grip"

type Scenario struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Viewport    Extent  `yaml:"viewport"`
	Window      Box     `yaml:"window"`
	Options     Options `yaml:"options,omitempty"`
	Steps       []Step  `yaml:"steps"`
	Expect      *Expect `yaml:"expect,omitempty"`
}

type Extent struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Box struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func (b Box) Rect() layout.Rectangle {
	return layout.Rect(b.X, b.Y, b.Width, b.Height)
}

type Options struct {
	MinWidth       float64 `yaml:"min_width,omitempty"`
	MinHeight      float64 `yaml:"min_height,omitempty"`
	CornerOnly     bool    `yaml:"corner_only,omitempty"`
	HandleWidth    int     `yaml:"handle_width,omitempty"`
	TitleBarHeight float64 `yaml:"titlebar_height,omitempty"`
	AspectRatio    float64 `yaml:"aspect_ratio,omitempty"`
}

func (o Options) resizeOptions() wnd.ResizeOptions {
	return wnd.ResizeOptions{
		MinWidth:       o.MinWidth,
		MinHeight:      o.MinHeight,
		CornerOnly:     o.CornerOnly,
		HandleWidth:    o.HandleWidth,
		TitleBarHeight: o.TitleBarHeight,
		AspectRatio:    o.AspectRatio,
	}
}

// Step is one input. Exactly one of Press, Move, Shift or Release is set.
// Press targets a handle by name ("right-bottom", "center-top") or the
// grip, at the middle of its hit box unless At is given. Coordinates are
// absolute cells.
type Step struct {
	Press   string `yaml:"press,omitempty"`
	At      *Point `yaml:"at,omitempty"`
	Touch   bool   `yaml:"touch,omitempty"`
	Move    *Point `yaml:"move,omitempty"`
	Shift   *bool  `yaml:"shift,omitempty"`
	Release bool   `yaml:"release,omitempty"`
}

func (s Step) kind() string {
	var kinds []string
	if s.Press != "" {
		kinds = append(kinds, "press")
	}
	if s.Move != nil {
		kinds = append(kinds, "move")
	}
	if s.Shift != nil {
		kinds = append(kinds, "shift")
	}
	if s.Release {
		kinds = append(kinds, "release")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Point is written either as [x, y] or as {x: .., y: ..}.
type Point struct {
	X int
	Y int
}

func (p *Point) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var xy []int
		if err := value.Decode(&xy); err != nil {
			return err
		}
		if len(xy) != 2 {
			return fmt.Errorf("line %d: point needs two coordinates, got %d", value.Line, len(xy))
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	case yaml.MappingNode:
		var raw struct {
			X int `yaml:"x"`
			Y int `yaml:"y"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		p.X, p.Y = raw.X, raw.Y
		return nil
	}
	return fmt.Errorf("line %d: expected [x, y] or {x, y}", value.Line)
}

// Expect is checked against the result of a replay. Unset fields are not
// checked.
type Expect struct {
	Window *Box      `yaml:"window,omitempty"`
	Size   *wnd.Size `yaml:"size,omitempty"`
	Events []string  `yaml:"events,omitempty"`
}

// Parse decodes a scenario and validates its steps.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) Validate() error {
	if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
		return fmt.Errorf("scenario %q: viewport must have a positive size", s.Name)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("scenario %q: window must have a positive size", s.Name)
	}
	for i, step := range s.Steps {
		if step.kind() == "" {
			return fmt.Errorf("scenario %q: step %d must set exactly one of press, move, shift, release", s.Name, i+1)
		}
		if step.Press != "" && step.Press != GripTarget && !isHandle(step.Press) {
			return fmt.Errorf("scenario %q: step %d: unknown press target %q", s.Name, i+1, step.Press)
		}
	}
	return nil
}

func isHandle(name string) bool {
	return slices.ContainsFunc(wnd.Handles, func(h wnd.Handle) bool { return h.Name() == name })
}

// Load reads a scenario file.
func Load(file string) (*Scenario, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	return s, nil
}

// Builtin returns the scenarios shipped with the binary, sorted by file
// name.
func Builtin() ([]*Scenario, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin scenarios: %w", err)
	}
	var out []*Scenario
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yml") {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin scenario %s: %w", entry.Name(), err)
		}
		s, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("builtin scenario %s: %w", entry.Name(), err)
		}
		if s.Name == "" {
			s.Name = strings.TrimSuffix(entry.Name(), ".yml")
		}
		out = append(out, s)
	}
	return out, nil
}

// Check compares a replay result with the expectations of the scenario.
// All mismatches are reported.
func (s *Scenario) Check(r *Result) error {
	if s.Expect == nil {
		return nil
	}
	var errs []error
	if want := s.Expect.Window; want != nil && want.Rect() != r.Window {
		errs = append(errs, fmt.Errorf("window: want %v, got %v", want.Rect(), r.Window))
	}
	if want := s.Expect.Size; want != nil && !sameSize(*want, r.Size) {
		errs = append(errs, fmt.Errorf("size: want %gx%g, got %gx%g", want.Width, want.Height, r.Size.Width, r.Size.Height))
	}
	if want := s.Expect.Events; want != nil {
		if got := r.Kinds(); !slices.Equal(want, got) {
			errs = append(errs, fmt.Errorf("events: want %v, got %v", want, got))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("scenario %q: %w", s.Name, errors.Join(errs...))
	}
	return nil
}

func sameSize(a, b wnd.Size) bool {
	const tolerance = 1e-3
	diff := func(x, y float64) bool { return x-y < tolerance && y-x < tolerance }
	return diff(a.Width, b.Width) && diff(a.Height, b.Height)
}

func (r *Result) Kinds() []string {
	kinds := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		kinds = append(kinds, e.Kind.String())
	}
	return kinds
}

// Result is what a replay produced.
type Result struct {
	Events []wnd.Event
	// Window is the final window rectangle in cells.
	Window layout.Rectangle
	// Size is the last size reported by a resize event, or the logical size
	// of the initial window.
	Size wnd.Size
}

// Replay builds a document of the viewport size holding one window, attaches
// the drag and resize controllers and feeds the steps through the tree.
func (s *Scenario) Replay() (*Result, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	opts := s.Options.resizeOptions()
	vp := wnd.Viewport{Width: float64(s.Viewport.Width), Height: float64(s.Viewport.Height)}
	bounds := func() wnd.Viewport { return vp }

	doc := node.NewDocument(s.Viewport.Width, s.Viewport.Height)
	win := node.New("window", s.Window.Rect())
	doc.AppendChild(win)
	titleBar := int(opts.TitleBarHeight)
	if titleBar <= 0 {
		titleBar = wnd.DefaultTitleBarHeight
	}
	grip, _ := node.CreateHorizontalSplitter(win, titleBar)

	res := &Result{Size: opts.LogicalSize(wnd.RectFrom(win.Rect))}
	record := func(e wnd.Event) {
		res.Events = append(res.Events, e)
		if e.Kind == wnd.ResizeMove || e.Kind == wnd.ResizeEnd {
			res.Size = e.Size
		}
	}
	keys := pointer.NewKeys()
	detachDrag := wnd.EnableDrag(win, grip, bounds, record)
	detachResize := wnd.EnableResize(win, bounds, record, keys, opts)
	defer detachDrag()
	defer detachResize()

	p := player{doc: doc, win: win, grip: grip, keys: keys}
	for i, step := range s.Steps {
		if err := p.play(step); err != nil {
			return nil, fmt.Errorf("scenario %q: step %d: %w", s.Name, i+1, err)
		}
	}
	res.Window = win.Rect
	return res, nil
}

type player struct {
	doc     *node.Node
	win     *node.Node
	grip    *node.Node
	keys    *pointer.Keys
	x, y    int
	touch   bool
	pressed bool
}

func (p *player) play(step Step) error {
	switch step.kind() {
	case "press":
		target := p.grip
		if step.Press != GripTarget {
			target = p.win.Find("resize-" + step.Press)
			if target == nil {
				return fmt.Errorf("handle %q is not active", step.Press)
			}
		}
		if step.At != nil {
			p.x, p.y = step.At.X, step.At.Y
		} else {
			r := target.AbsRect()
			p.x, p.y = r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2
		}
		p.touch, p.pressed = step.Touch, true
		p.pointer(node.MouseDown, node.TouchStart)
	case "move":
		p.x, p.y = step.Move.X, step.Move.Y
		p.pointer(node.MouseMove, node.TouchMove)
	case "release":
		if !p.pressed {
			return errors.New("release without press")
		}
		p.pointer(node.MouseUp, node.TouchEnd)
		p.pressed = false
	case "shift":
		if *step.Shift {
			if p.keys.Press(pointer.ShiftLeft) {
				p.doc.Dispatch(&node.Event{Type: node.KeyDown, Code: pointer.ShiftLeft})
			}
		} else if p.keys.Release(pointer.ShiftLeft) {
			p.doc.Dispatch(&node.Event{Type: node.KeyUp, Code: pointer.ShiftLeft})
		}
	}
	return nil
}

func (p *player) pointer(mouse, touch node.EventType) {
	if p.touch {
		p.doc.Dispatch(&node.Event{Type: touch, Touches: []node.Touch{{ID: 0, X: p.x, Y: p.y}}})
		return
	}
	p.doc.Dispatch(&node.Event{Type: mouse, X: p.x, Y: p.y, Button: node.ButtonPrimary})
}
