package node

// EventType names an event the same way the browser does so that
// controllers read naturally: "mousedown", "touchstart", "keyup"...
type EventType string

const (
	MouseDown  EventType = "mousedown"
	MouseMove  EventType = "mousemove"
	MouseUp    EventType = "mouseup"
	Click      EventType = "click"
	TouchStart EventType = "touchstart"
	TouchMove  EventType = "touchmove"
	TouchEnd   EventType = "touchend"
	KeyDown    EventType = "keydown"
	KeyUp      EventType = "keyup"
)

// IsPointer reports whether the event carries a screen position.
func (t EventType) IsPointer() bool {
	switch t {
	case MouseDown, MouseMove, MouseUp, Click, TouchStart, TouchMove, TouchEnd:
		return true
	}
	return false
}

// Button identifies a mouse button using DOM numbering.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonAuxiliary
	ButtonSecondary
	ButtonNone Button = -1
)

// Touch is a single touch point of a touch event.
type Touch struct {
	ID int
	X  int
	Y  int
}

// Event is dispatched through the tree. Pointer coordinates are absolute
// screen cells.
type Event struct {
	Type    EventType
	X       int
	Y       int
	Button  Button
	Touches []Touch
	// Key is the key name as reported by the terminal ("down", "enter", "a").
	Key string
	// Code is the physical key code ("ShiftLeft", "ShiftRight").
	Code   string
	Target *Node

	stopped          bool
	defaultPrevented bool
}

// StopPropagation keeps the event from reaching ancestors of the node that
// is currently handling it. Remaining listeners on that node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

func (e *Event) Stopped() bool {
	return e.stopped
}

// PreventDefault tells the host that a listener consumed the event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Point returns the pointer position of the event. Touch events use their
// first changed touch.
func (e *Event) Point() (int, int) {
	if len(e.Touches) > 0 && (e.Type == TouchStart || e.Type == TouchMove || e.Type == TouchEnd) {
		return e.Touches[0].X, e.Touches[0].Y
	}
	return e.X, e.Y
}

// Listener handles an event.
type Listener func(e *Event)
