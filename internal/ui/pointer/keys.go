package pointer

const (
	ShiftLeft  = "ShiftLeft"
	ShiftRight = "ShiftRight"
)

// Keys tracks which keys are currently held.
type Keys struct {
	held map[string]bool
}

func NewKeys() *Keys {
	return &Keys{held: make(map[string]bool)}
}

func (k *Keys) IsKeyHeld(code string) bool {
	return k.held[code]
}

// Press marks code as held and reports whether that changed anything.
func (k *Keys) Press(code string) bool {
	if code == "" || k.held[code] {
		return false
	}
	k.held[code] = true
	return true
}

// Release marks code as released and reports whether it was held.
func (k *Keys) Release(code string) bool {
	if !k.held[code] {
		return false
	}
	delete(k.held, code)
	return true
}

// ShiftHeld reports whether either shift key is held.
func (k *Keys) ShiftHeld() bool {
	return k.held[ShiftLeft] || k.held[ShiftRight]
}

// SyncShift reconciles the shift state with the modifier bits of a pointer
// event. Most terminals never report bare modifier presses, so the
// modifier bits are the only signal. Returns true when the held state
// changed.
func (k *Keys) SyncShift(shift bool) bool {
	switch {
	case shift && !k.ShiftHeld():
		return k.Press(ShiftLeft)
	case !shift && k.ShiftHeld():
		left := k.Release(ShiftLeft)
		right := k.Release(ShiftRight)
		return left || right
	}
	return false
}

// Reset releases every key.
func (k *Keys) Reset() {
	clear(k.held)
}
