package wnd

// Flag is a boolean that is either fixed or computed when a submenu is
// rendered. The zero Flag is false.
type Flag struct {
	value bool
	fn    func() bool
}

func Static(v bool) Flag {
	return Flag{value: v}
}

func Computed(fn func() bool) Flag {
	return Flag{fn: fn}
}

func (f Flag) Eval() bool {
	if f.fn != nil {
		return f.fn()
	}
	return f.value
}
