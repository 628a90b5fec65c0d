package scenario

import (
	"fmt"
	"io"

	"github.com/idursun/wndkit/internal/wnd"
)

// Write prints one line per emitted event followed by the final window.
func (r *Result) Write(w io.Writer) error {
	for _, e := range r.Events {
		if _, err := fmt.Fprintln(w, formatEvent(e)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "window %d,%d %dx%d\n", r.Window.Min.X, r.Window.Min.Y, r.Window.Dx(), r.Window.Dy())
	return err
}

func formatEvent(e wnd.Event) string {
	switch e.Kind {
	case wnd.DragMove:
		return fmt.Sprintf("%s x=%g y=%g", e.Kind, e.Position.X, e.Position.Y)
	case wnd.ResizeMove, wnd.ResizeEnd:
		return fmt.Sprintf("%s width=%.2f height=%.2f", e.Kind, e.Size.Width, e.Size.Height)
	}
	return e.Kind.String()
}
