package xwinev

import (
	"fmt"

	"github.com/AchrafSoltani/xwinev/internal/x11"
)

// dispatch writes exactly one line for ev.
func (m *Monitor) dispatch(ev x11.Event) {
	m.logger.Info().Msg(m.describe(ev))
}

func (m *Monitor) describe(ev x11.Event) string {
	switch e := ev.(type) {
	case x11.CreateEvent:
		return fmt.Sprintf("Window 0x%x created", uint32(e.Window))

	case x11.DestroyEvent:
		return fmt.Sprintf("Window 0x%x destroyed", uint32(e.Window))

	case x11.ConfigureEvent:
		return fmt.Sprintf("Window 0x%x configured: pos(%d,%d) size(%d,%d)",
			uint32(e.Window), e.X, e.Y, e.Width, e.Height)

	case x11.MapEvent:
		return fmt.Sprintf("Window 0x%x mapped", uint32(e.Window))

	case x11.UnmapEvent:
		return fmt.Sprintf("Window 0x%x unmapped", uint32(e.Window))

	case x11.ExposeEvent:
		return fmt.Sprintf("Window 0x%x exposed: pos(%d,%d) size(%d,%d)",
			uint32(e.Window), e.X, e.Y, e.Width, e.Height)

	case x11.PropertyEvent:
		state := "new value"
		if e.Deleted {
			state = "deleted"
		}
		return fmt.Sprintf("Window 0x%x property %s changed at %d: %s",
			uint32(e.Window), m.atom(e), uint32(e.Time), state)

	default:
		return fmt.Sprintf("Unhandled event type %d", ev.Type())
	}
}

// atom renders the property identifier, with its name when the server can
// tell us.
func (m *Monitor) atom(e x11.PropertyEvent) string {
	name, err := m.display.AtomName(e.Atom)
	if err != nil || name == "" {
		return fmt.Sprintf("%d", uint32(e.Atom))
	}
	return fmt.Sprintf("%d (%s)", uint32(e.Atom), name)
}
