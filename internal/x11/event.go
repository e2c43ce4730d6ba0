package x11

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Event is the interface for all X11 events
type Event interface {
	Type() int
}

// CreateEvent means a window was created under the root
type CreateEvent struct {
	Window xproto.Window
	Parent xproto.Window
}

func (e CreateEvent) Type() int { return EventCreateNotify }

// DestroyEvent means a window was destroyed
type DestroyEvent struct {
	Window xproto.Window
}

func (e DestroyEvent) Type() int { return EventDestroyNotify }

// ConfigureEvent means the window was resized or moved
type ConfigureEvent struct {
	Window xproto.Window
	X, Y   int16
	Width  uint16
	Height uint16
}

func (e ConfigureEvent) Type() int { return EventConfigureNotify }

// MapEvent means a window became viewable
type MapEvent struct {
	Window xproto.Window
}

func (e MapEvent) Type() int { return EventMapNotify }

// UnmapEvent means a window was hidden
type UnmapEvent struct {
	Window xproto.Window
}

func (e UnmapEvent) Type() int { return EventUnmapNotify }

// ExposeEvent means part of the window needs redrawing
type ExposeEvent struct {
	Window xproto.Window
	X, Y   uint16
	Width  uint16
	Height uint16
	Count  uint16 // Number of Expose events to follow
}

func (e ExposeEvent) Type() int { return EventExpose }

// PropertyEvent means a window property was changed or removed
type PropertyEvent struct {
	Window  xproto.Window
	Atom    xproto.Atom
	Time    xproto.Timestamp
	Deleted bool
}

func (e PropertyEvent) Type() int { return EventPropertyNotify }

// UnknownEvent for events we don't handle
type UnknownEvent struct {
	EventType int
}

func (e UnknownEvent) Type() int { return e.EventType }

// FromXGB converts a non-nil event decoded by xgb into an Event.
func FromXGB(ev xgb.Event) Event {
	switch e := ev.(type) {
	case xproto.CreateNotifyEvent:
		return CreateEvent{Window: e.Window, Parent: e.Parent}

	case xproto.DestroyNotifyEvent:
		return DestroyEvent{Window: e.Window}

	case xproto.ConfigureNotifyEvent:
		return ConfigureEvent{
			Window: e.Window,
			X:      e.X,
			Y:      e.Y,
			Width:  e.Width,
			Height: e.Height,
		}

	case xproto.MapNotifyEvent:
		return MapEvent{Window: e.Window}

	case xproto.UnmapNotifyEvent:
		return UnmapEvent{Window: e.Window}

	case xproto.ExposeEvent:
		return ExposeEvent{
			Window: e.Window,
			X:      e.X,
			Y:      e.Y,
			Width:  e.Width,
			Height: e.Height,
			Count:  e.Count,
		}

	case xproto.PropertyNotifyEvent:
		return PropertyEvent{
			Window:  e.Window,
			Atom:    e.Atom,
			Time:    e.Time,
			Deleted: e.State == xproto.PropertyDelete,
		}

	default:
		return UnknownEvent{EventType: rawType(ev)}
	}
}

// rawType returns the event code with the "sent by SendEvent" bit cleared.
func rawType(ev xgb.Event) int {
	return int(ev.Bytes()[0] & 0x7F)
}
