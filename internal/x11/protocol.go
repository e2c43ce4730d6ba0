package x11

import "github.com/jezek/xgb/xproto"

// Event types - the type field in event packets
const (
	EventExpose          = xproto.Expose
	EventCreateNotify    = xproto.CreateNotify
	EventDestroyNotify   = xproto.DestroyNotify
	EventUnmapNotify     = xproto.UnmapNotify
	EventMapNotify       = xproto.MapNotify
	EventConfigureNotify = xproto.ConfigureNotify
	EventPropertyNotify  = xproto.PropertyNotify
)

// SubscriptionMask is the set of events selected on the root window.
// SubstructureNotify reports children of the root, StructureNotify the root
// itself.
const SubscriptionMask = xproto.EventMaskSubstructureNotify |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskExposure |
	xproto.EventMaskPropertyChange

// Core protocol error codes
const (
	ErrorRequest        = 1
	ErrorValue          = 2
	ErrorWindow         = 3
	ErrorPixmap         = 4
	ErrorAtom           = 5
	ErrorCursor         = 6
	ErrorFont           = 7
	ErrorMatch          = 8
	ErrorDrawable       = 9
	ErrorAccess         = 10
	ErrorAlloc          = 11
	ErrorColormap       = 12
	ErrorGContext       = 13
	ErrorIDChoice       = 14
	ErrorName           = 15
	ErrorLength         = 16
	ErrorImplementation = 17
)
