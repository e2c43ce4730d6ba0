package x11

import (
	"fmt"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Connection represents a connection to the X11 server
type Connection struct {
	conn *xgb.Conn
	name string

	// Setup information from server
	RootWindow   xproto.Window
	RootDepth    uint8
	ScreenWidth  uint16
	ScreenHeight uint16

	// When set, requests without a reply are checked so a server error is
	// returned by the call that caused it. Requests with a reply always
	// return their error.
	synchronous bool

	atomMu sync.Mutex
	atoms  map[xproto.Atom]string
}

// Connect establishes a connection to the X11 server. An empty display
// means $DISPLAY.
func Connect(display string) (*Connection, error) {
	if display == "" {
		display = os.Getenv("DISPLAY")
	}

	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)

	return &Connection{
		conn:         conn,
		name:         display,
		RootWindow:   screen.Root,
		RootDepth:    screen.RootDepth,
		ScreenWidth:  screen.WidthInPixels,
		ScreenHeight: screen.HeightInPixels,
		atoms:        make(map[xproto.Atom]string),
	}, nil
}

// Close closes the connection
func (c *Connection) Close() error {
	c.conn.Close()
	return nil
}

// Name returns the display string the connection was opened with
func (c *Connection) Name() string { return c.name }

// Root returns the root window of the default screen
func (c *Connection) Root() xproto.Window { return c.RootWindow }

// SetSynchronous toggles synchronous request mode. With it off, errors for
// requests without a reply are delivered later through NextEvent.
func (c *Connection) SetSynchronous(on bool) {
	c.synchronous = on
}

// Sync sends a GetInputFocus request and waits for the reply
// This ensures all previous requests have been processed
func (c *Connection) Sync() error {
	_, err := xproto.GetInputFocus(c.conn).Reply()
	return asProtocolError(err)
}

// SelectInput sets the event mask of a window.
func (c *Connection) SelectInput(window xproto.Window, mask uint32) error {
	if c.synchronous {
		err := xproto.ChangeWindowAttributesChecked(c.conn, window,
			xproto.CwEventMask, []uint32{mask}).Check()
		return asProtocolError(err)
	}
	xproto.ChangeWindowAttributes(c.conn, window, xproto.CwEventMask, []uint32{mask})
	return nil
}

// NextEvent blocks until an event or an asynchronous error is received.
// Server errors are returned as *ProtocolError; ErrClosed means the
// connection is gone.
func (c *Connection) NextEvent() (Event, error) {
	ev, xerr := c.conn.WaitForEvent()
	switch {
	case xerr != nil:
		return nil, NewProtocolError(xerr)
	case ev == nil:
		return nil, ErrClosed
	}
	return FromXGB(ev), nil
}
