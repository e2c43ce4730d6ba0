package x11

import (
	"github.com/jezek/xgb/xproto"
)

// Children returns the direct children of a window, bottom-most first
func (c *Connection) Children(window xproto.Window) ([]xproto.Window, error) {
	tree, err := xproto.QueryTree(c.conn, window).Reply()
	if err != nil {
		return nil, asProtocolError(err)
	}
	return tree.Children, nil
}

// Geometry returns the position and size of a window relative to its parent
func (c *Connection) Geometry(window xproto.Window) (ConfigureEvent, error) {
	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(window)).Reply()
	if err != nil {
		return ConfigureEvent{}, asProtocolError(err)
	}
	return ConfigureEvent{
		Window: window,
		X:      geom.X,
		Y:      geom.Y,
		Width:  geom.Width,
		Height: geom.Height,
	}, nil
}
