package x11

import (
	"path/filepath"
	"testing"

	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AchrafSoltani/xwinev/internal/x11/x11test"
)

func connect(t *testing.T, cfg x11test.Config) (*x11test.Server, *Connection) {
	t.Helper()
	s := x11test.Start(t, cfg)
	c, err := Connect(s.Display)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return s, c
}

func TestConnect(t *testing.T) {
	s, c := connect(t, x11test.Config{})

	assert.Equal(t, s.Display, c.Name())
	assert.Equal(t, x11test.DefaultRoot, c.Root())
	assert.Equal(t, uint16(x11test.ScreenWidth), c.ScreenWidth)
	assert.Equal(t, uint16(x11test.ScreenHeight), c.ScreenHeight)
	assert.Equal(t, uint8(24), c.RootDepth)

	require.NoError(t, c.Sync())
	assert.Equal(t, 1, s.Count(x11test.OpGetInputFocus))
}

func TestConnectUsesDisplayEnvironment(t *testing.T) {
	s := x11test.Start(t, x11test.Config{})
	t.Setenv("DISPLAY", s.Display)

	c, err := Connect("")
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, s.Display, c.Name())
}

func TestConnectFailure(t *testing.T) {
	_, err := Connect(filepath.Join(t.TempDir(), "X") + ":0")
	assert.Error(t, err)
}

func TestChildren(t *testing.T) {
	_, c := connect(t, x11test.Config{Children: []xproto.Window{0x400001, 0x400002, 0x400003}})

	children, err := c.Children(c.Root())
	require.NoError(t, err)
	assert.Equal(t, []xproto.Window{0x400001, 0x400002, 0x400003}, children)
}

func TestChildrenProtocolError(t *testing.T) {
	_, c := connect(t, x11test.Config{Errors: map[byte]byte{x11test.OpQueryTree: ErrorWindow}})

	_, err := c.Children(0xbad)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, byte(ErrorWindow), perr.Code)
	assert.Equal(t, uint32(0xbad), perr.ResourceID)
	assert.Equal(t, byte(x11test.OpQueryTree), perr.MajorOpcode)
}

func TestSelectInputSynchronous(t *testing.T) {
	s, c := connect(t, x11test.Config{})
	c.SetSynchronous(true)

	require.NoError(t, c.SelectInput(c.Root(), SubscriptionMask))
	assert.Equal(t, 1, s.Count(x11test.OpChangeWindowAttributes))
}

func TestSelectInputSynchronousError(t *testing.T) {
	_, c := connect(t, x11test.Config{Errors: map[byte]byte{x11test.OpChangeWindowAttributes: ErrorWindow}})
	c.SetSynchronous(true)

	err := c.SelectInput(0xdead, SubscriptionMask)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, byte(ErrorWindow), perr.Code)
	assert.Equal(t, uint32(0xdead), perr.ResourceID)
	assert.Equal(t, byte(x11test.OpChangeWindowAttributes), perr.MajorOpcode)
}

func TestSelectInputAsynchronousError(t *testing.T) {
	_, c := connect(t, x11test.Config{Errors: map[byte]byte{x11test.OpChangeWindowAttributes: ErrorWindow}})

	require.NoError(t, c.SelectInput(0xdead, SubscriptionMask))

	ev, err := c.NextEvent()
	assert.Nil(t, ev)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, byte(ErrorWindow), perr.Code)
	assert.Equal(t, uint32(0xdead), perr.ResourceID)
}

func TestNextEvent(t *testing.T) {
	s, c := connect(t, x11test.Config{})

	s.Send(xproto.CreateNotifyEvent{Parent: x11test.DefaultRoot, Window: 0x400001, Width: 300, Height: 200})
	s.Send(xproto.PropertyNotifyEvent{Window: 0x400001, Atom: 39, Time: 77, State: xproto.PropertyDelete})
	s.Send(xproto.ReparentNotifyEvent{Event: x11test.DefaultRoot, Window: 0x400001, Parent: 0x400009})

	ev, err := c.NextEvent()
	require.NoError(t, err)
	assert.Equal(t, CreateEvent{Window: 0x400001, Parent: x11test.DefaultRoot}, ev)

	ev, err = c.NextEvent()
	require.NoError(t, err)
	assert.Equal(t, PropertyEvent{Window: 0x400001, Atom: 39, Time: 77, Deleted: true}, ev)

	ev, err = c.NextEvent()
	require.NoError(t, err)
	assert.Equal(t, UnknownEvent{EventType: xproto.ReparentNotify}, ev)
}

func TestNextEventAfterServerHangup(t *testing.T) {
	s, c := connect(t, x11test.Config{})
	s.Hangup()

	ev, err := c.NextEvent()
	assert.Nil(t, ev)
	assert.ErrorIs(t, err, ErrClosed)

	ev, err = c.NextEvent()
	assert.Nil(t, ev)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestAtomNameIsCached(t *testing.T) {
	s, c := connect(t, x11test.Config{Atoms: map[xproto.Atom]string{39: "WM_NAME"}})

	for i := 0; i < 3; i++ {
		name, err := c.AtomName(39)
		require.NoError(t, err)
		assert.Equal(t, "WM_NAME", name)
	}
	assert.Equal(t, 1, s.Count(x11test.OpGetAtomName))
}

func TestAtomNameUnknown(t *testing.T) {
	_, c := connect(t, x11test.Config{})

	_, err := c.AtomName(9999)
	var perr *ProtocolError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, byte(ErrorAtom), perr.Code)
	assert.Equal(t, uint32(9999), perr.ResourceID)
}
