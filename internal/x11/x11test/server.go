// Package x11test runs an in-process X server for tests. It speaks the
// connection handshake and the handful of core requests the monitor issues:
// ChangeWindowAttributes, QueryTree, GetAtomName and GetInputFocus.
package x11test

import (
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/require"
)

// Core request opcodes understood by the server
const (
	OpChangeWindowAttributes = 2
	OpQueryTree              = 15
	OpGetAtomName            = 17
	OpGetInputFocus          = 43
)

// DefaultRoot is the root window used when Config.Root is zero.
const DefaultRoot xproto.Window = 0x2a0

// Screen size reported in the setup reply
const (
	ScreenWidth  = 1920
	ScreenHeight = 1080
)

// Config describes the server's state. It is fixed once Start returns.
type Config struct {
	Root     xproto.Window
	Children []xproto.Window
	Atoms    map[xproto.Atom]string

	// Errors maps a request opcode to the error code sent in reply to it
	Errors map[byte]byte

	// HangupAfter drops the client once a request with this opcode has been
	// answered.
	HangupAfter byte
}

// Server accepts a single client on a unix socket.
type Server struct {
	// Display is the string to pass to x11.Connect
	Display string

	cfg   Config
	ln    net.Listener
	ready chan struct{}

	mu     sync.Mutex
	conn   net.Conn
	seq    uint16
	counts map[byte]int
}

// Start listens on a fresh socket and serves the first client that
// connects. XAUTHORITY is pointed at a missing file so clients connect
// without credentials.
func Start(t testing.TB, cfg Config) *Server {
	t.Helper()

	// t.TempDir paths can exceed the unix socket path limit
	dir, err := os.MkdirTemp("", "x11test")
	require.NoError(t, err)

	if cfg.Root == 0 {
		cfg.Root = DefaultRoot
	}

	// xgb dials "<socket>:<display>" for a display string starting with '/'
	socket := filepath.Join(dir, "X")
	ln, err := net.Listen("unix", socket+":0")
	require.NoError(t, err)

	t.Setenv("XAUTHORITY", filepath.Join(dir, "Xauthority"))

	s := &Server{
		Display: socket + ":0",
		cfg:     cfg,
		ln:      ln,
		ready:   make(chan struct{}),
		counts:  make(map[byte]int),
	}
	t.Cleanup(func() {
		s.Close()
		os.RemoveAll(dir)
	})

	go s.serve()
	return s
}

// Close stops listening and drops the client
func (s *Server) Close() {
	s.ln.Close()
	s.Hangup()
}

// Hangup drops the client connection, as a server going away does.
func (s *Server) Hangup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		s.conn.Close()
	}
}

// Count returns how many requests with opcode the server has received.
func (s *Server) Count(opcode byte) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[opcode]
}

// Send writes ev to the client once the handshake is done.
func (s *Server) Send(ev xgb.Event) {
	<-s.ready
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.Write(ev.Bytes())
}

func (s *Server) serve() {
	conn, err := s.ln.Accept()
	if err != nil {
		return
	}
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	if err := s.handshake(conn); err != nil {
		conn.Close()
		return
	}
	close(s.ready)

	for {
		req, err := readRequest(conn)
		if err != nil {
			return
		}
		s.handle(req)
	}
}

// handshake reads the client's connection setup and accepts it.
func (s *Server) handshake(conn net.Conn) error {
	head := make([]byte, 12)
	if _, err := io.ReadFull(conn, head); err != nil {
		return err
	}
	authLen := xgb.Pad(int(xgb.Get16(head[6:]))) + xgb.Pad(int(xgb.Get16(head[8:])))
	if _, err := io.ReadFull(conn, make([]byte, authLen)); err != nil {
		return err
	}

	setup := xproto.SetupInfo{
		Status:               1,
		ProtocolMajorVersion: 11,
		ReleaseNumber:        1,
		ResourceIdBase:       0x00400000,
		ResourceIdMask:       0x001fffff,
		MaximumRequestLength: 0xffff,
		MinKeycode:           8,
		MaxKeycode:           255,
		RootsLen:             1,
		Roots: []xproto.ScreenInfo{{
			Root:           s.cfg.Root,
			WidthInPixels:  ScreenWidth,
			HeightInPixels: ScreenHeight,
			RootDepth:      24,
		}},
	}
	buf := setup.Bytes()
	// length of the setup data after the 8 byte header, in 4 byte units
	xgb.Put16(buf[6:], uint16((len(buf)-8)/4))

	_, err := conn.Write(buf)
	return err
}

func readRequest(conn net.Conn) ([]byte, error) {
	head := make([]byte, 4)
	if _, err := io.ReadFull(conn, head); err != nil {
		return nil, err
	}
	size := int(xgb.Get16(head[2:])) * 4
	if size < 4 {
		return nil, io.ErrUnexpectedEOF
	}
	req := make([]byte, size)
	copy(req, head)
	if _, err := io.ReadFull(conn, req[4:]); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Server) handle(req []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op := req[0]
	s.seq++
	s.counts[op]++

	var resource uint32
	if len(req) >= 8 {
		resource = xgb.Get32(req[4:])
	}

	switch code, failing := s.cfg.Errors[op]; {
	case failing:
		s.conn.Write(errorPacket(code, op, s.seq, resource))

	case op == OpChangeWindowAttributes:
		// no reply

	case op == OpQueryTree:
		s.conn.Write(s.queryTreeReply())

	case op == OpGetAtomName:
		name, ok := s.cfg.Atoms[xproto.Atom(resource)]
		if !ok {
			s.conn.Write(errorPacket(xproto.BadAtom, op, s.seq, resource))
			break
		}
		s.conn.Write(atomNameReply(s.seq, name))

	case op == OpGetInputFocus:
		buf := newReply(s.seq, 0)
		buf[1] = xproto.InputFocusPointerRoot
		xgb.Put32(buf[8:], uint32(s.cfg.Root))
		s.conn.Write(buf)

	default:
		s.conn.Write(errorPacket(xproto.BadRequest, op, s.seq, 0))
	}

	if s.cfg.HangupAfter != 0 && op == s.cfg.HangupAfter {
		s.conn.Close()
	}
}

// newReply returns a reply header followed by extra bytes of data.
func newReply(seq uint16, extra int) []byte {
	buf := make([]byte, 32+extra)
	buf[0] = 1
	xgb.Put16(buf[2:], seq)
	xgb.Put32(buf[4:], uint32(extra/4))
	return buf
}

func (s *Server) queryTreeReply() []byte {
	buf := newReply(s.seq, 4*len(s.cfg.Children))
	xgb.Put32(buf[8:], uint32(s.cfg.Root))
	xgb.Put16(buf[16:], uint16(len(s.cfg.Children)))
	for i, w := range s.cfg.Children {
		xgb.Put32(buf[32+4*i:], uint32(w))
	}
	return buf
}

func atomNameReply(seq uint16, name string) []byte {
	buf := newReply(seq, xgb.Pad(len(name)))
	xgb.Put16(buf[8:], uint16(len(name)))
	copy(buf[32:], name)
	return buf
}

func errorPacket(code, major byte, seq uint16, resource uint32) []byte {
	buf := make([]byte, 32)
	buf[1] = code
	xgb.Put16(buf[2:], seq)
	xgb.Put32(buf[4:], resource)
	buf[10] = major
	return buf
}
