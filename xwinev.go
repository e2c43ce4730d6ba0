// Package xwinev watches the root window of an X11 display and logs one line
// per window lifecycle event: creation, destruction, configure, map, unmap,
// exposure and property changes.
package xwinev

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/jezek/xgb/xproto"
	"github.com/rs/zerolog"

	"github.com/AchrafSoltani/xwinev/internal/x11"
)

// ErrOpenDisplay is matched by errors returned from Open when no connection
// could be made.
var ErrOpenDisplay = errors.New("failed to open X11 display")

// OpenError reports a failed connection attempt.
type OpenError struct {
	Display string
	Err     error
}

func (e *OpenError) Error() string {
	if e.Display == "" {
		return fmt.Sprintf("%s: %v", ErrOpenDisplay, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", ErrOpenDisplay, e.Display, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *OpenError) Unwrap() error { return e.Err }

// Is implements errors.Is support
func (e *OpenError) Is(target error) bool { return target == ErrOpenDisplay }

// Display is the part of an X11 connection the monitor uses.
type Display interface {
	Name() string
	Root() xproto.Window
	SetSynchronous(on bool)
	SelectInput(window xproto.Window, mask uint32) error
	Children(window xproto.Window) ([]xproto.Window, error)
	NextEvent() (x11.Event, error)
	AtomName(atom xproto.Atom) (string, error)
	Close() error
}

// DialFunc opens a Display by name.
type DialFunc func(display string) (Display, error)

// DialX11 connects to a real X server.
func DialX11(display string) (Display, error) {
	conn, err := x11.Connect(display)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// Monitor owns the connection, the root window and the logger for one
// monitoring session.
type Monitor struct {
	display Display
	root    xproto.Window
	logger  zerolog.Logger
	running atomic.Bool

	// Event handling
	eventChan chan result
	quitChan  chan struct{}
	closeOnce sync.Once
}

type result struct {
	event x11.Event
	err   error
}

// Open connects to the display, turns on synchronous mode and subscribes to
// structural, exposure and property events on the root window.
func Open(dial DialFunc, display string, logger zerolog.Logger) (*Monitor, error) {
	d, err := dial(display)
	if err != nil {
		return nil, &OpenError{Display: display, Err: err}
	}
	logger.Info().Msgf("Opened X11 display: %s", d.Name())

	m := &Monitor{
		display:   d,
		root:      d.Root(),
		logger:    logger,
		eventChan: make(chan result),
		quitChan:  make(chan struct{}),
	}

	d.SetSynchronous(true)

	if err := d.SelectInput(m.root, x11.SubscriptionMask); err != nil {
		if !m.warn(err) {
			m.Close()
			return nil, fmt.Errorf("select input on root window: %w", err)
		}
	}

	children, err := d.Children(m.root)
	switch {
	case err == nil:
		logger.Info().Msgf("Root window 0x%x has %d children", uint32(m.root), len(children))
	case !m.warn(err):
		m.Close()
		return nil, fmt.Errorf("query root window tree: %w", err)
	}

	return m, nil
}

// Root returns the monitored root window
func (m *Monitor) Root() xproto.Window { return m.root }

// Running reports whether Run is dispatching events
func (m *Monitor) Running() bool { return m.running.Load() }

// Run dispatches events until ctx is cancelled or the connection is lost.
// Cancellation is a clean stop and returns nil.
func (m *Monitor) Run(ctx context.Context) error {
	m.running.Store(true)
	defer m.running.Store(false)

	go m.pollEvents()

	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-m.eventChan:
			if r.err != nil {
				if m.warn(r.err) {
					continue
				}
				if errors.Is(r.err, x11.ErrClosed) {
					return fmt.Errorf("connection lost: %w", r.err)
				}
				return r.err
			}
			m.dispatch(r.event)
		}
	}
}

// Close stops the event goroutine and closes the connection
func (m *Monitor) Close() error {
	var err error
	m.closeOnce.Do(func() {
		close(m.quitChan)
		err = m.display.Close()
	})
	return err
}

// pollEvents runs in a goroutine, blocking on the connection and handing
// each event or error to Run.
func (m *Monitor) pollEvents() {
	for {
		ev, err := m.display.NextEvent()
		select {
		case m.eventChan <- result{event: ev, err: err}:
		case <-m.quitChan:
			return
		}
		if errors.Is(err, x11.ErrClosed) {
			return
		}
	}
}

// warn logs a server reported error and reports whether err was one.
func (m *Monitor) warn(err error) bool {
	var perr *x11.ProtocolError
	if !errors.As(err, &perr) {
		return false
	}
	m.logger.Warn().Msg(perr.Error())
	return true
}
