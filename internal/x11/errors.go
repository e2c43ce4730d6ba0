package x11

import (
	"errors"
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// ErrClosed is returned by NextEvent once the connection to the server is gone.
var ErrClosed = errors.New("x11 connection closed")

// errorText mirrors the descriptions Xlib's XGetErrorText gives for the core
// protocol errors.
var errorText = map[byte]string{
	ErrorRequest:        "BadRequest (invalid request code or no such operation)",
	ErrorValue:          "BadValue (integer parameter out of range for operation)",
	ErrorWindow:         "BadWindow (invalid Window parameter)",
	ErrorPixmap:         "BadPixmap (invalid Pixmap parameter)",
	ErrorAtom:           "BadAtom (invalid Atom parameter)",
	ErrorCursor:         "BadCursor (invalid Cursor parameter)",
	ErrorFont:           "BadFont (invalid Font parameter)",
	ErrorMatch:          "BadMatch (invalid parameter attributes)",
	ErrorDrawable:       "BadDrawable (invalid Pixmap or Window parameter)",
	ErrorAccess:         "BadAccess (attempt to access private resource denied)",
	ErrorAlloc:          "BadAlloc (insufficient resources for operation)",
	ErrorColormap:       "BadColor (invalid Colormap parameter)",
	ErrorGContext:       "BadGC (invalid GC parameter)",
	ErrorIDChoice:       "BadIDChoice (invalid resource ID chosen for this connection)",
	ErrorName:           "BadName (named color or font does not exist)",
	ErrorLength:         "BadLength (poly request too large or internal Xlib length error)",
	ErrorImplementation: "BadImplementation (server does not implement operation)",
}

// ProtocolError is an error the server reported for one of our requests.
type ProtocolError struct {
	Code        byte
	MajorOpcode byte
	MinorOpcode uint16
	ResourceID  uint32
	Sequence    uint16
	Description string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("X11 error: %s (request code: %d, error code: %d, resource id: %d)",
		e.Description, e.MajorOpcode, e.Code, e.ResourceID)
}

// NewProtocolError converts an error reported through xgb. Extension errors
// keep xgb's own text as their description and a zero code.
func NewProtocolError(err xgb.Error) *ProtocolError {
	switch e := err.(type) {
	case xproto.RequestError:
		return newCoreError(ErrorRequest, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.ValueError:
		return newCoreError(ErrorValue, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.WindowError:
		return newCoreError(ErrorWindow, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.PixmapError:
		return newCoreError(ErrorPixmap, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.AtomError:
		return newCoreError(ErrorAtom, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.CursorError:
		return newCoreError(ErrorCursor, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.FontError:
		return newCoreError(ErrorFont, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.MatchError:
		return newCoreError(ErrorMatch, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.DrawableError:
		return newCoreError(ErrorDrawable, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.AccessError:
		return newCoreError(ErrorAccess, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.AllocError:
		return newCoreError(ErrorAlloc, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.ColormapError:
		return newCoreError(ErrorColormap, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.GContextError:
		return newCoreError(ErrorGContext, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.IDChoiceError:
		return newCoreError(ErrorIDChoice, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.NameError:
		return newCoreError(ErrorName, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.LengthError:
		return newCoreError(ErrorLength, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	case xproto.ImplementationError:
		return newCoreError(ErrorImplementation, e.MajorOpcode, e.MinorOpcode, e.BadValue, e.Sequence)
	}

	return &ProtocolError{
		ResourceID:  err.BadId(),
		Sequence:    err.SequenceId(),
		Description: err.Error(),
	}
}

func newCoreError(code, major byte, minor uint16, resource uint32, seq uint16) *ProtocolError {
	return &ProtocolError{
		Code:        code,
		MajorOpcode: major,
		MinorOpcode: minor,
		ResourceID:  resource,
		Sequence:    seq,
		Description: errorText[code],
	}
}

// asProtocolError turns the error of a checked request or reply into a
// *ProtocolError when the server produced it.
func asProtocolError(err error) error {
	if err == nil {
		return nil
	}
	if xerr, ok := err.(xgb.Error); ok {
		return NewProtocolError(xerr)
	}
	return err
}
