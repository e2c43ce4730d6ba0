package x11

import (
	"errors"
	"testing"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProtocolError(t *testing.T) {
	tests := []struct {
		name string
		in   xgb.Error
		code byte
	}{
		{"request", xproto.RequestError{Sequence: 1, BadValue: 7, MajorOpcode: 200}, ErrorRequest},
		{"value", xproto.ValueError{Sequence: 2, BadValue: 7, MajorOpcode: 12}, ErrorValue},
		{"window", xproto.WindowError{Sequence: 3, BadValue: 7, MajorOpcode: 2}, ErrorWindow},
		{"atom", xproto.AtomError{Sequence: 4, BadValue: 7, MajorOpcode: 17}, ErrorAtom},
		{"match", xproto.MatchError{Sequence: 5, BadValue: 7, MajorOpcode: 2}, ErrorMatch},
		{"drawable", xproto.DrawableError{Sequence: 6, BadValue: 7, MajorOpcode: 14}, ErrorDrawable},
		{"access", xproto.AccessError{Sequence: 7, BadValue: 7, MajorOpcode: 2}, ErrorAccess},
		{"implementation", xproto.ImplementationError{Sequence: 8, BadValue: 7, MajorOpcode: 1}, ErrorImplementation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perr := NewProtocolError(tt.in)
			assert.Equal(t, tt.code, perr.Code)
			assert.Equal(t, uint32(7), perr.ResourceID)
			assert.Equal(t, tt.in.SequenceId(), perr.Sequence)
			assert.Equal(t, errorText[tt.code], perr.Description)
			assert.NotEmpty(t, perr.Description)
		})
	}
}

func TestProtocolErrorMessage(t *testing.T) {
	perr := NewProtocolError(xproto.WindowError{Sequence: 9, BadValue: 0x2a, MajorOpcode: 2, MinorOpcode: 0})

	assert.Equal(t,
		"X11 error: BadWindow (invalid Window parameter) (request code: 2, error code: 3, resource id: 42)",
		perr.Error())
}

func TestErrorTextCoversCoreCodes(t *testing.T) {
	for code := byte(ErrorRequest); code <= ErrorImplementation; code++ {
		assert.NotEmpty(t, errorText[code], "code %d", code)
	}
}

func TestAsProtocolError(t *testing.T) {
	assert.NoError(t, asProtocolError(nil))

	plain := errors.New("write: broken pipe")
	assert.Same(t, plain, asProtocolError(plain))

	var perr *ProtocolError
	require.ErrorAs(t, asProtocolError(xproto.ValueError{BadValue: 3, MajorOpcode: 2}), &perr)
	assert.Equal(t, byte(ErrorValue), perr.Code)
}
