package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTweakError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *TweakError
		want string
	}{
		{
			name: "without wrapped error",
			err:  New(ErrEncodingUnsupported, "unsupported encoding UTF-16LE"),
			want: "[ENCODING_UNSUPPORTED] unsupported encoding UTF-16LE",
		},
		{
			name: "with wrapped error",
			err:  Wrap(fmt.Errorf("open failed"), ErrFileRead, "cannot read template"),
			want: "[FILE_READ] cannot read template: open failed",
		},
		{
			name: "formatted message",
			err:  Newf(ErrMacroUnknown, "unknown stepped macro name: %s", "godmode_bogus"),
			want: "[MACRO_UNKNOWN] unknown stepped macro name: godmode_bogus",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrap_NilError(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrFileRead, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrFileRead, "ignored %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrNewlineUnknown, "no line terminator found")

	assert.True(t, IsErrorCode(err, ErrNewlineUnknown))
	assert.False(t, IsErrorCode(err, ErrEncodingUnsupported))
	assert.False(t, IsErrorCode(errors.New("plain"), ErrNewlineUnknown))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrValueParse, GetErrorCode(New(ErrValueParse, "bad float")))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))

	// Wrapping preserves the outermost code
	inner := New(ErrValueParse, "bad float")
	outer := Wrap(inner, ErrConfigInvalid, "catalog entry broken")
	assert.Equal(t, ErrConfigInvalid, GetErrorCode(outer))
	assert.True(t, IsErrorCode(errors.Unwrap(outer), ErrValueParse))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrEncodingConfidence, "detection not confident enough").
		WithDetail("file", "Scripts/RoomManager.lua").
		WithDetail("confidence", 42)

	assert.Equal(t, "Scripts/RoomManager.lua", err.Details["file"])
	assert.Equal(t, 42, err.Details["confidence"])
}
