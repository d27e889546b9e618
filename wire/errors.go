package wire

import "fmt"

// MalformedFrame is the error for a byte slice that cannot even be
// interpreted as an 8-byte frame. No function in this package returns
// it: Frame is a fixed-size array, and ReadFrame reports a truncated
// frame as io.ErrUnexpectedEOF.
var MalformedFrame = fmt.Errorf("wire: malformed frame")

// TagIdMismatch is returned by a caller-side check when a response's
// tag id does not match the tag id of the request it answers.
var TagIdMismatch = fmt.Errorf("wire: tag id mismatch")

// UnknownCommandError is the typed error for a request frame whose
// command field is outside the closed command enumeration. Grounded on
// the pack's typed-error-with-code convention (Jxck-go-spdy's
// Error{ErrorCode, StreamId}).
type UnknownCommandError Command

func (e UnknownCommandError) Error() string {
	return fmt.Sprintf("wire: unknown command %d", uint16(e))
}

// UnknownStatusError is the typed error for a response frame whose
// status field is outside the closed status enumeration.
type UnknownStatusError Status

func (e UnknownStatusError) Error() string {
	return fmt.Sprintf("wire: unknown status %#04x", uint16(e))
}

// InvalidFrameSizeError is returned by WriteRaw, which operates on a
// raw byte slice rather than a Frame, when that slice's length is not
// a multiple of FrameSize.
type InvalidFrameSizeError int

func (e InvalidFrameSizeError) Error() string {
	return fmt.Sprintf("wire: invalid frame size %d, want %d", int(e), FrameSize)
}
