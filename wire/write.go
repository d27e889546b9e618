package wire

import "io"

// WriteFrame writes exactly one 8-byte frame to w.
func WriteFrame(w io.Writer, f Frame) error {
	_, err := w.Write(f[:])
	return err
}

// WriteRaw writes buf, which must already be a multiple of FrameSize
// (see PadToFrameSize), as a sequence of frames to w. Used to send the
// body frames of a multi-frame string exchange.
func WriteRaw(w io.Writer, buf []byte) error {
	if len(buf)%FrameSize != 0 {
		return InvalidFrameSizeError(len(buf))
	}
	_, err := w.Write(buf)
	return err
}
