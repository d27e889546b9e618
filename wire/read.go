package wire

import "io"

// ReadFrame reads exactly one 8-byte frame from r. A short read before
// any byte of the frame is returned as the underlying io.EOF (the
// stream closed cleanly between frames); a short read after the first
// byte is io.ErrUnexpectedEOF, since the stream is now misaligned.
func ReadFrame(r io.Reader) (f Frame, err error) {
	_, err = io.ReadFull(r, f[:])
	return
}

// ReadFrames reads n consecutive frames and returns their payload
// bytes concatenated, used by the multi-frame string handlers to pull
// in exactly the number of body frames a header announced. Callers
// MUST consume all n frames even on a later application-level error,
// or close the connection instead, per the no-resync policy of spec §5.
func ReadFrames(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n*FrameSize)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}
