package protocol

import (
	"io"

	"fillwire.dev/fillwire/internal/metrics"
	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// observingWriter reports the outgoing response frame's status to
// internal/metrics without requiring every handler to return its
// status explicitly, and remembers it for WriteObserver. Only the
// first frame a handler writes is the response; ServerReadString
// follows it with raw UTF-16LE body frames that must not be mistaken
// for a second response (a body frame's leading bytes can coincide
// with a valid status code), so observation stops after that first
// write.
type observingWriter struct {
	io.Writer
	last     *wire.Status
	observed bool
}

func (o *observingWriter) Write(p []byte) (int, error) {
	n, err := o.Writer.Write(p)
	if err == nil && !o.observed && len(p) == wire.FrameSize {
		var f wire.Frame
		copy(f[:], p)
		if status, _, _, decErr := wire.DecodeResponse(f); decErr == nil {
			metrics.ObserveResponse(status)
			*o.last = status
			o.observed = true
		}
	}
	return n, err
}

// WriteObserver is notified with the tag id and resulting status after
// a WriteSingleValue or WriteString exchange completes; used to drive
// internal/notify's best-effort SNS publish without coupling this
// package to it directly.
type WriteObserver func(tagID uint16, status wire.Status)

// Dispatch reads exactly one request frame from rw, decodes its
// command, and calls the matching handler. Reserved commands
// (ReadList, WriteList) and decode failures reply UnknownCommand with
// tag_id=0 and zero payload; the connection is left open either way
// (spec.md §4.B.6). observer, if non-nil, is called after any write
// command's response is sent.
func Dispatch(rw io.ReadWriter, reg registry.Registry, observer WriteObserver) error {
	req, err := wire.ReadFrame(rw)
	if err != nil {
		return err
	}
	var lastStatus wire.Status
	w := &observingWriter{Writer: rw, last: &lastStatus}
	cmd, tagID, payload, err := wire.DecodeRequest(req)
	if err != nil {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusUnknownCommand, 0, wire.ZeroPayload))
	}
	metrics.ObserveRequest(cmd)

	var handlerErr error
	switch cmd {
	case wire.CmdNoOp:
		handlerErr = ServerNoOp(w, tagID, payload)
	case wire.CmdReadSingleValue:
		handlerErr = ServerReadSingleValue(w, reg, tagID, payload)
	case wire.CmdWriteSingleValue:
		handlerErr = ServerWriteSingleValue(w, reg, tagID, payload)
	case wire.CmdReadString:
		handlerErr = ServerReadString(w, reg, tagID, payload)
	case wire.CmdWriteString:
		handlerErr = ServerWriteString(rw, w, reg, tagID, payload)
	default:
		// CmdReadList, CmdWriteList are reserved (spec.md §9 Non-goals)
		// and fall through to UnknownCommand like any unrecognized id.
		handlerErr = wire.WriteFrame(w, wire.EncodeResponse(wire.StatusUnknownCommand, 0, wire.ZeroPayload))
	}

	if observer != nil && handlerErr == nil && (cmd == wire.CmdWriteSingleValue || cmd == wire.CmdWriteString) {
		observer(tagID, lastStatus)
	}
	return handlerErr
}
