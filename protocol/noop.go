package protocol

import (
	"fmt"
	"io"

	"fillwire.dev/fillwire/wire"
)

// ClientNoOp sends a NoOp request over rw and validates the reply,
// mirroring the teacher's requestNoOpOver/RequestNoOp split
// (daemon/client/client.go) one call per command family.
func ClientNoOp(rw io.ReadWriter) error {
	req := wire.EncodeRequest(wire.CmdNoOp, 0, wire.ZeroPayload)
	if err := wire.WriteFrame(rw, req); err != nil {
		return fmt.Errorf("protocol: noop write: %w", err)
	}
	resp, err := wire.ReadFrame(rw)
	if err != nil {
		return fmt.Errorf("protocol: noop read: %w", err)
	}
	status, tagID, payload, err := wire.DecodeResponse(resp)
	if err != nil {
		return err
	}
	if status != wire.StatusAlive || tagID != 0 || payload != wire.ZeroPayload {
		return InvalidNoOpResponse
	}
	return nil
}

// ServerNoOp handles one decoded NoOp request and writes the reply.
// Per spec.md §4.B.1, a non-zero tag id or payload on an otherwise
// well-formed NoOp request is ImplausibleArgument, echoing the received
// tag id with a zero payload (spec.md §9 open question c).
func ServerNoOp(w io.Writer, tagID uint16, payload [4]byte) error {
	if tagID != 0 || payload != wire.ZeroPayload {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusAlive, 0, wire.ZeroPayload))
}
