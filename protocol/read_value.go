package protocol

import (
	"fmt"
	"io"

	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// ClientReadSingleValue sends a ReadSingleValue request for tagID and
// returns the raw 4-byte payload for the caller to decode as i32, u32,
// or f32 depending on which accessor it used (spec.md §4.B.2).
func ClientReadSingleValue(rw io.ReadWriter, tagID uint16) ([4]byte, error) {
	req := wire.EncodeRequest(wire.CmdReadSingleValue, tagID, wire.ZeroPayload)
	if err := wire.WriteFrame(rw, req); err != nil {
		return wire.ZeroPayload, fmt.Errorf("protocol: read write: %w", err)
	}
	resp, err := wire.ReadFrame(rw)
	if err != nil {
		return wire.ZeroPayload, fmt.Errorf("protocol: read read: %w", err)
	}
	status, gotTag, payload, err := wire.DecodeResponse(resp)
	if err != nil {
		return wire.ZeroPayload, err
	}
	if status != wire.StatusSuccessful {
		return wire.ZeroPayload, status
	}
	if gotTag != tagID {
		return wire.ZeroPayload, wire.TagIdMismatch
	}
	return payload, nil
}

// ServerReadSingleValue handles one decoded ReadSingleValue request
// against reg and writes the response frame.
func ServerReadSingleValue(w io.Writer, reg registry.Registry, tagID uint16, payload [4]byte) error {
	if payload != wire.ZeroPayload {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	tag, err := reg.Get(tagID)
	if err != nil {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	if tag.Type == registry.String {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	if !tag.Access.Readable() {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusUnauthorizedAccess, tagID, wire.ZeroPayload))
	}
	return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusSuccessful, tagID, tag.EncodeValue()))
}
