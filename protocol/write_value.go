package protocol

import (
	"fmt"
	"io"

	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// ClientWriteSingleValue sends a WriteSingleValue request with the
// given 4-byte payload and validates the reply (spec.md §4.B.3).
func ClientWriteSingleValue(rw io.ReadWriter, tagID uint16, payload [4]byte) error {
	req := wire.EncodeRequest(wire.CmdWriteSingleValue, tagID, payload)
	if err := wire.WriteFrame(rw, req); err != nil {
		return fmt.Errorf("protocol: write write: %w", err)
	}
	resp, err := wire.ReadFrame(rw)
	if err != nil {
		return fmt.Errorf("protocol: write read: %w", err)
	}
	status, gotTag, respPayload, err := wire.DecodeResponse(resp)
	if err != nil {
		return err
	}
	if status != wire.StatusSuccessful {
		return status
	}
	if gotTag != tagID || respPayload != wire.ZeroPayload {
		return InvalidWriteResponse
	}
	return nil
}

// ServerWriteSingleValue handles one decoded WriteSingleValue request
// against reg and writes the response frame.
func ServerWriteSingleValue(w io.Writer, reg registry.Registry, tagID uint16, payload [4]byte) error {
	tag, err := reg.Get(tagID)
	if err != nil || tag.Type == registry.String {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	if !tag.Access.Writable() {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusUnauthorizedAccess, tagID, wire.ZeroPayload))
	}
	if err := reg.UpdateValue(tagID, payload); err != nil {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusWriteNotSuccessful, tagID, wire.ZeroPayload))
	}
	return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusSuccessful, tagID, wire.ZeroPayload))
}
