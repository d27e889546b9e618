package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// ClientWriteString transcodes s to UTF-16LE, sends the header frame
// followed by the padded body frames, and validates the single response
// frame (spec.md §4.B.5).
func ClientWriteString(rw io.ReadWriter, tagID uint16, s string) error {
	body, err := wire.UTF8ToUTF16LE(s)
	if err != nil {
		return err
	}
	var headerPayload [4]byte
	binary.LittleEndian.PutUint32(headerPayload[:], uint32(len(body)/2))
	header := wire.EncodeRequest(wire.CmdWriteString, tagID, headerPayload)
	if err := wire.WriteFrame(rw, header); err != nil {
		return fmt.Errorf("protocol: write_string write header: %w", err)
	}
	if err := wire.WriteRaw(rw, wire.PadToFrameSize(body)); err != nil {
		return fmt.Errorf("protocol: write_string write body: %w", err)
	}
	resp, err := wire.ReadFrame(rw)
	if err != nil {
		return fmt.Errorf("protocol: write_string read: %w", err)
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

// ServerWriteString handles one decoded WriteString request: header is
// already decoded into tagID/payload (the code-unit count L) by the
// dispatcher, which hands r the remaining connection to read the
// announced body frames from before replying on w.
func ServerWriteString(r io.Reader, w io.Writer, reg registry.Registry, tagID uint16, payload [4]byte) error {
	codeUnits := binary.LittleEndian.Uint32(payload[:])
	byteLength := int(codeUnits) * 2
	frameCount := wire.FramesNeeded(byteLength)
	buf, err := wire.ReadFrames(r, frameCount)
	if err != nil {
		return fmt.Errorf("protocol: write_string read body: %w", err)
	}
	buf = buf[:byteLength]

	tag, err := reg.Get(tagID)
	if err != nil || tag.Type != registry.String {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	if !tag.Access.Writable() {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusUnauthorizedAccess, tagID, wire.ZeroPayload))
	}
	s, err := wire.UTF16LEToUTF8(buf)
	if err != nil {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	if err := reg.SetValue(tagID, registry.StringValue(s)); err != nil {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusWriteNotSuccessful, tagID, wire.ZeroPayload))
	}
	return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusSuccessful, tagID, wire.ZeroPayload))
}
