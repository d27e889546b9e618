package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// ClientReadString sends a ReadString request for tagID, receives the
// header frame plus its body frames, and transcodes the result back to
// UTF-8 (spec.md §4.B.4).
func ClientReadString(rw io.ReadWriter, tagID uint16) (string, error) {
	req := wire.EncodeRequest(wire.CmdReadString, tagID, wire.ZeroPayload)
	if err := wire.WriteFrame(rw, req); err != nil {
		return "", fmt.Errorf("protocol: read_string write header: %w", err)
	}
	header, err := wire.ReadFrame(rw)
	if err != nil {
		return "", fmt.Errorf("protocol: read_string read header: %w", err)
	}
	status, gotTag, payload, err := wire.DecodeResponse(header)
	if err != nil {
		return "", err
	}
	if status != wire.StatusSuccessful {
		return "", status
	}
	if gotTag != tagID {
		return "", wire.TagIdMismatch
	}
	codeUnits := binary.LittleEndian.Uint32(payload[:])
	byteLength := int(codeUnits) * 2
	frameCount := wire.FramesNeeded(byteLength)
	buf, err := wire.ReadFrames(rw, frameCount)
	if err != nil {
		return "", fmt.Errorf("protocol: read_string read body: %w", err)
	}
	buf = buf[:byteLength]
	return wire.UTF16LEToUTF8(buf)
}

// ServerReadString handles one decoded ReadString request against reg,
// writing the header frame and the UTF-16LE body frames.
func ServerReadString(w io.Writer, reg registry.Registry, tagID uint16, payload [4]byte) error {
	if payload != wire.ZeroPayload {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	tag, err := reg.Get(tagID)
	if err != nil || tag.Type != registry.String {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	if !tag.Access.Readable() {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusUnauthorizedAccess, tagID, wire.ZeroPayload))
	}
	s := string(tag.Value().(registry.StringValue))
	body, err := wire.UTF8ToUTF16LE(s)
	if err != nil {
		return wire.WriteFrame(w, wire.EncodeResponse(wire.StatusImplausibleArgument, tagID, wire.ZeroPayload))
	}
	codeUnits := len(body) / 2
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(codeUnits))
	if err := wire.WriteFrame(w, wire.EncodeResponse(wire.StatusSuccessful, tagID, header)); err != nil {
		return err
	}
	return wire.WriteRaw(w, wire.PadToFrameSize(body))
}
