// Package wire implements the bit-exact 8-byte frame codec shared by
// the fillwire client and server: command/status tables, the
// request/response frame layout, padding and frame-count arithmetic,
// and UTF-16LE <-> UTF-8 transcoding for string payloads.
package wire

import "encoding/binary"

// FrameSize is the fixed size, in bytes, of every frame on the wire.
const FrameSize = 8

// Frame is the raw 8-byte unit exchanged over a connection. The first
// two bytes are a Command on a request frame or a Status on a response
// frame; the next two are the tag id; the last four are the payload.
type Frame [FrameSize]byte

// Command is a request-side opcode occupying bytes 0-1 of a request frame.
type Command uint16

// Command taxonomy, stable on-wire IDs (spec.md §3.2).
const (
	CmdNoOp             Command = 1
	CmdReadSingleValue  Command = 2
	CmdWriteSingleValue Command = 3
	CmdReadList         Command = 4 // reserved, unimplemented
	CmdWriteList        Command = 5 // reserved, unimplemented
	CmdReadString       Command = 8
	CmdWriteString      Command = 9
)

var commandNames = map[Command]string{
	CmdNoOp:             "NoOp",
	CmdReadSingleValue:  "ReadSingleValue",
	CmdWriteSingleValue: "WriteSingleValue",
	CmdReadList:         "ReadList",
	CmdWriteList:        "WriteList",
	CmdReadString:       "ReadString",
	CmdWriteString:      "WriteString",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "UnknownCommand"
}

// known reports whether c is a member of the closed command enumeration.
func (c Command) known() bool {
	_, ok := commandNames[c]
	return ok
}

// Status is a response-side code occupying bytes 0-1 of a response frame.
type Status uint16

// Status taxonomy, stable on-wire codes (spec.md §3.3).
const (
	StatusSuccessful          Status = 0x0000
	StatusWriteNotSuccessful  Status = 0x8888
	StatusMemoryOverflow      Status = 0x9999
	StatusUnknownCommand      Status = 0xAAAA
	StatusUnauthorizedAccess  Status = 0xBBBB
	StatusServerOverload      Status = 0xCCCC
	StatusImplausibleArgument Status = 0xDDDD
	StatusImplausibleList     Status = 0xEEEE
	StatusAlive               Status = 0xFFFF
)

var statusNames = map[Status]string{
	StatusSuccessful:          "Successful",
	StatusWriteNotSuccessful:  "WriteNotSuccessful",
	StatusMemoryOverflow:      "MemoryOverflow",
	StatusUnknownCommand:      "UnknownCommand",
	StatusUnauthorizedAccess:  "UnauthorizedAccess",
	StatusServerOverload:      "ServerOverload",
	StatusImplausibleArgument: "ImplausibleArgument",
	StatusImplausibleList:     "ImplausibleList",
	StatusAlive:               "Alive",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "UnknownStatus"
}

func (s Status) known() bool {
	_, ok := statusNames[s]
	return ok
}

// Error lets a Status be returned and checked as a plain Go error,
// e.g. when a handler surfaces a non-Successful status to its caller.
func (s Status) Error() string {
	return s.String()
}

// ZeroPayload is the all-zero 4-byte payload used by NoOp and by
// every response that carries no value.
var ZeroPayload = [4]byte{}

// EncodeRequest lays out a request frame: cmd (u16 LE), tag_id (u16 LE),
// then the 4 payload bytes verbatim.
func EncodeRequest(cmd Command, tagID uint16, payload [4]byte) Frame {
	var f Frame
	binary.LittleEndian.PutUint16(f[0:2], uint16(cmd))
	binary.LittleEndian.PutUint16(f[2:4], tagID)
	copy(f[4:8], payload[:])
	return f
}

// EncodeResponse lays out a response frame with status in place of cmd.
func EncodeResponse(status Status, tagID uint16, payload [4]byte) Frame {
	var f Frame
	binary.LittleEndian.PutUint16(f[0:2], uint16(status))
	binary.LittleEndian.PutUint16(f[2:4], tagID)
	copy(f[4:8], payload[:])
	return f
}

// DecodeRequest parses a request frame, rejecting unknown commands.
func DecodeRequest(f Frame) (cmd Command, tagID uint16, payload [4]byte, err error) {
	cmd = Command(binary.LittleEndian.Uint16(f[0:2]))
	tagID = binary.LittleEndian.Uint16(f[2:4])
	copy(payload[:], f[4:8])
	if !cmd.known() {
		err = UnknownCommandError(cmd)
	}
	return
}

// DecodeResponse parses a response frame, rejecting unknown statuses.
func DecodeResponse(f Frame) (status Status, tagID uint16, payload [4]byte, err error) {
	status = Status(binary.LittleEndian.Uint16(f[0:2]))
	tagID = binary.LittleEndian.Uint16(f[2:4])
	copy(payload[:], f[4:8])
	if !status.known() {
		err = UnknownStatusError(status)
	}
	return
}

// FramesNeeded returns ceil(n/8), the number of 8-byte frames required
// to carry n bytes of payload.
func FramesNeeded(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + FrameSize - 1) / FrameSize
}

// PadToFrameSize appends zero bytes so len(buf)%FrameSize == 0. A
// buffer already aligned is returned unchanged.
func PadToFrameSize(buf []byte) []byte {
	rem := len(buf) % FrameSize
	if rem == 0 {
		return buf
	}
	return append(buf, make([]byte, FrameSize-rem)...)
}
