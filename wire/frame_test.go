package wire

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRequestRoundTrip(t *testing.T) {
	cmds := []Command{CmdNoOp, CmdReadSingleValue, CmdWriteSingleValue, CmdReadString, CmdWriteString}
	for _, cmd := range cmds {
		payload := [4]byte{0x2A, 0x00, 0x00, 0x00}
		f := EncodeRequest(cmd, 1001, payload)
		gotCmd, gotTag, gotPayload, err := DecodeRequest(f)
		if err != nil {
			t.Fatalf("DecodeRequest(%v): %v", cmd, err)
		}
		if gotCmd != cmd || gotTag != 1001 || gotPayload != payload {
			t.Fatalf("round trip mismatch: got (%v,%d,%v)", gotCmd, gotTag, gotPayload)
		}
	}
}

func TestEncodeDecodeResponseRoundTrip(t *testing.T) {
	statuses := []Status{StatusSuccessful, StatusAlive, StatusUnauthorizedAccess, StatusImplausibleArgument}
	for _, st := range statuses {
		payload := [4]byte{0, 0, 0, 0}
		f := EncodeResponse(st, 42, payload)
		gotStatus, gotTag, gotPayload, err := DecodeResponse(f)
		if err != nil {
			t.Fatalf("DecodeResponse(%v): %v", st, err)
		}
		if gotStatus != st || gotTag != 42 || gotPayload != payload {
			t.Fatalf("round trip mismatch: got (%v,%d,%v)", gotStatus, gotTag, gotPayload)
		}
	}
}

func TestEndianness(t *testing.T) {
	f := EncodeRequest(CmdReadSingleValue, 0, [4]byte{})
	if f[0] != byte(CmdReadSingleValue&0xFF) || f[1] != byte(CmdReadSingleValue>>8) {
		t.Fatalf("unexpected endianness: %v", f[:2])
	}
}

func TestS1NoOpBytes(t *testing.T) {
	req := EncodeRequest(CmdNoOp, 0, ZeroPayload)
	want := Frame{0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if req != want {
		t.Fatalf("NoOp request = % x, want % x", req, want)
	}
	resp := EncodeResponse(StatusAlive, 0, ZeroPayload)
	wantResp := Frame{0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	if resp != wantResp {
		t.Fatalf("NoOp response = % x, want % x", resp, wantResp)
	}
}

func TestFramesNeeded(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 8: 1, 9: 2, 16: 2, 17: 3}
	for n, want := range cases {
		if got := FramesNeeded(n); got != want {
			t.Fatalf("FramesNeeded(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestPadToFrameSize(t *testing.T) {
	aligned := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if padded := PadToFrameSize(aligned); !bytes.Equal(padded, aligned) {
		t.Fatalf("aligned buffer was modified: % x", padded)
	}

	unaligned := []byte{1, 2, 3}
	padded := PadToFrameSize(unaligned)
	if len(padded)%FrameSize != 0 {
		t.Fatalf("padded length %d not a multiple of %d", len(padded), FrameSize)
	}
	if !bytes.HasPrefix(padded, unaligned) {
		t.Fatalf("padded buffer %v does not start with %v", padded, unaligned)
	}
}

func TestDecodeRequestUnknownCommand(t *testing.T) {
	f := EncodeRequest(Command(0xBEEF), 0, [4]byte{})
	_, _, _, err := DecodeRequest(f)
	if _, ok := err.(UnknownCommandError); !ok {
		t.Fatalf("expected UnknownCommandError, got %v", err)
	}
}

func TestDecodeResponseUnknownStatus(t *testing.T) {
	f := EncodeResponse(Status(0x1234), 0, [4]byte{})
	_, _, _, err := DecodeResponse(f)
	if _, ok := err.(UnknownStatusError); !ok {
		t.Fatalf("expected UnknownStatusError, got %v", err)
	}
}

func TestDiffOnMismatch(t *testing.T) {
	want := Frame{0, 1, 2, 3, 4, 5, 6, 7}
	got := Frame{0, 1, 2, 3, 4, 5, 6, 8}
	if diff := cmp.Diff(want, got); diff == "" {
		t.Fatal("expected frames to differ")
	}
}
