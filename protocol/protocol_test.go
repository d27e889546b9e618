package protocol

import (
	"net"
	"testing"

	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// serve runs one Dispatch call per request arriving on the server side
// of conn until the client closes it, mirroring the teacher's in-process
// client/server test harness (daemon/client/client_test.go).
func serve(t *testing.T, conn net.Conn, reg registry.Registry) {
	t.Helper()
	go func() {
		for {
			if err := Dispatch(conn, reg, nil); err != nil {
				return
			}
		}
	}()
}

func pipe(t *testing.T, reg registry.Registry) net.Conn {
	t.Helper()
	client, server := net.Pipe()
	serve(t, server, reg)
	t.Cleanup(func() { client.Close(); server.Close() })
	return client
}

func mustTag(t *testing.T, id uint16, typ registry.DataType, access registry.Access, v registry.Value) registry.Tag {
	t.Helper()
	tag, err := registry.NewTag(id, "test", typ, access, v)
	if err != nil {
		t.Fatalf("NewTag: %v", err)
	}
	return tag
}

func TestClientNoOp(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	conn := pipe(t, reg)
	if err := ClientNoOp(conn); err != nil {
		t.Fatal(err)
	}
}

func TestClientReadWriteSingleValue(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 7, registry.Integer, registry.ReadWrite, registry.IntValue(0)))
	conn := pipe(t, reg)

	want := registry.IntValue(123)
	if err := ClientWriteSingleValue(conn, 7, want.EncodePayload()); err != nil {
		t.Fatal(err)
	}
	got, err := ClientReadSingleValue(conn, 7)
	if err != nil {
		t.Fatal(err)
	}
	if got != want.EncodePayload() {
		t.Fatalf("got %v, want %v", got, want.EncodePayload())
	}
}

func TestClientReadSingleValueUnauthorized(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 1, registry.Integer, registry.WriteOnly, registry.IntValue(1)))
	conn := pipe(t, reg)

	_, err := ClientReadSingleValue(conn, 1)
	if err != wire.StatusUnauthorizedAccess {
		t.Fatalf("got %v, want UnauthorizedAccess", err)
	}
}

func TestClientReadSingleValueOnStringTag(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 1, registry.String, registry.ReadWrite, registry.StringValue("x")))
	conn := pipe(t, reg)

	_, err := ClientReadSingleValue(conn, 1)
	if err != wire.StatusImplausibleArgument {
		t.Fatalf("got %v, want ImplausibleArgument", err)
	}
}

func TestClientReadWriteString(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 1, registry.String, registry.ReadWrite, registry.StringValue("")))
	conn := pipe(t, reg)

	if err := ClientWriteString(conn, 1, "Hi, 世界"); err != nil {
		t.Fatal(err)
	}
	got, err := ClientReadString(conn, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hi, 世界" {
		t.Fatalf("got %q, want %q", got, "Hi, 世界")
	}
}

func TestClientReadStringEmpty(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 1, registry.String, registry.ReadWrite, registry.StringValue("")))
	conn := pipe(t, reg)

	got, err := ClientReadString(conn, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Fatalf("got %q, want empty", got)
	}
}

func TestDispatchUnknownCommandKeepsConnectionOpen(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	conn := pipe(t, reg)

	req := wire.EncodeRequest(wire.CmdReadList, 0, wire.ZeroPayload)
	if err := wire.WriteFrame(conn, req); err != nil {
		t.Fatal(err)
	}
	resp, err := wire.ReadFrame(conn)
	if err != nil {
		t.Fatal(err)
	}
	status, _, _, err := wire.DecodeResponse(resp)
	if err != nil {
		t.Fatal(err)
	}
	if status != wire.StatusUnknownCommand {
		t.Fatalf("got %v, want UnknownCommand", status)
	}

	// connection must still serve further requests.
	if err := ClientNoOp(conn); err != nil {
		t.Fatalf("connection not usable after UnknownCommand: %v", err)
	}
}

func TestClientWriteSingleValueUnauthorized(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 1, registry.Integer, registry.ReadOnly, registry.IntValue(1)))
	conn := pipe(t, reg)

	err := ClientWriteSingleValue(conn, 1, registry.IntValue(2).EncodePayload())
	if err != wire.StatusUnauthorizedAccess {
		t.Fatalf("got %v, want UnauthorizedAccess", err)
	}
}
