package client

import (
	"net"
	"strconv"
	"testing"
	"time"

	"fillwire.dev/fillwire/protocol"
	"fillwire.dev/fillwire/registry"
)

// startTestServer runs a minimal accept+dispatch loop against reg and
// returns its address, mirroring the teacher's in-process daemon/client
// test harness (daemon/client/client_test.go) but over real TCP since
// the client endpoint dials net.Dial("tcp", ...) directly.
func startTestServer(t *testing.T, reg registry.Registry) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				defer conn.Close()
				for {
					if err := protocol.Dispatch(conn, reg, nil); err != nil {
						return
					}
				}
			}()
		}
	}()
	return ln.Addr().String()
}

func mustTag(t *testing.T, id uint16, typ registry.DataType, access registry.Access, v registry.Value) registry.Tag {
	t.Helper()
	tag, err := registry.NewTag(id, "test", typ, access, v)
	if err != nil {
		t.Fatalf("NewTag: %v", err)
	}
	return tag
}

func newTestClient(t *testing.T, addr string) *Client {
	t.Helper()
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig(host)
	cfg.Port = port
	cfg.HeartbeatEnabled = false
	cfg.Timeout = 2 * time.Second
	c := New(cfg)
	t.Cleanup(func() { c.Disconnect() })
	return c
}

func TestClientConnectDisconnect(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	addr := startTestServer(t, reg)
	c := newTestClient(t, addr)

	if c.Connected() {
		t.Fatal("expected Disconnected before Connect")
	}
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	if !c.Connected() {
		t.Fatal("expected Connected after Connect")
	}
	if err := c.Disconnect(); err != nil {
		t.Fatal(err)
	}
	if c.Connected() {
		t.Fatal("expected Disconnected after Disconnect")
	}
}

func TestClientOperationWhileDisconnectedFailsFast(t *testing.T) {
	c := New(DefaultConfig("127.0.0.1"))
	if err := c.NoOp(); err != NotConnected {
		t.Fatalf("got %v, want NotConnected", err)
	}
}

func TestClientReadWriteInt(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 5, registry.Integer, registry.ReadWrite, registry.IntValue(0)))
	addr := startTestServer(t, reg)
	c := newTestClient(t, addr)
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}

	if err := c.WriteInt(5, 42); err != nil {
		t.Fatal(err)
	}
	got, err := c.ReadInt(5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestClientReadWriteString(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	reg.Insert(mustTag(t, 1, registry.String, registry.ReadWrite, registry.StringValue("")))
	addr := startTestServer(t, reg)
	c := newTestClient(t, addr)
	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}

	if err := c.WriteString(1, "hello"); err != nil {
		t.Fatal(err)
	}
	got, err := c.ReadString(1)
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestClientHeartbeatKeepsAlive(t *testing.T) {
	reg := registry.NewMemoryRegistry(0)
	addr := startTestServer(t, reg)
	host, portStr, _ := net.SplitHostPort(addr)
	port, _ := strconv.Atoi(portStr)
	cfg := DefaultConfig(host)
	cfg.Port = port
	cfg.HeartbeatEnabled = true
	cfg.HeartbeatInterval = 20 * time.Millisecond
	cfg.Timeout = 2 * time.Second
	c := New(cfg)
	t.Cleanup(func() { c.Disconnect() })

	if err := c.Connect(); err != nil {
		t.Fatal(err)
	}
	time.Sleep(80 * time.Millisecond)
	if !c.Connected() {
		t.Fatal("expected client to remain Connected across heartbeat ticks")
	}
}
