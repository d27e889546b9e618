package client

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/op/go-logging"

	"fillwire.dev/fillwire/internal/obslog"
	"fillwire.dev/fillwire/protocol"
	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// Config carries the recognized client options and their defaults
// (spec.md §6.4).
type Config struct {
	Host              string
	Port              int
	Timeout           time.Duration
	HeartbeatEnabled  bool
	HeartbeatInterval time.Duration
}

// DefaultConfig returns the documented defaults with host filled in;
// host has no default and is required.
func DefaultConfig(host string) Config {
	return Config{
		Host:              host,
		Port:              5000,
		Timeout:           5 * time.Second,
		HeartbeatEnabled:  true,
		HeartbeatInterval: 20 * time.Second,
	}
}

// Client is the endpoint described in spec.md §4.D.1: Disconnected
// ⇄ Connected, with an optional periodic heartbeat while Connected.
type Client struct {
	cfg Config
	log *logging.Logger

	mu        sync.Mutex
	conn      net.Conn
	connected bool
	stopBeat  chan struct{}
	beatDone  chan struct{}
}

// Option configures optional Client fields.
type Option func(*Client)

// WithLogger overrides the default internal/obslog logger.
func WithLogger(log *logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a Client in the Disconnected state. Call Connect before
// any command method.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{cfg: cfg, log: obslog.New("client")}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Connected reports whether the endpoint currently holds a live socket.
func (c *Client) Connected() (connected bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// Connect dials host:port within the configured timeout and, if
// heartbeat_enabled, starts the periodic NoOp goroutine.
func (c *Client) Connect() (err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.connected {
		return
	}

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	dialer := net.Dialer{Timeout: c.cfg.Timeout}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		err = fmt.Errorf("client: connect: %w", err)
		return
	}

	c.conn = conn
	c.connected = true
	c.stopBeat = make(chan struct{})
	c.beatDone = make(chan struct{})
	if c.cfg.HeartbeatEnabled {
		go c.heartbeatLoop(c.stopBeat, c.beatDone)
	} else {
		close(c.beatDone)
	}
	c.log.Infof("connected to %s", addr)
	return
}

// Disconnect stops the heartbeat and releases the socket. Safe to call
// on an already-Disconnected client, including one that tore itself
// down already (e.g. a failed heartbeat already ran closeSocket).
func (c *Client) Disconnect() (err error) {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return
	}
	stopBeat := c.stopBeat
	beatDone := c.beatDone
	c.mu.Unlock()

	if stopBeat != nil {
		close(stopBeat)
		<-beatDone
	}
	return c.closeSocket()
}

// closeSocket closes the live connection and marks the client
// Disconnected; idempotent once already Disconnected. This is the
// only teardown step that withConn and heartbeatLoop use directly: it
// never touches stopBeat/beatDone, so calling it from the heartbeat
// goroutine itself cannot self-join (unlike Disconnect, which waits
// for heartbeatLoop to exit).
func (c *Client) closeSocket() (err error) {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return
	}
	conn := c.conn
	c.connected = false
	c.conn = nil
	c.mu.Unlock()
	err = conn.Close()
	return
}

// heartbeatLoop sends a NoOp every heartbeat_interval while connected;
// a failed NoOp disconnects the client (spec.md §4.D.1). NoOp itself
// tears the connection down through withConn/closeSocket on failure,
// so this loop only needs to stop ticking and return.
func (c *Client) heartbeatLoop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.NoOp(); err != nil {
				c.log.Warningf("heartbeat failed, disconnecting: %s", err)
				return
			}
		}
	}
}

// withConn runs fn against the live connection under the configured
// per-operation timeout. A surfaced wire.Status is a completed
// single-frame exchange, not a stream desync, so the connection stays
// open (spec.md §7); a deadline-exceeded or other I/O failure means
// the stream can no longer be trusted and closeSocket runs (spec.md §5).
func (c *Client) withConn(fn func(conn net.Conn) error) (err error) {
	c.mu.Lock()
	if !c.connected {
		c.mu.Unlock()
		return NotConnected
	}
	conn := c.conn
	c.mu.Unlock()

	if err = conn.SetDeadline(time.Now().Add(c.cfg.Timeout)); err != nil {
		return
	}
	err = fn(conn)
	if err == nil {
		return
	}
	if _, ok := err.(wire.Status); ok {
		return
	}
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		err = Timeout
	}
	c.closeSocket()
	return
}

// NoOp sends one heartbeat frame (spec.md §4.B.1).
func (c *Client) NoOp() (err error) {
	return c.withConn(func(conn net.Conn) error {
		return protocol.ClientNoOp(conn)
	})
}

// ReadInt reads a numeric tag as its Integer view (spec.md §4.B.2).
func (c *Client) ReadInt(tagID uint16) (v int32, err error) {
	err = c.withConn(func(conn net.Conn) error {
		payload, e := protocol.ClientReadSingleValue(conn, tagID)
		if e != nil {
			return e
		}
		val, e := registry.DecodeValue(registry.Integer, payload)
		if e != nil {
			return e
		}
		v = int32(val.(registry.IntValue))
		return nil
	})
	return
}

// ReadUint reads a numeric tag as its Unsigned view.
func (c *Client) ReadUint(tagID uint16) (v uint32, err error) {
	err = c.withConn(func(conn net.Conn) error {
		payload, e := protocol.ClientReadSingleValue(conn, tagID)
		if e != nil {
			return e
		}
		val, e := registry.DecodeValue(registry.Unsigned, payload)
		if e != nil {
			return e
		}
		v = uint32(val.(registry.UintValue))
		return nil
	})
	return
}

// ReadFloat reads a numeric tag as its Float view.
func (c *Client) ReadFloat(tagID uint16) (v float32, err error) {
	err = c.withConn(func(conn net.Conn) error {
		payload, e := protocol.ClientReadSingleValue(conn, tagID)
		if e != nil {
			return e
		}
		val, e := registry.DecodeValue(registry.Float, payload)
		if e != nil {
			return e
		}
		v = float32(val.(registry.FloatValue))
		return nil
	})
	return
}

// WriteInt writes an Integer-typed tag (spec.md §4.B.3).
func (c *Client) WriteInt(tagID uint16, v int32) error {
	return c.withConn(func(conn net.Conn) error {
		return protocol.ClientWriteSingleValue(conn, tagID, registry.IntValue(v).EncodePayload())
	})
}

// WriteUint writes an Unsigned-typed tag.
func (c *Client) WriteUint(tagID uint16, v uint32) error {
	return c.withConn(func(conn net.Conn) error {
		return protocol.ClientWriteSingleValue(conn, tagID, registry.UintValue(v).EncodePayload())
	})
}

// WriteFloat writes a Float-typed tag.
func (c *Client) WriteFloat(tagID uint16, v float32) error {
	return c.withConn(func(conn net.Conn) error {
		return protocol.ClientWriteSingleValue(conn, tagID, registry.FloatValue(v).EncodePayload())
	})
}

// ReadString reads a String-typed tag (spec.md §4.B.4).
func (c *Client) ReadString(tagID uint16) (s string, err error) {
	err = c.withConn(func(conn net.Conn) error {
		got, e := protocol.ClientReadString(conn, tagID)
		if e != nil {
			return e
		}
		s = got
		return nil
	})
	return
}

// WriteString writes a String-typed tag (spec.md §4.B.5).
func (c *Client) WriteString(tagID uint16, s string) error {
	return c.withConn(func(conn net.Conn) error {
		return protocol.ClientWriteString(conn, tagID, s)
	})
}
