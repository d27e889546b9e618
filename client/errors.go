package client

import "fmt"

// NotConnected is returned by any operation attempted while the client
// endpoint is Disconnected (spec.md §4.D.1); it fails fast without
// touching a socket.
var NotConnected = fmt.Errorf("client: not connected")

// Timeout is returned when the per-operation deadline elapses while
// awaiting a frame (spec.md §5). The connection is always closed
// before Timeout is returned, since the stream alignment is unknown.
// A dial that times out in Connect returns the wrapped dial error
// instead.
var Timeout = fmt.Errorf("client: timeout")
