// +build windows

package server

import (
	"context"
	"net"
)

// listenReuseAddr binds a plain TCP listener. SO_REUSEADDR on Windows
// permits concurrent binds to the same address, which is not the
// semantics spec.md §6.2 wants, so the option is left unset here.
func listenReuseAddr(network, addr string) (net.Listener, error) {
	var cfg net.ListenConfig
	return cfg.Listen(context.Background(), network, addr)
}
