// +build !windows

package server

import (
	"context"
	"net"
	"syscall"

	"golang.org/x/sys/unix"
)

// listenReuseAddr binds with SO_REUSEADDR set so a restarted server can
// rebind a port still draining TIME_WAIT connections (spec.md §4.D.2
// step 1, §6.2).
func listenReuseAddr(network, addr string) (net.Listener, error) {
	cfg := net.ListenConfig{
		Control: func(_, _ string, c syscall.RawConn) error {
			var setErr error
			err := c.Control(func(fd uintptr) {
				setErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}
			return setErr
		},
	}
	return cfg.Listen(context.Background(), network, addr)
}
