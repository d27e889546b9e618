// Package server implements the listener side of the protocol: bind,
// accept loop, and one request loop per connection (spec.md §4.D.2).
package server

import (
	"fmt"
	"net"
	"sync"

	"github.com/op/go-logging"
	uuid "github.com/satori/go.uuid"

	"fillwire.dev/fillwire/internal/metrics"
	"fillwire.dev/fillwire/internal/notify"
	"fillwire.dev/fillwire/internal/obslog"
	"fillwire.dev/fillwire/protocol"
	"fillwire.dev/fillwire/registry"
	"fillwire.dev/fillwire/wire"
)

// Server is the endpoint described in spec.md §4.D.2: a listen socket,
// a tag registry, and the set of currently connected client sockets.
type Server struct {
	port     int
	reg      registry.Registry
	notifier *notify.Notifier
	log      *logging.Logger

	mu       sync.Mutex
	listener net.Listener
	clients  map[net.Conn]struct{}
	shutdown chan struct{}
}

// Option configures optional Server fields.
type Option func(*Server)

// WithLogger overrides the default internal/obslog logger.
func WithLogger(log *logging.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithNotifier attaches a best-effort SNS publisher for tag writes.
// Without this option, tag writes are not published.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Server) { s.notifier = n }
}

// New builds a Server bound to no socket yet; call ListenAndServe to
// start accepting connections against reg.
func New(port int, reg registry.Registry, opts ...Option) *Server {
	s := &Server{
		port:    port,
		reg:     reg,
		log:     obslog.New("server"),
		clients: make(map[net.Conn]struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Registry returns the tag registry this server dispatches against, for
// administrative callers (spec.md §6.3).
func (s *Server) Registry() registry.Registry {
	return s.reg
}

// ListenAndServe binds the listen socket with address-reuse enabled
// and runs the monitored accept loop until Shutdown is called. It
// blocks until the listener is closed.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	if s.listener != nil {
		s.mu.Unlock()
		return AlreadyServing
	}
	ln, err := listenReuseAddr("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.listener = ln
	s.shutdown = make(chan struct{})
	s.mu.Unlock()

	s.log.Infof("listening on port %d", s.port)
	s.superviseAccept()
	return nil
}

// superviseAccept runs acceptLoop and restarts it if it ever dies from
// a panic, per spec.md §4.D.2 ("if it dies, the server logs and
// restarts it"). It returns once Shutdown has closed the listener.
func (s *Server) superviseAccept() {
	for {
		done := make(chan struct{})
		go func() {
			defer close(done)
			obslog.RecoverToLog(s.acceptLoop, s.log)
		}()
		<-done

		select {
		case <-s.shutdown:
			return
		default:
			s.log.Error("acceptor died, restarting")
		}
	}
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.shutdown:
				return
			default:
			}
			s.log.Errorf("accept error: %s", err)
			continue
		}
		s.addClient(conn)
		s.reg.IncrClientCount(1)
		connID := uuid.NewV4()
		go func() {
			defer s.removeClient(conn)
			defer s.reg.IncrClientCount(-1)
			defer conn.Close()
			obslog.RecoverToLog(func() { s.requestLoop(conn, connID) }, s.log)
		}()
	}
}

// requestLoop reads one frame, dispatches it, and repeats until the
// peer closes the connection or a fatal error occurs (spec.md §4.D.2
// step 3). connID tags every log line from this connection so
// concurrent request loops can be told apart in the server's output.
func (s *Server) requestLoop(conn net.Conn, connID uuid.UUID) {
	observer := func(tagID uint16, status wire.Status) {
		s.notifier.Publish(notify.TagWritten{TagID: tagID, Status: status.String()})
	}
	for {
		if err := protocol.Dispatch(conn, s.reg, observer); err != nil {
			if err.Error() != "EOF" {
				s.log.Debugf("connection %s closed: %s", connID, err)
			}
			return
		}
	}
}

func (s *Server) addClient(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[conn] = struct{}{}
	metrics.ConnectedClients.Set(float64(len(s.clients)))
}

func (s *Server) removeClient(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, conn)
	metrics.ConnectedClients.Set(float64(len(s.clients)))
}

// Shutdown closes the listener and every currently connected client
// socket (spec.md §4.D.2 step 4).
func (s *Server) Shutdown() error {
	s.mu.Lock()
	if s.listener == nil {
		s.mu.Unlock()
		return nil
	}
	close(s.shutdown)
	err := s.listener.Close()
	for conn := range s.clients {
		conn.Close()
	}
	s.mu.Unlock()
	return err
}
