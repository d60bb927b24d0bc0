package tcp

import (
	"errors"
	"net"
	"sync/atomic"
	"time"
)

// ErrShutdown is returned by Start after Stop was called.
var ErrShutdown = errors.New("server is shut down")

const maxAcceptDelay = time.Second

type (
	onConnection func(net.Conn)
	onError      func(error)
)

// Server accepts connections strictly one at a time: the next connection is accepted only
// after the callback for the previous one has returned and the connection was closed.
type Server struct {
	sock     net.Listener
	onConn   onConnection
	onError  onError
	shutdown atomic.Bool
}

func NewServer(sock net.Listener, onConn onConnection, onErr onError) *Server {
	if onErr == nil {
		onErr = func(error) {}
	}

	return &Server{
		sock:    sock,
		onConn:  onConn,
		onError: onErr,
	}
}

// Start runs the accept loop until Stop is called or the listener breaks.
func (s *Server) Start() error {
	var delay time.Duration

	for {
		conn, err := s.sock.Accept()
		if err != nil {
			if s.shutdown.Load() {
				return ErrShutdown
			}

			if errors.Is(err, net.ErrClosed) {
				return err
			}

			// failures like EMFILE concern only this very accept
			s.onError(err)
			delay = nextDelay(delay)
			time.Sleep(delay)
			continue
		}

		delay = 0
		s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	s.onConn(conn)
}

// Stop closes the listener. A connection being served at the moment is served till the
// end, as it is processed by the same goroutine which runs the accept loop.
func (s *Server) Stop() error {
	s.shutdown.Store(true)

	return s.sock.Close()
}

func (s *Server) Addr() net.Addr {
	return s.sock.Addr()
}

func nextDelay(delay time.Duration) time.Duration {
	if delay == 0 {
		return 5 * time.Millisecond
	}

	return min(delay*2, maxAcceptDelay)
}
