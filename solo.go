package solo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/indigo-web/solo/config"
	"github.com/indigo-web/solo/internal/accesslog"
	"github.com/indigo-web/solo/internal/resource"
	httpserver "github.com/indigo-web/solo/internal/server/http"
	"github.com/indigo-web/solo/internal/server/tcp"
	"golang.org/x/sys/unix"
)

// ErrNotServing is returned by Stop if the app isn't serving at the moment.
var ErrNotServing = errors.New("solo: app is not serving")

// App serves files of a single document root.
type App struct {
	root    string
	cfg     *config.Config
	logOut  io.Writer
	onStart func()

	mu     sync.Mutex
	server *tcp.Server
}

// New canonicalizes the root, which must be an existing traversable directory.
func New(root string) (*App, error) {
	root, err := canonicalize(root)
	if err != nil {
		return nil, err
	}

	return &App{
		root:   root,
		cfg:    config.Default(),
		logOut: os.Stdout,
	}, nil
}

// Root returns the canonical document root.
func (a *App) Root() string {
	return a.root
}

// Tune replaces the default config.
func (a *App) Tune(cfg *config.Config) *App {
	a.cfg = cfg
	return a
}

// Logger redirects the access log, which is written to stdout by default.
func (a *App) Logger(w io.Writer) *App {
	a.logOut = w
	return a
}

// NotifyOnStart calls the callback as soon as the listener is bound, right before the
// first connection is accepted.
func (a *App) NotifyOnStart(cb func()) *App {
	a.onStart = cb
	return a
}

// Serve binds the address and serves connections one by one until the context is done or
// Stop is called, in both cases returning nil. The request being served at the moment of
// cancellation is completed.
func (a *App) Serve(ctx context.Context, addr string) error {
	log, err := accesslog.New(a.logOut, a.cfg.Log)
	if err != nil {
		return err
	}

	sock, err := listen(ctx, addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	resolver := resource.NewResolver(a.root, a.cfg)
	handler := httpserver.NewServer(a.cfg, resolver, log)
	// cancellation stops accepting, but must not interrupt the interpreter in the middle
	// of a response
	reqCtx := context.WithoutCancel(ctx)
	server := tcp.NewServer(sock, func(conn net.Conn) {
		handler.Serve(reqCtx, conn)
	}, log.Error)

	a.mu.Lock()
	a.server = server
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.server = nil
		a.mu.Unlock()
	}()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = server.Stop()
		case <-done:
		}
	}()

	log.Startup(a.root, sock.Addr())
	if a.onStart != nil {
		a.onStart()
	}

	err = server.Start()
	if errors.Is(err, tcp.ErrShutdown) {
		err = nil
	}

	log.Shutdown(err)
	return err
}

// Addr returns the bound address, or nil if the app isn't serving.
func (a *App) Addr() net.Addr {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return nil
	}

	return a.server.Addr()
}

// Stop closes the listener, so Serve returns after the current connection, if any, is done.
func (a *App) Stop() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotServing
	}

	return a.server.Stop()
}

func listen(ctx context.Context, addr string) (net.Listener, error) {
	lc := net.ListenConfig{
		Control: func(_, _ string, conn syscall.RawConn) error {
			var opErr error
			err := conn.Control(func(fd uintptr) {
				opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
			})
			if err != nil {
				return err
			}

			return opErr
		},
	}

	return lc.Listen(ctx, "tcp", addr)
}

func canonicalize(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("bad root %q: %w", root, err)
	}

	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("bad root %q: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("bad root %q: %w", root, err)
	}

	if !info.IsDir() {
		return "", fmt.Errorf("bad root %q: not a directory", root)
	}

	if err = unix.Access(abs, unix.X_OK); err != nil {
		return "", fmt.Errorf("bad root %q: %w", root, err)
	}

	return abs, nil
}
