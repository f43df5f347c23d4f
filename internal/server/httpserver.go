package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrics-serve/internal/shared"
)

const defaultShutdownTimeout = 5 * time.Second

// Options configures a [Server].
type Options struct {
	Addr            string
	Handler         http.Handler
	ShutdownTimeout time.Duration
	Logger          *log.Logger
}

// Server owns one listening socket and the [http.Server] serving it.
type Server struct {
	httpServer      *http.Server
	addr            string
	listener        net.Listener
	shutdownTimeout time.Duration
	logger          *log.Logger
	mu              sync.Mutex
}

// New creates a server for opts. Nothing is bound until [Server.Listen] or [Server.Serve].
func New(opts Options) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Server{
		httpServer: &http.Server{
			Handler:           opts.Handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		addr:            opts.Addr,
		shutdownTimeout: opts.ShutdownTimeout,
		logger:          opts.Logger,
	}
}

// Listen binds the server's address. Calling it again after a successful bind is a no-op.
func (s *Server) Listen() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServerStartup, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before [Server.Listen].
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Port returns the bound TCP port, or 0 before [Server.Listen].
func (s *Server) Port() int {
	if addr, ok := s.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Serve blocks until ctx is done or the server fails, binding first if needed.
//
// Cancellation triggers a graceful shutdown and returns nil.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	s.mu.Lock()
	ln := s.listener
	s.mu.Unlock()

	errs := make(chan error, 1)
	go func() {
		errs <- s.httpServer.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Debug("stop requested, shutting down", "addr", ln.Addr().String())
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		s.closeListener()
		return fmt.Errorf("%w: %v", shared.ErrServerRuntime, err)
	}

	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to the shutdown timeout for in-flight requests.
// Connections still open after the timeout are closed forcibly.
//
// Safe to call more than once.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.closeListener()
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("requests still in flight after shutdown timeout, closing connections", "timeout", s.shutdownTimeout)
		if cerr := s.httpServer.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			s.logger.Warn("error closing connections", "error", cerr)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: shutdown: %v", shared.ErrServerRuntime, err)
	}
	return nil
}

func (s *Server) closeListener() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return
	}
	if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		s.logger.Warn("error closing listener", "error", err)
	}
}
