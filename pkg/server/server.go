package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/getmockd/wirestub/pkg/logging"
	"github.com/getmockd/wirestub/pkg/requestlog"
	"github.com/getmockd/wirestub/pkg/wire"
)

// Defaults.
const (
	DefaultPort    = 7070
	DefaultWorkers = 5
)

const maxPort = 65535

// Server errors.
var (
	ErrStopUnsupported = errors.New("server: stop is not supported")
	ErrNoFreePort      = errors.New("server: no free port")
	ErrAlreadyStarted  = errors.New("server: already started")
)

// DefaultStub is served until SetStub is called.
var DefaultStub = []byte("HTTP/1.1 200 OK\r\n" +
	"Server: wirestub\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"Content-Length: 21\r\n" +
	"\r\n" +
	"This is response body")

// Server accepts raw TCP connections and answers each with the stub.
type Server struct {
	log             *slog.Logger
	host            string
	workers         int
	maxBindAttempts int
	bodyMode        wire.BodyMode
	window          time.Duration
	store           requestlog.SubscribableStore

	stub  atomic.Pointer[[]byte]
	conns atomic.Uint64

	mu       sync.Mutex
	listener net.Listener
	port     int
	pool     *pool
}

// New creates a stopped server.
func New(opts ...Option) *Server {
	s := &Server{
		log:      logging.Nop(),
		workers:  DefaultWorkers,
		bodyMode: wire.BodyAvailable,
		window:   wire.DefaultAvailableWindow,
	}
	def := slices.Clone(DefaultStub)
	s.stub.Store(&def)
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = requestlog.NewMemoryStore()
	}
	return s
}

// Start binds port, or the first free port above it, and starts accepting
// connections in the background. Port 0 asks the OS for a free port.
// It returns the port actually bound.
func (s *Server) Start(port int) (int, error) {
	if port < 0 || port > maxPort {
		return 0, fmt.Errorf("server: invalid port %d", port)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		return s.port, ErrAlreadyStarted
	}

	ln, err := s.listen(port)
	if err != nil {
		return 0, err
	}
	tcpAddr, ok := ln.Addr().(*net.TCPAddr)
	if !ok {
		_ = ln.Close()
		return 0, fmt.Errorf("server: unexpected listener address %v", ln.Addr())
	}

	s.listener = ln
	s.port = tcpAddr.Port
	s.pool = newPool(s.workers, s.log, s.handle)

	go s.acceptLoop(ln)

	s.log.Info("server started", "port", s.port, "requested_port", port, "workers", s.workers, "body_mode", s.bodyMode.String())
	return s.port, nil
}

// listen tries port, port+1, ... until a bind succeeds. Without a bound on
// attempts this only ends at the top of the port range.
func (s *Server) listen(port int) (net.Listener, error) {
	for attempt := 1; ; attempt++ {
		ln, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(port)))
		if err == nil {
			return ln, nil
		}
		if port == 0 {
			return nil, fmt.Errorf("server: listen on ephemeral port: %w", err)
		}
		if s.maxBindAttempts > 0 && attempt >= s.maxBindAttempts {
			return nil, fmt.Errorf("%w: %d attempts ending at port %d: %w", ErrNoFreePort, attempt, port, err)
		}
		if port >= maxPort {
			return nil, fmt.Errorf("%w: reached port %d: %w", ErrNoFreePort, maxPort, err)
		}
		s.log.Debug("port unavailable, trying next", "port", port, "error", err)
		port++
	}
}

// Stop is not supported: a started server runs until the process exits.
func (s *Server) Stop() error {
	return ErrStopUnsupported
}

// Port returns the bound port, or 0 before Start.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port
}
