package server

import (
	"log/slog"
	"slices"
	"time"

	"github.com/getmockd/wirestub/pkg/requestlog"
	"github.com/getmockd/wirestub/pkg/wire"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the operational logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithHost sets the interface to bind. Empty binds all interfaces.
func WithHost(host string) Option {
	return func(s *Server) { s.host = host }
}

// WithWorkers bounds how many connections are handled at once.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithMaxBindAttempts bounds the port+1 search in Start. Zero, the
// default, keeps searching until a port binds or the port range ends.
func WithMaxBindAttempts(n int) Option {
	return func(s *Server) {
		if n >= 0 {
			s.maxBindAttempts = n
		}
	}
}

// WithBodyMode selects how request bodies are framed.
func WithBodyMode(mode wire.BodyMode) Option {
	return func(s *Server) { s.bodyMode = mode }
}

// WithAvailableWindow sets how long the available-bytes body mode waits
// after the headers.
func WithAvailableWindow(d time.Duration) Option {
	return func(s *Server) {
		if d >= 0 {
			s.window = d
		}
	}
}

// WithStore replaces the in-memory request log.
func WithStore(store requestlog.SubscribableStore) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStub sets the initial stub bytes.
func WithStub(stub []byte) Option {
	return func(s *Server) {
		b := slices.Clone(stub)
		s.stub.Store(&b)
	}
}
