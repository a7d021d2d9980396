package server

import (
	"slices"

	"github.com/getmockd/wirestub/pkg/requestlog"
	"github.com/getmockd/wirestub/pkg/wire"
)

// SetStub replaces the bytes written to every subsequent connection. The
// bytes are copied and written verbatim; nil or empty writes nothing.
func (s *Server) SetStub(stub []byte) {
	b := slices.Clone(stub)
	s.stub.Store(&b)
	s.log.Debug("stub replaced", "bytes", len(b))
}

// Stub returns a copy of the current stub bytes.
func (s *Server) Stub() []byte {
	return slices.Clone(*s.stub.Load())
}

// Requests returns a fresh snapshot of the parsed requests in log order.
// Reading does not clear the log.
func (s *Server) Requests() []*wire.ParsedRequest {
	entries := s.store.List(nil)
	out := make([]*wire.ParsedRequest, len(entries))
	for i, e := range entries {
		out[i] = e.Request
	}
	return out
}

// Entries returns logged entries matching filter; nil matches all.
func (s *Server) Entries(filter *requestlog.Filter) []*requestlog.Entry {
	return s.store.List(filter)
}

// RequestCount returns the number of logged requests.
func (s *Server) RequestCount() int {
	return s.store.Count()
}

// Subscribe delivers each request as it is logged.
func (s *Server) Subscribe() (requestlog.Subscriber, func()) {
	return s.store.Subscribe()
}
