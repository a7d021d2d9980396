package server

import (
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/getmockd/wirestub/pkg/requestlog"
	"github.com/getmockd/wirestub/pkg/wire"
)

// Bytes the client sends after the stub has been written are drained
// for at most this long so close does not reset the connection.
const (
	drainTimeout = 50 * time.Millisecond
	drainLimit   = 64 << 10
)

// handle serves exactly one request on conn and closes it.
func (s *Server) handle(conn net.Conn) {
	n := s.conns.Add(1)
	remote := conn.RemoteAddr().String()
	log := s.log.With("conn", n, "remote", remote)
	log.Info("connection accepted", "port", s.port)
	defer closeConn(conn, log)

	req, err := wire.Decode(conn, wire.WithBodyMode(s.bodyMode), wire.WithAvailableWindow(s.window))
	if err != nil {
		if wire.IsProtocolError(err) {
			log.Warn("malformed request", "error", err)
		} else {
			log.Warn("reading request failed", "error", err)
		}
		return
	}

	s.store.Log(&requestlog.Entry{Conn: n, RemoteAddr: remote, Request: req})
	log.Debug("request received", "method", req.Method(), "target", req.Target(), "dump", req.String())

	if _, err := conn.Write(*s.stub.Load()); err != nil {
		log.Warn("writing stub failed", "error", err)
	}
}

func closeConn(conn net.Conn, log *slog.Logger) {
	if tc, ok := conn.(*net.TCPConn); ok {
		if err := tc.CloseWrite(); err == nil {
			_ = tc.SetReadDeadline(time.Now().Add(drainTimeout))
			_, _ = io.Copy(io.Discard, io.LimitReader(tc, drainLimit))
		}
	}
	if err := conn.Close(); err != nil {
		log.Debug("closing connection failed", "error", err)
	}
}
