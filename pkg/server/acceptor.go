package server

import (
	"errors"
	"net"
	"time"
)

const maxAcceptDelay = time.Second

// acceptLoop hands every accepted connection to the pool. A failed accept
// is logged and retried with backoff; only a closed listener ends the loop.
func (s *Server) acceptLoop(ln net.Listener) {
	var delay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				s.log.Info("listener closed", "port", s.port)
				return
			}
			if delay == 0 {
				delay = 5 * time.Millisecond
			} else {
				delay = min(delay*2, maxAcceptDelay)
			}
			s.log.Error("accept failed", "error", err, "retry_in", delay)
			time.Sleep(delay)
			continue
		}
		delay = 0
		s.pool.submit(conn)
	}
}
