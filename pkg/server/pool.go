package server

import (
	"context"
	"log/slog"
	"net"
	"runtime/debug"

	"golang.org/x/sync/semaphore"
)

// pool runs connection handlers with bounded concurrency. Submitted
// connections queue on the semaphore, so the accept loop never blocks.
type pool struct {
	sem    *semaphore.Weighted
	log    *slog.Logger
	handle func(net.Conn)
}

func newPool(workers int, log *slog.Logger, handle func(net.Conn)) *pool {
	return &pool{
		sem:    semaphore.NewWeighted(int64(workers)),
		log:    log,
		handle: handle,
	}
}

func (p *pool) submit(conn net.Conn) {
	go func() {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			_ = conn.Close()
			return
		}
		defer p.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				p.log.Error("connection handler panicked", "panic", r, "stack", string(debug.Stack()))
				_ = conn.Close()
			}
		}()
		p.handle(conn)
	}()
}
