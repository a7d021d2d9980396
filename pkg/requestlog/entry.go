package requestlog

import (
	"time"

	"github.com/getmockd/wirestub/pkg/wire"
)

// Entry is one parsed request together with where and when it arrived.
type Entry struct {
	// ID is assigned by the store when empty.
	ID string `json:"id"`

	// Timestamp is set by the store when zero.
	Timestamp time.Time `json:"timestamp"`

	// Conn is the server's connection number, starting at 1.
	Conn uint64 `json:"conn"`

	// RemoteAddr is the peer address of the connection.
	RemoteAddr string `json:"remoteAddr"`

	// Request is the decoded request. It is never nil for stored entries.
	Request *wire.ParsedRequest `json:"-"`
}

// Method returns the request method, or "" when Request is nil.
func (e *Entry) Method() string {
	if e.Request == nil {
		return ""
	}
	return e.Request.Method()
}

// Path returns the request path without query, or "" when Request is nil.
func (e *Entry) Path() string {
	if e.Request == nil {
		return ""
	}
	return e.Request.Path()
}
