package wire

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ProtocolError.
var (
	ErrMissingStartLine    = errors.New("request does not have a start line")
	ErrMalformedStartLine  = errors.New("start line is invalid")
	ErrBadContentLength    = errors.New("invalid Content-Length")
	ErrMissingStatusLine   = errors.New("response does not have a status line")
	ErrMalformedStatusLine = errors.New("status line is invalid")
)

// ProtocolError reports a message that could not be framed. It is scoped to
// the single connection or buffer being decoded.
type ProtocolError struct {
	Err  error
	Line string
}

func (e *ProtocolError) Error() string {
	if e.Line == "" {
		return "wire: " + e.Err.Error()
	}
	return fmt.Sprintf("wire: %v: %q", e.Err, e.Line)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// IsProtocolError reports whether err is, or wraps, a *ProtocolError.
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
