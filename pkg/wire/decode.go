package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/wirestub/pkg/message"
)

// BodyMode selects how Decode frames the request body.
type BodyMode int

const (
	// BodyAvailable reads only the bytes available right after the headers.
	BodyAvailable BodyMode = iota
	// BodyContentLength reads exactly Content-Length bytes.
	BodyContentLength
)

// DefaultAvailableWindow is how long BodyAvailable waits for bytes that are
// already in flight on a connection.
const DefaultAvailableWindow = 5 * time.Millisecond

// maxContentLength caps BodyContentLength allocations.
const maxContentLength = 64 << 20

func (m BodyMode) String() string {
	switch m {
	case BodyAvailable:
		return "available"
	case BodyContentLength:
		return "content-length"
	default:
		return "unknown"
	}
}

// ParseBodyMode parses "available" or "content-length". An empty string
// selects BodyAvailable.
func ParseBodyMode(s string) (BodyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "available":
		return BodyAvailable, nil
	case "content-length", "contentlength":
		return BodyContentLength, nil
	default:
		return BodyAvailable, fmt.Errorf("unknown body mode %q (want available or content-length)", s)
	}
}

type decodeOptions struct {
	mode   BodyMode
	window time.Duration
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

// WithBodyMode selects the body framing strategy.
func WithBodyMode(mode BodyMode) DecodeOption {
	return func(o *decodeOptions) { o.mode = mode }
}

// WithAvailableWindow sets how long BodyAvailable keeps reading from a
// connection after the headers. Zero takes only what is already buffered.
func WithAvailableWindow(d time.Duration) DecodeOption {
	return func(o *decodeOptions) { o.window = d }
}

// deadliner is implemented by net.Conn.
type deadliner interface {
	SetReadDeadline(t time.Time) error
}

// Decode reads one request from r. Framing failures are returned as
// *ProtocolError; transport failures are wrapped as-is.
func Decode(r io.Reader, opts ...DecodeOption) (*ParsedRequest, error) {
	o := decodeOptions{mode: BodyAvailable, window: DefaultAvailableWindow}
	for _, opt := range opts {
		opt(&o)
	}

	br := bufio.NewReader(r)

	line, err := readFirstLine(br, ErrMissingStartLine)
	if err != nil {
		return nil, err
	}
	tokens := strings.FieldsFunc(line, func(c rune) bool { return c == ' ' })
	if len(tokens) != 3 {
		return nil, &ProtocolError{Err: ErrMalformedStartLine, Line: line}
	}

	fields, err := readHeaderFields(br)
	if err != nil {
		return nil, err
	}
	headers := message.MakeHeaders(fields...)

	var body []byte
	switch o.mode {
	case BodyContentLength:
		body, err = readContentLength(br, headers)
	default:
		body, err = readAvailable(r, br, o.window)
	}
	if err != nil {
		return nil, err
	}

	return newParsedRequest(tokens[0], tokens[1], tokens[2], headers, body), nil
}

// readAvailable takes what is buffered, then keeps reading from a
// connection until window elapses. Sources that do not support read
// deadlines are read to the end.
func readAvailable(r io.Reader, br *bufio.Reader, window time.Duration) ([]byte, error) {
	body := make([]byte, br.Buffered())
	_, _ = io.ReadFull(br, body)

	if conn, ok := r.(deadliner); ok {
		if window <= 0 {
			return body, nil
		}
		if err := conn.SetReadDeadline(time.Now().Add(window)); err == nil {
			defer func() { _ = conn.SetReadDeadline(time.Time{}) }()
			return readUntilDeadline(br, body)
		}
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return append(body, rest...), nil
}

func readUntilDeadline(br *bufio.Reader, body []byte) ([]byte, error) {
	buf := make([]byte, 4096)
	for {
		n, err := br.Read(buf)
		body = append(body, buf[:n]...)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrDeadlineExceeded), errors.Is(err, io.EOF):
			return body, nil
		default:
			return nil, fmt.Errorf("read body: %w", err)
		}
	}
}

func readContentLength(br *bufio.Reader, headers message.Headers) ([]byte, error) {
	raw := headers.Get(message.HeaderContentLength)
	if raw == "" {
		return []byte{}, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 0 || n > maxContentLength {
		return nil, &ProtocolError{Err: ErrBadContentLength, Line: raw}
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
