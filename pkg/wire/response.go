package wire

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/getmockd/wirestub/pkg/message"
)

// ReadResponse parses a raw HTTP/1.x response. The body is Content-Length
// bytes when the header is present, otherwise everything up to EOF. LF-only
// line endings are accepted.
func ReadResponse(r io.Reader) (*message.Response, error) {
	br := bufio.NewReader(r)

	line, err := readFirstLine(br, ErrMissingStatusLine)
	if err != nil {
		return nil, err
	}
	proto, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	code, reason, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if !strings.HasPrefix(proto, "HTTP/") {
		return nil, &ProtocolError{Err: ErrMalformedStatusLine, Line: line}
	}
	status, err := strconv.Atoi(code)
	if err != nil || status < 100 || status > 999 {
		return nil, &ProtocolError{Err: ErrMalformedStatusLine, Line: line}
	}

	fields, err := readHeaderFields(br)
	if err != nil {
		return nil, err
	}
	headers := message.MakeHeaders(fields...)

	var body []byte
	if raw := headers.Get(message.HeaderContentLength); raw != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || n < 0 || n > maxContentLength {
			return nil, &ProtocolError{Err: ErrBadContentLength, Line: raw}
		}
		body = make([]byte, n)
		if _, err := io.ReadFull(br, body); err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
	} else {
		body, err = io.ReadAll(br)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
	}

	return message.NewResponse(status, strings.TrimSpace(reason), headers, body), nil
}
