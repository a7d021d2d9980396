package message

import (
	"slices"
	"strconv"
	"strings"
)

// Response is a read-only HTTP response.
type Response struct {
	status  int
	reason  string
	headers Headers
	body    []byte
	charset Charset
}

// NewResponse builds a Response. The body charset is taken from the
// Content-Type header and defaults to UTF-8.
func NewResponse(status int, reason string, headers Headers, body []byte) *Response {
	return &Response{
		status:  status,
		reason:  reason,
		headers: headers,
		body:    slices.Clone(body),
		charset: CharsetFromContentType(headers.Values(HeaderContentType)...),
	}
}

// Status returns the status code.
func (r *Response) Status() int { return r.status }

// Reason returns the reason phrase.
func (r *Response) Reason() string { return r.reason }

// Headers returns the response headers.
func (r *Response) Headers() Headers { return r.headers }

// Header returns all values of the named header, or nil.
func (r *Response) Header(name string) []string {
	return r.headers.Values(name)
}

// FirstHeader returns the first value of the named header.
func (r *Response) FirstHeader(name string) (string, bool) {
	vs := r.headers.Values(name)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Body returns a copy of the body bytes.
func (r *Response) Body() []byte { return slices.Clone(r.body) }

// HasBody reports whether the body is non-empty.
func (r *Response) HasBody() bool { return len(r.body) > 0 }

// Text decodes the body with the detected charset.
func (r *Response) Text() string { return r.charset.Decode(r.body) }

// Charset returns the detected body charset.
func (r *Response) Charset() Charset { return r.charset }

func (r *Response) String() string {
	var sb strings.Builder
	sb.WriteString("Status: ")
	sb.WriteString(strconv.Itoa(r.status))
	sb.WriteString("\nReason: ")
	sb.WriteString(r.reason)
	if r.headers.Len() > 0 {
		sb.WriteString("\nHeaders:\n")
		sb.WriteString(r.headers.String())
	}
	if r.HasBody() {
		sb.WriteString("\nBody:\n")
		sb.WriteString(r.Text())
	}
	return sb.String()
}
