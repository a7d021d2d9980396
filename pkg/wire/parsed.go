package wire

import (
	"net/url"
	"slices"
	"strings"

	"github.com/getmockd/wirestub/pkg/message"
)

// ParsedRequest is a request as observed on the server side of a
// connection. It is only produced by Decode and is read-only.
type ParsedRequest struct {
	method  string
	target  string
	proto   string
	headers message.Headers
	body    []byte
	charset message.Charset
}

func newParsedRequest(method, target, proto string, headers message.Headers, body []byte) *ParsedRequest {
	if body == nil {
		body = []byte{}
	}
	return &ParsedRequest{
		method:  method,
		target:  target,
		proto:   proto,
		headers: headers,
		body:    body,
		charset: message.CharsetFromContentType(headers.Values(message.HeaderContentType)...),
	}
}

// Method returns the request method token as sent.
func (r *ParsedRequest) Method() string { return r.method }

// Target returns the raw request target.
func (r *ParsedRequest) Target() string { return r.target }

// Proto returns the protocol version, e.g. "HTTP/1.1".
func (r *ParsedRequest) Proto() string { return r.proto }

// Path returns the escaped path of the target without its query.
func (r *ParsedRequest) Path() string {
	if u, err := url.ParseRequestURI(r.target); err == nil {
		return u.EscapedPath()
	}
	path, _, _ := strings.Cut(r.target, "?")
	return path
}

// Query parses the target's query string. Malformed pairs are skipped.
func (r *ParsedRequest) Query() url.Values {
	_, raw, _ := strings.Cut(r.target, "?")
	q, _ := url.ParseQuery(raw)
	return q
}

// Headers returns the request headers.
func (r *ParsedRequest) Headers() message.Headers { return r.headers }

// Header returns every value of the named header.
func (r *ParsedRequest) Header(name string) []string { return r.headers.Values(name) }

// Body returns a copy of the body bytes.
func (r *ParsedRequest) Body() []byte { return slices.Clone(r.body) }

// BodyString decodes the body with the charset named in Content-Type.
func (r *ParsedRequest) BodyString() string { return r.charset.Decode(r.body) }

// Charset returns the body charset, UTF-8 unless Content-Type says otherwise.
func (r *ParsedRequest) Charset() message.Charset { return r.charset }

// StartLine reconstructs the request line.
func (r *ParsedRequest) StartLine() string {
	return r.method + " " + r.target + " " + r.proto
}

// String renders the request roughly as it was received, for dumps.
func (r *ParsedRequest) String() string {
	var sb strings.Builder
	sb.WriteString(r.StartLine())
	for _, f := range r.headers.Fields() {
		sb.WriteString("\n")
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value)
	}
	if len(r.body) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(r.BodyString())
	}
	return sb.String()
}
