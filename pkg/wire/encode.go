package wire

import (
	"bytes"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/getmockd/wirestub/pkg/message"
)

// DefaultUserAgent is sent when a request has no explicit User-Agent.
const DefaultUserAgent = "wirestub-requests/1.0"

// ContentTypeForm is the default Content-Type for form parameters.
const ContentTypeForm = "application/x-www-form-urlencoded"

// Encoded is a request reduced to what goes on the wire.
type Encoded struct {
	Method  string
	Target  string
	Headers message.Headers
	Body    []byte
}

// Encode applies the client header rules to req:
//
//   - explicit headers are kept, except Content-Length;
//   - a body without Content-Type is sent as "text/plain; <charset>";
//   - form parameters without a body or Content-Type are sent urlencoded;
//   - Content-Length is computed from the payload;
//   - User-Agent defaults to DefaultUserAgent.
//
// A non-empty body always wins over form parameters.
func Encode(method string, req *message.Request) *Encoded {
	explicit := req.Headers()

	fields := make([]message.HeaderField, 0, explicit.Len()+3)
	for _, f := range explicit.Fields() {
		if strings.EqualFold(f.Name, message.HeaderContentLength) {
			continue
		}
		fields = append(fields, f)
	}

	var body []byte
	switch {
	case req.HasBody():
		body = req.Body()
		if !explicit.Has(message.HeaderContentType) {
			fields = append(fields, message.HeaderField{Name: message.HeaderContentType, Value: "text/plain; " + req.Charset().Name()})
		}
	case req.HasFormParams():
		body = req.Charset().Encode(req.FormParamsString())
		if !explicit.Has(message.HeaderContentType) {
			fields = append(fields, message.HeaderField{Name: message.HeaderContentType, Value: ContentTypeForm})
		}
	}
	if len(body) > 0 {
		fields = append(fields, message.HeaderField{Name: message.HeaderContentLength, Value: strconv.Itoa(len(body))})
	}
	if !explicit.Has(message.HeaderUserAgent) {
		fields = append(fields, message.HeaderField{Name: message.HeaderUserAgent, Value: DefaultUserAgent})
	}

	return &Encoded{
		Method:  strings.ToUpper(method),
		Target:  req.URL(),
		Headers: message.MakeHeaders(fields...),
		Body:    body,
	}
}

// RequestURI returns the origin-form target for the request line and the
// host taken from an absolute target.
func (e *Encoded) RequestURI() (uri, host string) {
	u, err := url.Parse(e.Target)
	if err != nil || !u.IsAbs() {
		if e.Target == "" {
			return "/", ""
		}
		return e.Target, ""
	}
	return u.RequestURI(), u.Host
}

// Bytes renders the request as HTTP/1.1 bytes with CRLF line endings. A
// Host header is added for absolute targets when none was given.
func (e *Encoded) Bytes() []byte {
	uri, host := e.RequestURI()

	var buf bytes.Buffer
	buf.WriteString(e.Method)
	buf.WriteByte(' ')
	buf.WriteString(uri)
	buf.WriteString(" HTTP/1.1\r\n")

	fields := e.Headers.Fields()
	if host != "" && !e.Headers.Has(message.HeaderHost) {
		fields = slices.Insert(fields, 0, message.HeaderField{Name: message.HeaderHost, Value: host})
	}
	for _, f := range fields {
		buf.WriteString(f.Name)
		buf.WriteString(": ")
		buf.WriteString(sanitizeHeaderValue(f.Value))
		buf.WriteString("\r\n")
	}
	buf.WriteString("\r\n")
	buf.Write(e.Body)
	return buf.Bytes()
}

// WriteTo implements io.WriterTo.
func (e *Encoded) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.Bytes())
	return int64(n), err
}

// sanitizeHeaderValue strips CR, LF and other control characters except
// horizontal tab so a value cannot inject extra header lines.
func sanitizeHeaderValue(v string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)
}
