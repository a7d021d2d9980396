package message

import (
	"net/url"
	"reflect"
	"slices"
	"strings"
)

const pathDelimiter = "/"

// Request is an immutable HTTP request description. Methods named With*
// return a modified copy and leave the receiver untouched.
type Request struct {
	target     string
	headers    Headers
	pathParams Params
	formParams Params
	body       []byte
	charset    Charset
}

// NewRequest returns an empty request for target, which may be an absolute
// URL or a bare path.
func NewRequest(target string) *Request {
	return &Request{target: target, charset: UTF8}
}

func (r *Request) clone() *Request {
	c := *r
	return &c
}

// Target returns the URL or path without path parameters.
func (r *Request) Target() string {
	return r.target
}

// URL returns the target followed by '?' and the encoded path parameters,
// when there are any.
func (r *Request) URL() string {
	if !r.HasPathParams() {
		return r.target
	}
	return r.target + "?" + r.PathParamsString()
}

// WithPath URL-encodes segment and appends "/"+segment to the target.
func (r *Request) WithPath(segment string) *Request {
	c := r.clone()
	c.target = r.target + pathDelimiter + url.QueryEscape(segment)
	return c
}

// WithHeader adds value to the header set for name. An empty value is a
// no-op.
func (r *Request) WithHeader(name, value string) *Request {
	if value == "" {
		return r
	}
	c := r.clone()
	c.headers = r.headers.with(name, value)
	return c
}

// WithHeaders replaces every header. Entries with no values are dropped.
func (r *Request) WithHeaders(headers map[string][]string) *Request {
	c := r.clone()
	c.headers = HeadersFromMap(headers)
	return c
}

// Headers returns the explicit headers.
func (r *Request) Headers() Headers {
	return r.headers
}

// WithFormParam adds value to the form parameter set for name. A nil value
// is a no-op.
func (r *Request) WithFormParam(name string, value any) *Request {
	if isNil(value) {
		return r
	}
	c := r.clone()
	c.formParams = r.formParams.with(name, value)
	return c
}

// WithFormParamValues replaces the values of one form parameter. Passing no
// values is a no-op.
func (r *Request) WithFormParamValues(name string, values ...any) *Request {
	values = dropNil(values)
	if len(values) == 0 {
		return r
	}
	c := r.clone()
	c.formParams = r.formParams.withValues(name, values)
	return c
}

// WithFormParams replaces every form parameter. Entries with no values are
// dropped.
func (r *Request) WithFormParams(params map[string][]any) *Request {
	c := r.clone()
	c.formParams = paramsFromMap(params)
	return c
}

// FormParams returns the form parameters.
func (r *Request) FormParams() Params {
	return r.formParams
}

// HasFormParams reports whether any form parameter is set.
func (r *Request) HasFormParams() bool {
	return r.formParams.Len() > 0
}

// FormParamsString renders the form parameters as a urlencoded string.
func (r *Request) FormParamsString() string {
	return r.formParams.Encode()
}

// WithPathParam adds value to the query parameter set for name. A nil value
// is a no-op.
func (r *Request) WithPathParam(name string, value any) *Request {
	if isNil(value) {
		return r
	}
	c := r.clone()
	c.pathParams = r.pathParams.with(name, value)
	return c
}

// WithPathParamValues replaces the values of one query parameter. Passing no
// values is a no-op.
func (r *Request) WithPathParamValues(name string, values ...any) *Request {
	values = dropNil(values)
	if len(values) == 0 {
		return r
	}
	c := r.clone()
	c.pathParams = r.pathParams.withValues(name, values)
	return c
}

// WithPathParams replaces every query parameter. Entries with no values are
// dropped.
func (r *Request) WithPathParams(params map[string][]any) *Request {
	c := r.clone()
	c.pathParams = paramsFromMap(params)
	return c
}

// PathParams returns the query parameters.
func (r *Request) PathParams() Params {
	return r.pathParams
}

// HasPathParams reports whether any query parameter is set.
func (r *Request) HasPathParams() bool {
	return r.pathParams.Len() > 0
}

// PathParamsString renders the query parameters as a urlencoded string.
func (r *Request) PathParamsString() string {
	return r.pathParams.Encode()
}

// WithBody replaces the body. A nil slice is a no-op; the bytes are copied.
func (r *Request) WithBody(body []byte) *Request {
	if body == nil {
		return r
	}
	c := r.clone()
	c.body = slices.Clone(body)
	return c
}

// WithBodyCharset replaces the body and the charset used to view it.
func (r *Request) WithBodyCharset(body []byte, charset Charset) *Request {
	if body == nil {
		return r
	}
	c := r.clone()
	c.body = slices.Clone(body)
	c.charset = charset
	return c
}

// WithBodyString encodes body with the request's charset.
func (r *Request) WithBodyString(body string) *Request {
	c := r.clone()
	c.body = r.charset.Encode(body)
	return c
}

// WithCharset changes the charset without touching the body bytes.
func (r *Request) WithCharset(charset Charset) *Request {
	c := r.clone()
	c.charset = charset
	return c
}

// Body returns a copy of the body bytes.
func (r *Request) Body() []byte {
	return slices.Clone(r.body)
}

// HasBody reports whether the body is non-empty.
func (r *Request) HasBody() bool {
	return len(r.body) > 0
}

// BodyString decodes the body with the request's charset.
func (r *Request) BodyString() string {
	return r.charset.Decode(r.body)
}

// Charset returns the body charset.
func (r *Request) Charset() Charset {
	return r.charset
}

// String renders the request for debugging: URL, then headers and body
// blocks when they are non-empty.
func (r *Request) String() string {
	var sb strings.Builder
	sb.WriteString("URL: ")
	sb.WriteString(r.URL())
	if r.headers.Len() > 0 {
		sb.WriteString("\nHeaders:\n")
		sb.WriteString(r.headers.String())
	}
	if r.HasBody() {
		sb.WriteString("\nBody:\n")
		sb.WriteString(r.BodyString())
	}
	return sb.String()
}

func dropNil(values []any) []any {
	out := values[:0:0]
	for _, v := range values {
		if !isNil(v) {
			out = append(out, v)
		}
	}
	return out
}

// isNil reports whether v is nil or a nil pointer, map, slice, func,
// channel or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
