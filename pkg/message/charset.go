package message

import (
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Charset errors.
var (
	ErrUnknownCharset     = errors.New("unknown charset")
	ErrUnsupportedCharset = errors.New("unsupported charset")
)

var charsetPattern = regexp.MustCompile(`charset=([_\-0-9a-zA-Z]+)(;|$)`)

// Charset names a text encoding used to view a body as a string.
// The zero value behaves as UTF-8.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// UTF8 is the default charset.
var UTF8 = Charset{name: "UTF-8", enc: unicode.UTF8}

// LookupCharset resolves an IANA charset name or alias, e.g. "utf-8",
// "latin1" or "windows-1251". The returned charset reports its MIME name.
func LookupCharset(name string) (Charset, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return Charset{}, fmt.Errorf("%w: %s", ErrUnknownCharset, name)
	}
	if enc == nil {
		return Charset{}, fmt.Errorf("%w: %s", ErrUnsupportedCharset, name)
	}
	return Charset{name: canonicalName(enc, name), enc: enc}, nil
}

// canonicalName prefers the MIME name ("ISO-8859-1") over the IANA
// registry name ("ISO_8859-1:1987").
func canonicalName(enc encoding.Encoding, fallback string) string {
	if n, err := ianaindex.MIME.Name(enc); err == nil && n != "" {
		return n
	}
	if n, err := ianaindex.IANA.Name(enc); err == nil && n != "" {
		return n
	}
	return fallback
}

// CharsetFromContentType returns the first resolvable charset parameter
// found in the given Content-Type values, falling back to UTF-8.
func CharsetFromContentType(values ...string) Charset {
	for _, v := range values {
		m := charsetPattern.FindStringSubmatch(v)
		if m == nil {
			continue
		}
		if cs, err := LookupCharset(m[1]); err == nil {
			return cs
		}
	}
	return UTF8
}

// Name returns the canonical IANA name.
func (c Charset) Name() string {
	if c.enc == nil {
		return UTF8.name
	}
	return c.name
}

func (c Charset) encoding() encoding.Encoding {
	if c.enc == nil {
		return UTF8.enc
	}
	return c.enc
}

// Decode converts b from this charset to a Go string. Invalid input is
// returned as-is.
func (c Charset) Decode(b []byte) string {
	out, err := c.encoding().NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// Encode converts s into this charset. Runes the charset cannot represent
// are replaced.
func (c Charset) Encode(s string) []byte {
	out, err := encoding.ReplaceUnsupported(c.encoding().NewEncoder()).Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// String implements fmt.Stringer.
func (c Charset) String() string {
	return c.Name()
}
