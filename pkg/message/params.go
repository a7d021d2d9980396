package message

import (
	"fmt"
	"net/url"
	"strings"
)

// Params is a read-only, ordered collection of path or form parameters.
// Names are matched case-insensitively and keep their insertion order;
// values are arbitrary scalars rendered with fmt.Sprint.
type Params struct {
	m multiMap[any]
}

// Two values are the same parameter value when they render identically.
func sameValue(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

// Names returns parameter names in insertion order.
func (p Params) Names() []string {
	return p.m.names()
}

// Values returns a copy of the values for name.
func (p Params) Values(name string) []any {
	return p.m.get(name)
}

// Len returns the number of distinct names.
func (p Params) Len() int {
	return p.m.len()
}

// Encode renders the parameters as name=value pairs joined with '&'.
// Names and values are URL-encoded; a multi-valued name repeats.
func (p Params) Encode() string {
	var sb strings.Builder
	for _, name := range p.m.keys {
		for _, v := range p.m.values[strings.ToLower(name)] {
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(name))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(fmt.Sprint(v)))
		}
	}
	return sb.String()
}

func (p Params) with(name string, value any) Params {
	c := Params{m: p.m.clone()}
	c.m.add(name, value, sameValue)
	return c
}

func (p Params) withValues(name string, values []any) Params {
	c := Params{m: p.m.clone()}
	c.m.set(name, values, sameValue)
	return c
}

// paramsFromMap drops empty entries and inserts names in sorted order.
func paramsFromMap(src map[string][]any) Params {
	var p Params
	for _, name := range sortedKeys(src) {
		vs := src[name]
		if len(vs) == 0 {
			continue
		}
		for _, v := range vs {
			if isNil(v) {
				continue
			}
			p.m.add(name, v, sameValue)
		}
	}
	return p
}
