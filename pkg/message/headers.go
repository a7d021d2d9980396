package message

import (
	"fmt"
	"slices"
	"strings"
)

// Well-known header names.
const (
	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderUserAgent     = "User-Agent"
	HeaderHost          = "Host"
)

// HeaderField is a single name/value pair as it appears on the wire.
type HeaderField struct {
	Name  string
	Value string
}

// Headers is a read-only, case-insensitive collection of header values.
// Each name maps to an ordered set of values. The zero value is empty.
type Headers struct {
	m multiMap[string]
}

func sameString(a, b string) bool { return a == b }

// MakeHeaders folds fields into Headers. Repeated names accumulate their
// values as a set; the first casing seen for a name is kept.
func MakeHeaders(fields ...HeaderField) Headers {
	var h Headers
	for _, f := range fields {
		h.m.add(f.Name, f.Value, sameString)
	}
	return h
}

// HeadersFromMap builds Headers from a plain map, dropping names whose
// value slice is empty.
func HeadersFromMap(src map[string][]string) Headers {
	var h Headers
	for _, name := range sortedKeys(src) {
		vs := src[name]
		if len(vs) == 0 {
			continue
		}
		for _, v := range vs {
			h.m.add(name, v, sameString)
		}
	}
	return h
}

// Get returns the first value for name, or "" when absent.
func (h Headers) Get(name string) string {
	vs := h.m.values[strings.ToLower(name)]
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}

// Values returns a copy of all values for name.
func (h Headers) Values(name string) []string {
	return h.m.get(name)
}

// Has reports whether name is present.
func (h Headers) Has(name string) bool {
	return h.m.has(name)
}

// Len returns the number of distinct names.
func (h Headers) Len() int {
	return h.m.len()
}

// Names returns the header names sorted case-insensitively.
func (h Headers) Names() []string {
	names := h.m.names()
	slices.SortFunc(names, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return names
}

// Fields flattens the headers into wire order: names sorted, values in
// insertion order.
func (h Headers) Fields() []HeaderField {
	var out []HeaderField
	for _, name := range h.Names() {
		for _, v := range h.m.values[strings.ToLower(name)] {
			out = append(out, HeaderField{Name: name, Value: v})
		}
	}
	return out
}

// Map returns a copy of the headers keyed by first-seen casing.
func (h Headers) Map() map[string][]string {
	out := make(map[string][]string, h.Len())
	for _, name := range h.m.keys {
		out[name] = h.m.get(name)
	}
	return out
}

// with returns a copy of h with value added under name.
func (h Headers) with(name, value string) Headers {
	c := Headers{m: h.m.clone()}
	c.m.add(name, value, sameString)
	return c
}

// String pretty-prints the headers one name per line.
func (h Headers) String() string {
	if h.Len() == 0 {
		return "{}"
	}
	lines := make([]string, 0, h.Len())
	for _, name := range h.Names() {
		lines = append(lines, fmt.Sprintf("  %s : [%s]", name, strings.Join(h.m.values[strings.ToLower(name)], ", ")))
	}
	return "{\n" + strings.Join(lines, "\n") + "\n}"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
