package requestlog

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

// Filter selects log entries. Zero fields match everything.
type Filter struct {
	// Method matches the request method case-insensitively.
	Method string

	// Path is a doublestar glob matched against the request path,
	// e.g. "/api/*/items" or "/static/**".
	Path string

	// Header requires the named header to be present.
	Header string

	// BodyJSONPath requires the body to be JSON with at least one node
	// at the given JSONPath, e.g. "$.user.id".
	BodyJSONPath string

	// Limit is the maximum number of entries to return.
	Limit int

	// Offset is the number of matching entries to skip.
	Offset int
}

// Validate reports a malformed Path glob or BodyJSONPath expression.
func (f *Filter) Validate() error {
	_, err := f.compile()
	return err
}

type matcher struct {
	f    *Filter
	expr jp.Expr
}

func (f *Filter) compile() (*matcher, error) {
	m := &matcher{f: f}
	if f.Path != "" && !doublestar.ValidatePattern(f.Path) {
		return nil, fmt.Errorf("invalid path pattern %q", f.Path)
	}
	if f.BodyJSONPath != "" {
		expr, err := jp.ParseString(f.BodyJSONPath)
		if err != nil {
			return nil, fmt.Errorf("invalid JSONPath %q: %w", f.BodyJSONPath, err)
		}
		m.expr = expr
	}
	return m, nil
}

func (m *matcher) match(e *Entry) bool {
	f := m.f
	if f.Method != "" && !strings.EqualFold(e.Method(), f.Method) {
		return false
	}
	if f.Path != "" {
		ok, err := doublestar.Match(f.Path, e.Path())
		if err != nil || !ok {
			return false
		}
	}
	if f.Header != "" && (e.Request == nil || !e.Request.Headers().Has(f.Header)) {
		return false
	}
	if m.expr != nil {
		if e.Request == nil {
			return false
		}
		body := e.Request.Body()
		if len(body) == 0 {
			return false
		}
		data, err := oj.Parse(body)
		if err != nil {
			return false
		}
		if len(m.expr.Get(data)) == 0 {
			return false
		}
	}
	return true
}

// page applies Offset and Limit to an already filtered slice.
func (f *Filter) page(entries []*Entry) []*Entry {
	if f.Offset > 0 {
		if f.Offset >= len(entries) {
			return []*Entry{}
		}
		entries = entries[f.Offset:]
	}
	if f.Limit > 0 && f.Limit < len(entries) {
		entries = entries[:f.Limit]
	}
	return entries
}
