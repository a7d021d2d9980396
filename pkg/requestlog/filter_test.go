package requestlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	s.Log(entry(t, "GET /api/users HTTP/1.1\r\n\r\n"))
	s.Log(entry(t, "POST /api/users HTTP/1.1\r\nContent-Type: application/json\r\n\r\n{\"user\":{\"id\":7}}"))
	s.Log(entry(t, "GET /static/css/site.css HTTP/1.1\r\nIf-None-Match: abc\r\n\r\n"))
	s.Log(entry(t, "POST /api/orders?x=1 HTTP/1.1\r\n\r\nnot json"))
	return s
}

func paths(entries []*Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Method() + " " + e.Path()
	}
	return out
}

func TestFilter(t *testing.T) {
	s := seeded(t)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"method", Filter{Method: "post"}, []string{"POST /api/users", "POST /api/orders"}},
		{"single star", Filter{Path: "/api/*"}, []string{"GET /api/users", "POST /api/users", "POST /api/orders"}},
		{"double star", Filter{Path: "/static/**"}, []string{"GET /static/css/site.css"}},
		{"exact path", Filter{Path: "/api/orders"}, []string{"POST /api/orders"}},
		{"header", Filter{Header: "if-none-match"}, []string{"GET /static/css/site.css"}},
		{"jsonpath", Filter{BodyJSONPath: "$.user.id"}, []string{"POST /api/users"}},
		{"jsonpath miss", Filter{BodyJSONPath: "$.order"}, []string{}},
		{"combined", Filter{Method: "GET", Path: "/api/**"}, []string{"GET /api/users"}},
		{"limit", Filter{Limit: 2}, []string{"GET /api/users", "POST /api/users"}},
		{"offset", Filter{Offset: 3}, []string{"POST /api/orders"}},
		{"offset past end", Filter{Offset: 10}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			assert.Equal(t, tt.want, paths(s.List(&f)))
		})
	}
}

func TestFilter_Validate(t *testing.T) {
	require.NoError(t, (&Filter{Path: "/a/**", BodyJSONPath: "$.a[0]"}).Validate())

	assert.Error(t, (&Filter{Path: "/a/[b"}).Validate())
	assert.Error(t, (&Filter{BodyJSONPath: "$[invalid"}).Validate())

	s := seeded(t)
	assert.Empty(t, s.List(&Filter{Path: "/a/[b"}))
}
