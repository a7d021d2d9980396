// Package requestlog records the requests a stub server has parsed so they
// can be inspected after the fact.
//
// The log is append-only: entries are never evicted or rewritten, and reads
// return a fresh slice in the order requests finished parsing. It is
// distinct from operational logging, which goes through log/slog.
//
//	store := requestlog.NewMemoryStore()
//	store.Log(&requestlog.Entry{Request: parsed, RemoteAddr: addr})
//	gets := store.List(&requestlog.Filter{Method: "GET", Path: "/api/**"})
//
// Filters can match the request path with a doublestar glob and the body
// with a JSONPath expression.
package requestlog
