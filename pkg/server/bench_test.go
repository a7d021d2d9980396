package server

import (
	"testing"
	"time"

	"github.com/getmockd/wirestub/pkg/requestlog"
)

func BenchmarkServer_RoundTrip(b *testing.B) {
	srv := New(
		WithHost("127.0.0.1"),
		WithStub([]byte(helloStub)),
		WithAvailableWindow(time.Millisecond),
		WithStore(requestlog.NewMemoryStore()),
	)
	port, err := srv.Start(0)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for b.Loop() {
		if _, err := send(port, "GET /bench HTTP/1.1\r\nHost: localhost\r\n\r\n"); err != nil {
			b.Fatal(err)
		}
	}
}
