package server

import (
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/wirestub/pkg/logging"
	"github.com/getmockd/wirestub/pkg/requestlog"
	"github.com/getmockd/wirestub/pkg/wire"
)

const helloStub = "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello"

func startServer(t *testing.T, opts ...Option) (*Server, int) {
	t.Helper()
	srv := New(append([]Option{WithHost("127.0.0.1")}, opts...)...)
	port, err := srv.Start(0)
	require.NoError(t, err)
	require.NotZero(t, port)
	return srv, port
}

// send writes raw, half-closes, and returns everything the server replies.
func send(port int, raw string) ([]byte, error) {
	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(raw)); err != nil {
		return nil, err
	}
	if err := conn.(*net.TCPConn).CloseWrite(); err != nil {
		return nil, err
	}
	if err := conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return nil, err
	}
	return io.ReadAll(conn)
}

func mustSend(t *testing.T, port int, raw string) []byte {
	t.Helper()
	out, err := send(port, raw)
	require.NoError(t, err)
	return out
}

func TestServer_StubAndLog(t *testing.T) {
	srv, port := startServer(t)
	srv.SetStub([]byte(helloStub))

	out := mustSend(t, port, "GET /some_path?x=1 HTTP/1.1\r\nHost: localhost\r\n\r\n")

	resp, err := wire.ReadResponse(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Status())
	assert.Equal(t, "hello", resp.Text())

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "GET", reqs[0].Method())
	assert.Equal(t, "/some_path", reqs[0].Path())
	assert.Equal(t, "localhost", reqs[0].Headers().Get("host"))
	assert.Equal(t, port, srv.Port())
}

func TestServer_DefaultStub(t *testing.T) {
	_, port := startServer(t)

	out := mustSend(t, port, "GET / HTTP/1.1\r\n\r\n")

	assert.Equal(t, DefaultStub, out)
	resp, err := wire.ReadResponse(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, "This is response body", resp.Text())
}

func TestServer_StubWrittenVerbatim(t *testing.T) {
	srv, port := startServer(t, WithStub([]byte("not even http")))
	assert.Equal(t, []byte("not even http"), mustSend(t, port, "GET / HTTP/1.1\r\n\r\n"))

	srv.SetStub(nil)
	assert.Empty(t, mustSend(t, port, "GET / HTTP/1.1\r\n\r\n"))
	assert.Equal(t, 2, srv.RequestCount())
}

func TestServer_StubSwap(t *testing.T) {
	srv, port := startServer(t)

	srv.SetStub([]byte("first"))
	assert.Equal(t, "first", string(mustSend(t, port, "GET /1 HTTP/1.1\r\n\r\n")))

	srv.SetStub([]byte("second"))
	assert.Equal(t, "second", string(mustSend(t, port, "GET /2 HTTP/1.1\r\n\r\n")))

	stub := srv.Stub()
	stub[0] = 'X'
	assert.Equal(t, "second", string(srv.Stub()))
}

func TestServer_RequestsIsNonDestructive(t *testing.T) {
	srv, port := startServer(t)
	mustSend(t, port, "POST /a HTTP/1.1\r\n\r\nbody")

	first := srv.Requests()
	second := srv.Requests()
	require.Len(t, first, 1)
	assert.Equal(t, first, second)
	assert.Equal(t, "body", first[0].BodyString())
}

func TestServer_MalformedRequestIsNotLogged(t *testing.T) {
	srv, port := startServer(t, WithStub([]byte(helloStub)))

	out := mustSend(t, port, "GARBAGE\r\n\r\n")
	assert.Empty(t, out)
	out = mustSend(t, port, "\r\n\r\n")
	assert.Empty(t, out)
	assert.Equal(t, 0, srv.RequestCount())

	out = mustSend(t, port, "GET /ok HTTP/1.1\r\n\r\n")
	assert.Equal(t, helloStub, string(out))
	assert.Equal(t, 1, srv.RequestCount())
}

func TestServer_OccupiedPortMovesUp(t *testing.T) {
	blocker, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer blocker.Close()
	busy := blocker.Addr().(*net.TCPAddr).Port
	if busy == maxPort {
		t.Skip("ephemeral port at top of range")
	}

	srv := New(WithHost("127.0.0.1"))
	port, err := srv.Start(busy)
	require.NoError(t, err)
	assert.Greater(t, port, busy)

	out := mustSend(t, port, "GET / HTTP/1.1\r\n\r\n")
	assert.Equal(t, DefaultStub, out)
}

func TestServer_MaxBindAttempts(t *testing.T) {
	blocker, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer blocker.Close()
	busy := blocker.Addr().(*net.TCPAddr).Port

	srv := New(WithHost("127.0.0.1"), WithMaxBindAttempts(1))
	_, err = srv.Start(busy)
	assert.ErrorIs(t, err, ErrNoFreePort)
	assert.Zero(t, srv.Port())
}

func TestServer_StartTwice(t *testing.T) {
	srv, port := startServer(t)

	again, err := srv.Start(0)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.Equal(t, port, again)
}

func TestServer_InvalidPort(t *testing.T) {
	_, err := New().Start(-1)
	assert.Error(t, err)
	_, err = New().Start(70000)
	assert.Error(t, err)
}

func TestServer_StopUnsupported(t *testing.T) {
	srv, port := startServer(t)
	assert.ErrorIs(t, srv.Stop(), ErrStopUnsupported)

	// Still serving.
	assert.Equal(t, DefaultStub, mustSend(t, port, "GET / HTTP/1.1\r\n\r\n"))
}

func TestServer_ConcurrentConnections(t *testing.T) {
	srv, port := startServer(t, WithWorkers(2), WithStub([]byte(helloStub)))

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := send(port, fmt.Sprintf("GET /c/%d HTTP/1.1\r\n\r\n", i))
			assert.NoError(t, err)
			assert.Equal(t, helloStub, string(out))
		}()
	}
	wg.Wait()

	assert.Equal(t, n, srv.RequestCount())
	seen := make(map[string]bool)
	for _, r := range srv.Requests() {
		seen[r.Path()] = true
	}
	assert.Len(t, seen, n)
}

func TestServer_ContentLengthMode(t *testing.T) {
	srv, port := startServer(t, WithBodyMode(wire.BodyContentLength))

	mustSend(t, port, "POST /cl HTTP/1.1\r\nContent-Length: 5\r\n\r\nhello and more")

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "hello", reqs[0].BodyString())
}

func TestServer_EntriesAndSubscribe(t *testing.T) {
	srv, port := startServer(t, WithLogger(logging.Nop()))
	sub, unsubscribe := srv.Subscribe()
	defer unsubscribe()

	mustSend(t, port, "GET /a HTTP/1.1\r\n\r\n")
	mustSend(t, port, "POST /b HTTP/1.1\r\n\r\n{\"id\":1}")

	for i := 0; i < 2; i++ {
		select {
		case e := <-sub:
			assert.NotZero(t, e.Conn)
			assert.NotEmpty(t, e.RemoteAddr)
		case <-time.After(5 * time.Second):
			t.Fatal("entry not delivered")
		}
	}

	posts := srv.Entries(&requestlog.Filter{Method: "POST", BodyJSONPath: "$.id"})
	require.Len(t, posts, 1)
	assert.Equal(t, "/b", posts[0].Path())
	assert.Len(t, srv.Entries(nil), 2)
}

func TestServer_SharedStore(t *testing.T) {
	store := requestlog.NewMemoryStore()
	_, port := startServer(t, WithStore(store))

	mustSend(t, port, "DELETE /x HTTP/1.1\r\n\r\n")
	assert.Equal(t, 1, store.Count())
}
