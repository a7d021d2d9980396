package requestlog

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/wirestub/pkg/wire"
)

func parse(t *testing.T, raw string) *wire.ParsedRequest {
	t.Helper()
	req, err := wire.Decode(strings.NewReader(raw))
	require.NoError(t, err)
	return req
}

func entry(t *testing.T, raw string) *Entry {
	t.Helper()
	return &Entry{Request: parse(t, raw), RemoteAddr: "127.0.0.1:5000"}
}

func TestMemoryStore_LogAssignsIDAndTimestamp(t *testing.T) {
	s := NewMemoryStore()
	e := entry(t, "GET / HTTP/1.1\r\n\r\n")

	s.Log(e)

	require.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Same(t, e, s.Get(e.ID))
	assert.Nil(t, s.Get("missing"))
}

func TestMemoryStore_KeepsExplicitID(t *testing.T) {
	s := NewMemoryStore()
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	e := entry(t, "GET / HTTP/1.1\r\n\r\n")
	e.ID = "req-1"
	e.Timestamp = ts

	s.Log(e)

	got := s.Get("req-1")
	require.NotNil(t, got)
	assert.Equal(t, ts, got.Timestamp)
}

func TestMemoryStore_IgnoresEmptyEntries(t *testing.T) {
	s := NewMemoryStore()
	s.Log(nil)
	s.Log(&Entry{})
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.List(nil))
}

func TestMemoryStore_ListIsSnapshotInLogOrder(t *testing.T) {
	s := NewMemoryStore()
	s.Log(entry(t, "GET /1 HTTP/1.1\r\n\r\n"))
	s.Log(entry(t, "GET /2 HTTP/1.1\r\n\r\n"))

	first := s.List(nil)
	second := s.List(nil)
	require.Len(t, first, 2)
	assert.Equal(t, first, second)
	assert.Equal(t, "/1", first[0].Path())
	assert.Equal(t, "/2", first[1].Path())

	first[0] = nil
	assert.NotNil(t, s.List(nil)[0])

	s.Log(entry(t, "GET /3 HTTP/1.1\r\n\r\n"))
	assert.Len(t, second, 2)
	assert.Equal(t, 3, s.Count())
	assert.Equal(t, "/3", s.List(nil)[2].Path())
}

func TestMemoryStore_ConcurrentLog(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Log(entry(t, "POST /c HTTP/1.1\r\n\r\nx"))
			_ = s.List(nil)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Count())
}

func TestMemoryStore_Subscribe(t *testing.T) {
	s := NewMemoryStore()
	sub, unsubscribe := s.Subscribe()

	e := entry(t, "GET /live HTTP/1.1\r\n\r\n")
	s.Log(e)

	select {
	case got := <-sub:
		assert.Same(t, e, got)
	case <-time.After(time.Second):
		t.Fatal("no entry delivered")
	}

	unsubscribe()
	unsubscribe()
	_, open := <-sub
	assert.False(t, open)

	s.Log(entry(t, "GET /after HTTP/1.1\r\n\r\n"))
	assert.Equal(t, 2, s.Count())
}
