package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/wirestub/pkg/message"
)

func TestEncode_BodyDefaults(t *testing.T) {
	req := message.NewRequest("http://localhost:7070/some_path").WithBodyString("hi")

	enc := Encode("post", req)

	assert.Equal(t, "POST", enc.Method)
	assert.Equal(t, "text/plain; UTF-8", enc.Headers.Get("content-type"))
	assert.Equal(t, "2", enc.Headers.Get("content-length"))
	assert.Equal(t, DefaultUserAgent, enc.Headers.Get("user-agent"))
	assert.Equal(t, []byte("hi"), enc.Body)
}

func TestEncode_ExplicitHeadersWin(t *testing.T) {
	req := message.NewRequest("/x").
		WithHeader("Content-Type", "application/json").
		WithHeader("User-Agent", "tests").
		WithHeader("Content-Length", "999").
		WithBodyString(`{"a":1}`)

	enc := Encode("PUT", req)

	assert.Equal(t, "application/json", enc.Headers.Get("Content-Type"))
	assert.Equal(t, []string{"7"}, enc.Headers.Values("Content-Length"))
	assert.Equal(t, "tests", enc.Headers.Get("User-Agent"))
}

func TestEncode_FormParams(t *testing.T) {
	req := message.NewRequest("/form").
		WithFormParam("a", 1).
		WithFormParam("b", "x y")

	enc := Encode("POST", req)

	assert.Equal(t, ContentTypeForm, enc.Headers.Get("Content-Type"))
	assert.Equal(t, "a=1&b=x+y", string(enc.Body))
	assert.Equal(t, "9", enc.Headers.Get("Content-Length"))
}

func TestEncode_BodyWinsOverFormParams(t *testing.T) {
	req := message.NewRequest("/both").
		WithFormParam("ignored", "yes").
		WithBodyString("payload")

	enc := Encode("POST", req)

	assert.Equal(t, "payload", string(enc.Body))
	assert.Equal(t, "text/plain; UTF-8", enc.Headers.Get("Content-Type"))
}

func TestEncode_NoPayloadNoContentLength(t *testing.T) {
	enc := Encode("GET", message.NewRequest("/empty"))

	assert.False(t, enc.Headers.Has("Content-Length"))
	assert.False(t, enc.Headers.Has("Content-Type"))
	assert.Empty(t, enc.Body)
}

func TestEncode_PathParamsInTarget(t *testing.T) {
	req := message.NewRequest("http://localhost:7070").
		WithPath("a b").
		WithPathParamValues("q", "1", "2")

	enc := Encode("GET", req)

	assert.Equal(t, "http://localhost:7070/a+b?q=1&q=2", enc.Target)
	uri, host := enc.RequestURI()
	assert.Equal(t, "/a+b?q=1&q=2", uri)
	assert.Equal(t, "localhost:7070", host)
}

func TestEncoded_Bytes(t *testing.T) {
	req := message.NewRequest("http://example.com:8080/p").
		WithHeader("X-Trace", "abc").
		WithBodyString("hello")

	raw := string(Encode("POST", req).Bytes())

	want := strings.Join([]string{
		"POST /p HTTP/1.1",
		"Host: example.com:8080",
		"Content-Length: 5",
		"Content-Type: text/plain; UTF-8",
		"User-Agent: " + DefaultUserAgent,
		"X-Trace: abc",
		"",
		"hello",
	}, "\r\n")
	assert.Equal(t, want, raw)
}

func TestEncoded_BytesStripsControlCharacters(t *testing.T) {
	req := message.NewRequest("/h").WithHeader("X-Evil", "a\r\nInjected: yes")

	raw := string(Encode("GET", req).Bytes())

	assert.Contains(t, raw, "X-Evil: aInjected: yes\r\n")
	assert.NotContains(t, raw, "\r\nInjected")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	req := message.NewRequest("/round").
		WithHeader("A", "1").
		WithHeader("A", "2").
		WithBodyString("trip")

	var buf bytes.Buffer
	_, err := Encode("PATCH", req).WriteTo(&buf)
	require.NoError(t, err)

	parsed, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, "PATCH", parsed.Method())
	assert.Equal(t, "/round", parsed.Target())
	assert.Equal(t, []string{"1", "2"}, parsed.Header("a"))
	assert.Equal(t, "trip", parsed.BodyString())
}
