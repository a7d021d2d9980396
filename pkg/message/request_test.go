package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_String(t *testing.T) {
	req := NewRequest("http://example.com").
		WithPath("path1").
		WithHeader("header1", "value1-1").
		WithHeader("header1", "value1-2").
		WithHeader("header2", "value2").
		WithPathParam("a", 5).
		WithPathParam("a", 7).
		WithPathParam("b", "test").
		WithBodyString("request body")

	expected := "URL: http://example.com/path1?a=5&a=7&b=test\n" +
		"Headers:\n" +
		"{\n" +
		"  header1 : [value1-1, value1-2]\n" +
		"  header2 : [value2]\n" +
		"}\n" +
		"Body:\n" +
		"request body"

	assert.Equal(t, expected, req.String())
}

func TestRequest_StringOmitsEmptyBlocks(t *testing.T) {
	assert.Equal(t, "URL: /plain", NewRequest("/plain").String())
	assert.Equal(t, "URL: /plain\nBody:\nx", NewRequest("/plain").WithBodyString("x").String())
}

func TestRequest_Immutable(t *testing.T) {
	base := NewRequest("http://localhost").WithHeader("A", "1")

	withB := base.WithHeader("B", "2")
	withBody := base.WithBodyString("payload")
	withParam := base.WithFormParam("p", 1)

	assert.False(t, base.Headers().Has("B"))
	assert.False(t, base.HasBody())
	assert.False(t, base.HasFormParams())

	assert.True(t, withB.Headers().Has("B"))
	assert.False(t, withBody.Headers().Has("B"))
	assert.Equal(t, "payload", withBody.BodyString())
	assert.Equal(t, "p=1", withParam.FormParamsString())
}

func TestRequest_BodyIsCopied(t *testing.T) {
	raw := []byte("abc")
	req := NewRequest("/").WithBody(raw)
	raw[0] = 'z'
	assert.Equal(t, "abc", req.BodyString())

	out := req.Body()
	out[0] = 'q'
	assert.Equal(t, "abc", req.BodyString())
}

func TestRequest_WithPath(t *testing.T) {
	req := NewRequest("http://h").WithPath("test").WithPath("composite").WithPath("a b/c")
	assert.Equal(t, "http://h/test/composite/a+b%2Fc", req.Target())
}

func TestRequest_WithHeaderAccumulates(t *testing.T) {
	req := NewRequest("/").
		WithHeader("X-Multi", "one").
		WithHeader("x-multi", "two").
		WithHeader("X-MULTI", "one")

	assert.Equal(t, []string{"one", "two"}, req.Headers().Values("x-Multi"))
	assert.Equal(t, []string{"X-Multi"}, req.Headers().Names())
}

func TestRequest_WithHeaderEmptyIsNoop(t *testing.T) {
	req := NewRequest("/")
	assert.Same(t, req, req.WithHeader("A", ""))
}

func TestRequest_WithHeadersReplacesAndDropsEmpty(t *testing.T) {
	req := NewRequest("/").
		WithHeader("header3", "val3").
		WithHeaders(map[string][]string{
			"header1": {"val1-1", "val1-2"},
			"header2": {"val2"},
			"header4": {},
			"header5": nil,
		})

	h := req.Headers()
	assert.False(t, h.Has("header3"))
	assert.False(t, h.Has("header4"))
	assert.False(t, h.Has("header5"))
	assert.Equal(t, []string{"val1-1", "val1-2"}, h.Values("HEADER1"))
	assert.Equal(t, "val2", h.Get("header2"))
}

func TestRequest_FormParams(t *testing.T) {
	req := NewRequest("/").
		WithFormParam("param1", 1).
		WithFormParam("param1", 2).
		WithFormParam("param2", "val2").
		WithFormParam("param3", nil)

	assert.Equal(t, "param1=1&param1=2&param2=val2", req.FormParamsString())
	assert.Equal(t, []any{1, 2}, req.FormParams().Values("PARAM1"))
}

func TestRequest_FormParamsBulkReplace(t *testing.T) {
	req := NewRequest("/").
		WithFormParam("param5", "val5").
		WithFormParams(map[string][]any{
			"param1": {1, 2},
			"param2": {"val2"},
			"param3": {},
			"param4": nil,
		})

	assert.Equal(t, "param1=1&param1=2&param2=val2", req.FormParamsString())
	assert.Equal(t, []string{"param1", "param2"}, req.FormParams().Names())
}

func TestRequest_PathParams(t *testing.T) {
	req := NewRequest("http://h/x").
		WithPathParam("q", "a b").
		WithPathParam("q", "c&d").
		WithPathParam("n", 3.5)

	assert.Equal(t, "http://h/x?q=a+b&q=c%26d&n=3.5", req.URL())
	assert.Equal(t, "http://h/x", req.Target())

	replaced := req.WithPathParams(map[string][]any{"only": {true}, "gone": {}})
	assert.Equal(t, "http://h/x?only=true", replaced.URL())
}

func TestRequest_ParamValuesOverload(t *testing.T) {
	req := NewRequest("/").
		WithPathParam("a", 1).
		WithPathParamValues("A", 7, 8, 7)

	assert.Equal(t, "a=7&a=8", req.PathParamsString())
	assert.Same(t, req, req.WithPathParamValues("a"))
	assert.Same(t, req, req.WithFormParamValues("a", nil))
}

func TestRequest_ParamSetSemantics(t *testing.T) {
	req := NewRequest("/").
		WithFormParam("x", 1).
		WithFormParam("x", "1").
		WithFormParam("x", 2)

	assert.Equal(t, "x=1&x=2", req.FormParamsString())
}

func TestRequest_WithBodyNilKeepsBody(t *testing.T) {
	req := NewRequest("/").WithBodyString("keep")
	assert.Same(t, req, req.WithBody(nil))
	assert.Equal(t, "keep", req.BodyString())
}

func TestRequest_Charset(t *testing.T) {
	latin1, err := LookupCharset("latin1")
	require.NoError(t, err)

	req := NewRequest("/").WithCharset(latin1).WithBodyString("café")
	assert.Equal(t, []byte{'c', 'a', 'f', 0xe9}, req.Body())
	assert.Equal(t, "café", req.BodyString())
	assert.Equal(t, "ISO-8859-1", req.Charset().Name())

	utf := NewRequest("/").WithBodyCharset([]byte("café"), UTF8)
	assert.Equal(t, "café", utf.BodyString())
}

func TestRequest_TypedNilParamsAreIgnored(t *testing.T) {
	var (
		ptr *int
		sl  []string
		m   map[string]int
	)
	req := NewRequest("/x")

	assert.Same(t, req, req.WithPathParam("a", ptr))
	assert.Same(t, req, req.WithFormParam("a", sl))
	assert.Same(t, req, req.WithPathParamValues("a", ptr, m))
	assert.Equal(t, "/x", req.WithPathParam("a", ptr).URL())

	bulk := req.WithPathParams(map[string][]any{"a": {ptr, 1}, "b": {m}})
	assert.Equal(t, "/x?a=1", bulk.URL())

	n := 3
	assert.True(t, req.WithFormParam("n", &n).HasFormParams())
}
