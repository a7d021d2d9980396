package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/pkg/message"
)

// requestFlags builds a message.Request from curl-like flags.
type requestFlags struct {
	headers  []string
	query    []string
	form     []string
	data     string
	dataFile string
	charset  string
}

func (f *requestFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringArrayVarP(&f.headers, "header", "H", nil, `Header "Name: value" (repeatable)`)
	fs.StringArrayVarP(&f.query, "query", "q", nil, "Query parameter name=value (repeatable)")
	fs.StringArrayVarP(&f.form, "form", "F", nil, "Form parameter name=value (repeatable)")
	fs.StringVarP(&f.data, "data", "d", "", "Request body")
	fs.StringVar(&f.dataFile, "data-file", "", `Read the request body from a file ("-" for stdin)`)
	fs.StringVar(&f.charset, "charset", "", "Body charset (default UTF-8)")
	cmd.MarkFlagsMutuallyExclusive("data", "data-file")
}

func (f *requestFlags) build(target string, stdin io.Reader) (*message.Request, error) {
	req := message.NewRequest(target)

	if f.charset != "" {
		cs, err := message.LookupCharset(f.charset)
		if err != nil {
			return nil, err
		}
		req = req.WithCharset(cs)
	}

	for _, h := range f.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q (want \"Name: value\")", h)
		}
		req = req.WithHeader(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	for _, q := range f.query {
		name, value, err := splitPair(q)
		if err != nil {
			return nil, err
		}
		req = req.WithPathParam(name, value)
	}
	for _, p := range f.form {
		name, value, err := splitPair(p)
		if err != nil {
			return nil, err
		}
		req = req.WithFormParam(name, value)
	}

	switch {
	case f.dataFile == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read body from stdin: %w", err)
		}
		req = req.WithBody(b)
	case f.dataFile != "":
		b, err := os.ReadFile(f.dataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		req = req.WithBody(b)
	case f.data != "":
		req = req.WithBodyString(f.data)
	}
	return req, nil
}

func splitPair(s string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid parameter %q (want name=value)", s)
	}
	return name, value, nil
}
