package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/pkg/cli/internal/output"
	"github.com/getmockd/wirestub/pkg/wire"
)

type parsedJSON struct {
	Method  string              `json:"method"`
	Target  string              `json:"target"`
	Proto   string              `json:"proto"`
	Path    string              `json:"path"`
	Query   map[string][]string `json:"query,omitempty"`
	Headers map[string][]string `json:"headers,omitempty"`
	Charset string              `json:"charset"`
	Body    string              `json:"body"`
}

func newDecodeCmd() *cobra.Command {
	var bodyMode string
	cmd := &cobra.Command{
		Use:   "decode [FILE]",
		Short: "Parse a raw HTTP request and print it",
		Long: `Parse a raw HTTP/1.x request from FILE or stdin with the same decoder the
server uses. LF-only line endings are accepted. The input is read to EOF.`,
		Example: `  printf 'GET /x HTTP/1.1\r\nA: 1\r\nA: 2\r\n\r\n' | wirestub decode
  wirestub decode --json request.http`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := wire.ParseBodyMode(bodyMode)
			if err != nil {
				return err
			}

			// Hide deadline support so pipes are read to EOF.
			in := struct{ io.Reader }{cmd.InOrStdin()}
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open request: %w", err)
				}
				defer f.Close()
				in = struct{ io.Reader }{f}
			}

			req, err := wire.Decode(in, wire.WithBodyMode(mode))
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return output.JSON(cmd.OutOrStdout(), parsedJSON{
					Method:  req.Method(),
					Target:  req.Target(),
					Proto:   req.Proto(),
					Path:    req.Path(),
					Query:   req.Query(),
					Headers: req.Headers().Map(),
					Charset: req.Charset().Name(),
					Body:    req.BodyString(),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), req.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&bodyMode, "body-mode", "available", "Body framing: available or content-length")
	return cmd
}
