package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/pkg/cli/internal/output"
	"github.com/getmockd/wirestub/pkg/client"
	"github.com/getmockd/wirestub/pkg/message"
)

type responseJSON struct {
	Status  int                 `json:"status"`
	Reason  string              `json:"reason"`
	Headers map[string][]string `json:"headers,omitempty"`
	Body    string              `json:"body"`
}

func newRequestCmd() *cobra.Command {
	var (
		rf      requestFlags
		timeout time.Duration
		fail    bool
	)
	cmd := &cobra.Command{
		Use:   "request METHOD URL",
		Short: "Send a request and print the response",
		Example: `  wirestub request GET http://localhost:7070/hello
  wirestub request POST http://localhost:7070/form -F name=John -F age=42`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.build(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}

			resp, err := client.New(client.WithTimeout(timeout)).Do(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				if err := output.JSON(cmd.OutOrStdout(), responseJSON{
					Status:  resp.Status(),
					Reason:  resp.Reason(),
					Headers: resp.Headers().Map(),
					Body:    resp.Text(),
				}); err != nil {
					return err
				}
			} else {
				printResponse(cmd, resp)
			}

			if fail && resp.Status() >= 400 {
				return fmt.Errorf("server returned %d %s", resp.Status(), resp.Reason())
			}
			return nil
		},
	}
	rf.register(cmd)
	cmd.Flags().DurationVar(&timeout, "timeout", client.DefaultTimeout, "Request timeout")
	cmd.Flags().BoolVar(&fail, "fail", false, "Exit non-zero on 4xx and 5xx responses")
	return cmd
}

func printResponse(cmd *cobra.Command, resp *message.Response) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%d %s\n", resp.Status(), resp.Reason())
	for _, f := range resp.Headers().Fields() {
		fmt.Fprintf(w, "%s: %s\n", f.Name, f.Value)
	}
	if resp.HasBody() {
		fmt.Fprintf(w, "\n%s\n", resp.Text())
	}
}
