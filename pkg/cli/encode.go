package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/pkg/wire"
)

func newEncodeCmd() *cobra.Command {
	var rf requestFlags
	cmd := &cobra.Command{
		Use:   "encode METHOD TARGET",
		Short: "Print the HTTP/1.1 bytes a request encodes to",
		Long: `Build a request from flags and print exactly what would be written to the
wire, including the default Content-Type, Content-Length and User-Agent.`,
		Example: `  wirestub encode POST http://localhost:7070/users -d 'hello'
  wirestub encode GET /search -q term=go -H 'Accept: text/plain'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := rf.build(args[1], cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = wire.Encode(args[0], req).WriteTo(cmd.OutOrStdout())
			return err
		},
	}
	rf.register(cmd)
	return cmd
}
