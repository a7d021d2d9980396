package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo is injected by main from ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"buildDate"`
}

// NewRootCommand builds the command tree. A fresh tree is built per call
// so flag state never leaks between invocations.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "wirestub",
		Short: "wirestub is a raw-socket HTTP stub server",
		Long: `wirestub accepts HTTP/1.x connections on a plain TCP socket, parses each
request by hand, records it and answers with a fixed stub response.

Configuration can be provided via flags, WIRESTUB_* environment variables,
or a YAML file (--config, WIRESTUB_CONFIG, or ./wirestub.yaml).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("json", false, "Output command results in JSON format")

	root.AddCommand(
		newServeCmd(),
		newRequestCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newConfigCmd(),
		newVersionCmd(info),
	)
	return root
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
