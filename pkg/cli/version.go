package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/pkg/cli/internal/output"
)

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if jsonOutput(cmd) {
				return output.JSON(cmd.OutOrStdout(), struct {
					BuildInfo
					GoVersion string `json:"goVersion"`
				}{info, runtime.Version()})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wirestub %s (commit %s, built %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, runtime.Version())
			return nil
		},
	}
}
