package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/pkg/cli/internal/output"
	"github.com/getmockd/wirestub/pkg/config"
)

type configSetting struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newConfigCmd() *cobra.Command {
	var f serverFlags
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Show the configuration serve would run with, and which layer set each value.

Precedence (highest first): flags, WIRESTUB_* environment variables, the
config file, built-in defaults.`,
		Example: `  wirestub config
  wirestub config --port 9000 --json
  WIRESTUB_WORKERS=8 wirestub config -c wirestub.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			settings := effectiveSettings(cfg)
			if jsonOutput(cmd) {
				return output.JSON(cmd.OutOrStdout(), settings)
			}
			tw := output.Table(cmd.OutOrStdout())
			fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
			for _, s := range settings {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Key, s.Value, s.Source)
			}
			return tw.Flush()
		},
	}
	f.register(cmd)
	return cmd
}

func effectiveSettings(cfg *config.Config) []configSetting {
	kv := []struct{ key, value string }{
		{"port", strconv.Itoa(cfg.Port)},
		{"host", cfg.Host},
		{"workers", strconv.Itoa(cfg.Workers)},
		{"maxBindAttempts", strconv.Itoa(cfg.MaxBindAttempts)},
		{"bodyMode", cfg.BodyMode},
		{"availableWindow", cfg.AvailableWindow.String()},
		{"stub", cfg.Stub},
		{"stubFile", cfg.StubFile},
		{"stubCRLF", strconv.FormatBool(cfg.StubCRLF)},
		{"watch", strconv.FormatBool(cfg.Watch)},
		{"log.level", cfg.Log.Level},
		{"log.format", cfg.Log.Format},
		{"log.file", cfg.Log.File},
	}
	out := make([]configSetting, len(kv))
	for i, s := range kv {
		out[i] = configSetting{Key: s.key, Value: s.value, Source: cfg.Source(s.key)}
	}
	return out
}
