package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/pkg/config"
)

// localConfigNames are searched in the working directory when no config
// file is given.
var localConfigNames = []string{"wirestub.yaml", "wirestub.yml"}

// serverFlags are the settings shared by serve and config.
type serverFlags struct {
	configFile      string
	port            int
	host            string
	workers         int
	maxBindAttempts int
	bodyMode        string
	window          string
	stub            string
	stubFile        string
	crlf            bool
	watch           bool
	logLevel        string
	logFormat       string
	logFile         string
}

func (f *serverFlags) register(cmd *cobra.Command) {
	d := config.Default()
	fs := cmd.Flags()
	fs.StringVarP(&f.configFile, "config", "c", "", "YAML config file")
	fs.IntVarP(&f.port, "port", "p", d.Port, "Port to bind; the next free port is used when busy (0 picks any)")
	fs.StringVar(&f.host, "host", d.Host, "Interface to bind (default all)")
	fs.IntVar(&f.workers, "workers", d.Workers, "Connections handled concurrently")
	fs.IntVar(&f.maxBindAttempts, "max-bind-attempts", d.MaxBindAttempts, "Ports to try before giving up (0 = until the range ends)")
	fs.StringVar(&f.bodyMode, "body-mode", d.BodyMode, "Body framing: available or content-length")
	fs.StringVar(&f.window, "available-window", d.AvailableWindow.String(), "How long the available body mode waits for bytes")
	fs.StringVar(&f.stub, "stub", "", "Inline stub response")
	fs.StringVar(&f.stubFile, "stub-file", "", "File holding the stub response")
	fs.BoolVar(&f.crlf, "crlf", false, "Convert LF line endings in the stub to CRLF")
	fs.BoolVar(&f.watch, "watch", false, "Reload --stub-file when it changes")
	fs.StringVar(&f.logLevel, "log-level", d.Log.Level, "Log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", d.Log.Format, "Log format: text or json")
	fs.StringVar(&f.logFile, "log-file", "", "Also write JSON logs to this file")
}

// load layers defaults, the config file, the environment and the flags
// that were explicitly set, then validates the result.
func (f *serverFlags) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	path, err := f.configPath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := f.apply(cmd, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *serverFlags) configPath() (string, error) {
	if f.configFile != "" {
		return f.configFile, nil
	}
	if p := os.Getenv(config.EnvConfig); p != "" {
		return p, nil
	}
	for _, name := range localConfigNames {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

func (f *serverFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	set := func(flag, key string, fn func()) {
		if fs.Changed(flag) {
			fn()
			cfg.Set(key, config.SourceFlag)
		}
	}
	set("port", "port", func() { cfg.Port = f.port })
	set("host", "host", func() { cfg.Host = f.host })
	set("workers", "workers", func() { cfg.Workers = f.workers })
	set("max-bind-attempts", "maxBindAttempts", func() { cfg.MaxBindAttempts = f.maxBindAttempts })
	set("body-mode", "bodyMode", func() { cfg.BodyMode = f.bodyMode })
	set("stub", "stub", func() { cfg.Stub = f.stub })
	set("stub-file", "stubFile", func() { cfg.StubFile = f.stubFile })
	set("crlf", "stubCRLF", func() { cfg.StubCRLF = f.crlf })
	set("watch", "watch", func() { cfg.Watch = f.watch })
	set("log-level", "log.level", func() { cfg.Log.Level = f.logLevel })
	set("log-format", "log.format", func() { cfg.Log.Format = f.logFormat })
	set("log-file", "log.file", func() { cfg.Log.File = f.logFile })

	if fs.Changed("available-window") {
		d, err := config.ParseDuration(f.window)
		if err != nil {
			return fmt.Errorf("%w: --available-window: %v", config.ErrInvalidConfig, err)
		}
		cfg.AvailableWindow = d
		cfg.Set("availableWindow", config.SourceFlag)
	}
	return nil
}
