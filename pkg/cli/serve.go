package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/wirestub/internal/watch"
	"github.com/getmockd/wirestub/pkg/cli/internal/output"
	"github.com/getmockd/wirestub/pkg/config"
	"github.com/getmockd/wirestub/pkg/logging"
	"github.com/getmockd/wirestub/pkg/requestlog"
	"github.com/getmockd/wirestub/pkg/server"
)

type serveFlags struct {
	serverFlags
	portFile      string
	maxRequests   int
	printRequests bool
}

func newServeCmd() *cobra.Command {
	var f serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the stub server in the foreground",
		Long: `Run the stub server until interrupted. Every connection is answered with the
stub response and closed; the parsed requests are kept in memory.

A started server cannot be stopped gracefully: on SIGINT or SIGTERM the
process exits.`,
		Example: `  # Defaults: port 7070 (or the next free one), built-in stub
  wirestub serve

  # Serve a stub file and reload it on change
  wirestub serve --stub-file ok.http --crlf --watch

  # Exit after one request and print what was received
  wirestub serve --port 0 --port-file port.txt --max-requests 1 --print-requests`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := f.load(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd, cfg, &f)
		},
	}
	f.register(cmd)
	cmd.Flags().StringVar(&f.portFile, "port-file", "", "Write the bound port to this file")
	cmd.Flags().IntVar(&f.maxRequests, "max-requests", 0, "Exit after this many requests (0 = never)")
	cmd.Flags().BoolVar(&f.printRequests, "print-requests", false, "Print every received request on exit")
	return cmd
}

func runServe(cmd *cobra.Command, cfg *config.Config, f *serveFlags) error {
	out := cmd.OutOrStdout()

	lc := cfg.LoggingConfig()
	lc.Output = cmd.ErrOrStderr()
	log, closeLog, err := logging.New(lc)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	stub, err := cfg.StubBytes()
	if err != nil {
		return err
	}

	opts := []server.Option{
		server.WithLogger(log),
		server.WithHost(cfg.Host),
		server.WithWorkers(cfg.Workers),
		server.WithMaxBindAttempts(cfg.MaxBindAttempts),
		server.WithBodyMode(cfg.BodyModeValue()),
		server.WithAvailableWindow(cfg.AvailableWindow),
	}
	if stub != nil {
		opts = append(opts, server.WithStub(stub))
	}
	srv := server.New(opts...)

	sub, unsubscribe := srv.Subscribe()
	defer unsubscribe()

	port, err := srv.Start(cfg.Port)
	if err != nil {
		return err
	}
	if cfg.Port != 0 && port != cfg.Port {
		output.Warn(cmd.ErrOrStderr(), "port %d is busy, using %d", cfg.Port, port)
	}
	fmt.Fprintf(out, "wirestub listening on %s\n", net.JoinHostPort(cfg.Host, strconv.Itoa(port)))

	if f.portFile != "" {
		if err := os.WriteFile(f.portFile, []byte(strconv.Itoa(port)), 0o644); err != nil {
			return fmt.Errorf("failed to write port file: %w", err)
		}
	}

	if cfg.Watch {
		w := watch.New(cfg.StubFile, func() error {
			b, err := cfg.StubBytes()
			if err != nil {
				return err
			}
			srv.SetStub(b)
			return nil
		}, watch.WithLogger(log))
		if _, err := w.Start(); err != nil {
			return err
		}
		defer func() { _ = w.Stop() }()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	waitForRequests(ctx, srv, sub, f.maxRequests)

	if f.printRequests {
		for _, req := range srv.Requests() {
			fmt.Fprintf(out, "%s\n\n", req)
		}
	}
	fmt.Fprintf(out, "%d requests received\n", srv.RequestCount())
	log.Info("exiting; the listener closes with the process", "requests", srv.RequestCount())
	return nil
}

// waitForRequests blocks until ctx is done or limit requests were logged.
func waitForRequests(ctx context.Context, srv *server.Server, sub requestlog.Subscriber, limit int) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-sub:
			if !ok {
				return
			}
			if limit > 0 && srv.RequestCount() >= limit {
				return
			}
		}
	}
}
