package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"triagewizard/internal/api"
	"triagewizard/internal/config"
	"triagewizard/internal/history"
	"triagewizard/internal/server"
)

// serveProxy is a test seam for running the server.
var serveProxy = server.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to the YAML config file")
		addr := fs.String("addr", "", "Listen address, overrides config")
		noOpen := fs.Bool("no-open", false, "Do not open the browser after startup")
		verbose := fs.Bool("verbose", false, "Log at debug level")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config error: %v\n", err)
			return ExitError
		}
		if *addr != "" {
			cfg.Server.ListenAddr = *addr
		}
		if *noOpen {
			cfg.Server.NoOpen = true
		}

		level := slog.LevelInfo
		if *verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		var store *history.Store
		if cfg.History.Path != "" {
			store, err = history.Open(cfg.History.Path)
			if err != nil {
				fmt.Fprintf(stderr, "history error: %v\n", err)
				return ExitError
			}
			defer store.Close()
		}

		handler := api.NewHandler(api.Config{
			Settings: cfg,
			History:  store,
			Version:  Version,
			Logger:   logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logger.Info("starting triage proxy",
			"addr", cfg.Server.ListenAddr,
			"mode", cfg.Claude.Mode,
			"model", cfg.Claude.Model,
			"frontend_dir", cfg.Server.FrontendDir,
			"history", cfg.History.Path != "")
		if cfg.Claude.Mode == config.ModeCLI {
			logger.Info("using Claude Code CLI, ensure the agent is installed and authenticated")
		}
		fmt.Fprintf(stdout, "Serving triage proxy at %s\n", server.URL(cfg.Server.ListenAddr))

		err = serveProxy(ctx, server.Config{
			Addr:        cfg.Server.ListenAddr,
			FrontendDir: cfg.Server.FrontendDir,
			NoOpen:      cfg.Server.NoOpen,
			API:         handler,
			Logger:      logger,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}
