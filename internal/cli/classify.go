package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"triagewizard/internal/config"
	"triagewizard/internal/provider"
	"triagewizard/internal/triage"
)

// runClassify builds the handler for the classify command: a one-off
// classification of a bug JSON file, exercising the same provider path as
// the server without HTTP in the way.
func runClassify(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to the YAML config file")
		providerName := fs.String("provider", "claude", "Provider to use")
		model := fs.String("model", "", "Model identifier, overrides config")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		bugPath := fs.Arg(0)
		if bugPath == "" {
			fmt.Fprintln(stderr, "Missing <bug.json>")
			return ExitUsage
		}
		if fs.NArg() > 1 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config error: %v\n", err)
			return ExitError
		}

		bug, err := os.ReadFile(bugPath)
		if err != nil {
			fmt.Fprintf(stderr, "Bug file not readable: %v\n", err)
			return ExitError
		}
		if !json.Valid(bug) {
			fmt.Fprintf(stderr, "Bug file %s is not valid JSON\n", bugPath)
			return ExitError
		}

		selected, err := provider.Select(cfg, *providerName)
		if err != nil {
			fmt.Fprintf(stderr, "Provider error: %v\n", err)
			return ExitError
		}

		modelID := *model
		if modelID == "" {
			modelID = cfg.Claude.Model
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		raw, err := selected.Invoke(ctx, provider.Request{
			Prompt:  triage.BuildClassifyPrompt(bug),
			Schema:  triage.ClassifySchema,
			Model:   modelID,
			Markers: triage.ClassifyMarkers,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Classification failed: %v\n", err)
			return ExitError
		}

		encoded, err := json.MarshalIndent(triage.DecodeClassify(raw), "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Encoding result failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, string(encoded))
		return ExitOK
	}
}
