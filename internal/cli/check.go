package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"triagewizard/internal/claudecli"
	"triagewizard/internal/config"
)

// checkProbeTimeout bounds the --version probe; a wedged agent install
// should not hang the doctor.
const checkProbeTimeout = 10 * time.Second

// runCheck builds the handler for the check command.
func runCheck(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to the YAML config file")
		noColor := fs.Bool("no-color", false, "Disable styled output")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		cfg, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "config error: %v\n", err)
			return ExitError
		}

		palette := paletteFor(stdout, *noColor)

		binary := cfg.Claude.Binary
		if binary == "" {
			binary = claudecli.DefaultBinary
		}

		ctx, cancel := context.WithTimeout(context.Background(), checkProbeTimeout)
		defer cancel()
		runner := claudecli.Runner{Binary: cfg.Claude.Binary}
		agentVersion, probeErr := runner.Version(ctx)

		printCheckRow(stdout, palette, "Mode", cfg.Claude.Mode, true)
		printCheckRow(stdout, palette, "Model", cfg.Claude.Model, true)
		printCheckRow(stdout, palette, "Listen address", cfg.Server.ListenAddr, true)
		printCheckRow(stdout, palette, "Frontend dir", cfg.Server.FrontendDir, true)
		if cfg.History.Path != "" {
			printCheckRow(stdout, palette, "History db", cfg.History.Path, true)
		} else {
			printCheckRow(stdout, palette, "History db", "disabled", true)
		}
		if probeErr != nil {
			printCheckRow(stdout, palette, "Agent ("+binary+")", probeErr.Error(), false)
		} else {
			printCheckRow(stdout, palette, "Agent ("+binary+")", agentVersion, true)
		}

		if probeErr != nil && cfg.Claude.Mode == config.ModeCLI {
			fmt.Fprintf(stderr, "\nThe %s binary is not usable. Install and authenticate the Claude Code CLI, or set claude.binary.\n", binary)
			return ExitError
		}
		if _, err := os.Stat(cfg.Server.FrontendDir); err != nil {
			fmt.Fprintf(stderr, "\nFrontend dir %s is not readable; static serving will 404.\n", cfg.Server.FrontendDir)
		}
		return ExitOK
	}
}

func printCheckRow(w io.Writer, palette checkPalette, label, value string, ok bool) {
	// Pad before styling so ANSI escapes don't skew the columns.
	marker := palette.ok(fmt.Sprintf("%-4s", "ok"))
	if !ok {
		marker = palette.fail(fmt.Sprintf("%-4s", "FAIL"))
	}
	fmt.Fprintf(w, "%s %s %s\n", palette.label(fmt.Sprintf("%-18s", label)), marker, value)
}
