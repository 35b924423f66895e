package cli

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// checkPalette styles the check command's rows. Styling is off unless the
// writer is a real terminal and the usual opt-outs are unset.
type checkPalette struct {
	enabled    bool
	labelStyle lipgloss.Style
	okStyle    lipgloss.Style
	failStyle  lipgloss.Style
}

// paletteFor selects a palette based on the writer and color settings.
func paletteFor(writer io.Writer, noColor bool) checkPalette {
	if noColor || !shouldUseStyling(writer) {
		return checkPalette{}
	}
	return checkPalette{
		enabled:    true,
		labelStyle: lipgloss.NewStyle().Bold(true),
		okStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		failStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// shouldUseStyling reports whether ANSI styling should be enabled.
func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p checkPalette) label(text string) string {
	if !p.enabled {
		return text
	}
	return p.labelStyle.Render(text)
}

func (p checkPalette) ok(text string) string {
	if !p.enabled {
		return text
	}
	return p.okStyle.Render(text)
}

func (p checkPalette) fail(text string) string {
	if !p.enabled {
		return text
	}
	return p.failStyle.Render(text)
}
