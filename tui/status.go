package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	stderrRenderer = lipgloss.NewRenderer(os.Stderr)

	errorStyle = stderrRenderer.NewStyle().Bold(true).Foreground(ColorOrange)
	debugStyle = stderrRenderer.NewStyle().Bold(true).Foreground(ColorPurple)
)

func writeStatus(w io.Writer, verb string, style lipgloss.Style, format string, args ...any) {
	padded := fmt.Sprintf("%12s", verb)
	styled := style.Render(padded)
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", styled, msg)
}

func writeError(w io.Writer, style lipgloss.Style, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(w, "%s %s\n", style.Render("Error:"), msg)
}

// Error prints "Error: <message>" to stderr. Fatal pre-fetch failures use
// this form so tray wrappers can match on the prefix.
func Error(format string, args ...any) {
	writeError(os.Stderr, errorStyle, format, args...)
}

// Debug prints a right-aligned bold purple "debug" followed by a message to
// stderr. Verbose fetch diagnostics go through here so they never mix with
// panel output on stdout.
func Debug(format string, args ...any) {
	writeStatus(os.Stderr, "debug", debugStyle, format, args...)
}
