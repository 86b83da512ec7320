package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/moby/term"
)

var (
	Banner  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	Failure = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

var stdoutIsTerminal = func() bool {
	return term.IsTerminal(os.Stdout.Fd())
}

// Render applies the style only when stdout is a terminal so that piped
// output stays free of escape sequences.
func Render(style lipgloss.Style, s string) string {
	if !stdoutIsTerminal() {
		return s
	}
	return style.Render(s)
}
