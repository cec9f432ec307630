package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Status messages go to stderr so stdout stays clean for report output.

func warnf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, warnStyle.Render("warning:")+" "+fmt.Sprintf(format, args...))
}

func errorf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	fmt.Fprintln(os.Stderr, dimStyle.Render(fmt.Sprintf(format, args...)))
}

func successf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, successStyle.Render(fmt.Sprintf(format, args...)))
}
