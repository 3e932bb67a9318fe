package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
)

// getLogStyles returns the charm styles used for driftwatch log output.
// Level labels are fixed-width; the keys carried on every operational
// record (profile, stack, err) get their own colors so scan output is
// scannable by eye.
func getLogStyles() *charm.Styles {
	styles := charm.DefaultStyles()

	styles.Levels[TraceLevel] = lipgloss.NewStyle().
		SetString("TRCE").
		Bold(true).
		Foreground(lipgloss.Color("245"))
	styles.Levels[charm.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBU").
		Bold(true).
		Foreground(lipgloss.Color("63"))
	styles.Levels[charm.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Bold(true).
		Foreground(lipgloss.Color("86"))
	styles.Levels[charm.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Bold(true).
		Foreground(lipgloss.Color("192"))
	styles.Levels[charm.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERRO").
		Bold(true).
		Foreground(lipgloss.Color("204"))
	styles.Levels[charm.FatalLevel] = lipgloss.NewStyle().
		SetString("FATA").
		Bold(true).
		Foreground(lipgloss.Color("134"))

	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["profile"] = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	styles.Keys["stack"] = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	return styles
}

// GetCharmLogger returns a styled charm logger writing to stderr.
func GetCharmLogger() *charm.Logger {
	return GetCharmLoggerWithOutput(os.Stderr)
}

// GetCharmLoggerWithOutput returns a styled charm logger writing to the given writer.
func GetCharmLoggerWithOutput(w io.Writer) *charm.Logger {
	l := charm.New(w)
	l.SetStyles(getLogStyles())
	return l
}
