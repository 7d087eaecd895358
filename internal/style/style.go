// Package style provides consistent terminal styling using Lipgloss.
// Uses the Ayu theme colors from internal/ui for semantic consistency.
package style

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/xucongyong/claude-notify/internal/ui"
)

var (
	// Success style for positive outcomes (green)
	Success = lipgloss.NewStyle().
		Foreground(ui.ColorPass).
		Bold(true)

	// Warning style for cautionary messages (yellow)
	Warning = lipgloss.NewStyle().
		Foreground(ui.ColorWarn).
		Bold(true)

	// Error style for failures (red)
	Error = lipgloss.NewStyle().
		Foreground(ui.ColorFail).
		Bold(true)

	// Info style for informational messages (blue)
	Info = lipgloss.NewStyle().
		Foreground(ui.ColorAccent)

	// Dim style for secondary information (gray)
	Dim = lipgloss.NewStyle().
		Foreground(ui.ColorMuted)

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().
		Bold(true)

	// SuccessPrefix is the checkmark prefix for success messages
	SuccessPrefix = Success.Render(ui.IconPass)

	// WarningPrefix is the warning prefix
	WarningPrefix = Warning.Render(ui.IconWarn)

	// ErrorPrefix is the error prefix
	ErrorPrefix = Error.Render(ui.IconFail)

	// InfoPrefix is the informational prefix
	InfoPrefix = Info.Render(ui.IconInfo)
)

// PrintWarning prints a warning message with consistent formatting.
// The format and args work like fmt.Printf.
func PrintWarning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Printf("%s %s\n", Warning.Render(ui.IconWarn+" Warning:"), msg)
}

// Reporter prints the operator-facing progress of a multi-step command:
// one prefixed line per outcome, written to W.
type Reporter struct {
	W io.Writer
}

// NewReporter returns a Reporter writing to w, or stdout when w is nil.
func NewReporter(w io.Writer) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{W: w}
}

// OK reports a completed step.
func (r *Reporter) OK(format string, args ...interface{}) {
	r.line(SuccessPrefix, format, args...)
}

// Info reports something the operator should know but need not act on.
func (r *Reporter) Info(format string, args ...interface{}) {
	r.line(InfoPrefix, format, args...)
}

// Warn reports a soft failure; the command carries on.
func (r *Reporter) Warn(format string, args ...interface{}) {
	r.line(WarningPrefix, format, args...)
}

// Fail reports a hard failure.
func (r *Reporter) Fail(format string, args ...interface{}) {
	r.line(ErrorPrefix, format, args...)
}

// Detail prints indented follow-up lines under the previous message, e.g.
// remediation steps.
func (r *Reporter) Detail(lines ...string) {
	for _, l := range lines {
		fmt.Fprintf(r.W, "   %s\n", l)
	}
}

// Heading prints a bold title with an underline rule.
func (r *Reporter) Heading(title string) {
	fmt.Fprintln(r.W)
	fmt.Fprintln(r.W, Bold.Render(title))
	fmt.Fprintln(r.W, Dim.Render(strings.Repeat("─", 40)))
	fmt.Fprintln(r.W)
}

// Println prints a plain line.
func (r *Reporter) Println(a ...interface{}) {
	fmt.Fprintln(r.W, a...)
}

func (r *Reporter) line(prefix, format string, args ...interface{}) {
	fmt.Fprintf(r.W, "%s  %s\n", prefix, fmt.Sprintf(format, args...))
}
