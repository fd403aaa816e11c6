package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// SetOutput redirects everything the package prints; nil keeps the current writer.
func SetOutput(out, errOut io.Writer) {
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

func OK(msg string)   { fmt.Fprintln(stdout, current.Success.Render(current.SymDone+" "+msg)) }
func Fail(msg string) { fmt.Fprintln(stderr, current.Error.Render("✖ "+msg)) }

// Hint prints a muted follow-up line under an error.
func Hint(msg string) { fmt.Fprintln(stderr, current.Muted.Render(msg)) }

// Println writes a plain line to the output.
func Println(s string) { fmt.Fprintln(stdout, s) }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Box frames lines with the current theme's border.
func Box(lines []string) string {
	return lipgloss.NewStyle().
		Border(current.Border).
		BorderForeground(current.BorderColor).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// Panel prints lines inside a framed box.
func Panel(lines []string) {
	fmt.Fprintln(stdout, Box(lines))
}
