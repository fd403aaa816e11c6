package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                          string
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, DoneText                            lipgloss.Style
	BoxUnchecked, BoxChecked                      string
	SymDone, SymPending                           string
	Border                                        lipgloss.Border
	BorderColor, FocusColor                       lipgloss.TerminalColor
}

var current = classic()

// Themes lists the names SetTheme accepts.
var Themes = []string{"classic", "neon", "mono"}

// SetTheme switches the active theme. Unknown names select classic and
// report false.
func SetTheme(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	case "classic", "":
		current = classic()
	default:
		current = classic()
		return false
	}
	return true
}

// Current returns the active theme.
func Current() Theme { return current }

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		DoneText:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.Color("8"),
		FocusColor:  lipgloss.Color("12"),
	}
}

func neon() Theme {
	return Theme{
		Name:         "neon",
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
		Muted:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Selected:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "212"}),
		DoneText:     lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "97", Dark: "141"}),
		BoxUnchecked: "◻", BoxChecked: "◼",
		SymDone: "✔", SymPending: "•",
		Border:      lipgloss.RoundedBorder(),
		BorderColor: lipgloss.AdaptiveColor{Light: "243", Dark: "241"},
		FocusColor:  lipgloss.AdaptiveColor{Light: "25", Dark: "212"},
	}
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain,
		Success: plain, Error: plain, Pending: plain,
		Selected:     plain.Reverse(true),
		DoneText:     plain,
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
		Border: lipgloss.Border{
			Top: "-", Bottom: "-", Left: "|", Right: "|",
			TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
		},
		BorderColor: lipgloss.NoColor{},
		FocusColor:  lipgloss.NoColor{},
	}
}
