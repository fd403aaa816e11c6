package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/shoplist/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func (m Model) View() string {
	w, h := m.width, m.height
	if w == 0 || h == 0 {
		w, h = defaultWidth, defaultHeight
	}
	t := ui.Current()

	bottom := 2 // help + status
	if m.mode != modeNormal {
		bottom += 4
	}
	paneH := h - bottom - 2
	if paneH < 1 {
		paneH = 1
	}
	leftW := w / 3
	rightW := w - leftW

	itemsTitle := "Items"
	if l := m.currentList(); l != nil {
		d, p := l.Stats()
		itemsTitle = fmt.Sprintf("%s %d/%d", l.Name, d, d+p)
	}
	left := renderPane(leftW, paneH, "Lists", m.focus == focusLists && m.mode == modeNormal, m.listLines())
	right := renderPane(rightW, paneH, itemsTitle, m.focus == focusItems && m.mode == modeNormal, m.itemLines())

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	b.WriteString("\n")

	switch m.mode {
	case modeInput:
		b.WriteString(ui.Box([]string{t.Accent.Render(m.inputTitle()), m.input.View()}))
		b.WriteString("\n")
	case modeConfirmDelete:
		b.WriteString(ui.Box([]string{t.Error.Render("Confirm"), m.confirm}))
		b.WriteString("\n")
	}

	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	if m.statusErr {
		b.WriteString(t.Error.Render("ERROR: " + m.status))
	} else {
		b.WriteString(t.Muted.Render(m.status))
	}
	return b.String()
}

func renderPane(width, height int, title string, focused bool, lines []string) string {
	t := ui.Current()
	color := t.BorderColor
	titleStyle := lipgloss.NewStyle()
	if focused {
		color = t.FocusColor
		titleStyle = titleStyle.Bold(true)
	}
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	if len(lines) > height-1 {
		lines = lines[:max(height-1, 0)]
	}
	body := append([]string{titleStyle.Foreground(color).Render(title)}, lines...)
	return lipgloss.NewStyle().
		Border(t.Border).
		BorderForeground(color).
		Padding(0, 1).
		Width(inner + 2).
		Height(height).
		Render(strings.Join(body, "\n"))
}

func (m Model) inputTitle() string {
	switch m.target {
	case targetAddList:
		return "New list"
	case targetRenameList:
		return "Rename list"
	case targetAddItem:
		return "New item"
	case targetEditItem:
		return "Edit item"
	default:
		return "Input"
	}
}

func (m Model) listLines() []string {
	t := ui.Current()
	if len(m.lists) == 0 {
		return []string{t.Muted.Render("No lists yet. Press a to create one.")}
	}
	lines := make([]string, 0, len(m.lists))
	for i, l := range m.lists {
		d, p := l.Stats()
		text := fmt.Sprintf("%s (%d/%d)", l.Name, d, d+p)
		if i == m.listCursor {
			lines = append(lines, t.Selected.Render("> "+text))
		} else {
			lines = append(lines, "  "+text)
		}
	}
	return lines
}

func (m Model) itemLines() []string {
	t := ui.Current()
	l := m.currentList()
	if l == nil {
		return []string{t.Muted.Render("Select or create a list.")}
	}
	if len(l.Items) == 0 {
		return []string{t.Muted.Render("No items yet. Press a to add one.")}
	}
	lines := make([]string, 0, len(l.Items))
	for i, it := range l.Items {
		prefix := "  "
		if i == m.itemCursor && m.focus == focusItems {
			prefix = t.Selected.Render("> ")
		}
		box, text := t.Muted.Render(t.BoxUnchecked), it.Text
		if it.Done {
			box, text = t.Success.Render(t.BoxChecked), t.DoneText.Render(it.Text)
		}
		lines = append(lines, prefix+box+" "+text)
	}
	return lines
}
