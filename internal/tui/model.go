// Package tui is the interactive two-pane editor: lists on the left, the
// items of the selected list on the right. Every change is saved at once.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store"
)

type focusArea int

type inputMode int

type inputTarget int

const (
	focusLists focusArea = iota
	focusItems
)

const (
	modeNormal inputMode = iota
	modeInput
	modeConfirmDelete
)

const (
	targetNone inputTarget = iota
	targetAddList
	targetRenameList
	targetAddItem
	targetEditItem
)

// fileChangedMsg is sent when the backing file changed on disk.
type fileChangedMsg struct{}

// watcher is implemented by stores that can report external changes.
type watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

type Model struct {
	store    store.Store
	lists    model.Collection
	readOnly bool // set when the stored data could not be read

	focus      focusArea
	mode       inputMode
	target     inputTarget
	listCursor int
	itemCursor int

	width, height int
	status        string
	statusErr     bool
	confirm       string

	input   textinput.Model
	keys    keyMap
	help    help.Model
	changes <-chan struct{}
}

// New loads the lists from s. A missing file starts empty; unreadable data
// starts empty too, but nothing is saved so the original file survives.
func New(s store.Store) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := Model{
		store:  s,
		status: "Ready",
		input:  ti,
		keys:   defaultKeys(),
		help:   help.New(),
	}
	m.reload()
	return m
}

// WithChanges makes the model reload whenever ch fires.
func (m Model) WithChanges(ch <-chan struct{}) Model {
	m.changes = ch
	return m
}

// Run starts the interactive editor on s and blocks until the user quits.
func Run(s store.Store) error {
	m := New(s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if w, ok := s.(watcher); ok {
		ch, err := w.Watch(ctx)
		if err != nil {
			slog.Warn("tui: not watching for external changes", "err", err)
		} else {
			m = m.WithChanges(ch)
		}
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) reload() {
	lists, err := store.LoadForUpdate(m.store)
	if err != nil {
		m.lists = model.Collection{}
		m.readOnly = true
		m.setError(fmt.Sprintf("failed loading %s: %v (changes will not be saved)", m.store.Path(), err))
		m.clampCursors()
		return
	}
	m.lists = lists
	m.readOnly = false
	m.clampCursors()
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m Model) Init() tea.Cmd {
	if m.changes != nil {
		return waitForChange(m.changes)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case fileChangedMsg:
		if m.mode == modeNormal {
			m.reload()
		}
		return m, waitForChange(m.changes)
	case tea.KeyMsg:
		switch m.mode {
		case modeInput:
			return m.handleInputKeys(msg)
		case modeConfirmDelete:
			return m.handleConfirmKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}
	return m, nil
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Left):
		m.focus = focusLists
	case key.Matches(msg, m.keys.Right):
		m.openList()
	case key.Matches(msg, m.keys.Switch):
		if m.focus == focusItems {
			m.focus = focusLists
		} else {
			m.openList()
		}
	case key.Matches(msg, m.keys.Toggle):
		if m.focus == focusLists {
			m.openList()
		} else {
			m.toggleItem()
		}
	case key.Matches(msg, m.keys.Add):
		cmd := m.beginAdd()
		return m, cmd
	case key.Matches(msg, m.keys.Edit):
		cmd := m.beginEdit()
		return m, cmd
	case key.Matches(msg, m.keys.Delete):
		m.beginDelete()
	case key.Matches(msg, m.keys.Clear):
		m.clearDone()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	m.clampCursors()
	return m, nil
}

func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.endInput()
		m.setStatus("Input cancelled")
		return m, nil
	case "enter":
		m.commitInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "enter":
		m.confirmDelete()
		m.mode = modeNormal
		m.confirm = ""
	case "n", "esc":
		m.mode = modeNormal
		m.confirm = ""
		m.setStatus("Delete cancelled")
	}
	return m, nil
}

func (m *Model) openList() {
	if len(m.lists) == 0 {
		m.setError("No lists yet (press a to create one)")
		return
	}
	m.focus = focusItems
	m.setStatus(fmt.Sprintf("Opened %q", m.lists[m.listCursor].Name))
}

func (m *Model) beginInput(target inputTarget, value, placeholder, status string) tea.Cmd {
	m.mode = modeInput
	m.target = target
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	m.setStatus(status)
	return m.input.Focus()
}

func (m *Model) endInput() {
	m.mode = modeNormal
	m.target = targetNone
	m.input.SetValue("")
	m.input.Blur()
}

func (m *Model) beginAdd() tea.Cmd {
	if m.focus == focusLists {
		return m.beginInput(targetAddList, "", "List name", "Add list")
	}
	if m.currentList() == nil {
		m.setError("Create a list first")
		return nil
	}
	return m.beginInput(targetAddItem, "", "Item text", "Add item")
}

func (m *Model) beginEdit() tea.Cmd {
	if m.focus == focusLists {
		l := m.currentList()
		if l == nil {
			m.setError("No list to rename")
			return nil
		}
		return m.beginInput(targetRenameList, l.Name, "List name", "Rename list")
	}
	l := m.currentList()
	if l == nil || len(l.Items) == 0 {
		m.setError("No item to edit")
		return nil
	}
	return m.beginInput(targetEditItem, l.Items[m.itemCursor].Text, "Item text", "Edit item")
}

func (m *Model) commitInput() {
	value := strings.TrimSpace(m.input.Value())
	target := m.target
	m.endInput()
	if value == "" {
		m.setError("Empty input ignored")
		return
	}

	switch target {
	case targetAddList:
		m.lists.AddList(value)
		m.listCursor = len(m.lists) - 1
		m.itemCursor = 0
		m.setStatus("List created")
	case targetRenameList:
		if l := m.currentList(); l != nil {
			l.Name = value
			m.setStatus("List renamed")
		}
	case targetAddItem:
		if l := m.currentList(); l != nil {
			l.AddItem(value)
			m.itemCursor = len(l.Items) - 1
			m.setStatus("Item added")
		}
	case targetEditItem:
		if l := m.currentList(); l != nil && len(l.Items) > 0 {
			l.Items[m.itemCursor].Text = value
			m.setStatus("Item updated")
		}
	}
	m.clampCursors()
	m.persist()
}

func (m *Model) toggleItem() {
	l := m.currentList()
	if l == nil || len(l.Items) == 0 {
		m.setError("No item selected")
		return
	}
	if l.Toggle(m.itemCursor) {
		m.setStatus("Item done")
	} else {
		m.setStatus("Item reopened")
	}
	m.persist()
}

func (m *Model) clearDone() {
	l := m.currentList()
	if l == nil {
		m.setError("No list selected")
		return
	}
	n := l.ClearDone()
	if n == 0 {
		m.setStatus("Nothing to clear")
		return
	}
	m.clampCursors()
	m.setStatus(fmt.Sprintf("Cleared %d done items", n))
	m.persist()
}

func (m *Model) beginDelete() {
	l := m.currentList()
	if m.focus == focusLists {
		if l == nil {
			m.setError("No list to delete")
			return
		}
		m.confirm = fmt.Sprintf("Delete list %q and its %d items? (y/n)", l.Name, len(l.Items))
	} else {
		if l == nil || len(l.Items) == 0 {
			m.setError("No item to delete")
			return
		}
		m.confirm = fmt.Sprintf("Delete item %q? (y/n)", l.Items[m.itemCursor].Text)
	}
	m.mode = modeConfirmDelete
	m.setStatus(m.confirm)
}

func (m *Model) confirmDelete() {
	l := m.currentList()
	if l == nil {
		return
	}
	if m.focus == focusLists {
		removed := m.lists.RemoveList(m.listCursor)
		m.setStatus(fmt.Sprintf("Deleted list %q", removed.Name))
	} else {
		if len(l.Items) == 0 {
			return
		}
		removed := l.RemoveItem(m.itemCursor)
		m.setStatus(fmt.Sprintf("Deleted item %q", removed.Text))
	}
	m.clampCursors()
	m.persist()
}

func (m *Model) moveCursor(delta int) {
	if m.focus == focusLists {
		m.listCursor += delta
		m.itemCursor = 0
	} else {
		m.itemCursor += delta
	}
	m.clampCursors()
}

func (m *Model) currentList() *model.List {
	if m.listCursor < 0 || m.listCursor >= len(m.lists) {
		return nil
	}
	return &m.lists[m.listCursor]
}

func (m *Model) clampCursors() {
	if len(m.lists) == 0 {
		m.listCursor, m.itemCursor = 0, 0
		m.focus = focusLists
		return
	}
	m.listCursor = clamp(m.listCursor, len(m.lists))
	m.itemCursor = clamp(m.itemCursor, len(m.lists[m.listCursor].Items))
}

func clamp(v, n int) int {
	if n == 0 || v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) persist() {
	if m.readOnly {
		m.setError("not saved: stored data could not be read")
		return
	}
	if err := m.store.Save(m.lists); err != nil {
		m.setError(fmt.Sprintf("save failed: %v", err))
	}
}
