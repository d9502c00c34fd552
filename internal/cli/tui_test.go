package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/snakecodec/pkg/history"
)

func testEntries(n int) []history.Entry {
	entries := make([]history.Entry, n)
	for i := range entries {
		entries[i] = history.NewEntry(history.OpEncrypt, "caesar", strings.Repeat("x", i+1))
	}
	return entries
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m HistoryListModel, msg tea.Msg) (HistoryListModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	hm, ok := next.(HistoryListModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return hm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestHistoryListNavigation(t *testing.T) {
	m := NewHistoryListModel(testEntries(3))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor != 0 {
		t.Errorf("cursor moved above the first entry: %d", m.Cursor)
	}
	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, keyRunes("j"))
	if m.Cursor != 2 {
		t.Errorf("cursor = %d, want 2", m.Cursor)
	}
	m, _ = update(t, m, keyRunes("k"))
	if m.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.Cursor)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Details {
		t.Error("enter should show details")
	}
	if !strings.Contains(m.View(), m.Entries[1].ID) {
		t.Error("details view should contain the entry ID")
	}
}

func TestHistoryListScrolls(t *testing.T) {
	m := NewHistoryListModel(testEntries(10))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 8})
	if m.Height != 5 {
		t.Fatalf("height = %d, want minimum 5", m.Height)
	}
	for range 6 {
		m, _ = update(t, m, keyRunes("j"))
	}
	if m.Cursor != 6 || m.Offset != 2 {
		t.Errorf("cursor=%d offset=%d, want 6 and 2", m.Cursor, m.Offset)
	}
}

func TestHistoryListDelete(t *testing.T) {
	entries := testEntries(2)
	m := NewHistoryListModel(entries)

	m, _ = update(t, m, keyRunes("j"))
	m, cmd := update(t, m, keyRunes("d"))
	if isQuit(cmd) {
		t.Fatal("should not quit while entries remain")
	}
	if len(m.Entries) != 1 || m.Cursor != 0 {
		t.Fatalf("entries=%d cursor=%d", len(m.Entries), m.Cursor)
	}
	if len(m.Removed) != 1 || m.Removed[0].ID != entries[1].ID {
		t.Errorf("removed = %v", m.Removed)
	}
	if entries[1].ID == m.Entries[0].ID {
		t.Error("wrong entry deleted")
	}

	m, cmd = update(t, m, keyRunes("x"))
	if !isQuit(cmd) {
		t.Error("deleting the last entry should quit")
	}
	if len(m.Removed) != 2 {
		t.Errorf("removed %d entries, want 2", len(m.Removed))
	}
	if entries[0].ID == entries[1].ID || len(entries) != 2 {
		t.Error("caller's slice was modified")
	}
}

func TestHistoryListQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{keyRunes("q"), {Type: tea.KeyEsc}, {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, NewHistoryListModel(testEntries(1)), msg)
		if !isQuit(cmd) {
			t.Errorf("%s should quit", msg)
		}
	}
}
