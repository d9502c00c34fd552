package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/snakecodec/pkg/history"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// HistoryListModel - Interactive history browser
// =============================================================================

// HistoryListModel is the bubbletea model for browsing history entries.
// Entries marked for deletion are collected in Removed; the caller deletes
// them from the store once the program exits.
type HistoryListModel struct {
	Entries []history.Entry
	Removed []history.Entry
	Cursor  int
	Height  int
	Offset  int

	// Details shows the ID and full timestamp of the entry under the cursor.
	Details bool
}

// NewHistoryListModel creates a new history list model.
func NewHistoryListModel(entries []history.Entry) HistoryListModel {
	return HistoryListModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m HistoryListModel) Init() tea.Cmd {
	return nil
}

func (m HistoryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Details = !m.Details
		case "d", "delete", "x":
			if len(m.Entries) == 0 {
				return m, nil
			}
			m.Removed = append(m.Removed, m.Entries[m.Cursor])
			m.Entries = append(m.Entries[:m.Cursor:m.Cursor], m.Entries[m.Cursor+1:]...)
			if m.Cursor >= len(m.Entries) && m.Cursor > 0 {
				m.Cursor--
			}
			if m.Offset > m.Cursor {
				m.Offset = m.Cursor
			}
			if len(m.Entries) == 0 {
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m HistoryListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("History"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  d delete  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%.2f", e.Frequency),
			string(e.Operation),
			e.Transform,
			e.Preview,
			e.CreatedAt.Local().Format("15:04:05"),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "MHz", "Operation", "Transform", "Preview", "Time").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entries) {
				return lipgloss.NewStyle()
			}
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 1 || col == 5 {
				base = base.Foreground(colorDim)
			}
			if isCurrent {
				if col == 1 || col == 5 {
					return base.Foreground(colorGray).Bold(true)
				}
				return base.Foreground(colorGreen).Bold(true)
			}
			if col == 2 {
				return base.Foreground(operationColor(string(m.Entries[actualIdx].Operation)))
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	if m.Details && len(m.Entries) > 0 {
		e := m.Entries[m.Cursor]
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("  id      ") + StyleValue.Render(e.ID) + "\n")
		b.WriteString(listDimStyle.Render("  created ") + StyleValue.Render(e.CreatedAt.Local().Format("2006-01-02 15:04:05.000")) + "\n")
	}

	b.WriteString("\n")
	status := fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))
	if len(m.Removed) > 0 {
		status += fmt.Sprintf("  %d marked for deletion", len(m.Removed))
	}
	b.WriteString(listDimStyle.Render(status))

	return b.String()
}
