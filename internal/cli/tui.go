package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/smartview/pkg/store"
)

// =============================================================================
// TreeListModel - Interactive stored-tree selection
// =============================================================================

// TreeListModel is the bubbletea model for choosing a stored tree.
type TreeListModel struct {
	Trees    []store.Record
	Cursor   int
	Selected *store.Record
	Height   int
	Offset   int
}

// NewTreeListModel creates a new tree list model.
func NewTreeListModel(trees []store.Record) TreeListModel {
	return TreeListModel{Trees: trees, Height: 15}
}

func (m TreeListModel) Init() tea.Cmd {
	return nil
}

func (m TreeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Trees)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			rec := m.Trees[m.Cursor]
			m.Selected = &rec
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m TreeListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Tree"))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Trees))
	b.WriteString(treesTable(m.Trees[m.Offset:end], m.Cursor-m.Offset))
	b.WriteString("\n\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Trees))))

	return b.String()
}

// treesTable renders stored trees as a table, highlighting the row at
// cursor (none if negative).
func treesTable(recs []store.Record, cursor int) string {
	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		desc := r.Description
		if desc == "" {
			desc = "—"
		}
		rows = append(rows, []string{mark, r.Name, shortID(r.ID), desc, formatRelativeTime(r.UpdatedAt)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "ID", "Description", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case row == cursor && col == 1:
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			case row == cursor:
				return lipgloss.NewStyle().Bold(true)
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorWhite)
			default:
				return lipgloss.NewStyle().Foreground(colorDim)
			}
		})
	return t.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// =============================================================================
// Helpers
// =============================================================================

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
