package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/fastquery/internal/history"
	"github.com/nhath/fastquery/internal/ui/highlight"
	"github.com/nhath/fastquery/internal/ui/icons"
)

// historyVisible is how many entries the popup lists at once
const historyVisible = 8

func (m Model) renderHistoryPopup(main string) string {
	width := max(min(m.width-10, 100), 40)

	var content strings.Builder
	server, db := m.historyScope()
	title := lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).
		Render(fmt.Sprintf("History  %s/%s", limitString(server, 30), db))
	content.WriteString(title + "\n")

	if m.searching || m.searchInput.Value() != "" {
		content.WriteString(m.searchInput.View() + "\n")
	}
	content.WriteString("\n")

	if len(m.history) == 0 {
		content.WriteString(MetaStyle.Render("No queries yet"))
		return m.renderPopup(content.String(), main, width)
	}

	// Scroll window around the selection
	start := 0
	if m.historySelected >= historyVisible {
		start = m.historySelected - historyVisible + 1
	}
	end := min(start+historyVisible, len(m.history))

	for i := start; i < end; i++ {
		content.WriteString(m.renderHistoryItem(m.history[i], i == m.historySelected, width-6))
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(lipgloss.NewStyle().Faint(true).Render("enter load  / search  x delete  esc close"))
	return m.renderPopup(content.String(), main, width)
}

// renderHistoryItem renders a single history entry; the selected one
// also shows its stored preview or error
func (m Model) renderHistoryItem(entry history.HistoryEntry, selected bool, width int) string {
	var b strings.Builder

	indicator := "  "
	if selected {
		indicator = icons.IconSelect + " "
	}
	b.WriteString(indicator)
	b.WriteString(highlight.SQL(entry.QueryPreview(width - 4)))
	b.WriteString("\n")

	meta := fmt.Sprintf("  %s %s %s | %dms | %d rows | %s",
		icons.StatusIcon(entry.Status),
		icons.ModeIcon(entry.Mode),
		entry.Mode,
		entry.DurationMs,
		entry.RowCount,
		entry.ExecutedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(MetaStyle.Render(meta))

	if selected {
		if entry.ErrorMessage != "" {
			b.WriteString("\n")
			b.WriteString(ErrorStyle.Render("  " + entry.ErrorMessage))
		} else if entry.Preview != "" {
			previewStyle := lipgloss.NewStyle().
				Foreground(TextFaint()).
				PaddingLeft(4)
			b.WriteString("\n")
			b.WriteString(previewStyle.Render(entry.Preview))
		}
	}

	style := lipgloss.NewStyle().Width(width)
	if selected {
		style = style.
			BorderLeft(true).
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(AccentColor())
	}
	return style.Render(b.String())
}
