package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/fastquery/internal/ui/icons"
)

func (m Model) renderStatusBar() string {
	var parts []string
	l := m.labels()

	// 1. Connection Info
	if db, ok := m.state.SelectedDatabase(); ok {
		server := limitString(m.state.Input.Server, 30)
		info := fmt.Sprintf(" %s %s/%s ", icons.IconServer, server, db)
		if m.state.Input.User != "" {
			info = fmt.Sprintf(" %s %s@%s/%s ", icons.IconServer, m.state.Input.User, server, db)
		}
		parts = append(parts, ConnectionStyle.Render(info))
	} else {
		parts = append(parts, ConnectionStyle.Render(" NOT CONNECTED "))
	}

	// 2. Loading indicator
	if m.state.Connecting() {
		loadingStyle := lipgloss.NewStyle().Foreground(AccentColor()).Padding(0, 1)
		parts = append(parts, loadingStyle.Render(m.spinner.View()+" "+l.Connecting))
	} else if m.state.Querying() {
		loadingStyle := lipgloss.NewStyle().Foreground(HighlightColor()).Padding(0, 1)
		parts = append(parts, loadingStyle.Render(m.spinner.View()+" "+l.Running))
	}

	// 3. Status message (success/info or failure)
	if m.statusMsg != "" && m.statusErr {
		errorStyle := lipgloss.NewStyle().Background(ErrorColor()).Foreground(TextPrimary()).Padding(0, 1)
		parts = append(parts, errorStyle.Render(icons.IconError+" "+limitString(m.statusMsg, 60)))
	} else if m.statusMsg != "" {
		statusStyle := lipgloss.NewStyle().Background(SuccessColor()).Foreground(BgPrimary()).Padding(0, 1)
		parts = append(parts, statusStyle.Render(icons.IconSuccess+" "+m.statusMsg))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(max(m.width, 1)).Render(content)
}
