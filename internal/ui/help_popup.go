package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHelpPopup(main string) string {
	var content strings.Builder

	// Title
	title := lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).Render("⌨️  Keyboard Shortcuts")
	content.WriteString(title)
	content.WriteString("\n\n")

	keys := m.config.Keys

	// Section helper
	section := func(name string, bindings []struct{ key, desc string }) {
		header := lipgloss.NewStyle().Bold(true).Foreground(HighlightColor()).Render(name)
		content.WriteString(header + "\n")
		for _, b := range bindings {
			keyStyle := lipgloss.NewStyle().Foreground(SuccessColor()).Width(15)
			descStyle := lipgloss.NewStyle().Foreground(TextSecondary())
			content.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(b.key), descStyle.Render(b.desc)))
		}
		content.WriteString("\n")
	}

	section("Connection", []struct{ key, desc string }{
		{strings.Join(keys.Connect, "/"), "Connect and list databases"},
		{"enter", "Connect (from password)"},
		{strings.Join(keys.PickServer, "/"), "Saved servers"},
		{strings.Join(keys.PickDatabase, "/"), "Search databases"},
	})

	section("Query", []struct{ key, desc string }{
		{strings.Join(keys.Preview, "/"), "Preview query"},
		{strings.Join(keys.Execute, "/"), "Execute query"},
		{strings.Join(keys.History, "/"), "Query history"},
		{strings.Join(keys.Export, "/"), "Export result to CSV"},
		{strings.Join(keys.Copy, "/"), "Copy row (results)"},
	})

	section("Navigation", []struct{ key, desc string }{
		{strings.Join(keys.NextField, "/"), "Next field"},
		{strings.Join(keys.PrevField, "/"), "Previous field"},
		{strings.Join(keys.NextPage, "/"), "Next page"},
		{strings.Join(keys.PrevPage, "/"), "Previous page"},
	})

	section("Other", []struct{ key, desc string }{
		{strings.Join(keys.Help, "/"), "Show this help"},
		{strings.Join(keys.Exit, "/"), "Close popup"},
		{strings.Join(keys.Quit, "/"), "Quit"},
	})

	content.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc or q to close"))

	return m.renderPopup(content.String(), main, 50)
}
