package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHelp() string {
	// Style for key hints - makes keys look like keyboard buttons
	keyStyle := lipgloss.NewStyle().
		Foreground(TextPrimary()).
		Background(CardBg()).
		Padding(0, 1).
		Bold(true)

	sepStyle := lipgloss.NewStyle().Foreground(TextFaint())
	descStyle := lipgloss.NewStyle().Foreground(TextSecondary())

	hint := func(key, desc string) string {
		return keyStyle.Render(key) + descStyle.Render(" "+desc)
	}

	// Helper to get first key or fallback
	key := func(bindings []string, fallback string) string {
		if len(bindings) > 0 {
			return bindings[0]
		}
		return fallback
	}

	sep := sepStyle.Render("  ")
	keys := m.config.Keys

	// Context-aware hints based on focus
	var hints []string
	switch m.focus {
	case FocusServer, FocusUser, FocusPassword:
		hints = append(hints,
			hint(key(keys.Connect, "ctrl+o"), "Connect"),
			hint(key(keys.PickServer, "ctrl+s"), "Servers"),
		)
	case FocusDatabase:
		hints = append(hints,
			hint("←/→", "Database"),
			hint("enter", "Search"),
		)
	case FocusEditor:
		hints = append(hints,
			hint(key(keys.Preview, "ctrl+p"), "Preview"),
			hint(key(keys.Execute, "ctrl+d"), "Execute"),
			hint(key(keys.History, "ctrl+r"), "History"),
		)
	case FocusResults:
		hints = append(hints,
			hint(key(keys.PrevPage, "pgup")+"/"+key(keys.NextPage, "pgdown"), "Page"),
		)
	}

	// Always show help and quit
	hints = append(hints,
		hint(key(keys.NextField, "tab"), "Next"),
		hint(key(keys.Help, "f1"), "Help"),
		hint(key(keys.Quit, "ctrl+c"), "Quit"),
	)

	return strings.Join(hints, sep)
}
