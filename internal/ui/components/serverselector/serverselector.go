// Package serverselector lists saved servers so the connection form can
// be filled in one keystroke.
package serverselector

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/fastquery/internal/config"
)

// SelectedMsg carries the chosen server
type SelectedMsg struct {
	Server config.Server
}

// DeleteMsg asks the caller to forget a saved server
type DeleteMsg struct {
	Name string
}

// Styles for the selector
type Styles struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style
}

// DefaultStyles returns the default styling
func DefaultStyles(theme config.Theme) Styles {
	return Styles{
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Highlight)).
			Padding(1, 2),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Accent)).
			MarginBottom(1),
		Item: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextSecondary)).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(theme.Accent)).
			Background(lipgloss.Color(theme.SelectedBg)).
			Foreground(lipgloss.Color(theme.TextPrimary)).
			PaddingLeft(1),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextFaint)).
			Italic(true),
	}
}

// Model is the selector state
type Model struct {
	servers []config.Server
	cursor  int
	visible bool
	styles  Styles
}

// New creates a hidden selector
func New(theme config.Theme) Model {
	return Model{styles: DefaultStyles(theme)}
}

// Open shows the selector with the given servers
func (m Model) Open(servers []config.Server) Model {
	m.servers = servers
	m.visible = true
	if m.cursor >= len(servers) {
		m.cursor = 0
	}
	return m
}

// Close hides the selector
func (m Model) Close() Model {
	m.visible = false
	return m
}

// Visible returns visibility state
func (m Model) Visible() bool {
	return m.visible
}

// Update handles key input while visible
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !m.visible || !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "q":
		return m.Close(), nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.servers)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.servers) == 0 {
			return m, nil
		}
		s := m.servers[m.cursor]
		return m.Close(), func() tea.Msg { return SelectedMsg{Server: s} }
	case "x", "delete":
		if len(m.servers) == 0 {
			return m, nil
		}
		name := m.servers[m.cursor].Name
		return m, func() tea.Msg { return DeleteMsg{Name: name} }
	}
	return m, nil
}

// View renders the popup box; empty when hidden
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Saved servers"))
	b.WriteString("\n")
	if len(m.servers) == 0 {
		b.WriteString(m.styles.Hint.Render("No saved servers yet. They are added after a successful connect."))
		b.WriteString("\n")
	}
	for i, s := range m.servers {
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(s.Label()))
		} else {
			b.WriteString(m.styles.Item.Render(s.Label()))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("enter fill form • x forget • esc close"))
	return m.styles.Box.Render(b.String())
}
