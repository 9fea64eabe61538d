// Package dbpicker provides a searchable database selection popup.
package dbpicker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/nhath/fastquery/internal/config"
)

// SelectedMsg is sent when the user picks a database
type SelectedMsg struct {
	Index int
	Name  string
}

// CancelledMsg is sent when the popup is dismissed without a pick
type CancelledMsg struct{}

// Styles for the picker
type Styles struct {
	Box      lipgloss.Style
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Match    lipgloss.Style
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
			Foreground(lipgloss.Color(theme.TextPrimary)).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.BgPrimary)).
			Background(lipgloss.Color(theme.Highlight)).
			Bold(true).
			PaddingLeft(1).
			PaddingRight(1),
		Match: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Success)).
			Underline(true),
		Hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextFaint)).
			Italic(true),
	}
}

// Model is the picker state
type Model struct {
	items   []string
	matches fuzzy.Matches
	cursor  int
	visible bool
	maxShow int
	filter  textinput.Model
	styles  Styles
}

// New creates a hidden picker
func New(theme config.Theme) Model {
	fi := textinput.New()
	fi.Prompt = "/ "
	fi.Placeholder = "Type to filter databases..."
	fi.CharLimit = 128
	fi.Width = 36

	return Model{
		maxShow: 10,
		filter:  fi,
		styles:  DefaultStyles(theme),
	}
}

// Open shows the picker over items with the cursor on current
func (m Model) Open(items []string, current int) Model {
	m.items = items
	m.visible = true
	m.filter.SetValue("")
	m.filter.Focus()
	m.refilter()
	if current >= 0 && current < len(m.matches) {
		m.cursor = current
	}
	return m
}

// Close hides the picker
func (m Model) Close() Model {
	m.visible = false
	m.filter.Blur()
	return m
}

// Visible returns visibility state
func (m Model) Visible() bool {
	return m.visible
}

// Matches returns the item indexes that pass the current filter, in
// display order
func (m Model) Matches() []int {
	out := make([]int, len(m.matches))
	for i, match := range m.matches {
		out[i] = match.Index
	}
	return out
}

// refilter recomputes matches; an empty filter keeps backend order
func (m *Model) refilter() {
	pattern := strings.TrimSpace(m.filter.Value())
	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.items))
		for i, it := range m.items {
			m.matches[i] = fuzzy.Match{Str: it, Index: i}
		}
	} else {
		m.matches = fuzzy.Find(pattern, m.items)
	}
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Update handles key input while visible
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "esc":
		m = m.Close()
		return m, func() tea.Msg { return CancelledMsg{} }
	case "up", "ctrl+k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "ctrl+j":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if len(m.matches) == 0 {
			return m, nil
		}
		picked := m.matches[m.cursor]
		m = m.Close()
		return m, func() tea.Msg { return SelectedMsg{Index: picked.Index, Name: picked.Str} }
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.refilter()
	return m, cmd
}

// View renders the popup box; empty when hidden
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(fmt.Sprintf("Databases (%d)", len(m.items))))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	if len(m.matches) == 0 {
		b.WriteString(m.styles.Hint.Render("No database matches"))
	}

	start := 0
	if m.cursor >= m.maxShow {
		start = m.cursor - m.maxShow + 1
	}
	end := start + m.maxShow
	if end > len(m.matches) {
		end = len(m.matches)
	}
	for i := start; i < end; i++ {
		match := m.matches[i]
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("▸ " + match.Str))
		} else {
			b.WriteString(m.styles.Item.Render(m.highlight(match)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Hint.Render("↑/↓ move • enter select • esc cancel"))
	return m.styles.Box.Render(b.String())
}

// highlight underlines the matched characters
func (m Model) highlight(match fuzzy.Match) string {
	if len(match.MatchedIndexes) == 0 {
		return match.Str
	}
	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matched[idx] = true
	}
	var b strings.Builder
	for i, r := range match.Str {
		if matched[i] {
			b.WriteString(m.styles.Match.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
