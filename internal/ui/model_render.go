package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/nhath/fastquery/internal/console"
	"github.com/nhath/fastquery/internal/ui/highlight"
	"github.com/nhath/fastquery/internal/ui/icons"
)

// View renders the UI
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	l := m.labels()

	title := TitleStyle.Render(l.Title)
	form := m.renderForm(width)
	databases := m.renderDatabases(width)
	editor := m.renderEditor(width)
	outcome := m.renderOutcome()
	statusBar := m.renderStatusBar()
	helpText := m.renderHelp()

	main := lipgloss.JoinVertical(lipgloss.Left,
		title,
		form,
		databases,
		editor,
		outcome,
		statusBar,
		helpText,
	)

	// Overlay popups if active
	switch {
	case m.showHelpPopup:
		main = m.renderHelpPopup(main)
	case m.showExportPopup:
		main = m.renderExportPopup(main)
	case m.dbPicker.Visible():
		main = overlay.Composite(m.dbPicker.View(), main, overlay.Center, overlay.Center, 0, 0)
	case m.serverSelector.Visible():
		main = overlay.Composite(m.serverSelector.View(), main, overlay.Center, overlay.Center, 0, 0)
	case m.showHistory:
		main = m.renderHistoryPopup(main)
	}
	return main
}

func (m Model) renderField(label string, f Focus, view string, width int) string {
	labelStyle, fieldStyle := LabelStyle, FieldStyle
	if m.focus == f {
		labelStyle, fieldStyle = LabelActiveStyle, FieldActiveStyle
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		labelStyle.Render(label),
		fieldStyle.Width(width).Render(view),
	)
}

func (m Model) renderForm(width int) string {
	l := m.labels()
	fieldWidth := (width - 8) / 3
	if fieldWidth < 16 {
		fieldWidth = 16
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderField(icons.IconServer+" "+l.Server, FocusServer, m.serverInput.View(), fieldWidth),
		" ",
		m.renderField(icons.IconUser+" "+l.User, FocusUser, m.userInput.View(), fieldWidth),
		" ",
		m.renderField(icons.IconLock+" "+l.Password, FocusPassword, m.passwordInput.View(), fieldWidth),
	)
}

// renderDatabases shows the selected database between its neighbours
func (m Model) renderDatabases(width int) string {
	l := m.labels()
	dbs := m.state.Databases()

	var body string
	if len(dbs) == 0 {
		body = MetaStyle.Render(l.NoDatabases)
	} else {
		cur := m.state.SelectedIndex()
		parts := make([]string, 0, len(dbs))
		for i, db := range dbs {
			if i == cur {
				parts = append(parts, SuccessStyle.Bold(true).Render(icons.IconSelect+" "+db))
			} else {
				parts = append(parts, LabelStyle.Render(db))
			}
		}
		body = limitANSI(strings.Join(parts, "  "), width-6)
		body += MetaStyle.Render(fmt.Sprintf("  (%d/%d)", cur+1, len(dbs)))
	}
	return m.renderField(icons.IconDatabase+" "+l.Database, FocusDatabase, body, width-4)
}

// limitANSI cuts styled text to width cells
func limitANSI(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

func (m Model) renderEditor(width int) string {
	// Grow with the content: min 3 lines, max a third of the screen
	lineCount := strings.Count(m.editor.Value(), "\n") + 1
	maxHeight := max(m.height/3, 3)
	m.editor.SetHeight(min(max(lineCount, 3), maxHeight))

	style := EditorStyle
	if m.focus == FocusEditor {
		style = EditorActiveStyle
	}
	label := LabelStyle.Render(m.labels().Query)
	if m.focus == FocusEditor {
		label = LabelActiveStyle.Render(m.labels().Query)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		label,
		style.Width(width-4).Render(highlight.SQLPreserveANSI(m.editor.View())),
	)
}

// renderOutcome shows the single last outcome: an error, a message, or a table
func (m Model) renderOutcome() string {
	out := m.state.Outcome()
	switch out.Kind {
	case console.OutcomeError:
		return ErrorStyle.Render(icons.IconError + " " + out.Error)
	case console.OutcomeResult:
		if !out.Result.IsTable() {
			return SystemMessageStyle.Render(out.Result.Message)
		}
		meta := MetaStyle.Render(fmt.Sprintf("%s %s  %d %s  %s",
			icons.ModeIcon(out.Mode.String()), out.Mode, out.Result.RowCount(), m.labels().Rows, m.lastDuration.Round(time.Millisecond)))
		return lipgloss.JoinVertical(lipgloss.Left, m.resultsTable.View(), meta)
	}
	return ""
}

// renderPopup frames content and centers it over main
func (m Model) renderPopup(content, main string, width int) string {
	box := PopupStyle.
		Width(width).
		MaxHeight(max(m.height-4, 10)).
		Background(PopupBg()).
		Render(content)
	return overlay.Composite(box, main, overlay.Center, overlay.Center, 0, 0)
}
