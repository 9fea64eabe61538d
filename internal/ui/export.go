package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/fastquery/internal/console"
	"github.com/nhath/fastquery/internal/ui/components/table"
)

// ExportCompleteMsg is sent when export is complete
type ExportCompleteMsg struct {
	Path string
	Err  error
}

// ClipboardCopiedMsg is sent after a row was copied
type ClipboardCopiedMsg struct {
	Err error
}

func newExportInput() textinput.Model {
	ei := textinput.New()
	ei.Prompt = "Export to: "
	ei.Placeholder = "result.csv"
	ei.CharLimit = 256
	ei.Width = 40
	return ei
}

// openExport shows the file prompt when there is a table to export
func (m Model) openExport() (Model, tea.Cmd) {
	if len(m.grid.Header) == 0 || m.state.Outcome().Kind != console.OutcomeResult {
		return m, nil
	}
	m.showExportPopup = true
	m.exportInput.SetValue("")
	return m, m.exportInput.Focus()
}

func (m Model) handleExportKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.showExportPopup = false
		m.exportInput.Blur()
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.exportInput.Value())
		if name == "" {
			name = m.exportInput.Placeholder
		}
		m.showExportPopup = false
		m.exportInput.Blur()
		return m, exportGridCmd(m.grid, name)
	}
	var cmd tea.Cmd
	m.exportInput, cmd = m.exportInput.Update(msg)
	return m, cmd
}

// exportGridCmd writes every row of g to filename as CSV
func exportGridCmd(g table.Grid, filename string) tea.Cmd {
	return func() tea.Msg {
		// Expand path
		exportPath := filename
		if !filepath.IsAbs(exportPath) {
			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			exportPath = filepath.Join(cwd, filename)
		}

		// Ensure .csv extension
		if !strings.HasSuffix(strings.ToLower(exportPath), ".csv") {
			exportPath += ".csv"
		}

		f, err := os.Create(exportPath)
		if err != nil {
			return ExportCompleteMsg{Err: err}
		}
		if err := g.WriteCSV(f); err != nil {
			f.Close()
			return ExportCompleteMsg{Err: err}
		}
		return ExportCompleteMsg{Path: exportPath, Err: f.Close()}
	}
}

// copyRowCmd copies the highlighted result row as CSV
func (m Model) copyRowCmd() tea.Cmd {
	if len(m.grid.Rows) == 0 || m.state.Outcome().Kind != console.OutcomeResult {
		return nil
	}
	line, err := m.grid.RowCSV(m.resultsTable.GetHighlightedRowIndex())
	if err != nil {
		return nil
	}
	return func() tea.Msg {
		return ClipboardCopiedMsg{Err: clipboard.WriteAll(line)}
	}
}

func (m Model) renderExportPopup(main string) string {
	content := fmt.Sprintf("%s\n\n%s\n\n%s",
		LabelActiveStyle.Render(fmt.Sprintf("Export %d rows as CSV", len(m.grid.Rows))),
		m.exportInput.View(),
		MetaStyle.Render("enter save  esc cancel"))
	return m.renderPopup(content, main, 56)
}
