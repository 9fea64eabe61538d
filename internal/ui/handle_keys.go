// internal/ui/handle_keys.go
// Key dispatch: popups first, then global bindings, then the focused widget.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/fastquery/internal/console"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.config.Keys

	if matchKey(msg, keys.Quit) {
		return m, tea.Quit
	}

	if next, cmd, handled := m.handlePopupKeys(msg); handled {
		return next, cmd
	}

	switch {
	case matchKey(msg, keys.Connect):
		return m.connect()
	case matchKey(msg, keys.Preview):
		return m.runQuery(console.ModePreview)
	case matchKey(msg, keys.Execute):
		return m.runQuery(console.ModeExecute)
	case matchKey(msg, keys.PickDatabase):
		return m.openDatabasePicker(), nil
	case matchKey(msg, keys.PickServer):
		m.serverSelector = m.serverSelector.Open(m.config.Servers)
		return m, nil
	case matchKey(msg, keys.History):
		return m.openHistory()
	case matchKey(msg, keys.Export):
		next, cmd := m.openExport()
		return next, cmd
	case matchKey(msg, keys.Help):
		m.showHelpPopup = true
		return m, nil
	case matchKey(msg, keys.NextField):
		return m.cycleFocus(1), nil
	case matchKey(msg, keys.PrevField):
		return m.cycleFocus(-1), nil
	case matchKey(msg, keys.Exit):
		m.notify("")
		if m.focus == FocusEditor || m.focus == FocusResults {
			return m.setFocus(FocusDatabase), nil
		}
		return m, nil
	}

	switch m.focus {
	case FocusServer, FocusUser:
		if msg.Type == tea.KeyEnter {
			return m.cycleFocus(1), nil
		}
	case FocusPassword:
		if msg.Type == tea.KeyEnter {
			return m.connect()
		}
	case FocusDatabase:
		return m.handleDatabaseKey(msg)
	case FocusResults:
		if matchKey(msg, keys.Copy) {
			return m, m.copyRowCmd()
		}
		if matchKey(msg, keys.NextPage) {
			m.resultsTable = m.resultsTable.PageDown()
			return m, nil
		}
		if matchKey(msg, keys.PrevPage) {
			m.resultsTable = m.resultsTable.PageUp()
			return m, nil
		}
	}
	return m.updateFocused(msg)
}

// handleDatabaseKey steps through the list; enter opens the picker
func (m Model) handleDatabaseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	dbs := m.state.Databases()
	if len(dbs) == 0 {
		return m, nil
	}
	cur := m.state.SelectedIndex()
	switch msg.String() {
	case "left", "up", "h", "k":
		if cur > 0 {
			_ = m.state.SelectIndex(cur - 1)
		}
	case "right", "down", "l", "j":
		if cur < len(dbs)-1 {
			_ = m.state.SelectIndex(cur + 1)
		}
	case "enter", "/":
		return m.openDatabasePicker(), nil
	}
	return m, nil
}

func (m Model) openDatabasePicker() Model {
	dbs := m.state.Databases()
	if len(dbs) == 0 {
		return m
	}
	m.dbPicker = m.dbPicker.Open(dbs, m.state.SelectedIndex())
	return m
}
