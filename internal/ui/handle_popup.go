// internal/ui/handle_popup.go
// Popup key-handling dispatch and opener/closer helpers.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handlePopupKeys processes key events that target open popups.
// Returns (model, cmd, handled). If handled is false the caller must
// continue dispatching.
func (m Model) handlePopupKeys(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	isExitKey := matchKey(msg, m.config.Keys.Exit) || msg.String() == "q"

	switch {
	case m.showHelpPopup:
		if isExitKey || matchKey(msg, m.config.Keys.Help) {
			m.showHelpPopup = false
		}
		return m, nil, true

	case m.showExportPopup:
		next, cmd := m.handleExportKeys(msg)
		return next, cmd, true

	case m.dbPicker.Visible():
		var cmd tea.Cmd
		m.dbPicker, cmd = m.dbPicker.Update(msg)
		return m, cmd, true

	case m.serverSelector.Visible():
		var cmd tea.Cmd
		m.serverSelector, cmd = m.serverSelector.Update(msg)
		return m, cmd, true

	case m.showHistory:
		next, cmd := m.handleHistoryKeys(msg)
		return next, cmd, true
	}
	return m, nil, false
}

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	if m.historyStore == nil {
		return m, nil
	}
	m.showHistory = true
	m.historySelected = 0
	m.searching = false
	m.searchInput.SetValue("")
	return m, m.loadHistoryCmd()
}

func (m Model) closeHistory() Model {
	m.showHistory = false
	m.searching = false
	m.searchInput.Blur()
	return m
}

// handleHistoryKeys drives the history popup: / searches, enter loads the
// query into the editor, x deletes
func (m Model) handleHistoryKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEsc:
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			return m, m.loadHistoryCmd()
		case tea.KeyEnter:
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.historySelected = 0
		return m, tea.Batch(cmd, m.searchHistoryCmd(m.searchInput.Value()))
	}

	switch {
	case matchKey(msg, m.config.Keys.Exit), msg.String() == "q", matchKey(msg, m.config.Keys.History):
		return m.closeHistory(), nil
	}

	switch msg.String() {
	case "up", "k":
		if m.historySelected > 0 {
			m.historySelected--
		}
	case "down", "j":
		if m.historySelected < len(m.history)-1 {
			m.historySelected++
		}
	case "/":
		m.searching = true
		return m, m.searchInput.Focus()
	case "enter":
		if m.historySelected < len(m.history) {
			m.editor.SetValue(m.history[m.historySelected].Query)
			m = m.closeHistory()
			m = m.setFocus(FocusEditor)
		}
	case "x", "delete":
		if m.historySelected < len(m.history) {
			return m, m.deleteHistoryCmd(m.history[m.historySelected].ID)
		}
	}
	return m, nil
}
