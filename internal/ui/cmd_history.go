package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/fastquery/internal/history"
)

const historyPageSize = 100

// historyScope returns the server and database history is filtered by
func (m Model) historyScope() (string, string) {
	db, _ := m.state.SelectedDatabase()
	return m.state.Input.Server, db
}

// loadHistoryCmd loads query history from SQLite
func (m Model) loadHistoryCmd() tea.Cmd {
	if m.historyStore == nil {
		return nil
	}
	store := m.historyStore
	server, db := m.historyScope()
	return func() tea.Msg {
		entries, err := store.List(server, db, historyPageSize, 0)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// searchHistoryCmd filters history by a query substring
func (m Model) searchHistoryCmd(substr string) tea.Cmd {
	if m.historyStore == nil {
		return nil
	}
	if substr == "" {
		return m.loadHistoryCmd()
	}
	store := m.historyStore
	server, db := m.historyScope()
	return func() tea.Msg {
		entries, err := store.Search(server, db, substr, historyPageSize)
		return HistoryLoadedMsg{Entries: entries, Err: err}
	}
}

// saveHistoryCmd appends an entry
func (m Model) saveHistoryCmd(entry *history.HistoryEntry) tea.Cmd {
	if m.historyStore == nil || entry == nil {
		return nil
	}
	store := m.historyStore
	return func() tea.Msg {
		err := store.Add(entry)
		return HistorySavedMsg{Entry: entry, Err: err}
	}
}

// deleteHistoryCmd removes an entry by ID
func (m Model) deleteHistoryCmd(id int64) tea.Cmd {
	if m.historyStore == nil {
		return nil
	}
	store := m.historyStore
	return func() tea.Msg {
		return HistoryDeletedMsg{ID: id, Err: store.Delete(id)}
	}
}
