// internal/ui/app.go
package ui

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/fastquery/internal/backend"
	"github.com/nhath/fastquery/internal/console"
	"github.com/nhath/fastquery/internal/ui/components/dbpicker"
	"github.com/nhath/fastquery/internal/ui/components/serverselector"
	"github.com/nhath/fastquery/internal/ui/components/table"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 4)
		m.resultsTable = m.resultsTable.WithMaxTotalWidth(msg.Width - 2)
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ConnectResultMsg:
		return m.handleConnectResult(msg)

	case QueryResultMsg:
		return m.handleQueryResult(msg)

	case dbpicker.SelectedMsg:
		m.selectPicked(msg)
		return m, nil

	case dbpicker.CancelledMsg:
		return m, nil

	case serverselector.SelectedMsg:
		m.serverInput.SetValue(msg.Server.Server)
		m.userInput.SetValue(msg.Server.User)
		m.passwordInput.SetValue("")
		return m.setFocus(FocusPassword), nil

	case serverselector.DeleteMsg:
		if err := m.config.DeleteServer(msg.Name); err != nil {
			m.notifyError(err.Error())
			return m, nil
		}
		m.serverSelector = m.serverSelector.Open(m.config.Servers)
		return m, nil

	case HistoryLoadedMsg:
		if msg.Err != nil {
			log.Printf("ui: loading history: %v", msg.Err)
			m.notifyError(fmt.Sprintf("history: %v", msg.Err))
			return m, nil
		}
		m.history = msg.Entries
		if m.historySelected >= len(m.history) {
			m.historySelected = max(len(m.history)-1, 0)
		}
		return m, nil

	case HistorySavedMsg:
		if msg.Err != nil {
			log.Printf("ui: saving history: %v", msg.Err)
		}
		return m, nil

	case HistoryDeletedMsg:
		if msg.Err != nil {
			log.Printf("ui: deleting history %d: %v", msg.ID, msg.Err)
			return m, nil
		}
		for i, e := range m.history {
			if e.ID == msg.ID {
				m.history = append(m.history[:i], m.history[i+1:]...)
				break
			}
		}
		if m.historySelected >= len(m.history) {
			m.historySelected = max(len(m.history)-1, 0)
		}
		return m, nil

	case ExportCompleteMsg:
		if msg.Err != nil {
			log.Printf("ui: export: %v", msg.Err)
			m.notifyError(fmt.Sprintf("export failed: %v", msg.Err))
			return m, nil
		}
		m.notify("Exported to " + msg.Path)
		return m, nil

	case ClipboardCopiedMsg:
		if msg.Err != nil {
			m.notifyError(fmt.Sprintf("clipboard: %v", msg.Err))
			return m, nil
		}
		m.notify("Row copied")
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other component messages
	return m.updateFocused(msg)
}

func (m Model) busy() bool {
	return m.state.Connecting() || m.state.Querying()
}

// syncInputs copies the widgets into the console state
func (m *Model) syncInputs() {
	m.state.Input = console.ConnectionInput{
		Server:   m.serverInput.Value(),
		User:     m.userInput.Value(),
		Password: m.passwordInput.Value(),
	}
	m.state.Query = m.editor.Value()
}

// startSpinner returns a tick only when nothing was running before
func (m Model) startSpinner(wasBusy bool) tea.Cmd {
	if wasBusy {
		return nil
	}
	return m.spinner.Tick
}

func (m Model) connect() (tea.Model, tea.Cmd) {
	wasBusy := m.busy()
	m.syncInputs()
	m.notify("")
	call := m.state.StartConnect()
	log.Printf("ui: connect seq=%d server=%q user=%q", call.Seq, call.Credentials.Server, call.Credentials.User)
	return m, tea.Batch(m.connectCmd(call), m.startSpinner(wasBusy))
}

func (m Model) runQuery(mode console.Mode) (tea.Model, tea.Cmd) {
	wasBusy := m.busy()
	m.syncInputs()
	m.notify("")
	call, err := m.state.StartQuery(mode)
	if errors.Is(err, console.ErrNoDatabase) {
		m.dropStaleResults()
		return m, nil
	}
	log.Printf("ui: %s seq=%d database=%q", mode, call.Seq, call.Request.Database)
	return m, tea.Batch(m.queryCmd(call), m.startSpinner(wasBusy))
}

func (m Model) handleConnectResult(msg ConnectResultMsg) (tea.Model, tea.Cmd) {
	if !m.state.ApplyConnect(msg.Call, msg.Reply, msg.Err) {
		return m, nil
	}
	m.dropStaleResults()
	if _, ok := msg.Reply.(backend.Connected); ok && msg.Err == nil {
		// indices from the old list no longer apply
		m.dbPicker = m.dbPicker.Close()
	}
	if _, ok := msg.Reply.(backend.Connected); !ok || msg.Err != nil {
		return m, nil
	}
	before := len(m.config.Servers)
	if err := m.config.RememberServer(msg.Call.Credentials.Server, msg.Call.Credentials.User); err != nil {
		log.Printf("ui: saving server: %v", err)
	} else if len(m.config.Servers) > before {
		m.notify(m.labels().Saved)
	}
	m = m.setFocus(FocusEditor)
	return m, m.loadHistoryCmd()
}

func (m Model) handleQueryResult(msg QueryResultMsg) (tea.Model, tea.Cmd) {
	if !m.state.ApplyQuery(msg.Call, msg.Reply, msg.Err) {
		return m, nil
	}
	m.lastDuration = msg.Duration
	m.rebuildResults()

	entry := m.historyEntryFor(msg)
	if m.showHistory {
		return m, tea.Sequence(m.saveHistoryCmd(entry), m.loadHistoryCmd())
	}
	return m, m.saveHistoryCmd(entry)
}

// rebuildResults renders the current outcome into the results table
func (m *Model) rebuildResults() {
	out := m.state.Outcome()
	if out.Kind != console.OutcomeResult || !out.Result.IsTable() {
		m.grid = table.Grid{}
		return
	}
	m.grid = table.GridFromResult(out.Result)
	m.resultsTable = table.FromGrid(m.grid, m.config.PageSize).
		Focused(m.focus == FocusResults)
	if m.width > 0 {
		m.resultsTable = m.resultsTable.WithMaxTotalWidth(m.width - 2)
	}
}

// dropStaleResults clears the grid once the outcome is no longer a result
func (m *Model) dropStaleResults() {
	if m.state.Outcome().Kind != console.OutcomeResult {
		m.grid = table.Grid{}
	}
}

// selectPicked applies a picker choice. The list may have been replaced
// since the picker opened, so the name decides when the index disagrees.
func (m *Model) selectPicked(msg dbpicker.SelectedMsg) {
	dbs := m.state.Databases()
	if msg.Index >= 0 && msg.Index < len(dbs) && dbs[msg.Index] == msg.Name {
		_ = m.state.SelectIndex(msg.Index)
		return
	}
	if err := m.state.Select(msg.Name); err != nil {
		log.Printf("ui: %v", err)
	}
}

func (m *Model) notify(text string) {
	m.statusMsg = text
	m.statusErr = false
}

func (m *Model) notifyError(text string) {
	m.statusMsg = text
	m.statusErr = true
}

// setFocus moves typed input to f
func (m Model) setFocus(f Focus) Model {
	m.focus = f
	m.serverInput.Blur()
	m.userInput.Blur()
	m.passwordInput.Blur()
	m.editor.Blur()
	m.resultsTable = m.resultsTable.Focused(false)

	switch f {
	case FocusServer:
		m.serverInput.Focus()
	case FocusUser:
		m.userInput.Focus()
	case FocusPassword:
		m.passwordInput.Focus()
	case FocusEditor:
		m.editor.Focus()
	case FocusResults:
		m.resultsTable = m.resultsTable.Focused(true)
	}
	return m
}

func (m Model) cycleFocus(delta int) Model {
	idx := 0
	for i, f := range focusOrder {
		if f == m.focus {
			idx = i
			break
		}
	}
	n := len(focusOrder)
	return m.setFocus(focusOrder[((idx+delta)%n+n)%n])
}

// updateFocused forwards msg to the focused widget
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusServer:
		m.serverInput, cmd = m.serverInput.Update(msg)
	case FocusUser:
		m.userInput, cmd = m.userInput.Update(msg)
	case FocusPassword:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	case FocusEditor:
		m.editor, cmd = m.editor.Update(msg)
	case FocusResults:
		m.resultsTable, cmd = m.resultsTable.Update(msg)
	}
	return m, cmd
}
