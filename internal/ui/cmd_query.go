package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/fastquery/internal/console"
	"github.com/nhath/fastquery/internal/history"
	"github.com/nhath/fastquery/internal/ui/components/table"
)

// connectCmd posts the snapshotted credentials to /conectar
func (m Model) connectCmd(call console.ConnectCall) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		reply, err := client.Connect(context.Background(), call.Credentials)
		return ConnectResultMsg{Call: call, Reply: reply, Err: err}
	}
}

// queryCmd posts a started preview or execute call
func (m Model) queryCmd(call console.QueryCall) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		start := time.Now()
		reply, err := console.Dispatch(context.Background(), client, call)
		return QueryResultMsg{
			Call:       call,
			Reply:      reply,
			Err:        err,
			ExecutedAt: start,
			Duration:   time.Since(start),
		}
	}
}

// historyEntryFor logs the outcome an applied query reply produced
func (m Model) historyEntryFor(msg QueryResultMsg) *history.HistoryEntry {
	out := m.state.Outcome()
	entry := &history.HistoryEntry{
		Server:     msg.Call.Request.Server,
		Database:   msg.Call.Request.Database,
		Mode:       msg.Call.Mode.String(),
		Query:      msg.Call.Request.Query,
		ExecutedAt: msg.ExecutedAt,
		DurationMs: msg.Duration.Milliseconds(),
	}
	switch out.Kind {
	case console.OutcomeError:
		entry.Status = history.StatusError
		entry.ErrorMessage = out.Error
	case console.OutcomeResult:
		entry.Status = history.StatusSuccess
		entry.RowCount = out.Result.RowCount()
		if out.Result.IsTable() {
			entry.Preview = table.GridFromResult(out.Result).Preview(m.config.HistoryPreviewRows)
		} else {
			entry.Preview = out.Result.Message
		}
	}
	return entry
}
