package ui

import (
	"time"

	"github.com/nhath/fastquery/internal/backend"
	"github.com/nhath/fastquery/internal/console"
	"github.com/nhath/fastquery/internal/history"
)

// ConnectResultMsg is sent when a /conectar call returns
type ConnectResultMsg struct {
	Call  console.ConnectCall
	Reply backend.ConnectReply
	Err   error
}

// QueryResultMsg is sent when a /query or /preview call returns
type QueryResultMsg struct {
	Call       console.QueryCall
	Reply      backend.QueryReply
	Err        error
	ExecutedAt time.Time
	Duration   time.Duration
}

// HistoryLoadedMsg is sent when history loads from SQLite
type HistoryLoadedMsg struct {
	Entries []history.HistoryEntry
	Err     error
}

// HistorySavedMsg is sent after an outcome was logged
type HistorySavedMsg struct {
	Entry *history.HistoryEntry
	Err   error
}

// HistoryDeletedMsg is sent after an entry was removed
type HistoryDeletedMsg struct {
	ID  int64
	Err error
}
