// internal/history/entry.go
package history

import "time"

// HistoryEntry is one applied preview or execute outcome. It never holds
// credentials: only the server name and database.
type HistoryEntry struct {
	ID           int64
	Server       string
	Database     string
	Mode         string // "preview", "execute"
	Query        string
	ExecutedAt   time.Time
	DurationMs   int64
	RowCount     int
	Status       string `json:"status"` // "success", "error"
	ErrorMessage string `json:"error_message,omitempty"`
	Preview      string `json:"preview,omitempty"` // header plus first rows
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// QueryPreview returns a truncated single-line version of the query
func (e *HistoryEntry) QueryPreview(maxLen int) string {
	q := []rune(flatten(e.Query))
	if maxLen > 3 && len(q) > maxLen {
		return string(q[:maxLen-3]) + "..."
	}
	return string(q)
}

func flatten(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\r' || r == '\t' || r == ' ' {
			if !space && len(out) > 0 {
				out = append(out, ' ')
			}
			space = true
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
