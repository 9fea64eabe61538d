// internal/history/store.go
package history

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// Store manages query history persistence
type Store struct {
	db    *sql.DB
	limit int
}

// DefaultPath returns the XDG data location of the history database
func DefaultPath() (string, error) {
	return xdg.DataFile("fastquery/history.db")
}

// NewStore opens the history database at the XDG data location
func NewStore(limit int) (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path, limit)
}

// Open opens (or creates) a history database at path. ":memory:" works
// for tests. limit caps entries kept per server/database; <=0 keeps all.
func Open(path string, limit int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One connection: keeps :memory: databases shared and writes serialized
	db.SetMaxOpenConns(1)

	// Apply SQLite pragmas
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			server TEXT NOT NULL,
			database_name TEXT NOT NULL,
			mode TEXT NOT NULL,
			query TEXT NOT NULL,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			duration_ms INTEGER NOT NULL,
			row_count INTEGER NOT NULL,
			status TEXT NOT NULL,
			error_message TEXT,
			preview TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_history_target ON history(server, database_name);
		CREATE INDEX IF NOT EXISTS idx_history_executed_at ON history(executed_at);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db, limit: limit}
	if err := store.cleanup(); err != nil {
		log.Printf("history: cleanup failed: %v", err)
	}
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a new entry and assigns its ID
func (s *Store) Add(entry *HistoryEntry) error {
	res, err := s.db.Exec(`
		INSERT INTO history (server, database_name, mode, query, executed_at, duration_ms, row_count, status, error_message, preview)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Server,
		entry.Database,
		entry.Mode,
		entry.Query,
		entry.ExecutedAt,
		entry.DurationMs,
		entry.RowCount,
		entry.Status,
		entry.ErrorMessage,
		entry.Preview,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id

	if s.limit > 0 {
		if err := s.enforceLimit(entry.Server, entry.Database, s.limit); err != nil {
			log.Printf("history: prune failed: %v", err)
		}
	}
	return nil
}

// enforceLimit keeps only the most recent N entries per server/database
func (s *Store) enforceLimit(server, database string, limit int) error {
	_, err := s.db.Exec(`
		DELETE FROM history
		WHERE server = ? AND database_name = ?
		AND id NOT IN (
			SELECT id FROM history
			WHERE server = ? AND database_name = ?
			ORDER BY executed_at DESC, id DESC
			LIMIT ?
		)
	`, server, database, server, database, limit)
	return err
}

const selectColumns = `id, server, database_name, mode, query, executed_at, duration_ms, row_count, status, error_message, preview`

// List returns paginated entries for a server/database, newest first
func (s *Store) List(server, database string, limit, offset int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+selectColumns+`
		FROM history
		WHERE server = ? AND database_name = ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, server, database, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Search finds entries by query substring
func (s *Store) Search(server, database, querySubstr string, limit int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+selectColumns+`
		FROM history
		WHERE server = ? AND database_name = ? AND query LIKE ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, server, database, "%"+querySubstr+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (HistoryEntry, error) {
	var e HistoryEntry
	var errMsg, preview sql.NullString
	err := row.Scan(&e.ID, &e.Server, &e.Database, &e.Mode, &e.Query, &e.ExecutedAt,
		&e.DurationMs, &e.RowCount, &e.Status, &errMsg, &preview)
	e.ErrorMessage = errMsg.String
	e.Preview = preview.String
	return e, err
}

// scanEntries scans rows into HistoryEntry slice
func scanEntries(rows *sql.Rows) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetByID retrieves a single entry; nil when absent
func (s *Store) GetByID(id int64) (*HistoryEntry, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM history WHERE id = ?`, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an entry by ID
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM history WHERE id = ?", id)
	return err
}

// cleanup removes entries older than 90 days
func (s *Store) cleanup() error {
	_, err := s.db.Exec(`
		DELETE FROM history
		WHERE executed_at < datetime('now', '-90 days')
	`)
	return err
}

// Count returns the number of entries for a server/database
func (s *Store) Count(server, database string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM history WHERE server = ? AND database_name = ?
	`, server, database).Scan(&count)
	return count, err
}
