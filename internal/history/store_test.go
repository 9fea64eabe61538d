package history

import (
	"testing"
	"time"
)

func openTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := Open(":memory:", limit)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func add(t *testing.T, s *Store, server, db, query string, at time.Time) *HistoryEntry {
	t.Helper()
	e := &HistoryEntry{
		Server:     server,
		Database:   db,
		Mode:       "execute",
		Query:      query,
		ExecutedAt: at,
		DurationMs: 12,
		RowCount:   1,
		Status:     StatusSuccess,
		Preview:    "col1\n1",
	}
	if err := s.Add(e); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	return e
}

func TestStoreAddListSearch(t *testing.T) {
	s := openTestStore(t, 0)
	now := time.Now()

	first := add(t, s, "srv", "db1", "SELECT 1", now.Add(-time.Minute))
	add(t, s, "srv", "db1", "SELECT name FROM sys.tables", now)
	add(t, s, "srv", "db2", "SELECT 2", now)

	if first.ID == 0 {
		t.Fatal("Add did not assign an ID")
	}

	entries, err := s.List("srv", "db1", 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("List = %d entries, want 2", len(entries))
	}
	if entries[0].Query != "SELECT name FROM sys.tables" {
		t.Errorf("newest first expected, got %q", entries[0].Query)
	}

	found, err := s.Search("srv", "db1", "sys.tables", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(found) != 1 {
		t.Errorf("Search = %d entries, want 1", len(found))
	}

	n, err := s.Count("srv", "db2")
	if err != nil || n != 1 {
		t.Errorf("Count = %d, %v; want 1", n, err)
	}
}

func TestStoreGetAndDelete(t *testing.T) {
	s := openTestStore(t, 0)
	e := add(t, s, "srv", "db1", "SELECT 1", time.Now())
	e2 := &HistoryEntry{
		Server: "srv", Database: "db1", Mode: "preview", Query: "SELEC 1",
		ExecutedAt: time.Now(), Status: StatusError, ErrorMessage: "syntax error",
	}
	if err := s.Add(e2); err != nil {
		t.Fatal(err)
	}

	got, err := s.GetByID(e2.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID = %v, %v", got, err)
	}
	if got.ErrorMessage != "syntax error" || got.Mode != "preview" {
		t.Errorf("entry = %+v", got)
	}

	if err := s.Delete(e.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	missing, err := s.GetByID(e.ID)
	if err != nil || missing != nil {
		t.Errorf("GetByID after delete = %v, %v", missing, err)
	}
}

func TestStoreEnforcesLimit(t *testing.T) {
	s := openTestStore(t, 2)
	base := time.Now()
	for i := 0; i < 4; i++ {
		add(t, s, "srv", "db1", "SELECT 1", base.Add(time.Duration(i)*time.Second))
	}
	n, err := s.Count("srv", "db1")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestQueryPreview(t *testing.T) {
	e := HistoryEntry{Query: "SELECT *\n  FROM  users"}
	if got := e.QueryPreview(100); got != "SELECT * FROM users" {
		t.Errorf("QueryPreview = %q", got)
	}
	if got := e.QueryPreview(10); got != "SELECT ..." {
		t.Errorf("QueryPreview(10) = %q", got)
	}
}
