package table

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/nhath/fastquery/internal/backend"
)

func TestGridShape(t *testing.T) {
	rs := &backend.ResultSet{
		Columns: []string{"id", "name", "note"},
		Rows: [][]any{
			{json.Number("1"), "alice", nil},
			{json.Number("2"), nil},
			{json.Number("3"), "carol", "x", "extra"},
		},
	}
	g := GridFromResult(rs)

	if len(g.Header) != len(rs.Columns) {
		t.Fatalf("header cells = %d, want %d", len(g.Header), len(rs.Columns))
	}
	for i, row := range rs.Rows {
		if len(g.Rows[i]) != len(row) {
			t.Errorf("row %d cells = %d, want %d", i, len(g.Rows[i]), len(row))
		}
	}
	if g.Rows[0][2] != "-" || !g.IsNull(0, 2) {
		t.Errorf("null cell = %q (null=%v), want -", g.Rows[0][2], g.IsNull(0, 2))
	}
	if g.Rows[1][1] != "-" {
		t.Errorf("null cell = %q, want -", g.Rows[1][1])
	}
	if g.IsNull(0, 1) {
		t.Error("non-null cell reported as null")
	}
	if g.Width() != 4 {
		t.Errorf("Width = %d, want 4", g.Width())
	}
}

func TestGridSelectOne(t *testing.T) {
	g := GridFromResult(&backend.ResultSet{
		Columns: []string{"col1"},
		Rows:    [][]any{{json.Number("1")}},
	})
	if len(g.Header) != 1 || g.Header[0] != "col1" {
		t.Fatalf("Header = %v", g.Header)
	}
	if len(g.Rows) != 1 || len(g.Rows[0]) != 1 || g.Rows[0][0] != "1" {
		t.Fatalf("Rows = %v", g.Rows)
	}
}

func TestGridMessageOnly(t *testing.T) {
	g := GridFromResult(&backend.ResultSet{Message: "done"})
	if len(g.Header) != 0 || len(g.Rows) != 0 {
		t.Errorf("grid = %+v, want empty", g)
	}
	if g := GridFromResult(nil); g.Width() != 0 {
		t.Errorf("nil result grid width = %d", g.Width())
	}
}

func TestPreview(t *testing.T) {
	g := GridFromResult(&backend.ResultSet{
		Columns: []string{"a", "b"},
		Rows:    [][]any{{"1", "2"}, {"3", nil}, {"5", "6"}},
	})
	want := "a | b\n1 | 2\n3 | -\n..."
	if got := g.Preview(2); got != want {
		t.Errorf("Preview = %q, want %q", got, want)
	}
	if got := g.Preview(5); strings.HasSuffix(got, "...") {
		t.Errorf("Preview(5) truncated: %q", got)
	}
}

func TestPlain(t *testing.T) {
	g := GridFromResult(&backend.ResultSet{
		Columns: []string{"col1"},
		Rows:    [][]any{{json.Number("1")}, {nil}},
	})
	out := Plain(g)
	for _, want := range []string{"col1", "1", "-"} {
		if !strings.Contains(out, want) {
			t.Errorf("Plain output missing %q:\n%s", want, out)
		}
	}
}

func TestPlainKeepsCellCounts(t *testing.T) {
	g := GridFromResult(&backend.ResultSet{
		Columns: []string{"a"},
		Rows:    [][]any{{json.Number("1"), json.Number("2")}, {}},
	})
	lines := strings.Split(Plain(g), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header, rule and 2 rows:\n%s", len(lines), strings.Join(lines, "\n"))
	}

	cells := func(line string) int { return strings.Count(line, "│") - 1 }
	if got := cells(lines[0]); got != 1 {
		t.Errorf("header cells = %d, want 1: %q", got, lines[0])
	}
	if got := cells(lines[2]); got != 2 {
		t.Errorf("row cells = %d, want 2: %q", got, lines[2])
	}
	if got := cells(lines[3]); got != 0 {
		t.Errorf("empty row cells = %d, want 0: %q", got, lines[3])
	}
	if Plain(Grid{}) != "" {
		t.Error("empty grid should render nothing")
	}
}

func TestFromGridDuplicateColumnNames(t *testing.T) {
	g := GridFromResult(&backend.ResultSet{
		Columns: []string{"x", "x"},
		Rows:    [][]any{{"left", "right"}},
	})
	view := FromGrid(g, 10).View()
	if !strings.Contains(view, "left") || !strings.Contains(view, "right") {
		t.Errorf("duplicate column names collapsed:\n%s", view)
	}
}

func TestWriteCSV(t *testing.T) {
	g := GridFromResult(&backend.ResultSet{
		Columns: []string{"id", "name"},
		Rows:    [][]any{{json.Number("1"), "a,b"}, {json.Number("2")}},
	})
	var b strings.Builder
	if err := g.WriteCSV(&b); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	want := "id,name\n1,\"a,b\"\n2,\n"
	if b.String() != want {
		t.Errorf("WriteCSV = %q, want %q", b.String(), want)
	}

	line, err := g.RowCSV(0)
	if err != nil || line != `1,"a,b"` {
		t.Errorf("RowCSV(0) = %q, %v", line, err)
	}
	if _, err := g.RowCSV(5); err == nil {
		t.Error("RowCSV accepted out-of-range row")
	}
}
