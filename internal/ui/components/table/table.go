// Package table turns backend result sets into display grids and
// bubble-table models.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"

	"github.com/nhath/fastquery/internal/backend"
	"github.com/nhath/fastquery/internal/config"
)

// Nord colors, overridden by Init
var (
	colorForeground = lipgloss.Color("#D8DEE9")
	colorHeader     = lipgloss.Color("#8FBCBB")
	colorHighlight  = lipgloss.Color("#A3BE8C")
	colorNull       = lipgloss.Color("#B48EAD")
	colorNumber     = lipgloss.Color("#B48EAD")
	colorBool       = lipgloss.Color("#D08770")
	colorText       = lipgloss.Color("#EBCB8B")
	colorFaint      = lipgloss.Color("#4C566A")

	nullPlaceholder = "-"
)

// maxColumnWidth caps a column so one wide cell cannot hide the rest
const maxColumnWidth = 40

// Init applies the configured theme and null placeholder
func Init(theme config.Theme, placeholder string) {
	colorForeground = lipgloss.Color(theme.TextPrimary)
	colorHeader = lipgloss.Color(theme.Highlight)
	colorHighlight = lipgloss.Color(theme.Success)
	colorNumber = lipgloss.Color(theme.TextSecondary)
	colorBool = lipgloss.Color(theme.Warning)
	colorText = lipgloss.Color(theme.TextPrimary)
	colorFaint = lipgloss.Color(theme.TextFaint)
	if placeholder != "" {
		nullPlaceholder = placeholder
	}
}

// Grid is a result rendered to strings: one header cell per column and,
// per row, one cell per value the backend sent.
type Grid struct {
	Header []string
	Rows   [][]string
	// nulls marks cells that were SQL NULL
	nulls [][]bool
}

// GridFromResult renders a tabular result; nil or message-only results
// produce an empty grid.
func GridFromResult(rs *backend.ResultSet) Grid {
	if !rs.IsTable() {
		return Grid{}
	}
	g := Grid{
		Header: append([]string{}, rs.Columns...),
		Rows:   make([][]string, len(rs.Rows)),
		nulls:  make([][]bool, len(rs.Rows)),
	}
	for i, row := range rs.Rows {
		g.Rows[i] = backend.FormatRow(row, nullPlaceholder)
		g.nulls[i] = make([]bool, len(row))
		for j, v := range row {
			g.nulls[i][j] = v == nil
		}
	}
	return g
}

// Width returns the widest of the header and every row
func (g Grid) Width() int {
	w := len(g.Header)
	for _, r := range g.Rows {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}

// IsNull reports whether cell (row, col) was NULL
func (g Grid) IsNull(row, col int) bool {
	if row < 0 || row >= len(g.nulls) || col < 0 || col >= len(g.nulls[row]) {
		return false
	}
	return g.nulls[row][col]
}

// Preview renders the header and up to n rows as "a | b" lines for the
// history log; a trailing "..." marks truncation.
func (g Grid) Preview(n int) string {
	if len(g.Header) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Join(g.Header, " | "))
	limit := n
	if len(g.Rows) < limit {
		limit = len(g.Rows)
	}
	for i := 0; i < limit; i++ {
		b.WriteString("\n")
		b.WriteString(strings.Join(g.Rows[i], " | "))
	}
	if len(g.Rows) > n {
		b.WriteString("\n...")
	}
	return b.String()
}

// columnKey keys bubble-table columns by position; column names may repeat
func columnKey(i int) string {
	return fmt.Sprintf("c%d", i)
}

// New creates a new bubble-table with the theme (no background)
func New(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(colorForeground)).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(colorHeader).
			Bold(true)).
		HighlightStyle(lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)).
		BorderRounded()
}

// FromGrid builds a paged table. Rows longer than the header get extra
// untitled columns; shorter rows leave trailing cells empty.
func FromGrid(g Grid, pageSize int) bbtable.Model {
	width := g.Width()
	widths := calculateColumnWidths(g, width)

	cols := make([]bbtable.Column, width)
	for i := 0; i < width; i++ {
		title := ""
		if i < len(g.Header) {
			title = g.Header[i]
		}
		cols[i] = bbtable.NewColumn(columnKey(i), title, widths[i])
	}

	rows := make([]bbtable.Row, 0, len(g.Rows))
	for i, r := range g.Rows {
		data := bbtable.RowData{}
		for j, val := range r {
			data[columnKey(j)] = bbtable.NewStyledCell(val, GetValueStyle(val, g.IsNull(i, j)))
		}
		rows = append(rows, bbtable.NewRow(data))
	}

	if pageSize <= 0 {
		pageSize = 20
	}
	return New(cols).
		WithRows(rows).
		WithPageSize(pageSize)
}

func calculateColumnWidths(g Grid, width int) []int {
	widths := make([]int, width)
	for i, h := range g.Header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range g.Rows {
		for i, val := range row {
			if w := lipgloss.Width(val); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		// Add padding
		widths[i] += 2
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

// GetValueStyle returns a lipgloss style based on value content
func GetValueStyle(val string, null bool) lipgloss.Style {
	if null {
		return lipgloss.NewStyle().Foreground(colorNull).Italic(true)
	}
	if val == "" {
		return lipgloss.NewStyle().Foreground(colorFaint)
	}
	if _, err := fmt.Sscanf(val, "%f", new(float64)); err == nil {
		return lipgloss.NewStyle().Foreground(colorNumber)
	}
	lower := strings.ToLower(val)
	if lower == "true" || lower == "false" {
		return lipgloss.NewStyle().Foreground(colorBool)
	}
	return lipgloss.NewStyle().Foreground(colorText)
}

// Plain renders the grid as a bordered text table for non-interactive
// output. The header line has exactly len(Header) cells and each row
// line has exactly as many cells as the row; columns line up by position.
func Plain(g Grid) string {
	if len(g.Header) == 0 && len(g.Rows) == 0 {
		return ""
	}

	widths := make([]int, g.Width())
	measure := func(cells []string) {
		for i, c := range cells {
			if w := lipgloss.Width(flatten(c)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(g.Header)
	for _, r := range g.Rows {
		measure(r)
	}

	line := func(cells []string) string {
		if len(cells) == 0 {
			return "│"
		}
		padded := make([]string, len(cells))
		for i, c := range cells {
			padded[i] = lipgloss.NewStyle().Width(widths[i]).Render(flatten(c))
		}
		return "│ " + strings.Join(padded, " │ ") + " │"
	}

	var b strings.Builder
	b.WriteString(line(g.Header))
	b.WriteByte('\n')
	rule := make([]string, len(g.Header))
	for i := range rule {
		rule[i] = strings.Repeat("─", widths[i]+2)
	}
	b.WriteString("├" + strings.Join(rule, "┼") + "┤")
	for _, r := range g.Rows {
		b.WriteByte('\n')
		b.WriteString(line(r))
	}
	return b.String()
}

func flatten(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// WriteCSV writes the header and every row. Short rows are padded.
func (g Grid) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	width := g.Width()
	header := make([]string, width)
	copy(header, g.Header)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range g.Rows {
		row := make([]string, width)
		copy(row, r)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RowCSV renders row i as a single CSV line
func (g Grid) RowCSV(i int) (string, error) {
	if i < 0 || i >= len(g.Rows) {
		return "", fmt.Errorf("row %d out of range", i)
	}
	var b strings.Builder
	cw := csv.NewWriter(&b)
	if err := cw.Write(g.Rows[i]); err != nil {
		return "", err
	}
	cw.Flush()
	return strings.TrimRight(b.String(), "\n"), cw.Error()
}
