package highlight

import (
	"strings"
	"testing"
)

func stripANSI(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if j, ok := escapeEnd(s, i); ok {
			i = j - 1
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func TestSQLKeepsText(t *testing.T) {
	in := "SELECT TOP 10 name FROM sys.databases"
	out := SQL(in)
	if got := strings.TrimRight(stripANSI(out), "\n"); got != in {
		t.Errorf("text changed: %q", got)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("no color applied: %q", out)
	}
}

func TestSQLPreserveANSI(t *testing.T) {
	cursor := "\x1b[7m \x1b[0m"
	in := "SELECT [name], @id FROM t -- note" + cursor
	out := SQLPreserveANSI(in)

	if !strings.Contains(out, cursor) {
		t.Errorf("cursor escape lost: %q", out)
	}
	if stripANSI(out) != stripANSI(in) {
		t.Errorf("text changed: %q", stripANSI(out))
	}
	if !strings.Contains(out, fgCyan+"SELECT"+fgReset) {
		t.Errorf("keyword not colored: %q", out)
	}
	if !strings.Contains(out, fgYellow+"[name]"+fgReset) {
		t.Errorf("bracket identifier not colored: %q", out)
	}
}
