// Package highlight colors T-SQL for the terminal.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
)

var styleName = "nord"

// SetStyle selects the chroma style used by SQL
func SetStyle(name string) {
	if name != "" {
		styleName = name
	}
}

// SQL returns T-SQL highlighted with chroma for plain text (history,
// popups). Input is returned unchanged if highlighting fails.
func SQL(sql string) string {
	lexer := lexers.Get("tsql")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return sql
	}
	out := buf.String()
	if !strings.HasSuffix(sql, "\n") {
		out = trimAddedNewline(out)
	}
	return out
}

// trimAddedNewline drops the newline the lexer appends, which may be
// followed by escape sequences only
func trimAddedNewline(s string) string {
	nl := strings.LastIndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	for i := nl + 1; i < len(s); {
		j, ok := escapeEnd(s, i)
		if !ok {
			return s
		}
		i = j
	}
	return s[:nl] + s[nl+1:]
}

// T-SQL keywords colored in the live editor
var keywords = map[string]bool{
	"SELECT": true, "FROM": true, "WHERE": true, "AND": true, "OR": true,
	"INSERT": true, "INTO": true, "VALUES": true, "UPDATE": true, "SET": true,
	"DELETE": true, "CREATE": true, "TABLE": true, "DROP": true, "ALTER": true,
	"JOIN": true, "LEFT": true, "RIGHT": true, "INNER": true, "OUTER": true,
	"CROSS": true, "APPLY": true, "ON": true, "AS": true, "ORDER": true,
	"BY": true, "GROUP": true, "HAVING": true, "DISTINCT": true, "TOP": true,
	"NULL": true, "NOT": true, "IN": true, "LIKE": true, "BETWEEN": true,
	"IS": true, "ASC": true, "DESC": true, "UNION": true, "ALL": true,
	"EXISTS": true, "CASE": true, "WHEN": true, "THEN": true, "ELSE": true,
	"END": true, "WITH": true, "NOLOCK": true, "OFFSET": true, "FETCH": true,
	"NEXT": true, "ROWS": true, "ONLY": true, "EXEC": true, "EXECUTE": true,
	"DECLARE": true, "BEGIN": true, "COMMIT": true, "ROLLBACK": true,
	"TRANSACTION": true, "GO": true, "USE": true, "OUTPUT": true, "MERGE": true,
	"COUNT": true, "SUM": true, "AVG": true, "MIN": true, "MAX": true,
	"CAST": true, "CONVERT": true, "ISNULL": true, "COALESCE": true, "GETDATE": true,
}

// ANSI foreground color codes (no background, no reset issues)
const (
	fgCyan   = "\x1b[38;5;110m" // keywords
	fgPurple = "\x1b[38;5;183m" // numbers
	fgGreen  = "\x1b[38;5;150m" // strings
	fgOrange = "\x1b[38;5;209m" // wildcards, @variables
	fgYellow = "\x1b[38;5;222m" // [bracketed] identifiers
	fgGray   = "\x1b[38;5;245m" // comments
	fgReset  = "\x1b[39m"       // reset foreground only
)

// SQLPreserveANSI highlights the textarea view, which already carries
// cursor and style escape sequences. Those sequences are copied through
// untouched; only bare text is colored.
func SQLPreserveANSI(text string) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]

		if j, ok := escapeEnd(text, i); ok {
			out.WriteString(text[i:j])
			i = j
			continue
		}

		switch {
		case c == '-' && i+1 < len(text) && text[i+1] == '-':
			// Comment runs to end of line
			j := i
			for j < len(text) && text[j] != '\n' {
				j++
			}
			writeColored(&out, fgGray, text[i:j])
			i = j
		case c == '*':
			writeColored(&out, fgOrange, "*")
			i++
		case c == '\'' || c == '[':
			closer := byte('\'')
			color := fgGreen
			if c == '[' {
				closer, color = ']', fgYellow
			}
			i = copyDelimited(&out, text, i, closer, color)
		case c >= '0' && c <= '9':
			j := i
			for j < len(text) && ((text[j] >= '0' && text[j] <= '9') || text[j] == '.') {
				j++
			}
			writeColored(&out, fgPurple, text[i:j])
			i = j
		case c == '@' || isWordStart(c):
			j := i + 1
			for j < len(text) && isWordPart(text[j]) {
				j++
			}
			word := text[i:j]
			switch {
			case c == '@':
				writeColored(&out, fgOrange, word)
			case keywords[strings.ToUpper(word)]:
				writeColored(&out, fgCyan, word)
			default:
				out.WriteString(word)
			}
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// escapeEnd returns the index after a CSI sequence starting at i
func escapeEnd(text string, i int) (int, bool) {
	if text[i] != '\x1b' || i+1 >= len(text) || text[i+1] != '[' {
		return 0, false
	}
	j := i + 2
	for j < len(text) && !isLetter(text[j]) {
		j++
	}
	if j < len(text) {
		j++ // terminating letter
	}
	return j, true
}

// copyDelimited colors text[i] up to and including closer, passing any
// escape sequences inside through as-is
func copyDelimited(out *strings.Builder, text string, i int, closer byte, color string) int {
	out.WriteString(color)
	out.WriteByte(text[i])
	i++
	for i < len(text) && text[i] != closer {
		if j, ok := escapeEnd(text, i); ok {
			out.WriteString(text[i:j])
			i = j
			continue
		}
		out.WriteByte(text[i])
		i++
	}
	if i < len(text) {
		out.WriteByte(text[i])
		i++
	}
	out.WriteString(fgReset)
	return i
}

func writeColored(out *strings.Builder, color, s string) {
	out.WriteString(color)
	out.WriteString(s)
	out.WriteString(fgReset)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordStart(c byte) bool {
	return isLetter(c) || c == '_' || c == '#'
}

func isWordPart(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '@' || c == '#' || c == '$'
}
