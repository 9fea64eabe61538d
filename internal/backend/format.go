package backend

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FormatCell renders a cell for display; nil renders as placeholder
func FormatCell(v any, placeholder string) string {
	if v == nil {
		return placeholder
	}

	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case []any, map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatRow renders every cell of a row
func FormatRow(row []any, placeholder string) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = FormatCell(v, placeholder)
	}
	return out
}
