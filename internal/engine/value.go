package engine

import (
	"strconv"

	"rsql/internal/sql"
)

// valueToString renders a parsed literal the way the row codec wants it:
// every column, INTEGER included, is stored as its text form (see
// internal/table/row.go's preserved open question on INTEGER encoding).
func valueToString(v sql.Value) string {
	switch v.Kind {
	case sql.ValueInteger:
		return strconv.FormatInt(v.Int, 10)
	case sql.ValueText:
		return v.Text
	case sql.ValueIdent:
		return v.Ident
	default:
		return ""
	}
}

// resolveHeader finds name among headers, first by exact match and then as
// the unqualified suffix of a "table.column" header, so a WHERE/SET clause
// needn't qualify columns that came from only one side of a join.
func resolveHeader(headers []string, name string) (int, bool) {
	for i, h := range headers {
		if h == name {
			return i, true
		}
	}
	for i, h := range headers {
		if len(h) > len(name) && h[len(h)-len(name)-1:] == "."+name {
			return i, true
		}
	}
	return 0, false
}
