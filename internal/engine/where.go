package engine

import (
	"fmt"
	"strconv"

	"rsql/internal/sql"
)

// filterRows keeps only the rows whose WHERE clause evaluates true.
func filterRows(headers []string, rows [][]string, where *sql.WhereClause) ([][]string, error) {
	var out [][]string
	for _, row := range rows {
		matched, err := evalWhere(headers, row, where)
		if err != nil {
			return nil, err
		}
		if matched {
			out = append(out, row)
		}
	}
	return out, nil
}

// evalWhere evaluates a flat left-to-right chain of conditions; there is no
// operator precedence or parenthesization, matching the reference dialect.
func evalWhere(headers []string, row []string, where *sql.WhereClause) (bool, error) {
	result, err := evalCondition(headers, row, where.Conditions[0])
	if err != nil {
		return false, err
	}
	for i, op := range where.Operators {
		next, err := evalCondition(headers, row, where.Conditions[i+1])
		if err != nil {
			return false, err
		}
		if op == sql.LogicalAnd {
			result = result && next
		} else {
			result = result || next
		}
	}
	return result, nil
}

func evalCondition(headers []string, row []string, cond sql.Condition) (bool, error) {
	idx, ok := resolveHeader(headers, cond.Column)
	if !ok {
		return false, fmt.Errorf("engine: unknown column %q in WHERE", cond.Column)
	}
	return compareCell(row[idx], cond.Op, cond.Value), nil
}

// compareCell compares a stored cell (always text) against a literal. If the
// literal is an integer and the cell parses as one, the comparison is
// numeric; otherwise it falls back to a byte-wise string comparison, which
// is exact for equality/inequality and merely lexicographic for ordering
// operators against non-numeric text, matching the table's untyped storage.
func compareCell(cell string, op sql.CompareOp, v sql.Value) bool {
	if v.Kind == sql.ValueInteger {
		if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return compareOrdered(n, v.Int, op)
		}
	}
	return compareOrdered(cell, valueToString(v), op)
}

func compareOrdered[T int64 | string](a, b T, op sql.CompareOp) bool {
	switch op {
	case sql.OpEquals:
		return a == b
	case sql.OpNotEquals:
		return a != b
	case sql.OpLessThan:
		return a < b
	case sql.OpGreaterThan:
		return a > b
	case sql.OpLessEquals:
		return a <= b
	case sql.OpGreaterEquals:
		return a >= b
	default:
		return false
	}
}
