package engine

import (
	"rsql/internal/dberrors"
	"rsql/internal/table"
)

// joinRows performs a nested-loop equi-join of left's rows against every row
// of the joined table, the way a full sequential scan of both tables is the
// only access path the storage engine offers. Result headers are qualified
// "table.column" for every column of both sides, since an unqualified
// column name may exist on both tables.
func (e *Engine) joinRows(left *table.Table, leftRows []table.Row, joinTableName, leftCol, rightCol string) ([]string, [][]string, error) {
	db, err := e.requireDB()
	if err != nil {
		return nil, nil, err
	}
	right, ok := db.Tables[joinTableName]
	if !ok {
		return nil, nil, dberrors.ErrTableNotFound
	}
	rightRows, err := right.SelectAll()
	if err != nil {
		return nil, nil, err
	}

	leftIdx, ok := left.Schema.ByName(leftCol)
	if !ok {
		return nil, nil, dberrors.ErrColumnNotFound
	}
	rightIdx, ok := right.Schema.ByName(rightCol)
	if !ok {
		return nil, nil, dberrors.ErrColumnNotFound
	}
	leftPos := columnPosition(left.Schema.Names(), leftIdx.Name)
	rightPos := columnPosition(right.Schema.Names(), rightIdx.Name)

	headers := make([]string, 0, len(left.Schema)+len(right.Schema))
	for _, c := range left.Schema.Names() {
		headers = append(headers, left.Name+"."+c)
	}
	for _, c := range right.Schema.Names() {
		headers = append(headers, right.Name+"."+c)
	}

	var out [][]string
	for _, lr := range leftRows {
		for _, rr := range rightRows {
			if lr.Values[leftPos] != rr.Values[rightPos] {
				continue
			}
			row := make([]string, 0, len(headers))
			row = append(row, lr.Values...)
			row = append(row, rr.Values...)
			out = append(out, row)
		}
	}
	return headers, out, nil
}

func columnPosition(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
