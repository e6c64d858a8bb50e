package engine

import (
	"fmt"

	"rsql/internal/dberrors"
	"rsql/internal/sql"
)

// executeSelect handles SELECT cols|* FROM table [[INNER] JOIN t2 ON a=b]
// [WHERE ...]: a full sequential scan of the table (and, for a join, of the
// joined table), filtered and projected in memory.
func (e *Engine) executeSelect(stmt *sql.SelectStmt) ([]string, [][]string, error) {
	db, err := e.requireDB()
	if err != nil {
		return nil, nil, err
	}
	tbl, ok := db.Tables[stmt.TableName]
	if !ok {
		return nil, nil, dberrors.ErrTableNotFound
	}
	rows, err := tbl.SelectAll()
	if err != nil {
		return nil, nil, err
	}

	var headers []string
	var combined [][]string
	if stmt.Join != nil {
		headers, combined, err = e.joinRows(tbl, rows, stmt.Join.TableName, stmt.Join.LeftColumn, stmt.Join.RightColumn)
		if err != nil {
			return nil, nil, err
		}
	} else {
		headers = tbl.Schema.Names()
		combined = make([][]string, len(rows))
		for i, r := range rows {
			combined[i] = r.Values
		}
	}

	if stmt.Where != nil {
		combined, err = filterRows(headers, combined, stmt.Where)
		if err != nil {
			return nil, nil, err
		}
	}

	if len(stmt.Columns) == 0 {
		return headers, combined, nil
	}
	return projectColumns(headers, combined, stmt.Columns)
}

// projectColumns narrows a header/row set down to the requested columns, in
// the order requested.
func projectColumns(headers []string, rows [][]string, cols []string) ([]string, [][]string, error) {
	idxs := make([]int, len(cols))
	for i, c := range cols {
		idx, ok := resolveHeader(headers, c)
		if !ok {
			return nil, nil, fmt.Errorf("engine: unknown column %q", c)
		}
		idxs[i] = idx
	}
	out := make([][]string, len(rows))
	for i, r := range rows {
		row := make([]string, len(cols))
		for j, idx := range idxs {
			row[j] = r[idx]
		}
		out[i] = row
	}
	return cols, out, nil
}
