package engine

import (
	"rsql/internal/dberrors"
	"rsql/internal/sql"
)

// executeUpdate handles UPDATE table SET col=val, ... [WHERE ...]. With no
// WHERE, every row is updated. Each matching row is rewritten individually
// through table.Table.Update so its secondary index entries stay in sync.
func (e *Engine) executeUpdate(stmt *sql.UpdateStmt) (int, error) {
	db, err := e.requireDB()
	if err != nil {
		return 0, err
	}
	tbl, ok := db.Tables[stmt.TableName]
	if !ok {
		return 0, dberrors.ErrTableNotFound
	}

	names := tbl.Schema.Names()
	assignIdx := make([]int, len(stmt.Assignments))
	for i, a := range stmt.Assignments {
		idx, ok := resolveHeader(names, a.Column)
		if !ok {
			return 0, dberrors.ErrColumnNotFound
		}
		assignIdx[i] = idx
	}

	rows, err := tbl.SelectAll()
	if err != nil {
		return 0, err
	}

	affected := 0
	for _, r := range rows {
		matched := true
		if stmt.Where != nil {
			matched, err = evalWhere(names, r.Values, stmt.Where)
			if err != nil {
				return affected, err
			}
		}
		if !matched {
			continue
		}
		newValues := append([]string(nil), r.Values...)
		for i, a := range stmt.Assignments {
			newValues[assignIdx[i]] = valueToString(a.Value)
		}
		if err := tbl.Update(r.PK, newValues); err != nil {
			return affected, err
		}
		affected++
	}
	return affected, nil
}
