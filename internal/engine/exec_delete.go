package engine

import (
	"rsql/internal/dberrors"
	"rsql/internal/sql"
)

// executeDelete handles DELETE FROM table [WHERE ...]. With no WHERE, every
// row is removed.
func (e *Engine) executeDelete(stmt *sql.DeleteStmt) (int, error) {
	db, err := e.requireDB()
	if err != nil {
		return 0, err
	}
	tbl, ok := db.Tables[stmt.TableName]
	if !ok {
		return 0, dberrors.ErrTableNotFound
	}

	names := tbl.Schema.Names()
	rows, err := tbl.SelectAll()
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, r := range rows {
		matched := true
		if stmt.Where != nil {
			matched, err = evalWhere(names, r.Values, stmt.Where)
			if err != nil {
				return deleted, err
			}
		}
		if !matched {
			continue
		}
		if err := tbl.Delete(r.PK); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
