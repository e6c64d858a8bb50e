package engine

import (
	"fmt"

	"rsql/internal/dberrors"
	"rsql/internal/sql"
)

// executeInsert handles INSERT INTO table [(cols)] VALUES (...).
//
// With no column list, values map 1:1 onto the schema by position,
// including values[0] filling column 0 (the primary key) — the off-by-one
// alignment preserved from the source rather than "fixed", per spec.md §9.
// UNIQUE checks run inside table.Table.Insert before any byte is written.
func (e *Engine) executeInsert(stmt *sql.InsertStmt) error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	tbl, ok := db.Tables[stmt.TableName]
	if !ok {
		return dberrors.ErrTableNotFound
	}

	if len(stmt.Columns) == 0 {
		if len(stmt.Values) != len(tbl.Schema) {
			return fmt.Errorf("engine: INSERT: %d values for %d columns", len(stmt.Values), len(tbl.Schema))
		}
		values := make([]string, len(stmt.Values))
		for i, v := range stmt.Values {
			values[i] = valueToString(v)
		}
		return tbl.Insert(values)
	}

	if len(stmt.Columns) != len(tbl.Schema) || len(stmt.Values) != len(stmt.Columns) {
		return fmt.Errorf("engine: INSERT: column list must name every column of %q", stmt.TableName)
	}
	names := tbl.Schema.Names()
	pos := make(map[string]int, len(names))
	for i, n := range names {
		pos[n] = i
	}
	values := make([]string, len(names))
	seen := make([]bool, len(names))
	for i, colName := range stmt.Columns {
		idx, ok := pos[colName]
		if !ok {
			return dberrors.ErrColumnNotFound
		}
		if seen[idx] {
			return fmt.Errorf("engine: INSERT: duplicate column %q in column list", colName)
		}
		values[idx] = valueToString(stmt.Values[i])
		seen[idx] = true
	}
	return tbl.Insert(values)
}
