package engine

import (
	"sort"

	"rsql/internal/column"
	"rsql/internal/dberrors"
)

// ListTables returns the names of every table in the connected database,
// sorted, for the REPL's .tables meta command.
func (e *Engine) ListTables() ([]string, error) {
	db, err := e.requireDB()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(db.Tables))
	for name := range db.Tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// TableSchema returns a table's column list, for the REPL's .schema command.
func (e *Engine) TableSchema(name string) (column.Schema, error) {
	db, err := e.requireDB()
	if err != nil {
		return nil, err
	}
	tbl, ok := db.Tables[name]
	if !ok {
		return nil, dberrors.ErrTableNotFound
	}
	return tbl.Schema, nil
}
