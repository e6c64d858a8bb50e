package engine

import (
	"rsql/internal/column"
	"rsql/internal/sql"
)

// createTable handles CREATE TABLE name (col type, ...).
func (e *Engine) createTable(stmt *sql.CreateTableStmt) error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	defs := make([]column.ColumnDef, len(stmt.Columns))
	for i, c := range stmt.Columns {
		defs[i] = column.ColumnDef{Name: c.Name, Type: toColumnType(c.Type), Size: c.Size}
	}
	return db.CreateTable(stmt.TableName, defs)
}

// dropTable handles DROP TABLE name.
func (e *Engine) dropTable(stmt *sql.DropTableStmt) error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	return db.DropTable(stmt.TableName)
}

func toColumnType(t sql.ColumnType) column.Type {
	if t == sql.TypeInteger {
		return column.Integer
	}
	return column.Text
}
