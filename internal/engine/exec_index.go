package engine

import "rsql/internal/sql"

// createIndex handles CREATE [UNIQUE] INDEX name ON table(column): it
// allocates the index file and backfills it from the table's current rows.
func (e *Engine) createIndex(stmt *sql.CreateIndexStmt) error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	return db.CreateIndex(stmt.TableName, stmt.IndexName, stmt.Column, stmt.Unique)
}

// dropIndex handles DROP INDEX name ON table.
func (e *Engine) dropIndex(stmt *sql.DropIndexStmt) error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	return db.DropIndex(stmt.TableName, stmt.IndexName)
}
