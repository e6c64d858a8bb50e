// Package engine dispatches parsed sql.Statement values onto the storage
// engine: it looks a table up by name, translates the statement into
// table/catalog calls, and renders a header/row result set for SELECT.
package engine

import (
	"fmt"

	"rsql/internal/catalog"
	"rsql/internal/dberrors"
	"rsql/internal/sql"
)

// Engine owns at most one connected database for the process lifetime,
// mirroring askorykh-goDB's DBEngine owning exactly one storage.Engine.
type Engine struct {
	db *catalog.Database
}

// New returns an engine with no database connected; CREATE DATABASE or
// CONNECT must run before any other statement.
func New() *Engine {
	return &Engine{}
}

// DatabaseName reports the name of the connected database, or "" if none.
func (e *Engine) DatabaseName() string {
	if e.db == nil {
		return ""
	}
	return e.db.Name
}

func (e *Engine) requireDB() (*catalog.Database, error) {
	if e.db == nil {
		return nil, dberrors.ErrNoDatabase
	}
	return e.db, nil
}

// Close flushes and closes the connected database, if any.
func (e *Engine) Close() error {
	if e.db == nil {
		return nil
	}
	return e.db.Close()
}

// Execute runs one parsed statement. It always returns a header slice and
// row slice; for statements that yield no rows (everything but SELECT) both
// are nil and a nil error means success.
func (e *Engine) Execute(stmt sql.Statement) ([]string, [][]string, error) {
	switch s := stmt.(type) {
	case *sql.CreateDatabaseStmt:
		return nil, nil, e.createDatabase(s.Name)
	case *sql.ConnectStmt:
		return nil, nil, e.connect(s.Name)
	case *sql.CreateTableStmt:
		return nil, nil, e.createTable(s)
	case *sql.DropTableStmt:
		return nil, nil, e.dropTable(s)
	case *sql.CreateIndexStmt:
		return nil, nil, e.createIndex(s)
	case *sql.DropIndexStmt:
		return nil, nil, e.dropIndex(s)
	case *sql.InsertStmt:
		return nil, nil, e.executeInsert(s)
	case *sql.SelectStmt:
		return e.executeSelect(s)
	case *sql.UpdateStmt:
		_, err := e.executeUpdate(s)
		return nil, nil, err
	case *sql.DeleteStmt:
		_, err := e.executeDelete(s)
		return nil, nil, err
	case *sql.BeginStmt:
		return nil, nil, e.begin()
	case *sql.CommitStmt:
		return nil, nil, e.commit()
	case *sql.RollbackStmt:
		return nil, nil, e.rollback()
	default:
		return nil, nil, fmt.Errorf("engine: unsupported statement type %T", stmt)
	}
}
