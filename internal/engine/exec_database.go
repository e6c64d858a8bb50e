package engine

import "rsql/internal/catalog"

// createDatabase handles CREATE DATABASE name. It does not connect the new
// database; a later CONNECT is still required, matching the dialect surface
// in which the two are separate statements.
func (e *Engine) createDatabase(name string) error {
	db, err := catalog.Create(name)
	if err != nil {
		return err
	}
	return db.Close()
}

// connect handles CONNECT name: it closes and flushes whatever database is
// currently open before swapping in the newly opened one, so exactly one
// database is ever live at a time.
func (e *Engine) connect(name string) error {
	db, err := catalog.Open(name)
	if err != nil {
		return err
	}
	if e.db != nil {
		if err := e.db.Close(); err != nil {
			return err
		}
	}
	e.db = db
	return nil
}
