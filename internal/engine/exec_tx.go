package engine

// begin handles BEGIN: every open table's mutations start buffering in the
// page cache instead of flushing immediately.
func (e *Engine) begin() error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	return db.Begin()
}

// commit handles COMMIT: every open table and index flushes its cached
// pages to disk.
func (e *Engine) commit() error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	return db.Commit()
}

// rollback handles ROLLBACK: every open table's cache is dropped, so the
// next read re-hydrates from disk and the buffered mutations are discarded.
func (e *Engine) rollback() error {
	db, err := e.requireDB()
	if err != nil {
		return err
	}
	return db.Rollback()
}
