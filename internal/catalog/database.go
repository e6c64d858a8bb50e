// Package catalog owns a database's on-disk directory: its metadata.json,
// its tables' and indexes' backing files, and the transaction flag shared
// across every open table.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"rsql/internal/column"
	"rsql/internal/dberrors"
	"rsql/internal/table"
)

// Database is one connected `.rsql` database directory.
type Database struct {
	Name string
	dir  string
	meta metadataDoc

	Tables map[string]*table.Table

	deferFlush bool
	inTx       bool
}

// BaseDir is $HOME/.rsql/databases, the parent of every database directory.
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("catalog: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".rsql", "databases"), nil
}

func databaseDir(name string) (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, name), nil
}

// Create makes a fresh, empty database directory.
func Create(name string) (*Database, error) {
	dir, err := databaseDir(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); err == nil {
		return nil, dberrors.ErrDatabaseExists
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("catalog: create database directory: %w", err)
	}
	doc := metadataDoc{Tables: make(map[string]tableMeta)}
	if err := saveMetadata(dir, doc); err != nil {
		return nil, err
	}
	return &Database{
		Name:   name,
		dir:    dir,
		meta:   doc,
		Tables: make(map[string]*table.Table),
	}, nil
}

// Open connects to an existing database, reopening every table and index
// its metadata describes.
func Open(name string) (*Database, error) {
	dir, err := databaseDir(name)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, dberrors.ErrDatabaseNotFound
	}
	doc, err := loadMetadata(dir)
	if err != nil {
		return nil, err
	}
	d := &Database{
		Name:   name,
		dir:    dir,
		meta:   doc,
		Tables: make(map[string]*table.Table),
	}
	for tableName, tm := range doc.Tables {
		if err := d.reopenTable(tableName, tm); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Database) tablePath(name string) string {
	return filepath.Join(d.dir, name+".db")
}

func (d *Database) indexPath(tableName, indexName string) string {
	return filepath.Join(d.dir, tableName+"_"+indexName+".idx")
}

func (d *Database) reopenTable(name string, tm tableMeta) error {
	defs, err := metaToDefs(tm.Columns)
	if err != nil {
		return err
	}
	schema, _, err := column.Build(defs)
	if err != nil {
		return err
	}
	tbl, err := table.Open(name, d.tablePath(name), schema, &d.deferFlush)
	if err != nil {
		return err
	}
	for _, im := range tm.Indexes {
		if err := tbl.OpenIndex(im.Name, d.indexPath(name, im.Name), im.Column, im.Unique, &d.deferFlush); err != nil {
			return err
		}
	}
	d.Tables[name] = tbl
	return nil
}

// CreateTable adds a new table, allocating its backing file and an empty
// leaf root, and persists the updated metadata.
func (d *Database) CreateTable(name string, defs []column.ColumnDef) error {
	if _, exists := d.Tables[name]; exists {
		return dberrors.ErrTableExists
	}
	schema, _, err := column.Build(defs)
	if err != nil {
		return err
	}
	tbl, err := table.Open(name, d.tablePath(name), schema, &d.deferFlush)
	if err != nil {
		return err
	}
	d.Tables[name] = tbl
	d.meta.Tables[name] = tableMeta{Columns: schemaToMeta(schema)}
	return saveMetadata(d.dir, d.meta)
}

// DropTable closes and deletes a table's backing file and every one of its
// index files.
func (d *Database) DropTable(name string) error {
	tbl, exists := d.Tables[name]
	if !exists {
		return dberrors.ErrTableNotFound
	}
	tm := d.meta.Tables[name]
	if err := tbl.Close(); err != nil {
		return err
	}
	if err := os.Remove(d.tablePath(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("catalog: remove table file: %w", err)
	}
	for _, im := range tm.Indexes {
		os.Remove(d.indexPath(name, im.Name))
	}
	delete(d.Tables, name)
	delete(d.meta.Tables, name)
	return saveMetadata(d.dir, d.meta)
}

// CreateIndex allocates a fresh index file, populates it from the table's
// current rows, and persists the updated metadata.
func (d *Database) CreateIndex(tableName, indexName, columnName string, unique bool) error {
	tbl, exists := d.Tables[tableName]
	if !exists {
		return dberrors.ErrTableNotFound
	}
	if _, ok := tbl.Schema.ByName(columnName); !ok {
		return dberrors.ErrColumnNotFound
	}
	tm := d.meta.Tables[tableName]
	for _, im := range tm.Indexes {
		if im.Name == indexName {
			return dberrors.ErrIndexExists
		}
	}
	if err := tbl.OpenIndex(indexName, d.indexPath(tableName, indexName), columnName, unique, &d.deferFlush); err != nil {
		return err
	}
	if err := tbl.RebuildIndex(indexName); err != nil {
		return err
	}
	tm.Indexes = append(tm.Indexes, indexMeta{Name: indexName, Column: columnName, Unique: unique})
	d.meta.Tables[tableName] = tm
	return saveMetadata(d.dir, d.meta)
}

// DropIndex detaches and deletes an index.
func (d *Database) DropIndex(tableName, indexName string) error {
	tbl, exists := d.Tables[tableName]
	if !exists {
		return dberrors.ErrTableNotFound
	}
	tbl.DropIndex(indexName)
	os.Remove(d.indexPath(tableName, indexName))

	tm := d.meta.Tables[tableName]
	kept := tm.Indexes[:0]
	found := false
	for _, im := range tm.Indexes {
		if im.Name == indexName {
			found = true
			continue
		}
		kept = append(kept, im)
	}
	if !found {
		return dberrors.ErrIndexNotFound
	}
	tm.Indexes = kept
	d.meta.Tables[tableName] = tm
	return saveMetadata(d.dir, d.meta)
}

// Begin starts a transaction: every open table's mutations are buffered in
// the page cache instead of flushed.
func (d *Database) Begin() error {
	if d.inTx {
		return dberrors.ErrTxInProgress
	}
	d.deferFlush = true
	d.inTx = true
	return nil
}

// Commit flushes every open table and index and ends the transaction.
func (d *Database) Commit() error {
	if !d.inTx {
		return dberrors.ErrNoTxInProgress
	}
	for _, tbl := range d.Tables {
		if err := tbl.FlushAll(); err != nil {
			return err
		}
	}
	d.deferFlush = false
	d.inTx = false
	return nil
}

// Rollback drops every open table's cached pages, discarding any mutations
// buffered since Begin, and ends the transaction.
func (d *Database) Rollback() error {
	if !d.inTx {
		return dberrors.ErrNoTxInProgress
	}
	for _, tbl := range d.Tables {
		if err := tbl.ClearCache(); err != nil {
			return err
		}
	}
	d.deferFlush = false
	d.inTx = false
	return nil
}

// Close flushes and closes every open table.
func (d *Database) Close() error {
	for _, tbl := range d.Tables {
		if err := tbl.Close(); err != nil {
			return err
		}
	}
	return nil
}
