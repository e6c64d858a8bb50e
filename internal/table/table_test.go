package table

import (
	"path/filepath"
	"strconv"
	"testing"

	"rsql/internal/column"
	"rsql/internal/dberrors"
)

func usersSchema(t *testing.T, nameSize uint32) column.Schema {
	t.Helper()
	schema, _, err := column.Build([]column.ColumnDef{
		{Name: "id", Type: column.Integer},
		{Name: "name", Type: column.Text, Size: nameSize},
	})
	if err != nil {
		t.Fatalf("column.Build: %v", err)
	}
	return schema
}

func TestInsertAndSelectAll(t *testing.T) {
	schema := usersSchema(t, 16)
	tbl, err := Open("users", filepath.Join(t.TempDir(), "users.db"), schema, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tbl.Insert([]string{"1", "a"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tbl.Insert([]string{"2", "b"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	rows, err := tbl.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Values[0] != "1" || rows[0].Values[1] != "a" {
		t.Fatalf("unexpected row 0: %v", rows[0].Values)
	}
	if rows[1].Values[0] != "2" || rows[1].Values[1] != "b" {
		t.Fatalf("unexpected row 1: %v", rows[1].Values)
	}
}

func TestDuplicatePrimaryKeyRejected(t *testing.T) {
	schema := usersSchema(t, 16)
	tbl, err := Open("users", filepath.Join(t.TempDir(), "users.db"), schema, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tbl.Insert([]string{"1", "a"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tbl.Insert([]string{"1", "b"}); err != dberrors.ErrDuplicatePrimaryKey {
		t.Fatalf("expected ErrDuplicatePrimaryKey, got %v", err)
	}
	rows, err := tbl.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(rows) != 1 || rows[0].Values[1] != "a" {
		t.Fatalf("expected only the first insert to survive, got %v", rows)
	}
}

func TestInvalidPrimaryKey(t *testing.T) {
	schema := usersSchema(t, 16)
	tbl, err := Open("users", filepath.Join(t.TempDir(), "users.db"), schema, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tbl.Insert([]string{"not-a-number", "a"}); err != dberrors.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	schema := usersSchema(t, 16)
	tbl, err := Open("users", filepath.Join(t.TempDir(), "users.db"), schema, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tbl.Insert([]string{"1", "a"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tbl.Update(1, []string{"1", "z"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	rows, err := tbl.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if rows[0].Values[1] != "z" {
		t.Fatalf("update did not take effect: %v", rows[0].Values)
	}
	if err := tbl.Delete(1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	rows, err = tbl.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected table empty after delete, got %v", rows)
	}
}

func TestUniqueIndexEnforcedBeforeWrite(t *testing.T) {
	schema := usersSchema(t, 16)
	tbl, err := Open("users", filepath.Join(t.TempDir(), "users.db"), schema, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tbl.OpenIndex("ix_name", filepath.Join(t.TempDir(), "ix.idx"), "name", true, nil); err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	if err := tbl.Insert([]string{"1", "a"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := tbl.Insert([]string{"2", "a"}); err != dberrors.ErrUniqueViolation {
		t.Fatalf("expected ErrUniqueViolation, got %v", err)
	}
	rows, err := tbl.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected the rejected insert to leave no row behind, got %v", rows)
	}
}

func TestRowSizeSplitAcrossLeaves(t *testing.T) {
	schema := usersSchema(t, 290)
	tbl, err := Open("wide", filepath.Join(t.TempDir(), "wide.db"), schema, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for i := 1; i <= 30; i++ {
		if err := tbl.Insert([]string{strconv.Itoa(i), "name"}); err != nil {
			t.Fatalf("Insert(%d): %v", i, err)
		}
	}
	rows, err := tbl.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(rows) != 30 {
		t.Fatalf("expected 30 rows, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].PK >= rows[i].PK {
			t.Fatalf("rows not sorted by primary key")
		}
	}
}
