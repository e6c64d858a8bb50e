package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"rsql/internal/column"
	"rsql/internal/dberrors"
)

func withHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func usersDefs() []column.ColumnDef {
	return []column.ColumnDef{
		{Name: "id", Type: column.Integer},
		{Name: "name", Type: column.Text, Size: 16},
	}
}

func TestCreateAndOpenRoundTrip(t *testing.T) {
	withHome(t)

	db, err := Create("shop")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.CreateTable("users", usersDefs()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := db.Tables["users"].Insert([]string{"1", "a"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open("shop")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tbl, ok := reopened.Tables["users"]
	if !ok {
		t.Fatalf("expected users table to survive reopen")
	}
	rows, err := tbl.SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(rows) != 1 || rows[0].Values[1] != "a" {
		t.Fatalf("unexpected rows after reopen: %v", rows)
	}
}

func TestCreateExistingDatabaseFails(t *testing.T) {
	withHome(t)
	if _, err := Create("dup"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := Create("dup"); err != dberrors.ErrDatabaseExists {
		t.Fatalf("expected ErrDatabaseExists, got %v", err)
	}
}

func TestOpenMissingDatabaseFails(t *testing.T) {
	withHome(t)
	if _, err := Open("ghost"); err != dberrors.ErrDatabaseNotFound {
		t.Fatalf("expected ErrDatabaseNotFound, got %v", err)
	}
}

func TestRollbackRestoresFileByteForByte(t *testing.T) {
	withHome(t)
	db, err := Create("tx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.CreateTable("users", usersDefs()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := db.Tables["users"].Insert([]string{"1", "a"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := db.Tables["users"].FlushAll(); err != nil {
		t.Fatalf("FlushAll: %v", err)
	}

	base, err := BaseDir()
	if err != nil {
		t.Fatalf("BaseDir: %v", err)
	}
	path := filepath.Join(base, "tx", "users.db")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if err := db.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := db.Tables["users"].Insert([]string{"2", "x"}); err != nil {
		t.Fatalf("Insert in tx: %v", err)
	}
	if err := db.Tables["users"].Delete(1); err != nil {
		t.Fatalf("Delete in tx: %v", err)
	}
	if err := db.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile after rollback: %v", err)
	}
	if len(before) != len(after) {
		t.Fatalf("file length changed across rollback: %d != %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("file contents changed at byte %d across rollback", i)
		}
	}

	rows, err := db.Tables["users"].SelectAll()
	if err != nil {
		t.Fatalf("SelectAll: %v", err)
	}
	if len(rows) != 1 || rows[0].Values[1] != "a" {
		t.Fatalf("expected rollback to restore the pre-BEGIN row, got %v", rows)
	}
}

func TestBeginTwiceFails(t *testing.T) {
	withHome(t)
	db, err := Create("tx2")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := db.Begin(); err != dberrors.ErrTxInProgress {
		t.Fatalf("expected ErrTxInProgress, got %v", err)
	}
}

func TestCommitWithoutBeginFails(t *testing.T) {
	withHome(t)
	db, err := Create("tx3")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.Commit(); err != dberrors.ErrNoTxInProgress {
		t.Fatalf("expected ErrNoTxInProgress, got %v", err)
	}
}

func TestCreateIndexEnforcesUniqueAcrossReopen(t *testing.T) {
	withHome(t)
	db, err := Create("idx")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.CreateTable("users", usersDefs()); err != nil {
		t.Fatalf("CreateTable: %v", err)
	}
	if err := db.Tables["users"].Insert([]string{"1", "a"}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := db.CreateIndex("users", "ix_name", "name", true); err != nil {
		t.Fatalf("CreateIndex: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open("idx")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := reopened.Tables["users"].Insert([]string{"2", "a"}); err != dberrors.ErrUniqueViolation {
		t.Fatalf("expected ErrUniqueViolation after reopen, got %v", err)
	}
}
